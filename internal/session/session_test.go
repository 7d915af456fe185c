package session

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gold-calc/core/types"
	"gold-calc/internal/errors"
)

func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(t.TempDir(), "session", "session.json")),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.March, 1, 10, 30, 0, 0, time.UTC)

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			empty, err := store.Load(ctx)
			require.NoError(t, err)
			assert.True(t, empty.IsEmpty())

			err = Update(ctx, store, now, func(s *Snapshot) {
				s.Alloy = &types.AlloyInput{Weight: 10, CurrentPurity: 91.6, TargetPurity: 75, AddedMetalPurity: 100}
			})
			require.NoError(t, err)

			err = Update(ctx, store, now.Add(time.Minute), func(s *Snapshot) {
				s.Language = types.LanguageTamil
				s.Interest = &InterestInput{
					Terms: types.InterestTerms{Principal: 1000, Rate: 12, RatePeriod: types.RateYearly, Type: types.InterestSimple},
					Start: "2024-01-01",
					End:   "2024-01-31",
				}
			})
			require.NoError(t, err)

			snap, err := store.Load(ctx)
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, snap.ID)
			assert.True(t, snap.SavedAt.Equal(now.Add(time.Minute)))
			assert.Equal(t, types.LanguageTamil, snap.Language)
			require.NotNil(t, snap.Alloy)
			assert.Equal(t, 91.6, snap.Alloy.CurrentPurity)
			require.NotNil(t, snap.Interest)
			assert.Equal(t, "2024-01-31", snap.Interest.End)
			assert.Nil(t, snap.Amount)

			require.NoError(t, store.Clear(ctx))
			cleared, err := store.Load(ctx)
			require.NoError(t, err)
			assert.True(t, cleared.IsEmpty())
		})
	}
}

func TestEachSaveGetsNewID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, Update(ctx, store, time.Now(), func(s *Snapshot) { s.Language = types.LanguageEnglish }))
	first, _ := store.Load(ctx)
	require.NoError(t, Update(ctx, store, time.Now(), func(s *Snapshot) { s.Language = types.LanguageTamil }))
	second, _ := store.Load(ctx)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	_, err := NewFileStore(path).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeStorage))
}

func TestClearMissingFileIsNoop(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "never-written.json"))
	assert.NoError(t, store.Clear(context.Background()))
}

func TestConcurrentUpdatesKeepEveryCalculator(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.March, 1, 10, 30, 0, 0, time.UTC)

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				require.NoError(t, store.Clear(ctx))

				var wg sync.WaitGroup
				errs := make(chan error, 2)
				wg.Add(2)
				go func() {
					defer wg.Done()
					errs <- Update(ctx, store, now, func(s *Snapshot) {
						s.Amount = &types.AmountInput{Weight: 10, Purity: 91.6, RatePer24k: 7000}
					})
				}()
				go func() {
					defer wg.Done()
					errs <- Update(ctx, store, now, func(s *Snapshot) {
						s.Alloy = &types.AlloyInput{Weight: 10, CurrentPurity: 91.6, TargetPurity: 75, AddedMetalPurity: 100}
					})
				}()
				wg.Wait()
				close(errs)
				for err := range errs {
					require.NoError(t, err)
				}

				snap, err := store.Load(ctx)
				require.NoError(t, err)
				require.NotNil(t, snap.Amount, "run %d lost the amount input", i)
				require.NotNil(t, snap.Alloy, "run %d lost the alloy input", i)
			}
		})
	}
}
