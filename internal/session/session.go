// Package session keeps the most recent calculator inputs so a later
// invocation can show or reuse them. Only a single snapshot is kept; saving
// replaces it. Stores are passed to their callers explicitly.
package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"gold-calc/core/types"
	"gold-calc/internal/errors"
)

// InterestInput is the interest calculator input as entered
type InterestInput struct {
	Terms types.InterestTerms `json:"terms"`
	Start string              `json:"start"`
	End   string              `json:"end"`
}

// Snapshot is the last input set of each calculator
type Snapshot struct {
	// ID identifies this snapshot; it changes on every save
	ID uuid.UUID `json:"id"`

	// SavedAt is when the snapshot was written
	SavedAt time.Time `json:"saved_at"`

	// Language is the last words language used
	Language types.Language `json:"language,omitempty"`

	Amount   *types.AmountInput `json:"amount,omitempty"`
	Alloy    *types.AlloyInput  `json:"alloy,omitempty"`
	Interest *InterestInput     `json:"interest,omitempty"`
}

// IsEmpty reports whether no calculator input is recorded
func (s *Snapshot) IsEmpty() bool {
	return s == nil || (s.Amount == nil && s.Alloy == nil && s.Interest == nil)
}

// Store persists a single snapshot
type Store interface {
	// Load returns the current snapshot, or an empty one if none was saved
	Load(ctx context.Context) (*Snapshot, error)

	// Save replaces the current snapshot
	Save(ctx context.Context, snap *Snapshot) error

	// Clear removes the current snapshot
	Clear(ctx context.Context) error

	// Update applies fn to the current snapshot and saves it, stamped with
	// now. No other Save or Update runs in between.
	Update(ctx context.Context, now time.Time, fn func(*Snapshot)) error
}

// Update records a change through store.Update
func Update(ctx context.Context, store Store, now time.Time, fn func(*Snapshot)) error {
	return store.Update(ctx, now, fn)
}

func stamp(snap *Snapshot, now time.Time) {
	snap.ID = uuid.New()
	snap.SavedAt = now.UTC()
}

// MemoryStore keeps the snapshot in memory
type MemoryStore struct {
	mu   sync.Mutex
	snap *Snapshot
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the stored snapshot
func (m *MemoryStore) Load(ctx context.Context) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return &Snapshot{}, nil
	}
	cp := *m.snap
	return &cp, nil
}

// Save stores a copy of snap
func (m *MemoryStore) Save(ctx context.Context, snap *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *snap
	m.snap = &cp
	return nil
}

// Update applies fn to a copy of the stored snapshot under the store lock
func (m *MemoryStore) Update(ctx context.Context, now time.Time, fn func(*Snapshot)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var cp Snapshot
	if m.snap != nil {
		cp = *m.snap
	}
	fn(&cp)
	stamp(&cp, now)
	m.snap = &cp
	return nil
}

// Clear drops the stored snapshot
func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = nil
	return nil
}

// FileStore keeps the snapshot in a JSON file
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot file; a missing file is an empty snapshot
func (f *FileStore) Load(ctx context.Context) (*Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

// Save writes the snapshot atomically through a temp file
func (f *FileStore) Save(ctx context.Context, snap *Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(snap)
}

// Update reads, changes and rewrites the file while holding the store lock
func (f *FileStore) Update(ctx context.Context, now time.Time, fn func(*Snapshot)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap, err := f.read()
	if err != nil {
		return err
	}
	fn(snap)
	stamp(snap, now)
	return f.write(snap)
}

func (f *FileStore) read() (*Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Snapshot{}, nil
		}
		return nil, errors.Storage("failed to read session", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Storage("failed to decode session", err)
	}
	return &snap, nil
}

func (f *FileStore) write(snap *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return errors.Storage("failed to create session directory", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return errors.Storage("failed to encode session", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return errors.Storage("failed to write session", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return errors.Storage("failed to replace session", err)
	}
	return nil
}

// Clear deletes the snapshot file
func (f *FileStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Storage("failed to clear session", err)
	}
	return nil
}
