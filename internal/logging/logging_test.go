package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCalculatorLoggerTagsEntries(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(Config{Level: "debug", Format: "json"}, &buf)
	defer InitializeDefault()

	Calculator("alloy").Debug("computed adjustment", zap.Float64("weight_to_add", 2.2133))
	Sync()

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "alloy", entry["calculator"])
	assert.Equal(t, "computed adjustment", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.Contains(t, entry, "timestamp")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(Config{Level: "warn", Format: "json"}, &buf)
	defer InitializeDefault()

	Info("dropped")
	Warn("kept")
	Sync()

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(Config{Level: "loud", Format: "json"}, &buf)
	defer InitializeDefault()

	Debug("hidden")
	Info("shown")
	Sync()

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
