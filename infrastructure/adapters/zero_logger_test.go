package adapters

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologWrapper_WritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologWrapperWithWriter(&buf, "info")

	logger.ErrorWithFields(errors.New("boom"), "Stage failed", map[string]interface{}{
		"stage":   "voice_synthesis",
		"segment": 2,
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "Stage failed", entry["message"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "voice_synthesis", entry["stage"])
	assert.EqualValues(t, 2, entry["segment"])
	assert.Contains(t, entry, "time")
}

func TestZerologWrapper_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologWrapperWithWriter(&buf, "warn")

	logger.Info("hidden")
	logger.DebugWithFields("hidden", map[string]interface{}{"k": "v"})
	assert.Zero(t, buf.Len())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestZerologWrapper_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologWrapperWithWriter(&buf, "chatty")

	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
