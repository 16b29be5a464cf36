package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, production := range []bool{true, false} {
		log, err := New(production)
		require.NoError(t, err)
		require.NotNil(t, log.SugaredLogger)
	}
}

// TestWithCarriesFields verifies that fields added with With show up on every entry.
func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := FromZap(zap.New(core)).With("component", "test")

	log.Debug("debug entry", "n", 1)
	log.Warn("warn entry")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "debug entry", entries[0].Message)
	assert.Equal(t, "test", entries[0].ContextMap()["component"])
	assert.Equal(t, int64(1), entries[0].ContextMap()["n"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
}
