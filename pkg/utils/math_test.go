package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi float64
		expected  float64
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -3, 0, 10, 0},
		{"above", 12, 0, 10, 10},
		{"on lower bound", 0, 0, 10, 0},
		{"on upper bound", 10, 0, 10, 10},
		{"inverted range", 5, 8, 2, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clamp(tt.v, tt.lo, tt.hi))
		})
	}
}

func TestPointInRect(t *testing.T) {
	assert.True(t, PointInRect(1, 1, 0, 0, 2, 2))
	assert.True(t, PointInRect(2, 0, 0, 0, 2, 2), "edges are inclusive")
	assert.False(t, PointInRect(2.01, 1, 0, 0, 2, 2))
	assert.False(t, PointInRect(1, -0.01, 0, 0, 2, 2))
}

func TestNewLogger(t *testing.T) {
	for _, verbose := range []bool{true, false} {
		logger, err := NewLogger(verbose)
		require.NoError(t, err)
		require.NotNil(t, logger)
	}

	nop, err := NewFileLogger("", false)
	require.NoError(t, err)
	nop.Info("discarded")

	fileLogger, err := NewFileLogger(filepath.Join(t.TempDir(), "pong.log"), true)
	require.NoError(t, err)
	fileLogger.Debug("written")
	_ = fileLogger.Sync()
}
