package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.log")

	log, closeFn, err := New(path)
	require.NoError(t, err)
	log.Info("refreshed", "count", 3)
	require.NoError(t, closeFn())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"refreshed"`)
	assert.Contains(t, string(b), `"count":3`)
}

func TestNewWithoutPathDiscards(t *testing.T) {
	log, closeFn, err := New("")
	require.NoError(t, err)
	require.NotNil(t, log)
	log.Info("dropped")
	assert.NoError(t, closeFn())
}

func TestNewBadPath(t *testing.T) {
	_, _, err := New(filepath.Join(t.TempDir(), "missing", "roster.log"))
	assert.Error(t, err)
}
