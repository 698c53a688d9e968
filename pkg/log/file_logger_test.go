package log

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoggerCreatesFileAndDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "run.tlog")

	logger, err := NewFileLogger(path)
	require.NoError(t, err)
	defer logger.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileLoggerWritesCBOR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.tlog")

	logger, err := NewFileLogger(path)
	require.NoError(t, err)

	logger.Log(sampleEvent(5))
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := DecodeEvent(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), decoded.Cycle)
	assert.Equal(t, 601.5, decoded.Reading.LevelCM)

	written, failed := logger.Stats()
	assert.Equal(t, uint64(1), written)
	assert.Zero(t, failed)
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.tlog")

	for i := uint64(1); i <= 2; i++ {
		logger, err := NewFileLogger(path)
		require.NoError(t, err)
		logger.Log(sampleEvent(i))
		require.NoError(t, logger.Close())
	}

	assert.Len(t, readAll(t, path, Filter{}), 2)
}

func TestFileLoggerCloseIdempotent(t *testing.T) {
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "run.tlog"))
	require.NoError(t, err)

	require.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())

	// Dropped silently after close.
	logger.Log(sampleEvent(1))
	written, _ := logger.Stats()
	assert.Zero(t, written)
}

func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.tlog")
	logger, err := NewFileLogger(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				logger.Log(sampleEvent(uint64(g*100 + i)))
			}
		}(g)
	}
	wg.Wait()
	require.NoError(t, logger.Close())

	assert.Len(t, readAll(t, path, Filter{}), 200)
}

func TestNewFileLoggerBadPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := NewFileLogger(filepath.Join(blocker, "run.tlog"))
	assert.Error(t, err)
}
