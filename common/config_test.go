package common

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "verdicts", cfg.AMQPExchange)
	assert.Equal(t, ":8080", cfg.IngestAddr)
	assert.Equal(t, uint64(1<<24), cfg.IngestMaxSkip)
	assert.Equal(t, uint(1), cfg.IngestWorkers)
}

func TestLoadConfigLayers(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(file, []byte("DB_USER=rng\nDB_NAME=fromfile\nINGEST_MAX_SKIP=1000\n"), 0o600))

	t.Setenv("DB_NAME", "fromenv")
	t.Setenv("INGEST_WORKERS", "4")

	cfg, err := LoadConfig(file)
	require.NoError(t, err)

	assert.Equal(t, "rng", cfg.DBUser)
	assert.Equal(t, "fromenv", cfg.DBName)
	assert.Equal(t, uint64(1000), cfg.IngestMaxSkip)
	assert.Equal(t, uint(4), cfg.IngestWorkers)
}

func TestLoadConfigBadValue(t *testing.T) {
	t.Setenv("INGEST_MAX_SKIP", "lots")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadConfigRejectsZeroWorkers(t *testing.T) {
	t.Setenv("INGEST_WORKERS", "0")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "INGEST_WORKERS")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := newLogger(&buf, "test", "debug")
	assert.Equal(t, log.DebugLevel, logger.GetLevel())

	logger = newLogger(&buf, "test", "loud")
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), "unknown log level")
}
