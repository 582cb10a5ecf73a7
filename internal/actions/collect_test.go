package actions

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethpandaops/loadtest-collect/internal/config"
	"github.com/ethpandaops/loadtest-collect/internal/pipeline"
	"github.com/ethpandaops/loadtest-collect/internal/source"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(dir, format string) *config.Config {
	return &config.Config{
		ResultDir:    dir,
		LogPattern:   config.DefaultLogPattern,
		OutputFormat: format,
		ParseWorkers: 2,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

func TestCollect_WritesSummary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"node-1.log", "node-2.log", "node-3.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("Messages Sent | 100\nElapsed Time | 10s\n"), 0o600))
	}

	var out bytes.Buffer
	require.NoError(t, Collect(context.Background(), logrus.New(), testConfig(dir, "text"), &out))

	assert.Contains(t, out.String(), "Total Nodes:          3\n")
	assert.Contains(t, out.String(), "Total Messages Sent:  300\n")
	assert.Contains(t, out.String(), "Messages/sec:         30.00\n")
}

func TestCollect_NoInput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := Collect(context.Background(), logrus.New(), testConfig(t.TempDir(), "table"), &out)

	require.ErrorIs(t, err, pipeline.ErrNoInput)
	assert.Empty(t, out.String())
}

func TestCollect_NoData(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "node-1.log"), 0o755))

	var out bytes.Buffer
	err := Collect(context.Background(), logrus.New(), testConfig(dir, "table"), &out)

	require.ErrorIs(t, err, pipeline.ErrNoData)
	assert.Empty(t, out.String())
}

func TestCollect_MissingDirectory(t *testing.T) {
	t.Parallel()

	err := Collect(context.Background(), logrus.New(), testConfig(filepath.Join(t.TempDir(), "nope"), "table"), &bytes.Buffer{})
	require.ErrorIs(t, err, source.ErrDirectoryNotFound)
}

func TestShowCatalog(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, ShowCatalog(logrus.New(), &out))
	assert.Contains(t, out.String(), "avg_connection_time")
}
