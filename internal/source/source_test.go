package source

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "│ Messages Sent │ 100 │\n"

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0o600))
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"node-2.log", "node-1.log", "summary.log", "node-10.log"} {
		writeFile(t, filepath.Join(dir, name), []byte(sample))
	}

	paths, err := Discover(dir, "node-*.log")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "node-1.log"),
		filepath.Join(dir, "node-10.log"),
		filepath.Join(dir, "node-2.log"),
	}, paths)
}

func TestDiscover_NoMatches(t *testing.T) {
	t.Parallel()

	paths, err := Discover(t.TempDir(), "node-*.log")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	writeFile(t, file, []byte("x"))

	_, err := Discover(filepath.Join(dir, "missing"), "node-*.log")
	require.ErrorIs(t, err, ErrDirectoryNotFound)

	_, err = Discover(file, "node-*.log")
	require.ErrorIs(t, err, ErrNotDirectory)

	_, err = Discover(dir, "node-[.log")
	require.ErrorIs(t, err, filepath.ErrBadPattern)
}

func TestReader_Plain(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "node-1.log")
	writeFile(t, path, []byte(sample))

	text, err := NewReader(logrus.New()).Read(path)
	require.NoError(t, err)
	assert.Equal(t, sample, text)
}

func TestReader_DropsInvalidUTF8(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "node-1.log")
	writeFile(t, path, append([]byte{0xff, 0xfe}, []byte(sample)...))

	text, err := NewReader(logrus.New()).Read(path)
	require.NoError(t, err)
	assert.Equal(t, sample, text)
}

func TestReader_Gzip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "node-1.log.gz")
	writeFile(t, path, buf.Bytes())

	text, err := NewReader(logrus.New()).Read(path)
	require.NoError(t, err)
	assert.Equal(t, sample, text)
}

func TestReader_Zstd(t *testing.T) {
	t.Parallel()

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	compressed := enc.EncodeAll([]byte(sample), nil)
	require.NoError(t, enc.Close())

	path := filepath.Join(t.TempDir(), "node-1.log.zst")
	writeFile(t, path, compressed)

	text, err := NewReader(logrus.New()).Read(path)
	require.NoError(t, err)
	assert.Equal(t, sample, text)
}

func TestReader_Failures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	reader := NewReader(logrus.New())

	_, err := reader.Read(filepath.Join(dir, "missing.log"))
	require.ErrorIs(t, err, os.ErrNotExist)

	corrupt := filepath.Join(dir, "node-1.log.gz")
	writeFile(t, corrupt, []byte("not gzip"))
	_, err = reader.Read(corrupt)
	require.Error(t, err)

	sub := filepath.Join(dir, "node-2.log")
	require.NoError(t, os.Mkdir(sub, 0o755))
	_, err = reader.Read(sub)
	require.Error(t, err)
}
