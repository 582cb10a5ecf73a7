// Package source discovers node log files and reads their contents.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"
)

var (
	// ErrDirectoryNotFound is returned when the result directory does not exist.
	ErrDirectoryNotFound = errors.New("result directory not found")
	// ErrNotDirectory is returned when the result path is not a directory.
	ErrNotDirectory = errors.New("result path is not a directory")
)

// Discover returns the paths in dir matching pattern, sorted by name.
func Discover(dir, pattern string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}

		return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid log pattern %q: %w", pattern, err)
	}

	sort.Strings(matches)

	return matches, nil
}

// Reader loads the full text of a node log.
type Reader interface {
	Read(path string) (string, error)
}

// fileReader implements Reader for local files, decompressing .gz and .zst logs.
type fileReader struct {
	log logrus.FieldLogger
}

// NewReader creates a new file reader
func NewReader(log logrus.FieldLogger) Reader {
	return &fileReader{
		log: log.WithField("component", "source.reader"),
	}
}

// Read opens path, reads it fully and closes it before returning.
// Invalid UTF-8 sequences are dropped.
func (r *fileReader) Read(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from directory discovery
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			r.log.WithError(cerr).WithField("file", path).Debug("Failed to close log file")
		}
	}()

	data, err := readAll(f, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	r.log.WithFields(logrus.Fields{
		"file":  path,
		"bytes": len(data),
	}).Debug("Read log file")

	return strings.ToValidUTF8(string(data), ""), nil
}

func readAll(f io.Reader, path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()

		return io.ReadAll(zr)
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()

		return io.ReadAll(zr)
	default:
		return io.ReadAll(f)
	}
}

// Compile-time interface compliance check
var _ Reader = (*fileReader)(nil)
