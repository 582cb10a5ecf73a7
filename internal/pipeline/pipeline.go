// Package pipeline reads node logs, extracts their metrics and aggregates them across the fleet.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ethpandaops/loadtest-collect/internal/catalog"
	"github.com/ethpandaops/loadtest-collect/internal/extract"
	"github.com/ethpandaops/loadtest-collect/internal/metrics"
	"github.com/ethpandaops/loadtest-collect/internal/source"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Common errors
var (
	ErrNoInput = errors.New("no log files found")
	ErrNoData  = errors.New("no metrics could be extracted")
)

// DefaultWorkers is the number of logs read concurrently when Config.Workers is unset.
const DefaultWorkers = 4

// Config holds the pipeline configuration
type Config struct {
	Workers int
}

// Result is the outcome of a collection run.
type Result struct {
	Discovered int
	Nodes      []metrics.NodeMetrics
	Failures   []metrics.FileFailure
	Aggregated metrics.Aggregated
	ParseRate  float64 // percentage of discovered logs that were read
	Duration   time.Duration
}

// Service runs the collection pipeline.
type Service interface {
	Start(ctx context.Context) error
	Stop() error
	Collect(ctx context.Context, paths []string) (*Result, error)
}

type service struct {
	log     logrus.FieldLogger
	cfg     Config
	catalog *catalog.Catalog
	reader  source.Reader
}

// NewService creates a new pipeline service instance
func NewService(log logrus.FieldLogger, cfg Config, c *catalog.Catalog, reader source.Reader) Service {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}

	return &service{
		log:     log.WithField("service", "pipeline"),
		cfg:     cfg,
		catalog: c,
		reader:  reader,
	}
}

func (s *service) Start(_ context.Context) error {
	s.log.Debug("Starting pipeline service")
	return nil
}

func (s *service) Stop() error {
	s.log.Debug("Stopping pipeline service")
	return nil
}

// Collect reads every path, skipping logs that cannot be read, and aggregates the rest.
// It returns ErrNoInput for an empty path list and ErrNoData when no log could be read.
func (s *service) Collect(ctx context.Context, paths []string) (*Result, error) {
	if len(paths) == 0 {
		return nil, ErrNoInput
	}

	s.log.WithFields(logrus.Fields{
		"files":   len(paths),
		"workers": s.cfg.Workers,
	}).Infof("Found %d log files", len(paths))

	collector := metrics.NewCollector(s.log, s.catalog, len(paths))
	if err := collector.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start metrics collector: %w", err)
	}
	defer func() {
		if err := collector.Stop(); err != nil {
			s.log.WithError(err).Warn("Failed to stop metrics collector")
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			s.processFile(i, path, collector)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("collection interrupted: %w", err)
	}

	summary := collector.GetSummary()
	if summary.Parsed == 0 {
		return nil, fmt.Errorf("%w: %d of %d files could not be read", ErrNoData, summary.Failed, summary.Discovered)
	}

	s.log.WithFields(logrus.Fields{
		"parsed":   summary.Parsed,
		"failed":   summary.Failed,
		"duration": summary.TotalDuration,
	}).Debug("Collection complete")

	return &Result{
		Discovered: summary.Discovered,
		Nodes:      collector.GetNodes(),
		Failures:   collector.GetFailures(),
		Aggregated: summary.Aggregated,
		ParseRate:  summary.ParseRate,
		Duration:   summary.TotalDuration,
	}, nil
}

// processFile handles one log. A read failure is recorded and never stops the run.
func (s *service) processFile(index int, path string, collector metrics.Collector) {
	name := filepath.Base(path)
	log := s.log.WithField("file", name)

	text, err := s.reader.Read(path)
	if err != nil {
		log.WithError(err).Warnf("Could not parse %s", name)
		collector.RecordFailure(index, metrics.FileFailure{Path: path, Err: err})

		return
	}

	node := metrics.Build(name, extract.Extract(text, s.catalog), s.catalog)
	if missing := node.Missing(); len(missing) > 0 {
		log.WithField("missing", missing).Debug("Metrics not found in log, defaulting to 0")
	}

	log.Infof("Parsed %s", name)
	collector.RecordNode(index, node)
}

// Compile-time interface compliance check
var _ Service = (*service)(nil)
