// Package actions contains the operations shared by the CLI commands and interactive mode
package actions

import (
	"context"
	"fmt"
	"io"

	"github.com/ethpandaops/loadtest-collect/internal/catalog"
	"github.com/ethpandaops/loadtest-collect/internal/config"
	"github.com/ethpandaops/loadtest-collect/internal/pipeline"
	"github.com/ethpandaops/loadtest-collect/internal/report"
	"github.com/ethpandaops/loadtest-collect/internal/source"
	"github.com/sirupsen/logrus"
)

// Collect discovers the node logs in cfg.ResultDir, aggregates them and writes the summary to out.
// Nothing is written to out unless at least one log was read.
func Collect(ctx context.Context, log logrus.FieldLogger, cfg *config.Config, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	reporter, err := report.New(log, cfg.OutputFormat)
	if err != nil {
		return err
	}

	paths, err := source.Discover(cfg.ResultDir, cfg.LogPattern)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		log.WithField("pattern", cfg.LogPattern).Errorf("Looking in: %s", cfg.ResultDir)
		return fmt.Errorf("%w matching %q in %s", pipeline.ErrNoInput, cfg.LogPattern, cfg.ResultDir)
	}

	c := catalog.Default()
	svc := pipeline.NewService(log, pipeline.Config{Workers: cfg.ParseWorkers}, c, source.NewReader(log))

	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start pipeline: %w", err)
	}
	defer func() {
		if err := svc.Stop(); err != nil {
			log.WithError(err).Warn("Failed to stop pipeline")
		}
	}()

	result, err := svc.Collect(ctx, paths)
	if err != nil {
		return err
	}

	return reporter.Render(out, report.Report{
		Catalog:    c,
		Aggregated: result.Aggregated,
		Discovered: result.Discovered,
		Failed:     len(result.Failures),
	})
}

// ShowCatalog writes the metric catalog as a table.
func ShowCatalog(log logrus.FieldLogger, w io.Writer) error {
	return report.RenderCatalog(w, report.NewRenderer(log), catalog.Default())
}
