package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethpandaops/loadtest-collect/internal/actions"
	"github.com/ethpandaops/loadtest-collect/internal/config"
	"github.com/ethpandaops/loadtest-collect/internal/report"
	"github.com/spf13/cobra"
)

var errResultDirRequired = errors.New("result directory is required (argument or RESULT_DIR)")

var (
	collectPattern string
	collectFormat  string
	collectWorkers int
	collectVerbose bool
)

var collectCmd = &cobra.Command{
	Use:   "collect [result-dir]",
	Short: "Aggregate node logs into a fleet summary",
	Long: `Aggregate the logs written by every load-test node into one summary.

Every file in the result directory matching the log pattern is read, the metrics table
printed by the node is scraped, and the values are combined across nodes:
  - counters (users, messages, errors) are summed
  - latencies and test duration are averaged over the nodes that reported them
  - messages/sec is recomputed from the combined messages sent and test duration

Logs that cannot be read are skipped with a warning. Logs ending in .gz or .zst are
decompressed on the fly.

Exit codes:
  2  no log files matched the pattern
  3  no log file could be read

Examples:
  loadtest-collect collect ./results
  loadtest-collect collect ./results --format yaml
  loadtest-collect collect ./results --pattern 'node-*.log.gz' --workers 8`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromEnv()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if len(args) == 1 {
			cfg.ResultDir = args[0]
		}
		if cmd.Flags().Changed("pattern") {
			cfg.LogPattern = collectPattern
		}
		if cmd.Flags().Changed("format") {
			cfg.OutputFormat = collectFormat
		}
		if cmd.Flags().Changed("workers") {
			cfg.ParseWorkers = collectWorkers
		}

		if cfg.ResultDir == "" {
			return errResultDirRequired
		}

		setVerbose(collectVerbose)

		return actions.Collect(cmd.Context(), Logger, cfg, cmd.OutOrStdout())
	},
}

func init() {
	collectCmd.Flags().StringVar(&collectPattern, "pattern", config.DefaultLogPattern, "Glob pattern of node log files")
	collectCmd.Flags().StringVarP(&collectFormat, "format", "f", config.DefaultOutputFormat,
		"Output format ("+strings.Join(report.Formats(), ", ")+")")
	collectCmd.Flags().IntVarP(&collectWorkers, "workers", "w", config.DefaultParseWorkers, "Number of logs read concurrently")
	collectCmd.Flags().BoolVarP(&collectVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(collectCmd)
}
