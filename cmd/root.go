package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ethpandaops/loadtest-collect/internal/config"
	"github.com/ethpandaops/loadtest-collect/internal/pipeline"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Exit codes reported to the shell
const (
	ExitFailure = 1
	ExitNoInput = 2
	ExitNoData  = 3
)

var (
	// Logger is the shared logger instance for all commands
	Logger *logrus.Logger

	envFile string

	rootCmd = &cobra.Command{
		Use:   "loadtest-collect",
		Short: "Aggregate distributed load-test results",
		Long: `loadtest-collect reads the log written by every load-test node, extracts the
summary metrics each node printed and reports a single fleet-wide summary.

Run without arguments to launch interactive mode, or use subcommands for direct operations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := LoadEnvFile(envFile); err != nil {
				return err
			}

			return InitLogger()
		},
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(ExitCode(err))
	}
}

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, pipeline.ErrNoInput):
		return ExitNoInput
	case errors.Is(err, pipeline.ErrNoData):
		return ExitNoData
	default:
		return ExitFailure
	}
}

func init() {
	// Initialize the shared logger, reconfigured from the environment once flags are parsed
	Logger = logrus.New()
	Logger.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "env file to load (default "+config.DefaultEnvFile+")")
}
