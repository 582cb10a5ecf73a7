// Package cmd contains CLI command definitions
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ethpandaops/loadtest-collect/internal/actions"
	"github.com/ethpandaops/loadtest-collect/internal/config"
	"github.com/ethpandaops/loadtest-collect/internal/report"
	"github.com/ethpandaops/loadtest-collect/pkg/interactive"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch interactive mode",
	Long:  `Launches the interactive terminal menu for collecting load-test results.`,
	Run: func(_ *cobra.Command, _ []string) {
		RunInteractive()
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

// RunInteractive shows the main menu until the user exits.
func RunInteractive() {
	fmt.Println("Load Test Collector - Interactive Mode")
	fmt.Println("======================================")
	fmt.Println()

	for {
		options := []interactive.MenuOption{
			{
				Name:        "📊 Collect Results",
				Description: "Aggregate node logs from a result directory",
				Action: func() error {
					if err := collectInteractive(); err != nil {
						fmt.Printf("\n❌ Error: %v\n", err)
					}
					interactive.PauseForEnter()
					return nil
				},
			},
			{
				Name:        "📐 Metric Catalog",
				Description: "List the metrics scraped from node logs",
				Action: func() error {
					if err := actions.ShowCatalog(Logger, os.Stdout); err != nil {
						fmt.Printf("\n❌ Error: %v\n", err)
					}
					interactive.PauseForEnter()
					return nil
				},
			},
			{
				Name:        "📋 Show Config",
				Description: "Display current environment configuration",
				Action: func() error {
					if err := actions.ShowConfig(os.Stdout); err != nil {
						fmt.Printf("\n❌ Error: %v\n", err)
					}
					interactive.PauseForEnter()
					return nil
				},
			},
		}

		if err := interactive.ShowMainMenu(options); err != nil {
			if errors.Is(err, interactive.ErrExit) {
				fmt.Println("Goodbye!")
				return
			}
			log.Fatal(err)
		}

		fmt.Println()
	}
}

// collectInteractive prompts for the collection settings, defaulting to the configured ones.
func collectInteractive() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.ResultDir, err = interactive.Ask("Result directory:", cfg.ResultDir); err != nil {
		return err
	}

	if cfg.LogPattern, err = interactive.Ask("Log file pattern:", cfg.LogPattern); err != nil {
		return err
	}

	if cfg.OutputFormat, err = interactive.Choose("Output format:", report.Formats(), cfg.OutputFormat); err != nil {
		return err
	}

	level := Logger.GetLevel()
	if interactive.Confirm("Show per-file debug output?") {
		Logger.SetLevel(logrus.DebugLevel)
	}
	defer Logger.SetLevel(level)

	fmt.Println()

	return actions.Collect(context.Background(), Logger, cfg, os.Stdout)
}
