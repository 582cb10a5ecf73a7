// Package main is the entry point for the loadtest-collect application
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethpandaops/loadtest-collect/cmd"
)

const (
	envFlag      = "--env"
	envFlagEqual = "--env="
)

func main() {
	// Parse --env flag and determine mode
	envFile, runTUI := parseArgs(os.Args)

	if !runTUI {
		// Arguments provided - run cobra CLI (it will handle --env flag itself)
		cmd.Execute()
		return
	}

	if err := cmd.LoadEnvFile(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading env file: %v\n", err)
		os.Exit(cmd.ExitFailure)
	}

	if err := cmd.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cmd.ExitFailure)
	}

	cmd.RunInteractive()
}

// parseArgs extracts the env file and reports whether interactive mode should run.
// Interactive mode runs when no arguments other than --env are given.
func parseArgs(args []string) (envFile string, runTUI bool) {
	for i, arg := range args {
		if arg == envFlag && i+1 < len(args) {
			envFile = args[i+1]
			break
		}
		if strings.HasPrefix(arg, envFlagEqual) {
			envFile = arg[len(envFlagEqual):]
			break
		}
	}

	switch len(args) {
	case 1:
		return envFile, true
	case 2:
		// Only --env=value provided, run TUI; a bare --env falls through to cobra's error
		return envFile, strings.HasPrefix(args[1], envFlagEqual)
	case 3:
		return envFile, args[1] == envFlag
	default:
		return envFile, false
	}
}
