package cmd

import (
	"github.com/ethpandaops/loadtest-collect/internal/actions"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the metrics scraped from node logs",
	Long: `Lists every metric in the catalog with the table label it is scraped from,
its numeric kind, how it is combined across nodes and the report section it appears in.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return actions.ShowCatalog(Logger, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
