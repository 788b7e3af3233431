package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var enrichLimit int

var enrichCmd = &cobra.Command{
	Use:   "enrich <table>",
	Short: "Write missing descriptions with the configured AI provider",
	Long: `Generate descriptions for rows with an empty description column.
The provider comes from ENRICH_PROVIDER (openai or gemini).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			report, err := e.enricher.EnrichDescriptions(ctx, args[0], enrichLimit)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), report)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: scanned %d, updated %d, failed %d\n",
				report.Table, report.Scanned, report.Updated, report.Failed)
			return nil
		})
	},
}

func init() {
	enrichCmd.Flags().IntVar(&enrichLimit, "limit", 20, "Maximum rows to describe")
	rootCmd.AddCommand(enrichCmd)
}
