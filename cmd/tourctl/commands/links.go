package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var linksAll bool

var linksCmd = &cobra.Command{
	Use:   "links [table]",
	Short: "Fill missing google_map_link values",
	Long: `Generate Google Maps search links for rows whose link is empty.

Examples:
  tourctl links attractions_tunis     # one table
  tourctl links --all                 # every content table`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if linksAll == (len(args) == 1) {
			return fmt.Errorf("give a table name or --all")
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			if linksAll {
				reports, err := e.links.GenerateAllMapLinks(ctx)
				if err != nil {
					return err
				}
				return printLinkReports(cmd.OutOrStdout(), reports...)
			}
			report, err := e.links.GenerateMapLinks(ctx, args[0])
			if err != nil {
				return err
			}
			return printLinkReports(cmd.OutOrStdout(), report)
		})
	},
}

func init() {
	linksCmd.Flags().BoolVar(&linksAll, "all", false, "Process every content table")
	rootCmd.AddCommand(linksCmd)
}
