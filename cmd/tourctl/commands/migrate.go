package commands

import (
	"context"

	"github.com/spf13/cobra"
)

var migrateCityCmd = &cobra.Command{
	Use:   "migrate-city <slug>",
	Short: "Copy a city's per-city tables into the canonical content tables",
	Long: `Copy rows from attractions_<city>, restaurants_<city> and activities_<city> into the
canonical tables, tagged with the city slug. Running it twice does not duplicate rows.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			report, err := e.migrate.MigrateCity(ctx, args[0])
			if err != nil {
				return err
			}
			return printMigration(cmd.OutOrStdout(), report)
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCityCmd)
}
