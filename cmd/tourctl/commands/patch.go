package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var patchCmd = &cobra.Command{
	Use:   "patch",
	Short: "Inspect and run schema patches",
}

var patchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered patches in run order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			patches := e.patches.ListPatches()
			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, patches)
			}
			tw := newTable(out)
			fmt.Fprintln(tw, "NAME\tDESCRIPTION")
			for _, p := range patches {
				fmt.Fprintf(tw, "%s\t%s\n", p.Name, p.Description)
			}
			return tw.Flush()
		})
	},
}

var patchRunCmd = &cobra.Command{
	Use:   "run [name...]",
	Short: "Run the named patches, or all of them",
	Long: `Run schema patches. Every patch is idempotent, so running all of them again is safe.

Examples:
  tourctl patch run                 # run every patch
  tourctl patch run city_slug       # run one patch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			report, err := e.patches.RunPatches(ctx, args...)
			if err != nil {
				return err
			}
			if err := printPatchReport(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if !report.Success {
				return fmt.Errorf("patch run finished with errors")
			}
			return nil
		})
	},
}

var patchRunsLimit int

var patchHistoryCmd = &cobra.Command{
	Use:   "history [name]",
	Short: "Show recorded patch steps, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			runs, err := e.patches.ListRuns(ctx, name, patchRunsLimit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, runs)
			}
			tw := newTable(out)
			fmt.Fprintln(tw, "WHEN\tPATCH\tTARGET\tACTION\tOK\tERROR")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n",
					time.Unix(r.CreatedAt, 0).UTC().Format("2006-01-02 15:04:05"), r.Patch, r.Target, r.Action, r.Success, r.Error)
			}
			return tw.Flush()
		})
	},
}

func init() {
	patchHistoryCmd.Flags().IntVar(&patchRunsLimit, "limit", 50, "Maximum rows to show")
	patchCmd.AddCommand(patchListCmd, patchRunCmd, patchHistoryCmd)
	rootCmd.AddCommand(patchCmd)
}
