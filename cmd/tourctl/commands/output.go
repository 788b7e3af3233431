package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"tunitour/internal/models/response_models"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printPatchReport(w io.Writer, report response_models.PatchReport) error {
	if jsonOutput {
		return printJSON(w, report)
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "PATCH\tTARGET\tACTION\tRESULT")
	for _, s := range report.Steps {
		result := s.Detail
		if s.Error != "" {
			result = "error: " + s.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Patch, s.Target, s.Action, result)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if report.Success {
		fmt.Fprintln(w, "all steps succeeded")
	} else {
		fmt.Fprintln(w, "some steps failed")
	}
	return nil
}

func printLinkReports(w io.Writer, reports ...response_models.LinkReport) error {
	if jsonOutput {
		return printJSON(w, reports)
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "TABLE\tSCANNED\tUPDATED\tSKIPPED\tFAILED\tERROR")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%s\n", r.Table, r.Scanned, r.Updated, r.Skipped, r.Failed, r.Error)
	}
	return tw.Flush()
}

func printMigration(w io.Writer, report response_models.MigrationReport) error {
	if jsonOutput {
		return printJSON(w, report)
	}
	fmt.Fprintf(w, "city %s\n", report.CitySlug)
	tw := newTable(w)
	fmt.Fprintln(tw, "CATEGORY\tSOURCE\tFOUND\tCOPIED\tSKIPPED\tFAILED")
	for _, c := range report.Categories {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%d\t%d\t%d\n", c.Category, c.SourceTable, c.Found, c.Copied, c.Skipped, c.Failed)
	}
	return tw.Flush()
}
