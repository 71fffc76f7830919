package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"comicstudio/internal/validate"
)

var errValidation = errors.New("validation found errors")

func validateCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the stored universes and session for consistency problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			tree, _ := a.studio.Snapshot()
			report := validate.Run(tree, a.studio.Session())
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return fmt.Errorf("encoding report: %w", err)
				}
			} else {
				writeReport(cmd.OutOrStdout(), report)
			}
			if report.HasErrors() {
				return errValidation
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}

func writeReport(out io.Writer, report *validate.Report) {
	if len(report.Issues) == 0 {
		fmt.Fprintln(out, "No issues found.")
		return
	}
	errs, warns := report.Counts()
	sections := []struct {
		severity validate.Severity
		title    string
		count    int
	}{
		{validate.SeverityError, "Errors", errs},
		{validate.SeverityWarn, "Warnings", warns},
	}
	first := true
	for _, sec := range sections {
		if sec.count == 0 {
			continue
		}
		if !first {
			fmt.Fprintln(out)
		}
		first = false
		fmt.Fprintf(out, "%s (%d):\n", sec.title, sec.count)
		for _, issue := range report.Issues {
			if issue.Severity != sec.severity {
				continue
			}
			where := issue.Path
			if where == "" {
				where = issue.Universe
			}
			if where == "" {
				where = "session"
			}
			fmt.Fprintf(out, "  - [%s] %s: %s\n", issue.Code, where, issue.Message)
		}
	}
}
