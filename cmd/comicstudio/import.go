package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"comicstudio/internal/ingest"
	"comicstudio/internal/universe"
)

func importCmd() *cobra.Command {
	var name string
	var exclude []string
	cmd := &cobra.Command{
		Use:   "import <dir>...",
		Short: "Build a universe from Markdown files with YAML frontmatter",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			u, result, err := ingest.Run(ctx, args, ingest.Options{Name: name, Exclude: exclude, Log: a.log})
			if err != nil {
				return err
			}
			if err := a.studio.ImportUniverse(ctx, u); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %s (%s).\n", u.Name, u.ID)
			kinds := make([]universe.Kind, 0, len(result.Imported))
			for kind := range result.Imported {
				kinds = append(kinds, kind)
			}
			sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
			for _, kind := range kinds {
				fmt.Fprintf(out, "  %-10s %d\n", kind+":", result.Imported[kind])
			}
			fmt.Fprintf(out, "  Files skipped: %d\n", result.FilesSkipped)

			if len(result.Errors) > 0 {
				fmt.Fprintf(out, "\nErrors (%d):\n", len(result.Errors))
				for _, item := range result.Errors {
					fmt.Fprintf(out, "  - %v\n", item)
				}
				return fmt.Errorf("import completed with errors")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Universe name (defaults to the directory name)")
	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "Path prefix to skip (repeatable)")
	return cmd
}
