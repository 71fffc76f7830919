package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"comicstudio/internal/export"
)

func exportCmd() *cobra.Command {
	var outDir string
	var images bool
	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Write a universe to a Markdown project file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			u, err := a.universe(firstArg(args))
			if err != nil {
				return err
			}
			_, author := a.studio.Snapshot()
			var buf bytes.Buffer
			if err := (export.Markdown{Images: images}).Export(&buf, u, author); err != nil {
				return err
			}

			path := filepath.Join(outDir, export.Filename(u))
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "Directory to write the file to")
	cmd.Flags().BoolVar(&images, "images", true, "Include embedded images")
	return cmd
}
