package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"comicstudio/internal/universe"
)

const uploadWorkers = 4

func imageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Manage gallery images",
	}
	cmd.AddCommand(imageAddCmd())
	return cmd
}

type uploadResult struct {
	file string
	id   string
	err  error
}

func imageAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <gallery-path> <file>...",
		Short: "Compress image files and append them to a gallery",
		Long: "Compress image files and append them to the gallery of the node at gallery-path. " +
			"Files are processed in parallel and may be appended in any order.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			gallery, err := nodePath(a, args[0])
			if err != nil {
				return err
			}
			if _, ok := a.studio.Find(gallery); !ok {
				return fmt.Errorf("nothing at %s", gallery)
			}

			files := args[1:]
			results := make([]uploadResult, len(files))
			codec := a.codec()
			var g errgroup.Group
			g.SetLimit(uploadWorkers)
			for i, file := range files {
				g.Go(func() error {
					results[i].file = file
					data, err := os.ReadFile(file)
					if err != nil {
						results[i].err = err
						return nil
					}
					results[i].id, results[i].err = a.studio.AddImage(ctx, codec, gallery, file, data)
					return nil
				})
			}
			_ = g.Wait()

			failed := 0
			for _, r := range results {
				switch {
				case r.err != nil:
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.file, r.err)
				case r.id == "":
					fmt.Fprintf(cmd.OutOrStdout(), "%s: gallery removed, skipped\n", r.file)
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", r.file, gallery.Child(universe.Images, r.id))
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d images failed", failed, len(files))
			}
			return nil
		},
	}
}
