package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"comicstudio/internal/imagecodec"
)

func authorCmd() *cobra.Command {
	var name, role, photo string
	cmd := &cobra.Command{
		Use:   "author",
		Short: "Show or edit the author profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			_, author := a.studio.Snapshot()
			flags := cmd.Flags()
			if flags.Changed("name") || flags.Changed("role") || flags.Changed("photo") {
				if flags.Changed("name") {
					author.Name = name
				}
				if flags.Changed("role") {
					author.Role = role
				}
				if flags.Changed("photo") {
					author.Photo = ""
					if photo != "" {
						data, err := os.ReadFile(photo)
						if err != nil {
							return fmt.Errorf("reading %s: %w", photo, err)
						}
						raw, err := imagecodec.FromBytes(data)
						if err != nil {
							return err
						}
						if author.Photo, err = a.codec().Compress(ctx, raw.String()); err != nil {
							return err
						}
					}
				}
				if err := a.studio.SetAuthor(ctx, author); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", author.Name, author.Role)
			if author.Photo != "" {
				fmt.Fprintln(cmd.OutOrStdout(), "photo: set")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Author name")
	cmd.Flags().StringVar(&role, "role", "", "Author role")
	cmd.Flags().StringVar(&photo, "photo", "", "Photo image file; empty removes it")
	return cmd
}
