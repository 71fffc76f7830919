package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"comicstudio/internal/export"
	"comicstudio/internal/universe"
)

func universeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "universe",
		Aliases: []string{"u"},
		Short:   "Create, list, show, select and delete universes",
	}
	cmd.AddCommand(universeCreateCmd())
	cmd.AddCommand(universeListCmd())
	cmd.AddCommand(universeShowCmd())
	cmd.AddCommand(universeSelectCmd())
	cmd.AddCommand(universeDeleteCmd())
	cmd.AddCommand(universeLogoCmd())
	return cmd
}

func universeCreateCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a universe and make it active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			id, err := a.studio.CreateUniverse(ctx)
			if err != nil {
				return err
			}
			if name != "" {
				if err := a.studio.Update(ctx, universe.UniversePath(id), universe.Patch{"name": name}); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Name of the new universe")
	return cmd
}

func universeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List universes; the active one is marked with *",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			tree, _ := a.studio.Snapshot()
			if len(tree) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No universes yet. Run `comicstudio universe create`.")
				return nil
			}
			active := a.studio.Session().ActiveUniverseID
			for _, u := range tree {
				marker := " "
				if u.ID == active {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s (%d characters, %d locations, %d scripts)\n",
					marker, u.ID, u.Name, len(u.Characters), len(u.Locations), len(u.Scripts))
			}
			return nil
		},
	}
}

func universeShowCmd() *cobra.Command {
	var render bool
	var images bool
	var width int
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Print a universe as a Markdown document",
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
			if !render {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			out, err := export.Render(buf.String(), width)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&render, "render", false, "Format the document for the terminal")
	cmd.Flags().BoolVar(&images, "images", false, "Include embedded images")
	cmd.Flags().IntVar(&width, "width", 100, "Word wrap width when rendering")
	return cmd
}

func universeSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <id>",
		Short: "Make a universe active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)
			return a.studio.Select(ctx, args[0])
		},
	}
}

func universeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a universe and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			if _, err := a.universe(args[0]); err != nil {
				return err
			}
			return a.studio.Delete(ctx, universe.UniversePath(args[0]))
		},
	}
}

func universeLogoCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "logo <file>",
		Short: "Set the logo of a universe from an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			uid, err := a.universeID(id)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			return a.studio.SetLogo(ctx, a.codec(), uid, data)
		},
	}
	cmd.Flags().StringVar(&id, "universe", "", "Universe id (defaults to the active one)")
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
