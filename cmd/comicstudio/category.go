package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func categoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Custom categories of the active universe",
	}
	cmd.AddCommand(categoryTemplatesCmd())
	cmd.AddCommand(categoryAddCmd())
	return cmd
}

func categoryTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List category templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			for _, tmpl := range a.templates.Categories {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n           %s\n", tmpl.ID, tmpl.Name, tmpl.Description)
			}
			return nil
		},
	}
}

func categoryAddCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "add <template>",
		Short: "Create a category from a template and open its page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			tmpl, ok := a.templates.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown template %q; see `comicstudio category templates`", args[0])
			}
			if name == "" {
				name = tmpl.Name
			}
			id, err := a.studio.AddCategoryFromTemplate(ctx, name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Name to use instead of the template name")
	return cmd
}
