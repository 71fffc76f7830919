package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"comicstudio/internal/studio"
)

func viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [dashboard|characters|locations|scripts|<category>]",
		Short: "Show or switch the page of the active universe",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			if len(args) == 1 {
				view, err := resolveView(a, args[0])
				if err != nil {
					return err
				}
				if err := a.studio.SetView(ctx, view); err != nil {
					return err
				}
			}

			u, target, ok := a.studio.Current()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No active universe.")
				return nil
			}
			if target.View == studio.ViewCustom {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d items)\n", u.Name, target.Category.Name, len(target.Category.Items))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", u.Name, target.View)
			return nil
		},
	}
}

// resolveView accepts a fixed view, a raw custom view id, or the id or name
// of a category in the active universe.
func resolveView(a *app, arg string) (string, error) {
	switch arg {
	case studio.ViewDashboard, studio.ViewCharacters, studio.ViewLocations, studio.ViewScripts:
		return arg, nil
	}
	u, err := a.universe("")
	if err != nil {
		return "", err
	}
	for _, c := range u.CustomCategories {
		if c.ID == arg || c.Name == arg || studio.CustomView(c.ID) == arg {
			return studio.CustomView(c.ID), nil
		}
	}
	return "", fmt.Errorf("no view or category named %q", arg)
}
