package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"comicstudio/internal/universe"
)

const activeAlias = "@"

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>",
		Short: "Print one node as JSON",
		Long:  "Print one node as JSON. Paths look like uid/characters/cid; a leading @ stands for the active universe.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			p, err := nodePath(a, args[0])
			if err != nil {
				return err
			}
			node, ok := a.studio.Find(p)
			if !ok {
				return fmt.Errorf("nothing at %s", p)
			}
			payload, err := json.MarshalIndent(node, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding node: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return nil
		},
	}
}

func addCmd() *cobra.Command {
	var sets []string
	var raw string
	cmd := &cobra.Command{
		Use:   "add <kind> [parent]",
		Short: "Add a node with default values and print its path",
		Long: "Add a node under parent (the active universe by default). Kinds: character, trait, section, " +
			"location, script, scene, dialogue, category, item, field, worldNote, image.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := universe.ParseKind(args[0])
			if !ok {
				return fmt.Errorf("unknown kind %q", args[0])
			}
			patch, err := buildPatch(sets, raw)
			if err != nil {
				return err
			}

			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			parent, err := nodePath(a, firstArg(args[1:]))
			if err != nil {
				return err
			}
			node, _ := universe.New(kind)
			id, err := a.studio.InsertWith(ctx, parent, node, patch)
			if err != nil {
				return err
			}
			tree, _ := a.studio.Snapshot()
			p, ok := universe.ChildPath(tree, parent, id)
			if !ok {
				return fmt.Errorf("%s %s disappeared after insert", kind, id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field value as key=value (repeatable)")
	cmd.Flags().StringVar(&raw, "json", "", "Field values as a JSON object")
	return cmd
}

func updateCmd() *cobra.Command {
	var sets []string
	var raw string
	cmd := &cobra.Command{
		Use:   "update <path>",
		Short: "Merge field values into a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := buildPatch(sets, raw)
			if err != nil {
				return err
			}
			if len(patch) == 0 {
				return fmt.Errorf("nothing to update: pass --set or --json")
			}

			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			p, err := nodePath(a, args[0])
			if err != nil {
				return err
			}
			if _, ok := a.studio.Find(p); !ok {
				return fmt.Errorf("nothing at %s", p)
			}
			return a.studio.Update(ctx, p, patch)
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field value as key=value (repeatable)")
	cmd.Flags().StringVar(&raw, "json", "", "Field values as a JSON object")
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <path>",
		Short: "Delete a node and everything it contains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			p, err := nodePath(a, args[0])
			if err != nil {
				return err
			}
			return a.studio.Delete(ctx, p)
		},
	}
}

// nodePath parses a node path, expanding a leading @ (or nothing at all)
// to the active universe.
func nodePath(a *app, s string) (universe.Path, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == activeAlias {
		return a.studio.ActivePath()
	}
	if rest, ok := strings.CutPrefix(s, activeAlias+"/"); ok {
		active, err := a.studio.ActivePath()
		if err != nil {
			return universe.Path{}, err
		}
		s = active.Universe + "/" + rest
	}
	return universe.ParsePath(s)
}

func buildPatch(sets []string, raw string) (universe.Patch, error) {
	patch := universe.Patch{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &patch); err != nil {
			return nil, fmt.Errorf("invalid --json: %w", err)
		}
	}
	values, err := parseParamPairs(sets)
	if err != nil {
		return nil, err
	}
	for key, value := range values {
		patch[key] = value
	}
	return patch, nil
}
