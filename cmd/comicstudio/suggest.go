package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"comicstudio/internal/studio"
	"comicstudio/internal/universe"
)

func suggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Ask the writing assistant for content",
	}
	cmd.AddCommand(suggestBackstoryCmd())
	cmd.AddCommand(suggestTraitsCmd())
	cmd.AddCommand(suggestLocationCmd())
	cmd.AddCommand(suggestDialogueCmd())
	return cmd
}

// withSuggester opens the app and the assistant, then runs fn on the
// node at the path in args[0].
func withSuggester(cmd *cobra.Command, args []string, fn func(ctx context.Context, a *app, p universe.Path) error) error {
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
	return fn(ctx, a, p)
}

func suggestBackstoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backstory <character-path>",
		Short: "Write a backstory for a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSuggester(cmd, args, func(ctx context.Context, a *app, p universe.Path) error {
				svc, err := a.suggester(ctx)
				if err != nil {
					return err
				}
				if err := a.studio.SuggestBackstory(ctx, svc, p); err != nil {
					return err
				}
				node, _ := a.studio.Find(p)
				if c, ok := node.(universe.Character); ok {
					fmt.Fprintln(cmd.OutOrStdout(), c.Backstory)
				}
				return nil
			})
		},
	}
}

func suggestTraitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "traits <character-path>",
		Short: "Append suggested traits to a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSuggester(cmd, args, func(ctx context.Context, a *app, p universe.Path) error {
				svc, err := a.suggester(ctx)
				if err != nil {
					return err
				}
				ids, err := a.studio.SuggestTraits(ctx, svc, p)
				if err != nil {
					return err
				}
				for _, id := range ids {
					node, ok := a.studio.Find(p.Child(universe.Traits, id))
					if !ok {
						continue
					}
					t := node.(universe.Trait)
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", t.Category, t.Description)
				}
				return nil
			})
		},
	}
}

func suggestLocationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "location <location-path>",
		Short: "Describe a location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSuggester(cmd, args, func(ctx context.Context, a *app, p universe.Path) error {
				svc, err := a.suggester(ctx)
				if err != nil {
					return err
				}
				if err := a.studio.SuggestLocationDescription(ctx, svc, p); err != nil {
					return err
				}
				node, _ := a.studio.Find(p)
				if l, ok := node.(universe.Location); ok {
					fmt.Fprintln(cmd.OutOrStdout(), l.Description)
				}
				return nil
			})
		},
	}
}

func suggestDialogueCmd() *cobra.Command {
	var speaker string
	cmd := &cobra.Command{
		Use:   "dialogue <scene-path>",
		Short: "Append a suggested line to a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if speaker == "" {
				return studio.ErrMissingContext
			}
			return withSuggester(cmd, args, func(ctx context.Context, a *app, p universe.Path) error {
				svc, err := a.suggester(ctx)
				if err != nil {
					return err
				}
				id, err := a.studio.SuggestDialogue(ctx, svc, p, speaker)
				if err != nil {
					return err
				}
				node, ok := a.studio.Find(p.Child(universe.Dialogues, id))
				if !ok {
					return nil
				}
				d := node.(universe.Dialogue)
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %q\n", d.Speaker, d.Text)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&speaker, "speaker", "", "Character who speaks the line")
	return cmd
}
