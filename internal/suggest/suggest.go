// Package suggest produces AI text suggestions for characters, locations
// and scenes.
package suggest

import (
	"context"
	"errors"
)

var ErrEmptySuggestion = errors.New("empty suggestion")

type Trait struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

type Service interface {
	CharacterBackstory(ctx context.Context, name, role string) (string, error)
	CharacterTraits(ctx context.Context, name, role string) ([]Trait, error)
	LocationDescription(ctx context.Context, name, kind string) (string, error)
	Dialogue(ctx context.Context, speaker, sceneContext string) (string, error)
}
