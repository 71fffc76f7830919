package studio

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"comicstudio/internal/suggest"
	"comicstudio/internal/universe"
)

// ErrMissingContext is returned when a node lacks the fields a suggestion
// is built from, such as a character without a name or role.
var ErrMissingContext = errors.New("not enough context for a suggestion")

// The suggestion helpers read their inputs under the session, call the
// service without it, and apply the result only when the call succeeded.
// A node removed while the call was in flight makes the result a no-op.

func (s *Studio) SuggestBackstory(ctx context.Context, svc suggest.Service, character universe.Path) error {
	c, err := findAs[universe.Character](s, character)
	if err != nil {
		return err
	}
	if c.Name == "" || c.Role == "" {
		return ErrMissingContext
	}
	text, err := svc.CharacterBackstory(ctx, c.Name, c.Role)
	if err != nil {
		s.log.Warn("backstory suggestion failed", zap.String("character", c.ID), zap.Error(err))
		return err
	}
	return s.Update(ctx, character, universe.Patch{"backstory": text})
}

// SuggestTraits appends the suggested traits, each with a fresh id, after
// the character's existing ones.
func (s *Studio) SuggestTraits(ctx context.Context, svc suggest.Service, character universe.Path) ([]string, error) {
	c, err := findAs[universe.Character](s, character)
	if err != nil {
		return nil, err
	}
	if c.Name == "" || c.Role == "" {
		return nil, ErrMissingContext
	}
	traits, err := svc.CharacterTraits(ctx, c.Name, c.Role)
	if err != nil {
		s.log.Warn("trait suggestion failed", zap.String("character", c.ID), zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.tree
	ids := make([]string, 0, len(traits))
	for _, t := range traits {
		trait := universe.NewTrait(t.Category, t.Description)
		next, err = universe.Insert(next, character, trait)
		if err != nil {
			return nil, err
		}
		ids = append(ids, trait.ID)
	}
	if _, ok := universe.Find(next, character); !ok {
		return nil, nil
	}
	if err := s.commit(ctx, next, nil); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Studio) SuggestLocationDescription(ctx context.Context, svc suggest.Service, location universe.Path) error {
	l, err := findAs[universe.Location](s, location)
	if err != nil {
		return err
	}
	if l.Name == "" {
		return ErrMissingContext
	}
	text, err := svc.LocationDescription(ctx, l.Name, l.Type)
	if err != nil {
		s.log.Warn("location suggestion failed", zap.String("location", l.ID), zap.Error(err))
		return err
	}
	return s.Update(ctx, location, universe.Patch{"description": text})
}

// SuggestDialogue appends a generated line for speaker to the scene, using
// the scene description as context.
func (s *Studio) SuggestDialogue(ctx context.Context, svc suggest.Service, scene universe.Path, speaker string) (string, error) {
	sc, err := findAs[universe.Scene](s, scene)
	if err != nil {
		return "", err
	}
	if speaker == "" {
		return "", ErrMissingContext
	}
	text, err := svc.Dialogue(ctx, speaker, sc.Description)
	if err != nil {
		s.log.Warn("dialogue suggestion failed", zap.String("scene", sc.ID), zap.Error(err))
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.insertLocked(ctx, scene, universe.NewDialogue(speaker, text))
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return id, err
}

func findAs[T universe.Node](s *Studio, p universe.Path) (T, error) {
	var zero T
	n, ok := s.Find(p)
	if !ok {
		return zero, ErrNotFound
	}
	v, ok := n.(T)
	if !ok {
		return zero, universe.ErrInvalidPath
	}
	return v, nil
}
