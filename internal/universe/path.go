package universe

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPath = errors.New("invalid path")

// Step selects one child by id inside a named collection.
type Step struct {
	Collection Collection
	ID         string
}

// Path addresses a node: a universe, optionally followed by steps into its
// nested collections. Textual form: uid/characters/cid/traits/tid.
type Path struct {
	Universe string
	Steps    []Step
}

func UniversePath(id string) Path {
	return Path{Universe: id}
}

// Child returns a copy of p extended by one step.
func (p Path) Child(collection Collection, id string) Path {
	steps := make([]Step, len(p.Steps), len(p.Steps)+1)
	copy(steps, p.Steps)
	return Path{Universe: p.Universe, Steps: append(steps, Step{Collection: collection, ID: id})}
}

// Parent drops the last step. The parent of a universe path is itself.
func (p Path) Parent() Path {
	if len(p.Steps) == 0 {
		return p
	}
	return Path{Universe: p.Universe, Steps: p.Steps[:len(p.Steps)-1]}
}

// Target returns the id of the addressed node.
func (p Path) Target() string {
	if len(p.Steps) == 0 {
		return p.Universe
	}
	return p.Steps[len(p.Steps)-1].ID
}

func (p Path) String() string {
	var b strings.Builder
	b.WriteString(p.Universe)
	for _, step := range p.Steps {
		b.WriteString("/")
		b.WriteString(string(step.Collection))
		b.WriteString("/")
		b.WriteString(step.ID)
	}
	return b.String()
}

func ParsePath(s string) (Path, error) {
	parts := strings.Split(strings.Trim(strings.TrimSpace(s), "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return Path{}, fmt.Errorf("%w: empty universe id", ErrInvalidPath)
	}
	if len(parts)%2 == 0 {
		return Path{}, fmt.Errorf("%w: %q has a collection without an id", ErrInvalidPath, s)
	}
	p := Path{Universe: parts[0]}
	for i := 1; i < len(parts); i += 2 {
		collection, id := Collection(parts[i]), parts[i+1]
		if !knownCollection(collection) {
			return Path{}, fmt.Errorf("%w: unknown collection %q", ErrInvalidPath, parts[i])
		}
		if id == "" {
			return Path{}, fmt.Errorf("%w: empty id after %q", ErrInvalidPath, parts[i])
		}
		p.Steps = append(p.Steps, Step{Collection: collection, ID: id})
	}
	return p, nil
}

func knownCollection(c Collection) bool {
	switch c {
	case Characters, Locations, Scripts, CustomCategories, WorldNotes, Images, ExtraSections,
		Traits, CustomSections, Scenes, Dialogues, Items, Fields:
		return true
	}
	return false
}
