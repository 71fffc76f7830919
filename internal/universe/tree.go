package universe

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

var ErrInvalidChild = errors.New("invalid child")

// op is one of patch, insert, remove or read, applied at the end of a path.
type op struct {
	patch  Patch
	insert Node
	remove bool
	read   func(Node)
}

// CreateUniverse appends a default universe and returns its id so the caller
// can make it the active one.
func CreateUniverse(t Tree, now time.Time) (Tree, string) {
	u := NewUniverse(now)
	return AppendUniverse(t, u), u.ID
}

func AppendUniverse(t Tree, u Universe) Tree {
	return append(slices.Clip(t), u.Normalize())
}

// Update merges patch into the node at p. A path that does not resolve
// leaves the tree untouched and is not an error.
func Update(t Tree, p Path, patch Patch) (Tree, error) {
	out, ok, err := apply(t, p, op{patch: patch})
	if err != nil {
		return t, err
	}
	if !ok {
		return t, nil
	}
	return out, nil
}

// Delete removes the node at p together with everything it owns.
func Delete(t Tree, p Path) Tree {
	out, ok, _ := apply(t, p, op{remove: true})
	if !ok {
		return t
	}
	return out
}

// Insert appends child to the collection of parent that holds its kind.
func Insert(t Tree, parent Path, child Node) (Tree, error) {
	if child == nil {
		return t, fmt.Errorf("%w: nil node", ErrInvalidChild)
	}
	if child.Kind() == KindUniverse {
		return t, fmt.Errorf("%w: universes are created at the top level", ErrInvalidChild)
	}
	out, ok, err := apply(t, parent, op{insert: normalizeNode(child)})
	if err != nil {
		return t, err
	}
	if !ok {
		return t, nil
	}
	return out, nil
}

func Find(t Tree, p Path) (Node, bool) {
	var found Node
	apply(t, p, op{read: func(n Node) { found = n }})
	return found, found != nil
}

// FindUniverse is a shortcut for the top level.
func FindUniverse(t Tree, id string) (Universe, bool) {
	idx := slices.IndexFunc(t, func(u Universe) bool { return u.ID == id })
	if idx < 0 {
		return Universe{}, false
	}
	return t[idx], true
}

func apply(t Tree, p Path, o op) (Tree, bool, error) {
	steps := make([]Step, 0, len(p.Steps)+1)
	steps = append(steps, Step{ID: p.Universe})
	steps = append(steps, p.Steps...)
	out, ok, err := within(t, steps, o, applyUniverse)
	return Tree(out), ok, err
}

// within resolves steps[0] among items and hands the rest of the path to
// fn. The returned slice is a fresh copy whenever anything changed.
func within[T Node](items []T, steps []Step, o op, fn func(T, []Step, op) (T, bool, error)) ([]T, bool, error) {
	idx := slices.IndexFunc(items, func(item T) bool { return item.NodeID() == steps[0].ID })
	if idx < 0 {
		return items, false, nil
	}
	rest := steps[1:]
	if len(rest) == 0 && o.remove {
		return slices.Delete(slices.Clone(items), idx, idx+1), true, nil
	}
	next, ok, err := fn(items[idx], rest, o)
	if err != nil || !ok {
		return items, false, err
	}
	out := slices.Clone(items)
	out[idx] = next
	return out, true, nil
}

func appendTo[T Node](items []T, child T) []T {
	return append(slices.Clip(items), child)
}

// at handles the end of the path for nodes of any kind; it returns
// handled=false when an insert has to be dispatched by the caller.
func at[T Node](v T, o op) (T, bool, bool, error) {
	switch {
	case o.read != nil:
		o.read(v)
		return v, false, true, nil
	case o.insert != nil:
		return v, false, false, nil
	}
	out, err := patchNode(v, o.patch)
	if err != nil {
		return v, false, true, err
	}
	return out, true, true, nil
}

func invalidChild(parent Node, child Node) error {
	return fmt.Errorf("%w: %s cannot hold %s", ErrInvalidChild, parent.Kind(), child.Kind())
}

func leaf[T Node](v T, steps []Step, o op) (T, bool, error) {
	if len(steps) > 0 {
		return v, false, nil
	}
	out, ok, handled, err := at(v, o)
	if !handled {
		return v, false, invalidChild(v, o.insert)
	}
	return out, ok, err
}

func applyUniverse(u Universe, steps []Step, o op) (Universe, bool, error) {
	if len(steps) == 0 {
		out, ok, handled, err := at(u, o)
		if handled {
			return out, ok, err
		}
		switch child := o.insert.(type) {
		case Character:
			u.Characters = appendTo(u.Characters, child)
		case Location:
			u.Locations = appendTo(u.Locations, child)
		case Script:
			u.Scripts = appendTo(u.Scripts, child)
		case Category:
			u.CustomCategories = appendTo(u.CustomCategories, child)
		case WorldNote:
			u.WorldNotes = appendTo(u.WorldNotes, child)
		case Image:
			u.Images = appendTo(u.Images, child)
		case Section:
			u.ExtraSections = appendTo(u.ExtraSections, child)
		default:
			return u, false, invalidChild(u, o.insert)
		}
		return u, true, nil
	}

	var ok bool
	var err error
	switch steps[0].Collection {
	case Characters:
		u.Characters, ok, err = within(u.Characters, steps, o, applyCharacter)
	case Locations:
		u.Locations, ok, err = within(u.Locations, steps, o, applyLocation)
	case Scripts:
		u.Scripts, ok, err = within(u.Scripts, steps, o, applyScript)
	case CustomCategories:
		u.CustomCategories, ok, err = within(u.CustomCategories, steps, o, applyCategory)
	case WorldNotes:
		u.WorldNotes, ok, err = within(u.WorldNotes, steps, o, leaf[WorldNote])
	case Images:
		u.Images, ok, err = within(u.Images, steps, o, leaf[Image])
	case ExtraSections:
		u.ExtraSections, ok, err = within(u.ExtraSections, steps, o, applySection)
	}
	return u, ok, err
}

func applyCharacter(c Character, steps []Step, o op) (Character, bool, error) {
	if len(steps) == 0 {
		out, ok, handled, err := at(c, o)
		if handled {
			return out, ok, err
		}
		switch child := o.insert.(type) {
		case Trait:
			c.Traits = appendTo(c.Traits, child)
		case Image:
			c.Images = appendTo(c.Images, child)
		case Section:
			c.CustomSections = appendTo(c.CustomSections, child)
		default:
			return c, false, invalidChild(c, o.insert)
		}
		return c, true, nil
	}

	var ok bool
	var err error
	switch steps[0].Collection {
	case Traits:
		c.Traits, ok, err = within(c.Traits, steps, o, leaf[Trait])
	case Images:
		c.Images, ok, err = within(c.Images, steps, o, leaf[Image])
	case CustomSections:
		c.CustomSections, ok, err = within(c.CustomSections, steps, o, applySection)
	}
	return c, ok, err
}

func applySection(s Section, steps []Step, o op) (Section, bool, error) {
	if len(steps) == 0 {
		out, ok, handled, err := at(s, o)
		if handled {
			return out, ok, err
		}
		child, isImage := o.insert.(Image)
		if !isImage {
			return s, false, invalidChild(s, o.insert)
		}
		s.Images = appendTo(s.Images, child)
		return s, true, nil
	}
	if steps[0].Collection != Images {
		return s, false, nil
	}
	var ok bool
	var err error
	s.Images, ok, err = within(s.Images, steps, o, leaf[Image])
	return s, ok, err
}

func applyLocation(l Location, steps []Step, o op) (Location, bool, error) {
	if len(steps) == 0 {
		out, ok, handled, err := at(l, o)
		if handled {
			return out, ok, err
		}
		child, isImage := o.insert.(Image)
		if !isImage {
			return l, false, invalidChild(l, o.insert)
		}
		l.Images = appendTo(l.Images, child)
		return l, true, nil
	}
	if steps[0].Collection != Images {
		return l, false, nil
	}
	var ok bool
	var err error
	l.Images, ok, err = within(l.Images, steps, o, leaf[Image])
	return l, ok, err
}

func applyScript(s Script, steps []Step, o op) (Script, bool, error) {
	if len(steps) == 0 {
		out, ok, handled, err := at(s, o)
		if handled {
			return out, ok, err
		}
		switch child := o.insert.(type) {
		case Scene:
			s.Scenes = appendTo(s.Scenes, child)
		case Image:
			s.Images = appendTo(s.Images, child)
		default:
			return s, false, invalidChild(s, o.insert)
		}
		return s, true, nil
	}

	var ok bool
	var err error
	switch steps[0].Collection {
	case Scenes:
		s.Scenes, ok, err = within(s.Scenes, steps, o, applyScene)
	case Images:
		s.Images, ok, err = within(s.Images, steps, o, leaf[Image])
	}
	return s, ok, err
}

func applyScene(s Scene, steps []Step, o op) (Scene, bool, error) {
	if len(steps) == 0 {
		out, ok, handled, err := at(s, o)
		if handled {
			return out, ok, err
		}
		child, isDialogue := o.insert.(Dialogue)
		if !isDialogue {
			return s, false, invalidChild(s, o.insert)
		}
		s.Dialogues = appendTo(s.Dialogues, child)
		return s, true, nil
	}
	if steps[0].Collection != Dialogues {
		return s, false, nil
	}
	var ok bool
	var err error
	s.Dialogues, ok, err = within(s.Dialogues, steps, o, leaf[Dialogue])
	return s, ok, err
}

func applyCategory(c Category, steps []Step, o op) (Category, bool, error) {
	if len(steps) == 0 {
		out, ok, handled, err := at(c, o)
		if handled {
			return out, ok, err
		}
		child, isItem := o.insert.(Item)
		if !isItem {
			return c, false, invalidChild(c, o.insert)
		}
		c.Items = appendTo(c.Items, child)
		return c, true, nil
	}
	if steps[0].Collection != Items {
		return c, false, nil
	}
	var ok bool
	var err error
	c.Items, ok, err = within(c.Items, steps, o, applyItem)
	return c, ok, err
}

func applyItem(i Item, steps []Step, o op) (Item, bool, error) {
	if len(steps) == 0 {
		out, ok, handled, err := at(i, o)
		if handled {
			return out, ok, err
		}
		switch child := o.insert.(type) {
		case Field:
			i.Fields = appendTo(i.Fields, child)
		case Image:
			i.Images = appendTo(i.Images, child)
		default:
			return i, false, invalidChild(i, o.insert)
		}
		return i, true, nil
	}

	var ok bool
	var err error
	switch steps[0].Collection {
	case Fields:
		i.Fields, ok, err = within(i.Fields, steps, o, leaf[Field])
	case Images:
		i.Images, ok, err = within(i.Images, steps, o, leaf[Image])
	}
	return i, ok, err
}
