package universe

// Normalize replaces every nil collection in the tree with an empty one so
// the rest of the code never has to tell "absent" from "empty".
func (u Universe) Normalize() Universe {
	u.Characters = normalizeEach(u.Characters, Character.Normalize)
	u.Locations = normalizeEach(u.Locations, Location.Normalize)
	u.Scripts = normalizeEach(u.Scripts, Script.Normalize)
	u.CustomCategories = normalizeEach(u.CustomCategories, Category.Normalize)
	u.WorldNotes = orEmpty(u.WorldNotes)
	u.Images = orEmpty(u.Images)
	u.ExtraSections = normalizeEach(u.ExtraSections, Section.Normalize)
	return u
}

func (c Character) Normalize() Character {
	c.Traits = orEmpty(c.Traits)
	c.Images = orEmpty(c.Images)
	c.CustomSections = normalizeEach(c.CustomSections, Section.Normalize)
	return c
}

func (s Section) Normalize() Section {
	s.Images = orEmpty(s.Images)
	return s
}

func (l Location) Normalize() Location {
	l.Images = orEmpty(l.Images)
	return l
}

func (s Script) Normalize() Script {
	s.Scenes = normalizeEach(s.Scenes, Scene.Normalize)
	s.Images = orEmpty(s.Images)
	return s
}

func (s Scene) Normalize() Scene {
	s.Dialogues = orEmpty(s.Dialogues)
	return s
}

func (c Category) Normalize() Category {
	c.Items = normalizeEach(c.Items, Item.Normalize)
	return c
}

func (i Item) Normalize() Item {
	i.Fields = orEmpty(i.Fields)
	i.Images = orEmpty(i.Images)
	return i
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func normalizeEach[T any](items []T, fn func(T) T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

// normalizeNode re-establishes the collection invariant on a single node,
// typically after a patch replaced one of its collections with null.
func normalizeNode(n Node) Node {
	switch v := n.(type) {
	case Universe:
		return v.Normalize()
	case Character:
		return v.Normalize()
	case Section:
		return v.Normalize()
	case Location:
		return v.Normalize()
	case Script:
		return v.Normalize()
	case Scene:
		return v.Normalize()
	case Category:
		return v.Normalize()
	case Item:
		return v.Normalize()
	}
	return n
}
