package universe

type Kind string

const (
	KindUniverse  Kind = "universe"
	KindCharacter Kind = "character"
	KindTrait     Kind = "trait"
	KindSection   Kind = "section"
	KindLocation  Kind = "location"
	KindScript    Kind = "script"
	KindScene     Kind = "scene"
	KindDialogue  Kind = "dialogue"
	KindCategory  Kind = "category"
	KindItem      Kind = "item"
	KindField     Kind = "field"
	KindWorldNote Kind = "worldNote"
	KindImage     Kind = "image"
)

// Collection names a child collection by its persisted JSON field.
type Collection string

const (
	Characters       Collection = "characters"
	Locations        Collection = "locations"
	Scripts          Collection = "scripts"
	CustomCategories Collection = "customCategories"
	WorldNotes       Collection = "worldNotes"
	Images           Collection = "images"
	ExtraSections    Collection = "extraSections"
	Traits           Collection = "traits"
	CustomSections   Collection = "customSections"
	Scenes           Collection = "scenes"
	Dialogues        Collection = "dialogues"
	Items            Collection = "items"
	Fields           Collection = "fields"
)

// Node is any addressable record of the tree.
type Node interface {
	NodeID() string
	Kind() Kind
}

func (u Universe) NodeID() string  { return u.ID }
func (c Character) NodeID() string { return c.ID }
func (t Trait) NodeID() string     { return t.ID }
func (s Section) NodeID() string   { return s.ID }
func (l Location) NodeID() string  { return l.ID }
func (s Script) NodeID() string    { return s.ID }
func (s Scene) NodeID() string     { return s.ID }
func (d Dialogue) NodeID() string  { return d.ID }
func (c Category) NodeID() string  { return c.ID }
func (i Item) NodeID() string      { return i.ID }
func (f Field) NodeID() string     { return f.ID }
func (w WorldNote) NodeID() string { return w.ID }
func (i Image) NodeID() string     { return i.ID }

func (Universe) Kind() Kind  { return KindUniverse }
func (Character) Kind() Kind { return KindCharacter }
func (Trait) Kind() Kind     { return KindTrait }
func (Section) Kind() Kind   { return KindSection }
func (Location) Kind() Kind  { return KindLocation }
func (Script) Kind() Kind    { return KindScript }
func (Scene) Kind() Kind     { return KindScene }
func (Dialogue) Kind() Kind  { return KindDialogue }
func (Category) Kind() Kind  { return KindCategory }
func (Item) Kind() Kind      { return KindItem }
func (Field) Kind() Kind     { return KindField }
func (WorldNote) Kind() Kind { return KindWorldNote }
func (Image) Kind() Kind     { return KindImage }

// ParseKind accepts the kind names used on the command line and by tools.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindCharacter, KindTrait, KindSection, KindLocation, KindScript, KindScene,
		KindDialogue, KindCategory, KindItem, KindField, KindWorldNote, KindImage:
		return Kind(s), true
	}
	return "", false
}
