package universe

import (
	"time"

	"comicstudio/internal/ids"
)

// DefaultAuthor is used until the writer saves their own profile.
func DefaultAuthor() Author {
	return Author{Name: "Autor Criativo", Role: "Escritor & Roteirista"}
}

func NewUniverse(now time.Time) Universe {
	return Universe{
		ID:               ids.New(),
		Name:             "Novo Universo",
		Description:      "Descrição do seu novo mundo...",
		Characters:       []Character{},
		Locations:        []Location{},
		Scripts:          []Script{},
		CustomCategories: []Category{},
		WorldNotes:       []WorldNote{},
		Images:           []Image{},
		ExtraSections:    []Section{},
		CreatedAt:        now.UnixMilli(),
	}
}

func NewCharacter() Character {
	return Character{
		ID:             ids.New(),
		Name:           "Novo Personagem",
		Role:           "Protagonista",
		Traits:         []Trait{},
		Images:         []Image{},
		CustomSections: []Section{},
	}
}

func NewTrait(category, description string) Trait {
	if category == "" {
		category = "CARACTERÍSTICA"
	}
	return Trait{ID: ids.New(), Category: category, Description: description}
}

// NewSection builds a content block. Universe-level blocks and character
// blocks only differ in their default title.
func NewSection(title string) Section {
	return Section{ID: ids.New(), Title: title, Images: []Image{}}
}

func NewLocation() Location {
	return Location{
		ID:     ids.New(),
		Name:   "Novo Ambiente",
		Type:   "Cidade / Base / Planeta",
		Images: []Image{},
	}
}

func NewScript() Script {
	return Script{ID: ids.New(), Title: "Novo Capítulo", Scenes: []Scene{}, Images: []Image{}}
}

// NewScene starts with a single blank dialogue line, ready to be filled.
func NewScene() Scene {
	return Scene{
		ID:        ids.New(),
		Title:     "COMPOSIÇÃO DO ROTEIRO",
		Dialogues: []Dialogue{NewDialogue("", "")},
	}
}

func NewDialogue(speaker, text string) Dialogue {
	return Dialogue{ID: ids.New(), Speaker: speaker, Text: text}
}

func NewCategory(name string) Category {
	return Category{ID: ids.New(), Name: name, Items: []Item{}}
}

func NewItem(categoryName string) Item {
	return Item{
		ID:     ids.New(),
		Name:   "Novo Item de " + categoryName,
		Fields: []Field{},
		Images: []Image{},
	}
}

func NewField() Field {
	return Field{ID: ids.New(), Label: "Novo Campo"}
}

func NewWorldNote(title string) WorldNote {
	return WorldNote{ID: ids.New(), Title: title}
}

func NewImage(url, title string) Image {
	if title == "" {
		title = "Sem título"
	}
	return Image{ID: ids.New(), URL: url, Title: title}
}

// New builds a default node of the given kind, as the editor does when the
// writer presses "add". Section titles depend on where the block lands.
func New(kind Kind) (Node, bool) {
	switch kind {
	case KindCharacter:
		return NewCharacter(), true
	case KindTrait:
		return NewTrait("", ""), true
	case KindSection:
		return NewSection("Nova Categoria de Informação"), true
	case KindLocation:
		return NewLocation(), true
	case KindScript:
		return NewScript(), true
	case KindScene:
		return NewScene(), true
	case KindDialogue:
		return NewDialogue("", ""), true
	case KindCategory:
		return NewCategory("Nova Categoria"), true
	case KindItem:
		return NewItem("Categoria"), true
	case KindField:
		return NewField(), true
	case KindWorldNote:
		return NewWorldNote("Nova Nota"), true
	case KindImage:
		return NewImage("", ""), true
	}
	return nil, false
}
