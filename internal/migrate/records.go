package migrate

import (
	"fmt"
	"strconv"

	"comicstudio/internal/ids"
	"comicstudio/internal/universe"
)

// universeRecord is the widest shape any version has written. Only scripts
// differ from the current model, because scenes changed shape.
type universeRecord struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	Description      string               `json:"description"`
	CustomLogo       string               `json:"customLogo"`
	Characters       []universe.Character `json:"characters"`
	Locations        []universe.Location  `json:"locations"`
	Scripts          []scriptRecord       `json:"scripts"`
	CustomCategories []universe.Category  `json:"customCategories"`
	WorldNotes       []universe.WorldNote `json:"worldNotes"`
	Images           []universe.Image     `json:"images"`
	ExtraSections    []universe.Section   `json:"extraSections"`
	CreatedAt        millis               `json:"createdAt"`
}

// millis is a Unix millisecond timestamp. Writers that went through a
// float64 store it as 1.7e12 or 1700000000000.0; those are truncated.
type millis int64

func (m *millis) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*m = millis(n)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("createdAt: %w", err)
	}
	*m = millis(int64(f))
	return nil
}

type scriptRecord struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	Summary string           `json:"summary"`
	Scenes  []sceneRecord    `json:"scenes"`
	Images  []universe.Image `json:"images"`
}

// sceneRecord carries both the legacy single speaker/dialogue pair and the
// current dialogue list. A nil Dialogues means the field was absent or null.
type sceneRecord struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Dialogues   *[]universe.Dialogue `json:"dialogues"`
	Speaker     string               `json:"speaker"`
	Dialogue    string               `json:"dialogue"`
}

// sceneShape is the sum of the shapes a persisted scene can take.
type sceneShape interface {
	scene() universe.Scene
}

type currentScene struct {
	id, title, description string
	dialogues              []universe.Dialogue
}

type legacyScene struct {
	id, title, description string
	speaker, dialogue      string
}

func (r sceneRecord) shape() sceneShape {
	if r.Dialogues != nil {
		return currentScene{id: r.ID, title: r.Title, description: r.Description, dialogues: *r.Dialogues}
	}
	return legacyScene{id: r.ID, title: r.Title, description: r.Description, speaker: r.Speaker, dialogue: r.Dialogue}
}

func (s currentScene) scene() universe.Scene {
	return universe.Scene{ID: s.id, Title: s.title, Description: s.description, Dialogues: s.dialogues}
}

// A legacy pair converts when either half carries text.
func (s legacyScene) scene() universe.Scene {
	out := universe.Scene{ID: s.id, Title: s.title, Description: s.description, Dialogues: []universe.Dialogue{}}
	if s.speaker != "" || s.dialogue != "" {
		out.Dialogues = append(out.Dialogues, universe.Dialogue{ID: ids.New(), Speaker: s.speaker, Text: s.dialogue})
	}
	return out
}

func (r scriptRecord) script() universe.Script {
	scenes := make([]universe.Scene, 0, len(r.Scenes))
	for _, sc := range r.Scenes {
		scenes = append(scenes, sc.shape().scene())
	}
	return universe.Script{ID: r.ID, Title: r.Title, Summary: r.Summary, Scenes: scenes, Images: r.Images}
}

func (r universeRecord) universe() universe.Universe {
	scripts := make([]universe.Script, 0, len(r.Scripts))
	for _, s := range r.Scripts {
		scripts = append(scripts, s.script())
	}
	u := universe.Universe{
		ID:               r.ID,
		Name:             r.Name,
		Description:      r.Description,
		CustomLogo:       r.CustomLogo,
		Characters:       r.Characters,
		Locations:        r.Locations,
		Scripts:          scripts,
		CustomCategories: r.CustomCategories,
		WorldNotes:       r.WorldNotes,
		Images:           r.Images,
		ExtraSections:    r.ExtraSections,
		CreatedAt:        int64(r.CreatedAt),
	}
	return u.Normalize()
}
