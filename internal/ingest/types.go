package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"comicstudio/internal/parser"
	"comicstudio/internal/universe"
)

// parseTraits accepts a list whose entries are either "Category: text"
// strings, one-key maps {Category: text}, or {category, description} maps.
func parseTraits(value any) ([]universe.Trait, error) {
	if value == nil {
		return nil, nil
	}

	var items []any
	switch v := value.(type) {
	case []any:
		items = v
	case map[string]any:
		items = []any{v}
	default:
		return nil, fmt.Errorf("traits must be a list")
	}

	traits := make([]universe.Trait, 0, len(items))
	for i, item := range items {
		switch entry := item.(type) {
		case string:
			category, description, ok := strings.Cut(entry, ":")
			if !ok {
				traits = append(traits, universe.NewTrait("", strings.TrimSpace(entry)))
				continue
			}
			traits = append(traits, universe.NewTrait(strings.TrimSpace(category), strings.TrimSpace(description)))
		case map[string]any:
			if _, ok := entry["category"]; ok {
				traits = append(traits, universe.NewTrait(toString(entry["category"]), toString(entry["description"])))
				continue
			}
			if len(entry) != 1 {
				return nil, fmt.Errorf("trait %d must have one key or category and description", i)
			}
			for category, description := range entry {
				traits = append(traits, universe.NewTrait(category, toString(description)))
			}
		default:
			return nil, fmt.Errorf("trait %d must be a string or a map", i)
		}
	}
	return traits, nil
}

// parseFields keeps the labels in the order the author wrote them.
func parseFields(pairs []parser.Pair) []universe.Field {
	fields := make([]universe.Field, 0, len(pairs))
	for _, p := range pairs {
		if p.Key == "" {
			continue
		}
		f := universe.NewField()
		f.Label = p.Key
		f.Value = p.Value
		fields = append(fields, f)
	}
	return fields
}

var (
	sceneHeading = regexp.MustCompile(`^##\s+(.*)$`)
	dialogueLine = regexp.MustCompile(`^(?:>\s*)?([^:"]{1,60}):\s*"(.*)"\s*$`)
)

// parseScript splits a script body into scenes at level-two headings.
// Text before the first heading is the summary. Inside a scene, lines of
// the form SPEAKER: "text" become dialogue; everything else is the scene
// description.
func parseScript(title, body string) universe.Script {
	s := universe.NewScript()
	s.Title = title

	var summary []string
	var scene *universe.Scene
	var description []string

	flush := func() {
		if scene == nil {
			return
		}
		scene.Description = strings.TrimSpace(strings.Join(description, "\n"))
		s.Scenes = append(s.Scenes, *scene)
		scene, description = nil, nil
	}

	for _, line := range strings.Split(body, "\n") {
		if m := sceneHeading.FindStringSubmatch(line); m != nil {
			flush()
			sc := universe.NewScene()
			sc.Title = strings.TrimSpace(m[1])
			sc.Dialogues = []universe.Dialogue{}
			scene = &sc
			continue
		}
		if scene == nil {
			summary = append(summary, line)
			continue
		}
		if m := dialogueLine.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			scene.Dialogues = append(scene.Dialogues, universe.NewDialogue(strings.TrimSpace(m[1]), m[2]))
			continue
		}
		description = append(description, line)
	}
	flush()

	s.Summary = strings.TrimSpace(strings.Join(summary, "\n"))
	return s
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
