package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"comicstudio/internal/universe"
)

func sampleUniverse() universe.Universe {
	u := universe.NewUniverse(time.UnixMilli(1700000000000))
	u.Name = "Neo Recife"
	u.Description = "Cidade submersa."
	u.CustomLogo = "data:image/png;base64,AA=="
	u.ExtraSections = []universe.Section{{ID: "x1", Title: "Geografia", Content: "Canais."}}

	ana := universe.NewCharacter()
	ana.Name, ana.Role, ana.Backstory = "Ana", "Heroína", ""
	ana.Traits = []universe.Trait{{ID: "t1", Category: "Força", Description: "Sobre-humana"}}
	u.Characters = []universe.Character{ana}

	loc := universe.NewLocation()
	loc.Name, loc.Type = "Cais", "Porto"
	u.Locations = []universe.Location{loc}

	script := universe.NewScript()
	script.Title, script.Summary = "Capítulo 1", "A chegada."
	script.Scenes = []universe.Scene{{
		ID:          "s1",
		Description: "Noite no cais.",
		Dialogues: []universe.Dialogue{
			{ID: "d1", Speaker: "Ana", Text: "Oi"},
			{ID: "d2", Speaker: "Rui", Text: "Quem está aí?"},
		},
	}}
	u.Scripts = []universe.Script{script}

	u.CustomCategories = []universe.Category{{ID: "k1", Name: "Objetos & Itens", Items: []universe.Item{{
		ID: "i1", Name: "Espada", Description: "Antiga.",
		Fields: []universe.Field{{ID: "f1", Label: "Material", Value: "Aço"}},
	}}}}
	u.WorldNotes = []universe.WorldNote{{ID: "n1", Title: "Marés", Content: "Sobem à noite."}}
	return u
}

func export(t *testing.T, m Markdown) string {
	t.Helper()
	m.Now = func() time.Time { return time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC) }
	var buf bytes.Buffer
	author := universe.Author{Name: "Joana", Role: "Roteirista"}
	if err := m.Export(&buf, sampleUniverse(), author); err != nil {
		t.Fatalf("export: %v", err)
	}
	return buf.String()
}

func TestExportFrontmatter(t *testing.T) {
	out := export(t, Markdown{})
	if !strings.HasPrefix(out, "---\n") {
		t.Fatalf("expected frontmatter, got %q", out[:20])
	}
	raw, _, ok := strings.Cut(strings.TrimPrefix(out, "---\n"), "---\n")
	if !ok {
		t.Fatalf("unterminated frontmatter")
	}
	var meta frontmatter
	if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
		t.Fatalf("decoding frontmatter: %v", err)
	}
	if meta.Title != "Neo Recife" || meta.Author != "Joana" || meta.Exported != "09/03/2026" || meta.Characters != 1 {
		t.Fatalf("unexpected frontmatter: %+v", meta)
	}
}

func TestExportSections(t *testing.T) {
	out := export(t, Markdown{})

	want := []string{
		"# NEO RECIFE",
		"Criado por: Joana",
		"## VISÃO GERAL DO UNIVERSO",
		"### GEOGRAFIA",
		"## PERSONAGENS",
		"Nenhuma história definida.",
		"- [Força] Sobre-humana",
		"## LOCAIS E CENÁRIOS",
		"*Tipo: Porto*",
		"## ROTEIROS E HISTÓRIAS",
		"#### Cena 1: Sem título",
		`> ANA: "Oi"`,
		`> RUI: "Quem está aí?"`,
		"## OBJETOS & ITENS",
		"- **Material:** Aço",
		"## NOTAS DE MUNDO",
	}
	last := -1
	for _, s := range want {
		idx := strings.Index(out, s)
		if idx < 0 {
			t.Fatalf("missing %q in:\n%s", s, out)
		}
		if idx < last {
			t.Fatalf("%q is out of order in:\n%s", s, out)
		}
		last = idx
	}
}

func TestExportImages(t *testing.T) {
	if out := export(t, Markdown{}); strings.Contains(out, "data:image") {
		t.Fatalf("images should be left out by default")
	}
	if out := export(t, Markdown{Images: true}); !strings.Contains(out, "![Logo](data:image/png;base64,AA==)") {
		t.Fatalf("expected embedded logo in:\n%s", out)
	}
}

func TestExportEmptyUniverse(t *testing.T) {
	var buf bytes.Buffer
	u := universe.NewUniverse(time.Now())
	if err := (Markdown{}).Export(&buf, u, universe.DefaultAuthor()); err != nil {
		t.Fatalf("export: %v", err)
	}
	for _, s := range []string{"## PERSONAGENS", "## LOCAIS", "## ROTEIROS", "## NOTAS"} {
		if strings.Contains(buf.String(), s) {
			t.Fatalf("empty universe should not render %q", s)
		}
	}
}

func TestFilename(t *testing.T) {
	u := universe.Universe{Name: "Neo  Recife\tFinal"}
	if got := Filename(u); got != "Neo_Recife_Final_projeto.md" {
		t.Fatalf("unexpected filename %q", got)
	}
}

func TestRender(t *testing.T) {
	out, err := Render("# Título\n\nTexto.", 40)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Texto.") {
		t.Fatalf("rendered output lost the text: %q", out)
	}
}
