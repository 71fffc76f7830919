// Package export renders a universe as a standalone Markdown project
// document.
package export

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"comicstudio/internal/universe"
)

type frontmatter struct {
	Title      string `yaml:"title"`
	UniverseID string `yaml:"universe_id"`
	Author     string `yaml:"author"`
	Role       string `yaml:"role"`
	Exported   string `yaml:"exported"`
	Characters int    `yaml:"characters"`
	Locations  int    `yaml:"locations"`
	Scripts    int    `yaml:"scripts"`
}

// Markdown writes the project document. Embedded images are left out
// unless Images is set, since a single data URI can dwarf the text.
type Markdown struct {
	Images bool
	Now    func() time.Time
}

var whitespace = regexp.MustCompile(`\s+`)

// Filename is the suggested file name for an exported universe.
func Filename(u universe.Universe) string {
	return whitespace.ReplaceAllString(u.Name, "_") + "_projeto.md"
}

func (m Markdown) Export(w io.Writer, u universe.Universe, author universe.Author) error {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	var b bytes.Buffer

	meta, err := yaml.Marshal(frontmatter{
		Title:      u.Name,
		UniverseID: u.ID,
		Author:     author.Name,
		Role:       author.Role,
		Exported:   now().Format("02/01/2006"),
		Characters: len(u.Characters),
		Locations:  len(u.Locations),
		Scripts:    len(u.Scripts),
	})
	if err != nil {
		return fmt.Errorf("encoding frontmatter: %w", err)
	}
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "# %s\n\n", strings.ToUpper(u.Name))
	m.image(&b, "Logo", u.CustomLogo)
	b.WriteString("**PROJETO DE UNIVERSO CRIATIVO**\n\n")
	fmt.Fprintf(&b, "Criado por: %s  \n", author.Name)
	fmt.Fprintf(&b, "*Papel: %s*  \n", author.Role)
	fmt.Fprintf(&b, "Data de Exportação: %s\n\n", now().Format("02/01/2006"))

	b.WriteString("## VISÃO GERAL DO UNIVERSO\n\n")
	paragraph(&b, u.Description)
	for _, s := range u.ExtraSections {
		fmt.Fprintf(&b, "### %s\n\n", strings.ToUpper(s.Title))
		paragraph(&b, s.Content)
		m.gallery(&b, s.Images)
	}
	m.gallery(&b, u.Images)

	if len(u.Characters) > 0 {
		b.WriteString("## PERSONAGENS\n\n")
		for _, c := range u.Characters {
			m.character(&b, c)
		}
	}

	if len(u.Locations) > 0 {
		b.WriteString("## LOCAIS E CENÁRIOS\n\n")
		for _, l := range u.Locations {
			fmt.Fprintf(&b, "### %s\n\n*Tipo: %s*\n\n", l.Name, l.Type)
			paragraph(&b, l.Description)
			m.gallery(&b, l.Images)
			b.WriteString("---\n\n")
		}
	}

	if len(u.Scripts) > 0 {
		b.WriteString("## ROTEIROS E HISTÓRIAS\n\n")
		for _, s := range u.Scripts {
			m.script(&b, s)
		}
	}

	for _, c := range u.CustomCategories {
		fmt.Fprintf(&b, "## %s\n\n", strings.ToUpper(c.Name))
		for _, item := range c.Items {
			fmt.Fprintf(&b, "### %s\n\n", item.Name)
			paragraph(&b, item.Description)
			for _, f := range item.Fields {
				fmt.Fprintf(&b, "- **%s:** %s\n", f.Label, f.Value)
			}
			if len(item.Fields) > 0 {
				b.WriteString("\n")
			}
			m.gallery(&b, item.Images)
			b.WriteString("---\n\n")
		}
	}

	if len(u.WorldNotes) > 0 {
		b.WriteString("## NOTAS DE MUNDO\n\n")
		for _, n := range u.WorldNotes {
			fmt.Fprintf(&b, "### %s\n\n", n.Title)
			paragraph(&b, n.Content)
		}
	}

	if _, err := w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

func (m Markdown) character(b *bytes.Buffer, c universe.Character) {
	fmt.Fprintf(b, "### %s\n\n*%s*\n\n", c.Name, c.Role)
	m.image(b, c.Name, c.Image)
	b.WriteString("**História:**\n\n")
	if c.Backstory == "" {
		paragraph(b, "Nenhuma história definida.")
	} else {
		paragraph(b, c.Backstory)
	}
	if len(c.Traits) > 0 {
		b.WriteString("**Traços e Características:**\n\n")
		for _, t := range c.Traits {
			fmt.Fprintf(b, "- [%s] %s\n", t.Category, t.Description)
		}
		b.WriteString("\n")
	}
	for _, s := range c.CustomSections {
		fmt.Fprintf(b, "#### %s\n\n", s.Title)
		paragraph(b, s.Content)
		m.gallery(b, s.Images)
	}
	m.gallery(b, c.Images)
	b.WriteString("---\n\n")
}

func (m Markdown) script(b *bytes.Buffer, s universe.Script) {
	fmt.Fprintf(b, "### %s\n\n**Resumo:**\n\n", s.Title)
	paragraph(b, s.Summary)
	if len(s.Scenes) > 0 {
		b.WriteString("**Cenas:**\n\n")
	}
	for i, sc := range s.Scenes {
		title := sc.Title
		if title == "" {
			title = "Sem título"
		}
		fmt.Fprintf(b, "#### Cena %d: %s\n\n", i+1, title)
		paragraph(b, sc.Description)
		for _, d := range sc.Dialogues {
			fmt.Fprintf(b, "> %s: \"%s\"\n>\n", strings.ToUpper(d.Speaker), d.Text)
		}
		if len(sc.Dialogues) > 0 {
			b.Truncate(b.Len() - 2)
			b.WriteString("\n")
		}
	}
	m.gallery(b, s.Images)
	b.WriteString("---\n\n")
}

func (m Markdown) image(b *bytes.Buffer, alt, url string) {
	if !m.Images || url == "" {
		return
	}
	fmt.Fprintf(b, "![%s](%s)\n\n", alt, url)
}

func (m Markdown) gallery(b *bytes.Buffer, images []universe.Image) {
	for _, img := range images {
		m.image(b, img.Title, img.URL)
	}
}

func paragraph(b *bytes.Buffer, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	b.WriteString(text)
	b.WriteString("\n\n")
}
