// Package parser reads Markdown lore files that open with a YAML
// frontmatter block delimited by "---" lines.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoFrontmatter = errors.New("no frontmatter found")
	ErrInvalidYAML   = errors.New("invalid YAML in frontmatter")
	ErrMissingTitle  = errors.New("frontmatter missing required 'title' field")
	ErrMissingType   = errors.New("frontmatter missing required 'type' field")
)

const fence = "---"

// Document is one parsed lore file. Type is lower-cased; Body has its
// leading blank lines removed.
type Document struct {
	Frontmatter map[string]any
	Title       string
	Type        string
	Body        string
	SourceFile  string

	header *yaml.Node
}

// Pair is one entry of a frontmatter mapping, in the order it was written.
type Pair struct {
	Key   string
	Value string
}

func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.SourceFile = path
	return doc, nil
}

func Parse(content []byte) (*Document, error) {
	header, body, err := split(content)
	if err != nil {
		return nil, err
	}

	doc := &Document{Frontmatter: map[string]any{}, Body: body}
	if len(bytes.TrimSpace(header)) > 0 {
		var root yaml.Node
		if err := yaml.Unmarshal(header, &root); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
		if err := root.Decode(&doc.Frontmatter); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
		if len(root.Content) == 1 {
			doc.header = root.Content[0]
		}
	}

	if doc.Title = doc.String("title"); doc.Title == "" {
		return nil, ErrMissingTitle
	}
	if doc.Type = strings.ToLower(doc.String("type")); doc.Type == "" {
		return nil, ErrMissingType
	}
	return doc, nil
}

// split separates the frontmatter from the body. Line endings are
// normalized first and a leading byte order mark is ignored.
func split(content []byte) ([]byte, string, error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	content = bytes.TrimLeft(content, "\ufeff\n\t ")

	lines := strings.SplitAfter(string(content), "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\n") != fence || !strings.HasSuffix(lines[0], "\n") {
		return nil, "", ErrNoFrontmatter
	}

	var header strings.Builder
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\n") == fence {
			body := strings.Join(lines[i+1:], "")
			return []byte(header.String()), strings.TrimLeft(body, "\n"), nil
		}
		header.WriteString(lines[i])
	}
	return nil, "", ErrNoFrontmatter
}

// String returns a frontmatter field as trimmed text. Numbers and booleans
// are formatted; lists, maps and missing keys read as "".
func (d *Document) String(key string) string {
	switch v := d.Frontmatter[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case int, int64, float64, bool:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

// Pairs returns the entries of a mapping field in file order. A missing or
// null field yields no pairs; values must be scalars.
func (d *Document) Pairs(key string) ([]Pair, error) {
	value := d.lookup(key)
	if value == nil || value.Tag == "!!null" {
		return nil, nil
	}
	if value.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s must be a map", key)
	}
	pairs := make([]Pair, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		k, v := value.Content[i], value.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%s.%s must be text", key, k.Value)
		}
		p := Pair{Key: strings.TrimSpace(k.Value)}
		if v.Tag != "!!null" {
			p.Value = strings.TrimSpace(v.Value)
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

func (d *Document) lookup(key string) *yaml.Node {
	if d.header == nil || d.header.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(d.header.Content); i += 2 {
		if d.header.Content[i].Value == key {
			return d.header.Content[i+1]
		}
	}
	return nil
}
