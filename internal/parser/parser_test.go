package parser

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	t.Run("character", func(t *testing.T) {
		doc, err := Parse([]byte("---\ntitle: Ana Silva\ntype: Character\nrole: Heroína\nage: 27\nallies: [Rui]\n---\n\nCresceu entre os barcos do cais.\n"))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		got := map[string]string{
			"title": doc.Title,
			"type":  doc.Type,
			"body":  doc.Body,
			"role":  doc.String("role"),
			"age":   doc.String("age"),
			"list":  doc.String("allies"),
			"none":  doc.String("missing"),
		}
		want := map[string]string{
			"title": "Ana Silva",
			"type":  "character",
			"body":  "Cresceu entre os barcos do cais.\n",
			"role":  "Heroína",
			"age":   "27",
			"list":  "",
			"none":  "",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("document mismatch (-want +got):\n%s", diff)
		}
	})

	bodies := []struct {
		name, input, body string
	}{
		{"empty body", "---\ntitle: Minimal\ntype: note\n---\n", ""},
		{"fence ends the file", "---\ntitle: Fim\ntype: note\n---", ""},
		{"windows line endings", "---\r\ntitle: Cais\r\ntype: location\r\n---\r\nNévoa.\r\n", "Névoa.\n"},
		{"fences inside the body", "---\ntitle: Roteiro\ntype: script\n---\nCena um\n---\nCena dois\n", "Cena um\n---\nCena dois\n"},
		{"byte order mark", "\ufeff---\ntitle: BOM\ntype: note\n---\nx", "x"},
	}
	for _, tc := range bodies {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Parse([]byte(tc.input))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if doc.Body != tc.body {
				t.Fatalf("expected body %q, got %q", tc.body, doc.Body)
			}
		})
	}

	failures := []struct {
		name, input string
		want        error
	}{
		{"plain text", "Just text", ErrNoFrontmatter},
		{"unclosed", "---\ntitle: Missing\n", ErrNoFrontmatter},
		{"fence without newline", "---", ErrNoFrontmatter},
		{"broken yaml", "---\ntitle: [\n---\n", ErrInvalidYAML},
		{"list frontmatter", "---\n- a\n- b\n---\n", ErrInvalidYAML},
		{"empty frontmatter", "---\n---\nbody", ErrMissingTitle},
		{"no title", "---\ntype: character\n---\n", ErrMissingTitle},
		{"blank title", "---\ntitle: '  '\ntype: note\n---\n", ErrMissingTitle},
		{"no type", "---\ntitle: Something\n---\n", ErrMissingType},
	}
	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.input)); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestPairs(t *testing.T) {
	doc, err := Parse([]byte("---\ntitle: Espada\ntype: item\nfields:\n  Peso: 3\n  Material: Aço\n  Origem:\nempty:\nlist: [a]\nnested:\n  a: [1]\n---\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	got, err := doc.Pairs("fields")
	if err != nil {
		t.Fatalf("pairs: %v", err)
	}
	want := []Pair{{"Peso", "3"}, {"Material", "Aço"}, {"Origem", ""}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("pairs mismatch (-want +got):\n%s", diff)
	}

	for _, key := range []string{"missing", "empty"} {
		if got, err := doc.Pairs(key); err != nil || got != nil {
			t.Fatalf("%s: expected no pairs, got %v %v", key, got, err)
		}
	}
	for _, key := range []string{"list", "nested"} {
		if _, err := doc.Pairs(key); err == nil {
			t.Fatalf("%s: expected error", key)
		}
	}
}

func TestParseFile(t *testing.T) {
	doc, err := ParseFile(filepath.Join("testdata", "ana.md"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Title != "Ana Silva" || doc.SourceFile == "" {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if _, ok := doc.Frontmatter["traits"].([]any); !ok {
		t.Fatalf("expected traits list, got %#v", doc.Frontmatter["traits"])
	}

	for name, want := range map[string]error{
		"no_frontmatter.md": ErrNoFrontmatter,
		"missing_type.md":   ErrMissingType,
	} {
		if _, err := ParseFile(filepath.Join("testdata", name)); !errors.Is(err, want) {
			t.Fatalf("%s: expected %v, got %v", name, want, err)
		}
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.md")); err == nil {
		t.Fatalf("expected read error")
	}
}
