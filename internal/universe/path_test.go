package universe

import (
	"errors"
	"testing"
)

func TestParsePath(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		in := "u1/characters/c1/customSections/s1/images/i1"
		p, err := ParsePath(in)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.Universe != "u1" || len(p.Steps) != 3 {
			t.Fatalf("unexpected path: %+v", p)
		}
		if p.String() != in {
			t.Fatalf("expected %q, got %q", in, p.String())
		}
		if p.Target() != "i1" {
			t.Fatalf("unexpected target %q", p.Target())
		}
		if p.Parent().String() != "u1/characters/c1/customSections/s1" {
			t.Fatalf("unexpected parent %q", p.Parent())
		}
	})

	t.Run("universe only", func(t *testing.T) {
		p, err := ParsePath("/u1/")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.Target() != "u1" || len(p.Steps) != 0 {
			t.Fatalf("unexpected path: %+v", p)
		}
	})

	invalid := map[string]string{
		"empty":              "",
		"dangling":           "u1/characters",
		"unknown collection": "u1/weapons/w1",
		"empty id":           "u1/characters//traits/t1",
	}
	for name, in := range invalid {
		t.Run(name, func(t *testing.T) {
			if _, err := ParsePath(in); !errors.Is(err, ErrInvalidPath) {
				t.Fatalf("expected ErrInvalidPath for %q, got %v", in, err)
			}
		})
	}
}

func TestChildDoesNotAlias(t *testing.T) {
	base := UniversePath("u1").Child(Scripts, "s1")
	a := base.Child(Scenes, "a")
	b := base.Child(Scenes, "b")
	if a.Target() != "a" || b.Target() != "b" {
		t.Fatalf("child paths share storage: %s %s", a, b)
	}
}
