package migrate

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"comicstudio/internal/universe"
)

const legacyBlob = `[
  {
    "id": "u1",
    "name": "Neo Recife",
    "description": "Cidade submersa",
    "createdAt": 1700000000000,
    "characters": [{"id": "c1", "name": "Ana", "role": "Heroína", "backstory": "", "traits": [], "images": []}],
    "scripts": [{
      "id": "s1", "title": "Capítulo 1", "summary": "", "images": [],
      "scenes": [
        {"id": "sc1", "description": "Cais", "speaker": "Ana", "dialogue": "Oi"},
        {"id": "sc2", "description": "Silêncio"},
        {"id": "sc3", "description": "Só fala", "speaker": "", "dialogue": "Quem está aí?"},
        {"id": "sc4", "description": "Atual", "dialogues": [{"id": "d1", "speaker": "Rui", "text": "Aqui"}]},
        {"id": "sc5", "description": "Nulo", "dialogues": null, "speaker": "Rui"}
      ]
    }],
    "customCategories": [{"id": "k1", "name": "Objetos", "items": [{"id": "i1", "name": "Espada", "description": ""}]}],
    "worldNotes": [],
    "images": []
  }
]`

func TestMigrateLegacyScenes(t *testing.T) {
	tree, problems := Migrate([]byte(legacyBlob), zap.NewNop())
	if len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
	if len(tree) != 1 {
		t.Fatalf("expected one universe, got %d", len(tree))
	}
	scenes := tree[0].Scripts[0].Scenes

	t.Run("speaker and dialogue become one entry", func(t *testing.T) {
		got := scenes[0].Dialogues
		if len(got) != 1 || got[0].Speaker != "Ana" || got[0].Text != "Oi" || got[0].ID == "" {
			t.Fatalf("unexpected dialogues: %+v", got)
		}
	})

	t.Run("no signal becomes an empty list", func(t *testing.T) {
		if got := scenes[1].Dialogues; got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil list, got %#v", got)
		}
	})

	t.Run("any non-empty half converts", func(t *testing.T) {
		got := scenes[2].Dialogues
		if len(got) != 1 || got[0].Speaker != "" || got[0].Text != "Quem está aí?" {
			t.Fatalf("unexpected dialogues: %+v", got)
		}
	})

	t.Run("current shape is kept", func(t *testing.T) {
		want := []universe.Dialogue{{ID: "d1", Speaker: "Rui", Text: "Aqui"}}
		if diff := cmp.Diff(want, scenes[3].Dialogues); diff != "" {
			t.Fatalf("unexpected dialogues (-want +got):\n%s", diff)
		}
	})

	t.Run("null dialogues are treated as legacy", func(t *testing.T) {
		got := scenes[4].Dialogues
		if len(got) != 1 || got[0].Speaker != "Rui" || got[0].Text != "" {
			t.Fatalf("unexpected dialogues: %+v", got)
		}
	})
}

func TestMigrateFillsCollections(t *testing.T) {
	tree, _ := Migrate([]byte(`[{"id":"u1","name":"Vazio"}]`), nil)
	if len(tree) != 1 {
		t.Fatalf("expected one universe, got %d", len(tree))
	}
	u := tree[0]
	if u.Characters == nil || u.Locations == nil || u.Scripts == nil || u.CustomCategories == nil ||
		u.ExtraSections == nil || u.WorldNotes == nil || u.Images == nil {
		t.Fatalf("expected every collection to be present: %+v", u)
	}

	tree, _ = Migrate([]byte(legacyBlob), nil)
	if tree[0].Characters[0].CustomSections == nil {
		t.Fatalf("expected character custom sections")
	}
	item := tree[0].CustomCategories[0].Items[0]
	if item.Fields == nil || item.Images == nil {
		t.Fatalf("expected item fields and images: %+v", item)
	}
	if tree[0].Locations == nil || tree[0].ExtraSections == nil {
		t.Fatalf("expected locations and extra sections")
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	inputs := map[string]string{
		"legacy":  legacyBlob,
		"minimal": `[{"id":"u1"}]`,
		"empty":   `[]`,
		"nulls":   `[{"id":"u1","createdAt":1.7e12,"scripts":[{"id":"s","scenes":[null,{"id":"x"}]}],"images":[null]}]`,
		"mixed":   `[{"id":"ok","scripts":[{"id":"s","scenes":[{"id":"x","speaker":"A"}]}]}, 7, {"id":"bad","name":3}]`,
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			first, _ := Migrate([]byte(input), nil)
			once, err := json.Marshal(first)
			if err != nil {
				t.Fatalf("encoding: %v", err)
			}
			second, problems := Migrate(once, nil)
			if len(problems) != 0 {
				t.Fatalf("migrated output should be clean, got %v", problems)
			}
			twice, err := json.Marshal(second)
			if err != nil {
				t.Fatalf("encoding: %v", err)
			}
			if string(once) != string(twice) {
				t.Fatalf("migration is not idempotent:\n%s\n%s", once, twice)
			}
		})
	}
}

func TestMigrateFailSoft(t *testing.T) {
	t.Run("bad records are skipped", func(t *testing.T) {
		blob := `[{"id":"a","name":"A"}, "nope", {"id":"b","characters":{"not":"a list"}}, {"id":"c"}]`
		tree, problems := Migrate([]byte(blob), zap.NewNop())
		if len(tree) != 2 || tree[0].ID != "a" || tree[1].ID != "c" {
			t.Fatalf("unexpected tree: %+v", tree)
		}
		if len(problems) != 2 {
			t.Fatalf("expected two problems, got %v", problems)
		}
		var skip *SkipError
		if !errors.As(problems[1], &skip) || skip.ID != "b" || skip.Index != 2 {
			t.Fatalf("unexpected skip error: %v", problems[1])
		}
	})

	for name, blob := range map[string]string{
		"object":  `{"id":"u1"}`,
		"garbage": `{{{`,
		"null":    `null`,
		"empty":   ``,
		"broken":  `[{"id":"u1"`,
	} {
		t.Run(name, func(t *testing.T) {
			tree, problems := Migrate([]byte(blob), nil)
			if tree == nil || len(tree) != 0 {
				t.Fatalf("expected empty tree, got %#v", tree)
			}
			if len(problems) != 1 || !errors.Is(problems[0], ErrNotAList) {
				t.Fatalf("expected ErrNotAList, got %v", problems)
			}
		})
	}
}

func TestMigrateFractionalCreatedAt(t *testing.T) {
	for name, createdAt := range map[string]string{
		"exponent": `1.7e12`,
		"decimal":  `1700000000000.0`,
		"fraction": `1700000000000.9`,
	} {
		t.Run(name, func(t *testing.T) {
			blob := `[{"id":"u1","createdAt":` + createdAt + `}]`
			tree, problems := Migrate([]byte(blob), nil)
			if len(problems) != 0 {
				t.Fatalf("expected no problems, got %v", problems)
			}
			if len(tree) != 1 {
				t.Fatalf("expected the universe to be kept, got %d", len(tree))
			}
			if tree[0].CreatedAt != 1700000000000 {
				t.Fatalf("unexpected createdAt %d", tree[0].CreatedAt)
			}
		})
	}

	t.Run("null", func(t *testing.T) {
		tree, problems := Migrate([]byte(`[{"id":"u1","createdAt":null}]`), nil)
		if len(problems) != 0 || len(tree) != 1 || tree[0].CreatedAt != 0 {
			t.Fatalf("unexpected result %+v %v", tree, problems)
		}
	})
}

func TestMigrateDropsNullElements(t *testing.T) {
	blob := `[{
		"id": "u1",
		"characters": [null, {"id": "c1", "traits": [null, {"id": "t1", "name": "Calma"}]}],
		"scripts": [{"id": "s1", "scenes": [null, {"id": "sc1", "dialogues": [null]}, null]}],
		"customCategories": [{"id": "k1", "items": [{"id": "i1", "fields": [null]}, null]}],
		"worldNotes": [null],
		"images": [null]
	}]`
	tree, problems := Migrate([]byte(blob), nil)
	if len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
	if len(tree) != 1 {
		t.Fatalf("expected one universe, got %d", len(tree))
	}

	var ids []string
	universe.Walk(tree, func(_ universe.Path, n universe.Node) bool {
		ids = append(ids, n.NodeID())
		return true
	})
	want := []string{"u1", "c1", "t1", "s1", "sc1", "k1", "i1"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("unexpected nodes (-want +got):\n%s", diff)
	}

	u := tree[0]
	if got := u.Scripts[0].Scenes; len(got) != 1 || got[0].ID != "sc1" || len(got[0].Dialogues) != 0 {
		t.Fatalf("unexpected scenes %+v", got)
	}
	if len(u.WorldNotes) != 0 || len(u.Images) != 0 || len(u.CustomCategories[0].Items[0].Fields) != 0 {
		t.Fatalf("null elements survived: %+v", u)
	}
}
