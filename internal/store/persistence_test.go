package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"comicstudio/internal/store"
	"comicstudio/internal/store/memory"
	"comicstudio/internal/universe"
)

type failingKV struct{ err error }

func (f failingKV) EnsureSchema(ctx context.Context) error { return nil }
func (f failingKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, f.err
}
func (f failingKV) Set(ctx context.Context, key string, value []byte) error { return f.err }
func (f failingKV) Close(ctx context.Context) error                          { return nil }

func sampleTree(t *testing.T) universe.Tree {
	t.Helper()
	tree, uid := universe.CreateUniverse(nil, time.UnixMilli(1700000000000))
	up := universe.UniversePath(uid)
	char := universe.NewCharacter()
	script := universe.NewScript()
	scene := universe.NewScene()
	var err error
	for _, step := range []struct {
		parent universe.Path
		node   universe.Node
	}{
		{up, char},
		{up.Child(universe.Characters, char.ID), universe.NewTrait("Força", "Sobre-humana")},
		{up, script},
		{up.Child(universe.Scripts, script.ID), scene},
		{up, universe.NewCategory("Objetos & Itens")},
		{up, universe.NewSection("Geografia")},
	} {
		tree, err = universe.Insert(tree, step.parent, step.node)
		if err != nil {
			t.Fatalf("building sample tree: %v", err)
		}
	}
	return tree
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := store.NewPersistence(memory.New(), zap.NewNop())

	tree := sampleTree(t)
	if err := p.Save(ctx, tree); err != nil {
		t.Fatalf("save: %v", err)
	}
	if diff := cmp.Diff(tree, p.Load(ctx)); diff != "" {
		t.Fatalf("round trip mismatch (-saved +loaded):\n%s", diff)
	}

	if err := p.Save(ctx, nil); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	if got := p.Load(ctx); got == nil || len(got) != 0 {
		t.Fatalf("expected empty tree, got %#v", got)
	}
}

func TestPersistenceLoadFallsBack(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing saved yet", func(t *testing.T) {
		p := store.NewPersistence(memory.New(), nil)
		if got := p.Load(ctx); got == nil || len(got) != 0 {
			t.Fatalf("expected empty tree, got %#v", got)
		}
		if got := p.LoadAuthor(ctx); got != universe.DefaultAuthor() {
			t.Fatalf("expected default author, got %+v", got)
		}
	})

	t.Run("corrupt records", func(t *testing.T) {
		kv := memory.New()
		_ = kv.Set(ctx, store.DataKey, []byte("{not json"))
		_ = kv.Set(ctx, store.AuthorKey, []byte("[1,2"))
		p := store.NewPersistence(kv, zap.NewNop())
		if got := p.Load(ctx); len(got) != 0 {
			t.Fatalf("expected empty tree, got %#v", got)
		}
		if got := p.LoadAuthor(ctx); got != universe.DefaultAuthor() {
			t.Fatalf("expected default author, got %+v", got)
		}
	})

	t.Run("backend errors", func(t *testing.T) {
		p := store.NewPersistence(failingKV{err: errors.New("disk on fire")}, zap.NewNop())
		if got := p.Load(ctx); got == nil || len(got) != 0 {
			t.Fatalf("expected empty tree, got %#v", got)
		}
		if err := p.Save(ctx, universe.Tree{}); err == nil {
			t.Fatalf("expected save error")
		}
	})

	t.Run("legacy data is migrated on load", func(t *testing.T) {
		kv := memory.New()
		_ = kv.Set(ctx, store.DataKey, []byte(`[{"id":"u1","scripts":[{"id":"s1","scenes":[{"id":"x","speaker":"Ana","dialogue":"Oi"}]}]}]`))
		tree := store.NewPersistence(kv, nil).Load(ctx)
		got := tree[0].Scripts[0].Scenes[0].Dialogues
		if len(got) != 1 || got[0].Speaker != "Ana" || got[0].Text != "Oi" {
			t.Fatalf("unexpected dialogues: %+v", got)
		}
	})
}

func TestAuthorRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := store.NewPersistence(memory.New(), nil)
	author := universe.Author{Name: "Joana", Role: "Roteirista", Photo: "data:image/jpeg;base64,AA=="}
	if err := p.SaveAuthor(ctx, author); err != nil {
		t.Fatalf("save author: %v", err)
	}
	if got := p.LoadAuthor(ctx); got != author {
		t.Fatalf("expected %+v, got %+v", author, got)
	}
	if got := p.Load(ctx); len(got) != 0 {
		t.Fatalf("author must not leak into universes: %+v", got)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	p := store.NewPersistence(kv, nil)
	if got := p.LoadSession(ctx); got != (store.Session{}) {
		t.Fatalf("expected zero session, got %+v", got)
	}
	want := store.Session{ActiveUniverseID: "u1", View: "custom_k1"}
	if err := p.SaveSession(ctx, want); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if got := p.LoadSession(ctx); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	_ = kv.Set(ctx, store.SessionKey, []byte("{"))
	if got := p.LoadSession(ctx); got != (store.Session{}) {
		t.Fatalf("expected zero session on corrupt record, got %+v", got)
	}
}
