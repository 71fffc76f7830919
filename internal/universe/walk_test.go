package universe

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWalk(t *testing.T) {
	tree, up := seedTree(t)
	char := NewCharacter()
	script := NewScript()
	scene := NewScene()
	tree = mustInsert(t, tree, up, char)
	tree = mustInsert(t, tree, up.Child(Characters, char.ID), NewTrait("Força", "Alta"))
	tree = mustInsert(t, tree, up, script)
	tree = mustInsert(t, tree, up.Child(Scripts, script.ID), scene)
	tree = mustInsert(t, tree, up, NewImage("data:image/png;base64,AA==", "Capa"))

	var kinds []Kind
	Walk(tree, func(p Path, n Node) bool {
		found, ok := Find(tree, p)
		if !ok || found.NodeID() != n.NodeID() {
			t.Fatalf("walk produced a path that does not resolve: %s", p)
		}
		kinds = append(kinds, n.Kind())
		return true
	})
	want := []Kind{KindUniverse, KindCharacter, KindTrait, KindScript, KindScene, KindDialogue, KindImage}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("unexpected visit order (-want +got):\n%s", diff)
	}

	t.Run("stops early", func(t *testing.T) {
		visited := 0
		Walk(tree, func(p Path, n Node) bool {
			visited++
			return n.Kind() != KindCharacter
		})
		if visited != 2 {
			t.Fatalf("expected walk to stop after the character, visited %d", visited)
		}
	})
}

func TestChildPath(t *testing.T) {
	tree, up := seedTree(t)
	char := NewCharacter()
	tree = mustInsert(t, tree, up, char)
	cp := up.Child(Characters, char.ID)
	section := NewSection("Origem")
	tree = mustInsert(t, tree, cp, section)

	got, ok := ChildPath(tree, cp, section.ID)
	if !ok || got.String() != cp.Child(CustomSections, section.ID).String() {
		t.Fatalf("unexpected child path %s (found %v)", got, ok)
	}
	if _, ok := ChildPath(tree, up, section.ID); ok {
		t.Fatalf("grandchild must not resolve as a direct child")
	}
	if _, ok := ChildPath(tree, up, up.Universe); ok {
		t.Fatalf("a universe is nobody's child")
	}
}
