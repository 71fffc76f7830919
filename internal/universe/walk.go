package universe

// Walk visits every node of t depth-first in stored order, parents before
// their children. Returning false from fn stops the walk.
func Walk(t Tree, fn func(p Path, n Node) bool) {
	for _, u := range t {
		if !walkUniverse(u, fn) {
			return
		}
	}
}

func walkUniverse(u Universe, fn func(Path, Node) bool) bool {
	up := UniversePath(u.ID)
	if !fn(up, u) {
		return false
	}
	for _, c := range u.Characters {
		cp := up.Child(Characters, c.ID)
		if !fn(cp, c) ||
			!walkEach(cp, Traits, c.Traits, fn) ||
			!walkImages(cp, c.Images, fn) {
			return false
		}
		for _, s := range c.CustomSections {
			sp := cp.Child(CustomSections, s.ID)
			if !fn(sp, s) || !walkImages(sp, s.Images, fn) {
				return false
			}
		}
	}
	for _, l := range u.Locations {
		lp := up.Child(Locations, l.ID)
		if !fn(lp, l) || !walkImages(lp, l.Images, fn) {
			return false
		}
	}
	for _, s := range u.Scripts {
		sp := up.Child(Scripts, s.ID)
		if !fn(sp, s) {
			return false
		}
		for _, sc := range s.Scenes {
			scp := sp.Child(Scenes, sc.ID)
			if !fn(scp, sc) || !walkEach(scp, Dialogues, sc.Dialogues, fn) {
				return false
			}
		}
		if !walkImages(sp, s.Images, fn) {
			return false
		}
	}
	for _, c := range u.CustomCategories {
		cp := up.Child(CustomCategories, c.ID)
		if !fn(cp, c) {
			return false
		}
		for _, it := range c.Items {
			ip := cp.Child(Items, it.ID)
			if !fn(ip, it) || !walkEach(ip, Fields, it.Fields, fn) || !walkImages(ip, it.Images, fn) {
				return false
			}
		}
	}
	if !walkEach(up, WorldNotes, u.WorldNotes, fn) || !walkImages(up, u.Images, fn) {
		return false
	}
	for _, s := range u.ExtraSections {
		sp := up.Child(ExtraSections, s.ID)
		if !fn(sp, s) || !walkImages(sp, s.Images, fn) {
			return false
		}
	}
	return true
}

func walkImages(parent Path, images []Image, fn func(Path, Node) bool) bool {
	return walkEach(parent, Images, images, fn)
}

func walkEach[N Node](parent Path, coll Collection, nodes []N, fn func(Path, Node) bool) bool {
	for _, n := range nodes {
		if !fn(parent.Child(coll, n.NodeID()), n) {
			return false
		}
	}
	return true
}

// ChildPath finds the path of the direct child id of parent, whichever
// collection holds it.
func ChildPath(t Tree, parent Path, id string) (Path, bool) {
	var found Path
	ok := false
	want := parent.String()
	Walk(t, func(p Path, n Node) bool {
		if n.NodeID() == id && len(p.Steps) > 0 && p.Parent().String() == want {
			found, ok = p, true
			return false
		}
		return true
	})
	return found, ok
}
