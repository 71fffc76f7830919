// Package studio holds one editing session over the universe tree: the
// tree itself, the author, and what is currently selected. Every change
// is written through to storage before it becomes visible.
package studio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"comicstudio/internal/store"
	"comicstudio/internal/universe"
)

var (
	ErrNoActiveUniverse = errors.New("no active universe")
	ErrUnknownUniverse  = errors.New("unknown universe")
	ErrNotFound         = errors.New("node not found")
)

type Studio struct {
	mu      sync.Mutex
	tree    universe.Tree
	author  universe.Author
	session store.Session

	persist *store.Persistence
	log     *zap.Logger
	now     func() time.Time
}

type Option func(*Studio)

// WithClock replaces time.Now for universe creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Studio) { s.now = now }
}

// Open loads the tree, the author and the last selection. Loading never
// fails; unreadable records come back as empty defaults.
func Open(ctx context.Context, p *store.Persistence, log *zap.Logger, opts ...Option) *Studio {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Studio{
		tree:    p.Load(ctx),
		author:  p.LoadAuthor(ctx),
		session: p.LoadSession(ctx),
		persist: p,
		log:     log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.session.View == "" {
		s.session.View = ViewDashboard
	}
	s.reconcile()
	return s
}

// Snapshot returns the current tree and author. The tree is shared with the
// session and must be treated as read-only.
func (s *Studio) Snapshot() (universe.Tree, universe.Author) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree, s.author
}

func (s *Studio) Session() store.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *Studio) Active() (universe.Universe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return universe.FindUniverse(s.tree, s.session.ActiveUniverseID)
}

// ActivePath is the path of the active universe, for callers that address
// nodes relative to it.
func (s *Studio) ActivePath() (universe.Path, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.ActiveUniverseID == "" {
		return universe.Path{}, ErrNoActiveUniverse
	}
	return universe.UniversePath(s.session.ActiveUniverseID), nil
}

// Current resolves the selected view against the active universe.
func (s *Studio) Current() (universe.Universe, Target, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := universe.FindUniverse(s.tree, s.session.ActiveUniverseID)
	if !ok {
		return universe.Universe{}, Target{View: ViewDashboard}, false
	}
	return u, Resolve(u, s.session.View), true
}

func (s *Studio) Find(p universe.Path) (universe.Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return universe.Find(s.tree, p)
}

func (s *Studio) CreateUniverse(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, id := universe.CreateUniverse(s.tree, s.now())
	session := store.Session{ActiveUniverseID: id, View: ViewDashboard}
	if err := s.commit(ctx, next, &session); err != nil {
		return "", err
	}
	s.log.Info("universe created", zap.String("id", id))
	return id, nil
}

// ImportUniverse appends a fully built universe, such as one produced by
// the lore importer, and selects it.
func (s *Studio) ImportUniverse(ctx context.Context, u universe.Universe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := universe.AppendUniverse(s.tree, u)
	session := store.Session{ActiveUniverseID: u.ID, View: ViewDashboard}
	return s.commit(ctx, next, &session)
}

// Update merges patch into the node at p. Missing paths are a no-op.
func (s *Studio) Update(ctx context.Context, p universe.Path, patch universe.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := universe.Update(s.tree, p, patch)
	if err != nil {
		return err
	}
	return s.commit(ctx, next, nil)
}

// Insert appends child under parent and returns its id. Unlike updates and
// deletes, inserting under a missing parent reports ErrNotFound so callers
// can tell the node was not created.
func (s *Studio) Insert(ctx context.Context, parent universe.Path, child universe.Node) (string, error) {
	return s.InsertWith(ctx, parent, child, nil)
}

// InsertWith merges patch into child and inserts the result in a single
// commit. A rejected patch creates nothing.
func (s *Studio) InsertWith(ctx context.Context, parent universe.Path, child universe.Node, patch universe.Patch) (string, error) {
	child, err := universe.Apply(child, patch)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(ctx, parent, child)
}

func (s *Studio) insertLocked(ctx context.Context, parent universe.Path, child universe.Node) (string, error) {
	if _, ok := universe.Find(s.tree, parent); !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, parent)
	}
	next, err := universe.Insert(s.tree, parent, child)
	if err != nil {
		return "", err
	}
	if err := s.commit(ctx, next, nil); err != nil {
		return "", err
	}
	return child.NodeID(), nil
}

// Delete removes the node at p and everything it owns. A selection that
// pointed into the removed subtree is cleared.
func (s *Studio) Delete(ctx context.Context, p universe.Path) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, universe.Delete(s.tree, p), nil)
}

// AddCategoryFromTemplate creates a custom category named after a template
// in the active universe and opens its page.
func (s *Studio) AddCategoryFromTemplate(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.ActiveUniverseID == "" {
		return "", ErrNoActiveUniverse
	}
	category := universe.NewCategory(name)
	next, err := universe.Insert(s.tree, universe.UniversePath(s.session.ActiveUniverseID), category)
	if err != nil {
		return "", err
	}
	session := store.Session{ActiveUniverseID: s.session.ActiveUniverseID, View: CustomView(category.ID)}
	if err := s.commit(ctx, next, &session); err != nil {
		return "", err
	}
	return category.ID, nil
}

func (s *Studio) SetAuthor(ctx context.Context, author universe.Author) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist.SaveAuthor(ctx, author); err != nil {
		return err
	}
	s.author = author
	return nil
}

// Select makes id the active universe and returns to its dashboard. An
// empty id clears the selection.
func (s *Studio) Select(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if _, ok := universe.FindUniverse(s.tree, id); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownUniverse, id)
		}
	}
	return s.saveSession(ctx, store.Session{ActiveUniverseID: id, View: ViewDashboard})
}

// SetView switches the page shown for the active universe. Any view may
// follow any other.
func (s *Studio) SetView(ctx context.Context, view string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if view == "" {
		view = ViewDashboard
	}
	return s.saveSession(ctx, store.Session{ActiveUniverseID: s.session.ActiveUniverseID, View: view})
}

// commit persists next and only then makes it current, so a failed write
// leaves the session exactly as it was.
func (s *Studio) commit(ctx context.Context, next universe.Tree, session *store.Session) error {
	if err := s.persist.Save(ctx, next); err != nil {
		return err
	}
	s.tree = next
	if session != nil {
		s.session = *session
	}
	before := s.session
	s.reconcile()
	if session != nil || s.session != before {
		if err := s.persist.SaveSession(ctx, s.session); err != nil {
			s.log.Warn("failed to save session", zap.Error(err))
		}
	}
	return nil
}

func (s *Studio) saveSession(ctx context.Context, session store.Session) error {
	if err := s.persist.SaveSession(ctx, session); err != nil {
		return err
	}
	s.session = session
	return nil
}

// reconcile keeps the selection pointing at things that exist: a removed
// active universe gives way to the first remaining one, and a custom view
// whose category is gone goes back to the dashboard.
func (s *Studio) reconcile() {
	if _, ok := universe.FindUniverse(s.tree, s.session.ActiveUniverseID); !ok {
		s.session.ActiveUniverseID = ""
		if len(s.tree) > 0 {
			s.session.ActiveUniverseID = s.tree[0].ID
		}
		s.session.View = ViewDashboard
		return
	}
	if _, ok := customCategoryID(s.session.View); ok {
		u, _ := universe.FindUniverse(s.tree, s.session.ActiveUniverseID)
		if Resolve(u, s.session.View).View != ViewCustom {
			s.session.View = ViewDashboard
		}
	}
}
