package store

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"comicstudio/internal/migrate"
	"comicstudio/internal/universe"
)

// Persistence loads and saves the universe tree and the author through a
// KV port. Loading never fails: problems are logged and an empty default
// is returned instead.
type Persistence struct {
	kv  KV
	log *zap.Logger
}

func NewPersistence(kv KV, log *zap.Logger) *Persistence {
	if log == nil {
		log = zap.NewNop()
	}
	return &Persistence{kv: kv, log: log}
}

func (p *Persistence) Load(ctx context.Context) universe.Tree {
	raw, ok, err := p.kv.Get(ctx, DataKey)
	if err != nil {
		p.log.Error("failed to load universes", zap.Error(err))
		return universe.Tree{}
	}
	if !ok {
		return universe.Tree{}
	}
	tree, problems := migrate.Migrate(raw, p.log)
	if len(problems) > 0 {
		p.log.Warn("loaded universes with problems", zap.Int("loaded", len(tree)), zap.Int("skipped", len(problems)))
	}
	return tree
}

func (p *Persistence) Save(ctx context.Context, tree universe.Tree) error {
	if tree == nil {
		tree = universe.Tree{}
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encoding universes: %w", err)
	}
	if err := p.kv.Set(ctx, DataKey, data); err != nil {
		return fmt.Errorf("saving universes: %w", err)
	}
	return nil
}

// LoadAuthor has no legacy shapes to convert; anything unreadable falls back
// to the default author.
func (p *Persistence) LoadAuthor(ctx context.Context) universe.Author {
	raw, ok, err := p.kv.Get(ctx, AuthorKey)
	if err != nil {
		p.log.Error("failed to load author", zap.Error(err))
		return universe.DefaultAuthor()
	}
	if !ok {
		return universe.DefaultAuthor()
	}
	var author universe.Author
	if err := json.Unmarshal(raw, &author); err != nil {
		p.log.Error("failed to load author", zap.Error(err))
		return universe.DefaultAuthor()
	}
	return author
}

func (p *Persistence) SaveAuthor(ctx context.Context, author universe.Author) error {
	data, err := json.Marshal(author)
	if err != nil {
		return fmt.Errorf("encoding author: %w", err)
	}
	if err := p.kv.Set(ctx, AuthorKey, data); err != nil {
		return fmt.Errorf("saving author: %w", err)
	}
	return nil
}

func (p *Persistence) LoadSession(ctx context.Context) Session {
	raw, ok, err := p.kv.Get(ctx, SessionKey)
	if err != nil || !ok {
		if err != nil {
			p.log.Error("failed to load session", zap.Error(err))
		}
		return Session{}
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		p.log.Error("failed to load session", zap.Error(err))
		return Session{}
	}
	return s
}

func (p *Persistence) SaveSession(ctx context.Context, s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := p.kv.Set(ctx, SessionKey, data); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}
