// Package migrate brings persisted universes written by any earlier version
// of the workbench into the current shape.
package migrate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"comicstudio/internal/universe"
)

var ErrNotAList = errors.New("persisted data is not a list of universes")

// SkipError reports one universe that could not be read and was left out.
type SkipError struct {
	Index int
	ID    string
	Err   error
}

func (e *SkipError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("universe %d (%s) skipped: %v", e.Index, e.ID, e.Err)
	}
	return fmt.Sprintf("universe %d skipped: %v", e.Index, e.Err)
}

func (e *SkipError) Unwrap() error { return e.Err }

// Migrate never fails as a whole. A blob that is not a JSON array yields an
// empty tree; each malformed universe inside an array is skipped. Every
// problem is logged and returned so callers can surface it if they want.
func Migrate(raw []byte, log *zap.Logger) (universe.Tree, []error) {
	if log == nil {
		log = zap.NewNop()
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		log.Warn("discarding persisted universes", zap.Error(ErrNotAList))
		return universe.Tree{}, []error{ErrNotAList}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		err = fmt.Errorf("%w: %v", ErrNotAList, err)
		log.Warn("discarding persisted universes", zap.Error(err))
		return universe.Tree{}, []error{err}
	}

	tree := make(universe.Tree, 0, len(elements))
	var problems []error
	for i, element := range elements {
		u, err := migrateOne(element)
		if err != nil {
			skip := &SkipError{Index: i, ID: peekID(element), Err: err}
			log.Warn("skipping unreadable universe", zap.Int("index", i), zap.String("id", skip.ID), zap.Error(err))
			problems = append(problems, skip)
			continue
		}
		tree = append(tree, u)
	}
	return tree, problems
}

func migrateOne(element json.RawMessage) (universe.Universe, error) {
	trimmed := bytes.TrimSpace(element)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return universe.Universe{}, errors.New("not an object")
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return universe.Universe{}, err
	}
	cleaned, err := json.Marshal(dropNulls(generic))
	if err != nil {
		return universe.Universe{}, err
	}

	var record universeRecord
	if err := json.Unmarshal(cleaned, &record); err != nil {
		return universe.Universe{}, err
	}
	return record.universe(), nil
}

// dropNulls removes null elements from every array below v. A null element
// would otherwise decode into a node without an id.
func dropNulls(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, child := range v {
			v[k] = dropNulls(child)
		}
		return v
	case []any:
		out := make([]any, 0, len(v))
		for _, child := range v {
			if child == nil {
				continue
			}
			out = append(out, dropNulls(child))
		}
		return out
	}
	return v
}

// peekID recovers the id of a broken record for the log line, if it has one.
func peekID(element json.RawMessage) string {
	var head struct {
		ID any `json:"id"`
	}
	if err := json.Unmarshal(element, &head); err != nil {
		return ""
	}
	id, _ := head.ID.(string)
	return id
}
