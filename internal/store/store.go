package store

import "context"

// Keys under which the workbench keeps its independent records.
const (
	DataKey    = "comic_studio_data"
	AuthorKey  = "comic_studio_author"
	SessionKey = "comic_studio_session"
)

// Session is the selection state shared by successive CLI invocations.
type Session struct {
	ActiveUniverseID string `json:"activeUniverseId,omitempty"`
	View             string `json:"view,omitempty"`
}

// KV is the storage port: an opaque blob per fixed key.
type KV interface {
	EnsureSchema(ctx context.Context) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close(ctx context.Context) error
}

// SQLRunner is implemented by the SQL backends for ad-hoc inspection.
type SQLRunner interface {
	RunSQL(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}
