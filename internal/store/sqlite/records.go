package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

func (c *Client) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := c.db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading record %s: %w", key, err)
	}
	return value, true, nil
}

func (c *Client) Set(ctx context.Context, key string, value []byte) error {
	query := `
INSERT INTO records (key, value, updated_at)
VALUES (?, ?, datetime('now'))
ON CONFLICT (key) DO UPDATE SET
    value = excluded.value,
    updated_at = excluded.updated_at
`
	if _, err := c.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("writing record %s: %w", key, err)
	}
	return nil
}
