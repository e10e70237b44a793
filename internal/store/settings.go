// settings.go implements the key/value settings map. Values are stored as
// JSON text; typed access for known keys lives in internal/settings.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Setting returns the raw JSON stored under key. An unset key yields a nil
// value and no error.
func (s *SQLiteStore) Setting(ctx context.Context, key string) (Result[json.RawMessage], error) {
	if err := s.check(); err != nil {
		return Result[json.RawMessage]{}, err
	}
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return ok[json.RawMessage](nil), nil
	}
	if err != nil {
		return degrade[json.RawMessage](s, "setting "+key, err), nil
	}
	return ok(json.RawMessage(v)), nil
}

// PutSetting JSON-encodes value and stores it under key.
func (s *SQLiteStore) PutSetting(ctx context.Context, key string, value any) error {
	if err := s.check(); err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("put setting: empty key")
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %s: %w", key, err)
	}
	if err := putSetting(ctx, s.db, key, data); err != nil {
		return err
	}
	return nil
}

func putSetting(ctx context.Context, ex execer, key string, value []byte) error {
	if len(value) == 0 {
		value = []byte("null")
	}
	_, err := ex.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("put setting %s: %w", key, err)
	}
	return nil
}

func listSettings(ctx context.Context, q queryer) ([]Setting, error) {
	rows, err := q.QueryContext(ctx, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := []Setting{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings = append(settings, Setting{Key: k, Value: json.RawMessage(v)})
	}
	return settings, rows.Err()
}
