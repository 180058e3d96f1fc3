package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Storage struct {
	db  *sqlx.DB
	key string
}

func New(db *sqlx.DB, key string) *Storage {
	return &Storage{
		db:  db,
		key: key,
	}
}

// Load returns the stored value, or nil if no row exists for the key.
func (s *Storage) Load(ctx context.Context) ([]byte, error) {
	const op = "adapter.storage.postgres.Storage.Load"
	const query = `SELECT value FROM kv_store WHERE key = $1`

	var data []byte

	if err := s.db.GetContext(ctx, &data, query, s.key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("%s: failed to get row from kv_store table: %w", op, err)
	}

	return data, nil
}

func (s *Storage) Save(ctx context.Context, data []byte) error {
	const op = "adapter.storage.postgres.Storage.Save"
	const query = `INSERT INTO kv_store(key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	if _, err := s.db.ExecContext(ctx, query, s.key, data); err != nil {
		return fmt.Errorf("%s: failed to upsert kv_store table row: %w", op, err)
	}

	return nil
}
