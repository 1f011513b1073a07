package storage

import (
	"context"
	"fmt"
)

// PostgresStore implements RecipientStore on a PostgreSQL table.
// Upsert and delete are single atomic statements, so concurrent RPC
// handlers never need coordination above the store.
type PostgresStore struct {
	db *DB
}

// NewPostgresStore creates a PostgresStore over an existing pool.
func NewPostgresStore(db *DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Add upserts an authorization record, refreshing authorized_at on conflict.
func (s *PostgresStore) Add(ctx context.Context, id string) error {
	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO authorized_recipients (recipient_id, authorized_at)
		VALUES ($1, now())
		ON CONFLICT (recipient_id) DO UPDATE SET authorized_at = EXCLUDED.authorized_at
	`, id)
	if err != nil {
		return fmt.Errorf("upsert recipient: %w", err)
	}
	return nil
}

// Remove deletes the record for id. Deleting an absent id is not an error.
func (s *PostgresStore) Remove(ctx context.Context, id string) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM authorized_recipients WHERE recipient_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipient: %w", err)
	}
	return nil
}

// Exists reports whether id has an authorization record.
func (s *PostgresStore) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM authorized_recipients WHERE recipient_id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query recipient: %w", err)
	}
	return exists, nil
}

// ListAll returns every authorized recipient id, oldest authorization first.
func (s *PostgresStore) ListAll(ctx context.Context) ([]string, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT recipient_id FROM authorized_recipients ORDER BY authorized_at`)
	if err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan recipient: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipients: %w", err)
	}
	return ids, nil
}

// Close closes the underlying pool.
func (s *PostgresStore) Close() {
	s.db.Close()
}
