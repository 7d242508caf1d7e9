package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// IsSeeded reports whether the seed marker with the given key exists.
func (s *SQLiteStore) IsSeeded(ctx context.Context, key string) (bool, error) {
	var applied int64
	err := s.db.QueryRowContext(ctx,
		"SELECT applied_at FROM seed_markers WHERE key = ?", key,
	).Scan(&applied)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check seed marker: %w", err)
	}
	return true, nil
}

// MarkSeeded records the seed marker with the given key.
func (s *SQLiteStore) MarkSeeded(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO seed_markers (key, applied_at) VALUES (?, ?)",
		key, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to record seed marker: %w", err)
	}
	return nil
}
