// Package sqlite persists resolved player ids in a local database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"albion-guild-dashboard/internal/core/domain"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS player_ids (
	name_key    TEXT PRIMARY KEY,
	player_id   TEXT NOT NULL,
	player_name TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

type Store struct {
	db *sql.DB
}

func NewStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() {
	if err := s.db.Close(); err != nil {
		slog.Error("Failed to close sqlite database", "error", err)
	}
}

func (s *Store) GetPlayerRef(ctx context.Context, name string) (*domain.PlayerRef, error) {
	var ref domain.PlayerRef
	err := s.db.QueryRowContext(ctx,
		`SELECT player_id, player_name FROM player_ids WHERE name_key = ?`,
		domain.PlayerNameKey(name),
	).Scan(&ref.ID, &ref.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get player ref: %w", err)
	}
	return &ref, nil
}

func (s *Store) SavePlayerRef(ctx context.Context, ref domain.PlayerRef) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO player_ids (name_key, player_id, player_name) VALUES (?, ?, ?)
		 ON CONFLICT (name_key) DO UPDATE SET player_id = excluded.player_id, player_name = excluded.player_name`,
		domain.PlayerNameKey(ref.Name), ref.ID, ref.Name,
	)
	if err != nil {
		return fmt.Errorf("save player ref: %w", err)
	}
	return nil
}
