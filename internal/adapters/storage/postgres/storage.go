package postgres

import (
	"context"
	"errors"
	"fmt"

	"albion-guild-dashboard/internal/adapters/storage/postgres/db"
	"albion-guild-dashboard/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
	q    *db.Queries
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &PostgresStore{
		pool: pool,
		q:    db.New(pool),
	}
	if err := store.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	if err := s.q.CreatePlayerIDsTable(ctx); err != nil {
		return fmt.Errorf("create player_ids table: %w", err)
	}
	return nil
}

// -- Player ID Cache Methods --

func (s *PostgresStore) GetPlayerRef(ctx context.Context, name string) (*domain.PlayerRef, error) {
	row, err := s.q.GetPlayerID(ctx, domain.PlayerNameKey(name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get player ref: %w", err)
	}

	return &domain.PlayerRef{
		ID:   row.PlayerID,
		Name: row.PlayerName,
	}, nil
}

func (s *PostgresStore) SavePlayerRef(ctx context.Context, ref domain.PlayerRef) error {
	return s.q.SavePlayerID(ctx, db.SavePlayerIDParams{
		NameKey:    domain.PlayerNameKey(ref.Name),
		PlayerID:   ref.ID,
		PlayerName: ref.Name,
	})
}
