package db

import (
	"context"
)

const createPlayerIDsTable = `-- name: CreatePlayerIDsTable :exec
CREATE TABLE IF NOT EXISTS player_ids (
    name_key    TEXT PRIMARY KEY,
    player_id   TEXT NOT NULL,
    player_name TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)
`

func (q *Queries) CreatePlayerIDsTable(ctx context.Context) error {
	_, err := q.db.Exec(ctx, createPlayerIDsTable)
	return err
}

const getPlayerID = `-- name: GetPlayerID :one
SELECT player_id, player_name FROM player_ids
WHERE name_key = $1
`

type GetPlayerIDRow struct {
	PlayerID   string
	PlayerName string
}

func (q *Queries) GetPlayerID(ctx context.Context, nameKey string) (GetPlayerIDRow, error) {
	row := q.db.QueryRow(ctx, getPlayerID, nameKey)
	var i GetPlayerIDRow
	err := row.Scan(&i.PlayerID, &i.PlayerName)
	return i, err
}

const savePlayerID = `-- name: SavePlayerID :exec
INSERT INTO player_ids (name_key, player_id, player_name)
VALUES ($1, $2, $3)
ON CONFLICT (name_key) DO UPDATE
SET player_id = EXCLUDED.player_id, player_name = EXCLUDED.player_name
`

type SavePlayerIDParams struct {
	NameKey    string
	PlayerID   string
	PlayerName string
}

func (q *Queries) SavePlayerID(ctx context.Context, arg SavePlayerIDParams) error {
	_, err := q.db.Exec(ctx, savePlayerID, arg.NameKey, arg.PlayerID, arg.PlayerName)
	return err
}
