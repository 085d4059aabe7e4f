package db

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type PlayerID struct {
	NameKey    string
	PlayerID   string
	PlayerName string
	CreatedAt  pgtype.Timestamptz
}
