package ports

import (
	"context"

	"albion-guild-dashboard/internal/core/domain"
)

type GameInfo interface {
	FetchEvent(ctx context.Context, eventID int64) (*domain.KillEvent, error)
	ResolvePlayer(ctx context.Context, name string) (*domain.PlayerRef, error)
	FetchPlayerStats(ctx context.Context, playerID string) (*domain.PlayerStats, error)
}

type PriceSource interface {
	FetchPriceHistory(ctx context.Context, itemIDs []string) ([]domain.PriceSeries, error)
	RequestURLLength(itemIDs []string) int
}

type Presence interface {
	VoiceMembers(ctx context.Context) ([]domain.DiscordMember, error)
}

type ParticipationSource interface {
	GuildParticipation(ctx context.Context) ([]domain.Participation, error)
}

// PlayerIDCache maps player names to resolved game ids. Entries never expire.
type PlayerIDCache interface {
	GetPlayerRef(ctx context.Context, name string) (*domain.PlayerRef, error)
	SavePlayerRef(ctx context.Context, ref domain.PlayerRef) error
	Close()
}
