// Package albion adapts the public game-info API to the dashboard's ports.
package albion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/cases"

	"albion-guild-dashboard/internal/adapters/albion/api"
	"albion-guild-dashboard/internal/config"
	"albion-guild-dashboard/internal/core/domain"
	"albion-guild-dashboard/internal/retry"
)

const (
	eventRetryDelay    = 250 * time.Millisecond
	eventRetryMaxDelay = 2 * time.Second
)

type Adapter struct {
	client    *api.Client
	guildName string

	eventPolicy  retry.Policy
	searchPolicy retry.Policy
	statsPolicy  retry.Policy
}

func NewAdapter(client *api.Client, cfg *config.Config) *Adapter {
	return &Adapter{
		client:    client,
		guildName: cfg.AlbionGuildName,
		eventPolicy: retry.Policy{
			Attempts:    cfg.FetchRetryAttempts,
			Delay:       eventRetryDelay,
			Exponential: true,
			MaxDelay:    eventRetryMaxDelay,
		},
		searchPolicy: retry.Policy{Attempts: cfg.FetchRetryAttempts},
		statsPolicy: retry.Policy{
			Attempts: cfg.FetchRetryAttempts,
			Delay:    cfg.StatsRetryDelay,
		},
	}
}

func (a *Adapter) FetchEvent(ctx context.Context, eventID int64) (*domain.KillEvent, error) {
	var ev *api.EventResponse
	err := retry.Do(ctx, a.eventPolicy, "fetch event", func(ctx context.Context) error {
		var err error
		ev, err = a.client.GetEvent(ctx, eventID)
		return classify(err)
	})
	if err != nil {
		return nil, err
	}
	return mapEvent(ev), nil
}

// ResolvePlayer finds the guild member whose name matches exactly, ignoring
// case. Players of other guilds with the same name are not returned.
func (a *Adapter) ResolvePlayer(ctx context.Context, name string) (*domain.PlayerRef, error) {
	var res *api.SearchResponse
	err := retry.Do(ctx, a.searchPolicy, "search player", func(ctx context.Context) error {
		var err error
		res, err = a.client.SearchPlayers(ctx, name)
		return classify(err)
	})
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	wantName := fold.String(name)
	wantGuild := fold.String(a.guildName)
	for _, p := range res.Players {
		if fold.String(p.Name) == wantName && fold.String(p.GuildName) == wantGuild {
			return &domain.PlayerRef{ID: p.ID, Name: p.Name}, nil
		}
	}
	return nil, fmt.Errorf("player %s in guild %s: %w", name, a.guildName, domain.ErrNotFound)
}

func (a *Adapter) FetchPlayerStats(ctx context.Context, playerID string) (*domain.PlayerStats, error) {
	var p *api.PlayerResponse
	err := retry.Do(ctx, a.statsPolicy, "fetch player stats", func(ctx context.Context) error {
		var err error
		p, err = a.client.GetPlayer(ctx, playerID)
		return classify(err)
	})
	if err != nil {
		return nil, err
	}
	return mapPlayerStats(p), nil
}

// classify stops retrying lookups of things that do not exist.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, api.ErrNotFound) {
		return retry.Permanent(fmt.Errorf("%w: %w", domain.ErrNotFound, err))
	}
	return err
}
