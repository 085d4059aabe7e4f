// Package albionbattles reads guild battle participation from albionbattles.com.
package albionbattles

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"albion-guild-dashboard/internal/adapters/upstream"
	"albion-guild-dashboard/internal/config"
	"albion-guild-dashboard/internal/core/domain"
)

const DefaultBaseURL = "https://api.albionbattles.com"

type PlayerParticipation struct {
	Name         string  `json:"name"`
	BattleNumber int     `json:"battleNumber"`
	TotalFame    int64   `json:"totalFame"`
	TotalKills   int     `json:"totalKills"`
	TotalDeath   int     `json:"totalDeath"`
	AverageIP    float64 `json:"averageIP"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string

	guildName    string
	intervalDays int
	minGP        int
}

func NewClient(cfg *config.Config) *Client {
	baseURL := cfg.AlbionBattlesBaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient:   upstream.NewHTTPClient("albionbattles", cfg.HTTPClientTimeout, func(string) string { return "player" }),
		baseURL:      strings.TrimRight(baseURL, "/"),
		guildName:    cfg.AlbionGuildName,
		intervalDays: cfg.ParticipationIntervalDays,
		minGP:        cfg.ParticipationMinGP,
	}
}

// participationURL escapes spaces in the guild name as %20.
func (c *Client) participationURL() string {
	guild := strings.ReplaceAll(url.QueryEscape(c.guildName), "+", "%20")
	return fmt.Sprintf("%s/player?guildSearch=%s&interval=%d&minGP=%d", c.baseURL, guild, c.intervalDays, c.minGP)
}

func (c *Client) GuildParticipation(ctx context.Context) ([]domain.Participation, error) {
	var data []PlayerParticipation
	if err := upstream.GetJSON(ctx, c.httpClient, c.participationURL(), &data); err != nil {
		return nil, fmt.Errorf("fetch participation for %s: %w", c.guildName, err)
	}

	out := make([]domain.Participation, 0, len(data))
	for _, p := range data {
		out = append(out, domain.Participation{
			Name:        p.Name,
			Battles:     p.BattleNumber,
			TotalFame:   p.TotalFame,
			TotalKills:  p.TotalKills,
			TotalDeaths: p.TotalDeath,
			AverageIP:   p.AverageIP,
		})
	}
	return out, nil
}
