package discord

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"albion-guild-dashboard/internal/adapters/metrics"
	"albion-guild-dashboard/internal/config"
	"albion-guild-dashboard/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

type DiscordSession interface {
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
}

type SessionFactory func() (DiscordSession, error)

// Adapter reads who is sitting in the guild's keyword voice channels. Every
// lookup connects, waits for the guild snapshot and disconnects.
type Adapter struct {
	newSession SessionFactory
	guildID    string
	keyword    string
	timeout    time.Duration
}

func NewAdapter(newSession SessionFactory, cfg *config.Config) *Adapter {
	return &Adapter{
		newSession: newSession,
		guildID:    cfg.DiscordGuildID,
		keyword:    strings.ToLower(cfg.DiscordVoiceKeyword),
		timeout:    cfg.DiscordConnectTimeout,
	}
}

func (a *Adapter) VoiceMembers(ctx context.Context) ([]domain.DiscordMember, error) {
	members, err := a.voiceMembers(ctx)
	if err != nil {
		metrics.DiscordPresenceFetches.WithLabelValues("failure").Inc()
		return nil, err
	}
	metrics.DiscordPresenceFetches.WithLabelValues("success").Inc()
	return members, nil
}

func (a *Adapter) voiceMembers(ctx context.Context) ([]domain.DiscordMember, error) {
	session, err := a.newSession()
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	guilds := make(chan *discordgo.Guild, 1)
	remove := session.AddHandler(func(_ *discordgo.Session, gc *discordgo.GuildCreate) {
		if gc.Guild == nil || gc.ID != a.guildID {
			return
		}
		select {
		case guilds <- gc.Guild:
		default:
		}
	})
	defer remove()

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("open discord session: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			slog.Warn("Failed to close discord session", "error", err)
		}
	}()

	timer := time.NewTimer(a.timeout)
	defer timer.Stop()

	var guild *discordgo.Guild
	select {
	case guild = <-guilds:
	case <-timer.C:
		return nil, fmt.Errorf("guild %s not received within %s", a.guildID, a.timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if guild.Unavailable {
		return nil, fmt.Errorf("guild %s is unavailable", a.guildID)
	}

	return a.collect(session, guild), nil
}

func (a *Adapter) collect(session DiscordSession, guild *discordgo.Guild) []domain.DiscordMember {
	channels := make(map[string]bool)
	for _, ch := range guild.Channels {
		if isVoice(ch.Type) && strings.Contains(strings.ToLower(ch.Name), a.keyword) {
			channels[ch.ID] = true
		}
	}

	roles := make(map[string]string, len(guild.Roles))
	for _, r := range guild.Roles {
		roles[r.ID] = r.Name
	}

	known := make(map[string]*discordgo.Member, len(guild.Members))
	for _, m := range guild.Members {
		if m.User != nil {
			known[m.User.ID] = m
		}
	}

	seen := make(map[string]bool)
	var out []domain.DiscordMember
	for _, vs := range guild.VoiceStates {
		if !channels[vs.ChannelID] || seen[vs.UserID] {
			continue
		}
		seen[vs.UserID] = true

		m := known[vs.UserID]
		if m == nil {
			m = vs.Member
		}
		if m == nil || m.User == nil {
			fetched, err := session.GuildMember(a.guildID, vs.UserID)
			if err != nil || fetched.User == nil {
				slog.Warn("Failed to fetch voice member", "user_id", vs.UserID, "error", err)
				continue
			}
			m = fetched
		}

		out = append(out, toMember(m, roles))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayName() < out[j].DisplayName()
	})
	return out
}

func isVoice(t discordgo.ChannelType) bool {
	return t == discordgo.ChannelTypeGuildVoice || t == discordgo.ChannelTypeGuildStageVoice
}

// toMember maps a member sitting in voice; being in voice counts as online.
func toMember(m *discordgo.Member, roles map[string]string) domain.DiscordMember {
	nickname := m.Nick
	if nickname == "" {
		nickname = m.User.Username
	}

	names := make([]string, 0, len(m.Roles))
	for _, id := range m.Roles {
		if name, ok := roles[id]; ok {
			names = append(names, name)
		}
	}

	return domain.DiscordMember{
		ID:            m.User.ID,
		Username:      m.User.Username,
		Discriminator: m.User.Discriminator,
		Avatar:        m.User.Avatar,
		Online:        true,
		Nickname:      nickname,
		Roles:         names,
	}
}
