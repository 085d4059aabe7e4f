package discord

import (
	"log/slog"

	"albion-guild-dashboard/internal/config"

	"github.com/bwmarrin/discordgo"
)

const presenceIntents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMembers |
	discordgo.IntentsGuildPresences |
	discordgo.IntentsGuildVoiceStates

func NewSession(cfg *config.Config) (*discordgo.Session, error) {
	discord, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		slog.Error("Failed to create discord session", "error", err)
		return nil, err
	}

	discord.Identify.Intents = presenceIntents
	discord.StateEnabled = false

	return discord, nil
}

// NewSessionFactory opens a fresh gateway session per presence lookup.
func NewSessionFactory(cfg *config.Config) SessionFactory {
	return func() (DiscordSession, error) {
		s, err := NewSession(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
