package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CacheMemory   = "memory"
	CacheSQLite   = "sqlite"
	CachePostgres = "postgres"
)

type Config struct {
	DiscordToken          string
	DiscordGuildID        string
	DiscordVoiceKeyword   string
	DiscordConnectTimeout time.Duration

	AlbionGuildName string

	HTTPAddr          string
	HTTPClientTimeout time.Duration

	GameInfoBaseURL      string
	MarketBaseURL        string
	AlbionBattlesBaseURL string

	FetchRetryAttempts    int
	StatsRetryDelay       time.Duration
	EventFetchConcurrency int

	AllowBag           bool
	HealerSupportMinIP float64
	DPSTankMinIP       float64

	PriceOutlierBand  float64
	PriceMaxURLLength int

	RosterRecentWindow      time.Duration
	NameMatchThreshold      float64
	ObserverRefreshInterval time.Duration
	ObserverInitialDelay    time.Duration
	ObserverRequestDelay    time.Duration

	ParticipationIntervalDays int
	ParticipationMinGP        int

	CacheBackend string
	DatabaseURL  string
	SQLitePath   string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	token := readSecret("discord_bot_token")
	if token == "" {
		token = os.Getenv("DISCORD_BOT_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("DISCORD_BOT_TOKEN is not set (via secret or env var)")
	}

	guildID := os.Getenv("DISCORD_GUILD_ID")
	if guildID == "" {
		return nil, fmt.Errorf("DISCORD_GUILD_ID is not set")
	}

	dbURL := readSecret("database_url")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}

	cfg := &Config{
		DiscordToken:          token,
		DiscordGuildID:        guildID,
		DiscordVoiceKeyword:   envString("DISCORD_VOICE_KEYWORD", "zvz"),
		DiscordConnectTimeout: envDuration("DISCORD_CONNECT_TIMEOUT", 15*time.Second),

		AlbionGuildName: envString("ALBION_GUILD_NAME", "C A L A N G O S"),

		HTTPAddr:          envString("HTTP_ADDR", ":8080"),
		HTTPClientTimeout: envDuration("HTTP_CLIENT_TIMEOUT", 10*time.Second),

		GameInfoBaseURL:      envString("GAMEINFO_BASE_URL", "https://gameinfo.albiononline.com/api/gameinfo"),
		MarketBaseURL:        envString("MARKET_BASE_URL", "https://west.albion-online-data.com/api/v2/stats/history"),
		AlbionBattlesBaseURL: envString("ALBIONBATTLES_BASE_URL", "https://api.albionbattles.com"),

		FetchRetryAttempts:    envInt("FETCH_RETRY_ATTEMPTS", 3),
		StatsRetryDelay:       envDuration("STATS_RETRY_DELAY", time.Second),
		EventFetchConcurrency: envInt("EVENT_FETCH_CONCURRENCY", 5),

		AllowBag:           envBool("ALLOW_BAG", false),
		HealerSupportMinIP: envFloat("HEALER_SUPPORT_MIN_IP", 1400),
		DPSTankMinIP:       envFloat("DPS_TANK_MIN_IP", 1450),

		PriceOutlierBand:  envFloat("PRICE_OUTLIER_BAND", 0.35),
		PriceMaxURLLength: envInt("PRICE_MAX_URL_LENGTH", 2000),

		RosterRecentWindow:      envDuration("ROSTER_RECENT_WINDOW", 40*time.Minute),
		NameMatchThreshold:      envFloat("NAME_MATCH_THRESHOLD", 0.5),
		ObserverRefreshInterval: envDuration("OBSERVER_REFRESH_INTERVAL", 15*time.Minute),
		ObserverInitialDelay:    envDuration("OBSERVER_INITIAL_DELAY", 200*time.Millisecond),
		ObserverRequestDelay:    envDuration("OBSERVER_REQUEST_DELAY", 500*time.Millisecond),

		ParticipationIntervalDays: envInt("PARTICIPATION_INTERVAL_DAYS", 28),
		ParticipationMinGP:        envInt("PARTICIPATION_MIN_GP", 20),

		CacheBackend: strings.ToLower(envString("CACHE_BACKEND", CacheMemory)),
		DatabaseURL:  dbURL,
		SQLitePath:   envString("SQLITE_PATH", "player_ids.db"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var secretsDir = "/run/secrets/"

func readSecret(name string) string {
	data, err := os.ReadFile(secretsDir + name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
