package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		DiscordToken:              strings.Repeat("a", 50),
		DiscordGuildID:            "guild",
		DiscordVoiceKeyword:       "zvz",
		DiscordConnectTimeout:     15 * time.Second,
		HTTPClientTimeout:         10 * time.Second,
		GameInfoBaseURL:           "https://gameinfo.albiononline.com/api/gameinfo",
		MarketBaseURL:             "https://west.albion-online-data.com/api/v2/stats/history",
		AlbionBattlesBaseURL:      "https://api.albionbattles.com",
		FetchRetryAttempts:        3,
		StatsRetryDelay:           time.Second,
		EventFetchConcurrency:     5,
		HealerSupportMinIP:        1400,
		DPSTankMinIP:              1450,
		PriceOutlierBand:          0.35,
		PriceMaxURLLength:         2000,
		RosterRecentWindow:        40 * time.Minute,
		NameMatchThreshold:        0.5,
		ObserverRefreshInterval:   15 * time.Minute,
		ObserverInitialDelay:      200 * time.Millisecond,
		ObserverRequestDelay:      500 * time.Millisecond,
		ParticipationIntervalDays: 28,
		CacheBackend:              CacheMemory,
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("Valid config should not produce error: %v", err)
	}
}

func TestConfig_Validate_Token(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid token", strings.Repeat("a", 50), false},
		{"too short", strings.Repeat("a", 49), true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.DiscordToken = tt.token

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Token validation error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_RetryAndConcurrency(t *testing.T) {
	tests := []struct {
		name        string
		attempts    int
		concurrency int
		wantErr     bool
	}{
		{"minimum valid", 1, 1, false},
		{"zero attempts", 0, 5, true},
		{"too many attempts", 11, 5, true},
		{"zero concurrency", 3, 0, true},
		{"maximum valid", 10, 50, false},
		{"too much concurrency", 3, 51, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.FetchRetryAttempts = tt.attempts
			cfg.EventFetchConcurrency = tt.concurrency

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validation error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_Pricing(t *testing.T) {
	tests := []struct {
		name    string
		band    float64
		urlLen  int
		wantErr bool
	}{
		{"defaults", 0.35, 2000, false},
		{"zero band", 0, 2000, true},
		{"full band", 1, 2000, true},
		{"url too short", 0.35, 100, true},
		{"url too long", 0.35, 10000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.PriceOutlierBand = tt.band
			cfg.PriceMaxURLLength = tt.urlLen

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validation error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_Observer(t *testing.T) {
	tests := []struct {
		name      string
		interval  time.Duration
		threshold float64
		wantErr   bool
	}{
		{"minimum interval", time.Minute, 0.5, false},
		{"below minimum", 59 * time.Second, 0.5, true},
		{"too large", 25 * time.Hour, 0.5, true},
		{"exact match threshold", 15 * time.Minute, 1, false},
		{"zero threshold", 15 * time.Minute, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.ObserverRefreshInterval = tt.interval
			cfg.NameMatchThreshold = tt.threshold

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validation error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_Cache(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		dsn     string
		path    string
		wantErr bool
	}{
		{"memory", CacheMemory, "", "", false},
		{"sqlite with path", CacheSQLite, "", "ids.db", false},
		{"sqlite without path", CacheSQLite, "", "", true},
		{"postgres with dsn", CachePostgres, "postgres://localhost/db", "", false},
		{"postgres without dsn", CachePostgres, "", "", true},
		{"unknown", "redis", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.CacheBackend = tt.backend
			cfg.DatabaseURL = tt.dsn
			cfg.SQLitePath = tt.path

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validation error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_BaseURLs(t *testing.T) {
	cfg := validConfig()
	cfg.MarketBaseURL = "not a url"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for relative market URL")
	}
	assertContains(t, err.Error(), "MARKET_BASE_URL")
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := &Config{
		DiscordToken:            "",
		FetchRetryAttempts:      0,
		EventFetchConcurrency:   0,
		PriceOutlierBand:        2,
		ObserverRefreshInterval: time.Second,
		CacheBackend:            "nope",
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error for invalid config")
	}

	errMsg := err.Error()
	expectedSubstrings := []string{
		"DISCORD_BOT_TOKEN",
		"DISCORD_GUILD_ID",
		"FETCH_RETRY_ATTEMPTS",
		"EVENT_FETCH_CONCURRENCY",
		"HEALER_SUPPORT_MIN_IP",
		"PRICE_OUTLIER_BAND",
		"OBSERVER_REFRESH_INTERVAL",
		"CACHE_BACKEND",
	}

	for _, substr := range expectedSubstrings {
		if !strings.Contains(errMsg, substr) {
			t.Errorf("Error message should contain %q, got: %s", substr, errMsg)
		}
	}
}
