package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Validation constants define acceptable bounds for configuration values
const (
	minTokenLength = 50 // Discord bot tokens are 50+ characters

	minRetryAttempts = 1
	maxRetryAttempts = 10

	minConcurrency = 1
	maxConcurrency = 50

	minRefreshInterval = 1 * time.Minute
	maxRefreshInterval = 24 * time.Hour

	minURLLength = 256
	maxURLLength = 8192
)

// Validate checks if the configuration values are valid and within acceptable ranges.
// It returns all validation errors at once using errors.Join.
//
// Validated groups:
//   - Discord: token length, guild id, voice keyword
//   - Upstreams: base URLs parse as absolute URLs
//   - Fetching: retry attempts 1..10, concurrency 1..50, non-negative delays
//   - Rules: positive item power floors
//   - Pricing: outlier band in (0,1), URL length 256..8192
//   - Observer: refresh interval 1m..24h, match threshold in (0,1]
//   - Cache: known backend, DATABASE_URL for postgres, SQLITE_PATH for sqlite
func (c *Config) Validate() error {
	var errs []error

	validators := []func() error{
		c.validateDiscord,
		c.validateUpstreams,
		c.validateFetching,
		c.validateRules,
		c.validatePricing,
		c.validateObserver,
		c.validateCache,
	}

	for _, v := range validators {
		if err := v(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %w", errors.Join(errs...))
	}

	return nil
}

func (c *Config) validateDiscord() error {
	var errs []error

	if c.DiscordToken == "" {
		errs = append(errs, fmt.Errorf("DISCORD_BOT_TOKEN is required but not set"))
	} else if len(c.DiscordToken) < minTokenLength {
		errs = append(errs, fmt.Errorf(
			"DISCORD_BOT_TOKEN appears invalid (too short: %d chars, expected %d+)",
			len(c.DiscordToken), minTokenLength,
		))
	}

	if c.DiscordGuildID == "" {
		errs = append(errs, fmt.Errorf("DISCORD_GUILD_ID is required but not set"))
	}

	if c.DiscordVoiceKeyword == "" {
		errs = append(errs, fmt.Errorf("DISCORD_VOICE_KEYWORD cannot be empty"))
	}

	if c.DiscordConnectTimeout <= 0 {
		errs = append(errs, fmt.Errorf("DISCORD_CONNECT_TIMEOUT must be positive, got %v", c.DiscordConnectTimeout))
	}

	return errors.Join(errs...)
}

func (c *Config) validateUpstreams() error {
	var errs []error

	for name, raw := range map[string]string{
		"GAMEINFO_BASE_URL":      c.GameInfoBaseURL,
		"MARKET_BASE_URL":        c.MarketBaseURL,
		"ALBIONBATTLES_BASE_URL": c.AlbionBattlesBaseURL,
	} {
		if err := validateBaseURL(name, raw); err != nil {
			errs = append(errs, err)
		}
	}

	if c.HTTPClientTimeout <= 0 {
		errs = append(errs, fmt.Errorf("HTTP_CLIENT_TIMEOUT must be positive, got %v", c.HTTPClientTimeout))
	}

	return errors.Join(errs...)
}

func validateBaseURL(fieldName, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", fieldName, raw)
	}
	return nil
}

func (c *Config) validateFetching() error {
	var errs []error

	if c.FetchRetryAttempts < minRetryAttempts || c.FetchRetryAttempts > maxRetryAttempts {
		errs = append(errs, fmt.Errorf(
			"FETCH_RETRY_ATTEMPTS must be between %d and %d, got %d",
			minRetryAttempts, maxRetryAttempts, c.FetchRetryAttempts,
		))
	}

	if c.EventFetchConcurrency < minConcurrency || c.EventFetchConcurrency > maxConcurrency {
		errs = append(errs, fmt.Errorf(
			"EVENT_FETCH_CONCURRENCY must be between %d and %d, got %d (hint: recommended range is 3-10)",
			minConcurrency, maxConcurrency, c.EventFetchConcurrency,
		))
	}

	if c.StatsRetryDelay < 0 {
		errs = append(errs, fmt.Errorf("STATS_RETRY_DELAY cannot be negative, got %v", c.StatsRetryDelay))
	}

	return errors.Join(errs...)
}

func (c *Config) validateRules() error {
	var errs []error

	if c.HealerSupportMinIP <= 0 {
		errs = append(errs, fmt.Errorf("HEALER_SUPPORT_MIN_IP must be positive, got %v", c.HealerSupportMinIP))
	}

	if c.DPSTankMinIP <= 0 {
		errs = append(errs, fmt.Errorf("DPS_TANK_MIN_IP must be positive, got %v", c.DPSTankMinIP))
	}

	return errors.Join(errs...)
}

func (c *Config) validatePricing() error {
	var errs []error

	if c.PriceOutlierBand <= 0 || c.PriceOutlierBand >= 1 {
		errs = append(errs, fmt.Errorf("PRICE_OUTLIER_BAND must be between 0 and 1 (exclusive), got %v", c.PriceOutlierBand))
	}

	if c.PriceMaxURLLength < minURLLength || c.PriceMaxURLLength > maxURLLength {
		errs = append(errs, fmt.Errorf(
			"PRICE_MAX_URL_LENGTH must be between %d and %d, got %d",
			minURLLength, maxURLLength, c.PriceMaxURLLength,
		))
	}

	return errors.Join(errs...)
}

func (c *Config) validateObserver() error {
	var errs []error

	if c.ObserverRefreshInterval < minRefreshInterval || c.ObserverRefreshInterval > maxRefreshInterval {
		errs = append(errs, fmt.Errorf(
			"OBSERVER_REFRESH_INTERVAL must be between %v and %v, got %v",
			minRefreshInterval, maxRefreshInterval, c.ObserverRefreshInterval,
		))
	}

	if c.ObserverInitialDelay < 0 || c.ObserverRequestDelay < 0 {
		errs = append(errs, fmt.Errorf("OBSERVER_INITIAL_DELAY and OBSERVER_REQUEST_DELAY cannot be negative"))
	}

	if c.RosterRecentWindow <= 0 {
		errs = append(errs, fmt.Errorf("ROSTER_RECENT_WINDOW must be positive, got %v", c.RosterRecentWindow))
	}

	if c.NameMatchThreshold <= 0 || c.NameMatchThreshold > 1 {
		errs = append(errs, fmt.Errorf("NAME_MATCH_THRESHOLD must be in (0, 1], got %v", c.NameMatchThreshold))
	}

	if c.ParticipationIntervalDays < 1 {
		errs = append(errs, fmt.Errorf("PARTICIPATION_INTERVAL_DAYS must be at least 1, got %d", c.ParticipationIntervalDays))
	}

	return errors.Join(errs...)
}

func (c *Config) validateCache() error {
	switch c.CacheBackend {
	case CacheMemory:
		return nil
	case CacheSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when CACHE_BACKEND=sqlite")
		}
		return nil
	case CachePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when CACHE_BACKEND=postgres (via secret or env var)")
		}
		return nil
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of %s, %s, %s, got %q", CacheMemory, CacheSQLite, CachePostgres, c.CacheBackend)
	}
}
