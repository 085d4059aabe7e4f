package main

import (
	"context"
	"fmt"
	"log/slog"

	"albion-guild-dashboard/internal/adapters/albion"
	"albion-guild-dashboard/internal/adapters/albion/api"
	"albion-guild-dashboard/internal/adapters/albionbattles"
	"albion-guild-dashboard/internal/adapters/discord"
	"albion-guild-dashboard/internal/adapters/httpapi"
	"albion-guild-dashboard/internal/adapters/market"
	"albion-guild-dashboard/internal/adapters/storage/memory"
	"albion-guild-dashboard/internal/adapters/storage/postgres"
	"albion-guild-dashboard/internal/adapters/storage/sqlite"
	"albion-guild-dashboard/internal/config"
	"albion-guild-dashboard/internal/core/ports"
	"albion-guild-dashboard/internal/core/services/killboard"
	"albion-guild-dashboard/internal/core/services/observer"
	"albion-guild-dashboard/internal/core/services/pricing"
	"albion-guild-dashboard/internal/core/services/roster"
)

type App struct {
	config   *config.Config
	cache    ports.PlayerIDCache
	server   *httpapi.Server
	observer *observer.Service

	observerCtx    context.Context
	observerCancel context.CancelFunc
	serverErrs     chan error
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	cache, err := newCache(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open player id cache", "backend", cfg.CacheBackend, "error", err)
		return nil, err
	}

	gameInfo := albion.NewAdapter(api.NewClient(cfg.GameInfoBaseURL, cfg.HTTPClientTimeout), cfg)
	presence := discord.NewAdapter(discord.NewSessionFactory(cfg), cfg)

	pricingService := pricing.NewService(pricing.Dependencies{
		Config: cfg,
		Prices: market.NewClient(cfg.MarketBaseURL, cfg.HTTPClientTimeout),
	})

	killboardService := killboard.NewService(killboard.Dependencies{
		Config:   cfg,
		GameInfo: gameInfo,
		Pricing:  pricingService,
	})

	rosterService := roster.NewService(roster.Dependencies{
		Battles: albionbattles.NewClient(cfg),
	})

	observerService := observer.NewService(observer.Dependencies{
		Config:   cfg,
		GameInfo: gameInfo,
		Presence: presence,
		Cache:    cache,
	})

	server := httpapi.NewServer(httpapi.Dependencies{
		Config:     cfg,
		GameInfo:   gameInfo,
		Presence:   presence,
		Killboard:  killboardService,
		Attendance: rosterService,
		Observer:   observerService,
	})

	return &App{
		config:     cfg,
		cache:      cache,
		server:     server,
		observer:   observerService,
		serverErrs: make(chan error, 1),
	}, nil
}

func newCache(ctx context.Context, cfg *config.Config) (ports.PlayerIDCache, error) {
	switch cfg.CacheBackend {
	case config.CacheMemory, "":
		return memory.NewStore(), nil
	case config.CacheSQLite:
		store, err := sqlite.NewStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.CachePostgres:
		store, err := postgres.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
}

func (a *App) Run() {
	a.observerCtx, a.observerCancel = context.WithCancel(context.Background())
	go a.observer.Run(a.observerCtx)

	go func() {
		if err := a.server.Start(); err != nil {
			a.serverErrs <- err
		}
	}()

	slog.Info("Guild dashboard is online!", "addr", a.config.HTTPAddr, "cache", a.config.CacheBackend)
}

// Errors reports the HTTP server stopping on its own.
func (a *App) Errors() <-chan error {
	return a.serverErrs
}

func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down...")

	if a.observerCancel != nil {
		a.observerCancel()
	}

	var err error
	if a.server != nil {
		if shutdownErr := a.server.Shutdown(ctx); shutdownErr != nil {
			slog.Error("HTTP server shutdown error", "error", shutdownErr)
			err = shutdownErr
		}
	}

	if a.cache != nil {
		a.cache.Close()
	}

	return err
}
