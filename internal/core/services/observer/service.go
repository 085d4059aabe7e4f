// Package observer keeps an eye on guild members who are online in game but
// missing from the voice channel, and reports which fame they are gaining.
package observer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"albion-guild-dashboard/internal/adapters/metrics"
	"albion-guild-dashboard/internal/config"
	"albion-guild-dashboard/internal/core/domain"
	"albion-guild-dashboard/internal/core/ports"
	"albion-guild-dashboard/internal/core/services/roster"
)

type Dependencies struct {
	Config   *config.Config
	GameInfo ports.GameInfo
	Presence ports.Presence
	Cache    ports.PlayerIDCache
}

type Service struct {
	gameInfo ports.GameInfo
	presence ports.Presence
	cache    ports.PlayerIDCache

	recentWindow    time.Duration
	threshold       float64
	refreshInterval time.Duration
	initialDelay    time.Duration
	requestDelay    time.Duration

	now func() time.Time

	// op serializes roster loads and refreshes.
	op sync.Mutex

	mu          sync.RWMutex
	players     []ObservedPlayer
	recent      int
	nextRefresh time.Time

	wake chan struct{}
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	return &Service{
		gameInfo:        deps.GameInfo,
		presence:        deps.Presence,
		cache:           deps.Cache,
		recentWindow:    cfg.RosterRecentWindow,
		threshold:       cfg.NameMatchThreshold,
		refreshInterval: cfg.ObserverRefreshInterval,
		initialDelay:    cfg.ObserverInitialDelay,
		requestDelay:    cfg.ObserverRequestDelay,
		now:             time.Now,
		wake:            make(chan struct{}, 1),
	}
}

type Snapshot struct {
	Players     []ObservedPlayer `json:"players"`
	Recent      int              `json:"recent"`
	NextRefresh *time.Time       `json:"nextRefresh,omitempty"`
	Countdown   string           `json:"countdown"`
}

// LoadRoster replaces the observed players with the recently seen roster
// members who are not in voice, and records their current fame totals.
func (s *Service) LoadRoster(ctx context.Context, text string) (*Snapshot, error) {
	s.op.Lock()
	defer s.op.Unlock()

	entries := roster.Parse(text)
	if len(entries) == 0 {
		return nil, roster.ErrEmptyRoster
	}
	recent := roster.FilterRecent(entries, s.now().UTC(), s.recentWindow)

	members, err := s.presence.VoiceMembers(ctx)
	if err != nil {
		// Without presence everyone recent is treated as absent.
		slog.Warn("Failed to fetch voice members", "error", err)
	}

	absent := Unmatched(recent, members, s.threshold)
	slog.Info("Roster loaded", "members", len(entries), "recent", len(recent), "in_voice", len(members), "observed", len(absent))

	type candidate struct {
		ref      domain.PlayerRef
		lastSeen time.Time
	}
	var candidates []candidate
	for _, e := range absent {
		ref, err := s.resolve(ctx, e.Name)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Warn("Failed to resolve player", "name", e.Name, "error", err)
			continue
		}
		candidates = append(candidates, candidate{ref: *ref, lastSeen: e.LastSeen})
	}

	players := make([]ObservedPlayer, 0, len(candidates))
	for _, c := range candidates {
		if err := sleep(ctx, s.initialDelay); err != nil {
			return nil, err
		}
		stats, err := s.gameInfo.FetchPlayerStats(ctx, c.ref.ID)
		if err != nil {
			slog.Warn("Failed to fetch player stats", "name", c.ref.Name, "player_id", c.ref.ID, "error", err)
			continue
		}
		players = append(players, newObservedPlayer(c.ref, stats, c.lastSeen))
	}

	s.mu.Lock()
	s.players = players
	s.recent = len(recent)
	s.nextRefresh = s.now().Add(s.refreshInterval)
	s.mu.Unlock()
	s.notify()

	snap := s.Snapshot()
	return &snap, nil
}

// resolve looks a player up in the id cache first and only asks the game
// search on a miss. Successful lookups are cached.
func (s *Service) resolve(ctx context.Context, name string) (*domain.PlayerRef, error) {
	ref, err := s.cache.GetPlayerRef(ctx, name)
	if err != nil {
		slog.Warn("Player id cache read failed", "name", name, "error", err)
	}
	if ref != nil {
		metrics.PlayerIDCacheLookups.WithLabelValues("hit").Inc()
		return ref, nil
	}
	metrics.PlayerIDCacheLookups.WithLabelValues("miss").Inc()

	ref, err = s.gameInfo.ResolvePlayer(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", name, err)
	}
	if err := s.cache.SavePlayerRef(ctx, *ref); err != nil {
		slog.Warn("Failed to cache player id", "name", ref.Name, "error", err)
	}
	return ref, nil
}

// Refresh fetches fresh stats for every observed player, one at a time.
// A player whose stats cannot be fetched is left as it was.
func (s *Service) Refresh(ctx context.Context) error {
	s.op.Lock()
	defer s.op.Unlock()

	s.mu.RLock()
	current := append([]ObservedPlayer(nil), s.players...)
	s.mu.RUnlock()

	updated := make([]ObservedPlayer, len(current))
	failed := 0
	for i, p := range current {
		if err := sleep(ctx, s.requestDelay); err != nil {
			metrics.ObserverRefreshes.WithLabelValues("cancelled").Inc()
			return err
		}
		stats, err := s.gameInfo.FetchPlayerStats(ctx, p.ID)
		if err != nil {
			slog.Warn("Failed to update player stats", "name", p.Name, "player_id", p.ID, "error", err)
			updated[i] = p
			failed++
			continue
		}
		updated[i] = p.update(stats)
	}

	s.mu.Lock()
	s.players = updated
	s.nextRefresh = s.now().Add(s.refreshInterval)
	s.mu.Unlock()
	s.notify()

	status := "ok"
	if failed > 0 {
		status = "partial"
	}
	metrics.ObserverRefreshes.WithLabelValues(status).Inc()
	slog.Info("Observed players refreshed", "players", len(updated), "failed", failed)
	return nil
}

// Run refreshes whenever the scheduled time comes up until ctx is done.
func (s *Service) Run(ctx context.Context) {
	slog.Info("Observer loop started", "interval", s.refreshInterval)
	for {
		s.mu.RLock()
		next := s.nextRefresh
		s.mu.RUnlock()

		var (
			timer *time.Timer
			fire  <-chan time.Time
		)
		if !next.IsZero() {
			timer = time.NewTimer(next.Sub(s.now()))
			fire = timer.C
		}

		select {
		case <-ctx.Done():
			stopTimer(timer)
			slog.Info("Observer loop stopped")
			return
		case <-s.wake:
			stopTimer(timer)
		case <-fire:
			if err := s.Refresh(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("Observer refresh failed", "error", err)
			}
		}
	}
}

func (s *Service) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Countdown renders the time left until the next refresh as m:ss.
func (s *Service) Countdown(now time.Time) string {
	s.mu.RLock()
	next := s.nextRefresh
	s.mu.RUnlock()
	return countdown(next, now)
}

func countdown(next, now time.Time) string {
	if next.IsZero() {
		return "calculating..."
	}
	if !next.After(now) {
		return "0:00"
	}
	secs := int(next.Sub(now) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Players:   append([]ObservedPlayer{}, s.players...),
		Recent:    s.recent,
		Countdown: countdown(s.nextRefresh, s.now()),
	}
	if !s.nextRefresh.IsZero() {
		next := s.nextRefresh
		snap.NextRefresh = &next
	}
	return snap
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func stopTimer(t *time.Timer) {
	if t != nil {
		t.Stop()
	}
}
