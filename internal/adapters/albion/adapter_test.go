package albion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"albion-guild-dashboard/internal/adapters/albion/api"
	"albion-guild-dashboard/internal/config"
	"albion-guild-dashboard/internal/core/domain"
)

func newTestAdapter(serverURL string) *Adapter {
	cfg := &config.Config{
		AlbionGuildName:    "C A L A N G O S",
		FetchRetryAttempts: 3,
	}
	a := NewAdapter(api.NewTestClient(serverURL), cfg)
	a.eventPolicy.Delay = 0
	a.statsPolicy.Delay = 0
	return a
}

func TestNewAdapter_Policies(t *testing.T) {
	cfg := &config.Config{FetchRetryAttempts: 4, StatsRetryDelay: 1500}
	a := NewAdapter(nil, cfg)

	if a.eventPolicy.Attempts != 4 || !a.eventPolicy.Exponential || a.eventPolicy.Delay != eventRetryDelay {
		t.Errorf("Unexpected event policy %+v", a.eventPolicy)
	}
	if a.statsPolicy.Attempts != 4 || a.statsPolicy.Delay != 1500 || a.statsPolicy.Exponential {
		t.Errorf("Unexpected stats policy %+v", a.statsPolicy)
	}
	if a.searchPolicy.Attempts != 4 || a.searchPolicy.Delay != 0 {
		t.Errorf("Unexpected search policy %+v", a.searchPolicy)
	}
}

func TestAdapter_FetchEvent(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{
			"EventId": 77,
			"TimeStamp": "2024-05-01T19:25:43Z",
			"Killer": {"Name": "Enemy", "Equipment": {}},
			"Victim": {
				"Name": "Friend", "GuildName": "C A L A N G O S", "AverageItemPower": 1420,
				"Equipment": {
					"MainHand": {"Type": "T8_MAIN_SWORD@1", "Count": 1, "Quality": 4},
					"Head": {"Type": "", "Count": 0},
					"Mount": null
				}
			}
		}`))
	}))
	defer server.Close()

	ev, err := newTestAdapter(server.URL).FetchEvent(context.Background(), 77)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("Expected 3 calls, got %d", got)
	}
	if ev.ID != 77 || ev.Victim.Name != "Friend" || ev.Victim.ItemPower != 1420 {
		t.Errorf("Unexpected event %+v", ev)
	}
	if ev.Victim.Equipment.MainHand == nil || ev.Victim.Equipment.MainHand.Quality != 4 {
		t.Errorf("Unexpected main hand %+v", ev.Victim.Equipment.MainHand)
	}
	if ev.Victim.Equipment.Head != nil {
		t.Error("Expected an empty item type to map to an empty slot")
	}
	if len(ev.Killer.Equipment.Slots()) != 0 {
		t.Error("Expected killer without equipment")
	}
}

func TestAdapter_FetchEvent_GivesUp(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestAdapter(server.URL).FetchEvent(context.Background(), 1)
	if err == nil {
		t.Fatal("Expected error")
	}
	if errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected a non not-found error, got %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("Expected 3 calls, got %d", got)
	}
}

func TestAdapter_FetchEvent_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestAdapter(server.URL).FetchEvent(context.Background(), 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("Expected 1 call, got %d", got)
	}
}

func TestAdapter_ResolvePlayer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"players": [
			{"Id": "other", "Name": "Zed", "GuildName": "Someone Else"},
			{"Id": "prefix", "Name": "Zedd", "GuildName": "C A L A N G O S"},
			{"Id": "zed", "Name": "Zed", "GuildName": "c a l a n g o s"}
		]}`))
	}))
	defer server.Close()

	a := newTestAdapter(server.URL)

	tests := []struct {
		name    string
		query   string
		wantID  string
		wantErr error
	}{
		{name: "Guild member", query: "Zed", wantID: "zed"},
		{name: "Case insensitive", query: "ZED", wantID: "zed"},
		{name: "No match", query: "Ghost", wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := a.ResolvePlayer(context.Background(), tt.query)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if ref.ID != tt.wantID {
				t.Errorf("Expected id %s, got %s", tt.wantID, ref.ID)
			}
		})
	}
}

func TestAdapter_FetchPlayerStats(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{
			"Id": "abc", "Name": "Zed", "GuildName": "C A L A N G O S", "KillFame": 100, "DeathFame": 50,
			"LifetimeStatistics": {
				"PvE": {"Total": 1000},
				"Gathering": {"All": {"Total": 300}},
				"Crafting": {"Total": 400},
				"CrystalLeague": 5, "FishingFame": 6, "FarmingFame": 7,
				"Timestamp": "2024-05-01T10:00:00Z"
			}
		}`))
	}))
	defer server.Close()

	stats, err := newTestAdapter(server.URL).FetchPlayerStats(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := domain.PlayerStats{
		ID: "abc", Name: "Zed", GuildName: "C A L A N G O S",
		KillFame: 100, DeathFame: 50, PvEFame: 1000, GatheringFame: 300, CraftingFame: 400,
		CrystalLeague: 5, FishingFame: 6, FarmingFame: 7,
	}
	got := *stats
	got.StatsTimestamp = nil
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
	if stats.StatsTimestamp == nil || stats.StatsTimestamp.Hour() != 10 {
		t.Errorf("Unexpected timestamp %v", stats.StatsTimestamp)
	}
}

func TestAdapter_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestAdapter(server.URL).FetchPlayerStats(ctx, "abc"); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
