// Package httpapi serves the dashboard's JSON endpoints and the game API
// proxies.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"albion-guild-dashboard/internal/config"
	"albion-guild-dashboard/internal/core/ports"
	"albion-guild-dashboard/internal/core/services/killboard"
	"albion-guild-dashboard/internal/core/services/observer"
	"albion-guild-dashboard/internal/core/services/roster"
)

type ReportBuilder interface {
	BuildReport(ctx context.Context, req killboard.Request) (*killboard.Report, error)
}

type AttendanceService interface {
	Participation(ctx context.Context, text string) ([]roster.AttendanceRow, error)
}

type Observer interface {
	LoadRoster(ctx context.Context, text string) (*observer.Snapshot, error)
	Refresh(ctx context.Context) error
	Snapshot() observer.Snapshot
}

type Dependencies struct {
	Config     *config.Config
	GameInfo   ports.GameInfo
	Presence   ports.Presence
	Killboard  ReportBuilder
	Attendance AttendanceService
	Observer   Observer
}

type Server struct {
	cfg        *config.Config
	gameInfo   ports.GameInfo
	presence   ports.Presence
	killboard  ReportBuilder
	attendance AttendanceService
	observer   Observer

	httpServer *http.Server
}

func NewServer(deps Dependencies) *Server {
	s := &Server{
		cfg:        deps.Config,
		gameInfo:   deps.GameInfo,
		presence:   deps.Presence,
		killboard:  deps.Killboard,
		attendance: deps.Attendance,
		observer:   deps.Observer,
	}
	s.httpServer = &http.Server{
		Addr:              deps.Config.HTTPAddr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, accessLogMiddleware, metricsMiddleware)

	api := r.PathPrefix("/api").Subrouter()

	// Proxies
	api.HandleFunc("/getEventData", s.handleGetEventData).Methods(http.MethodGet)
	api.HandleFunc("/albion/stats", s.handlePlayerStats).Methods(http.MethodGet)
	api.HandleFunc("/albion/playerIds", s.handlePlayerID).Methods(http.MethodGet)
	api.HandleFunc("/discord/players", s.handleDiscordPlayers).Methods(http.MethodGet)

	// Dashboard
	api.HandleFunc("/killboard/report", s.handleKillboardReport).Methods(http.MethodPost)
	api.HandleFunc("/attendance/participation", s.handleParticipation).Methods(http.MethodPost)
	api.HandleFunc("/observer", s.handleObserverSnapshot).Methods(http.MethodGet)
	api.HandleFunc("/observer/roster", s.handleObserverRoster).Methods(http.MethodPost)
	api.HandleFunc("/observer/refresh", s.handleObserverRefresh).Methods(http.MethodPost)

	r.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) Start() error {
	slog.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	slog.Info("HTTP server closed")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
