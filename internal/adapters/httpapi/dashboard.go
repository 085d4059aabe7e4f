package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"albion-guild-dashboard/internal/core/services/eligibility"
	"albion-guild-dashboard/internal/core/services/killboard"
	"albion-guild-dashboard/internal/core/services/observer"
	"albion-guild-dashboard/internal/core/services/pricing"
	"albion-guild-dashboard/internal/core/services/roster"
)

type reportRequest struct {
	Text            string             `json:"text"`
	AllowBag        *bool              `json:"allowBag"`
	HealerSupportIP *float64           `json:"healerSupportIP"`
	DPSTankIP       *float64           `json:"dpsTankIP"`
	Exceptions      []int64            `json:"exceptions"`
	PriceOverrides  map[string]float64 `json:"priceOverrides"`
}

// rules starts from the configured floors and applies what the request sets.
func (s *Server) rules(req reportRequest) eligibility.Rules {
	rules := eligibility.Rules{
		AllowBag:           s.cfg.AllowBag,
		HealerSupportMinIP: s.cfg.HealerSupportMinIP,
		DPSTankMinIP:       s.cfg.DPSTankMinIP,
	}
	if req.AllowBag != nil {
		rules.AllowBag = *req.AllowBag
	}
	if req.HealerSupportIP != nil && *req.HealerSupportIP > 0 {
		rules.HealerSupportMinIP = *req.HealerSupportIP
	}
	if req.DPSTankIP != nil && *req.DPSTankIP > 0 {
		rules.DPSTankMinIP = *req.DPSTankIP
	}
	return rules
}

func (s *Server) handleKillboardReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	exceptions := make(eligibility.Exceptions, len(req.Exceptions))
	for _, id := range req.Exceptions {
		exceptions[id] = true
	}

	report, err := s.killboard.BuildReport(r.Context(), killboard.Request{
		Text:       req.Text,
		Rules:      s.rules(req),
		Exceptions: exceptions,
		Overrides:  pricing.NormalizeOverrides(req.PriceOverrides),
	})
	switch {
	case errors.Is(err, killboard.ErrNoEventLinks):
		writeError(w, http.StatusBadRequest, "No killboard links found")
		return
	case errors.Is(err, context.Canceled):
		return
	case err != nil:
		slog.Error("Failed to build killboard report", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}

	// Without a sort column rows keep the non-compliant-first order.
	opts := parseTableOptions(r)
	switch r.URL.Query().Get("table") {
	case "", "events":
		t := killboard.EventTable(report.Rows)
		if !applySort(w, t, opts) {
			return
		}
		if opts.csv {
			writeCSV(w, t, "killboard.csv")
			return
		}
		report.Rows = t.Rows
	case "items":
		t := killboard.ItemTable(report.Items)
		if !applySort(w, t, opts) {
			return
		}
		if opts.csv {
			writeCSV(w, t, "killboard-items.csv")
			return
		}
		report.Items = t.Rows
	default:
		writeError(w, http.StatusBadRequest, "Unknown table")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type rosterRequest struct {
	Text string `json:"text"`
}

func (s *Server) readRoster(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req rosterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return "", false
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Roster text is required")
		return "", false
	}
	return req.Text, true
}

func (s *Server) handleParticipation(w http.ResponseWriter, r *http.Request) {
	text, ok := s.readRoster(w, r)
	if !ok {
		return
	}

	rows, err := s.attendance.Participation(r.Context(), text)
	switch {
	case errors.Is(err, roster.ErrEmptyRoster):
		writeError(w, http.StatusBadRequest, "Roster has no members")
		return
	case err != nil:
		slog.Error("Failed to fetch participation", "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching player participation")
		return
	}

	opts := parseTableOptions(r)
	t := roster.AttendanceTable(rows)
	if !applySort(w, t, opts) {
		return
	}
	if opts.csv {
		writeCSV(w, t, "attendance.csv")
		return
	}
	writeJSON(w, http.StatusOK, t.Rows)
}

func (s *Server) handleObserverRoster(w http.ResponseWriter, r *http.Request) {
	text, ok := s.readRoster(w, r)
	if !ok {
		return
	}

	snap, err := s.observer.LoadRoster(r.Context(), text)
	switch {
	case errors.Is(err, roster.ErrEmptyRoster):
		writeError(w, http.StatusBadRequest, "Roster has no members")
		return
	case err != nil:
		slog.Error("Failed to load observer roster", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load roster")
		return
	}

	s.writeSnapshot(w, r, *snap)
}

func (s *Server) handleObserverSnapshot(w http.ResponseWriter, r *http.Request) {
	s.writeSnapshot(w, r, s.observer.Snapshot())
}

func (s *Server) handleObserverRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.observer.Refresh(r.Context()); err != nil {
		slog.Error("Failed to refresh observed players", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to refresh players")
		return
	}
	s.writeSnapshot(w, r, s.observer.Snapshot())
}

func (s *Server) writeSnapshot(w http.ResponseWriter, r *http.Request, snap observer.Snapshot) {
	opts := parseTableOptions(r)
	t := observer.PlayerTable(snap.Players)
	if !applySort(w, t, opts) {
		return
	}
	if opts.csv {
		writeCSV(w, t, "observer.csv")
		return
	}
	snap.Players = t.Rows
	writeJSON(w, http.StatusOK, snap)
}
