package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"albion-guild-dashboard/internal/core/domain"
)

func (s *Server) handleGetEventData(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("id"))
	if raw == "" {
		writeError(w, http.StatusBadRequest, "ID is required")
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	ev, err := s.gameInfo.FetchEvent(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("Failed to fetch event", "event_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch data")
		return
	}

	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	playerID := strings.TrimSpace(r.URL.Query().Get("playerId"))
	if playerID == "" {
		writeError(w, http.StatusBadRequest, "Player ID is required")
		return
	}

	stats, err := s.gameInfo.FetchPlayerStats(r.Context(), playerID)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Player stats not found")
		return
	}
	if err != nil {
		slog.Error("Failed to fetch player stats", "player_id", playerID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handlePlayerID(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	ref, err := s.gameInfo.ResolvePlayer(r.Context(), name)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Player not found")
		return
	}
	if err != nil {
		slog.Error("Failed to fetch player ID", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch player ID")
		return
	}

	writeJSON(w, http.StatusOK, ref)
}

func (s *Server) handleDiscordPlayers(w http.ResponseWriter, r *http.Request) {
	members, err := s.presence.VoiceMembers(r.Context())
	if err != nil {
		slog.Error("Failed to fetch discord players", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch players")
		return
	}
	if members == nil {
		members = []domain.DiscordMember{}
	}
	writeJSON(w, http.StatusOK, members)
}
