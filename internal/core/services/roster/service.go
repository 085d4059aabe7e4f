package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"albion-guild-dashboard/internal/core/domain"
	"albion-guild-dashboard/internal/core/ports"
	"albion-guild-dashboard/internal/table"
)

var ErrEmptyRoster = errors.New("roster has no members")

type Dependencies struct {
	Battles ports.ParticipationSource
}

type Service struct {
	battles ports.ParticipationSource
}

func NewService(deps Dependencies) *Service {
	return &Service{battles: deps.Battles}
}

type AttendanceRow struct {
	Name     string   `json:"name"`
	LastSeen string   `json:"lastSeen"`
	Roles    []string `json:"roles"`
	domain.Participation
}

// Participation joins the pasted roster with the guild's recent battle
// record. Members without battles get zeros. Rows are ordered by battle
// count, most active first.
func (s *Service) Participation(ctx context.Context, text string) ([]AttendanceRow, error) {
	entries := Parse(text)
	if len(entries) == 0 {
		return nil, ErrEmptyRoster
	}

	records, err := s.battles.GuildParticipation(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch guild participation: %w", err)
	}

	rows := Merge(entries, records)
	slog.Info("Participation merged", "members", len(entries), "with_battles", len(records))
	return rows, nil
}

func Merge(entries []domain.RosterEntry, records []domain.Participation) []AttendanceRow {
	byName := make(map[string]domain.Participation, len(records))
	for _, r := range records {
		byName[r.Name] = r
	}

	rows := make([]AttendanceRow, 0, len(entries))
	for _, e := range entries {
		p := byName[e.Name]
		p.Name = e.Name

		row := AttendanceRow{Name: e.Name, Roles: e.Roles, Participation: p}
		if !e.LastSeen.IsZero() {
			row.LastSeen = e.LastSeen.Format(LastSeenLayout)
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Battles > rows[j].Battles
	})
	return rows
}

func AttendanceTable(rows []AttendanceRow) *table.Table[AttendanceRow] {
	return table.New([]table.Column[AttendanceRow]{
		{Key: "name", Header: "Character Name", Value: func(r AttendanceRow) any { return r.Name }},
		{Key: "battleNumber", Header: "Battle Number", Value: func(r AttendanceRow) any { return r.Battles }},
		{Key: "totalFame", Header: "Total Fame", Value: func(r AttendanceRow) any { return r.TotalFame }},
		{Key: "totalKills", Header: "Total Kills", Value: func(r AttendanceRow) any { return r.TotalKills }},
		{Key: "totalDeath", Header: "Total Death", Value: func(r AttendanceRow) any { return r.TotalDeaths }},
		{Key: "averageIP", Header: "Average IP", Value: func(r AttendanceRow) any { return r.AverageIP }},
	}, rows)
}
