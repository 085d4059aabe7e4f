// Package roster reads the guild member export pasted from the game client.
package roster

import (
	"strings"
	"time"

	"albion-guild-dashboard/internal/core/domain"
)

// LastSeenLayout is the game client's timestamp format. Values are UTC.
const LastSeenLayout = "01/02/2006 15:04:05"

// Some exports drop the leading zero from month and day.
var lastSeenLayouts = []string{LastSeenLayout, "1/2/2006 15:04:05"}

func parseLastSeen(s string) (time.Time, bool) {
	for _, layout := range lastSeenLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Parse reads a roster export. The first line is a header. Each following
// line holds quoted name, last seen and roles fields; roles are comma
// separated. Lines without a name are skipped and an unreadable last seen
// is left zero.
func Parse(text string) []domain.RosterEntry {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return nil
	}

	entries := make([]domain.RosterEntry, 0, len(lines)-1)
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Split(line, `","`)
		for i := range fields {
			fields[i] = strings.TrimSpace(strings.ReplaceAll(fields[i], `"`, ""))
		}

		name := fields[0]
		if name == "" {
			continue
		}
		entry := domain.RosterEntry{Name: name}

		if len(fields) > 1 {
			if t, ok := parseLastSeen(fields[1]); ok {
				entry.LastSeen = t
			}
		}
		if len(fields) > 2 && fields[2] != "" {
			for _, role := range strings.Split(fields[2], ",") {
				if role = strings.TrimSpace(role); role != "" {
					entry.Roles = append(entry.Roles, role)
				}
			}
		}

		entries = append(entries, entry)
	}
	return entries
}

// FilterRecent keeps members seen no longer than window before now. Members
// without a readable last seen are dropped.
func FilterRecent(entries []domain.RosterEntry, now time.Time, window time.Duration) []domain.RosterEntry {
	var out []domain.RosterEntry
	for _, e := range entries {
		if e.LastSeen.IsZero() {
			continue
		}
		if now.Sub(e.LastSeen) <= window {
			out = append(out, e)
		}
	}
	return out
}
