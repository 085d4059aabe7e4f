package observer

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"golang.org/x/text/cases"

	"albion-guild-dashboard/internal/core/domain"
)

var nameMetric = &metrics.SorensenDice{CaseSensitive: true, NgramSize: 2}

// Similarity is the Dice coefficient over character bigrams of the two names,
// ignoring case and whitespace. Guild tags around a nickname still score above
// one half.
func Similarity(a, b string) float64 {
	return strutil.Similarity(normalizeName(a), normalizeName(b), nameMetric)
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(cases.Fold().String(s)), "")
}

// Unmatched returns the roster entries that have no voice member whose
// display name scores above threshold.
func Unmatched(entries []domain.RosterEntry, members []domain.DiscordMember, threshold float64) []domain.RosterEntry {
	var out []domain.RosterEntry
	for _, e := range entries {
		present := false
		for _, m := range members {
			if Similarity(m.DisplayName(), e.Name) > threshold {
				present = true
				break
			}
		}
		if !present {
			out = append(out, e)
		}
	}
	return out
}
