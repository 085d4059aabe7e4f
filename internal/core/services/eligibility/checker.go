// Package eligibility decides whether a death qualifies for a regear.
package eligibility

import (
	"fmt"
	"sort"

	"albion-guild-dashboard/internal/adapters/metrics"
	"albion-guild-dashboard/internal/core/domain"
)

const (
	ReasonBag         = "Bag"
	ReasonMountWeight = "Mount weight"
)

type Rules struct {
	AllowBag           bool    `json:"allowBag"`
	HealerSupportMinIP float64 `json:"healerSupportIP"`
	DPSTankMinIP       float64 `json:"dpsTankIP"`
}

func DefaultRules() Rules {
	return Rules{
		AllowBag:           false,
		HealerSupportMinIP: 1400,
		DPSTankMinIP:       1450,
	}
}

// Exceptions holds the events an officer manually approved. Missing ids are
// not excepted.
type Exceptions map[int64]bool

func (e Exceptions) Has(eventID int64) bool {
	return e[eventID]
}

type Verdict struct {
	Compliant bool   `json:"compliant"`
	Reason    string `json:"reason"`
}

func pass() Verdict {
	return Verdict{Compliant: true}
}

func fail(reason string) Verdict {
	return Verdict{Compliant: false, Reason: reason}
}

// Check evaluates the victim of ev. The first matching rule wins.
func Check(ev domain.KillEvent, rules Rules, exceptions Exceptions) Verdict {
	if exceptions.Has(ev.ID) {
		return pass()
	}

	victim := ev.Victim
	eq := victim.Equipment

	mainHand := ""
	if eq.MainHand != nil {
		mainHand = eq.MainHand.Type
	}

	if !rules.AllowBag && !domain.IsTank(mainHand) && eq.Bag != nil {
		return fail(ReasonBag)
	}

	if eq.Mount != nil && domain.IsHeavyMount(eq.Mount.Type) {
		return fail(ReasonMountWeight)
	}

	if eq.MainHand != nil {
		if domain.IsHealerOrSupport(mainHand) {
			if victim.ItemPower < rules.HealerSupportMinIP {
				return fail(HealerSupportReason(rules.HealerSupportMinIP))
			}
		} else if victim.ItemPower < rules.DPSTankMinIP {
			return fail(DPSTankReason(rules.DPSTankMinIP))
		}
	}

	return pass()
}

func HealerSupportReason(floor float64) string {
	return fmt.Sprintf("IP | H/S %g+", floor)
}

func DPSTankReason(floor float64) string {
	return fmt.Sprintf("IP | D/T %g+", floor)
}

type Classified struct {
	Event    domain.KillEvent
	Verdict  Verdict
	Excepted bool
}

// Classify checks every event and orders the result with non-compliant
// entries first, keeping the input order otherwise.
func Classify(events []domain.KillEvent, rules Rules, exceptions Exceptions) []Classified {
	out := make([]Classified, len(events))
	for i, ev := range events {
		v := Check(ev, rules, exceptions)
		out[i] = Classified{Event: ev, Verdict: v, Excepted: exceptions.Has(ev.ID)}
		metrics.EligibilityVerdicts.WithLabelValues(verdictLabel(v)).Inc()
	}

	SortNonCompliantFirst(out)
	return out
}

func SortNonCompliantFirst(entries []Classified) {
	sort.SliceStable(entries, func(i, j int) bool {
		return !entries[i].Verdict.Compliant && entries[j].Verdict.Compliant
	})
}

func verdictLabel(v Verdict) string {
	if v.Compliant {
		return "compliant"
	}
	return "non_compliant"
}
