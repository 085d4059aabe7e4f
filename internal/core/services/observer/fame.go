package observer

import (
	"time"

	"albion-guild-dashboard/internal/adapters/metrics"
	"albion-guild-dashboard/internal/core/domain"
)

const (
	DirectionUp   = "up"
	DirectionNone = "none"
)

const (
	CategoryPvE       = "pve"
	CategoryPvP       = "pvp"
	CategoryGathering = "gathering"
	CategoryCrafting  = "crafting"
	CategoryCrystal   = "crystal"
	CategoryFishing   = "fishing"
	CategoryFarming   = "farming"
)

type FameStat struct {
	Total     int64  `json:"total"`
	Change    int64  `json:"change"`
	Direction string `json:"direction"`
}

func initialStat(total int64) FameStat {
	return FameStat{Total: total, Direction: DirectionNone}
}

// next compares a fresh total against the stored one. Only a strictly larger
// total counts as an increase; anything else keeps the old total.
func (f FameStat) next(total int64) FameStat {
	if total > f.Total {
		return FameStat{Total: total, Change: total - f.Total, Direction: DirectionUp}
	}
	return FameStat{Total: f.Total, Direction: DirectionNone}
}

type ObservedPlayer struct {
	Name            string    `json:"name"`
	ID              string    `json:"id"`
	PvE             FameStat  `json:"pveFame"`
	PvP             FameStat  `json:"pvpFame"`
	Gathering       FameStat  `json:"gatheringFame"`
	Crafting        FameStat  `json:"craftingFame"`
	Crystal         FameStat  `json:"crystalFame"`
	Fishing         FameStat  `json:"fishingFame"`
	Farming         FameStat  `json:"farmingFame"`
	LastSeen        time.Time `json:"lastSeen"`
	LastSeenChanged bool      `json:"lastSeenChanged"`
}

type categoryStat struct {
	name  string
	stat  *FameStat
	total int64
}

func (p *ObservedPlayer) categories(s *domain.PlayerStats) []categoryStat {
	return []categoryStat{
		{CategoryPvE, &p.PvE, s.PvEFame},
		{CategoryPvP, &p.PvP, s.KillFame + s.DeathFame},
		{CategoryGathering, &p.Gathering, s.GatheringFame},
		{CategoryCrafting, &p.Crafting, s.CraftingFame},
		{CategoryCrystal, &p.Crystal, s.CrystalLeague},
		{CategoryFishing, &p.Fishing, s.FishingFame},
		{CategoryFarming, &p.Farming, s.FarmingFame},
	}
}

func newObservedPlayer(ref domain.PlayerRef, stats *domain.PlayerStats, lastSeen time.Time) ObservedPlayer {
	p := ObservedPlayer{Name: ref.Name, ID: ref.ID, LastSeen: lastSeen}
	for _, c := range p.categories(stats) {
		*c.stat = initialStat(c.total)
	}
	if p.LastSeen.IsZero() && stats.StatsTimestamp != nil {
		p.LastSeen = *stats.StatsTimestamp
	}
	return p
}

// update returns p advanced by a fresh stats snapshot.
func (p ObservedPlayer) update(stats *domain.PlayerStats) ObservedPlayer {
	for _, c := range p.categories(stats) {
		*c.stat = c.stat.next(c.total)
		if c.stat.Direction == DirectionUp {
			metrics.FameIncreases.WithLabelValues(c.name).Inc()
		}
	}

	p.LastSeenChanged = false
	if ts := stats.StatsTimestamp; ts != nil {
		p.LastSeenChanged = !ts.Equal(p.LastSeen)
		p.LastSeen = *ts
	}
	return p
}
