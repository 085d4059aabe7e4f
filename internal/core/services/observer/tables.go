package observer

import (
	"strconv"

	"albion-guild-dashboard/internal/table"
)

func fameColumn(key, header string, stat func(ObservedPlayer) FameStat) table.Column[ObservedPlayer] {
	return table.Column[ObservedPlayer]{
		Key:    key,
		Header: header,
		Value:  func(p ObservedPlayer) any { return stat(p).Change },
		Format: func(p ObservedPlayer) string {
			s := stat(p)
			if s.Direction == DirectionUp {
				return strconv.FormatInt(s.Total, 10) + " (+" + strconv.FormatInt(s.Change, 10) + ")"
			}
			return strconv.FormatInt(s.Total, 10)
		},
	}
}

// PlayerTable sorts fame columns by the latest gain.
func PlayerTable(players []ObservedPlayer) *table.Table[ObservedPlayer] {
	return table.New([]table.Column[ObservedPlayer]{
		{Key: "name", Header: "Player Name", Value: func(p ObservedPlayer) any { return p.Name }},
		fameColumn(CategoryPvE, "PvE Fame", func(p ObservedPlayer) FameStat { return p.PvE }),
		fameColumn(CategoryPvP, "PvP Fame", func(p ObservedPlayer) FameStat { return p.PvP }),
		fameColumn(CategoryGathering, "Gathering Fame", func(p ObservedPlayer) FameStat { return p.Gathering }),
		fameColumn(CategoryCrafting, "Crafting Fame", func(p ObservedPlayer) FameStat { return p.Crafting }),
		fameColumn(CategoryCrystal, "Crystal League", func(p ObservedPlayer) FameStat { return p.Crystal }),
		fameColumn(CategoryFishing, "Fishing Fame", func(p ObservedPlayer) FameStat { return p.Fishing }),
		fameColumn(CategoryFarming, "Farming Fame", func(p ObservedPlayer) FameStat { return p.Farming }),
		{Key: "lastSeen", Header: "Last Seen", Value: func(p ObservedPlayer) any { return p.LastSeen }},
		{Key: "lastSeenChanged", Header: "Seen Since", Value: func(p ObservedPlayer) any { return p.LastSeenChanged }},
	}, players)
}
