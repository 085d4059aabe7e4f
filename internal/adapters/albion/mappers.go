package albion

import (
	"albion-guild-dashboard/internal/adapters/albion/api"
	"albion-guild-dashboard/internal/core/domain"
)

func mapItem(it *api.Item) *domain.Item {
	if it == nil || it.Type == "" {
		return nil
	}
	return &domain.Item{Type: it.Type, Count: it.Count, Quality: it.Quality}
}

func mapEquipment(eq api.Equipment) domain.Equipment {
	return domain.Equipment{
		MainHand: mapItem(eq.MainHand),
		OffHand:  mapItem(eq.OffHand),
		Head:     mapItem(eq.Head),
		Armor:    mapItem(eq.Armor),
		Shoes:    mapItem(eq.Shoes),
		Bag:      mapItem(eq.Bag),
		Cape:     mapItem(eq.Cape),
		Mount:    mapItem(eq.Mount),
		Potion:   mapItem(eq.Potion),
		Food:     mapItem(eq.Food),
	}
}

func mapSnapshot(p api.EventPlayer) domain.PlayerSnapshot {
	return domain.PlayerSnapshot{
		ID:           p.ID,
		Name:         p.Name,
		GuildName:    p.GuildName,
		AllianceName: p.AllianceName,
		ItemPower:    p.AverageItemPower,
		Equipment:    mapEquipment(p.Equipment),
	}
}

func mapEvent(ev *api.EventResponse) *domain.KillEvent {
	return &domain.KillEvent{
		ID:     ev.EventID,
		Time:   ev.TimeStamp,
		Killer: mapSnapshot(ev.Killer),
		Victim: mapSnapshot(ev.Victim),
	}
}

func mapPlayerStats(p *api.PlayerResponse) *domain.PlayerStats {
	ls := p.LifetimeStatistics
	return &domain.PlayerStats{
		ID:             p.ID,
		Name:           p.Name,
		GuildName:      p.GuildName,
		KillFame:       p.KillFame,
		DeathFame:      p.DeathFame,
		PvEFame:        ls.PvE.Total,
		GatheringFame:  ls.Gathering.All.Total,
		CraftingFame:   ls.Crafting.Total,
		CrystalLeague:  ls.CrystalLeague,
		FishingFame:    ls.FishingFame,
		FarmingFame:    ls.FarmingFame,
		StatsTimestamp: ls.Timestamp,
	}
}
