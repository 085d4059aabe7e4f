package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrNotFound = errors.New("not found")

type Item struct {
	Type    string `json:"type"`
	Count   int    `json:"count"`
	Quality int    `json:"quality"`
}

type Equipment struct {
	MainHand *Item `json:"mainHand,omitempty"`
	OffHand  *Item `json:"offHand,omitempty"`
	Head     *Item `json:"head,omitempty"`
	Armor    *Item `json:"armor,omitempty"`
	Shoes    *Item `json:"shoes,omitempty"`
	Bag      *Item `json:"bag,omitempty"`
	Cape     *Item `json:"cape,omitempty"`
	Mount    *Item `json:"mount,omitempty"`
	Potion   *Item `json:"potion,omitempty"`
	Food     *Item `json:"food,omitempty"`
}

// Slots returns every equipped item in slot order.
func (e Equipment) Slots() []*Item {
	all := []*Item{e.MainHand, e.OffHand, e.Head, e.Armor, e.Shoes, e.Bag, e.Cape, e.Mount, e.Potion, e.Food}
	items := make([]*Item, 0, len(all))
	for _, it := range all {
		if it != nil {
			items = append(items, it)
		}
	}
	return items
}

// GearSlots returns the equipped weapon and armor pieces counted for regears.
func (e Equipment) GearSlots() []*Item {
	all := []*Item{e.MainHand, e.OffHand, e.Head, e.Armor, e.Shoes}
	items := make([]*Item, 0, len(all))
	for _, it := range all {
		if it != nil {
			items = append(items, it)
		}
	}
	return items
}

type PlayerSnapshot struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	GuildName    string    `json:"guildName"`
	AllianceName string    `json:"allianceName"`
	ItemPower    float64   `json:"itemPower"`
	Equipment    Equipment `json:"equipment"`
}

// KillEvent is an immutable snapshot of a killboard entry.
type KillEvent struct {
	ID     int64          `json:"id"`
	Time   time.Time      `json:"time"`
	Killer PlayerSnapshot `json:"killer"`
	Victim PlayerSnapshot `json:"victim"`
}

type PlayerRef struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

// PlayerNameKey is the case-insensitive key player refs are cached under.
func PlayerNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type PlayerStats struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	GuildName      string     `json:"guildName"`
	KillFame       int64      `json:"killFame"`
	DeathFame      int64      `json:"deathFame"`
	PvEFame        int64      `json:"pveFame"`
	GatheringFame  int64      `json:"gatheringFame"`
	CraftingFame   int64      `json:"craftingFame"`
	CrystalLeague  int64      `json:"crystalLeague"`
	FishingFame    int64      `json:"fishingFame"`
	FarmingFame    int64      `json:"farmingFame"`
	StatsTimestamp *time.Time `json:"timestamp,omitempty"`
}

type DiscordMember struct {
	ID            string   `json:"id"`
	Username      string   `json:"username"`
	Discriminator string   `json:"discriminator"`
	Avatar        string   `json:"avatar,omitempty"`
	Online        bool     `json:"online"`
	Nickname      string   `json:"nickname"`
	Roles         []string `json:"roles"`
}

// DisplayName is the nickname when set, otherwise the username.
func (m DiscordMember) DisplayName() string {
	if m.Nickname != "" {
		return m.Nickname
	}
	return m.Username
}

type RosterEntry struct {
	Name     string    `json:"name"`
	LastSeen time.Time `json:"lastSeen"`
	Roles    []string  `json:"roles"`
}

type Participation struct {
	Name        string  `json:"name"`
	Battles     int     `json:"battleNumber"`
	TotalFame   int64   `json:"totalFame"`
	TotalKills  int     `json:"totalKills"`
	TotalDeaths int     `json:"totalDeath"`
	AverageIP   float64 `json:"averageIP"`
}

// PriceSeries holds the daily average prices reported for one item id.
type PriceSeries struct {
	ItemID string
	Points []float64
}

type Quote struct {
	Average   float64 `json:"avg"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Available bool    `json:"available"`
}
