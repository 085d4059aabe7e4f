package api

import "time"

type Item struct {
	Type    string `json:"Type"`
	Count   int    `json:"Count"`
	Quality int    `json:"Quality"`
}

type Equipment struct {
	MainHand *Item `json:"MainHand"`
	OffHand  *Item `json:"OffHand"`
	Head     *Item `json:"Head"`
	Armor    *Item `json:"Armor"`
	Shoes    *Item `json:"Shoes"`
	Bag      *Item `json:"Bag"`
	Cape     *Item `json:"Cape"`
	Mount    *Item `json:"Mount"`
	Potion   *Item `json:"Potion"`
	Food     *Item `json:"Food"`
}

type EventPlayer struct {
	ID               string    `json:"Id"`
	Name             string    `json:"Name"`
	GuildName        string    `json:"GuildName"`
	AllianceName     string    `json:"AllianceName"`
	AverageItemPower float64   `json:"AverageItemPower"`
	Equipment        Equipment `json:"Equipment"`
}

type EventResponse struct {
	EventID   int64       `json:"EventId"`
	TimeStamp time.Time   `json:"TimeStamp"`
	Killer    EventPlayer `json:"Killer"`
	Victim    EventPlayer `json:"Victim"`
}

type SearchPlayer struct {
	ID           string `json:"Id"`
	Name         string `json:"Name"`
	GuildID      string `json:"GuildId"`
	GuildName    string `json:"GuildName"`
	AllianceName string `json:"AllianceName"`
}

type SearchResponse struct {
	Players []SearchPlayer `json:"players"`
}

type FameBreakdown struct {
	Total int64 `json:"Total"`
}

type LifetimeStatistics struct {
	PvE       FameBreakdown `json:"PvE"`
	Gathering struct {
		All FameBreakdown `json:"All"`
	} `json:"Gathering"`
	Crafting      FameBreakdown `json:"Crafting"`
	CrystalLeague int64         `json:"CrystalLeague"`
	FishingFame   int64         `json:"FishingFame"`
	FarmingFame   int64         `json:"FarmingFame"`
	Timestamp     *time.Time    `json:"Timestamp"`
}

type PlayerResponse struct {
	ID                 string             `json:"Id"`
	Name               string             `json:"Name"`
	GuildName          string             `json:"GuildName"`
	KillFame           int64              `json:"KillFame"`
	DeathFame          int64              `json:"DeathFame"`
	LifetimeStatistics LifetimeStatistics `json:"LifetimeStatistics"`
}
