package killboard

import (
	"strconv"

	"albion-guild-dashboard/internal/core/services/pricing"
	"albion-guild-dashboard/internal/table"
)

func EventTable(rows []Row) *table.Table[Row] {
	return table.New([]table.Column[Row]{
		{Key: "eventId", Header: "Event", Value: func(r Row) any { return r.EventID }},
		{Key: "time", Header: "Time", Value: func(r Row) any { return r.Time }},
		{Key: "victim", Header: "Victim", Value: func(r Row) any { return r.Victim }},
		{Key: "guild", Header: "Guild", Value: func(r Row) any { return r.Guild }},
		{Key: "mainHand", Header: "Main Hand", Value: func(r Row) any { return r.MainHand }},
		{
			Key:    "itemPower",
			Header: "IP",
			Value:  func(r Row) any { return r.ItemPower },
			Format: func(r Row) string { return strconv.FormatFloat(r.ItemPower, 'f', 0, 64) },
		},
		{
			Key:    "compliant",
			Header: "OK",
			Value:  func(r Row) any { return r.Compliant },
			Format: func(r Row) string { return yesNo(r.Compliant) },
		},
		{Key: "reason", Header: "Reason", Value: func(r Row) any { return r.Reason }},
		{
			Key:    "excepted",
			Header: "Exception",
			Value:  func(r Row) any { return r.Excepted },
			Format: func(r Row) string { return yesNo(r.Excepted) },
		},
		{
			Key:    "setPrice",
			Header: "Set Price",
			Value:  func(r Row) any { return r.SetPrice },
			Format: func(r Row) string { return r.SetPriceText },
		},
	}, rows)
}

func ItemTable(items []ItemRow) *table.Table[ItemRow] {
	return table.New([]table.Column[ItemRow]{
		{Key: "name", Header: "Item", Value: func(r ItemRow) any { return r.Name }},
		{Key: "count", Header: "Count", Value: func(r ItemRow) any { return r.Count }},
		{Key: "avg", Header: "Avg", Value: func(r ItemRow) any { return r.AvgPrice }, Format: func(r ItemRow) string { return r.Average }},
		{Key: "min", Header: "Min", Value: func(r ItemRow) any { return r.MinPrice }, Format: func(r ItemRow) string { return r.Min }},
		{Key: "max", Header: "Max", Value: func(r ItemRow) any { return r.MaxPrice }, Format: func(r ItemRow) string { return r.Max }},
		{Key: "price", Header: "Price", Value: func(r ItemRow) any { return r.Price }, Format: func(r ItemRow) string { return pricing.FormatPrice(r.Price) }},
		{Key: "cost", Header: "Cost", Value: func(r ItemRow) any { return r.Cost }, Format: func(r ItemRow) string { return pricing.FormatPrice(r.Cost) }},
	}, items)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
