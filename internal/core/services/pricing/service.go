// Package pricing builds market quotes for regear items.
package pricing

import (
	"context"
	"log/slog"

	"albion-guild-dashboard/internal/config"
	"albion-guild-dashboard/internal/core/domain"
	"albion-guild-dashboard/internal/core/ports"
)

// Quotes maps a normalized item type to its quote.
type Quotes map[string]domain.Quote

// Overrides holds manually entered prices by normalized item type. They are
// used only where the market has no usable data.
type Overrides map[string]float64

type Dependencies struct {
	Config *config.Config
	Prices ports.PriceSource
}

type Service struct {
	prices       ports.PriceSource
	band         float64
	maxURLLength int
}

func NewService(deps Dependencies) *Service {
	return &Service{
		prices:       deps.Prices,
		band:         deps.Config.PriceOutlierBand,
		maxURLLength: deps.Config.PriceMaxURLLength,
	}
}

// Quotes fetches price history for every variation of items and aggregates it
// per item. A failed batch only leaves its items unavailable.
func (s *Service) Quotes(ctx context.Context, items []string) Quotes {
	var ids []string
	for _, item := range items {
		ids = append(ids, domain.ItemVariations(item)...)
	}

	var series []domain.PriceSeries
	for _, batch := range s.batches(ids) {
		res, err := s.prices.FetchPriceHistory(ctx, batch)
		if err != nil {
			slog.Warn("Failed to fetch item prices", "items", len(batch), "error", err)
			continue
		}
		series = append(series, res...)
	}

	points := make(map[string][]float64)
	for _, sr := range series {
		base := domain.BaseItemName(sr.ItemID)
		points[base] = append(points[base], sr.Points...)
	}

	quotes := make(Quotes, len(items))
	for _, item := range items {
		quotes[item] = Aggregate(points[domain.BaseItemName(item)], s.band)
	}
	return quotes
}

// batches splits ids into successive groups whose request URL stays within
// the configured length. An id too long on its own still gets a request.
func (s *Service) batches(ids []string) [][]string {
	var out [][]string
	var current []string

	for _, id := range ids {
		candidate := append(append([]string(nil), current...), id)
		if len(current) > 0 && s.prices.RequestURLLength(candidate) > s.maxURLLength {
			out = append(out, current)
			current = []string{id}
			continue
		}
		current = candidate
	}
	if len(current) > 0 {
		out = append(out, current)
	}
	return out
}

// Resolve returns the market average for item, falling back to the override
// and then to zero.
func Resolve(quotes Quotes, overrides Overrides, item string) float64 {
	key := domain.NormalizeItemType(item)
	if q, ok := quotes[key]; ok && q.Available && q.Average > 0 {
		return q.Average
	}
	return overrides[key]
}

// SetPrice sums the price of everything the victim carried.
func SetPrice(ev domain.KillEvent, quotes Quotes, overrides Overrides) float64 {
	var total float64
	for _, it := range ev.Victim.Equipment.Slots() {
		total += Resolve(quotes, overrides, it.Type)
	}
	return total
}

// TableCost is the regear bill for the given item counts.
func TableCost(counts []domain.ItemCount, quotes Quotes, overrides Overrides) float64 {
	var total float64
	for _, c := range counts {
		total += float64(c.Count) * Resolve(quotes, overrides, c.Name)
	}
	return total
}

// NormalizeOverrides rekeys user entered prices by normalized item type.
// Non-positive prices are dropped.
func NormalizeOverrides(in map[string]float64) Overrides {
	out := make(Overrides, len(in))
	for item, price := range in {
		if price > 0 {
			out[domain.NormalizeItemType(item)] = price
		}
	}
	return out
}
