package pricing

import (
	"fmt"
	"math"

	"albion-guild-dashboard/internal/core/domain"
)

// Aggregate turns raw daily averages into a quote. Non-positive points are
// dropped, then only points within band of the mean are kept. A series with
// nothing left is unavailable and needs a manual price.
func Aggregate(points []float64, band float64) domain.Quote {
	valid := make([]float64, 0, len(points))
	for _, p := range points {
		if p > 0 {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 {
		return domain.Quote{}
	}

	kept := withinBand(valid, mean(valid), band)
	if len(kept) == 0 {
		return domain.Quote{}
	}

	lo, hi := kept[0], kept[0]
	for _, p := range kept[1:] {
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}

	return domain.Quote{
		Average:   mean(kept),
		Min:       lo,
		Max:       hi,
		Available: true,
	}
}

func withinBand(values []float64, center, band float64) []float64 {
	low := center * (1 - band)
	high := center * (1 + band)

	var out []float64
	for _, v := range values {
		if v >= low && v <= high {
			out = append(out, v)
		}
	}
	return out
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// FormatPrice renders silver amounts the way the guild reads them: 1.2m,
// 350.0k or 980.
func FormatPrice(price float64) string {
	switch {
	case price >= 1_000_000:
		return fmt.Sprintf("%.1fm", price/1_000_000)
	case price >= 1_000:
		return fmt.Sprintf("%.1fk", price/1_000)
	default:
		return fmt.Sprintf("%.0f", math.Round(price))
	}
}
