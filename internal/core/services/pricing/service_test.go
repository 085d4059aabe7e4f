package pricing

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"albion-guild-dashboard/internal/config"
	"albion-guild-dashboard/internal/core/domain"
)

type mockPriceSource struct {
	fetchFunc func(ctx context.Context, ids []string) ([]domain.PriceSeries, error)
	calls     [][]string
}

func (m *mockPriceSource) FetchPriceHistory(ctx context.Context, ids []string) ([]domain.PriceSeries, error) {
	m.calls = append(m.calls, ids)
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockPriceSource) RequestURLLength(ids []string) int {
	return len("https://market/") + len(strings.Join(ids, ",")) + len("?time-scale=24")
}

func newTestService(src *mockPriceSource, maxURL int) *Service {
	return NewService(Dependencies{
		Config: &config.Config{PriceOutlierBand: 0.35, PriceMaxURLLength: maxURL},
		Prices: src,
	})
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name   string
		points []float64
		band   float64
		want   domain.Quote
	}{
		{
			name:   "spike removed",
			points: []float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 300},
			want:   domain.Quote{Average: 100, Min: 100, Max: 100, Available: true},
		},
		{
			name:   "values within band kept",
			points: []float64{90, 100, 110},
			want:   domain.Quote{Average: 100, Min: 90, Max: 110, Available: true},
		},
		{
			name:   "non-positive values ignored",
			points: []float64{0, -5, 200, 220},
			want:   domain.Quote{Average: 210, Min: 200, Max: 220, Available: true},
		},
		{
			name:   "band bounds are inclusive",
			points: []float64{50, 150},
			band:   0.5,
			want:   domain.Quote{Average: 100, Min: 50, Max: 150, Available: true},
		},
		{
			name:   "no positive values",
			points: []float64{0, 0},
			want:   domain.Quote{},
		},
		{
			name: "empty",
			want: domain.Quote{},
		},
		{
			name:   "nothing survives the band",
			points: []float64{100, 1000},
			want:   domain.Quote{},
		},
		{
			name:   "spike drags the mean away from every point",
			points: []float64{100, 100, 100, 1000, 1000},
			want:   domain.Quote{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band := tt.band
			if band == 0 {
				band = 0.35
			}
			got := Aggregate(tt.points, band)
			if got.Available != tt.want.Available ||
				!approxEqual(got.Average, tt.want.Average) ||
				!approxEqual(got.Min, tt.want.Min) ||
				!approxEqual(got.Max, tt.want.Max) {
				t.Errorf("Aggregate(%v) = %+v, want %+v", tt.points, got, tt.want)
			}
		})
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{0, "0"},
		{999.4, "999"},
		{999.6, "1000"},
		{1_000, "1.0k"},
		{12_345, "12.3k"},
		{999_999, "1000.0k"},
		{1_000_000, "1.0m"},
		{2_560_000, "2.6m"},
	}

	for _, tt := range tests {
		if got := FormatPrice(tt.price); got != tt.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tt.price, got, tt.want)
		}
	}
}

func TestQuotes(t *testing.T) {
	src := &mockPriceSource{
		fetchFunc: func(ctx context.Context, ids []string) ([]domain.PriceSeries, error) {
			return []domain.PriceSeries{
				{ItemID: "T8_MAIN_SWORD", Points: []float64{100_000, 110_000}},
				{ItemID: "T7_MAIN_SWORD@1", Points: []float64{90_000, 0}},
				{ItemID: "T8_HEAD_CLOTH_SET1", Points: []float64{5_000}},
			}, nil
		},
	}
	svc := newTestService(src, 2000)

	quotes := svc.Quotes(context.Background(), []string{"T8_MAIN_SWORD", "T8_HEAD_CLOTH_SET1", "T8_SHOES_LEATHER_SET2"})

	if len(src.calls) != 1 {
		t.Fatalf("expected a single request, got %d", len(src.calls))
	}
	if len(src.calls[0]) != 12 {
		t.Errorf("expected 12 variations requested, got %d", len(src.calls[0]))
	}

	sword := quotes["T8_MAIN_SWORD"]
	if !sword.Available || !approxEqual(sword.Average, 100_000) || sword.Min != 90_000 || sword.Max != 110_000 {
		t.Errorf("unexpected sword quote %+v", sword)
	}
	if q := quotes["T8_HEAD_CLOTH_SET1"]; !q.Available || q.Average != 5_000 {
		t.Errorf("unexpected head quote %+v", q)
	}
	if q := quotes["T8_SHOES_LEATHER_SET2"]; q.Available {
		t.Errorf("expected shoes to be unavailable, got %+v", q)
	}
}

func TestQuotes_BatchesByURLLength(t *testing.T) {
	src := &mockPriceSource{}
	// Room for roughly one item's variations per request.
	svc := newTestService(src, 100)

	items := []string{"T8_MAIN_SWORD", "T8_2H_HOLYSTAFF", "T8_ARMOR_PLATE_SET3"}
	svc.Quotes(context.Background(), items)

	if len(src.calls) < 2 {
		t.Fatalf("expected the request to be split, got %d calls", len(src.calls))
	}

	total := 0
	for _, batch := range src.calls {
		total += len(batch)
		if len(batch) > 1 && src.RequestURLLength(batch) > 100 {
			t.Errorf("batch %v exceeds the URL limit", batch)
		}
	}
	if total != 12 {
		t.Errorf("expected all 12 variations requested once, got %d", total)
	}
}

func TestQuotes_OversizedIDStillRequested(t *testing.T) {
	src := &mockPriceSource{}
	svc := newTestService(src, 10)

	svc.Quotes(context.Background(), []string{"T8_MAIN_SWORD"})

	if len(src.calls) != 4 {
		t.Fatalf("expected one request per variation, got %d", len(src.calls))
	}
}

func TestQuotes_FailedBatchLeavesItemsUnavailable(t *testing.T) {
	src := &mockPriceSource{
		fetchFunc: func(ctx context.Context, ids []string) ([]domain.PriceSeries, error) {
			if strings.Contains(ids[0], "MAIN_SWORD") {
				return nil, errors.New("upstream down")
			}
			return []domain.PriceSeries{{ItemID: "T8_2H_HOLYSTAFF", Points: []float64{300}}}, nil
		},
	}
	svc := newTestService(src, 100)

	quotes := svc.Quotes(context.Background(), []string{"T8_MAIN_SWORD", "T8_2H_HOLYSTAFF"})

	if quotes["T8_MAIN_SWORD"].Available {
		t.Error("expected sword to be unavailable")
	}
	if !quotes["T8_2H_HOLYSTAFF"].Available {
		t.Error("expected holy staff to be priced")
	}
}

func TestResolve(t *testing.T) {
	quotes := Quotes{
		"T8_MAIN_SWORD": {Average: 100, Available: true},
		"T8_HEAD_PLATE": {Available: false},
	}
	overrides := NormalizeOverrides(map[string]float64{
		"T6_HEAD_PLATE@2": 40,
		"T8_MAIN_SWORD":   999,
		"T8_BAG":          -1,
	})

	tests := []struct {
		item string
		want float64
	}{
		{"T5_MAIN_SWORD@3", 100},
		{"T8_HEAD_PLATE", 40},
		{"T8_BAG", 0},
		{"T8_UNKNOWN", 0},
	}
	for _, tt := range tests {
		if got := Resolve(quotes, overrides, tt.item); got != tt.want {
			t.Errorf("Resolve(%q) = %v, want %v", tt.item, got, tt.want)
		}
	}
}

func TestSetPriceAndTableCost(t *testing.T) {
	quotes := Quotes{
		"T8_MAIN_SWORD": {Average: 100_000, Available: true},
		"T8_HEAD_PLATE": {Average: 20_000, Available: true},
	}
	overrides := Overrides{"T8_BAG": 5_000}

	ev := domain.KillEvent{Victim: domain.PlayerSnapshot{Equipment: domain.Equipment{
		MainHand: &domain.Item{Type: "T7_MAIN_SWORD@1"},
		Head:     &domain.Item{Type: "T8_HEAD_PLATE"},
		Bag:      &domain.Item{Type: "T4_BAG"},
		Potion:   &domain.Item{Type: "T6_POTION_HEAL"},
	}}}

	if got := SetPrice(ev, quotes, overrides); got != 125_000 {
		t.Errorf("SetPrice = %v, want 125000", got)
	}

	counts := []domain.ItemCount{{Name: "T8_MAIN_SWORD", Count: 2}, {Name: "T8_HEAD_PLATE", Count: 3}, {Name: "T8_SHOES_CLOTH", Count: 1}}
	if got := TableCost(counts, quotes, overrides); got != 260_000 {
		t.Errorf("TableCost = %v, want 260000", got)
	}
}
