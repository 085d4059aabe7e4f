// Package killboard turns pasted killboard links into a regear report.
package killboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"albion-guild-dashboard/internal/config"
	"albion-guild-dashboard/internal/core/domain"
	"albion-guild-dashboard/internal/core/ports"
	"albion-guild-dashboard/internal/core/services/eligibility"
	"albion-guild-dashboard/internal/core/services/pricing"
)

var ErrNoEventLinks = errors.New("no killboard links found")

const PartialLoadWarning = "Some events could not be loaded. Please try again later."

type Quoter interface {
	Quotes(ctx context.Context, items []string) pricing.Quotes
}

type Dependencies struct {
	Config   *config.Config
	GameInfo ports.GameInfo
	Pricing  Quoter
}

type Service struct {
	gameInfo    ports.GameInfo
	pricing     Quoter
	concurrency int
}

func NewService(deps Dependencies) *Service {
	concurrency := deps.Config.EventFetchConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		gameInfo:    deps.GameInfo,
		pricing:     deps.Pricing,
		concurrency: concurrency,
	}
}

type Request struct {
	Text       string
	Rules      eligibility.Rules
	Exceptions eligibility.Exceptions
	Overrides  pricing.Overrides
}

// BuildReport fetches every linked event, classifies it and prices the
// regear. Events that cannot be fetched are left out and flagged with a
// warning.
func (s *Service) BuildReport(ctx context.Context, req Request) (*Report, error) {
	ids := ExtractEventIDs(req.Text)
	if len(ids) == 0 {
		return nil, ErrNoEventLinks
	}

	events, failed := s.fetchEvents(ctx, ids)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var quotes pricing.Quotes
	if len(events) > 0 {
		counts := domain.EquipmentCounts(events)
		items := make([]string, len(counts))
		for i, c := range counts {
			items[i] = c.Name
		}
		quotes = s.pricing.Quotes(ctx, items)
	}

	report := Evaluate(events, req, quotes)
	report.Requested = len(ids)
	if failed > 0 {
		report.Warning = PartialLoadWarning
	}

	slog.Info("Killboard report built", "requested", len(ids), "loaded", len(events), "failed", failed)
	return report, nil
}

func (s *Service) fetchEvents(ctx context.Context, ids []int64) ([]domain.KillEvent, int) {
	results := make([]*domain.KillEvent, len(ids))

	var (
		mu     sync.Mutex
		failed int
	)

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			ev, err := s.gameInfo.FetchEvent(ctx, id)
			if err != nil {
				slog.Warn("Failed to load kill event", "event_id", id, "error", err)
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}
			results[i] = ev
			return nil
		})
	}
	_ = g.Wait()

	events := make([]domain.KillEvent, 0, len(ids))
	for _, ev := range results {
		if ev != nil {
			events = append(events, *ev)
		}
	}
	return events, failed
}

type Row struct {
	EventID      int64     `json:"eventId"`
	Time         time.Time `json:"time"`
	Victim       string    `json:"victim"`
	Guild        string    `json:"guild"`
	Killer       string    `json:"killer"`
	ItemPower    float64   `json:"itemPower"`
	MainHand     string    `json:"mainHand"`
	MainHandIcon string    `json:"mainHandIcon,omitempty"`
	Compliant    bool      `json:"compliant"`
	Reason       string    `json:"reason"`
	Excepted     bool      `json:"excepted"`
	SetPrice     float64   `json:"setPrice"`
	SetPriceText string    `json:"setPriceText"`
}

type ItemRow struct {
	Name      string  `json:"name"`
	Count     int     `json:"count"`
	Icon      string  `json:"icon"`
	Available bool    `json:"available"`
	Average   string  `json:"avg"`
	Min       string  `json:"min"`
	Max       string  `json:"max"`
	AvgPrice  float64 `json:"avgPrice"`
	MinPrice  float64 `json:"minPrice"`
	MaxPrice  float64 `json:"maxPrice"`
	Price     float64 `json:"price"`
	Cost      float64 `json:"cost"`
}

type Report struct {
	Requested int       `json:"requested"`
	Loaded    int       `json:"loaded"`
	Warning   string    `json:"warning,omitempty"`
	Rows      []Row     `json:"rows"`
	Items     []ItemRow `json:"items"`
	Total     float64   `json:"total"`
	TotalText string    `json:"totalText"`
}

// Evaluate builds the report for already fetched events. Rows come
// non-compliant first. The item table only counts events that qualify for
// a regear.
func Evaluate(events []domain.KillEvent, req Request, quotes pricing.Quotes) *Report {
	classified := eligibility.Classify(events, req.Rules, req.Exceptions)

	rows := make([]Row, 0, len(classified))
	var eligible []domain.KillEvent
	for _, c := range classified {
		rows = append(rows, newRow(c, quotes, req.Overrides))
		if c.Verdict.Compliant || c.Excepted {
			eligible = append(eligible, c.Event)
		}
	}

	counts := domain.EquipmentCounts(eligible)
	items := make([]ItemRow, 0, len(counts))
	for _, c := range counts {
		q := quotes[c.Name]
		price := pricing.Resolve(quotes, req.Overrides, c.Name)
		items = append(items, ItemRow{
			Name:      c.Name,
			Count:     c.Count,
			Icon:      domain.ItemImageURL(c.Name),
			Available: q.Available,
			Average:   pricing.FormatPrice(q.Average),
			Min:       pricing.FormatPrice(q.Min),
			Max:       pricing.FormatPrice(q.Max),
			AvgPrice:  q.Average,
			MinPrice:  q.Min,
			MaxPrice:  q.Max,
			Price:     price,
			Cost:      price * float64(c.Count),
		})
	}

	total := pricing.TableCost(counts, quotes, req.Overrides)
	return &Report{
		Loaded:    len(events),
		Rows:      rows,
		Items:     items,
		Total:     total,
		TotalText: pricing.FormatPrice(total),
	}
}

func newRow(c eligibility.Classified, quotes pricing.Quotes, overrides pricing.Overrides) Row {
	victim := c.Event.Victim
	set := pricing.SetPrice(c.Event, quotes, overrides)

	row := Row{
		EventID:      c.Event.ID,
		Time:         c.Event.Time,
		Victim:       victim.Name,
		Guild:        victim.GuildName,
		Killer:       c.Event.Killer.Name,
		ItemPower:    victim.ItemPower,
		Compliant:    c.Verdict.Compliant,
		Reason:       c.Verdict.Reason,
		Excepted:     c.Excepted,
		SetPrice:     set,
		SetPriceText: pricing.FormatPrice(set),
	}
	if mh := victim.Equipment.MainHand; mh != nil {
		row.MainHand = mh.Type
		row.MainHandIcon = domain.ItemImageURL(mh.Type)
	}
	return row
}
