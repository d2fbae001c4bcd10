// Package checklist ties daily checklist completions to KPI progress.
package checklist

import (
	"context"
	"time"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/kpi"
	"github.com/manav03panchal/careeros/internal/logging"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/repository"
)

// Entry is one checklist item with its state on a given day.
type Entry struct {
	Item        *model.NonNegotiable `json:"item"`
	Done        bool                 `json:"done"`
	CompletedAt *time.Time           `json:"completed_at,omitempty"`
}

// Day is the checklist for one calendar day.
type Day struct {
	Date    string  `json:"date"`
	Entries []Entry `json:"entries"`
	Done    int     `json:"done"`
	Total   int     `json:"total"`
}

// Percent returns the share of items done, 0 for an empty checklist.
func (d *Day) Percent() float64 {
	if d.Total == 0 {
		return 0
	}
	return float64(d.Done) / float64(d.Total) * 100
}

// Section returns the entries for one time of day, in order.
func (d *Day) Section(t model.TimeOfDay) []Entry {
	var out []Entry
	for _, e := range d.Entries {
		if e.Item.TimeOfDay == t {
			out = append(out, e)
		}
	}
	return out
}

// ToggleResult reports the effects of one toggle.
type ToggleResult struct {
	Item       *model.NonNegotiable   `json:"item"`
	Completion *model.DailyCompletion `json:"completion"`
	KPIs       []*model.KPI           `json:"kpis,omitempty"`
}

// Service runs checklist operations against a store.
type Service struct {
	items       repository.NonNegotiableRepo
	completions repository.CompletionRepo
	mapper      *kpi.Mapper
}

// NewService creates a checklist service.
func NewService(store *repository.Store, mapper *kpi.Mapper) *Service {
	return &Service{
		items:       store.NonNegotiables,
		completions: store.Completions,
		mapper:      mapper,
	}
}

// Toggle flips an item's completion for date and applies the KPI event the item
// carries. The item must exist.
func (s *Service) Toggle(ctx context.Context, accountID, itemID, date string) (*ToggleResult, error) {
	date, err := checkDate(date)
	if err != nil {
		return nil, err
	}

	item, err := s.items.Get(ctx, accountID, itemID)
	if err != nil {
		return nil, err
	}

	c, err := s.completions.Toggle(ctx, accountID, item.ID, date)
	if err != nil {
		return nil, err
	}

	kpis, err := s.mapper.ApplyItem(ctx, accountID, item, c.Completed)
	if err != nil {
		return nil, errs.Wrapf(err, "apply %q to KPIs", item.Text)
	}

	logging.DebugContext(ctx, "checklist toggled",
		logging.KeyAccount, accountID,
		logging.KeyRecord, item.ID,
		"date", date,
		"completed", c.Completed,
		logging.KeyCount, len(kpis),
	)
	return &ToggleResult{Item: item, Completion: c, KPIs: kpis}, nil
}

// Day returns every checklist item with its completion state on date.
func (s *Service) Day(ctx context.Context, accountID, date string) (*Day, error) {
	date, err := checkDate(date)
	if err != nil {
		return nil, err
	}

	items, err := s.items.List(ctx, accountID)
	if err != nil {
		return nil, err
	}
	done, err := s.completions.ListByDate(ctx, accountID, date)
	if err != nil {
		return nil, err
	}

	byItem := make(map[string]*model.DailyCompletion, len(done))
	for _, c := range done {
		byItem[c.ItemID] = c
	}

	day := &Day{Date: date, Entries: make([]Entry, 0, len(items)), Total: len(items)}
	for _, item := range items {
		e := Entry{Item: item}
		if c, ok := byItem[item.ID]; ok && c.Completed {
			e.Done = true
			e.CompletedAt = c.CompletedAt
			day.Done++
		}
		day.Entries = append(day.Entries, e)
	}
	return day, nil
}

func checkDate(date string) (string, error) {
	d, err := model.ParseDate(date)
	if err != nil {
		return "", errs.NewUserErrorWithField("date", date, "invalid date", "").WithCause(errs.ErrInvalidDate)
	}
	return d, nil
}
