// Package kpi turns checklist completions into KPI counter changes.
package kpi

import (
	"context"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/logging"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/repository"
)

// Delta is one KPI change produced by an event.
type Delta struct {
	Key    string
	Amount float64
}

// Rules maps each event kind to the KPI deltas a completion produces.
var Rules = map[model.EventKind][]Delta{
	model.EventStudy:        {{Key: "cmt-study", Amount: 1}},
	model.EventApplication:  {{Key: "applications", Amount: 1}},
	model.EventOutreach:     {{Key: "networking", Amount: 1}},
	model.EventWorkout:      {{Key: "gym", Amount: 1}},
	model.EventContent:      {{Key: "content", Amount: 1}},
	model.EventMarketReview: {{Key: "market-reviews", Amount: 1}},
}

// Labels resolves checklist labels from before items carried an event kind.
// Matching is exact.
var Labels = map[string]model.EventKind{
	"CMT Study":           model.EventStudy,
	"Gym":                 model.EventWorkout,
	"Market Review":       model.EventMarketReview,
	"Send 2 Applications": model.EventApplication,
	"Networking Outreach": model.EventOutreach,
	"Post Content":        model.EventContent,
}

// KindForLabel returns the event kind for a label, or EventNone.
func KindForLabel(label string) model.EventKind {
	return Labels[label]
}

// Mapper applies event rules to an account's KPIs.
type Mapper struct {
	kpis repository.KPIRepo
}

// NewMapper creates a mapper writing through repo.
func NewMapper(repo repository.KPIRepo) *Mapper {
	return &Mapper{kpis: repo}
}

// Apply adjusts the KPIs tied to kind: up when completed, down otherwise.
// Values never drop below zero. Unknown kinds and KPIs the account does not
// have are ignored. It returns the KPIs that changed.
func (m *Mapper) Apply(ctx context.Context, accountID string, kind model.EventKind, completed bool) ([]*model.KPI, error) {
	deltas, ok := Rules[kind]
	if !ok {
		return nil, nil
	}

	var changed []*model.KPI
	for _, d := range deltas {
		amount := d.Amount
		if !completed {
			amount = -amount
		}

		k, err := m.kpis.Adjust(ctx, accountID, d.Key, amount)
		if errs.IsNotFound(err) {
			logging.DebugContext(ctx, "kpi missing for event", logging.KeyAccount, accountID, logging.KeyKPI, d.Key, logging.KeyEvent, string(kind))
			continue
		}
		if err != nil {
			return changed, err
		}
		logging.DebugContext(ctx, "kpi adjusted",
			logging.KeyAccount, accountID,
			logging.KeyKPI, k.Key,
			logging.KeyEvent, string(kind),
			"current", k.Current,
		)
		changed = append(changed, k)
	}
	return changed, nil
}

// ApplyLabel resolves label through Labels and applies the resulting kind.
func (m *Mapper) ApplyLabel(ctx context.Context, accountID, label string, completed bool) ([]*model.KPI, error) {
	kind := KindForLabel(label)
	if kind == model.EventNone {
		return nil, nil
	}
	return m.Apply(ctx, accountID, kind, completed)
}

// ApplyItem applies the item's event kind, falling back to its label.
func (m *Mapper) ApplyItem(ctx context.Context, accountID string, item *model.NonNegotiable, completed bool) ([]*model.KPI, error) {
	if item.Event != model.EventNone {
		return m.Apply(ctx, accountID, item.Event, completed)
	}
	return m.ApplyLabel(ctx, accountID, item.Text, completed)
}
