// Package repository defines the storage contract shared by the key-value store
// and the remote table service. Callers depend on these interfaces only; the
// implementation is chosen once when the Store is built.
package repository

import (
	"context"
	"strings"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/model"
)

// Repo is the account-scoped contract every entity repository satisfies.
type Repo[T any, P any] interface {
	// List returns every record of the account in canonical order.
	List(ctx context.Context, accountID string) ([]*T, error)
	// Get returns one record, or an error matching errors.ErrNotFound.
	Get(ctx context.Context, accountID, id string) (*T, error)
	// Create assigns an id and timestamps, forces the account and persists the record.
	Create(ctx context.Context, accountID string, item *T) (*T, error)
	// CreateMany persists several records in one atomic write.
	CreateMany(ctx context.Context, accountID string, items []*T) ([]*T, error)
	// Update merges the set patch fields and refreshes UpdatedAt.
	Update(ctx context.Context, accountID, id string, patch P) (*T, error)
	// Remove deletes a record. Removing an absent record is not an error.
	Remove(ctx context.Context, accountID, id string) error
}

// KPIRepo adds key lookups and atomic counters to the KPI repository.
type KPIRepo interface {
	Repo[model.KPI, model.KPIPatch]
	GetByKey(ctx context.Context, accountID, key string) (*model.KPI, error)
	// Adjust adds delta to the current value of every KPI with key, clamping at
	// zero, and returns the first match in canonical order.
	Adjust(ctx context.Context, accountID, key string, delta float64) (*model.KPI, error)
}

// CompanyRepo stores the application tracker.
type CompanyRepo = Repo[model.Company, model.CompanyPatch]

// ScheduleRepo stores the weekly schedule.
type ScheduleRepo = Repo[model.ScheduleBlock, model.ScheduleBlockPatch]

// NonNegotiableRepo stores the daily checklist items.
type NonNegotiableRepo = Repo[model.NonNegotiable, model.NonNegotiablePatch]

// CompletionRepo stores daily checklist completions, unique per (account, item, date).
type CompletionRepo interface {
	List(ctx context.Context, accountID string) ([]*model.DailyCompletion, error)
	ListByDate(ctx context.Context, accountID, date string) ([]*model.DailyCompletion, error)
	Get(ctx context.Context, accountID, itemID, date string) (*model.DailyCompletion, error)
	// Toggle creates the completion as done, or flips an existing one, atomically.
	Toggle(ctx context.Context, accountID, itemID, date string) (*model.DailyCompletion, error)
	Remove(ctx context.Context, accountID, itemID, date string) error
}

// MarkerRepo stores per-account seed progress.
type MarkerRepo interface {
	Get(ctx context.Context, accountID string) (*model.SeedMarker, error)
	// Claim creates an empty marker if none exists and returns the stored one.
	// created is true only for the caller whose write created it.
	Claim(ctx context.Context, accountID string) (marker *model.SeedMarker, created bool, err error)
	MarkTable(ctx context.Context, accountID, table string) (*model.SeedMarker, error)
	Complete(ctx context.Context, accountID string) (*model.SeedMarker, error)
}

// Store bundles one implementation of every repository.
type Store struct {
	KPIs           KPIRepo
	Companies      CompanyRepo
	Schedule       ScheduleRepo
	NonNegotiables NonNegotiableRepo
	Completions    CompletionRepo
	Markers        MarkerRepo
}

// CheckAccount rejects an empty account id.
func CheckAccount(accountID string) error {
	if strings.TrimSpace(accountID) == "" {
		return errs.ErrAccountRequired
	}
	return nil
}
