package storage

import (
	"context"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/repository"
)

// MarkerRepo stores seed markers.
type MarkerRepo struct {
	db *DB
}

// NewMarkerRepo creates a new seed marker repository.
func NewMarkerRepo(db *DB) *MarkerRepo {
	return &MarkerRepo{db: db}
}

// Get returns the account's marker.
func (r *MarkerRepo) Get(_ context.Context, accountID string) (*model.SeedMarker, error) {
	if err := repository.CheckAccount(accountID); err != nil {
		return nil, err
	}
	m, err := GetOr[*model.SeedMarker](r.db, model.MarkerKey(accountID), nil)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errs.ErrMarkerNotFound
	}
	return m, nil
}

// Claim creates the account's marker when it does not exist yet.
func (r *MarkerRepo) Claim(_ context.Context, accountID string) (*model.SeedMarker, bool, error) {
	if err := repository.CheckAccount(accountID); err != nil {
		return nil, false, err
	}
	return GetOrCreate(r.db, model.MarkerKey(accountID), func() (*model.SeedMarker, error) {
		return model.NewSeedMarker(accountID, model.Now()), nil
	})
}

// MarkTable records that a table's defaults were inserted.
func (r *MarkerRepo) MarkTable(_ context.Context, accountID, table string) (*model.SeedMarker, error) {
	return r.mutate(accountID, func(m *model.SeedMarker) {
		m.AddTable(table)
	})
}

// Complete records that every table was seeded.
func (r *MarkerRepo) Complete(_ context.Context, accountID string) (*model.SeedMarker, error) {
	return r.mutate(accountID, func(m *model.SeedMarker) {
		if m.CompletedAt == nil {
			now := model.Now()
			m.CompletedAt = &now
		}
	})
}

func (r *MarkerRepo) mutate(accountID string, fn func(*model.SeedMarker)) (*model.SeedMarker, error) {
	if err := repository.CheckAccount(accountID); err != nil {
		return nil, err
	}
	return Mutate(r.db, model.MarkerKey(accountID), func(cur *model.SeedMarker, found bool) (*model.SeedMarker, error) {
		if !found {
			return nil, errs.ErrMarkerNotFound
		}
		fn(cur)
		return cur, nil
	})
}
