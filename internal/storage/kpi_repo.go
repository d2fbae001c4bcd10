package storage

import (
	"context"

	badger "github.com/dgraph-io/badger/v4"
	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/repository"
)

// KPIRepo provides operations for KPI entities.
type KPIRepo struct {
	*collection[model.KPI, *model.KPI, model.KPIPatch]
}

// NewKPIRepo creates a new KPI repository.
func NewKPIRepo(db *DB) *KPIRepo {
	return &KPIRepo{
		collection: newCollection[model.KPI, *model.KPI, model.KPIPatch](db, errs.ErrKPINotFound, model.SortKPIs),
	}
}

// GetByKey returns the KPI with the given key.
func (r *KPIRepo) GetByKey(ctx context.Context, accountID, key string) (*model.KPI, error) {
	items, err := r.List(ctx, accountID)
	if err != nil {
		return nil, err
	}
	for _, k := range items {
		if k.Key == key {
			return k, nil
		}
	}
	return nil, errs.ErrKPINotFound
}

// Adjust adds delta to the current value of every KPI with key, never going
// below zero, and returns the first in canonical order. The lookup and the
// writes share one transaction.
func (r *KPIRepo) Adjust(_ context.Context, accountID, key string, delta float64) (*model.KPI, error) {
	if err := repository.CheckAccount(accountID); err != nil {
		return nil, err
	}
	var out *model.KPI
	err := r.db.update("kpis.adjust", func(txn *badger.Txn) error {
		items, err := scanIn[model.KPI](txn, model.AccountPrefix(model.TableKPIs, accountID))
		if err != nil {
			return err
		}
		model.SortKPIs(items)
		now := model.Now()
		for _, k := range items {
			if k.Key != key {
				continue
			}
			k.Current = model.ClampedAdd(k.Current, delta)
			k.Touch(now)
			if err := setIn(txn, model.KeyOf(k), k); err != nil {
				return err
			}
			if out == nil {
				out = k
			}
		}
		if out == nil {
			return errs.ErrKPINotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
