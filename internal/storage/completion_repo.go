package storage

import (
	"context"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/repository"
)

// CompletionRepo provides operations for DailyCompletion entities.
// A completion is keyed by account, date and item, so there is at most one per day.
type CompletionRepo struct {
	db *DB
}

// NewCompletionRepo creates a new completion repository.
func NewCompletionRepo(db *DB) *CompletionRepo {
	return &CompletionRepo{db: db}
}

// List returns every completion of the account.
func (r *CompletionRepo) List(_ context.Context, accountID string) ([]*model.DailyCompletion, error) {
	if err := repository.CheckAccount(accountID); err != nil {
		return nil, err
	}
	return r.scan(model.AccountPrefix(model.TableCompletions, accountID))
}

// ListByDate returns the completions recorded for one day.
func (r *CompletionRepo) ListByDate(_ context.Context, accountID, date string) ([]*model.DailyCompletion, error) {
	if err := repository.CheckAccount(accountID); err != nil {
		return nil, err
	}
	return r.scan(model.CompletionDatePrefix(accountID, date))
}

func (r *CompletionRepo) scan(prefix string) ([]*model.DailyCompletion, error) {
	items, err := GetAllByPrefix[model.DailyCompletion](r.db, prefix)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*model.DailyCompletion{}
	}
	model.SortCompletions(items)
	return items, nil
}

// Get returns the completion of an item on a date.
func (r *CompletionRepo) Get(_ context.Context, accountID, itemID, date string) (*model.DailyCompletion, error) {
	if err := repository.CheckAccount(accountID); err != nil {
		return nil, err
	}
	c, err := GetOr[*model.DailyCompletion](r.db, model.CompletionKey(accountID, itemID, date), nil)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errs.ErrCompletionNotFound
	}
	return c, nil
}

// Toggle marks the item done for the date, or flips an existing completion.
func (r *CompletionRepo) Toggle(_ context.Context, accountID, itemID, date string) (*model.DailyCompletion, error) {
	if err := repository.CheckAccount(accountID); err != nil {
		return nil, err
	}
	now := model.Now()
	return Mutate(r.db, model.CompletionKey(accountID, itemID, date), func(cur *model.DailyCompletion, found bool) (*model.DailyCompletion, error) {
		if !found {
			cur = &model.DailyCompletion{Date: date, ItemID: itemID}
			if err := cur.Stamp(accountID, now); err != nil {
				return nil, err
			}
		}
		cur.Flip(now)
		return cur, nil
	})
}

// Remove deletes the completion of an item on a date.
func (r *CompletionRepo) Remove(_ context.Context, accountID, itemID, date string) error {
	if err := repository.CheckAccount(accountID); err != nil {
		return err
	}
	return r.db.deleteIfExists(model.CompletionKey(accountID, itemID, date))
}
