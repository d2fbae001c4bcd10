package remote

import (
	"context"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/repository"
)

var completionConflict = []string{"account_id", "item_id", "date"}

// CompletionRepo provides operations for DailyCompletion rows.
type CompletionRepo struct {
	client *Client
}

// NewCompletionRepo creates a new completion repository.
func NewCompletionRepo(c *Client) *CompletionRepo {
	return &CompletionRepo{client: c}
}

func (r *CompletionRepo) selectWhere(ctx context.Context, f Filter) ([]*model.DailyCompletion, error) {
	rows, err := r.client.Select(ctx, model.TableCompletions, f)
	if err != nil {
		return nil, err
	}
	items := decodeAll(model.TableCompletions, rows, decodeCompletion)
	model.SortCompletions(items)
	return items, nil
}

// List returns every completion of the account.
func (r *CompletionRepo) List(ctx context.Context, accountID string) ([]*model.DailyCompletion, error) {
	return r.selectWhere(ctx, Filter{AccountID: accountID})
}

// ListByDate returns the completions recorded for one day.
func (r *CompletionRepo) ListByDate(ctx context.Context, accountID, date string) ([]*model.DailyCompletion, error) {
	return r.selectWhere(ctx, Filter{AccountID: accountID, Eq: Row{"date": date}})
}

// Get returns the completion of an item on a date.
func (r *CompletionRepo) Get(ctx context.Context, accountID, itemID, date string) (*model.DailyCompletion, error) {
	items, err := r.selectWhere(ctx, Filter{AccountID: accountID, Eq: Row{"item_id": itemID, "date": date}})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.ErrCompletionNotFound
	}
	return items[0], nil
}

// Toggle inserts the completion as done, or flips the stored one, in one statement.
func (r *CompletionRepo) Toggle(ctx context.Context, accountID, itemID, date string) (*model.DailyCompletion, error) {
	if err := repository.CheckAccount(accountID); err != nil {
		return nil, err
	}
	now := model.Now()
	fresh := &model.DailyCompletion{Date: date, ItemID: itemID}
	if err := fresh.Stamp(accountID, now); err != nil {
		return nil, errs.StoreError(model.TableCompletions+".toggle", err)
	}
	fresh.Flip(now)

	row, err := r.client.Upsert(ctx, model.TableCompletions, encodeCompletion(fresh), completionConflict, Row{
		"completed":    Expr{SQL: `CASE WHEN "daily_completions"."completed" = 1 THEN 0 ELSE 1 END`},
		"completed_at": Expr{SQL: `CASE WHEN "daily_completions"."completed" = 1 THEN NULL ELSE excluded."completed_at" END`},
		"updated_at":   Expr{SQL: `excluded."updated_at"`},
	})
	if err != nil {
		return nil, err
	}
	c, err := decodeCompletion(row)
	if err != nil {
		return nil, errs.NewSystemErrorWithOp(model.TableCompletions+".toggle", "malformed row", err)
	}
	return c, nil
}

// Remove deletes the completion of an item on a date.
func (r *CompletionRepo) Remove(ctx context.Context, accountID, itemID, date string) error {
	return r.client.Delete(ctx, model.TableCompletions, Filter{AccountID: accountID, Eq: Row{"item_id": itemID, "date": date}})
}
