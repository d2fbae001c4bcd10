package remote

import (
	"context"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/model"
)

// KPIRepo provides operations for KPI rows.
type KPIRepo struct {
	*tableRepo[model.KPI, *model.KPI, model.KPIPatch]
}

// NewKPIRepo creates a new KPI repository.
func NewKPIRepo(c *Client) *KPIRepo {
	return &KPIRepo{newTableRepo[model.KPI, *model.KPI, model.KPIPatch](
		c, errs.ErrKPINotFound, model.SortKPIs, encodeKPI, decodeKPI,
	)}
}

// GetByKey returns the KPI with the given key.
func (r *KPIRepo) GetByKey(ctx context.Context, accountID, key string) (*model.KPI, error) {
	rows, err := r.client.Select(ctx, model.TableKPIs, Filter{AccountID: accountID, Eq: Row{"key": key}})
	if err != nil {
		return nil, err
	}
	items := decodeAll(model.TableKPIs, rows, decodeKPI)
	if len(items) == 0 {
		return nil, errs.ErrKPINotFound
	}
	model.SortKPIs(items)
	return items[0], nil
}

// Adjust adds delta to every KPI with key in a single statement, never going below
// zero, and returns the first in canonical order.
func (r *KPIRepo) Adjust(ctx context.Context, accountID, key string, delta float64) (*model.KPI, error) {
	rows, err := r.client.Update(ctx, model.TableKPIs, Filter{AccountID: accountID, Eq: Row{"key": key}}, Row{
		"current": Expr{
			SQL:  `CASE WHEN "current" + ? < 0 THEN 0 ELSE "current" + ? END`,
			Args: []any{delta, delta},
		},
		"updated_at": formatTime(model.Now()),
	})
	if err != nil {
		return nil, err
	}
	items := decodeAll(model.TableKPIs, rows, decodeKPI)
	if len(items) == 0 {
		return nil, errs.ErrKPINotFound
	}
	model.SortKPIs(items)
	return items[0], nil
}
