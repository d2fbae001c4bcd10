package remote

import (
	"context"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/repository"
)

// MarkerRepo stores seed markers, one row per account.
type MarkerRepo struct {
	client *Client
}

// NewMarkerRepo creates a new seed marker repository.
func NewMarkerRepo(c *Client) *MarkerRepo {
	return &MarkerRepo{client: c}
}

func (r *MarkerRepo) one(rows []Row, op string) (*model.SeedMarker, error) {
	if len(rows) == 0 {
		return nil, errs.ErrMarkerNotFound
	}
	m, err := decodeMarker(rows[0])
	if err != nil {
		return nil, errs.NewSystemErrorWithOp(op, "malformed row", err)
	}
	return m, nil
}

// Get returns the account's marker.
func (r *MarkerRepo) Get(ctx context.Context, accountID string) (*model.SeedMarker, error) {
	rows, err := r.client.Select(ctx, model.TableSeedMarkers, Filter{AccountID: accountID})
	if err != nil {
		return nil, err
	}
	return r.one(rows, "seed_markers.get")
}

// Claim inserts an empty marker unless one exists, then returns the stored marker.
func (r *MarkerRepo) Claim(ctx context.Context, accountID string) (*model.SeedMarker, bool, error) {
	if err := repository.CheckAccount(accountID); err != nil {
		return nil, false, err
	}
	created, err := r.client.InsertIgnore(ctx, model.TableSeedMarkers,
		encodeMarker(model.NewSeedMarker(accountID, model.Now())), []string{"account_id"})
	if err != nil {
		return nil, false, err
	}
	m, err := r.Get(ctx, accountID)
	if err != nil {
		return nil, false, err
	}
	return m, created, nil
}

// MarkTable appends table to the marker's list unless it is already there.
func (r *MarkerRepo) MarkTable(ctx context.Context, accountID, table string) (*model.SeedMarker, error) {
	rows, err := r.client.Update(ctx, model.TableSeedMarkers, Filter{AccountID: accountID}, Row{
		"tables": Expr{
			SQL: `CASE WHEN "tables" = '' THEN ? ` +
				`WHEN ',' || "tables" || ',' LIKE ? THEN "tables" ` +
				`ELSE "tables" || ',' || ? END`,
			Args: []any{table, "%," + table + ",%", table},
		},
	})
	if err != nil {
		return nil, err
	}
	return r.one(rows, "seed_markers.mark")
}

// Complete stamps the marker's completion time once.
func (r *MarkerRepo) Complete(ctx context.Context, accountID string) (*model.SeedMarker, error) {
	rows, err := r.client.Update(ctx, model.TableSeedMarkers, Filter{AccountID: accountID}, Row{
		"completed_at": Expr{SQL: `COALESCE("completed_at", ?)`, Args: []any{formatTime(model.Now())}},
	})
	if err != nil {
		return nil, err
	}
	return r.one(rows, "seed_markers.complete")
}
