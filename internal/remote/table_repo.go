package remote

import (
	"context"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/logging"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/repository"
)

type entityPtr[T any] interface {
	*T
	model.Entity
}

// fielder reports the columns a patch sets.
type fielder interface {
	Fields() map[string]any
}

// tableRepo implements repository.Repo for one remote table.
type tableRepo[T any, PT entityPtr[T], P fielder] struct {
	client   *Client
	table    string
	notFound error
	sort     func([]*T)
	encode   func(*T) Row
	decode   func(Row) (*T, error)
}

func newTableRepo[T any, PT entityPtr[T], P fielder](
	client *Client,
	notFound error,
	sort func([]*T),
	encode func(*T) Row,
	decode func(Row) (*T, error),
) *tableRepo[T, PT, P] {
	return &tableRepo[T, PT, P]{
		client:   client,
		table:    PT(new(T)).Table(),
		notFound: notFound,
		sort:     sort,
		encode:   encode,
		decode:   decode,
	}
}

// decodeAll converts rows, skipping rows that no longer decode.
func decodeAll[T any](table string, rows []Row, decode func(Row) (*T, error)) []*T {
	out := make([]*T, 0, len(rows))
	for _, row := range rows {
		item, err := decode(row)
		if err != nil {
			logging.Warn("skipping malformed row", logging.KeyTable, table, logging.KeyRecord, asString(row["id"]), logging.KeyError, err)
			continue
		}
		out = append(out, item)
	}
	return out
}

func (r *tableRepo[T, PT, P]) one(rows []Row) (*T, error) {
	if len(rows) == 0 {
		return nil, r.notFound
	}
	item, err := r.decode(rows[0])
	if err != nil {
		return nil, errs.NewSystemErrorWithOp(r.table+".decode", "malformed row", err)
	}
	return item, nil
}

// List returns every record of the account in canonical order.
func (r *tableRepo[T, PT, P]) List(ctx context.Context, accountID string) ([]*T, error) {
	rows, err := r.client.Select(ctx, r.table, Filter{AccountID: accountID})
	if err != nil {
		return nil, err
	}
	items := decodeAll(r.table, rows, r.decode)
	r.sort(items)
	return items, nil
}

// Get returns one record by id.
func (r *tableRepo[T, PT, P]) Get(ctx context.Context, accountID, id string) (*T, error) {
	rows, err := r.client.Select(ctx, r.table, Filter{AccountID: accountID, Eq: Row{"id": id}})
	if err != nil {
		return nil, err
	}
	return r.one(rows)
}

// Create stamps and inserts a new record.
func (r *tableRepo[T, PT, P]) Create(ctx context.Context, accountID string, item *T) (*T, error) {
	created, err := r.CreateMany(ctx, accountID, []*T{item})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// CreateMany stamps and inserts several records in one transaction.
func (r *tableRepo[T, PT, P]) CreateMany(ctx context.Context, accountID string, items []*T) ([]*T, error) {
	if err := repository.CheckAccount(accountID); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []*T{}, nil
	}
	now := model.Now()
	rows := make([]Row, len(items))
	for i, item := range items {
		if err := PT(item).Meta().Stamp(accountID, now); err != nil {
			return nil, errs.StoreError(r.table+".create", err)
		}
		rows[i] = r.encode(item)
	}

	inserted, err := r.client.Insert(ctx, r.table, rows...)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(inserted))
	for _, row := range inserted {
		item, err := r.decode(row)
		if err != nil {
			return nil, errs.NewSystemErrorWithOp(r.table+".create", "malformed row", err)
		}
		out = append(out, item)
	}
	return out, nil
}

// Update writes the set patch fields and refreshes updated_at.
func (r *tableRepo[T, PT, P]) Update(ctx context.Context, accountID, id string, patch P) (*T, error) {
	set := Row(patch.Fields())
	set["updated_at"] = formatTime(model.Now())
	rows, err := r.client.Update(ctx, r.table, Filter{AccountID: accountID, Eq: Row{"id": id}}, set)
	if err != nil {
		return nil, err
	}
	return r.one(rows)
}

// Remove deletes a record if present.
func (r *tableRepo[T, PT, P]) Remove(ctx context.Context, accountID, id string) error {
	return r.client.Delete(ctx, r.table, Filter{AccountID: accountID, Eq: Row{"id": id}})
}

// ============================================================================
// Entity repositories
// ============================================================================

// CompanyRepo provides operations for Company rows.
type CompanyRepo struct {
	*tableRepo[model.Company, *model.Company, model.CompanyPatch]
}

// NewCompanyRepo creates a new company repository.
func NewCompanyRepo(c *Client) *CompanyRepo {
	return &CompanyRepo{newTableRepo[model.Company, *model.Company, model.CompanyPatch](
		c, errs.ErrCompanyNotFound, model.SortCompanies, encodeCompany, decodeCompany,
	)}
}

// ScheduleRepo provides operations for ScheduleBlock rows.
type ScheduleRepo struct {
	*tableRepo[model.ScheduleBlock, *model.ScheduleBlock, model.ScheduleBlockPatch]
}

// NewScheduleRepo creates a new schedule repository.
func NewScheduleRepo(c *Client) *ScheduleRepo {
	return &ScheduleRepo{newTableRepo[model.ScheduleBlock, *model.ScheduleBlock, model.ScheduleBlockPatch](
		c, errs.ErrScheduleBlockNotFound, model.SortScheduleBlocks, encodeScheduleBlock, decodeScheduleBlock,
	)}
}

// NonNegotiableRepo provides operations for NonNegotiable rows.
type NonNegotiableRepo struct {
	*tableRepo[model.NonNegotiable, *model.NonNegotiable, model.NonNegotiablePatch]
}

// NewNonNegotiableRepo creates a new checklist item repository.
func NewNonNegotiableRepo(c *Client) *NonNegotiableRepo {
	return &NonNegotiableRepo{newTableRepo[model.NonNegotiable, *model.NonNegotiable, model.NonNegotiablePatch](
		c, errs.ErrNonNegotiableNotFound, model.SortNonNegotiables, encodeNonNegotiable, decodeNonNegotiable,
	)}
}
