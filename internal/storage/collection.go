package storage

import (
	"context"

	badger "github.com/dgraph-io/badger/v4"
	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/repository"
)

// entityPtr is satisfied by pointers to the model structs.
type entityPtr[T any] interface {
	*T
	model.Entity
}

// patcher merges a partial update into a record.
type patcher[T any] interface {
	Apply(*T)
}

// collection implements repository.Repo for one table. Records live under
// "<table>:<account>:<id>" with escaped segments, so an account's records
// form one key range of their own.
type collection[T any, PT entityPtr[T], P patcher[T]] struct {
	db       *DB
	table    string
	notFound error
	sort     func([]*T)
}

func newCollection[T any, PT entityPtr[T], P patcher[T]](db *DB, notFound error, sort func([]*T)) *collection[T, PT, P] {
	return &collection[T, PT, P]{
		db:       db,
		table:    PT(new(T)).Table(),
		notFound: notFound,
		sort:     sort,
	}
}

func (c *collection[T, PT, P]) key(accountID, id string) string {
	return model.EntityKey(c.table, accountID, id)
}

// List returns every record of the account in canonical order.
func (c *collection[T, PT, P]) List(_ context.Context, accountID string) ([]*T, error) {
	if err := repository.CheckAccount(accountID); err != nil {
		return nil, err
	}
	items, err := GetAllByPrefix[T](c.db, model.AccountPrefix(c.table, accountID))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*T{}
	}
	c.sort(items)
	return items, nil
}

// Get returns one record by id.
func (c *collection[T, PT, P]) Get(_ context.Context, accountID, id string) (*T, error) {
	if err := repository.CheckAccount(accountID); err != nil {
		return nil, err
	}
	item, err := Get[T](c.db, c.key(accountID, id))
	if IsErrKeyNotFound(err) {
		return nil, c.notFound
	}
	return item, err
}

// Create stamps and stores a new record.
func (c *collection[T, PT, P]) Create(_ context.Context, accountID string, item *T) (*T, error) {
	if err := repository.CheckAccount(accountID); err != nil {
		return nil, err
	}
	if err := PT(item).Meta().Stamp(accountID, model.Now()); err != nil {
		return nil, errs.StoreError(c.table+".create", err)
	}
	if err := c.db.Set(c.key(accountID, PT(item).Meta().ID), item); err != nil {
		return nil, err
	}
	return item, nil
}

// CreateMany stamps and stores several records in one transaction.
func (c *collection[T, PT, P]) CreateMany(_ context.Context, accountID string, items []*T) ([]*T, error) {
	if err := repository.CheckAccount(accountID); err != nil {
		return nil, err
	}
	now := model.Now()
	for _, item := range items {
		if err := PT(item).Meta().Stamp(accountID, now); err != nil {
			return nil, errs.StoreError(c.table+".create", err)
		}
	}
	err := c.db.update(c.table+".create", func(txn *badger.Txn) error {
		for _, item := range items {
			if err := setIn(txn, c.key(accountID, PT(item).Meta().ID), item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Update merges patch into the stored record.
func (c *collection[T, PT, P]) Update(_ context.Context, accountID, id string, patch P) (*T, error) {
	if err := repository.CheckAccount(accountID); err != nil {
		return nil, err
	}
	return Mutate(c.db, c.key(accountID, id), func(cur *T, found bool) (*T, error) {
		if !found {
			return nil, c.notFound
		}
		patch.Apply(cur)
		PT(cur).Meta().Touch(model.Now())
		return cur, nil
	})
}

// Remove deletes a record if present.
func (c *collection[T, PT, P]) Remove(_ context.Context, accountID, id string) error {
	if err := repository.CheckAccount(accountID); err != nil {
		return err
	}
	return c.db.deleteIfExists(c.key(accountID, id))
}
