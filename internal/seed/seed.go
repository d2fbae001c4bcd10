// Package seed populates a new account with the default dataset exactly once.
package seed

import (
	"context"
	"slices"
	"sync"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/logging"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/repository"
)

// AccountLocks serializes work per account within one process.
type AccountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewAccountLocks creates an empty lock set.
func NewAccountLocks() *AccountLocks {
	return &AccountLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock blocks until the account's lock is held and returns its release func.
func (l *AccountLocks) Lock(accountID string) func() {
	l.mu.Lock()
	m, ok := l.locks[accountID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[accountID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// Result describes what one Bootstrap call did.
type Result struct {
	// Seeded is true when this call finished seeding the account.
	Seeded bool
	// Tables lists the tables whose defaults this call inserted.
	Tables []string
	// Adopted lists tables that already held records and were left as they were.
	Adopted []string
}

// Service seeds accounts.
type Service struct {
	store    *repository.Store
	locks    *AccountLocks
	defaults func() Dataset
}

// NewService creates a seed service over store.
func NewService(store *repository.Store) *Service {
	return &Service{
		store:    store,
		locks:    NewAccountLocks(),
		defaults: Defaults,
	}
}

// Bootstrap inserts the default dataset for an account that has not been seeded.
// It is safe to call on every start: a completed account is left untouched and
// an interrupted one resumes with the tables it is missing.
func (s *Service) Bootstrap(ctx context.Context, accountID string) (Result, error) {
	unlock := s.locks.Lock(accountID)
	defer unlock()

	marker, created, err := s.store.Markers.Claim(ctx, accountID)
	if err != nil {
		return Result{}, err
	}
	if marker.IsComplete() {
		return Result{}, nil
	}
	logging.DebugContext(ctx, "seeding account", logging.KeyAccount, accountID, "resumed", !created)

	var res Result
	done := slices.Clone(marker.Tables)
	ds := s.defaults()

	for _, table := range model.SeedTables {
		if marker.HasTable(table) {
			continue
		}

		// Records written before the marker existed, or by a run that stopped
		// before MarkTable, count as seeded.
		n, err := s.count(ctx, accountID, table)
		if err != nil {
			return res, seedError(accountID, done, table, err)
		}
		if n > 0 {
			res.Adopted = append(res.Adopted, table)
		} else {
			if err := s.insert(ctx, accountID, table, ds); err != nil {
				return res, seedError(accountID, done, table, err)
			}
			res.Tables = append(res.Tables, table)
		}

		if _, err := s.store.Markers.MarkTable(ctx, accountID, table); err != nil {
			return res, seedError(accountID, done, table, err)
		}
		done = append(done, table)
	}

	if _, err := s.store.Markers.Complete(ctx, accountID); err != nil {
		return res, seedError(accountID, done, model.TableSeedMarkers, err)
	}

	res.Seeded = true
	logging.InfoContext(ctx, "account seeded",
		logging.KeyAccount, accountID,
		logging.KeyCount, len(res.Tables),
		"adopted", len(res.Adopted),
	)
	return res, nil
}

// Reseed inserts one table's defaults again, regardless of existing records.
// It returns the number of records inserted.
func (s *Service) Reseed(ctx context.Context, accountID, table string) (int, error) {
	if !slices.Contains(model.SeedTables, table) {
		return 0, errs.NewUserErrorWithField("table", table, "cannot reseed table", "").WithCause(errs.ErrUnknownTable)
	}

	unlock := s.locks.Lock(accountID)
	defer unlock()

	if _, _, err := s.store.Markers.Claim(ctx, accountID); err != nil {
		return 0, err
	}
	ds := s.defaults()
	if err := s.insert(ctx, accountID, table, ds); err != nil {
		return 0, err
	}
	if _, err := s.store.Markers.MarkTable(ctx, accountID, table); err != nil {
		return 0, err
	}

	logging.InfoContext(ctx, "table reseeded", logging.KeyAccount, accountID, logging.KeyTable, table, logging.KeyCount, ds.Count(table))
	return ds.Count(table), nil
}

// Status returns the account's seed marker.
func (s *Service) Status(ctx context.Context, accountID string) (*model.SeedMarker, error) {
	return s.store.Markers.Get(ctx, accountID)
}

func (s *Service) insert(ctx context.Context, accountID, table string, ds Dataset) error {
	var err error
	switch table {
	case model.TableKPIs:
		_, err = s.store.KPIs.CreateMany(ctx, accountID, ds.KPIs)
	case model.TableCompanies:
		_, err = s.store.Companies.CreateMany(ctx, accountID, ds.Companies)
	case model.TableScheduleBlocks:
		_, err = s.store.Schedule.CreateMany(ctx, accountID, ds.Schedule)
	case model.TableNonNegotiables:
		_, err = s.store.NonNegotiables.CreateMany(ctx, accountID, ds.NonNegotiables)
	default:
		err = errs.ErrUnknownTable
	}
	return err
}

func (s *Service) count(ctx context.Context, accountID, table string) (int, error) {
	switch table {
	case model.TableKPIs:
		items, err := s.store.KPIs.List(ctx, accountID)
		return len(items), err
	case model.TableCompanies:
		items, err := s.store.Companies.List(ctx, accountID)
		return len(items), err
	case model.TableScheduleBlocks:
		items, err := s.store.Schedule.List(ctx, accountID)
		return len(items), err
	case model.TableNonNegotiables:
		items, err := s.store.NonNegotiables.List(ctx, accountID)
		return len(items), err
	}
	return 0, errs.ErrUnknownTable
}

func seedError(accountID string, done []string, failed string, cause error) error {
	logging.Warn("seeding stopped", logging.KeyAccount, accountID, logging.KeyTable, failed, logging.KeyError, cause)
	return &errs.SeedError{
		AccountID: accountID,
		Done:      slices.Clone(done),
		Failed:    failed,
		Cause:     cause,
	}
}
