package storage

import (
	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/model"
)

// CompanyRepo provides operations for Company entities.
type CompanyRepo struct {
	*collection[model.Company, *model.Company, model.CompanyPatch]
}

// NewCompanyRepo creates a new company repository.
func NewCompanyRepo(db *DB) *CompanyRepo {
	return &CompanyRepo{
		collection: newCollection[model.Company, *model.Company, model.CompanyPatch](db, errs.ErrCompanyNotFound, model.SortCompanies),
	}
}

// ScheduleRepo provides operations for ScheduleBlock entities.
type ScheduleRepo struct {
	*collection[model.ScheduleBlock, *model.ScheduleBlock, model.ScheduleBlockPatch]
}

// NewScheduleRepo creates a new schedule repository.
func NewScheduleRepo(db *DB) *ScheduleRepo {
	return &ScheduleRepo{
		collection: newCollection[model.ScheduleBlock, *model.ScheduleBlock, model.ScheduleBlockPatch](db, errs.ErrScheduleBlockNotFound, model.SortScheduleBlocks),
	}
}

// NonNegotiableRepo provides operations for NonNegotiable entities.
type NonNegotiableRepo struct {
	*collection[model.NonNegotiable, *model.NonNegotiable, model.NonNegotiablePatch]
}

// NewNonNegotiableRepo creates a new checklist item repository.
func NewNonNegotiableRepo(db *DB) *NonNegotiableRepo {
	return &NonNegotiableRepo{
		collection: newCollection[model.NonNegotiable, *model.NonNegotiable, model.NonNegotiablePatch](db, errs.ErrNonNegotiableNotFound, model.SortNonNegotiables),
	}
}
