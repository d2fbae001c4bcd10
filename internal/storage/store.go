package storage

import "github.com/manav03panchal/careeros/internal/repository"

// NewStore builds every repository on top of one key-value database.
func NewStore(db *DB) *repository.Store {
	return &repository.Store{
		KPIs:           NewKPIRepo(db),
		Companies:      NewCompanyRepo(db),
		Schedule:       NewScheduleRepo(db),
		NonNegotiables: NewNonNegotiableRepo(db),
		Completions:    NewCompletionRepo(db),
		Markers:        NewMarkerRepo(db),
	}
}
