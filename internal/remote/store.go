package remote

import "github.com/manav03panchal/careeros/internal/repository"

// NewStore builds every repository on top of one remote client.
func NewStore(c *Client) *repository.Store {
	return &repository.Store{
		KPIs:           NewKPIRepo(c),
		Companies:      NewCompanyRepo(c),
		Schedule:       NewScheduleRepo(c),
		NonNegotiables: NewNonNegotiableRepo(c),
		Completions:    NewCompletionRepo(c),
		Markers:        NewMarkerRepo(c),
	}
}
