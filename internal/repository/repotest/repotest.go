// Package repotest runs the same behavioural checks against every
// repository.Store implementation.
package repotest

import (
	"context"
	"sync"
	"testing"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store. It registers its own cleanup on t.
type Factory func(t *testing.T) *repository.Store

const (
	acctA = "acct-a"
	acctB = "acct-b"
	date  = "2026-03-14"
)

// Run executes the conformance suite against stores built by open.
func Run(t *testing.T, open Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s *repository.Store)
	}{
		{"create_list_round_trip", testCreateListRoundTrip},
		{"account_isolation", testAccountIsolation},
		{"nested_account_isolation", testNestedAccountIsolation},
		{"account_required", testAccountRequired},
		{"partial_update", testPartialUpdate},
		{"update_missing", testUpdateMissing},
		{"remove_idempotent", testRemoveIdempotent},
		{"create_many", testCreateMany},
		{"canonical_order", testCanonicalOrder},
		{"end_before_start_accepted", testEndBeforeStartAccepted},
		{"company_status_scenario", testCompanyStatusScenario},
		{"non_negotiable_fields", testNonNegotiableFields},
		{"toggle_alternation", testToggleAlternation},
		{"toggle_concurrent", testToggleConcurrent},
		{"completion_remove", testCompletionRemove},
		{"kpi_adjust_clamps", testKPIAdjustClamps},
		{"kpi_adjust_concurrent", testKPIAdjustConcurrent},
		{"markers", testMarkers},
		{"marker_claim_concurrent", testMarkerClaimConcurrent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, open(t))
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}

// ============================================================================
// Generic repository behaviour
// ============================================================================

func testCreateListRoundTrip(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	in := &model.Company{Name: "Citadel", Tier: model.TierT1A, Status: model.StatusLead, Notes: "quant"}
	in.AccountID = "someone-else"

	created, err := s.Companies.Create(ctx, acctA, in)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, acctA, created.AccountID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	list, err := s.Companies.List(ctx, acctA)
	require.NoError(t, err)
	require.Len(t, list, 1)
	got := list[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Citadel", got.Name)
	assert.Equal(t, model.TierT1A, got.Tier)
	assert.Equal(t, model.StatusLead, got.Status)
	assert.Equal(t, "quant", got.Notes)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

	one, err := s.Companies.Get(ctx, acctA, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Citadel", one.Name)
}

func testAccountIsolation(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	k, err := s.KPIs.Create(ctx, acctA, &model.KPI{Phase: 1, Key: "gym", Label: "Gym", Target: 20})
	require.NoError(t, err)

	list, err := s.KPIs.List(ctx, acctB)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = s.KPIs.Get(ctx, acctB, k.ID)
	assert.True(t, errs.IsNotFound(err))

	_, err = s.KPIs.Update(ctx, acctB, k.ID, model.KPIPatch{Label: ptr("hijack")})
	assert.True(t, errs.IsNotFound(err))

	require.NoError(t, s.KPIs.Remove(ctx, acctB, k.ID))
	still, err := s.KPIs.Get(ctx, acctA, k.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gym", still.Label)

	_, err = s.KPIs.Adjust(ctx, acctB, "gym", 1)
	assert.True(t, errs.IsNotFound(err))
}

// testNestedAccountIsolation uses account ids where one is a prefix of the
// other up to a ':' and record ids that carry the rest of the longer one.
func testNestedAccountIsolation(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	const outer, inner = "a", "a:b"

	victim, err := s.Companies.Create(ctx, inner, &model.Company{Name: "Victim", Tier: model.TierT1A, Status: model.StatusLead})
	require.NoError(t, err)
	crafted := "b:" + victim.ID

	list, err := s.Companies.List(ctx, outer)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = s.Companies.Get(ctx, outer, crafted)
	assert.True(t, errs.IsNotFound(err))

	_, err = s.Companies.Update(ctx, outer, crafted, model.CompanyPatch{Name: ptr("Hijacked")})
	assert.True(t, errs.IsNotFound(err))

	require.NoError(t, s.Companies.Remove(ctx, outer, crafted))

	kept, err := s.Companies.List(ctx, inner)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "Victim", kept[0].Name)

	t.Run("completions", func(t *testing.T) {
		done, err := s.Completions.Toggle(ctx, inner, "item", date)
		require.NoError(t, err)
		require.True(t, done.Completed)

		// Same raw key text as the inner account's completion when segments are joined unescaped.
		mine, err := s.Completions.Toggle(ctx, outer, date+":item", "b")
		require.NoError(t, err)
		assert.True(t, mine.Completed)
		assert.Equal(t, outer, mine.AccountID)
		assert.NotEqual(t, done.ID, mine.ID)

		_, err = s.Completions.Get(ctx, outer, "item", date)
		assert.ErrorIs(t, err, errs.ErrCompletionNotFound)

		require.NoError(t, s.Completions.Remove(ctx, outer, date+":item", "b"))

		still, err := s.Completions.Get(ctx, inner, "item", date)
		require.NoError(t, err)
		assert.True(t, still.Completed)
		assert.Equal(t, inner, still.AccountID)

		outerAll, err := s.Completions.List(ctx, outer)
		require.NoError(t, err)
		assert.Empty(t, outerAll)
	})

	t.Run("markers", func(t *testing.T) {
		_, created, err := s.Markers.Claim(ctx, inner)
		require.NoError(t, err)
		assert.True(t, created)

		_, err = s.Markers.Get(ctx, outer)
		assert.ErrorIs(t, err, errs.ErrMarkerNotFound)
	})
}

func testAccountRequired(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	_, err := s.Companies.List(ctx, "")
	assert.ErrorIs(t, err, errs.ErrAccountRequired)
	_, err = s.Schedule.Create(ctx, " ", &model.ScheduleBlock{})
	assert.ErrorIs(t, err, errs.ErrAccountRequired)
	_, err = s.Completions.Toggle(ctx, "", "item", date)
	assert.ErrorIs(t, err, errs.ErrAccountRequired)
	_, _, err = s.Markers.Claim(ctx, "")
	assert.ErrorIs(t, err, errs.ErrAccountRequired)
}

func testPartialUpdate(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	b, err := s.Schedule.Create(ctx, acctA, &model.ScheduleBlock{
		Day: model.Monday, Start: "06:00", End: "07:00", Category: model.CategoryGym, Title: "Gym", Details: "legs",
	})
	require.NoError(t, err)

	updated, err := s.Schedule.Update(ctx, acctA, b.ID, model.ScheduleBlockPatch{Title: ptr("Lift")})
	require.NoError(t, err)
	assert.Equal(t, "Lift", updated.Title)
	assert.Equal(t, "06:00", updated.Start)
	assert.Equal(t, "07:00", updated.End)
	assert.Equal(t, "legs", updated.Details)
	assert.Equal(t, model.CategoryGym, updated.Category)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	got, err := s.Schedule.Get(ctx, acctA, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lift", got.Title)
	assert.Equal(t, model.Monday, got.Day)
	assert.Equal(t, "legs", got.Details)
}

func testUpdateMissing(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	_, err := s.Companies.Update(ctx, acctA, "missing", model.CompanyPatch{Name: ptr("x")})
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.ErrorIs(t, err, errs.ErrCompanyNotFound)

	_, err = s.NonNegotiables.Get(ctx, acctA, "missing")
	assert.ErrorIs(t, err, errs.ErrNonNegotiableNotFound)
}

func testRemoveIdempotent(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	c, err := s.Companies.Create(ctx, acctA, &model.Company{Name: "Jane Street", Tier: model.TierT1A, Status: model.StatusLead})
	require.NoError(t, err)

	require.NoError(t, s.Companies.Remove(ctx, acctA, c.ID))
	require.NoError(t, s.Companies.Remove(ctx, acctA, c.ID))
	require.NoError(t, s.Companies.Remove(ctx, acctA, "never-existed"))

	_, err = s.Companies.Get(ctx, acctA, c.ID)
	assert.True(t, errs.IsNotFound(err))

	list, err := s.Companies.List(ctx, acctA)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func testCreateMany(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	items := []*model.NonNegotiable{
		{TimeOfDay: model.Morning, Text: "Gym", Minutes: 60, Order: 1, Event: model.EventWorkout},
		{TimeOfDay: model.Evening, Text: "Journal", Minutes: 10, Order: 1},
	}
	created, err := s.NonNegotiables.CreateMany(ctx, acctA, items)
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.NotEqual(t, created[0].ID, created[1].ID)

	list, err := s.NonNegotiables.List(ctx, acctA)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func testCanonicalOrder(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	for _, b := range []*model.ScheduleBlock{
		{Day: model.Tuesday, Start: "06:00", End: "07:00", Category: model.CategoryGym, Title: "c"},
		{Day: model.Monday, Start: "09:00", End: "11:00", Category: model.CategoryStudy, Title: "b"},
		{Day: model.Monday, Start: "06:00", End: "07:00", Category: model.CategoryGym, Title: "a"},
	} {
		_, err := s.Schedule.Create(ctx, acctA, b)
		require.NoError(t, err)
	}
	blocks, err := s.Schedule.List(ctx, acctA)
	require.NoError(t, err)
	require.Len(t, blocks, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{blocks[0].Title, blocks[1].Title, blocks[2].Title})

	for _, c := range []*model.Company{
		{Name: "Fidelity Investments", Tier: model.TierT2, Status: model.StatusLead},
		{Name: "two sigma", Tier: model.TierT1B, Status: model.StatusLead},
		{Name: "Citadel", Tier: model.TierT1A, Status: model.StatusLead},
		{Name: "BlackRock", Tier: model.TierT1B, Status: model.StatusLead},
	} {
		_, err := s.Companies.Create(ctx, acctA, c)
		require.NoError(t, err)
	}
	companies, err := s.Companies.List(ctx, acctA)
	require.NoError(t, err)
	var names []string
	for _, c := range companies {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Citadel", "BlackRock", "two sigma", "Fidelity Investments"}, names)
}

func testEndBeforeStartAccepted(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	b, err := s.Schedule.Create(ctx, acctA, &model.ScheduleBlock{
		Day: model.Friday, Start: "10:00", End: "09:00", Category: model.CategoryMeal, Title: "Backwards",
	})
	require.NoError(t, err)

	got, err := s.Schedule.Get(ctx, acctA, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "10:00", got.Start)
	assert.Equal(t, "09:00", got.End)
}

func testCompanyStatusScenario(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	c, err := s.Companies.Create(ctx, acctA, &model.Company{Name: "Point72", Tier: model.TierT1B, Status: model.StatusLead})
	require.NoError(t, err)

	for _, st := range []model.Status{model.StatusApplied, model.StatusInterview} {
		_, err = s.Companies.Update(ctx, acctA, c.ID, model.CompanyPatch{Status: ptr(st)})
		require.NoError(t, err)
	}

	list, err := s.Companies.List(ctx, acctA)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.StatusInterview, list[0].Status)
	assert.Equal(t, "Point72", list[0].Name)
	assert.Equal(t, model.TierT1B, list[0].Tier)
}

func testNonNegotiableFields(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	n, err := s.NonNegotiables.Create(ctx, acctA, &model.NonNegotiable{
		TimeOfDay: model.Morning, Text: "CMT Study", Minutes: 90, Order: 3, Event: model.EventStudy,
	})
	require.NoError(t, err)

	got, err := s.NonNegotiables.Get(ctx, acctA, n.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Morning, got.TimeOfDay)
	assert.Equal(t, "CMT Study", got.Text)
	assert.Equal(t, 90, got.Minutes)
	assert.Equal(t, 3, got.Order)
	assert.Equal(t, model.EventStudy, got.Event)

	updated, err := s.NonNegotiables.Update(ctx, acctA, n.ID, model.NonNegotiablePatch{Event: ptr(model.EventNone)})
	require.NoError(t, err)
	assert.Equal(t, model.EventNone, updated.Event)
	assert.Equal(t, 90, updated.Minutes)
}

// ============================================================================
// Completions
// ============================================================================

func testToggleAlternation(t *testing.T, s *repository.Store) {
	ctx := context.Background()

	_, err := s.Completions.Get(ctx, acctA, "item-1", date)
	assert.ErrorIs(t, err, errs.ErrCompletionNotFound)

	c, err := s.Completions.Toggle(ctx, acctA, "item-1", date)
	require.NoError(t, err)
	assert.True(t, c.Completed)
	require.NotNil(t, c.CompletedAt)
	assert.Equal(t, acctA, c.AccountID)
	assert.Equal(t, date, c.Date)
	assert.Equal(t, "item-1", c.ItemID)
	firstID := c.ID

	c, err = s.Completions.Toggle(ctx, acctA, "item-1", date)
	require.NoError(t, err)
	assert.False(t, c.Completed)
	assert.Nil(t, c.CompletedAt)
	assert.Equal(t, firstID, c.ID)

	c, err = s.Completions.Toggle(ctx, acctA, "item-1", date)
	require.NoError(t, err)
	assert.True(t, c.Completed)

	got, err := s.Completions.Get(ctx, acctA, "item-1", date)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	require.NotNil(t, got.CompletedAt)

	byDate, err := s.Completions.ListByDate(ctx, acctA, date)
	require.NoError(t, err)
	assert.Len(t, byDate, 1)

	_, err = s.Completions.Toggle(ctx, acctA, "item-1", "2026-03-15")
	require.NoError(t, err)
	all, err := s.Completions.List(ctx, acctA)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, date, all[0].Date)

	other, err := s.Completions.ListByDate(ctx, acctB, date)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func testToggleConcurrent(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	const n = 9

	var wg sync.WaitGroup
	errCh := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Completions.Toggle(ctx, acctA, "item-x", date); err != nil {
				errCh <- err
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	list, err := s.Completions.ListByDate(ctx, acctA, date)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Completed, "an odd number of toggles leaves the item done")
}

func testCompletionRemove(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	_, err := s.Completions.Toggle(ctx, acctA, "item-1", date)
	require.NoError(t, err)

	require.NoError(t, s.Completions.Remove(ctx, acctA, "item-1", date))
	require.NoError(t, s.Completions.Remove(ctx, acctA, "item-1", date))

	_, err = s.Completions.Get(ctx, acctA, "item-1", date)
	assert.True(t, errs.IsNotFound(err))
}

// ============================================================================
// KPIs
// ============================================================================

func testKPIAdjustClamps(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	_, err := s.KPIs.Create(ctx, acctA, &model.KPI{Phase: 1, Key: "cmt-study", Label: "CMT study hours", Current: 1, Target: 100, Unit: "h"})
	require.NoError(t, err)

	k, err := s.KPIs.Adjust(ctx, acctA, "cmt-study", -5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, k.Current)

	k, err = s.KPIs.Adjust(ctx, acctA, "cmt-study", 2.5)
	require.NoError(t, err)
	assert.Equal(t, 2.5, k.Current)

	got, err := s.KPIs.GetByKey(ctx, acctA, "cmt-study")
	require.NoError(t, err)
	assert.Equal(t, 2.5, got.Current)
	assert.Equal(t, 100.0, got.Target)
	assert.Equal(t, "h", got.Unit)

	_, err = s.KPIs.Adjust(ctx, acctA, "missing", 1)
	assert.ErrorIs(t, err, errs.ErrKPINotFound)
	_, err = s.KPIs.GetByKey(ctx, acctA, "missing")
	assert.ErrorIs(t, err, errs.ErrKPINotFound)
}

func testKPIAdjustConcurrent(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	_, err := s.KPIs.Create(ctx, acctA, &model.KPI{Phase: 2, Key: "applications", Label: "Applications", Target: 50})
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	errCh := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.KPIs.Adjust(ctx, acctA, "applications", 1); err != nil {
				errCh <- err
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	k, err := s.KPIs.GetByKey(ctx, acctA, "applications")
	require.NoError(t, err)
	assert.Equal(t, float64(n), k.Current)
}

// ============================================================================
// Seed markers
// ============================================================================

func testMarkers(t *testing.T, s *repository.Store) {
	ctx := context.Background()

	_, err := s.Markers.Get(ctx, acctA)
	assert.ErrorIs(t, err, errs.ErrMarkerNotFound)

	_, err = s.Markers.MarkTable(ctx, acctA, model.TableKPIs)
	assert.True(t, errs.IsNotFound(err))

	m, created, err := s.Markers.Claim(ctx, acctA)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Empty(t, m.Tables)
	assert.False(t, m.IsComplete())

	m, created, err = s.Markers.Claim(ctx, acctA)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, acctA, m.AccountID)

	_, err = s.Markers.MarkTable(ctx, acctA, model.TableKPIs)
	require.NoError(t, err)
	m, err = s.Markers.MarkTable(ctx, acctA, model.TableKPIs)
	require.NoError(t, err)
	assert.Equal(t, []string{model.TableKPIs}, m.Tables)

	m, err = s.Markers.Complete(ctx, acctA)
	require.NoError(t, err)
	assert.True(t, m.IsComplete())

	got, err := s.Markers.Get(ctx, acctA)
	require.NoError(t, err)
	assert.True(t, got.IsComplete())
	assert.True(t, got.HasTable(model.TableKPIs))

	_, err = s.Markers.Get(ctx, acctB)
	assert.True(t, errs.IsNotFound(err))
}

func testMarkerClaimConcurrent(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	const n = 8

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, created, err := s.Markers.Claim(ctx, acctA)
			assert.NoError(t, err)
			if created {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, winners)
}
