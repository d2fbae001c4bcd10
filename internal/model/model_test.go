package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Record Tests
// =============================================================================

func TestRecordStamp(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.FixedZone("EST", -5*3600))
	var r Record
	require.NoError(t, r.Stamp("acct-1", now))

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "acct-1", r.AccountID)
	assert.Equal(t, time.UTC, r.CreatedAt.Location())
	assert.True(t, r.CreatedAt.Equal(now))
	assert.Equal(t, r.CreatedAt, r.UpdatedAt)

	later := now.Add(time.Hour)
	r.Touch(later)
	assert.True(t, r.UpdatedAt.Equal(later))
	assert.True(t, r.CreatedAt.Equal(now))
}

func TestNewIDSortsByCreation(t *testing.T) {
	a, err := NewID()
	require.NoError(t, err)
	b, err := NewID()
	require.NoError(t, err)
	assert.Less(t, a, b)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "kpis:acct:", AccountPrefix(TableKPIs, "acct"))
	assert.Equal(t, "kpis:acct:id1", EntityKey(TableKPIs, "acct", "id1"))

	c := &Company{Record: Record{ID: "c1", AccountID: "acct"}}
	assert.Equal(t, "companies:acct:c1", KeyOf(c))

	assert.Equal(t, "daily_completions:acct:2026-03-14:item", CompletionKey("acct", "item", "2026-03-14"))
	assert.Equal(t, "seed_markers:acct", MarkerKey("acct"))

	t.Run("segments_are_escaped", func(t *testing.T) {
		assert.Equal(t, "companies:a%3Ab:c1", EntityKey(TableCompanies, "a:b", "c1"))
		assert.Equal(t, "companies:a:b%3Ac1", EntityKey(TableCompanies, "a", "b:c1"))
		assert.NotEqual(t, EntityKey(TableCompanies, "a:b", "c1"), EntityKey(TableCompanies, "a", "b:c1"))
		assert.False(t, strings.HasPrefix(EntityKey(TableCompanies, "a:b", "c1"), AccountPrefix(TableCompanies, "a")))
		assert.NotEqual(t, CompletionKey("a:b", "i", "d"), CompletionKey("a", "d:i", "b"))
		assert.Equal(t, "seed_markers:a%3Ab", MarkerKey("a:b"))
	})
}

// =============================================================================
// KPI Tests
// =============================================================================

func TestKPIProgress(t *testing.T) {
	k := &KPI{Current: 5, Target: 20}
	assert.InDelta(t, 25.0, k.Progress(), 0.001)
	assert.False(t, k.IsComplete())

	k.Current = 20
	assert.True(t, k.IsComplete())

	zero := &KPI{Current: 3}
	assert.Equal(t, 0.0, zero.Progress())
	assert.False(t, zero.IsComplete())
}

func TestClampedAdd(t *testing.T) {
	assert.Equal(t, 3.0, ClampedAdd(2, 1))
	assert.Equal(t, 0.0, ClampedAdd(0, -1))
	assert.Equal(t, 0.0, ClampedAdd(1, -5))
	assert.Equal(t, 1.5, ClampedAdd(2, -0.5))
}

func TestKPIPatch(t *testing.T) {
	label := "Gym sessions"
	target := 30.0
	p := KPIPatch{Label: &label, Target: &target}

	k := &KPI{Key: "gym", Label: "Gym", Target: 20, Current: 4}
	p.Apply(k)
	assert.Equal(t, "Gym sessions", k.Label)
	assert.Equal(t, 30.0, k.Target)
	assert.Equal(t, 4.0, k.Current)
	assert.Equal(t, "gym", k.Key)

	assert.Equal(t, map[string]any{"label": "Gym sessions", "target": 30.0}, p.Fields())
	assert.Empty(t, KPIPatch{}.Fields())
}

// =============================================================================
// Company Tests
// =============================================================================

func TestParseTier(t *testing.T) {
	tests := map[string]Tier{
		"T1A":     TierT1A,
		"t1b":     TierT1B,
		"Tier 1A": TierT1A,
		"tier-2":  TierT2,
		"1b":      TierT1B,
		" T2 ":    TierT2,
	}
	for in, want := range tests {
		got, err := ParseTier(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseTier("T3")
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus("interview")
	require.NoError(t, err)
	assert.Equal(t, StatusInterview, got)

	got, err = ParseStatus("LEAD")
	require.NoError(t, err)
	assert.Equal(t, StatusLead, got)

	_, err = ParseStatus("ghosted")
	assert.Error(t, err)
}

func TestTierRank(t *testing.T) {
	assert.Less(t, TierT1A.Rank(), TierT1B.Rank())
	assert.Less(t, TierT1B.Rank(), TierT2.Rank())
	assert.Equal(t, len(Tiers), Tier("T9").Rank())
}

func TestCompanyPatchFields(t *testing.T) {
	status := StatusApplied
	p := CompanyPatch{Status: &status}
	c := &Company{Name: "Citadel", Tier: TierT1A, Status: StatusLead}
	p.Apply(c)
	assert.Equal(t, StatusApplied, c.Status)
	assert.Equal(t, map[string]any{"status": "Applied"}, p.Fields())
}

// =============================================================================
// Schedule Tests
// =============================================================================

func TestParseDay(t *testing.T) {
	tests := map[string]int{
		"1":         Monday,
		"7":         Sunday,
		"mon":       Monday,
		"Wednesday": Wednesday,
		"sat":       Saturday,
	}
	for in, want := range tests {
		got, err := ParseDay(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"0", "8", "mo", "funday", ""} {
		_, err := ParseDay(bad)
		assert.Error(t, err, bad)
	}
}

func TestDayOf(t *testing.T) {
	assert.Equal(t, Sunday, DayOf(time.Sunday))
	assert.Equal(t, Monday, DayOf(time.Monday))
	assert.Equal(t, Saturday, DayOf(time.Saturday))
	assert.Equal(t, "Sunday", DayName(Sunday))
	assert.Equal(t, "9", DayName(9))
}

func TestParseCategory(t *testing.T) {
	got, err := ParseCategory(" Study ")
	require.NoError(t, err)
	assert.Equal(t, CategoryStudy, got)

	_, err = ParseCategory("nap")
	assert.Error(t, err)
}

func TestScheduleBlockPatchFields(t *testing.T) {
	start, end := "07:00", "08:00"
	p := ScheduleBlockPatch{Start: &start, End: &end}
	b := &ScheduleBlock{Day: Monday, Start: "06:00", End: "07:00"}
	p.Apply(b)
	assert.Equal(t, "07:00", b.Start)
	assert.Equal(t, "08:00", b.End)
	assert.Equal(t, map[string]any{"start_time": "07:00", "end_time": "08:00"}, p.Fields())
}

// =============================================================================
// Checklist Tests
// =============================================================================

func TestParseEventKind(t *testing.T) {
	k, err := ParseEventKind("Market-Review")
	require.NoError(t, err)
	assert.Equal(t, EventMarketReview, k)

	k, err = ParseEventKind("")
	require.NoError(t, err)
	assert.Equal(t, EventNone, k)

	_, err = ParseEventKind("nap")
	assert.Error(t, err)
}

func TestParseTimeOfDay(t *testing.T) {
	v, err := ParseTimeOfDay("Evening")
	require.NoError(t, err)
	assert.Equal(t, Evening, v)

	_, err = ParseTimeOfDay("noon")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", d)

	_, err = ParseDate("03/14/2026")
	assert.Error(t, err)
	_, err = ParseDate("2026-02-30")
	assert.Error(t, err)
}

func TestCompletionFlip(t *testing.T) {
	now := time.Date(2026, 3, 14, 7, 0, 0, 0, time.UTC)
	c := &DailyCompletion{Date: "2026-03-14", ItemID: "item"}

	c.Flip(now)
	assert.True(t, c.Completed)
	require.NotNil(t, c.CompletedAt)
	assert.True(t, c.CompletedAt.Equal(now))
	assert.True(t, c.UpdatedAt.Equal(now))

	c.Flip(now.Add(time.Minute))
	assert.False(t, c.Completed)
	assert.Nil(t, c.CompletedAt)
}

func TestSeedMarker(t *testing.T) {
	m := NewSeedMarker("acct", time.Now())
	assert.False(t, m.IsComplete())
	assert.False(t, m.HasTable(TableKPIs))

	m.AddTable(TableKPIs)
	m.AddTable(TableKPIs)
	assert.Equal(t, []string{TableKPIs}, m.Tables)
	assert.True(t, m.HasTable(TableKPIs))
}

// =============================================================================
// Sort Tests
// =============================================================================

func TestSortCompanies(t *testing.T) {
	items := []*Company{
		{Record: Record{ID: "1"}, Name: "zeta", Tier: TierT2},
		{Record: Record{ID: "2"}, Name: "Beta", Tier: TierT1A},
		{Record: Record{ID: "3"}, Name: "alpha", Tier: TierT1A},
		{Record: Record{ID: "4"}, Name: "Gamma", Tier: TierT1B},
	}
	SortCompanies(items)
	var names []string
	for _, c := range items {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"alpha", "Beta", "Gamma", "zeta"}, names)
}

func TestSortScheduleBlocks(t *testing.T) {
	items := []*ScheduleBlock{
		{Record: Record{ID: "a"}, Day: Tuesday, Start: "06:00"},
		{Record: Record{ID: "b"}, Day: Monday, Start: "09:00"},
		{Record: Record{ID: "c"}, Day: Monday, Start: "06:00"},
	}
	SortScheduleBlocks(items)
	assert.Equal(t, "c", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
	assert.Equal(t, "a", items[2].ID)
}

func TestSortNonNegotiables(t *testing.T) {
	items := []*NonNegotiable{
		{Record: Record{ID: "e1"}, TimeOfDay: Evening, Order: 1},
		{Record: Record{ID: "m2"}, TimeOfDay: Morning, Order: 2},
		{Record: Record{ID: "m1"}, TimeOfDay: Morning, Order: 1},
	}
	SortNonNegotiables(items)
	assert.Equal(t, "m1", items[0].ID)
	assert.Equal(t, "m2", items[1].ID)
	assert.Equal(t, "e1", items[2].ID)
}

func TestSortKPIs(t *testing.T) {
	items := []*KPI{
		{Record: Record{ID: "b"}, Phase: 2},
		{Record: Record{ID: "c"}, Phase: 1},
		{Record: Record{ID: "a"}, Phase: 1},
	}
	SortKPIs(items)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "c", items[1].ID)
	assert.Equal(t, "b", items[2].ID)
}
