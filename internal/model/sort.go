package model

import (
	"cmp"
	"slices"
	"strings"
)

// Canonical list orders shared by every repository implementation.
// Identifiers are UUID v7, so comparing them breaks ties by creation order.

// SortKPIs orders KPIs by phase, then creation.
func SortKPIs(items []*KPI) {
	slices.SortStableFunc(items, func(a, b *KPI) int {
		return cmp.Or(cmp.Compare(a.Phase, b.Phase), cmp.Compare(a.ID, b.ID))
	})
}

// SortCompanies orders companies by tier, then name.
func SortCompanies(items []*Company) {
	slices.SortStableFunc(items, func(a, b *Company) int {
		return cmp.Or(
			cmp.Compare(a.Tier.Rank(), b.Tier.Rank()),
			cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
			cmp.Compare(a.ID, b.ID),
		)
	})
}

// SortScheduleBlocks orders blocks by day, then start time.
func SortScheduleBlocks(items []*ScheduleBlock) {
	slices.SortStableFunc(items, func(a, b *ScheduleBlock) int {
		return cmp.Or(
			cmp.Compare(a.Day, b.Day),
			cmp.Compare(a.Start, b.Start),
			cmp.Compare(a.ID, b.ID),
		)
	})
}

// SortNonNegotiables orders items morning first, then by order index.
func SortNonNegotiables(items []*NonNegotiable) {
	slices.SortStableFunc(items, func(a, b *NonNegotiable) int {
		return cmp.Or(
			cmp.Compare(a.TimeOfDay.Rank(), b.TimeOfDay.Rank()),
			cmp.Compare(a.Order, b.Order),
			cmp.Compare(a.ID, b.ID),
		)
	})
}

// SortCompletions orders completions by date, then item.
func SortCompletions(items []*DailyCompletion) {
	slices.SortStableFunc(items, func(a, b *DailyCompletion) int {
		return cmp.Or(cmp.Compare(a.Date, b.Date), cmp.Compare(a.ItemID, b.ItemID))
	})
}
