package seed

import "github.com/manav03panchal/careeros/internal/model"

// Dataset is the default content a new account starts with.
type Dataset struct {
	KPIs           []*model.KPI
	Companies      []*model.Company
	Schedule       []*model.ScheduleBlock
	NonNegotiables []*model.NonNegotiable
}

// Defaults returns a fresh copy of the default dataset. Records carry no id or
// account until a repository stamps them.
func Defaults() Dataset {
	return Dataset{
		KPIs:           defaultKPIs(),
		Companies:      defaultCompanies(),
		Schedule:       defaultSchedule(),
		NonNegotiables: defaultNonNegotiables(),
	}
}

// Count returns the number of default records for table.
func (d Dataset) Count(table string) int {
	switch table {
	case model.TableKPIs:
		return len(d.KPIs)
	case model.TableCompanies:
		return len(d.Companies)
	case model.TableScheduleBlocks:
		return len(d.Schedule)
	case model.TableNonNegotiables:
		return len(d.NonNegotiables)
	}
	return 0
}

func defaultKPIs() []*model.KPI {
	return []*model.KPI{
		{Phase: 1, Key: "cmt-study", Label: "CMT study sessions", Target: 60, Unit: "sessions"},
		{Phase: 1, Key: "gym", Label: "Gym sessions", Target: 48, Unit: "sessions"},
		{Phase: 1, Key: "market-reviews", Label: "Market reviews", Target: 60, Unit: "reviews"},
		{Phase: 2, Key: "applications", Label: "Applications sent", Target: 100, Unit: "applications"},
		{Phase: 2, Key: "networking", Label: "Networking outreach", Target: 60, Unit: "messages"},
		{Phase: 2, Key: "content", Label: "Content posts", Target: 24, Unit: "posts"},
		{Phase: 3, Key: "interviews", Label: "Interviews", Target: 10, Unit: "interviews"},
		{Phase: 3, Key: "offers", Label: "Offers", Target: 1, Unit: "offers"},
	}
}

func defaultCompanies() []*model.Company {
	tiers := []struct {
		tier  model.Tier
		names []string
	}{
		{model.TierT1A, []string{"Goldman Sachs", "Morgan Stanley", "J.P. Morgan", "Citadel", "Jane Street"}},
		{model.TierT1B, []string{"BlackRock", "Bridgewater Associates", "Two Sigma", "Point72", "Millennium"}},
		{model.TierT2, []string{"Fidelity Investments", "Charles Schwab", "Raymond James", "Wells Fargo", "Barclays"}},
	}

	var out []*model.Company
	for _, t := range tiers {
		for _, name := range t.names {
			out = append(out, &model.Company{Name: name, Tier: t.tier, Status: model.StatusLead})
		}
	}
	return out
}

func defaultSchedule() []*model.ScheduleBlock {
	var out []*model.ScheduleBlock
	for day := model.Monday; day <= model.Friday; day++ {
		out = append(out,
			&model.ScheduleBlock{Day: day, Start: "06:00", End: "07:00", Category: model.CategoryGym, Title: "Gym"},
			&model.ScheduleBlock{Day: day, Start: "07:00", End: "07:30", Category: model.CategoryMarket, Title: "Market review", Details: "Overnight moves, futures, economic calendar"},
			&model.ScheduleBlock{Day: day, Start: "09:00", End: "11:00", Category: model.CategoryStudy, Title: "CMT study"},
			&model.ScheduleBlock{Day: day, Start: "12:00", End: "12:45", Category: model.CategoryMeal, Title: "Lunch"},
			&model.ScheduleBlock{Day: day, Start: "17:00", End: "18:00", Category: model.CategoryNetwork, Title: "Applications and outreach"},
		)
	}
	out = append(out,
		&model.ScheduleBlock{Day: model.Saturday, Start: "08:00", End: "09:00", Category: model.CategoryGym, Title: "Long workout"},
		&model.ScheduleBlock{Day: model.Saturday, Start: "10:00", End: "12:00", Category: model.CategoryContent, Title: "Write and post content"},
		&model.ScheduleBlock{Day: model.Sunday, Start: "12:00", End: "14:00", Category: model.CategoryFamily, Title: "Family lunch"},
		&model.ScheduleBlock{Day: model.Sunday, Start: "18:00", End: "19:00", Category: model.CategoryStudy, Title: "Weekly review", Details: "Review KPIs and plan the week"},
	)
	return out
}

func defaultNonNegotiables() []*model.NonNegotiable {
	return []*model.NonNegotiable{
		{TimeOfDay: model.Morning, Order: 1, Text: "Gym", Minutes: 60, Event: model.EventWorkout},
		{TimeOfDay: model.Morning, Order: 2, Text: "Market Review", Minutes: 30, Event: model.EventMarketReview},
		{TimeOfDay: model.Morning, Order: 3, Text: "CMT Study", Minutes: 90, Event: model.EventStudy},
		{TimeOfDay: model.Morning, Order: 4, Text: "Plan the day", Minutes: 10},
		{TimeOfDay: model.Evening, Order: 1, Text: "Send 2 Applications", Minutes: 45, Event: model.EventApplication},
		{TimeOfDay: model.Evening, Order: 2, Text: "Networking Outreach", Minutes: 30, Event: model.EventOutreach},
		{TimeOfDay: model.Evening, Order: 3, Text: "Post Content", Minutes: 30, Event: model.EventContent},
		{TimeOfDay: model.Evening, Order: 4, Text: "Journal", Minutes: 10},
	}
}
