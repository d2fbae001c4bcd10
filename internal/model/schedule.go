package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Days of the week follow ISO-8601: Monday is 1 and Sunday is 7.
const (
	Monday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayName returns the English name of an ISO day, or the number when out of range.
func DayName(day int) string {
	if day < Monday || day > Sunday {
		return strconv.Itoa(day)
	}
	return dayNames[day-1]
}

// DayOf converts a Go weekday (Sunday = 0) to an ISO day.
func DayOf(w time.Weekday) int {
	if w == time.Sunday {
		return Sunday
	}
	return int(w)
}

// ParseDay accepts an ISO day number or a day name ("mon", "Monday").
func ParseDay(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < Monday || n > Sunday {
			return 0, fmt.Errorf("day %d out of range 1-7", n)
		}
		return n, nil
	}
	lower := strings.ToLower(s)
	if len(lower) >= 3 {
		for i, name := range dayNames {
			if strings.HasPrefix(strings.ToLower(name), lower) {
				return i + 1, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown day %q", s)
}

// Category tags what a schedule block is for.
type Category string

const (
	CategoryGym     Category = "gym"
	CategoryMarket  Category = "market"
	CategoryStudy   Category = "study"
	CategoryNetwork Category = "network"
	CategoryContent Category = "content"
	CategoryMeal    Category = "meal"
	CategoryFamily  Category = "family"
)

// Categories lists all schedule categories.
var Categories = []Category{
	CategoryGym, CategoryMarket, CategoryStudy, CategoryNetwork,
	CategoryContent, CategoryMeal, CategoryFamily,
}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	norm := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, c := range Categories {
		if c == norm {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// ScheduleBlock is one slot of the weekly schedule.
type ScheduleBlock struct {
	Record
	Day      int      `json:"day"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Category Category `json:"category"`
	Title    string   `json:"title"`
	Details  string   `json:"details,omitempty"`
}

// Table returns the schedule block table name.
func (*ScheduleBlock) Table() string {
	return TableScheduleBlocks
}

// ScheduleBlockPatch holds the fields to change on a ScheduleBlock.
type ScheduleBlockPatch struct {
	Day      *int
	Start    *string
	End      *string
	Category *Category
	Title    *string
	Details  *string
}

// Apply merges the patch into b.
func (p ScheduleBlockPatch) Apply(b *ScheduleBlock) {
	if p.Day != nil {
		b.Day = *p.Day
	}
	if p.Start != nil {
		b.Start = *p.Start
	}
	if p.End != nil {
		b.End = *p.End
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Details != nil {
		b.Details = *p.Details
	}
}

// Fields returns the set fields keyed by column name.
func (p ScheduleBlockPatch) Fields() map[string]any {
	f := make(map[string]any)
	if p.Day != nil {
		f["day"] = *p.Day
	}
	if p.Start != nil {
		f["start_time"] = *p.Start
	}
	if p.End != nil {
		f["end_time"] = *p.End
	}
	if p.Category != nil {
		f["category"] = string(*p.Category)
	}
	if p.Title != nil {
		f["title"] = *p.Title
	}
	if p.Details != nil {
		f["details"] = *p.Details
	}
	return f
}
