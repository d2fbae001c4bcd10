package model

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay places a non-negotiable in the morning or evening routine.
type TimeOfDay string

const (
	Morning TimeOfDay = "morning"
	Evening TimeOfDay = "evening"
)

// Rank orders morning before evening.
func (t TimeOfDay) Rank() int {
	switch t {
	case Morning:
		return 0
	case Evening:
		return 1
	default:
		return 2
	}
}

// ParseTimeOfDay validates a time-of-day value.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	switch TimeOfDay(strings.ToLower(strings.TrimSpace(s))) {
	case Morning:
		return Morning, nil
	case Evening:
		return Evening, nil
	}
	return "", fmt.Errorf("unknown time of day %q", s)
}

// EventKind tags a checklist item with the KPI event it produces when completed.
type EventKind string

const (
	EventNone         EventKind = ""
	EventStudy        EventKind = "study"
	EventApplication  EventKind = "application"
	EventOutreach     EventKind = "outreach"
	EventWorkout      EventKind = "workout"
	EventContent      EventKind = "content"
	EventMarketReview EventKind = "market-review"
)

// EventKinds lists every event kind that maps to a KPI.
var EventKinds = []EventKind{
	EventStudy, EventApplication, EventOutreach, EventWorkout, EventContent, EventMarketReview,
}

// ParseEventKind validates an event kind. The empty string means no event.
func ParseEventKind(s string) (EventKind, error) {
	norm := EventKind(strings.ToLower(strings.TrimSpace(s)))
	if norm == EventNone {
		return EventNone, nil
	}
	for _, k := range EventKinds {
		if k == norm {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown event kind %q", s)
}

// NonNegotiable is a recurring daily checklist item.
type NonNegotiable struct {
	Record
	TimeOfDay TimeOfDay `json:"time_of_day"`
	Text      string    `json:"text"`
	Minutes   int       `json:"minutes"`
	Order     int       `json:"order_index"`
	Event     EventKind `json:"event,omitempty"`
}

// Table returns the non-negotiable table name.
func (*NonNegotiable) Table() string {
	return TableNonNegotiables
}

// NonNegotiablePatch holds the fields to change on a NonNegotiable.
type NonNegotiablePatch struct {
	TimeOfDay *TimeOfDay
	Text      *string
	Minutes   *int
	Order     *int
	Event     *EventKind
}

// Apply merges the patch into n.
func (p NonNegotiablePatch) Apply(n *NonNegotiable) {
	if p.TimeOfDay != nil {
		n.TimeOfDay = *p.TimeOfDay
	}
	if p.Text != nil {
		n.Text = *p.Text
	}
	if p.Minutes != nil {
		n.Minutes = *p.Minutes
	}
	if p.Order != nil {
		n.Order = *p.Order
	}
	if p.Event != nil {
		n.Event = *p.Event
	}
}

// Fields returns the set fields keyed by column name.
func (p NonNegotiablePatch) Fields() map[string]any {
	f := make(map[string]any)
	if p.TimeOfDay != nil {
		f["time_of_day"] = string(*p.TimeOfDay)
	}
	if p.Text != nil {
		f["text"] = *p.Text
	}
	if p.Minutes != nil {
		f["minutes"] = *p.Minutes
	}
	if p.Order != nil {
		f["order_index"] = *p.Order
	}
	if p.Event != nil {
		f["event"] = string(*p.Event)
	}
	return f
}

// DateLayout is the calendar-day format used for completion dates.
const DateLayout = "2006-01-02"

// DateOf formats t as a calendar day in its own location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate validates a YYYY-MM-DD calendar day.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return t.Format(DateLayout), nil
}

// DailyCompletion records whether a non-negotiable was done on a given day.
// There is at most one per (account, item, date).
type DailyCompletion struct {
	Record
	Date        string     `json:"date"`
	ItemID      string     `json:"item_id"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Table returns the completion table name.
func (*DailyCompletion) Table() string {
	return TableCompletions
}

// CompletionKey returns the deterministic key-value store key for a completion.
func CompletionKey(accountID, itemID, date string) string {
	return CompletionDatePrefix(accountID, date) + KeyPart(itemID)
}

// CompletionDatePrefix returns the key prefix of an account's completions on date.
func CompletionDatePrefix(accountID, date string) string {
	return AccountPrefix(TableCompletions, accountID) + KeyPart(date) + ":"
}

// Flip toggles the completion and sets or clears the completion timestamp.
func (c *DailyCompletion) Flip(now time.Time) {
	c.Completed = !c.Completed
	if c.Completed {
		at := now.UTC()
		c.CompletedAt = &at
	} else {
		c.CompletedAt = nil
	}
	c.Touch(now)
}
