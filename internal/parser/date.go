package parser

import (
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
	"github.com/manav03panchal/careeros/internal/model"
)

// DateResult holds the parsed calendar day and any error.
type DateResult struct {
	// Date is formatted YYYY-MM-DD.
	Date  string
	Error error
}

// ParseDate resolves a date expression to a calendar day relative to now.
// It accepts YYYY-MM-DD, "today", "yesterday", "tomorrow" and anything
// go-dateparser understands ("last friday", "3 days ago", "March 14").
func ParseDate(input string, now time.Time) DateResult {
	input = strings.TrimSpace(input)
	switch strings.ToLower(input) {
	case "", "today", "now":
		return DateResult{Date: model.DateOf(now)}
	case "yesterday":
		return DateResult{Date: model.DateOf(now.AddDate(0, 0, -1))}
	case "tomorrow":
		return DateResult{Date: model.DateOf(now.AddDate(0, 0, 1))}
	}

	if t, err := time.ParseInLocation(model.DateLayout, input, now.Location()); err == nil {
		return DateResult{Date: model.DateOf(t)}
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil || result.Time.IsZero() {
		return DateResult{Error: NewDateError(input)}
	}
	return DateResult{Date: model.DateOf(result.Time.In(now.Location()))}
}

// Today returns the current calendar day in local time.
func Today() string {
	return model.DateOf(time.Now())
}
