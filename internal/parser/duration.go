package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MinutesResult represents the result of parsing a duration in minutes.
type MinutesResult struct {
	Minutes int
	Valid   bool
}

// durationPattern matches duration expressions like "45", "90m", "1h30m", "1.5h".
var durationPattern = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*(h|hr|hrs|hour|hours|m|min|mins|minute|minutes)?\s*(?:(\d+)\s*(m|min|mins|minute|minutes))?$`)

// ParseMinutes parses a checklist duration. A bare number counts minutes.
// Supports formats like:
//   - "45" or "45 minutes"
//   - "1h30m" or "1 hour 30 minutes"
//   - "1.5h" (90 minutes)
func ParseMinutes(input string) MinutesResult {
	input = strings.TrimSpace(input)
	if input == "" {
		return MinutesResult{}
	}

	if d, err := time.ParseDuration(input); err == nil {
		minutes := int(d.Round(time.Minute) / time.Minute)
		if minutes <= 0 {
			return MinutesResult{}
		}
		return MinutesResult{Minutes: minutes, Valid: true}
	}

	matches := durationPattern.FindStringSubmatch(input)
	if matches == nil {
		return MinutesResult{}
	}

	value, _ := strconv.ParseFloat(matches[1], 64)
	total := unitToMinutes(value, strings.ToLower(matches[2]))
	if matches[3] != "" {
		extra, _ := strconv.Atoi(matches[3])
		total += float64(extra)
	}

	minutes := int(total + 0.5)
	if minutes <= 0 {
		return MinutesResult{}
	}
	return MinutesResult{Minutes: minutes, Valid: true}
}

// unitToMinutes converts a value and unit to minutes.
func unitToMinutes(value float64, unit string) float64 {
	switch unit {
	case "h", "hr", "hrs", "hour", "hours":
		return value * 60
	default:
		return value
	}
}
