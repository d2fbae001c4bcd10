package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// clockRegex matches "6", "06:30", "0630", "6am", "5:30 pm".
var clockRegex = regexp.MustCompile(`(?i)^(\d{1,2})(?::?(\d{2}))?\s*(am|pm|a|p)?$`)

// ParseClock normalizes a time of day to 24-hour HH:MM.
func ParseClock(input string) (string, error) {
	input = strings.TrimSpace(input)
	match := clockRegex.FindStringSubmatch(input)
	if match == nil {
		return "", NewClockError(input)
	}

	hour, _ := strconv.Atoi(match[1])
	minute := 0
	if match[2] != "" {
		minute, _ = strconv.Atoi(match[2])
	}

	switch suffix := strings.ToLower(match[3]); suffix {
	case "am", "a":
		if hour < 1 || hour > 12 {
			return "", NewClockError(input)
		}
		if hour == 12 {
			hour = 0
		}
	case "pm", "p":
		if hour < 1 || hour > 12 {
			return "", NewClockError(input)
		}
		if hour != 12 {
			hour += 12
		}
	}

	if hour > 23 || minute > 59 {
		return "", NewClockError(input)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// ParseClockRange parses "06:00-07:00" or "6am-7am" into two HH:MM values.
func ParseClockRange(input string) (start, end string, err error) {
	parts := strings.SplitN(input, "-", 2)
	if len(parts) != 2 {
		return "", "", NewClockError(input)
	}
	if start, err = ParseClock(parts[0]); err != nil {
		return "", "", err
	}
	if end, err = ParseClock(parts[1]); err != nil {
		return "", "", err
	}
	return start, end, nil
}

// IsClockLike reports whether token parses as a time of day.
func IsClockLike(token string) bool {
	_, err := ParseClock(token)
	return err == nil
}
