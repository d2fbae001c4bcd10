// Package validate provides input validation helpers for the Career OS CLI.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/parser"
)

const (
	// MaxNameLength is the maximum length for names, labels and titles.
	MaxNameLength = 128
	// MaxNoteLength is the maximum length for notes and details.
	MaxNoteLength = 4096
	// MaxPhase is the highest KPI phase.
	MaxPhase = 9
	// MaxMinutes is one day.
	MaxMinutes = 24 * 60
)

// clockRegex accepts strict 24-hour HH:MM.
var clockRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Name validates a required display name.
func Name(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewUserError(field+" cannot be empty", "Provide a "+field)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return errs.NewUserErrorWithField(field, name,
			field+" too long",
			fmt.Sprintf("Keep it to %d characters or fewer", MaxNameLength))
	}
	return nil
}

// Note validates a note or description.
func Note(note string) error {
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return errs.NewUserError(
			"Note too long",
			"Notes must be 4096 characters or fewer")
	}
	return nil
}

// Key validates a KPI key.
func Key(key string) error {
	if !parser.ValidateKey(key) {
		return errs.NewUserErrorWithField("key", key,
			"Invalid KPI key",
			"Keys are lowercase letters, digits and single dashes, like 'cmt-study'")
	}
	return nil
}

// Clock validates a 24-hour HH:MM time of day.
func Clock(field, value string) error {
	if !clockRegex.MatchString(value) {
		return errs.NewUserErrorWithField(field, value, "Invalid "+field, "").WithCause(errs.ErrInvalidTime)
	}
	return nil
}

// TimeRange validates both ends and requires end after start.
func TimeRange(start, end string) error {
	if err := Clock("start time", start); err != nil {
		return err
	}
	if err := Clock("end time", end); err != nil {
		return err
	}
	if end <= start {
		return errs.NewUserErrorWithField("end", end, "End time must be after start time", "").WithCause(errs.ErrEndBeforeStart)
	}
	return nil
}

// Day validates an ISO day number.
func Day(day int) error {
	if day < model.Monday || day > model.Sunday {
		return errs.NewUserErrorWithField("day", fmt.Sprint(day), "Invalid day", "").WithCause(errs.ErrInvalidDay)
	}
	return nil
}

// ParseDay parses a day name or number.
func ParseDay(s string) (int, error) {
	d, err := model.ParseDay(s)
	if err != nil {
		return 0, errs.NewUserErrorWithField("day", s, "Invalid day", "").WithCause(errs.ErrInvalidDay)
	}
	return d, nil
}

// ParseTier parses a company tier.
func ParseTier(s string) (model.Tier, error) {
	t, err := model.ParseTier(s)
	if err != nil {
		return "", errs.NewUserErrorWithField("tier", s, "Invalid tier", "").WithCause(errs.ErrInvalidTier)
	}
	return t, nil
}

// ParseStatus parses an application status.
func ParseStatus(s string) (model.Status, error) {
	st, err := model.ParseStatus(s)
	if err != nil {
		return "", errs.NewUserErrorWithField("status", s, "Invalid status", "").WithCause(errs.ErrInvalidStatus)
	}
	return st, nil
}

// ParseCategory parses a schedule category.
func ParseCategory(s string) (model.Category, error) {
	c, err := model.ParseCategory(s)
	if err != nil {
		return "", errs.NewUserErrorWithField("category", s, "Invalid category", "").WithCause(errs.ErrInvalidCategory)
	}
	return c, nil
}

// ParseTimeOfDay parses morning or evening.
func ParseTimeOfDay(s string) (model.TimeOfDay, error) {
	t, err := model.ParseTimeOfDay(s)
	if err != nil {
		return "", errs.NewUserErrorWithField("time of day", s, "Invalid time of day", "Use 'morning' or 'evening'")
	}
	return t, nil
}

// ParseEventKind parses a KPI event kind. Empty means none.
func ParseEventKind(s string) (model.EventKind, error) {
	k, err := model.ParseEventKind(s)
	if err != nil {
		kinds := make([]string, len(model.EventKinds))
		for i, k := range model.EventKinds {
			kinds[i] = string(k)
		}
		return "", errs.NewUserErrorWithField("event", s, "Invalid event kind", "Valid kinds: "+strings.Join(kinds, ", "))
	}
	return k, nil
}

// ScheduleBlock validates a block before it is saved.
func ScheduleBlock(b *model.ScheduleBlock) error {
	if err := Day(b.Day); err != nil {
		return err
	}
	if err := TimeRange(b.Start, b.End); err != nil {
		return err
	}
	if _, err := ParseCategory(string(b.Category)); err != nil {
		return err
	}
	if err := Name("title", b.Title); err != nil {
		return err
	}
	return Note(b.Details)
}

// KPI validates a KPI before it is saved.
func KPI(k *model.KPI) error {
	if err := Key(k.Key); err != nil {
		return err
	}
	if err := Name("label", k.Label); err != nil {
		return err
	}
	if err := InRange("phase", k.Phase, 1, MaxPhase); err != nil {
		return err
	}
	if k.Target < 0 || k.Current < 0 {
		return errs.NewUserError("KPI values cannot be negative", "Use zero or a positive number")
	}
	return nil
}

// NonNegotiable validates a checklist item before it is saved.
func NonNegotiable(n *model.NonNegotiable) error {
	if err := Name("text", n.Text); err != nil {
		return err
	}
	if _, err := ParseTimeOfDay(string(n.TimeOfDay)); err != nil {
		return err
	}
	return InRange("minutes", n.Minutes, 0, MaxMinutes)
}

// NonEmpty validates that a string is not empty.
func NonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewUserError(
			field+" cannot be empty",
			"Provide a value for "+field)
	}
	return nil
}

// InRange validates that an integer is within a range.
func InRange(field string, value, lo, hi int) error {
	if value < lo || value > hi {
		return errs.NewUserErrorWithField(field, fmt.Sprint(value),
			"Value out of range",
			fmt.Sprintf("Must be between %d and %d", lo, hi))
	}
	return nil
}
