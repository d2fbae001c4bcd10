package parser

import (
	"fmt"
	"strings"

	errs "github.com/manav03panchal/careeros/internal/errors"
)

// InputError is a parse failure with examples of accepted input.
type InputError struct {
	Input      string
	Field      string
	Message    string
	Examples   []string
	Suggestion string
	// Cause is the sentinel the error matches with errors.Is.
	Cause error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// FormatWithExamples returns the error message with example suggestions.
func (e *InputError) FormatWithExamples() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Examples) > 0 {
		sb.WriteString("\n\nValid examples:\n")
		for _, ex := range e.Examples {
			sb.WriteString("  - ")
			sb.WriteString(ex)
			sb.WriteString("\n")
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

// ToUserError converts an InputError to a UserError for consistent handling.
func (e *InputError) ToUserError() *errs.UserError {
	suggestion := e.Suggestion
	if len(e.Examples) > 0 && suggestion == "" {
		suggestion = fmt.Sprintf("Try: %s", strings.Join(e.Examples[:min(3, len(e.Examples))], ", "))
	}

	return errs.NewUserErrorWithField(e.Field, e.Input, e.Message, suggestion).WithCause(e.Cause)
}

// DateExamples provides example date formats.
var DateExamples = []string{
	"today",
	"yesterday",
	"2026-03-14",
	"last friday",
	"3 days ago",
}

// ClockExamples provides example time-of-day formats.
var ClockExamples = []string{
	"06:00",
	"6am",
	"5:30pm",
	"1730",
}

// MinutesExamples provides example duration formats.
var MinutesExamples = []string{
	"45",
	"90m",
	"1h30m",
	"1.5h",
}

// BlockExamples provides example schedule block arguments.
var BlockExamples = []string{
	"mon 06:00-07:00 gym Morning workout",
	"saturday 10am to 12pm content Write posts",
}

// NewDateError creates a date parse error with standard examples.
func NewDateError(input string) *InputError {
	return &InputError{
		Input:      input,
		Field:      "date",
		Message:    "could not parse date",
		Examples:   DateExamples,
		Suggestion: "Use YYYY-MM-DD or words like 'today' and 'yesterday'.",
		Cause:      errs.ErrInvalidDate,
	}
}

// NewClockError creates a time-of-day parse error with standard examples.
func NewClockError(input string) *InputError {
	return &InputError{
		Input:      input,
		Field:      "time",
		Message:    "could not parse time of day",
		Examples:   ClockExamples,
		Suggestion: "Times are 24-hour HH:MM, or 12-hour with am/pm.",
		Cause:      errs.ErrInvalidTime,
	}
}

// NewMinutesError creates a duration parse error with standard examples.
func NewMinutesError(input string) *InputError {
	return &InputError{
		Input:      input,
		Field:      "minutes",
		Message:    "could not parse duration",
		Examples:   MinutesExamples,
		Suggestion: "A bare number counts minutes.",
	}
}

// NewBlockError creates a schedule block parse error.
func NewBlockError(input, message string) *InputError {
	return &InputError{
		Input:    input,
		Field:    "block",
		Message:  message,
		Examples: BlockExamples,
	}
}
