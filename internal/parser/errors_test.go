package parser

import (
	"testing"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestInputErrorError(t *testing.T) {
	err := &InputError{Input: "badtime", Field: "time", Message: "could not parse time of day"}
	result := err.Error()
	assert.Contains(t, result, "invalid time")
	assert.Contains(t, result, "badtime")
	assert.Contains(t, result, "could not parse")
}

func TestFormatWithExamples(t *testing.T) {
	t.Run("with_examples", func(t *testing.T) {
		result := NewClockError("noon").FormatWithExamples()
		assert.Contains(t, result, "Valid examples:")
		assert.Contains(t, result, "6am")
		assert.Contains(t, result, "24-hour")
	})

	t.Run("no_examples_no_suggestion", func(t *testing.T) {
		err := &InputError{Input: "x", Field: "f", Message: "m"}
		assert.Equal(t, err.Error(), err.FormatWithExamples())
	})
}

func TestInputErrorUnwrap(t *testing.T) {
	assert.ErrorIs(t, NewDateError("x"), errs.ErrInvalidDate)
	assert.ErrorIs(t, NewClockError("x"), errs.ErrInvalidTime)
	assert.NoError(t, NewMinutesError("x").Unwrap())
}

func TestToUserError(t *testing.T) {
	t.Run("keeps_suggestion_and_cause", func(t *testing.T) {
		ue := NewDateError("someday").ToUserError()
		assert.Equal(t, "date", ue.Field)
		assert.Equal(t, "someday", ue.Value)
		assert.Contains(t, ue.Suggestion, "YYYY-MM-DD")
		assert.ErrorIs(t, ue, errs.ErrInvalidDate)
		assert.Equal(t, errs.CategoryUser, errs.Classify(ue))
	})

	t.Run("examples_become_suggestion", func(t *testing.T) {
		ue := NewBlockError("x", "bad").ToUserError()
		assert.Contains(t, ue.Suggestion, "Try: ")
		assert.Contains(t, ue.Suggestion, "mon 06:00-07:00")
	})
}
