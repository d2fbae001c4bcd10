package parser

import (
	"testing"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlock(t *testing.T) {
	t.Run("dash_range", func(t *testing.T) {
		b, err := ParseBlock([]string{"mon", "06:00-07:00", "gym", "Morning", "workout"})
		require.NoError(t, err)
		assert.Equal(t, model.Monday, b.Day)
		assert.Equal(t, "06:00", b.Start)
		assert.Equal(t, "07:00", b.End)
		assert.Equal(t, model.CategoryGym, b.Category)
		assert.Equal(t, "Morning workout", b.Title)
		assert.Empty(t, b.Details)
	})

	t.Run("to_range_with_12_hour_times", func(t *testing.T) {
		b, err := ParseBlock([]string{"Saturday", "10am", "to", "12pm", "content", "Write posts"})
		require.NoError(t, err)
		assert.Equal(t, model.Saturday, b.Day)
		assert.Equal(t, "10:00", b.Start)
		assert.Equal(t, "12:00", b.End)
		assert.Equal(t, "Write posts", b.Title)
	})

	t.Run("numeric_day_and_note", func(t *testing.T) {
		b, err := ParseBlock([]string{"7", "12:00-14:00", "family", "Lunch", "with", "note", "'at home'"})
		require.NoError(t, err)
		assert.Equal(t, model.Sunday, b.Day)
		assert.Equal(t, "Lunch", b.Title)
		assert.Equal(t, "at home", b.Details)
	})

	t.Run("quoted_title", func(t *testing.T) {
		b, err := ParseBlock([]string{"tue", "9-11", "study", `"CMT chapter 4"`})
		require.NoError(t, err)
		assert.Equal(t, "09:00", b.Start)
		assert.Equal(t, "11:00", b.End)
		assert.Equal(t, "CMT chapter 4", b.Title)
	})

	t.Run("end_before_start_is_parsed", func(t *testing.T) {
		b, err := ParseBlock([]string{"wed", "18:00-17:00", "network", "Calls"})
		require.NoError(t, err)
		assert.Equal(t, "18:00", b.Start)
		assert.Equal(t, "17:00", b.End)
	})

	t.Run("block_conversion", func(t *testing.T) {
		b, err := ParseBlock([]string{"fri", "17:00-18:00", "network", "Outreach"})
		require.NoError(t, err)
		block := b.Block()
		assert.Equal(t, model.Friday, block.Day)
		assert.Equal(t, "Outreach", block.Title)
		assert.Empty(t, block.ID)
	})
}

func TestParseBlockErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"too_few", []string{"mon", "06:00-07:00"}},
		{"bad_day", []string{"someday", "06:00-07:00", "gym", "Run"}},
		{"no_range", []string{"mon", "06:00", "gym", "Run"}},
		{"bad_category", []string{"mon", "06:00-07:00", "nap", "Rest"}},
		{"missing_title", []string{"mon", "6am", "to", "7am", "gym"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBlock(tt.args)
			require.Error(t, err)
			var ie *InputError
			assert.ErrorAs(t, err, &ie)
		})
	}

	t.Run("bad_time", func(t *testing.T) {
		_, err := ParseBlock([]string{"mon", "25:00-26:00", "gym", "Run"})
		assert.ErrorIs(t, err, errs.ErrInvalidTime)
	})
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"hello world", []string{"hello", "world"}},
		{`say "hello world"`, []string{"say", "hello world"}},
		{"say 'hi there'", []string{"say", "hi there"}},
		{"  spaced   out  ", []string{"spaced", "out"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, tokenize(tt.input))
		})
	}
}
