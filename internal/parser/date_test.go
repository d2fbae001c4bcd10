package parser

import (
	"testing"
	"time"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Saturday.
var refNow = time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

func TestParseDateKeywords(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "2026-03-14"},
		{"today", "2026-03-14"},
		{"TODAY", "2026-03-14"},
		{"now", "2026-03-14"},
		{"yesterday", "2026-03-13"},
		{"tomorrow", "2026-03-15"},
		{"2026-01-02", "2026-01-02"},
		{" 2025-12-31 ", "2025-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := ParseDate(tt.input, refNow)
			require.NoError(t, res.Error)
			assert.Equal(t, tt.expected, res.Date)
		})
	}
}

func TestParseDateMonthBoundary(t *testing.T) {
	first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	res := ParseDate("yesterday", first)
	require.NoError(t, res.Error)
	assert.Equal(t, "2026-02-28", res.Date)
}

func TestParseDateNatural(t *testing.T) {
	res := ParseDate("3 days ago", refNow)
	require.NoError(t, res.Error)
	assert.Equal(t, "2026-03-11", res.Date)
}

func TestParseDateInvalid(t *testing.T) {
	res := ParseDate("not a date at all", refNow)
	require.Error(t, res.Error)
	assert.ErrorIs(t, res.Error, errs.ErrInvalidDate)
	assert.Empty(t, res.Date)
}

func TestToday(t *testing.T) {
	assert.Equal(t, time.Now().Format("2006-01-02"), Today())
}
