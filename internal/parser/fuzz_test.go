package parser

import (
	"strings"
	"testing"
	"testing/quick"
	"time"

	"github.com/stretchr/testify/assert"
)

// FuzzParseDate checks the date parser never panics and only returns calendar days.
// Run with: go test ./internal/parser -fuzz=FuzzParseDate -fuzztime=30s
func FuzzParseDate(f *testing.F) {
	seeds := []string{
		"today",
		"yesterday",
		"tomorrow",
		"2026-03-14",
		"last friday",
		"3 days ago",
		"next monday",
		"2026-02-30",
		"",
		string(make([]byte, 10000)),
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	f.Fuzz(func(t *testing.T, input string) {
		res := ParseDate(input, now)
		if res.Error == nil {
			_, err := time.Parse("2006-01-02", res.Date)
			assert.NoError(t, err, "ParseDate(%q) = %q", input, res.Date)
		}
	})
}

// FuzzParseClock checks that any accepted time of day comes back as HH:MM.
// Run with: go test ./internal/parser -fuzz=FuzzParseClock -fuzztime=30s
func FuzzParseClock(f *testing.F) {
	for _, seed := range []string{"06:00", "6am", "5:30pm", "1730", "12am", "24:00", "noon", ""} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		out, err := ParseClock(input)
		if err == nil {
			assert.Regexp(t, `^([01]\d|2[0-3]):[0-5]\d$`, out)
		}
	})
}

// FuzzParseMinutes checks that valid durations are always positive.
// Run with: go test ./internal/parser -fuzz=FuzzParseMinutes -fuzztime=30s
func FuzzParseMinutes(f *testing.F) {
	for _, seed := range []string{"45", "1h", "1h30m", "1.5h", "90 minutes", "-5m", "0", "abc", ""} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		res := ParseMinutes(input)
		if res.Valid {
			assert.Positive(t, res.Minutes)
		}
	})
}

// FuzzParseBlock checks the block parser never panics on arbitrary argument lists.
// Run with: go test ./internal/parser -fuzz=FuzzParseBlock -fuzztime=30s
func FuzzParseBlock(f *testing.F) {
	seeds := []string{
		"mon 06:00-07:00 gym Gym",
		"tue 5pm to 6pm network Coffee chats with note 'alumni'",
		"sun 18:00-19:00 study",
		"with note ''",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		b, err := ParseBlock(strings.Fields(input))
		if err == nil {
			assert.NotEmpty(t, b.Start)
			assert.NotEmpty(t, b.End)
		}
	})
}

func TestNormalizeKeyAlwaysValid(t *testing.T) {
	f := func(input string) bool {
		key := NormalizeKey(input)
		return key == "" || ValidateKey(key)
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 2000}); err != nil {
		t.Error(err)
	}
}

func TestNormalizeKeyIdempotent(t *testing.T) {
	f := func(input string) bool {
		key := NormalizeKey(input)
		return NormalizeKey(key) == key
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 2000}); err != nil {
		t.Error(err)
	}
}
