package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/manav03panchal/careeros/internal/checklist"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainCLI() (*CLIFormatter, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewCLIFormatter(&Formatter{Writer: &buf, Format: FormatCLI, ColorMode: ColorNever}), &buf
}

func jsonOut() (*JSONFormatter, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewJSONFormatter(&Formatter{Writer: &buf, Format: FormatJSON}), &buf
}

// =============================================================================
// Formatter Tests
// =============================================================================

func TestNewFormatter(t *testing.T) {
	f := NewFormatter()
	assert.NotNil(t, f)
	assert.Equal(t, FormatCLI, f.Format)
	assert.Equal(t, ColorAuto, f.ColorMode)
}

func TestFormatterIsColorEnabled(t *testing.T) {
	t.Run("color_always", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorAlways}
		assert.True(t, f.IsColorEnabled())
	})

	t.Run("color_never", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorNever}
		assert.False(t, f.IsColorEnabled())
	})

	t.Run("color_auto_non_terminal", func(t *testing.T) {
		var buf bytes.Buffer
		f := &Formatter{Writer: &buf, ColorMode: ColorAuto}
		assert.False(t, f.IsColorEnabled())
	})

	t.Run("plain_overrides_always", func(t *testing.T) {
		f := &Formatter{Format: FormatPlain, ColorMode: ColorAlways}
		assert.False(t, f.IsColorEnabled())
	})
}

func TestFormatterWidth(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}
	assert.Equal(t, DefaultWidth, f.Width())
}

func TestFormatterPrint(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	f.Print("hello")
	f.Println(" world")
	f.Printf("%d", 42)
	assert.Equal(t, "hello world\n42", buf.String())
}

func TestFormatterJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	err := f.JSON(map[string]string{"key": "value"})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"key": "value"`)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"cli", FormatCLI, false},
		{"JSON", FormatJSON, false},
		{" plain ", FormatPlain, false},
		{"", FormatCLI, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColorMode(t *testing.T) {
	got, err := ParseColorMode("Always")
	require.NoError(t, err)
	assert.Equal(t, ColorAlways, got)

	got, err = ParseColorMode("")
	require.NoError(t, err)
	assert.Equal(t, ColorAuto, got)

	_, err = ParseColorMode("sometimes")
	assert.Error(t, err)
}

// =============================================================================
// Value Formatting Tests
// =============================================================================

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes  int
		expected string
	}{
		{0, "0m"},
		{10, "10m"},
		{60, "1h"},
		{90, "1h 30m"},
		{150, "2h 30m"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMinutes(tt.minutes))
		})
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "3", FormatNumber(3))
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "2.5", FormatNumber(2.5))
}

func TestFormatTimeOnly(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 5, 0, 0, time.Local)
	assert.Equal(t, "09:05", FormatTimeOnly(ts))
	assert.Equal(t, "2026-03-14 09:05:00", FormatTime(ts))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abcdef12", ShortID("0190f1c2-0000-7000-8000-9876abcdef12"))
	assert.Equal(t, "short", ShortID("short"))
}

// =============================================================================
// CLIFormatter Tests
// =============================================================================

func TestCLIFormatterMessages(t *testing.T) {
	cli, buf := plainCLI()

	cli.Title("My Title")
	cli.Success("Operation completed")
	cli.Warning("Be careful")
	cli.Error("Something failed")
	cli.Muted("Subtle text")

	out := buf.String()
	assert.Contains(t, out, "My Title")
	assert.Contains(t, out, "✓ Operation completed")
	assert.Contains(t, out, "⚠ Be careful")
	assert.Contains(t, out, "✗ Something failed")
	assert.Contains(t, out, "Subtle text")
}

func TestCLIFormatterName(t *testing.T) {
	t.Run("no_color", func(t *testing.T) {
		cli := NewCLIFormatter(&Formatter{ColorMode: ColorNever})
		assert.Equal(t, "Citadel", cli.Name("Citadel"))
		assert.Equal(t, "Applied", cli.Status(model.StatusApplied))
	})

	t.Run("with_color", func(t *testing.T) {
		cli := NewCLIFormatter(&Formatter{ColorMode: ColorAlways})
		assert.Contains(t, cli.Name("Citadel"), "Citadel")
		assert.Contains(t, cli.Status(model.StatusOffer), "Offer")
	})
}

func TestCLIFormatterPrintKPIs(t *testing.T) {
	cli, buf := plainCLI()

	cli.PrintKPIs([]*model.KPI{
		{Phase: 1, Key: "cmt-study", Current: 30, Target: 60, Unit: "sessions"},
		{Phase: 1, Key: "gym", Current: 50, Target: 48},
		{Phase: 2, Key: "applications", Current: 0, Target: 100},
	})

	out := buf.String()
	assert.Contains(t, out, "Phase 1")
	assert.Contains(t, out, "Phase 2")
	assert.Contains(t, out, "cmt-study")
	assert.Contains(t, out, "30/60 sessions")
	assert.Contains(t, out, " 50%")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "0/100")
}

func TestCLIFormatterPrintKPIsEmpty(t *testing.T) {
	cli, buf := plainCLI()
	cli.PrintKPIs(nil)
	assert.Contains(t, buf.String(), "No KPIs")
}

func TestCLIFormatterPrintCompanies(t *testing.T) {
	cli, buf := plainCLI()

	c := &model.Company{Name: "Jane Street", Tier: model.TierT1A, Status: model.StatusInterview, Notes: "onsite"}
	c.ID = "0190f1c2-0000-7000-8000-9876abcdef12"
	cli.PrintCompanies([]*model.Company{c})

	out := buf.String()
	assert.Contains(t, out, "TIER")
	assert.Contains(t, out, "Jane Street")
	assert.Contains(t, out, "Interview")
	assert.Contains(t, out, "abcdef12")
	assert.NotContains(t, out, "0190f1c2")
}

func TestCLIFormatterPrintSchedule(t *testing.T) {
	cli, buf := plainCLI()

	cli.PrintSchedule([]*model.ScheduleBlock{
		{Day: model.Monday, Start: "06:00", End: "07:00", Category: model.CategoryGym, Title: "Gym"},
		{Day: model.Sunday, Start: "12:00", End: "14:00", Category: model.CategoryFamily, Title: "Family lunch", Details: "parents"},
	})

	out := buf.String()
	assert.Contains(t, out, "Monday")
	assert.Contains(t, out, "Sunday")
	assert.Contains(t, out, "06:00-07:00")
	assert.Contains(t, out, "parents")
}

func testDay() *checklist.Day {
	at := time.Date(2026, 3, 14, 7, 0, 0, 0, time.UTC)
	gym := &model.NonNegotiable{TimeOfDay: model.Morning, Text: "Gym", Minutes: 60}
	journal := &model.NonNegotiable{TimeOfDay: model.Evening, Text: "Journal", Minutes: 10}
	return &checklist.Day{
		Date: "2026-03-14",
		Entries: []checklist.Entry{
			{Item: gym, Done: true, CompletedAt: &at},
			{Item: journal},
		},
		Done:  1,
		Total: 2,
	}
}

func TestCLIFormatterPrintDay(t *testing.T) {
	cli, buf := plainCLI()
	cli.PrintDay(testDay())

	out := buf.String()
	assert.Contains(t, out, "Checklist for 2026-03-14")
	assert.Contains(t, out, "MORNING")
	assert.Contains(t, out, "EVENING")
	assert.Contains(t, out, "[x] Gym (1h)")
	assert.Contains(t, out, "[ ] Journal (10m)")
	assert.Contains(t, out, "1/2 done")
}

func TestCLIFormatterPrintToggle(t *testing.T) {
	cli, buf := plainCLI()
	res := &checklist.ToggleResult{
		Item:       &model.NonNegotiable{Text: "CMT Study"},
		Completion: &model.DailyCompletion{Date: "2026-03-14", Completed: true},
		KPIs:       []*model.KPI{{Key: "cmt-study", Current: 4, Target: 60}},
	}
	cli.PrintToggle(res)

	out := buf.String()
	assert.Contains(t, out, "CMT Study done for 2026-03-14")
	assert.Contains(t, out, "cmt-study: 4/60")
}

func TestCLIFormatterPrintSeedResult(t *testing.T) {
	t.Run("seeded", func(t *testing.T) {
		cli, buf := plainCLI()
		cli.PrintSeedResult(seed.Result{Seeded: true, Tables: []string{"kpis", "companies"}, Adopted: []string{"schedule_blocks"}})
		assert.Contains(t, buf.String(), "Account seeded")
		assert.Contains(t, buf.String(), "kpis, companies")
		assert.Contains(t, buf.String(), "Kept existing: schedule_blocks")
	})

	t.Run("already", func(t *testing.T) {
		cli, buf := plainCLI()
		cli.PrintSeedResult(seed.Result{})
		assert.Contains(t, buf.String(), "already seeded")
	})
}

func TestCLIFormatterPrintMode(t *testing.T) {
	cli, buf := plainCLI()
	cli.PrintMode(ModeInfo{Mode: "mock", Account: "local", Target: "/tmp/db"})
	out := buf.String()
	assert.Contains(t, out, "mock")
	assert.Contains(t, out, "/tmp/db")
	assert.Contains(t, out, "Not seeded")
}

// =============================================================================
// ProgressBar Tests
// =============================================================================

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percentage float64
		width      int
	}{
		{0, 10},
		{50, 10},
		{100, 10},
		{150, 10}, // Over 100%
		{-10, 10}, // Negative
		{75, 20},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			bar := ProgressBar(tt.percentage, tt.width)
			assert.Equal(t, tt.width, len([]rune(bar)))
		})
	}
}

func TestProgressBarContent(t *testing.T) {
	assert.Equal(t, "░░░░░░░░░░", ProgressBar(0, 10))
	assert.Equal(t, "█████░░░░░", ProgressBar(50, 10))
	assert.Equal(t, "██████████", ProgressBar(100, 10))
	assert.Empty(t, ProgressBar(50, -3))
}

// =============================================================================
// Table Tests
// =============================================================================

func TestCLIFormatterPrintTable(t *testing.T) {
	t.Run("with_rows", func(t *testing.T) {
		cli, buf := plainCLI()

		cli.PrintTable([]string{"Name", "Status"}, []TableRow{
			{Columns: []string{"Citadel", "Lead"}},
			{Columns: []string{"Two Sigma", "Applied"}},
		})
		out := buf.String()

		assert.Contains(t, out, "Name")
		assert.Contains(t, out, "Status")
		assert.Contains(t, out, "Two Sigma")
		assert.Contains(t, out, "─")
	})

	t.Run("empty_rows", func(t *testing.T) {
		cli, buf := plainCLI()
		cli.PrintTable([]string{"Name"}, []TableRow{})
		assert.Empty(t, buf.String())
	})
}

// =============================================================================
// JSONFormatter Tests
// =============================================================================

func TestJSONFormatterPrintKPIs(t *testing.T) {
	jf, buf := jsonOut()
	k := &model.KPI{Key: "gym", Current: 12, Target: 48}
	k.ID = "k1"
	require.NoError(t, jf.PrintKPIs([]*model.KPI{k}))

	var resp struct {
		KPIs []struct {
			ID       string  `json:"id"`
			Key      string  `json:"key"`
			Progress float64 `json:"progress"`
		} `json:"kpis"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.Len(t, resp.KPIs, 1)
	assert.Equal(t, "k1", resp.KPIs[0].ID)
	assert.Equal(t, "gym", resp.KPIs[0].Key)
	assert.Equal(t, 25.0, resp.KPIs[0].Progress)
}

func TestJSONFormatterPrintCompanies(t *testing.T) {
	jf, buf := jsonOut()
	require.NoError(t, jf.PrintCompanies([]*model.Company{
		{Name: "A", Status: model.StatusLead},
		{Name: "B", Status: model.StatusLead},
		{Name: "C", Status: model.StatusApplied},
	}))

	var resp CompaniesResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Len(t, resp.Companies, 3)
	assert.Equal(t, map[string]int{"Lead": 2, "Applied": 1}, resp.ByStatus)
}

func TestJSONFormatterEmptyListsAreArrays(t *testing.T) {
	jf, buf := jsonOut()
	require.NoError(t, jf.PrintSchedule(nil))
	assert.Contains(t, buf.String(), `"blocks": []`)

	buf.Reset()
	require.NoError(t, jf.PrintSeedResult(seed.Result{}))
	assert.Contains(t, buf.String(), `"tables": []`)
	assert.NotContains(t, buf.String(), "adopted")
}

func TestJSONFormatterPrintDay(t *testing.T) {
	jf, buf := jsonOut()
	require.NoError(t, jf.PrintDay(testDay()))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "2026-03-14", resp["date"])
	assert.Equal(t, 50.0, resp["percent"])
	assert.Equal(t, 1.0, resp["done"])
	assert.Len(t, resp["entries"], 2)
}

func TestJSONFormatterPrintError(t *testing.T) {
	jf, buf := jsonOut()
	require.NoError(t, jf.PrintError(ErrorResponse{Error: "kpi not found", Category: "user"}))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "kpi not found", resp.Error)
}

func TestJSONFormatterPrintDeleted(t *testing.T) {
	jf, buf := jsonOut()
	require.NoError(t, jf.PrintDeleted("abc"))
	assert.Contains(t, buf.String(), `"status": "deleted"`)
	assert.Contains(t, buf.String(), `"id": "abc"`)
}
