package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/manav03panchal/careeros/internal/checklist"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/seed"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#10B981") // Green
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorWarning   = lipgloss.Color("#F59E0B") // Yellow
	colorError     = lipgloss.Color("#EF4444") // Red
	colorSuccess   = lipgloss.Color("#10B981") // Green

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleName = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleDone = lipgloss.NewStyle().
			Foreground(colorSecondary)
)

// statusColors tints a company status.
var statusColors = map[model.Status]lipgloss.Color{
	model.StatusLead:      colorMuted,
	model.StatusApplied:   colorPrimary,
	model.StatusInterview: colorWarning,
	model.StatusOffer:     colorSuccess,
	model.StatusRejected:  colorError,
}

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// Name formats an entity name.
func (c *CLIFormatter) Name(name string) string {
	return c.render(styleName, name)
}

// Status formats a company status in its color.
func (c *CLIFormatter) Status(s model.Status) string {
	color, ok := statusColors[s]
	if !ok {
		return string(s)
	}
	return c.render(lipgloss.NewStyle().Foreground(color), string(s))
}

// ShortID returns the last characters of an id, enough to tell records apart.
func ShortID(id string) string {
	const n = 8
	// UUIDv7 ids share their leading timestamp.
	if len(id) > n {
		return id[len(id)-n:]
	}
	return id
}

// ProgressBar creates a simple progress bar.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}
	if width < 0 {
		width = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	return strings.Repeat("█", filled) + strings.Repeat("░", empty)
}

// barWidth sizes progress bars to the terminal.
func (c *CLIFormatter) barWidth() int {
	w := c.Width() - 60
	return max(10, min(w, 30))
}

// ModeInfo describes the active backend.
type ModeInfo struct {
	Mode    string            `json:"mode"`
	Account string            `json:"account"`
	Target  string            `json:"target"`
	Seed    *model.SeedMarker `json:"seed,omitempty"`
}

// PrintMode prints the selected backend.
func (c *CLIFormatter) PrintMode(info ModeInfo) {
	c.Printf("Mode:    %s\n", c.Name(info.Mode))
	c.Printf("Account: %s\n", info.Account)
	c.Printf("Target:  %s\n", info.Target)
	switch {
	case info.Seed == nil:
		c.Muted("Not seeded yet.")
	case info.Seed.IsComplete():
		c.Printf("Seeded:  %s\n", FormatTime(*info.Seed.CompletedAt))
	default:
		c.Warning(fmt.Sprintf("Seeding incomplete (done: %s)", strings.Join(info.Seed.Tables, ", ")))
	}
}

// PrintSeedResult prints what a bootstrap run did.
func (c *CLIFormatter) PrintSeedResult(res seed.Result) {
	if !res.Seeded {
		c.Muted("Account already seeded.")
		return
	}
	c.Success("Account seeded")
	if len(res.Tables) > 0 {
		c.Printf("  Inserted: %s\n", strings.Join(res.Tables, ", "))
	}
	if len(res.Adopted) > 0 {
		c.Printf("  Kept existing: %s\n", strings.Join(res.Adopted, ", "))
	}
}

// PrintKPIs prints KPIs grouped by phase with progress bars.
func (c *CLIFormatter) PrintKPIs(kpis []*model.KPI) {
	if len(kpis) == 0 {
		c.Muted("No KPIs.")
		return
	}

	width := c.barWidth()
	phase := -1
	for _, k := range kpis {
		if k.Phase != phase {
			if phase != -1 {
				c.Println()
			}
			phase = k.Phase
			c.Title(fmt.Sprintf("Phase %d", phase))
		}

		bar := ProgressBar(k.Progress(), width)
		if k.IsComplete() {
			bar = c.render(styleDone, bar)
		}
		value := FormatNumber(k.Current) + "/" + FormatNumber(k.Target)
		if k.Unit != "" {
			value += " " + k.Unit
		}
		c.Printf("  %-16s %s %3.0f%%  %s\n", k.Key, bar, min(k.Progress(), 100), c.render(styleMuted, value))
	}
}

// PrintKPI prints one KPI.
func (c *CLIFormatter) PrintKPI(k *model.KPI) {
	c.Printf("%s  %s\n", c.Name(k.Key), k.Label)
	c.Printf("  Phase:    %d\n", k.Phase)
	c.Printf("  Progress: %s/%s %s (%.0f%%)\n", FormatNumber(k.Current), FormatNumber(k.Target), k.Unit, k.Progress())
	c.Printf("  ID:       %s\n", k.ID)
}

// PrintCompanies prints the application tracker as a table.
func (c *CLIFormatter) PrintCompanies(companies []*model.Company) {
	if len(companies) == 0 {
		c.Muted("No companies.")
		return
	}
	rows := make([]TableRow, 0, len(companies))
	for _, co := range companies {
		rows = append(rows, TableRow{Columns: []string{
			ShortID(co.ID), string(co.Tier), co.Name, string(co.Status), co.Notes,
		}})
	}
	c.PrintTable([]string{"ID", "TIER", "NAME", "STATUS", "NOTES"}, rows)
}

// PrintCompany prints one company.
func (c *CLIFormatter) PrintCompany(co *model.Company) {
	c.Printf("%s  [%s]  %s\n", c.Name(co.Name), co.Tier, c.Status(co.Status))
	if co.Notes != "" {
		c.Printf("  Notes: %s\n", co.Notes)
	}
	c.Printf("  ID:    %s\n", co.ID)
}

// PrintSchedule prints blocks grouped by day.
func (c *CLIFormatter) PrintSchedule(blocks []*model.ScheduleBlock) {
	if len(blocks) == 0 {
		c.Muted("No schedule blocks.")
		return
	}
	day := 0
	for _, b := range blocks {
		if b.Day != day {
			if day != 0 {
				c.Println()
			}
			day = b.Day
			c.Title(model.DayName(day))
		}
		c.Printf("  %s-%s  %-8s %s", b.Start, b.End, b.Category, b.Title)
		if b.Details != "" {
			c.Print(c.render(styleMuted, "  "+b.Details))
		}
		c.Printf("  %s\n", c.render(styleMuted, ShortID(b.ID)))
	}
}

// PrintScheduleBlock prints one block.
func (c *CLIFormatter) PrintScheduleBlock(b *model.ScheduleBlock) {
	c.Printf("%s %s-%s  %s (%s)\n", model.DayName(b.Day), b.Start, b.End, c.Name(b.Title), b.Category)
	c.Printf("  ID: %s\n", b.ID)
}

// PrintDay prints the checklist for one day.
func (c *CLIFormatter) PrintDay(d *checklist.Day) {
	c.Title(fmt.Sprintf("Checklist for %s", d.Date))
	if d.Total == 0 {
		c.Muted("No checklist items.")
		return
	}

	for _, section := range []model.TimeOfDay{model.Morning, model.Evening} {
		entries := d.Section(section)
		if len(entries) == 0 {
			continue
		}
		c.Println()
		c.Println(c.render(styleBold, strings.ToUpper(string(section))))
		for _, e := range entries {
			c.printEntry(e)
		}
	}

	c.Println()
	c.Printf("%d/%d done  %s\n", d.Done, d.Total, ProgressBar(d.Percent(), c.barWidth()))
}

func (c *CLIFormatter) printEntry(e checklist.Entry) {
	box := "[ ]"
	text := e.Item.Text
	if e.Done {
		box = c.render(styleDone, "[x]")
		text = c.render(styleMuted, text)
	}
	line := fmt.Sprintf("  %s %s", box, text)
	if e.Item.Minutes > 0 {
		line += c.render(styleMuted, " ("+FormatMinutes(e.Item.Minutes)+")")
	}
	c.Printf("%s  %s\n", line, c.render(styleMuted, ShortID(e.Item.ID)))
}

// PrintToggle prints the result of a checklist toggle.
func (c *CLIFormatter) PrintToggle(res *checklist.ToggleResult) {
	if res.Completion.Completed {
		c.Success(fmt.Sprintf("%s done for %s", res.Item.Text, res.Completion.Date))
	} else {
		c.Muted(fmt.Sprintf("%s reopened for %s", res.Item.Text, res.Completion.Date))
	}
	for _, k := range res.KPIs {
		c.Printf("  %s: %s/%s\n", k.Key, FormatNumber(k.Current), FormatNumber(k.Target))
	}
}

// PrintNonNegotiable prints one checklist item.
func (c *CLIFormatter) PrintNonNegotiable(n *model.NonNegotiable) {
	c.Printf("%s  (%s, %s)\n", c.Name(n.Text), n.TimeOfDay, FormatMinutes(n.Minutes))
	if n.Event != model.EventNone {
		c.Printf("  Event: %s\n", n.Event)
	}
	c.Printf("  ID:    %s\n", n.ID)
}

// TableRow is one row of a CLI table.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && len(col) > widths[i] {
				widths[i] = len(col)
			}
		}
	}

	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(fmt.Sprintf("%-*s  ", widths[i], h))
	}
	c.Println(c.render(styleBold, strings.TrimRight(headerLine.String(), " ")))

	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(sep.String(), " "))

	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(fmt.Sprintf("%-*s  ", widths[i], col))
			}
		}
		c.Println(strings.TrimRight(rowLine.String(), " "))
	}
}
