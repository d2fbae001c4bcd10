package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/manav03panchal/careeros/internal/checklist"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/output"
	"github.com/manav03panchal/careeros/internal/validate"
)

// maxTextWidth caps item and label text inside panels.
const maxTextWidth = 40

// ChecklistComponent displays one day's checklist with a cursor.
type ChecklistComponent struct {
	Day    *checklist.Day
	Cursor int
	Width  int
}

// NewChecklistComponent creates a new checklist component.
func NewChecklistComponent(day *checklist.Day, cursor, width int) *ChecklistComponent {
	return &ChecklistComponent{Day: day, Cursor: cursor, Width: width}
}

// View renders the checklist component.
func (cc *ChecklistComponent) View() string {
	var content strings.Builder

	if cc.Day == nil || cc.Day.Total == 0 {
		content.WriteString(StyleMuted.Render("No checklist items"))
		content.WriteString("\n\n")
		content.WriteString(StyleSubtitle.Render("Run 'careeros seed' to load the defaults"))
		return StyleChecklistBox.Width(panelWidth(cc.Width)).Render(content.String())
	}

	// Entries are sorted morning first, so the cursor index maps straight onto them.
	var section model.TimeOfDay
	for i, e := range cc.Day.Entries {
		if e.Item.TimeOfDay != section {
			if i > 0 {
				content.WriteString("\n")
			}
			section = e.Item.TimeOfDay
			content.WriteString(StyleSection.Render(strings.ToUpper(string(section))))
			content.WriteString("\n")
		}
		content.WriteString(cc.renderEntry(i, e))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(ProgressBar(cc.Day.Percent(), barWidth(cc.Width)))
	content.WriteString("\n")
	summary := fmt.Sprintf("%d/%d done (%.0f%%)", cc.Day.Done, cc.Day.Total, cc.Day.Percent())

	box := StyleChecklistBox
	if cc.Day.Done == cc.Day.Total {
		content.WriteString(StyleSuccess.Render(summary + "  ✓ All done!"))
		box = StyleChecklistDoneBox
	} else {
		content.WriteString(StyleSubtitle.Render(summary))
	}

	return box.Width(panelWidth(cc.Width)).Render(content.String())
}

func (cc *ChecklistComponent) renderEntry(i int, e checklist.Entry) string {
	pointer := "  "
	if i == cc.Cursor {
		pointer = StyleCursor.Render("> ")
	}

	mark, style := "[ ]", StyleItem
	if e.Done {
		mark, style = "[x]", StyleDone
	}

	line := pointer + mark + " " + style.Render(validate.TruncateString(e.Item.Text, maxTextWidth))
	if e.Item.Minutes > 0 {
		line += "  " + StyleDuration.Render(output.FormatMinutes(e.Item.Minutes))
	}
	return line
}

// KPIComponent displays KPI progress grouped by phase.
type KPIComponent struct {
	KPIs  []*model.KPI
	Width int
}

// NewKPIComponent creates a new KPI component.
func NewKPIComponent(kpis []*model.KPI, width int) *KPIComponent {
	return &KPIComponent{KPIs: kpis, Width: width}
}

// View renders the KPI component.
func (kc *KPIComponent) View() string {
	var content strings.Builder

	content.WriteString(StyleTitle.Render("KPIs"))
	content.WriteString("\n")

	if len(kc.KPIs) == 0 {
		content.WriteString(StyleMuted.Render("No KPIs yet"))
		return StyleKPIBox.Width(panelWidth(kc.Width)).Render(content.String())
	}

	phase := 0
	for _, k := range kc.KPIs {
		if k.Phase != phase {
			if phase != 0 {
				content.WriteString("\n")
			}
			phase = k.Phase
			content.WriteString(StyleSection.Render(fmt.Sprintf("Phase %d", phase)))
			content.WriteString("\n")
		}
		label := validate.TruncateString(k.Label, maxTextWidth)
		value := fmt.Sprintf("%s/%s", output.FormatNumber(k.Current), output.FormatNumber(k.Target))
		if k.IsComplete() {
			value = StyleSuccess.Render(value + " ✓")
		} else {
			value = StyleSubtitle.Render(value)
		}
		content.WriteString(fmt.Sprintf("%s %s  %s\n", ProgressBar(k.Progress(), barWidth(kc.Width)/2), label, value))
	}

	return StyleKPIBox.Width(panelWidth(kc.Width)).Render(strings.TrimRight(content.String(), "\n"))
}

// ScheduleComponent displays the schedule blocks of one weekday.
type ScheduleComponent struct {
	Day    int
	Blocks []*model.ScheduleBlock
	Width  int
}

// NewScheduleComponent keeps only the blocks that fall on day.
func NewScheduleComponent(day int, blocks []*model.ScheduleBlock, width int) *ScheduleComponent {
	var today []*model.ScheduleBlock
	for _, b := range blocks {
		if b.Day == day {
			today = append(today, b)
		}
	}
	return &ScheduleComponent{Day: day, Blocks: today, Width: width}
}

// View renders the schedule component.
func (sc *ScheduleComponent) View() string {
	var content strings.Builder

	content.WriteString(StyleTitle.Render(model.DayName(sc.Day) + " Schedule"))
	content.WriteString("\n")

	if len(sc.Blocks) == 0 {
		content.WriteString(StyleMuted.Render("Nothing scheduled"))
	}
	for i, b := range sc.Blocks {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(StyleDuration.Render(b.Start + "-" + b.End))
		content.WriteString("  ")
		content.WriteString(validate.TruncateString(b.Title, maxTextWidth))
		content.WriteString(StyleSubtitle.Render(" (" + string(b.Category) + ")"))
	}

	return StyleScheduleBox.Width(panelWidth(sc.Width)).Render(content.String())
}

// barWidth sizes a progress bar to the terminal, between 10 and 30 cells.
func barWidth(width int) int {
	return max(10, min(30, width-20))
}

// HelpBar renders the help bar at the bottom.
func HelpBar() string {
	var parts []string
	for _, b := range keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, StyleHelpKey.Render(h.Key)+" "+StyleHelpDesc.Render(h.Desc))
	}

	return StyleHelp.Render(strings.Join(parts, "  •  "))
}

// renderHeader renders the dashboard header for date.
func renderHeader(account, date string) string {
	title := StyleTitle.Render("Career OS")
	sub := StyleSubtitle.Render(fmt.Sprintf("%s  •  %s", date, account))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", sub) + "\n"
}
