package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/manav03panchal/careeros/internal/checklist"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/parser"
	"github.com/manav03panchal/careeros/internal/repository"
)

// tickMsg is sent when the timer ticks.
type tickMsg time.Time

// refreshMsg is sent when data needs to be refreshed.
type refreshMsg struct{}

// errMsg is sent when an error occurs.
type errMsg struct {
	err error
}

// DashboardModel is the main bubbletea model for the dashboard.
type DashboardModel struct {
	ctx     context.Context
	account string

	// Data
	date   string
	day    *checklist.Day
	kpis   []*model.KPI
	blocks []*model.ScheduleBlock

	// Services
	checklist *checklist.Service
	kpiRepo   repository.KPIRepo
	schedule  repository.ScheduleRepo

	// UI state
	cursor     int
	width      int
	height     int
	err        error
	message    string
	messageExp time.Time

	refreshInterval time.Duration
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	Context   context.Context
	Account   string
	Checklist *checklist.Service
	KPIs      repository.KPIRepo
	Schedule  repository.ScheduleRepo
	// Date is the first day shown. Empty means today.
	Date            string
	RefreshInterval time.Duration
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.Context == nil {
		config.Context = context.Background()
	}
	if config.RefreshInterval == 0 {
		config.RefreshInterval = time.Second
	}
	if config.Date == "" {
		config.Date = parser.Today()
	}

	return &DashboardModel{
		ctx:             config.Context,
		account:         config.Account,
		date:            config.Date,
		checklist:       config.Checklist,
		kpiRepo:         config.KPIs,
		schedule:        config.Schedule,
		refreshInterval: config.RefreshInterval,
	}
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.refreshCmd(),
	)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Clear expired messages
		if !m.messageExp.IsZero() && time.Now().After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		return m, m.tickCmd()

	case refreshMsg:
		m.loadData()
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.day != nil && m.cursor < len(m.day.Entries)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.Toggle):
		m.toggle()

	case key.Matches(msg, keys.Prev):
		m.shiftDate(-1)

	case key.Matches(msg, keys.Next):
		m.shiftDate(1)

	case key.Matches(msg, keys.Today):
		m.date = parser.Today()
		m.loadData()

	case key.Matches(msg, keys.Refresh):
		m.loadData()
		m.setMessage("Refreshed", time.Second)
	}

	return m, nil
}

// toggle flips the item under the cursor and reloads the KPIs it moved.
func (m *DashboardModel) toggle() {
	if m.day == nil || len(m.day.Entries) == 0 {
		return
	}
	entry := m.day.Entries[m.cursor]

	res, err := m.checklist.Toggle(m.ctx, m.account, entry.Item.ID, m.date)
	if err != nil {
		m.err = err
		return
	}

	verb := "done"
	if !res.Completion.Completed {
		verb = "undone"
	}
	msg := fmt.Sprintf("%s %s", res.Item.Text, verb)
	for _, k := range res.KPIs {
		msg += fmt.Sprintf("  •  %s %.0f/%.0f", k.Key, k.Current, k.Target)
	}
	m.setMessage(msg, 3*time.Second)
	m.loadData()
}

// shiftDate moves the checklist by days.
func (m *DashboardModel) shiftDate(days int) {
	t, err := time.Parse(model.DateLayout, m.date)
	if err != nil {
		m.err = err
		return
	}
	m.date = t.AddDate(0, 0, days).Format(model.DateLayout)
	m.loadData()
}

// weekday returns the ISO day of the shown date.
func (m *DashboardModel) weekday() int {
	t, err := time.Parse(model.DateLayout, m.date)
	if err != nil {
		return model.DayOf(time.Now().Weekday())
	}
	return model.DayOf(t.Weekday())
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, renderHeader(m.account, m.date))

	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}

	sections = append(sections, NewChecklistComponent(m.day, m.cursor, m.width).View())
	sections = append(sections, NewScheduleComponent(m.weekday(), m.blocks, m.width).View())
	sections = append(sections, NewKPIComponent(m.kpis, m.width).View())

	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// loadData loads all data from the repositories.
func (m *DashboardModel) loadData() {
	day, err := m.checklist.Day(m.ctx, m.account, m.date)
	if err != nil {
		m.err = err
		return
	}
	m.day = day
	if m.cursor >= len(day.Entries) {
		m.cursor = max(0, len(day.Entries)-1)
	}

	kpis, err := m.kpiRepo.List(m.ctx, m.account)
	if err != nil {
		m.err = err
		return
	}
	m.kpis = kpis

	blocks, err := m.schedule.List(m.ctx, m.account)
	if err != nil {
		// The schedule panel is informational, don't fail on error
		m.blocks = nil
	} else {
		m.blocks = blocks
	}

	m.err = nil
}

// setMessage sets a temporary message.
func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = time.Now().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd returns a command that sends a refresh message.
func (m *DashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{}
	}
}

// Run starts the dashboard TUI.
func Run(config DashboardConfig) error {
	m := NewDashboardModel(config)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
