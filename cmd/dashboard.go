package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/careeros/internal/tui"
)

var dashboardFlagDate string

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "d", "tui"},
	Short:   "Open the interactive checklist dashboard",
	Long: `Open an interactive terminal dashboard for the daily checklist.

The dashboard shows:
  - The day's non-negotiables, morning then evening
  - That weekday's schedule
  - KPI progress by phase

Keyboard Controls:
  up/down, j/k     - Move between items
  space, enter, x  - Toggle the selected item
  left/right, h/l  - Previous / next day
  t                - Back to today
  r                - Refresh data
  q                - Quit dashboard

Examples:
  careeros dashboard
  careeros dash --date yesterday`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardFlagDate, "date", "today", "First day to show")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	date, err := resolveDate(dashboardFlagDate)
	if err != nil {
		return err
	}

	// Configure the dashboard
	config := tui.DashboardConfig{
		Context:   cmd.Context(),
		Account:   ctx.Account(),
		Checklist: ctx.Checklist,
		KPIs:      ctx.Store.KPIs,
		Schedule:  ctx.Store.Schedule,
		Date:      date,
	}

	// Run the TUI dashboard
	return tui.Run(config)
}
