package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/parser"
	"github.com/manav03panchal/careeros/internal/validate"
)

// checklistCmd represents the checklist command.
var checklistCmd = &cobra.Command{
	Use:     "checklist",
	Aliases: []string{"today", "cl", "c"},
	Short:   "Show the daily non-negotiables",
	Long: `Show the checklist for a day with what is already done.

Toggling an item that carries a KPI event moves that KPI: completing
"CMT Study" adds one to cmt-study, reopening it takes one away.

Examples:
  careeros checklist
  careeros checklist --date yesterday
  careeros checklist toggle gym
  careeros checklist toggle "CMT Study" --date 2026-03-14
  careeros checklist item add "Read 10-K" --time evening --minutes 30 --event study
  careeros checklist item delete "Read 10-K"`,
	RunE: runChecklist,
}

// Checklist flags.
var (
	checklistFlagDate string

	itemAddFlagTime    string
	itemAddFlagMinutes string
	itemAddFlagEvent   string
	itemAddFlagOrder   int
)

var checklistToggleCmd = &cobra.Command{
	Use:   "toggle ITEM",
	Short: "Mark an item done, or undo it",
	Long: `Flip an item's completion for the day. ITEM is the item text, its id,
or the KPI event it carries (study, application, outreach, workout,
content, market-review).`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeItems,
	RunE:              runChecklistToggle,
}

var checklistItemCmd = &cobra.Command{
	Use:     "item",
	Aliases: []string{"items"},
	Short:   "Manage checklist items",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := ctx.Store.NonNegotiables.List(cmd.Context(), ctx.Account())
		if err != nil {
			return err
		}
		if ctx.IsJSON() {
			return ctx.Formatter.JSON(items)
		}
		cli := ctx.CLIFormatter()
		for i, n := range items {
			if i > 0 {
				cli.Println()
			}
			cli.PrintNonNegotiable(n)
		}
		return nil
	},
}

var checklistItemAddCmd = &cobra.Command{
	Use:   "add TEXT",
	Short: "Add a checklist item",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemAdd,
}

var checklistItemDeleteCmd = &cobra.Command{
	Use:               "delete ITEM",
	Aliases:           []string{"rm"},
	Short:             "Delete a checklist item",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeItems,
	RunE:              runItemDelete,
}

func init() {
	checklistCmd.PersistentFlags().StringVarP(&checklistFlagDate, "date", "d", "today",
		"Day to show or toggle: today, yesterday, 2026-03-14, 'last friday'")

	checklistItemAddCmd.Flags().StringVarP(&itemAddFlagTime, "time", "t", string(model.Morning), "morning or evening")
	checklistItemAddCmd.Flags().StringVarP(&itemAddFlagMinutes, "minutes", "m", "", "Time estimate: 30, 45m, 1h30m")
	checklistItemAddCmd.Flags().StringVarP(&itemAddFlagEvent, "event", "e", "", "KPI event: study, application, outreach, workout, content, market-review")
	checklistItemAddCmd.Flags().IntVarP(&itemAddFlagOrder, "order", "o", 0, "Position in its section (default last)")

	checklistItemAddCmd.RegisterFlagCompletionFunc("event", completeEvents)
	checklistItemAddCmd.RegisterFlagCompletionFunc("time", cobra.FixedCompletions(
		[]string{string(model.Morning), string(model.Evening)}, cobra.ShellCompDirectiveNoFileComp))

	checklistItemCmd.AddCommand(checklistItemAddCmd, checklistItemDeleteCmd)
	checklistCmd.AddCommand(checklistToggleCmd, checklistItemCmd)
	rootCmd.AddCommand(checklistCmd)
}

// resolveDate turns a --date expression into a calendar day.
func resolveDate(expr string) (string, error) {
	res := parser.ParseDate(expr, time.Now())
	if res.Error != nil {
		return "", inputError(res.Error)
	}
	return res.Date, nil
}

func runChecklist(cmd *cobra.Command, args []string) error {
	date, err := resolveDate(checklistFlagDate)
	if err != nil {
		return err
	}

	day, err := ctx.Checklist.Day(cmd.Context(), ctx.Account(), date)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDay(day)
	}
	ctx.CLIFormatter().PrintDay(day)
	return nil
}

func runChecklistToggle(cmd *cobra.Command, args []string) error {
	date, err := resolveDate(checklistFlagDate)
	if err != nil {
		return err
	}

	item, err := resolveItem(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	res, err := ctx.Checklist.Toggle(cmd.Context(), ctx.Account(), item.ID, date)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(res)
	}
	ctx.CLIFormatter().PrintToggle(res)
	return nil
}

func runItemAdd(cmd *cobra.Command, args []string) error {
	tod, err := validate.ParseTimeOfDay(itemAddFlagTime)
	if err != nil {
		return err
	}
	event, err := validate.ParseEventKind(itemAddFlagEvent)
	if err != nil {
		return err
	}

	minutes := 0
	if itemAddFlagMinutes != "" {
		res := parser.ParseMinutes(itemAddFlagMinutes)
		if !res.Valid {
			return parser.NewMinutesError(itemAddFlagMinutes).ToUserError()
		}
		minutes = res.Minutes
	}

	order := itemAddFlagOrder
	if order <= 0 {
		if order, err = nextOrder(cmd, tod); err != nil {
			return err
		}
	}

	item := &model.NonNegotiable{
		TimeOfDay: tod,
		Text:      validate.SanitizeName(args[0]),
		Minutes:   minutes,
		Order:     order,
		Event:     event,
	}
	if err := validate.NonNegotiable(item); err != nil {
		return err
	}

	item, err = ctx.Store.NonNegotiables.Create(cmd.Context(), ctx.Account(), item)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(item)
	}
	ctx.CLIFormatter().PrintNonNegotiable(item)
	return nil
}

// nextOrder returns the index after the last item of a section.
func nextOrder(cmd *cobra.Command, tod model.TimeOfDay) (int, error) {
	items, err := ctx.Store.NonNegotiables.List(cmd.Context(), ctx.Account())
	if err != nil {
		return 0, err
	}
	last := 0
	for _, n := range items {
		if n.TimeOfDay == tod && n.Order > last {
			last = n.Order
		}
	}
	return last + 1, nil
}

func runItemDelete(cmd *cobra.Command, args []string) error {
	item, err := resolveItem(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := ctx.Store.NonNegotiables.Remove(cmd.Context(), ctx.Account(), item.ID); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDeleted(item.ID)
	}
	ctx.CLIFormatter().Success("Deleted " + item.Text)
	return nil
}
