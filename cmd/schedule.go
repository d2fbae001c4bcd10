package cmd

import (
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/parser"
	"github.com/manav03panchal/careeros/internal/validate"
)

// scheduleCmd represents the schedule command.
var scheduleCmd = &cobra.Command{
	Use:     "schedule",
	Aliases: []string{"sched", "week"},
	Short:   "Show and edit the weekly schedule",
	Long: `List the weekly schedule, ordered by day and start time.

Days are numbered 1 (Monday) to 7 (Sunday); names like "mon" also work.

Examples:
  careeros schedule
  careeros schedule --day sat
  careeros schedule add mon 06:00-07:00 gym Gym
  careeros schedule add tue 5pm to 6pm network Coffee chats with note 'alumni list'
  careeros schedule add -i
  careeros schedule update 3f9c2a1b --end 07:30
  careeros schedule delete 3f9c2a1b`,
	RunE: runScheduleList,
}

// Schedule subcommand flags.
var (
	scheduleFlagDay string

	scheduleAddFlagInteractive bool

	scheduleUpdateFlagDay      string
	scheduleUpdateFlagStart    string
	scheduleUpdateFlagEnd      string
	scheduleUpdateFlagCategory string
	scheduleUpdateFlagTitle    string
	scheduleUpdateFlagDetails  string
)

var scheduleAddCmd = &cobra.Command{
	Use:   "add DAY START-END CATEGORY TITLE [with note '...']",
	Short: "Add a schedule block",
	Long: `Add a block to the weekly schedule.

Categories: gym, market, study, network, content, meal, family

Examples:
  careeros schedule add mon 06:00-07:00 gym Gym
  careeros schedule add sat 10am-12pm content Write posts
  careeros schedule add sun 18:00 to 19:00 study Weekly review with note 'plan the week'
  careeros schedule add -i`,
	RunE: runScheduleAdd,
}

var scheduleUpdateCmd = &cobra.Command{
	Use:               "update ID",
	Aliases:           []string{"edit"},
	Short:             "Change a schedule block",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeBlocks,
	RunE:              runScheduleUpdate,
}

var scheduleDeleteCmd = &cobra.Command{
	Use:               "delete ID",
	Aliases:           []string{"rm"},
	Short:             "Delete a schedule block",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeBlocks,
	RunE:              runScheduleDelete,
}

func init() {
	scheduleCmd.Flags().StringVarP(&scheduleFlagDay, "day", "d", "", "Only show one day")

	scheduleAddCmd.Flags().BoolVarP(&scheduleAddFlagInteractive, "interactive", "i", false, "Fill in the block with a form")

	scheduleUpdateCmd.Flags().StringVarP(&scheduleUpdateFlagDay, "day", "d", "", "New day")
	scheduleUpdateCmd.Flags().StringVarP(&scheduleUpdateFlagStart, "start", "s", "", "New start time")
	scheduleUpdateCmd.Flags().StringVarP(&scheduleUpdateFlagEnd, "end", "e", "", "New end time")
	scheduleUpdateCmd.Flags().StringVarP(&scheduleUpdateFlagCategory, "category", "c", "", "New category")
	scheduleUpdateCmd.Flags().StringVarP(&scheduleUpdateFlagTitle, "title", "t", "", "New title")
	scheduleUpdateCmd.Flags().StringVar(&scheduleUpdateFlagDetails, "details", "", "New details")

	scheduleUpdateCmd.RegisterFlagCompletionFunc("category", completeCategories)

	scheduleCmd.AddCommand(scheduleAddCmd, scheduleUpdateCmd, scheduleDeleteCmd)
	rootCmd.AddCommand(scheduleCmd)
}

func runScheduleList(cmd *cobra.Command, args []string) error {
	blocks, err := ctx.Store.Schedule.List(cmd.Context(), ctx.Account())
	if err != nil {
		return err
	}

	if scheduleFlagDay != "" {
		day, err := validate.ParseDay(scheduleFlagDay)
		if err != nil {
			return err
		}
		var filtered []*model.ScheduleBlock
		for _, b := range blocks {
			if b.Day == day {
				filtered = append(filtered, b)
			}
		}
		blocks = filtered
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintSchedule(blocks)
	}
	ctx.CLIFormatter().PrintSchedule(blocks)
	return nil
}

func printBlock(b *model.ScheduleBlock) error {
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(b)
	}
	ctx.CLIFormatter().PrintScheduleBlock(b)
	return nil
}

func runScheduleAdd(cmd *cobra.Command, args []string) error {
	var block *model.ScheduleBlock
	switch {
	case scheduleAddFlagInteractive:
		b, err := blockForm()
		if err != nil {
			return err
		}
		block = b
	case len(args) == 0:
		return errs.NewUserError("Missing schedule block",
			"Try: careeros schedule add mon 06:00-07:00 gym Gym, or pass -i for a form")
	default:
		parsed, err := parser.ParseBlock(args)
		if err != nil {
			return inputError(err)
		}
		block = parsed.Block()
	}

	block.Title = validate.SanitizeName(block.Title)
	block.Details = validate.SanitizeNote(block.Details)
	if err := validate.ScheduleBlock(block); err != nil {
		return err
	}

	block, err := ctx.Store.Schedule.Create(cmd.Context(), ctx.Account(), block)
	if err != nil {
		return err
	}
	return printBlock(block)
}

// blockForm asks for a schedule block interactively.
func blockForm() (*model.ScheduleBlock, error) {
	var (
		day      = model.Monday
		start    string
		end      string
		category = model.CategoryStudy
		title    string
		details  string
	)

	dayOptions := make([]huh.Option[int], 0, model.Sunday)
	for d := model.Monday; d <= model.Sunday; d++ {
		dayOptions = append(dayOptions, huh.NewOption(model.DayName(d), d))
	}
	categoryOptions := make([]huh.Option[model.Category], 0, len(model.Categories))
	for _, c := range model.Categories {
		categoryOptions = append(categoryOptions, huh.NewOption(string(c), c))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Day").
				Options(dayOptions...).
				Value(&day),
			huh.NewInput().
				Title("Start").
				Placeholder("06:00").
				Value(&start).
				Validate(validateClock),
			huh.NewInput().
				Title("End").
				Placeholder("07:00").
				Value(&end).
				Validate(func(s string) error {
					return validateBlockRange(start, s)
				}),
		),
		huh.NewGroup(
			huh.NewSelect[model.Category]().
				Title("Category").
				Options(categoryOptions...).
				Value(&category),
			huh.NewInput().
				Title("Title").
				Value(&title).
				Validate(func(s string) error {
					return validate.Name("title", s)
				}),
			huh.NewInput().
				Title("Details").
				Placeholder("optional").
				Value(&details).
				Validate(validate.Note),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return nil, err
	}

	// Validated above, so these parse.
	start, _ = parser.ParseClock(start)
	end, _ = parser.ParseClock(end)
	return &model.ScheduleBlock{
		Day:      day,
		Start:    start,
		End:      end,
		Category: category,
		Title:    title,
		Details:  details,
	}, nil
}

// validateClock accepts any time of day ParseClock understands.
func validateClock(s string) error {
	_, err := parser.ParseClock(s)
	return err
}

// validateBlockRange requires a parseable end after start.
func validateBlockRange(start, end string) error {
	s, err := parser.ParseClock(start)
	if err != nil {
		return err
	}
	e, err := parser.ParseClock(end)
	if err != nil {
		return err
	}
	return validate.TimeRange(s, e)
}

func runScheduleUpdate(cmd *cobra.Command, args []string) error {
	var patch model.ScheduleBlockPatch
	flags := cmd.Flags()
	if flags.Changed("day") {
		day, err := validate.ParseDay(scheduleUpdateFlagDay)
		if err != nil {
			return err
		}
		patch.Day = &day
	}
	if flags.Changed("start") {
		start, err := parser.ParseClock(scheduleUpdateFlagStart)
		if err != nil {
			return inputError(err)
		}
		patch.Start = &start
	}
	if flags.Changed("end") {
		end, err := parser.ParseClock(scheduleUpdateFlagEnd)
		if err != nil {
			return inputError(err)
		}
		patch.End = &end
	}
	if flags.Changed("category") {
		c, err := validate.ParseCategory(scheduleUpdateFlagCategory)
		if err != nil {
			return err
		}
		patch.Category = &c
	}
	if flags.Changed("title") {
		title := validate.SanitizeName(scheduleUpdateFlagTitle)
		patch.Title = &title
	}
	if flags.Changed("details") {
		details := validate.SanitizeNote(scheduleUpdateFlagDetails)
		patch.Details = &details
	}
	if len(patch.Fields()) == 0 {
		return errs.NewUserError("Nothing to change",
			"Pass at least one of --day, --start, --end, --category, --title, --details")
	}

	b, err := resolveBlock(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	merged := *b
	patch.Apply(&merged)
	if err := validate.ScheduleBlock(&merged); err != nil {
		return err
	}

	b, err = ctx.Store.Schedule.Update(cmd.Context(), ctx.Account(), b.ID, patch)
	if err != nil {
		return err
	}
	return printBlock(b)
}

func runScheduleDelete(cmd *cobra.Command, args []string) error {
	b, err := resolveBlock(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := ctx.Store.Schedule.Remove(cmd.Context(), ctx.Account(), b.ID); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDeleted(b.ID)
	}
	ctx.CLIFormatter().Success("Deleted " + b.Title + " (" + model.DayName(b.Day) + " " + b.Start + ")")
	return nil
}

// inputError turns parser failures into user errors with examples.
func inputError(err error) error {
	var ie *parser.InputError
	if errs.As(err, &ie) {
		return ie.ToUserError()
	}
	return err
}
