package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/parser"
	"github.com/manav03panchal/careeros/internal/validate"
)

// kpiCmd represents the kpi command.
var kpiCmd = &cobra.Command{
	Use:     "kpi [KEY]",
	Aliases: []string{"kpis", "k"},
	Short:   "Show and manage KPIs",
	Long: `List KPIs grouped by phase, or show one KPI by key.

Examples:
  careeros kpi
  careeros kpi --phase 2
  careeros kpi gym
  careeros kpi add mock-trades "Mock trades" --phase 1 --target 20
  careeros kpi set gym --current 12
  careeros kpi adjust applications 3
  careeros kpi delete mock-trades`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeKPIs,
	RunE:              runKPIList,
}

// KPI subcommand flags.
var (
	kpiFlagPhase int

	kpiAddFlagPhase   int
	kpiAddFlagTarget  float64
	kpiAddFlagCurrent float64
	kpiAddFlagUnit    string

	kpiSetFlagLabel   string
	kpiSetFlagKey     string
	kpiSetFlagPhase   int
	kpiSetFlagCurrent float64
	kpiSetFlagTarget  float64
	kpiSetFlagUnit    string
)

var kpiAddCmd = &cobra.Command{
	Use:   "add KEY LABEL",
	Short: "Add a KPI",
	Args:  cobra.ExactArgs(2),
	RunE:  runKPIAdd,
}

var kpiSetCmd = &cobra.Command{
	Use:               "set KEY",
	Short:             "Change a KPI",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeKPIs,
	RunE:              runKPISet,
}

var kpiAdjustCmd = &cobra.Command{
	Use:   "adjust KEY DELTA",
	Short: "Add to a KPI's current value (negative to subtract)",
	Long: `Add DELTA to every KPI with KEY. The value never drops below zero.

Examples:
  careeros kpi adjust applications 2
  careeros kpi adjust -- gym -1`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeKPIs,
	RunE:              runKPIAdjust,
}

var kpiDeleteCmd = &cobra.Command{
	Use:               "delete KEY",
	Aliases:           []string{"rm"},
	Short:             "Delete a KPI",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeKPIs,
	RunE:              runKPIDelete,
}

func init() {
	kpiCmd.Flags().IntVarP(&kpiFlagPhase, "phase", "p", 0, "Only show one phase")

	kpiAddCmd.Flags().IntVarP(&kpiAddFlagPhase, "phase", "p", 1, "Phase (1-9)")
	kpiAddCmd.Flags().Float64VarP(&kpiAddFlagTarget, "target", "t", 0, "Target value")
	kpiAddCmd.Flags().Float64Var(&kpiAddFlagCurrent, "current", 0, "Starting value")
	kpiAddCmd.Flags().StringVarP(&kpiAddFlagUnit, "unit", "u", "", "Unit label, like 'sessions'")

	kpiSetCmd.Flags().StringVarP(&kpiSetFlagLabel, "label", "l", "", "New label")
	kpiSetCmd.Flags().StringVarP(&kpiSetFlagKey, "key", "k", "", "New key")
	kpiSetCmd.Flags().IntVarP(&kpiSetFlagPhase, "phase", "p", 0, "New phase")
	kpiSetCmd.Flags().Float64VarP(&kpiSetFlagCurrent, "current", "c", 0, "New current value")
	kpiSetCmd.Flags().Float64VarP(&kpiSetFlagTarget, "target", "t", 0, "New target")
	kpiSetCmd.Flags().StringVarP(&kpiSetFlagUnit, "unit", "u", "", "New unit")

	kpiCmd.AddCommand(kpiAddCmd, kpiSetCmd, kpiAdjustCmd, kpiDeleteCmd)
	rootCmd.AddCommand(kpiCmd)
}

func runKPIList(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		k, err := resolveKPI(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printKPI(k)
	}

	kpis, err := ctx.Store.KPIs.List(cmd.Context(), ctx.Account())
	if err != nil {
		return err
	}
	if kpiFlagPhase > 0 {
		filtered := kpis[:0]
		for _, k := range kpis {
			if k.Phase == kpiFlagPhase {
				filtered = append(filtered, k)
			}
		}
		kpis = filtered
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintKPIs(kpis)
	}
	ctx.CLIFormatter().PrintKPIs(kpis)
	return nil
}

func printKPI(k *model.KPI) error {
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintKPI(k)
	}
	ctx.CLIFormatter().PrintKPI(k)
	return nil
}

func runKPIAdd(cmd *cobra.Command, args []string) error {
	k := &model.KPI{
		Key:     parser.NormalizeKey(args[0]),
		Label:   validate.SanitizeName(args[1]),
		Phase:   kpiAddFlagPhase,
		Target:  kpiAddFlagTarget,
		Current: kpiAddFlagCurrent,
		Unit:    validate.SanitizeName(kpiAddFlagUnit),
	}
	if err := validate.KPI(k); err != nil {
		return err
	}

	if _, err := ctx.Store.KPIs.GetByKey(cmd.Context(), ctx.Account(), k.Key); err == nil {
		return errs.NewUserErrorWithField("key", k.Key, "KPI key already exists",
			"Use 'careeros kpi set "+k.Key+"' to change it")
	} else if !errs.IsNotFound(err) {
		return err
	}

	k, err := ctx.Store.KPIs.Create(cmd.Context(), ctx.Account(), k)
	if err != nil {
		return err
	}
	return printKPI(k)
}

func runKPISet(cmd *cobra.Command, args []string) error {
	k, err := resolveKPI(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	var patch model.KPIPatch
	flags := cmd.Flags()
	if flags.Changed("label") {
		label := validate.SanitizeName(kpiSetFlagLabel)
		patch.Label = &label
	}
	if flags.Changed("key") {
		key := parser.NormalizeKey(kpiSetFlagKey)
		patch.Key = &key
	}
	if flags.Changed("phase") {
		patch.Phase = &kpiSetFlagPhase
	}
	if flags.Changed("current") {
		patch.Current = &kpiSetFlagCurrent
	}
	if flags.Changed("target") {
		patch.Target = &kpiSetFlagTarget
	}
	if flags.Changed("unit") {
		unit := validate.SanitizeName(kpiSetFlagUnit)
		patch.Unit = &unit
	}
	if len(patch.Fields()) == 0 {
		return errs.NewUserError("Nothing to change",
			"Pass at least one of --label, --key, --phase, --current, --target, --unit")
	}

	// Validate the merged result before writing it.
	merged := *k
	patch.Apply(&merged)
	if err := validate.KPI(&merged); err != nil {
		return err
	}

	k, err = ctx.Store.KPIs.Update(cmd.Context(), ctx.Account(), k.ID, patch)
	if err != nil {
		return err
	}
	return printKPI(k)
}

func runKPIAdjust(cmd *cobra.Command, args []string) error {
	delta, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return errs.NewUserErrorWithField("delta", args[1], "Invalid number", "Pass a number like 1, -1 or 2.5")
	}

	k, err := resolveKPI(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	k, err = ctx.Store.KPIs.Adjust(cmd.Context(), ctx.Account(), k.Key, delta)
	if err != nil {
		return err
	}
	return printKPI(k)
}

func runKPIDelete(cmd *cobra.Command, args []string) error {
	k, err := resolveKPI(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := ctx.Store.KPIs.Remove(cmd.Context(), ctx.Account(), k.ID); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDeleted(k.ID)
	}
	ctx.CLIFormatter().Success("Deleted KPI " + k.Key)
	return nil
}
