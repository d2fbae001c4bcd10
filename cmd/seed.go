package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/output"
)

var seedFlagReseed string

// seedCmd represents the seed command.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the default KPIs, companies, schedule and checklist",
	Long: `Seed the account with the default dataset. Seeding runs once per account:
a second run does nothing, and a run that failed part way resumes with the
tables it did not finish. Tables that already hold rows are kept as they are.

--reseed inserts one table's defaults again, even when rows exist.

Tables: kpis, companies, schedule_blocks, non_negotiables

Examples:
  careeros seed
  careeros seed --account demo
  careeros seed --reseed companies`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationSkipSeed: "true"},
	RunE:        runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFlagReseed, "reseed", "", "Insert one table's defaults again")
	seedCmd.RegisterFlagCompletionFunc("reseed", cobra.FixedCompletions(model.SeedTables, cobra.ShellCompDirectiveNoFileComp))
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	if seedFlagReseed != "" {
		n, err := ctx.Seeder.Reseed(cmd.Context(), ctx.Account(), seedFlagReseed)
		if err != nil {
			return err
		}
		if ctx.IsJSON() {
			return ctx.Formatter.JSON(output.ReseedResponse{Table: seedFlagReseed, Inserted: n})
		}
		ctx.CLIFormatter().Success(fmt.Sprintf("Inserted %d %s", n, seedFlagReseed))
		return nil
	}

	res, err := ctx.Seeder.Bootstrap(cmd.Context(), ctx.Account())
	if err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintSeedResult(res)
	}
	ctx.CLIFormatter().PrintSeedResult(res)
	return nil
}
