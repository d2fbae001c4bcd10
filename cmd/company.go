package cmd

import (
	"github.com/spf13/cobra"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/validate"
)

// companyCmd represents the company command.
var companyCmd = &cobra.Command{
	Use:     "company [ID|NAME]",
	Aliases: []string{"companies", "co"},
	Short:   "Track target companies and application status",
	Long: `List the application pipeline, or show one company.

Companies are ordered by tier (T1A, T1B, T2), then name. IDs can be
shortened to the last characters shown in the listing, or replaced by
the company name.

Examples:
  careeros company
  careeros company --status Applied
  careeros company add "Jane Street" --tier T1A
  careeros company status "Jane Street" Interview
  careeros company update 3f9c2a1b --notes "Referral from Sam"
  careeros company delete "Jane Street"`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeCompanies,
	RunE:              runCompanyList,
}

// Company subcommand flags.
var (
	companyFlagStatus string
	companyFlagTier   string

	companyAddFlagTier   string
	companyAddFlagStatus string
	companyAddFlagNotes  string

	companyUpdateFlagName   string
	companyUpdateFlagTier   string
	companyUpdateFlagStatus string
	companyUpdateFlagNotes  string
)

var companyAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a company",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompanyAdd,
}

var companyStatusCmd = &cobra.Command{
	Use:   "status ID STATUS",
	Short: "Move a company to another application status",
	Long: `Move a company along the pipeline.

Statuses: Lead, Applied, Interview, Offer, Rejected`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeCompanyStatus,
	RunE:              runCompanyStatus,
}

var companyUpdateCmd = &cobra.Command{
	Use:               "update ID",
	Aliases:           []string{"edit"},
	Short:             "Change a company",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeCompanies,
	RunE:              runCompanyUpdate,
}

var companyDeleteCmd = &cobra.Command{
	Use:               "delete ID",
	Aliases:           []string{"rm"},
	Short:             "Delete a company",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeCompanies,
	RunE:              runCompanyDelete,
}

func init() {
	companyCmd.Flags().StringVarP(&companyFlagStatus, "status", "s", "", "Only show one status")
	companyCmd.Flags().StringVarP(&companyFlagTier, "tier", "t", "", "Only show one tier")

	companyAddCmd.Flags().StringVarP(&companyAddFlagTier, "tier", "t", string(model.TierT2), "Tier: T1A, T1B, T2")
	companyAddCmd.Flags().StringVarP(&companyAddFlagStatus, "status", "s", string(model.StatusLead), "Application status")
	companyAddCmd.Flags().StringVarP(&companyAddFlagNotes, "notes", "n", "", "Notes")

	companyUpdateCmd.Flags().StringVar(&companyUpdateFlagName, "name", "", "New name")
	companyUpdateCmd.Flags().StringVarP(&companyUpdateFlagTier, "tier", "t", "", "New tier")
	companyUpdateCmd.Flags().StringVarP(&companyUpdateFlagStatus, "status", "s", "", "New status")
	companyUpdateCmd.Flags().StringVarP(&companyUpdateFlagNotes, "notes", "n", "", "New notes")

	companyCmd.RegisterFlagCompletionFunc("status", completeStatuses)
	companyCmd.RegisterFlagCompletionFunc("tier", completeTiers)
	companyAddCmd.RegisterFlagCompletionFunc("tier", completeTiers)
	companyUpdateCmd.RegisterFlagCompletionFunc("status", completeStatuses)

	companyCmd.AddCommand(companyAddCmd, companyStatusCmd, companyUpdateCmd, companyDeleteCmd)
	rootCmd.AddCommand(companyCmd)
}

func runCompanyList(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		co, err := resolveCompany(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printCompany(co)
	}

	companies, err := ctx.Store.Companies.List(cmd.Context(), ctx.Account())
	if err != nil {
		return err
	}

	if companyFlagStatus != "" || companyFlagTier != "" {
		companies, err = filterCompanies(companies, companyFlagStatus, companyFlagTier)
		if err != nil {
			return err
		}
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintCompanies(companies)
	}
	ctx.CLIFormatter().PrintCompanies(companies)
	return nil
}

func filterCompanies(companies []*model.Company, status, tier string) ([]*model.Company, error) {
	var wantStatus model.Status
	var wantTier model.Tier
	var err error
	if status != "" {
		if wantStatus, err = validate.ParseStatus(status); err != nil {
			return nil, err
		}
	}
	if tier != "" {
		if wantTier, err = validate.ParseTier(tier); err != nil {
			return nil, err
		}
	}

	var out []*model.Company
	for _, co := range companies {
		if wantStatus != "" && co.Status != wantStatus {
			continue
		}
		if wantTier != "" && co.Tier != wantTier {
			continue
		}
		out = append(out, co)
	}
	return out, nil
}

func printCompany(co *model.Company) error {
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(co)
	}
	ctx.CLIFormatter().PrintCompany(co)
	return nil
}

func runCompanyAdd(cmd *cobra.Command, args []string) error {
	name := validate.SanitizeName(args[0])
	if err := validate.Name("name", name); err != nil {
		return err
	}
	tier, err := validate.ParseTier(companyAddFlagTier)
	if err != nil {
		return err
	}
	status, err := validate.ParseStatus(companyAddFlagStatus)
	if err != nil {
		return err
	}
	notes := validate.SanitizeNote(companyAddFlagNotes)
	if err := validate.Note(notes); err != nil {
		return err
	}

	co, err := ctx.Store.Companies.Create(cmd.Context(), ctx.Account(), &model.Company{
		Name:   name,
		Tier:   tier,
		Status: status,
		Notes:  notes,
	})
	if err != nil {
		return err
	}
	return printCompany(co)
}

func runCompanyStatus(cmd *cobra.Command, args []string) error {
	status, err := validate.ParseStatus(args[1])
	if err != nil {
		return err
	}
	co, err := resolveCompany(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	co, err = ctx.Store.Companies.Update(cmd.Context(), ctx.Account(), co.ID, model.CompanyPatch{Status: &status})
	if err != nil {
		return err
	}
	return printCompany(co)
}

func runCompanyUpdate(cmd *cobra.Command, args []string) error {
	var patch model.CompanyPatch
	flags := cmd.Flags()
	if flags.Changed("name") {
		name := validate.SanitizeName(companyUpdateFlagName)
		if err := validate.Name("name", name); err != nil {
			return err
		}
		patch.Name = &name
	}
	if flags.Changed("tier") {
		tier, err := validate.ParseTier(companyUpdateFlagTier)
		if err != nil {
			return err
		}
		patch.Tier = &tier
	}
	if flags.Changed("status") {
		status, err := validate.ParseStatus(companyUpdateFlagStatus)
		if err != nil {
			return err
		}
		patch.Status = &status
	}
	if flags.Changed("notes") {
		notes := validate.SanitizeNote(companyUpdateFlagNotes)
		if err := validate.Note(notes); err != nil {
			return err
		}
		patch.Notes = &notes
	}
	if len(patch.Fields()) == 0 {
		return errs.NewUserError("Nothing to change", "Pass at least one of --name, --tier, --status, --notes")
	}

	co, err := resolveCompany(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	co, err = ctx.Store.Companies.Update(cmd.Context(), ctx.Account(), co.ID, patch)
	if err != nil {
		return err
	}
	return printCompany(co)
}

func runCompanyDelete(cmd *cobra.Command, args []string) error {
	co, err := resolveCompany(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := ctx.Store.Companies.Remove(cmd.Context(), ctx.Account(), co.ID); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDeleted(co.ID)
	}
	ctx.CLIFormatter().Success("Deleted " + co.Name)
	return nil
}
