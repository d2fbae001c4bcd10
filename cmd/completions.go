package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/careeros/internal/model"
)

// filterPrefix keeps the "value\tdescription" completions whose value starts with prefix.
func filterPrefix(completions []string, prefix string) []string {
	var out []string
	for _, c := range completions {
		if strings.HasPrefix(strings.Split(c, "\t")[0], prefix) {
			out = append(out, c)
		}
	}
	return out
}

// completeKPIs returns a completion function for KPI keys.
func completeKPIs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || ctx == nil || ctx.Store == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	kpis, err := ctx.Store.KPIs.List(cmd.Context(), ctx.Account())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	completions := make([]string, 0, len(kpis))
	for _, k := range kpis {
		completions = append(completions, k.Key+"\t"+k.Label)
	}
	return filterPrefix(completions, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeCompanies returns a completion function for company ids.
func completeCompanies(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || ctx == nil || ctx.Store == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	companies, err := ctx.Store.Companies.List(cmd.Context(), ctx.Account())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	completions := shortIDs(companies,
		func(c *model.Company) string { return c.ID },
		func(c *model.Company) string { return c.Name + " (" + string(c.Status) + ")" })
	return filterPrefix(completions, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeCompanyStatus completes the company, then the new status.
func completeCompanyStatus(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return completeCompanies(cmd, args, toComplete)
	case 1:
		return completeStatuses(cmd, args, toComplete)
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// completeBlocks returns a completion function for schedule block ids.
func completeBlocks(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || ctx == nil || ctx.Store == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	blocks, err := ctx.Store.Schedule.List(cmd.Context(), ctx.Account())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	completions := shortIDs(blocks,
		func(b *model.ScheduleBlock) string { return b.ID },
		func(b *model.ScheduleBlock) string {
			return model.DayName(b.Day)[:3] + " " + b.Start + " " + b.Title
		})
	return filterPrefix(completions, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeItems returns a completion function for checklist items.
func completeItems(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || ctx == nil || ctx.Store == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	items, err := ctx.Store.NonNegotiables.List(cmd.Context(), ctx.Account())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	completions := shortIDs(items,
		func(n *model.NonNegotiable) string { return n.ID },
		func(n *model.NonNegotiable) string { return n.Text })
	return filterPrefix(completions, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func completeStatuses(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	values := make([]string, len(model.Statuses))
	for i, s := range model.Statuses {
		values[i] = string(s)
	}
	return filterPrefix(values, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func completeTiers(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	values := make([]string, len(model.Tiers))
	for i, t := range model.Tiers {
		values[i] = string(t)
	}
	return filterPrefix(values, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func completeCategories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	values := make([]string, len(model.Categories))
	for i, c := range model.Categories {
		values[i] = string(c)
	}
	return filterPrefix(values, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func completeEvents(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	values := make([]string, len(model.EventKinds))
	for i, k := range model.EventKinds {
		values[i] = string(k)
	}
	return filterPrefix(values, toComplete), cobra.ShellCompDirectiveNoFileComp
}
