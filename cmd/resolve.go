package cmd

import (
	"context"
	"fmt"
	"strings"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/manav03panchal/careeros/internal/output"
	"github.com/manav03panchal/careeros/internal/parser"
)

// resolveRecord picks the record an identifier refers to. The identifier can be:
//   - A full id
//   - The short id shown in listings (any id suffix)
//   - A name, matched case-insensitively
func resolveRecord[T any](items []*T, input string, id, name func(*T) string, notFound error) (*T, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, notFound
	}

	var matches []*T
	for _, item := range items {
		if id(item) == input {
			return item, nil
		}
		if strings.HasSuffix(id(item), input) || strings.EqualFold(name(item), input) {
			matches = append(matches, item)
		}
	}

	switch len(matches) {
	case 0:
		return nil, notFound
	case 1:
		return matches[0], nil
	}
	return nil, errs.NewUserErrorWithField("id", input,
		fmt.Sprintf("'%s' matches %d records", input, len(matches)),
		"Use more characters of the id")
}

// resolveKPI resolves a KPI by key, id or label.
func resolveKPI(c context.Context, input string) (*model.KPI, error) {
	if k, err := ctx.Store.KPIs.GetByKey(c, ctx.Account(), parser.NormalizeKey(input)); err == nil {
		return k, nil
	} else if !errs.IsNotFound(err) {
		return nil, err
	}

	kpis, err := ctx.Store.KPIs.List(c, ctx.Account())
	if err != nil {
		return nil, err
	}
	return resolveRecord(kpis, input,
		func(k *model.KPI) string { return k.ID },
		func(k *model.KPI) string { return k.Label },
		errs.ErrKPINotFound)
}

// resolveCompany resolves a company by id or name.
func resolveCompany(c context.Context, input string) (*model.Company, error) {
	companies, err := ctx.Store.Companies.List(c, ctx.Account())
	if err != nil {
		return nil, err
	}
	return resolveRecord(companies, input,
		func(co *model.Company) string { return co.ID },
		func(co *model.Company) string { return co.Name },
		errs.ErrCompanyNotFound)
}

// resolveBlock resolves a schedule block by id or title.
func resolveBlock(c context.Context, input string) (*model.ScheduleBlock, error) {
	blocks, err := ctx.Store.Schedule.List(c, ctx.Account())
	if err != nil {
		return nil, err
	}
	return resolveRecord(blocks, input,
		func(b *model.ScheduleBlock) string { return b.ID },
		func(b *model.ScheduleBlock) string { return b.Title },
		errs.ErrScheduleBlockNotFound)
}

// resolveItem resolves a checklist item by id, text or event kind.
func resolveItem(c context.Context, input string) (*model.NonNegotiable, error) {
	items, err := ctx.Store.NonNegotiables.List(c, ctx.Account())
	if err != nil {
		return nil, err
	}
	item, err := resolveRecord(items, input,
		func(n *model.NonNegotiable) string { return n.ID },
		func(n *model.NonNegotiable) string { return n.Text },
		errs.ErrNonNegotiableNotFound)
	if err == nil || !errs.IsNotFound(err) {
		return item, err
	}

	// "toggle workout" finds the item carrying that event.
	kind, kerr := model.ParseEventKind(input)
	if kerr != nil || kind == model.EventNone {
		return nil, err
	}
	return resolveRecord(items, string(kind),
		func(n *model.NonNegotiable) string { return n.ID },
		func(n *model.NonNegotiable) string { return string(n.Event) },
		errs.ErrNonNegotiableNotFound)
}

// shortIDs lists the short ids shown by the CLI, used for completions.
func shortIDs[T any](items []*T, id, desc func(*T) string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, output.ShortID(id(item))+"\t"+desc(item))
	}
	return out
}
