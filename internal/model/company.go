package model

import (
	"fmt"
	"strings"
)

// Tier ranks how much a company is wanted.
type Tier string

const (
	TierT1A Tier = "T1A"
	TierT1B Tier = "T1B"
	TierT2  Tier = "T2"
)

// Tiers lists the tiers in display order.
var Tiers = []Tier{TierT1A, TierT1B, TierT2}

// Rank returns the sort position of the tier. Unknown tiers sort last.
func (t Tier) Rank() int {
	for i, v := range Tiers {
		if v == t {
			return i
		}
	}
	return len(Tiers)
}

// ParseTier normalizes a tier, accepting the legacy "Tier 1A" and lowercase spellings.
func ParseTier(s string) (Tier, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.TrimPrefix(norm, "TIER")
	norm = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(norm)
	switch norm {
	case "T1A", "1A":
		return TierT1A, nil
	case "T1B", "1B":
		return TierT1B, nil
	case "T2", "2":
		return TierT2, nil
	}
	return "", fmt.Errorf("unknown tier %q", s)
}

// Status is the stage of an application.
type Status string

const (
	StatusLead      Status = "Lead"
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
)

// Statuses lists the application statuses in pipeline order.
var Statuses = []Status{StatusLead, StatusApplied, StatusInterview, StatusOffer, StatusRejected}

// ParseStatus normalizes a status, accepting the legacy lowercase spellings.
func ParseStatus(s string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, st := range Statuses {
		if strings.ToLower(string(st)) == norm {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Company is a target employer in the application tracker.
type Company struct {
	Record
	Name   string `json:"name"`
	Tier   Tier   `json:"tier"`
	Status Status `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// Table returns the company table name.
func (*Company) Table() string {
	return TableCompanies
}

// CompanyPatch holds the fields to change on a Company.
type CompanyPatch struct {
	Name   *string
	Tier   *Tier
	Status *Status
	Notes  *string
}

// Apply merges the patch into c.
func (p CompanyPatch) Apply(c *Company) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Tier != nil {
		c.Tier = *p.Tier
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
}

// Fields returns the set fields keyed by column name.
func (p CompanyPatch) Fields() map[string]any {
	f := make(map[string]any)
	if p.Name != nil {
		f["name"] = *p.Name
	}
	if p.Tier != nil {
		f["tier"] = string(*p.Tier)
	}
	if p.Status != nil {
		f["status"] = string(*p.Status)
	}
	if p.Notes != nil {
		f["notes"] = *p.Notes
	}
	return f
}
