// Package filter derives visible subsets of loaded lists. Everything here is
// pure: no network, no mutation of the source slice, same output for the
// same inputs.
package filter

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/salesdesk/salesdesk/internal/models"
)

// All is the sentinel meaning "no status constraint".
const All = "all"

// LeadCriteria narrows a lead list. Zero values mean unconstrained.
type LeadCriteria struct {
	Query     string // case-insensitive substring of the company name
	Status    string // exact status, or All/empty for any
	MinScore  *float64
	MinBudget *float64
}

// ParseLeadCriteria reads criteria from page query parameters.
func ParseLeadCriteria(q url.Values) LeadCriteria {
	c := LeadCriteria{
		Query:  strings.TrimSpace(q.Get("q")),
		Status: strings.TrimSpace(q.Get("status")),
	}
	c.MinScore = parseFloat(q.Get("min_score"))
	c.MinBudget = parseFloat(q.Get("min_budget"))
	return c
}

// Leads returns the subset of leads matching the criteria, in input order.
func Leads(leads []models.Lead, c LeadCriteria) []models.Lead {
	out := make([]models.Lead, 0, len(leads))
	for _, l := range leads {
		if !matchName(l.CompanyName, c.Query) {
			continue
		}
		if !matchStatus(string(l.Status), c.Status) {
			continue
		}
		if c.MinScore != nil && l.Score < *c.MinScore {
			continue
		}
		if c.MinBudget != nil && l.BudgetEstimate < *c.MinBudget {
			continue
		}
		out = append(out, l)
	}
	return out
}

// CompanyCriteria narrows the unified company list.
type CompanyCriteria struct {
	Query       string
	ContactType string // LEAD, CLIENT, or All/empty
	MinScore    *float64
	MinBudget   *float64
}

// ParseCompanyCriteria reads criteria from page query parameters.
func ParseCompanyCriteria(q url.Values) CompanyCriteria {
	c := CompanyCriteria{
		Query:       strings.TrimSpace(q.Get("q")),
		ContactType: strings.TrimSpace(q.Get("contact_type")),
	}
	c.MinScore = parseFloat(q.Get("min_score"))
	c.MinBudget = parseFloat(q.Get("min_budget"))
	return c
}

// Companies returns the subset of companies matching the criteria.
func Companies(companies []models.CompanyInfo, c CompanyCriteria) []models.CompanyInfo {
	out := make([]models.CompanyInfo, 0, len(companies))
	for _, ci := range companies {
		if !matchName(ci.CompanyName, c.Query) {
			continue
		}
		if !matchStatus(ci.ContactType, c.ContactType) {
			continue
		}
		if c.MinScore != nil && (ci.ExpectedScore == nil || *ci.ExpectedScore < *c.MinScore) {
			continue
		}
		if c.MinBudget != nil && ci.BudgetEstimate < *c.MinBudget {
			continue
		}
		out = append(out, ci)
	}
	return out
}

func matchName(name, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

func matchStatus(value, want string) bool {
	if want == "" || strings.EqualFold(want, All) {
		return true
	}
	return value == want
}

func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
