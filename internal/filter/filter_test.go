package filter

import (
	"net/url"
	"testing"

	"github.com/salesdesk/salesdesk/internal/models"
)

func tenLeads() []models.Lead {
	return []models.Lead{
		{ID: 1, CompanyName: "Acme Corp", Status: models.LeadStatusQualified, Score: 80, BudgetEstimate: 9000},
		{ID: 2, CompanyName: "Globex", Status: models.LeadStatusNew, Score: 10, BudgetEstimate: 500},
		{ID: 3, CompanyName: "ACME Industries", Status: models.LeadStatusNew, Score: 30, BudgetEstimate: 2000},
		{ID: 4, CompanyName: "Initech", Status: models.LeadStatusContacted, Score: 45, BudgetEstimate: 1200},
		{ID: 5, CompanyName: "Umbrella", Status: models.LeadStatusQualified, Score: 90, BudgetEstimate: 15000},
		{ID: 6, CompanyName: "Stark Acmeworks", Status: models.LeadStatusQualified, Score: 60, BudgetEstimate: 7000},
		{ID: 7, CompanyName: "Wayne", Status: models.LeadStatusUnqualified, Score: 5, BudgetEstimate: 100},
		{ID: 8, CompanyName: "Hooli", Status: models.LeadStatusContacted, Score: 50, BudgetEstimate: 3000},
		{ID: 9, CompanyName: "Vandelay", Status: models.LeadStatusNew, Score: 20, BudgetEstimate: 800},
		{ID: 10, CompanyName: "Pied Piper", Status: models.LeadStatusQualified, Score: 70, BudgetEstimate: 4000},
	}
}

func ids(leads []models.Lead) []int {
	out := make([]int, len(leads))
	for i, l := range leads {
		out[i] = l.ID
	}
	return out
}

func TestLeadsNameSubstringCaseInsensitive(t *testing.T) {
	got := Leads(tenLeads(), LeadCriteria{Query: "acme"})
	want := []int{1, 3, 6}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("expected %v, got %v", want, ids(got))
		}
	}
}

func TestLeadsNameAndStatusIntersection(t *testing.T) {
	got := Leads(tenLeads(), LeadCriteria{Query: "acme", Status: "Qualified"})
	want := []int{1, 6}
	if len(got) != len(want) || got[0].ID != 1 || got[1].ID != 6 {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}
}

func TestLeadsAllSentinelMeansNoConstraint(t *testing.T) {
	if got := Leads(tenLeads(), LeadCriteria{Status: "all"}); len(got) != 10 {
		t.Fatalf("expected all 10 leads, got %d", len(got))
	}
	if got := Leads(tenLeads(), LeadCriteria{}); len(got) != 10 {
		t.Fatalf("expected all 10 leads for empty criteria, got %d", len(got))
	}
}

func TestLeadsThresholds(t *testing.T) {
	minScore := 50.0
	got := Leads(tenLeads(), LeadCriteria{MinScore: &minScore})
	for _, l := range got {
		if l.Score < minScore {
			t.Fatalf("lead %d below threshold: %v", l.ID, l.Score)
		}
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 leads at score >= 50, got %v", ids(got))
	}

	minBudget := 4000.0
	got = Leads(got, LeadCriteria{MinBudget: &minBudget})
	if len(got) != 4 {
		t.Fatalf("expected 4 leads after budget threshold, got %v", ids(got))
	}
}

func TestLeadsDoesNotMutateSource(t *testing.T) {
	leads := tenLeads()
	_ = Leads(leads, LeadCriteria{Query: "acme", Status: "Qualified"})
	fresh := tenLeads()
	for i := range leads {
		if leads[i].ID != fresh[i].ID || leads[i].Score != fresh[i].Score {
			t.Fatalf("source list mutated at %d: %+v", i, leads[i])
		}
	}
}

func TestParseLeadCriteria(t *testing.T) {
	q := url.Values{"q": {" acme "}, "status": {"Qualified"}, "min_score": {"42.5"}, "min_budget": {"junk"}}
	c := ParseLeadCriteria(q)
	if c.Query != "acme" || c.Status != "Qualified" {
		t.Fatalf("unexpected criteria: %+v", c)
	}
	if c.MinScore == nil || *c.MinScore != 42.5 {
		t.Fatalf("min_score not parsed: %+v", c.MinScore)
	}
	if c.MinBudget != nil {
		t.Fatalf("invalid min_budget should be ignored, got %v", *c.MinBudget)
	}
}

func TestCompaniesContactTypeAndScore(t *testing.T) {
	score := func(f float64) *float64 { return &f }
	companies := []models.CompanyInfo{
		{ID: 1, CompanyName: "Acme", ContactType: models.ContactTypeLead, ExpectedScore: score(80), BudgetEstimate: 5000},
		{ID: 2, CompanyName: "Globex", ContactType: models.ContactTypeClient, BudgetEstimate: 9000},
		{ID: 3, CompanyName: "Initech", ContactType: models.ContactTypeLead, ExpectedScore: score(20), BudgetEstimate: 1000},
	}

	got := Companies(companies, CompanyCriteria{ContactType: models.ContactTypeLead})
	if len(got) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(got))
	}

	minScore := 50.0
	got = Companies(companies, CompanyCriteria{MinScore: &minScore})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only company 1, got %+v", got)
	}
}
