package models

import "time"

// LeadStatus represents the qualification state of a lead.
type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "New"
	LeadStatusContacted   LeadStatus = "Contacted"
	LeadStatusQualified   LeadStatus = "Qualified"
	LeadStatusUnqualified LeadStatus = "Unqualified"
)

// LeadStatuses lists the valid statuses in display order.
func LeadStatuses() []LeadStatus {
	return []LeadStatus{LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusUnqualified}
}

// LeadSources lists the known acquisition channels offered on the create form.
func LeadSources() []string {
	return []string{"Website", "Referral", "Trade Show", "Social Media", "Cold Call", "Other"}
}

// Lead is a prospective customer as returned by the CRM API. The score is
// computed server-side and never set locally.
type Lead struct {
	ID             int        `json:"id"`
	CompanyName    string     `json:"company_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Source         string     `json:"source"`
	Status         LeadStatus `json:"status"`
	Industry       string     `json:"industry"`
	EmployeeCount  int        `json:"employee_count"`
	BudgetEstimate float64    `json:"budget_estimate"`
	Country        string     `json:"country"`
	Description    string     `json:"description"`
	CreatedAt      time.Time  `json:"created_at"`
	Score          float64    `json:"score"`
	AssignedTo     *Employee  `json:"assigned_to,omitempty"`
}

// AssignedName renders the responsible employee or a placeholder.
func (l Lead) AssignedName() string {
	if l.AssignedTo == nil {
		return "Unassigned"
	}
	return l.AssignedTo.FirstName + " " + l.AssignedTo.LastName
}

// LeadDraft holds the editable subset of a lead used by the create form.
// ID, score and created_at are owned by the server.
type LeadDraft struct {
	CompanyName    string     `json:"company_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Source         string     `json:"source"`
	Status         LeadStatus `json:"status"`
	Industry       string     `json:"industry"`
	EmployeeCount  int        `json:"employee_count"`
	BudgetEstimate float64    `json:"budget_estimate"`
	Country        string     `json:"country"`
	Description    string     `json:"description"`
}

// NewLeadDraft returns an empty draft with the default status.
func NewLeadDraft() LeadDraft {
	return LeadDraft{Status: LeadStatusNew}
}
