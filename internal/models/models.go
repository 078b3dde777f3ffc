package models

import "time"

// Employee is a CRM user that leads can be assigned to.
type Employee struct {
	ID         int     `json:"id"`
	Username   string  `json:"username"`
	Email      string  `json:"email,omitempty"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Department string  `json:"department,omitempty"`
	Position   string  `json:"position,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Salary     float64 `json:"salary,omitempty"`
	IsActive   bool    `json:"is_active"`
}

// FullName returns "First Last" for table and select rendering.
func (e Employee) FullName() string { return e.FirstName + " " + e.LastName }

// EmployeeDraft is the create-form payload for a new employee account.
type EmployeeDraft struct {
	Username   string  `json:"username" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required"`
	FirstName  string  `json:"first_name" validate:"required"`
	LastName   string  `json:"last_name" validate:"required"`
	Department string  `json:"department,omitempty"`
	Position   string  `json:"position,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Salary     float64 `json:"salary" validate:"gte=0"`
	IsActive   bool    `json:"is_active"`
}

// Client is a converted lead. Conversion remaps the field set; no identity is
// shared with the lead it came from.
type Client struct {
	ID            int    `json:"id"`
	CompanyName   string `json:"company_name"`
	Industry      string `json:"industry"`
	Country       string `json:"country"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address,omitempty"`
}

// ClientDraft is the editable subset used by the client create form.
type ClientDraft struct {
	CompanyName   string `json:"company_name"`
	Industry      string `json:"industry"`
	Country       string `json:"country"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address,omitempty"`
}

// InvoiceStatus is the billing state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "Draft"
	InvoiceStatusSent    InvoiceStatus = "Sent"
	InvoiceStatusPaid    InvoiceStatus = "Paid"
	InvoiceStatusOverdue InvoiceStatus = "Overdue"
)

// InvoiceStatuses lists the valid statuses in display order.
func InvoiceStatuses() []InvoiceStatus {
	return []InvoiceStatus{InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue}
}

// CustomerRef is the embedded customer summary the API attaches to invoices.
type CustomerRef struct {
	CompanyName string `json:"company_name"`
}

// Invoice as returned by the CRM API.
type Invoice struct {
	ID              int           `json:"id"`
	InvoiceNumber   string        `json:"invoice_number"`
	Customer        int           `json:"customer"`
	CustomerDetails *CustomerRef  `json:"customer_details,omitempty"`
	TotalAmount     float64       `json:"total_amount"`
	Status          InvoiceStatus `json:"status"`
	DueDate         string        `json:"due_date"`
}

// CustomerName renders the linked customer or a placeholder.
func (i Invoice) CustomerName() string {
	if i.CustomerDetails == nil {
		return "—"
	}
	return i.CustomerDetails.CompanyName
}

// InvoiceDraft is the create-form payload for a new invoice.
type InvoiceDraft struct {
	InvoiceNumber string        `json:"invoice_number"`
	Customer      int           `json:"customer"`
	TotalAmount   float64       `json:"total_amount"`
	Status        InvoiceStatus `json:"status"`
	DueDate       string        `json:"due_date"`
}

// NewInvoiceDraft returns an empty draft with the default status.
func NewInvoiceDraft() InvoiceDraft {
	return InvoiceDraft{Status: InvoiceStatusDraft}
}

// Contact types for the unified company record.
const (
	ContactTypeLead   = "LEAD"
	ContactTypeClient = "CLIENT"
)

// CompanyInfo is the unified lead/client shape served by /api/companies/.
// ExpectedScore only applies to leads; the server clears it for clients.
type CompanyInfo struct {
	ID             int       `json:"id"`
	CompanyName    string    `json:"company_name"`
	Industry       string    `json:"industry"`
	EmployeeCount  int       `json:"employee_count"`
	BudgetEstimate float64   `json:"budget_estimate"`
	Country        string    `json:"country"`
	CompanyNeeds   string    `json:"company_needs"`
	Description    string    `json:"description"`
	ContactType    string    `json:"contact_type"`
	ExpectedScore  *float64  `json:"expected_score,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// CompanyDraft is the editable subset used by the company create form.
type CompanyDraft struct {
	CompanyName    string  `json:"company_name"`
	Industry       string  `json:"industry"`
	EmployeeCount  int     `json:"employee_count"`
	BudgetEstimate float64 `json:"budget_estimate"`
	Country        string  `json:"country"`
	CompanyNeeds   string  `json:"company_needs"`
	Description    string  `json:"description"`
	ContactType    string  `json:"contact_type"`
}

// NewCompanyDraft returns an empty draft typed as a lead.
func NewCompanyDraft() CompanyDraft {
	return CompanyDraft{ContactType: ContactTypeLead}
}

// Settings is the shared branding document behind GET|PUT /api/settings/.
type Settings struct {
	Logo   string            `json:"logo"`
	Colors map[string]string `json:"colors"`
}

// DefaultColors mirrors the palette the backend seeds on first read.
func DefaultColors() map[string]string {
	return map[string]string{
		"primary":    "#4f46e5",
		"secondary":  "#f59e0b",
		"accent":     "#10b981",
		"background": "#ffffff",
		"text":       "#111827",
	}
}
