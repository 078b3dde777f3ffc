package handlers

import (
	"net/http"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/salesdesk/salesdesk/httpx"
	"github.com/salesdesk/salesdesk/internal/crm"
	"github.com/salesdesk/salesdesk/internal/models"
	"github.com/salesdesk/salesdesk/view"
)

// DashboardHandler computes the overview metrics from fresh list loads.
// Nothing is cached between requests; the page shows what the backend
// returned just now.
type DashboardHandler struct {
	API *crm.Client
	Log *logrus.Logger
}

func NewDashboardHandler(api *crm.Client, log *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{API: api, Log: log}
}

// Metrics is the computed dashboard summary.
type Metrics struct {
	TotalLeads     int     `json:"total_leads"`
	QualifiedLeads int     `json:"qualified_leads"`
	AverageScore   float64 `json:"average_score"`
	TotalClients   int     `json:"total_clients"`
	TotalInvoices  int     `json:"total_invoices"`
	PaidRevenue    float64 `json:"paid_revenue"`
	OutstandingDue float64 `json:"outstanding_due"`
}

// Show: GET /dashboard. Each list load fails independently; one broken
// endpoint blanks its own cards, not the whole page.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	tok := token(r)

	leads, err := h.API.ListLeads(r.Context(), tok)
	if err != nil {
		logErr(h.Log, r, err, "Failed to load leads")
		if crm.IsUnauthorized(err) {
			h.fail(w, r, err)
			return
		}
	}
	clients, err := h.API.ListCustomers(r.Context(), tok)
	if err != nil {
		logErr(h.Log, r, err, "Failed to load clients")
	}
	invoices, err := h.API.ListInvoices(r.Context(), tok)
	if err != nil {
		logErr(h.Log, r, err, "Failed to load invoices")
	}

	m := computeMetrics(leads, clients, invoices)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, m)
		return
	}
	data := map[string]any{
		"Metrics":     m,
		"RecentLeads": recentLeads(leads, 5),
	}
	if err := view.Render(w, r, "dashboard.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}

func (h *DashboardHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, errStatus(err), "unauthorized", nil)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func computeMetrics(leads []models.Lead, clients []models.Client, invoices []models.Invoice) Metrics {
	m := Metrics{
		TotalLeads:    len(leads),
		TotalClients:  len(clients),
		TotalInvoices: len(invoices),
	}
	var scoreSum float64
	for _, l := range leads {
		scoreSum += l.Score
		if l.Status == models.LeadStatusQualified {
			m.QualifiedLeads++
		}
	}
	if len(leads) > 0 {
		m.AverageScore = scoreSum / float64(len(leads))
	}
	for _, inv := range invoices {
		switch inv.Status {
		case models.InvoiceStatusPaid:
			m.PaidRevenue += inv.TotalAmount
		case models.InvoiceStatusSent, models.InvoiceStatusOverdue:
			m.OutstandingDue += inv.TotalAmount
		}
	}
	return m
}

// recentLeads returns the newest n leads by creation time, newest first.
func recentLeads(leads []models.Lead, n int) []models.Lead {
	out := make([]models.Lead, len(leads))
	copy(out, leads)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
