package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/salesdesk/salesdesk/httpx"
	"github.com/salesdesk/salesdesk/internal/crm"
	"github.com/salesdesk/salesdesk/internal/models"
	"github.com/salesdesk/salesdesk/internal/pdf"
	"github.com/salesdesk/salesdesk/view"
)

const (
	msgLoadInvoices = "Failed to load invoices"
	msgAddInvoice   = "Failed to add invoice"
)

type InvoiceHandler struct {
	API *crm.Client
	Log *logrus.Logger
}

func NewInvoiceHandler(api *crm.Client, log *logrus.Logger) *InvoiceHandler {
	return &InvoiceHandler{API: api, Log: log}
}

// List: GET /invoices. The customer dropdown on the create form needs the
// client list too; a failure there degrades the form but keeps the table.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.API.ListInvoices(r.Context(), token(r))
	if err != nil {
		logErr(h.Log, r, err, msgLoadInvoices)
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, errStatus(err), "failed_to_load_invoices", nil)
			return
		}
		h.render(w, r, nil, nil, models.NewInvoiceDraft(), msgLoadInvoices)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": invoices, "total": len(invoices)})
		return
	}
	customers, err := h.API.ListCustomers(r.Context(), token(r))
	if err != nil {
		logErr(h.Log, r, err, "Failed to load customers for invoice form")
		customers = nil
	}
	h.render(w, r, invoices, customers, models.NewInvoiceDraft(), "")
}

// Create: POST /invoices.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	draft, err := decodeInvoiceDraft(r)
	if err != nil {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
		h.render(w, r, nil, nil, models.NewInvoiceDraft(), msgAddInvoice)
		return
	}
	created, err := h.API.CreateInvoice(r.Context(), token(r), draft)
	if err != nil {
		logErr(h.Log, r, err, msgAddInvoice)
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, errStatus(err), "failed_to_add_invoice", nil)
			return
		}
		invoices, _ := h.API.ListInvoices(r.Context(), token(r))
		customers, _ := h.API.ListCustomers(r.Context(), token(r))
		h.render(w, r, invoices, customers, draft, msgAddInvoice)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, created)
		return
	}
	http.Redirect(w, r, "/invoices", http.StatusSeeOther)
}

// ExportPDF: GET /invoices/{id}/pdf. The list endpoint is the only read the
// API exposes, so the invoice is located there.
func (h *InvoiceHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_invoice_id", nil)
		return
	}
	invoices, err := h.API.ListInvoices(r.Context(), token(r))
	if err != nil {
		logErr(h.Log, r, err, msgLoadInvoices)
		httpx.JSONError(w, errStatus(err), "failed_to_load_invoices", nil)
		return
	}
	var target *models.Invoice
	for i := range invoices {
		if invoices[i].ID == id {
			target = &invoices[i]
			break
		}
	}
	if target == nil {
		httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdf.InvoiceFilename(*target)))
	if err := pdf.WriteInvoice(w, *target); err != nil {
		logErr(h.Log, r, err, "Failed to render invoice PDF")
	}
}

func (h *InvoiceHandler) render(w http.ResponseWriter, r *http.Request, invoices []models.Invoice, customers []models.Client, draft models.InvoiceDraft, errMsg string) {
	data := map[string]any{
		"Invoices":  invoices,
		"Customers": customers,
		"Draft":     draft,
		"Statuses":  models.InvoiceStatuses(),
	}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	if err := view.Render(w, r, "invoices.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}

func decodeInvoiceDraft(r *http.Request) (models.InvoiceDraft, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var draft models.InvoiceDraft
		err := json.NewDecoder(r.Body).Decode(&draft)
		return draft, err
	}
	if err := r.ParseForm(); err != nil {
		return models.InvoiceDraft{}, err
	}
	draft := models.InvoiceDraft{
		InvoiceNumber: strings.TrimSpace(r.FormValue("invoice_number")),
		Customer:      formInt(r, "customer"),
		TotalAmount:   formFloat(r, "total_amount"),
		Status:        models.InvoiceStatus(r.FormValue("status")),
		DueDate:       r.FormValue("due_date"),
	}
	if draft.Status == "" {
		draft.Status = models.InvoiceStatusDraft
	}
	return draft, nil
}
