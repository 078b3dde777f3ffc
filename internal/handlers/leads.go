package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/salesdesk/salesdesk/httpx"
	"github.com/salesdesk/salesdesk/internal/crm"
	"github.com/salesdesk/salesdesk/internal/filter"
	"github.com/salesdesk/salesdesk/internal/models"
	"github.com/salesdesk/salesdesk/view"
)

const (
	msgLoadLeads     = "Failed to load leads"
	msgAddLead       = "Failed to add lead"
	msgLoadEmployees = "Failed to load employees"
	msgAssignLead    = "Failed to assign lead. Please try again."
	msgRescoreLead   = "Failed to score lead"
	msgConvertLead   = "Failed to convert lead"
)

// LeadHandler serves the lead list with its create form, the assignment
// dialog, and the per-row rescore and convert actions.
type LeadHandler struct {
	API *crm.Client
	Log *logrus.Logger
}

func NewLeadHandler(api *crm.Client, log *logrus.Logger) *LeadHandler {
	return &LeadHandler{API: api, Log: log}
}

// List: GET /leads. Loads the full list, applies the pure filter derived
// from query parameters, renders the visible subset.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.API.ListLeads(r.Context(), token(r))
	if err != nil {
		logErr(h.Log, r, err, msgLoadLeads)
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, errStatus(err), "failed_to_load_leads", nil)
			return
		}
		h.renderList(w, r, nil, filter.LeadCriteria{}, models.NewLeadDraft(), msgLoadLeads)
		return
	}

	criteria := filter.ParseLeadCriteria(r.URL.Query())
	visible := filter.Leads(leads, criteria)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": visible, "total": len(visible)})
		return
	}
	h.renderList(w, r, visible, criteria, models.NewLeadDraft(), "")
}

func (h *LeadHandler) renderList(w http.ResponseWriter, r *http.Request, leads []models.Lead, criteria filter.LeadCriteria, draft models.LeadDraft, errMsg string) {
	data := map[string]any{
		"Leads":    leads,
		"Criteria": criteria,
		"Draft":    draft,
		"Statuses": models.LeadStatuses(),
		"Sources":  models.LeadSources(),
	}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	if err := view.Render(w, r, "leads.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}

// Create: POST /leads, JSON or form. On success the server record is
// authoritative; the redirect re-renders the list with the new row and an
// empty draft. On failure the submitted draft is kept for retry.
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	draft, err := decodeLeadDraft(r)
	if err != nil {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
		h.renderList(w, r, nil, filter.LeadCriteria{}, models.NewLeadDraft(), msgAddLead)
		return
	}

	created, err := h.API.CreateLead(r.Context(), token(r), draft)
	if err != nil {
		logErr(h.Log, r, err, msgAddLead)
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, errStatus(err), "failed_to_add_lead", nil)
			return
		}
		// keep the draft so the user can retry
		leads, lerr := h.API.ListLeads(r.Context(), token(r))
		if lerr != nil {
			leads = nil
		}
		h.renderList(w, r, leads, filter.LeadCriteria{}, draft, msgAddLead)
		return
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, created)
		return
	}
	http.Redirect(w, r, "/leads", http.StatusSeeOther)
}

func decodeLeadDraft(r *http.Request) (models.LeadDraft, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var draft models.LeadDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			return models.LeadDraft{}, err
		}
		if draft.Status == "" {
			draft.Status = models.LeadStatusNew
		}
		return draft, nil
	}
	if err := r.ParseForm(); err != nil {
		return models.LeadDraft{}, err
	}
	draft := models.LeadDraft{
		CompanyName:    strings.TrimSpace(r.FormValue("company_name")),
		Email:          strings.TrimSpace(r.FormValue("email")),
		Phone:          strings.TrimSpace(r.FormValue("phone")),
		Source:         r.FormValue("source"),
		Status:         models.LeadStatus(r.FormValue("status")),
		Industry:       strings.TrimSpace(r.FormValue("industry")),
		EmployeeCount:  formInt(r, "employee_count"),
		BudgetEstimate: formFloat(r, "budget_estimate"),
		Country:        strings.TrimSpace(r.FormValue("country")),
		Description:    r.FormValue("description"),
	}
	if draft.Status == "" {
		draft.Status = models.LeadStatusNew
	}
	return draft, nil
}

// AssignForm: GET /leads/{id}/assign. The dialog page: employee roster plus
// the target lead. A roster fetch failure keeps the dialog usable for retry.
func (h *LeadHandler) AssignForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	var lead *models.Lead
	if leads, err := h.API.ListLeads(r.Context(), token(r)); err == nil {
		for i := range leads {
			if leads[i].ID == id {
				lead = &leads[i]
				break
			}
		}
	}

	employees, err := h.API.ListEmployees(r.Context(), token(r))
	errMsg := ""
	if err != nil {
		logErr(h.Log, r, err, msgLoadEmployees)
		errMsg = msgLoadEmployees
		employees = nil
	}

	if httpx.WantsJSON(r) {
		if err != nil {
			httpx.JSONError(w, errStatus(err), "failed_to_load_employees", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"lead_id": id, "employees": employees})
		return
	}
	h.renderAssign(w, r, id, lead, employees, 0, errMsg)
}

func (h *LeadHandler) renderAssign(w http.ResponseWriter, r *http.Request, leadID int, lead *models.Lead, employees []models.Employee, selected int, errMsg string) {
	data := map[string]any{
		"LeadID":    leadID,
		"Lead":      lead,
		"Employees": employees,
		"Selected":  selected,
	}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	if err := view.Render(w, r, "lead_assign.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}

// Assign: POST /leads/{id}/assign. Confirm needs both a lead and an
// employee. Success reloads the full list rather than patching locally, so
// the page can never diverge from server truth. Failure keeps the dialog
// open with the selection retained.
func (h *LeadHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	employeeID := formInt(r, "employee_id")
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			EmployeeID int `json:"employee_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.EmployeeID > 0 {
			employeeID = body.EmployeeID
		}
	}
	if employeeID <= 0 {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "employee_required", nil)
			return
		}
		employees, _ := h.API.ListEmployees(r.Context(), token(r))
		h.renderAssign(w, r, id, nil, employees, 0, "Select an employee")
		return
	}

	updated, err := h.API.AssignLead(r.Context(), token(r), id, employeeID)
	if err != nil {
		logErr(h.Log, r, err, msgAssignLead)
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, errStatus(err), "failed_to_assign_lead", nil)
			return
		}
		employees, _ := h.API.ListEmployees(r.Context(), token(r))
		h.renderAssign(w, r, id, nil, employees, employeeID, msgAssignLead)
		return
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, updated)
		return
	}
	http.Redirect(w, r, "/leads", http.StatusSeeOther)
}

// Rescore: POST /leads/{id}/rescore. The one sanctioned partial mutation:
// only the matched row's score changes, taken from the backend response.
func (h *LeadHandler) Rescore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	score, err := h.API.RescoreLead(r.Context(), token(r), id)
	if err != nil {
		logErr(h.Log, r, err, msgRescoreLead)
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, errStatus(err), "failed_to_score_lead", nil)
			return
		}
		leads, lerr := h.API.ListLeads(r.Context(), token(r))
		if lerr != nil {
			leads = nil
		}
		h.renderList(w, r, leads, filter.LeadCriteria{}, models.NewLeadDraft(), msgRescoreLead)
		return
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"id": id, "score": score})
		return
	}

	leads, err := h.API.ListLeads(r.Context(), token(r))
	if err != nil {
		logErr(h.Log, r, err, msgLoadLeads)
		h.renderList(w, r, nil, filter.LeadCriteria{}, models.NewLeadDraft(), msgLoadLeads)
		return
	}
	h.renderList(w, r, models.PatchScore(leads, id, score), filter.LeadCriteria{}, models.NewLeadDraft(), "")
}

// Convert: POST /leads/{id}/convert. The backend moves the record to the
// client list; the lead page simply reloads without it.
func (h *LeadHandler) Convert(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	converted, err := h.API.ConvertLead(r.Context(), token(r), id)
	if err != nil {
		logErr(h.Log, r, err, msgConvertLead)
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, errStatus(err), "failed_to_convert_lead", nil)
			return
		}
		leads, lerr := h.API.ListLeads(r.Context(), token(r))
		if lerr != nil {
			leads = nil
		}
		h.renderList(w, r, leads, filter.LeadCriteria{}, models.NewLeadDraft(), msgConvertLead)
		return
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, converted)
		return
	}
	http.Redirect(w, r, "/leads", http.StatusSeeOther)
}
