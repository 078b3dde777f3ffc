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
	msgLoadCompanies = "Failed to load companies"
	msgAddCompany    = "Failed to add company"
)

// CompanyHandler serves the unified lead/client directory. The contact_type
// narrowing happens server-side; everything else is filtered locally.
type CompanyHandler struct {
	API *crm.Client
	Log *logrus.Logger
}

func NewCompanyHandler(api *crm.Client, log *logrus.Logger) *CompanyHandler {
	return &CompanyHandler{API: api, Log: log}
}

// List: GET /companies.
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	criteria := filter.ParseCompanyCriteria(r.URL.Query())

	contactType := ""
	if t := strings.ToUpper(criteria.ContactType); t == models.ContactTypeLead || t == models.ContactTypeClient {
		contactType = t
	}
	companies, err := h.API.ListCompanies(r.Context(), token(r), contactType)
	if err != nil {
		logErr(h.Log, r, err, msgLoadCompanies)
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, errStatus(err), "failed_to_load_companies", nil)
			return
		}
		h.render(w, r, nil, criteria, models.NewCompanyDraft(), msgLoadCompanies)
		return
	}
	visible := filter.Companies(companies, criteria)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": visible, "total": len(visible)})
		return
	}
	h.render(w, r, visible, criteria, models.NewCompanyDraft(), "")
}

// Create: POST /companies.
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	draft, err := decodeCompanyDraft(r)
	if err != nil {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
		h.render(w, r, nil, filter.CompanyCriteria{}, models.NewCompanyDraft(), msgAddCompany)
		return
	}
	created, err := h.API.CreateCompany(r.Context(), token(r), draft)
	if err != nil {
		logErr(h.Log, r, err, msgAddCompany)
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, errStatus(err), "failed_to_add_company", nil)
			return
		}
		companies, _ := h.API.ListCompanies(r.Context(), token(r), "")
		h.render(w, r, companies, filter.CompanyCriteria{}, draft, msgAddCompany)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, created)
		return
	}
	http.Redirect(w, r, "/companies", http.StatusSeeOther)
}

func (h *CompanyHandler) render(w http.ResponseWriter, r *http.Request, companies []models.CompanyInfo, criteria filter.CompanyCriteria, draft models.CompanyDraft, errMsg string) {
	data := map[string]any{
		"Companies": companies,
		"Criteria":  criteria,
		"Draft":     draft,
		"Types":     []string{models.ContactTypeLead, models.ContactTypeClient},
	}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	if err := view.Render(w, r, "companies.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}

func decodeCompanyDraft(r *http.Request) (models.CompanyDraft, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var draft models.CompanyDraft
		err := json.NewDecoder(r.Body).Decode(&draft)
		return draft, err
	}
	if err := r.ParseForm(); err != nil {
		return models.CompanyDraft{}, err
	}
	draft := models.CompanyDraft{
		CompanyName:    strings.TrimSpace(r.FormValue("company_name")),
		Industry:       strings.TrimSpace(r.FormValue("industry")),
		EmployeeCount:  formInt(r, "employee_count"),
		BudgetEstimate: formFloat(r, "budget_estimate"),
		Country:        strings.TrimSpace(r.FormValue("country")),
		CompanyNeeds:   strings.TrimSpace(r.FormValue("company_needs")),
		Description:    strings.TrimSpace(r.FormValue("description")),
		ContactType:    strings.ToUpper(strings.TrimSpace(r.FormValue("contact_type"))),
	}
	if draft.ContactType == "" {
		draft.ContactType = models.ContactTypeLead
	}
	return draft, nil
}
