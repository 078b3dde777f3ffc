package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/salesdesk/salesdesk/httpx"
	"github.com/salesdesk/salesdesk/internal/crm"
	"github.com/salesdesk/salesdesk/internal/models"
	"github.com/salesdesk/salesdesk/view"
)

// EmployeeHandler serves the employee roster and account creation. Creation
// is the one form with client-side required-field validation before the
// backend sees the payload.
type EmployeeHandler struct {
	API      *crm.Client
	Log      *logrus.Logger
	validate *validator.Validate
}

func NewEmployeeHandler(api *crm.Client, log *logrus.Logger) *EmployeeHandler {
	return &EmployeeHandler{API: api, Log: log, validate: validator.New()}
}

// List: GET /employees.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.API.ListEmployees(r.Context(), token(r))
	if err != nil {
		logErr(h.Log, r, err, "Failed to load employees")
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, errStatus(err), "failed_to_load_employees", nil)
			return
		}
		h.render(w, r, nil, models.EmployeeDraft{}, nil, "Failed to load employees")
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": employees, "total": len(employees)})
		return
	}
	h.render(w, r, employees, models.EmployeeDraft{}, nil, "")
}

// Create: POST /employees. Validates required fields locally, then defers to
// the backend for everything else.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	draft, err := decodeEmployeeDraft(r)
	if err != nil {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
		h.render(w, r, nil, models.EmployeeDraft{}, nil, "Failed to add employee")
		return
	}

	if violations := h.checkDraft(draft); len(violations) > 0 {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", violations)
			return
		}
		employees, _ := h.API.ListEmployees(r.Context(), token(r))
		h.render(w, r, employees, draft, violations, "Please fill in all required fields")
		return
	}

	created, err := h.API.CreateEmployee(r.Context(), token(r), draft)
	if err != nil {
		logErr(h.Log, r, err, "Failed to add employee")
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, errStatus(err), "failed_to_add_employee", nil)
			return
		}
		employees, _ := h.API.ListEmployees(r.Context(), token(r))
		h.render(w, r, employees, draft, nil, "Failed to add employee")
		return
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, created)
		return
	}
	http.Redirect(w, r, "/employees", http.StatusSeeOther)
}

// checkDraft maps validator errors to a field->problem map.
func (h *EmployeeHandler) checkDraft(draft models.EmployeeDraft) map[string]string {
	err := h.validate.Struct(draft)
	if err == nil {
		return nil
	}
	violations := map[string]string{}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			violations[strings.ToLower(fe.Field())] = fe.Tag()
		}
		return violations
	}
	violations["_"] = "invalid"
	return violations
}

func (h *EmployeeHandler) render(w http.ResponseWriter, r *http.Request, employees []models.Employee, draft models.EmployeeDraft, violations map[string]string, errMsg string) {
	data := map[string]any{
		"Employees":  employees,
		"Draft":      draft,
		"Violations": violations,
	}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	if err := view.Render(w, r, "employees.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}

func decodeEmployeeDraft(r *http.Request) (models.EmployeeDraft, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var draft models.EmployeeDraft
		err := json.NewDecoder(r.Body).Decode(&draft)
		return draft, err
	}
	if err := r.ParseForm(); err != nil {
		return models.EmployeeDraft{}, err
	}
	return models.EmployeeDraft{
		Username:   strings.TrimSpace(r.FormValue("username")),
		Email:      strings.TrimSpace(r.FormValue("email")),
		Password:   r.FormValue("password"),
		FirstName:  strings.TrimSpace(r.FormValue("first_name")),
		LastName:   strings.TrimSpace(r.FormValue("last_name")),
		Department: strings.TrimSpace(r.FormValue("department")),
		Position:   strings.TrimSpace(r.FormValue("position")),
		Phone:      strings.TrimSpace(r.FormValue("phone")),
		Salary:     formFloat(r, "salary"),
		IsActive:   r.FormValue("is_active") == "on" || r.FormValue("is_active") == "true",
	}, nil
}
