package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/salesdesk/salesdesk/httpx"
	"github.com/salesdesk/salesdesk/internal/crm"
	"github.com/salesdesk/salesdesk/internal/models"
	"github.com/salesdesk/salesdesk/view"
)

// ClientHandler serves the converted-client list and its create form.
type ClientHandler struct {
	API *crm.Client
	Log *logrus.Logger
}

func NewClientHandler(api *crm.Client, log *logrus.Logger) *ClientHandler {
	return &ClientHandler{API: api, Log: log}
}

// List: GET /clients.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.API.ListCustomers(r.Context(), token(r))
	if err != nil {
		logErr(h.Log, r, err, "Failed to load clients")
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, errStatus(err), "failed_to_load_clients", nil)
			return
		}
		h.render(w, r, nil, models.ClientDraft{}, "Failed to load clients")
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": clients, "total": len(clients)})
		return
	}
	h.render(w, r, clients, models.ClientDraft{}, "")
}

// Create: POST /clients.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	draft, err := decodeClientDraft(r)
	if err != nil {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
		h.render(w, r, nil, models.ClientDraft{}, "Failed to add client")
		return
	}

	created, err := h.API.CreateCustomer(r.Context(), token(r), draft)
	if err != nil {
		logErr(h.Log, r, err, "Failed to add client")
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, errStatus(err), "failed_to_add_client", nil)
			return
		}
		clients, _ := h.API.ListCustomers(r.Context(), token(r))
		h.render(w, r, clients, draft, "Failed to add client")
		return
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, created)
		return
	}
	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}

func (h *ClientHandler) render(w http.ResponseWriter, r *http.Request, clients []models.Client, draft models.ClientDraft, errMsg string) {
	data := map[string]any{"Clients": clients, "Draft": draft}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	if err := view.Render(w, r, "clients.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}

func decodeClientDraft(r *http.Request) (models.ClientDraft, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var draft models.ClientDraft
		err := json.NewDecoder(r.Body).Decode(&draft)
		return draft, err
	}
	if err := r.ParseForm(); err != nil {
		return models.ClientDraft{}, err
	}
	return models.ClientDraft{
		CompanyName:   strings.TrimSpace(r.FormValue("company_name")),
		Industry:      strings.TrimSpace(r.FormValue("industry")),
		Country:       strings.TrimSpace(r.FormValue("country")),
		ContactPerson: strings.TrimSpace(r.FormValue("contact_person")),
		Email:         strings.TrimSpace(r.FormValue("email")),
		Phone:         strings.TrimSpace(r.FormValue("phone")),
		Address:       strings.TrimSpace(r.FormValue("address")),
	}, nil
}
