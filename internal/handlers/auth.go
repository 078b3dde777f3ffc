package handlers

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/salesdesk/salesdesk/auth"
	"github.com/salesdesk/salesdesk/httpx"
	"github.com/salesdesk/salesdesk/internal/crm"
	"github.com/salesdesk/salesdesk/view"
)

// AuthHandler signs users in against the CRM backend and manages the local
// session cookie.
type AuthHandler struct {
	API *crm.Client
	Log *logrus.Logger
}

func NewAuthHandler(api *crm.Client, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{API: api, Log: log}
}

// Login renders the form on GET and exchanges credentials on POST.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		_ = view.Render(w, r, "login.html", nil)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "missing_credentials", nil)
			return
		}
		_ = view.Render(w, r, "login.html", map[string]any{"Error": "Username and password are required", "Username": username})
		return
	}

	res, err := h.API.Login(r.Context(), username, password)
	if err != nil {
		logErr(h.Log, r, err, "login failed")
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, errStatus(err), "invalid_credentials", nil)
			return
		}
		_ = view.Render(w, r, "login.html", map[string]any{"Error": "Invalid username or password", "Username": username})
		return
	}

	auth.CreateSession(w, auth.Session{Token: res.Token, Username: res.Username, Superuser: res.Superuser})
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"username": res.Username, "is_superuser": res.Superuser})
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout invalidates the token server-side, best effort, and always clears
// the local session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if s, ok := auth.SessionFromContext(r.Context()); ok {
		if err := h.API.Logout(r.Context(), s.Token); err != nil {
			logErr(h.Log, r, err, "backend logout failed; clearing session anyway")
		}
	}
	auth.ClearSession(w)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
