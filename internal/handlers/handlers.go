// Package handlers contains one handler type per page. Every handler is
// dual-format: browsers get rendered HTML, API consumers sending
// Accept: application/json get JSON. Error presentation is uniform: a single
// inline banner with a fixed resource message, with the underlying error
// going to the log only.
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/salesdesk/salesdesk/auth"
	"github.com/salesdesk/salesdesk/internal/crm"
)

// token returns the session API token; empty when anonymous. Routes behind
// RequireAuth always have one, but handlers double-check so a direct call
// degrades to the client's ErrNoToken precondition instead of a panic.
func token(r *http.Request) string {
	s, _ := auth.SessionFromContext(r.Context())
	return s.Token
}

// errStatus maps a client error to an HTTP status for JSON responses.
func errStatus(err error) int {
	if errors.Is(err, crm.ErrNoToken) {
		return http.StatusUnauthorized
	}
	var apiErr *crm.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusBadGateway
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func formInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(r.FormValue(name)))
	return n
}

func formFloat(r *http.Request, name string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(r.FormValue(name)), 64)
	return f
}

func logErr(log *logrus.Logger, r *http.Request, err error, msg string) {
	log.WithError(err).WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Error(msg)
}
