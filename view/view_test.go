package view

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/salesdesk/salesdesk/internal/middleware"
	"github.com/salesdesk/salesdesk/internal/models"
)

func renderClientsWithTheme(t *testing.T, theme string) string {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/clients", nil)
	r.AddCookie(&http.Cookie{Name: "theme", Value: theme})
	rec := httptest.NewRecorder()
	middleware.Theme(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{"Clients": nil, "Draft": models.ClientDraft{}}
		if err := Render(w, r, "clients.html", data); err != nil {
			t.Fatalf("Render: %v", err)
		}
	})).ServeHTTP(rec, r)
	return rec.Body.String()
}

func TestRenderUsesRequestTheme(t *testing.T) {
	if got := renderClientsWithTheme(t, "light"); !strings.Contains(got, "theme-light") {
		t.Fatalf("first render missing theme-light class")
	}
	// Second render hits the template cache; it must carry its own theme,
	// not the one captured when the template was first parsed.
	if got := renderClientsWithTheme(t, "dark"); !strings.Contains(got, "theme-dark") {
		t.Fatalf("cached render served a stale theme instead of dark")
	}
}

func TestRenderWrapsInLayout(t *testing.T) {
	body := renderClientsWithTheme(t, "system")
	if !strings.Contains(body, "<!doctype html>") {
		t.Fatalf("page not wrapped in layout")
	}
	if !strings.Contains(body, "Add client") {
		t.Fatalf("page content missing from layout render")
	}
}
