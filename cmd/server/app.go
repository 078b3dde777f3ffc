package main

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/salesdesk/salesdesk/auth"
	"github.com/salesdesk/salesdesk/internal/crm"
	"github.com/salesdesk/salesdesk/internal/handlers"
	"github.com/salesdesk/salesdesk/internal/middleware"
	"github.com/salesdesk/salesdesk/internal/store"
	"github.com/salesdesk/salesdesk/view"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
}

// NewApp creates a new application with all routes configured.
func NewApp(api *crm.Client, prefs *store.Prefs, log *logrus.Logger) *App {
	app := &App{mux: http.NewServeMux()}

	ah := handlers.NewAuthHandler(api, log)
	dh := handlers.NewDashboardHandler(api, log)
	lh := handlers.NewLeadHandler(api, log)
	ch := handlers.NewClientHandler(api, log)
	eh := handlers.NewEmployeeHandler(api, log)
	ih := handlers.NewInvoiceHandler(api, log)
	coh := handlers.NewCompanyHandler(api, log)
	sh := handlers.NewSettingsHandler(api, prefs, log)

	mux := app.mux

	// Public routes
	mux.HandleFunc("GET /", app.landingPage)
	mux.HandleFunc("GET /login", ah.Login)
	mux.HandleFunc("POST /login", ah.Login)
	mux.HandleFunc("GET /logout", ah.Logout)
	mux.HandleFunc("POST /logout", ah.Logout)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Authenticated routes
	mux.Handle("GET /dashboard", auth.RequireAuth(http.HandlerFunc(dh.Show)))

	mux.Handle("GET /leads", auth.RequireAuth(http.HandlerFunc(lh.List)))
	mux.Handle("POST /leads", auth.RequireAuth(http.HandlerFunc(lh.Create)))
	mux.Handle("GET /leads/{id}/assign", auth.RequireAuth(http.HandlerFunc(lh.AssignForm)))
	mux.Handle("POST /leads/{id}/assign", auth.RequireAuth(http.HandlerFunc(lh.Assign)))
	mux.Handle("POST /leads/{id}/rescore", auth.RequireAuth(http.HandlerFunc(lh.Rescore)))
	mux.Handle("POST /leads/{id}/convert", auth.RequireAuth(http.HandlerFunc(lh.Convert)))

	mux.Handle("GET /clients", auth.RequireAuth(http.HandlerFunc(ch.List)))
	mux.Handle("POST /clients", auth.RequireAuth(http.HandlerFunc(ch.Create)))

	mux.Handle("GET /employees", auth.RequireAuth(http.HandlerFunc(eh.List)))
	mux.Handle("POST /employees", auth.RequireSuperuser(http.HandlerFunc(eh.Create)))

	mux.Handle("GET /invoices", auth.RequireAuth(http.HandlerFunc(ih.List)))
	mux.Handle("POST /invoices", auth.RequireAuth(http.HandlerFunc(ih.Create)))
	mux.Handle("GET /invoices/{id}/pdf", auth.RequireAuth(http.HandlerFunc(ih.ExportPDF)))

	mux.Handle("GET /companies", auth.RequireAuth(http.HandlerFunc(coh.List)))
	mux.Handle("POST /companies", auth.RequireAuth(http.HandlerFunc(coh.Create)))

	mux.Handle("GET /settings", auth.RequireAuth(http.HandlerFunc(sh.Show)))
	mux.Handle("POST /settings", auth.RequireAuth(http.HandlerFunc(sh.Save)))

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	return app
}

// ServeHTTP implements http.Handler. Global middleware: session context,
// then theme preference.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	auth.Middleware(middleware.Theme(a.mux)).ServeHTTP(w, r)
}

func (a *App) landingPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if _, ok := auth.SessionFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	if err := view.Render(w, r, "index.html", nil); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}
