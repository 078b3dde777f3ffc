package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/salesdesk/salesdesk/auth"
	"github.com/salesdesk/salesdesk/httpx"
	"github.com/salesdesk/salesdesk/internal/crm"
	"github.com/salesdesk/salesdesk/internal/models"
	"github.com/salesdesk/salesdesk/internal/store"
	"github.com/salesdesk/salesdesk/view"
)

const (
	msgLoadSettings = "Failed to load settings"
	msgSaveSettings = "Failed to save settings"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// SettingsHandler manages the shared branding document plus the per-user
// theme and logo override stored locally.
type SettingsHandler struct {
	API   *crm.Client
	Prefs *store.Prefs
	Log   *logrus.Logger
}

func NewSettingsHandler(api *crm.Client, prefs *store.Prefs, log *logrus.Logger) *SettingsHandler {
	return &SettingsHandler{API: api, Prefs: prefs, Log: log}
}

// Show: GET /settings. Backend settings are overlaid with the user's local
// override; a backend failure still renders the page with the local copy.
func (h *SettingsHandler) Show(w http.ResponseWriter, r *http.Request) {
	settings, err := h.API.GetSettings(r.Context(), token(r))
	errMsg := ""
	if err != nil {
		logErr(h.Log, r, err, msgLoadSettings)
		errMsg = msgLoadSettings
		settings = models.Settings{Colors: models.DefaultColors()}
	}
	merged := h.overlay(r, settings)
	if httpx.WantsJSON(r) {
		if errMsg != "" {
			httpx.JSONError(w, errStatus(err), "failed_to_load_settings", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, merged)
		return
	}
	h.render(w, r, merged, errMsg)
}

// Save: POST /settings. Colors are validated before anything leaves the
// server; the backend write and the local cache update happen together.
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	settings, theme, err := decodeSettings(r)
	if err != nil {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
		h.render(w, r, models.Settings{Colors: models.DefaultColors()}, msgSaveSettings)
		return
	}

	for name, value := range settings.Colors {
		norm, ok := normalizeHex(value)
		if !ok {
			if httpx.WantsJSON(r) {
				httpx.JSONError(w, http.StatusBadRequest, "invalid_color", map[string]string{name: value})
				return
			}
			h.render(w, r, settings, "Colors must be hex values like #4f46e5")
			return
		}
		settings.Colors[name] = norm
	}

	updated, err := h.API.UpdateSettings(r.Context(), token(r), settings)
	if err != nil {
		logErr(h.Log, r, err, msgSaveSettings)
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, errStatus(err), "failed_to_save_settings", nil)
			return
		}
		h.render(w, r, settings, msgSaveSettings)
		return
	}

	if sess, ok := auth.SessionFromContext(r.Context()); ok {
		if err := h.Prefs.SetBranding(sess.Username, updated.Logo, updated.Colors); err != nil {
			logErr(h.Log, r, err, "Failed to cache branding")
		}
		if theme != "" {
			if err := h.Prefs.SetTheme(sess.Username, theme); err != nil {
				logErr(h.Log, r, err, "Failed to save theme")
			}
			// The theme middleware reads the cookie, so the saved theme
			// takes effect on the very next request.
			http.SetCookie(w, &http.Cookie{Name: "theme", Value: theme, Path: "/", MaxAge: 86400 * 30})
		}
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, updated)
		return
	}
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

// overlay applies the user's stored logo override and fills palette gaps
// first from the cached palette of the last accepted save, then from the
// defaults, so the form always has every slot. Backend values win when
// present.
func (h *SettingsHandler) overlay(r *http.Request, settings models.Settings) models.Settings {
	if settings.Colors == nil {
		settings.Colors = map[string]string{}
	}
	if sess, ok := auth.SessionFromContext(r.Context()); ok {
		pref, err := h.Prefs.Get(sess.Username)
		if err == nil {
			if pref.LogoOverride != "" {
				settings.Logo = pref.LogoOverride
			}
			for name, value := range pref.ColorMap() {
				if settings.Colors[name] == "" {
					settings.Colors[name] = value
				}
			}
		}
	}
	for name, value := range models.DefaultColors() {
		if settings.Colors[name] == "" {
			settings.Colors[name] = value
		}
	}
	return settings
}

func (h *SettingsHandler) render(w http.ResponseWriter, r *http.Request, settings models.Settings, errMsg string) {
	data := map[string]any{
		"Settings": settings,
	}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	if err := view.Render(w, r, "settings.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
	}
}

// normalizeHex validates a hex color, expanding #abc shorthand to #aabbcc.
func normalizeHex(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if !hexColor.MatchString(value) {
		return "", false
	}
	value = strings.ToLower(value)
	if len(value) == 4 {
		expanded := []byte{'#', value[1], value[1], value[2], value[2], value[3], value[3]}
		return string(expanded), true
	}
	return value, true
}

func decodeSettings(r *http.Request) (models.Settings, string, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var payload struct {
			models.Settings
			Theme string `json:"theme,omitempty"`
		}
		err := json.NewDecoder(r.Body).Decode(&payload)
		return payload.Settings, payload.Theme, err
	}
	if err := r.ParseForm(); err != nil {
		return models.Settings{}, "", err
	}
	settings := models.Settings{
		Logo:   strings.TrimSpace(r.FormValue("logo")),
		Colors: map[string]string{},
	}
	for name := range models.DefaultColors() {
		if v := strings.TrimSpace(r.FormValue("color_" + name)); v != "" {
			settings.Colors[name] = v
		}
	}
	return settings, strings.TrimSpace(r.FormValue("theme")), nil
}
