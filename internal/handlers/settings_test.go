package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/salesdesk/salesdesk/internal/models"
	"github.com/salesdesk/salesdesk/internal/store"
)

func testPrefs(t *testing.T) *store.Prefs {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := store.Open(dsn)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.NewPrefs(db)
}

func TestSettingsShowJSON(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/settings/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"logo":"https://cdn.example.com/logo.png","colors":{"primary":"#123456"}}`)
	})
	h := NewSettingsHandler(api, testPrefs(t), testLogger())

	rec := httptest.NewRecorder()
	h.Show(rec, jsonReq(http.MethodGet, "/settings", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var s models.Settings
	decodeBody(t, rec, &s)
	if s.Logo != "https://cdn.example.com/logo.png" {
		t.Fatalf("logo = %q", s.Logo)
	}
	if s.Colors["primary"] != "#123456" {
		t.Fatalf("primary = %q", s.Colors["primary"])
	}
	// gaps in the backend palette are filled with defaults
	if s.Colors["background"] != "#ffffff" {
		t.Fatalf("background = %q", s.Colors["background"])
	}
}

func TestSettingsSaveValidatesColors(t *testing.T) {
	called := false
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) { called = true })
	h := NewSettingsHandler(api, testPrefs(t), testLogger())

	body := `{"logo":"","colors":{"primary":"notacolor"}}`
	rec := httptest.NewRecorder()
	h.Save(rec, jsonReq(http.MethodPost, "/settings", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if called {
		t.Fatal("backend called with an invalid color")
	}
}

func TestSettingsSaveExpandsShorthandAndCaches(t *testing.T) {
	var received models.Settings
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&received)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(received)
	})
	prefs := testPrefs(t)
	h := NewSettingsHandler(api, prefs, testLogger())

	body := `{"logo":"https://cdn.example.com/new.png","colors":{"primary":"#ABC"}}`
	rec := httptest.NewRecorder()
	h.Save(rec, jsonReq(http.MethodPost, "/settings", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if received.Colors["primary"] != "#aabbcc" {
		t.Fatalf("primary sent upstream = %q, want expanded lowercase", received.Colors["primary"])
	}

	pref, err := prefs.Get("alice")
	if err != nil {
		t.Fatalf("prefs get: %v", err)
	}
	if pref.LogoOverride != "https://cdn.example.com/new.png" {
		t.Fatalf("cached logo = %q", pref.LogoOverride)
	}
	if pref.ColorMap()["primary"] != "#aabbcc" {
		t.Fatalf("cached primary = %q", pref.ColorMap()["primary"])
	}
}

func TestSettingsSaveThemePersistsAndSetsCookie(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"logo":"","colors":{}}`)
	})
	prefs := testPrefs(t)
	h := NewSettingsHandler(api, prefs, testLogger())

	body := `{"logo":"","colors":{},"theme":"dark"}`
	rec := httptest.NewRecorder()
	h.Save(rec, jsonReq(http.MethodPost, "/settings", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	pref, err := prefs.Get("alice")
	if err != nil {
		t.Fatalf("prefs get: %v", err)
	}
	if pref.Theme != "dark" {
		t.Fatalf("stored theme = %q, want dark", pref.Theme)
	}
	// The theme middleware reads the cookie, so the save must set it too.
	cookie := rec.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "theme=dark") {
		t.Fatalf("theme cookie not set: %q", cookie)
	}
}

func TestSettingsShowUsesCachedPalette(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"logo":"","colors":{}}`)
	})
	prefs := testPrefs(t)
	if err := prefs.SetBranding("alice", "", map[string]string{"primary": "#111111"}); err != nil {
		t.Fatalf("seed branding: %v", err)
	}
	h := NewSettingsHandler(api, prefs, testLogger())

	rec := httptest.NewRecorder()
	h.Show(rec, jsonReq(http.MethodGet, "/settings", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var s models.Settings
	decodeBody(t, rec, &s)
	if s.Colors["primary"] != "#111111" {
		t.Fatalf("primary = %q, want the cached palette value", s.Colors["primary"])
	}
	// slots the cache does not cover still fall back to defaults
	if s.Colors["background"] != "#ffffff" {
		t.Fatalf("background = %q", s.Colors["background"])
	}
}

func TestNormalizeHex(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"#4f46e5", "#4f46e5", true},
		{"#ABC", "#aabbcc", true},
		{" #fff ", "#ffffff", true},
		{"4f46e5", "", false},
		{"#12345", "", false},
		{"#gggggg", "", false},
	}
	for _, tc := range cases {
		got, ok := normalizeHex(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("normalizeHex(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
