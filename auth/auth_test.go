package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func cookieFor(t *testing.T, s Session) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	CreateSession(w, s)
	res := w.Result()
	defer res.Body.Close()
	for _, c := range res.Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestSecretChangeInvalidatesSessions(t *testing.T) {
	SetSecret("first-secret")
	defer SetSecret("")

	c := cookieFor(t, Session{Token: "abc", Username: "ada"})

	SetSecret("second-secret")
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(c)
	if _, ok := ParseSession(r); ok {
		t.Fatal("session signed under the old secret still validates")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	s := Session{Token: "abc123", Username: "ada", Superuser: true}
	c := cookieFor(t, s)

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(c)
	got, ok := ParseSession(r)
	if !ok {
		t.Fatal("expected session to parse")
	}
	if got != s {
		t.Fatalf("round trip mismatch: %+v != %+v", got, s)
	}
}

func TestTamperedCookieRejected(t *testing.T) {
	c := cookieFor(t, Session{Token: "abc123", Username: "ada"})
	// Flip the payload but keep the old signature.
	i := strings.IndexByte(c.Value, '.')
	c.Value = c.Value[:i-1] + "x" + c.Value[i:]

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(c)
	if _, ok := ParseSession(r); ok {
		t.Fatal("tampered cookie accepted")
	}
}

func TestEmptyTokenRejected(t *testing.T) {
	c := cookieFor(t, Session{Token: "", Username: "ada"})
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)
	if _, ok := ParseSession(r); ok {
		t.Fatal("session without token accepted")
	}
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	h := Middleware(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("protected handler reached without session")
	})))
	r := httptest.NewRequest(http.MethodGet, "/leads", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestRequireAuthJSON401(t *testing.T) {
	h := Middleware(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))
	r := httptest.NewRequest(http.MethodGet, "/leads", nil)
	r.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireSuperuser(t *testing.T) {
	reached := false
	h := Middleware(RequireSuperuser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	})))

	r := httptest.NewRequest(http.MethodGet, "/employees", nil)
	r.AddCookie(cookieFor(t, Session{Token: "t", Username: "bob", Superuser: false}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if reached {
		t.Fatal("non-superuser reached protected handler")
	}
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", w.Code)
	}

	r = httptest.NewRequest(http.MethodGet, "/employees", nil)
	r.AddCookie(cookieFor(t, Session{Token: "t", Username: "root", Superuser: true}))
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if !reached {
		t.Fatal("superuser blocked")
	}
}
