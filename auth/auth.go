// Package auth holds the browser session for the CRM front-end. The session
// is the server-side analog of the SPA's local storage: it carries the API
// token issued by the CRM backend, the username, and the superuser flag, in
// an HMAC-signed cookie. The token is never verified against the server here;
// a stale token simply surfaces as 401s on the API calls that use it.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/salesdesk/salesdesk/httpx"
)

type ctxKey string

const (
	sessionCookieName = "session"
	sessionCtxKey     = ctxKey("session")

	sessionTTL = 14 * 24 * time.Hour
)

// Session is the persisted sign-in state.
type Session struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	Superuser bool   `json:"is_superuser"`
}

var secretOverride string

// SetSecret installs the signing secret from configuration. Sessions signed
// under a previous secret stop validating.
func SetSecret(s string) { secretOverride = s }

// Secret returns the configured secret, falling back to SESSION_SECRET or a
// default dev value.
func Secret() string {
	if secretOverride != "" {
		return secretOverride
	}
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "devsessionsecret"
}

func sign(payload []byte) string {
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write(payload)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CreateSession sets a signed cookie with the session payload.
func CreateSession(w http.ResponseWriter, s Session) {
	payload, err := json.Marshal(s)
	if err != nil {
		return
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    encoded + "." + sign(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(sessionTTL),
	})
}

// ClearSession deletes the session cookie.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// ParseSession validates the cookie signature and returns the session.
func ParseSession(r *http.Request) (Session, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return Session{}, false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return Session{}, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return Session{}, false
	}
	if !hmac.Equal([]byte(parts[1]), []byte(sign(payload))) {
		return Session{}, false
	}
	var s Session
	if err := json.Unmarshal(payload, &s); err != nil || s.Token == "" {
		return Session{}, false
	}
	return s, true
}

// WithSession stores the session in context.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, s)
}

// SessionFromContext extracts the session.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionCtxKey).(Session)
	return s, ok
}

// Middleware attaches the session to the request context if present. Pages
// downstream see one of two states: session present, or no session at all;
// a malformed or tampered cookie is indistinguishable from absence.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s, ok := ParseSession(r); ok {
			r = r.WithContext(WithSession(r.Context(), s))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth redirects to /login if not signed in (HTML) or returns 401 JSON.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFromContext(r.Context()); !ok {
			if httpx.WantsJSON(r) {
				httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSuperuser additionally requires the superuser flag from login.
func RequireSuperuser(next http.Handler) http.Handler {
	return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, _ := SessionFromContext(r.Context())
		if !s.Superuser {
			if httpx.WantsJSON(r) {
				httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
				return
			}
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}))
}
