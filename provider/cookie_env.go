package provider

import (
	"fmt"
	"net/http"
	"time"
)

// DefaultCookieTTL bounds how long an authorization may take.
const DefaultCookieTTL = 10 * time.Minute

// CookieEnv implements Env with short-lived HttpOnly cookies scoped to one provider.
type CookieEnv struct {
	scope  string
	secure bool
	w      http.ResponseWriter
	r      *http.Request
}

// NewCookieEnv creates an Env for one provider's authorization round trip.
func NewCookieEnv(scope string, w http.ResponseWriter, r *http.Request) *CookieEnv {
	return &CookieEnv{
		scope:  scope,
		secure: r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
		w:      w,
		r:      r,
	}
}

func (e *CookieEnv) name(key string) string {
	return fmt.Sprintf("oauth-%s-%s", e.scope, key)
}

func (e *CookieEnv) Save(key, val string) error {
	http.SetCookie(e.w, &http.Cookie{
		Name:     e.name(key),
		Value:    val,
		Path:     "/",
		HttpOnly: true,
		Secure:   e.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(DefaultCookieTTL.Seconds()),
	})
	return nil
}

func (e *CookieEnv) Load(key string) (string, error) {
	c, err := e.r.Cookie(e.name(key))
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

func (e *CookieEnv) Clear(key string) {
	http.SetCookie(e.w, &http.Cookie{
		Name:     e.name(key),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   e.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
