package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrsteele09/go-storefront/internal/config"
	"github.com/stretchr/testify/require"
)

func TestSafeCallbackURL(t *testing.T) {
	t.Setenv("BASE_URL", "https://shop.example.com/")
	s := &Server{config: config.New()}

	tests := map[string]string{
		"":                                 "https://shop.example.com/",
		"/checkout":                        "https://shop.example.com/checkout",
		"//evil.example.com/x":             "https://shop.example.com/",
		"/\\evil.example.com":              "https://shop.example.com/",
		"https://evil.example.com/":        "https://shop.example.com/",
		"http://shop.example.com/account":  "https://shop.example.com/",
		"https://shop.example.com/account": "https://shop.example.com/account",
		"javascript:alert(1)":              "https://shop.example.com/",
	}
	for in, want := range tests {
		require.Equal(t, want, s.safeCallbackURL(in), in)
	}
}

func TestPolicySubject(t *testing.T) {
	require.Equal(t, RoleAdmin, policySubject("admin"))
	require.Equal(t, RoleUser, policySubject("user"))
	require.Equal(t, RoleUser, policySubject("customer"))
	require.Equal(t, RoleUser, policySubject(""))
}

func TestEnforcer(t *testing.T) {
	e, err := NewEnforcer()
	require.NoError(t, err)

	allowed := func(sub, path, method string) bool {
		ok, err := e.Enforce(sub, path, method)
		require.NoError(t, err)
		return ok
	}

	require.True(t, allowed(RoleUser, "/api/account/orders", "GET"))
	require.True(t, allowed(RoleUser, RouteCheckout, "POST"))
	require.False(t, allowed(RoleUser, "/api/admin/products", "GET"))
	require.True(t, allowed(RoleAdmin, "/api/admin/products/1", "DELETE"))
	require.True(t, allowed(RoleAdmin, "/api/account/orders", "GET"))
	require.False(t, allowed(RoleAdmin, "/api/admin/products", "PATCH"))
}

func TestRecoverMiddleware(t *testing.T) {
	s := &Server{config: config.New()}
	h := ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}, s.LoggingMiddleware, s.RecoverMiddleware)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "internal_error")
}

func TestReadCredentials(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.com","password":"p"}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	creds, err := readCredentials(httptest.NewRecorder(), req)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", creds.Email)
	require.Equal(t, "p", creds.Password)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	_, err = readCredentials(httptest.NewRecorder(), req)
	require.Error(t, err)
}
