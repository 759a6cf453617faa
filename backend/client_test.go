package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/go-storefront/backend"
	"github.com/stretchr/testify/require"
)

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, backend.RouteLogin, r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Empty(t, r.Header.Get("Authorization"))

		var req backend.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "a@b.com", req.Email)
		require.Equal(t, "secret", req.Password)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"T1","refresh_token":"R1","user":{"id":"42","role":"admin","isProfileComplete":true}}`))
	}))
	defer srv.Close()

	c := backend.NewClient(srv.URL + "/")
	resp, err := c.Login(context.Background(), backend.LoginRequest{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, "T1", resp.AccessToken)
	require.Equal(t, "R1", resp.RefreshToken)
	require.Equal(t, "42", resp.User.ID)
	require.Equal(t, "admin", resp.User.Role)
	require.NotNil(t, resp.User.IsProfileComplete)
	require.True(t, *resp.User.IsProfileComplete)
}

func TestClient_Login_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := backend.NewClient(srv.URL).Login(context.Background(), backend.LoginRequest{Email: "a@b.com", Password: "wrong"})
	require.Error(t, err)

	var statusErr *backend.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	require.Equal(t, backend.RouteLogin, statusErr.Path)
}

func TestClient_Login_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	_, err := backend.NewClient(srv.URL).Login(context.Background(), backend.LoginRequest{})
	require.Error(t, err)

	var statusErr *backend.StatusError
	require.False(t, errors.As(err, &statusErr))
}

func TestClient_OAuthLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, backend.RouteOAuthLogin, r.URL.Path)

		var req backend.OAuthLoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "google", req.Provider)
		require.Equal(t, "g-123", req.ProviderID)
		require.Equal(t, "Ada", req.FirstName)
		require.Equal(t, "Lovelace", req.LastName)

		_, _ = w.Write([]byte(`{"token":"T2","refresh_token":"R2","user":{"id":"7","role":"user"}}`))
	}))
	defer srv.Close()

	resp, err := backend.NewClient(srv.URL).OAuthLogin(context.Background(), backend.OAuthLoginRequest{
		Provider:   "google",
		ProviderID: "g-123",
		Email:      "ada@example.com",
		Name:       "Ada Lovelace",
		FirstName:  "Ada",
		LastName:   "Lovelace",
	})
	require.NoError(t, err)
	require.Equal(t, "T2", resp.Token)
	require.Empty(t, resp.AccessToken)
	require.Equal(t, "7", resp.User.ID)
	require.Nil(t, resp.User.IsProfileComplete)
}

func TestClient_ContextCancelled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := backend.NewClient(srv.URL).Login(ctx, backend.LoginRequest{})
	require.Error(t, err)
}
