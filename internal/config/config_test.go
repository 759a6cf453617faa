package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/go-storefront/internal/config"
	apperrors "github.com/jrsteele09/go-storefront/internal/errors"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_CLIENT_ID", "google-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "google-secret")
	t.Setenv("GITHUB_CLIENT_ID", "github-id")
	t.Setenv("GITHUB_CLIENT_SECRET", "github-secret")
	t.Setenv("AUTH_SECRET", testSecret)
	t.Setenv("API_URL", "http://api.example.com/")
}

func TestLoad_AllRequiredPresent(t *testing.T) {
	setRequiredEnv(t)

	c, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "http://api.example.com", c.GetAPIURL())
	require.Equal(t, "google-id", c.GetGoogleCredentials().ClientID)
	require.Equal(t, "github-secret", c.GetGitHubCredentials().ClientSecret)
	require.Equal(t, 30*24*time.Hour, c.GetSessionMaxAge())
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, name := range []string{
		"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "GITHUB_CLIENT_ID",
		"GITHUB_CLIENT_SECRET", "AUTH_SECRET", "API_URL",
	} {
		t.Run(name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(name, "")

			_, err := config.Load()
			require.ErrorIs(t, err, apperrors.ErrMissingConfig)
			require.Contains(t, err.Error(), name)
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"relative api url", "API_URL", "/api"},
		{"non http api url", "API_URL", "ftp://api.example.com"},
		{"short secret", "AUTH_SECRET", "too-short"},
		{"negative max age", "SESSION_MAX_AGE", "-1h"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
		})
	}
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_URL", "")
	os.Unsetenv("API_URL")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("API_URL=https://backend.example.com\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("API_URL") })

	c, err := config.Load(envFile, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "https://backend.example.com", c.GetAPIURL())
}

func TestEnvVars_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("SIGNIN_PAGE", "")

	c := config.New()
	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, "/signin", c.GetSignInPage())
	require.Equal(t, 10*time.Second, c.GetBackendTimeout())
}

func TestCors_AllowedOrigins(t *testing.T) {
	t.Setenv("BASE_URL", "https://shop.example.com")
	t.Setenv("ALLOWED_ORIGINS", "https://admin.example.com, https://cdn.example.com")

	origins := config.New().GetAllowedOrigins()
	require.True(t, origins.IsAllowedOrigin("https://shop.example.com"))
	require.True(t, origins.IsAllowedOrigin("https://admin.example.com"))
	require.True(t, origins.IsAllowedOrigin("https://cdn.example.com"))
	require.False(t, origins.IsAllowedOrigin("https://evil.example.com"))
}
