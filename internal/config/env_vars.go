package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	portEnvVar       = "PORT"
	appNameVar       = "APP_NAME"
	baseURLVar       = "BASE_URL"
	apiURLVar        = "API_URL"
	signInPageVar    = "SIGNIN_PAGE"
	backendTimeout   = "BACKEND_TIMEOUT"
	redisAddrVar     = "REDIS_ADDR"
	redisPasswordVar = "REDIS_PASSWORD"
	redisDBVar       = "REDIS_DB"
)

// requiredEnvVars must all be set before the server starts.
var requiredEnvVars = []string{
	googleClientIDVar,
	googleClientSecretVar,
	githubClientIDVar,
	githubClientSecretVar,
	authSecretVar,
	apiURLVar,
}

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Storefront")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetBaseURL returns the public URL of this service (e.g., "https://shop.example.com").
// OAuth redirect URIs are built from it.
func (EnvVars) GetBaseURL() string {
	return strings.TrimSuffix(GetEnv(baseURLVar, "http://localhost:8080"), "/")
}

// GetAPIURL returns the backend REST API base URL without a trailing slash.
func (EnvVars) GetAPIURL() string {
	return strings.TrimSuffix(GetEnv(apiURLVar, ""), "/")
}

func (EnvVars) GetSignInPage() string {
	return GetEnv(signInPageVar, "/signin")
}

func (EnvVars) GetBackendTimeout() time.Duration {
	return GetDuration(backendTimeout, 10*time.Second)
}

func (EnvVars) GetRedisAddr() string {
	return GetEnv(redisAddrVar, "")
}

func (EnvVars) GetRedisPassword() string {
	return GetEnv(redisPasswordVar, "")
}

func (EnvVars) GetRedisDB() int {
	db, err := strconv.Atoi(GetEnv(redisDBVar, "0"))
	if err != nil {
		return 0
	}
	return db
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetDuration parses envVar with time.ParseDuration, falling back to defaultValue when the
// variable is unset or unparsable.
func GetDuration(envVar string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
