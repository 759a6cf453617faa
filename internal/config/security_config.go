package config

import "time"

const (
	authSecretVar       = "AUTH_SECRET"
	sessionMaxAgeVar    = "SESSION_MAX_AGE"
	sessionCookieVar    = "SESSION_COOKIE_NAME"
	minAuthSecretLength = 32
)

type SecurityConfig interface {
	GetAuthSecret() string
	GetSessionMaxAge() time.Duration
	GetSessionCookieName() string
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetAuthSecret returns the secret the session signing and encryption keys are derived from.
func (Security) GetAuthSecret() string {
	return GetEnv(authSecretVar, "")
}

func (Security) GetSessionMaxAge() time.Duration {
	return GetDuration(sessionMaxAgeVar, 30*24*time.Hour)
}

func (Security) GetSessionCookieName() string {
	return GetEnv(sessionCookieVar, "storefront.session-token")
}
