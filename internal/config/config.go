package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	apperrors "github.com/jrsteele09/go-storefront/internal/errors"
)

type Config interface {
	EnvConfig
	CorsConfig
	OAuthConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetBaseURL() string
	GetAPIURL() string
	GetSignInPage() string
	GetBackendTimeout() time.Duration
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	OAuth
	Security
}

func New() Config {
	return mainConfig{}
}

// Load seeds the environment from envFiles (missing files are ignored), then checks that
// every required variable is present and well formed.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	c := New()
	if err := Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports the first missing or malformed required setting.
func Validate(c Config) error {
	var missing []string
	for _, name := range requiredEnvVars {
		if strings.TrimSpace(GetEnv(name, "")) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrMissingConfig, strings.Join(missing, ", "))
	}

	if len(c.GetAuthSecret()) < minAuthSecretLength {
		return fmt.Errorf("%w: %s must be at least %d characters", apperrors.ErrInvalidConfig, authSecretVar, minAuthSecretLength)
	}

	u, err := url.Parse(c.GetAPIURL())
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an absolute http(s) URL", apperrors.ErrInvalidConfig, apiURLVar)
	}

	if c.GetSessionMaxAge() <= 0 {
		return fmt.Errorf("%w: %s must be positive", apperrors.ErrInvalidConfig, sessionMaxAgeVar)
	}
	return nil
}
