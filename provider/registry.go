package provider

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"

	apperrors "github.com/jrsteele09/go-storefront/internal/errors"
	"github.com/jrsteele09/go-storefront/signin"
	"golang.org/x/oauth2"
)

var (
	ErrProviderConflict = errors.New("provider already registered")
	ErrAuthFailed       = errors.New("oauth authorization failed")
)

const (
	stateKey    = "state"
	verifierKey = "verifier"
)

// IdentityProvider is an OAuth authorization server that can identify a user.
type IdentityProvider interface {
	Name() string
	// AuthCodeURL is where the browser is sent to authorize. verifier is the PKCE verifier.
	AuthCodeURL(state, verifier string) string
	// Exchange trades an authorization code for the user's profile.
	Exchange(ctx context.Context, code, verifier string) (signin.OAuthProfile, error)
}

// Env holds per-browser values across the authorization redirect.
type Env interface {
	Save(key, val string) error
	Load(key string) (string, error)
	Clear(key string)
}

// Registry holds the configured identity providers by name and runs the state and PKCE
// bookkeeping around them.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]IdentityProvider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]IdentityProvider)}
}

// Use registers p under p.Name().
func (r *Registry) Use(p IdentityProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[p.Name()]; ok {
		return fmt.Errorf("[Registry Use] %s: %w", p.Name(), ErrProviderConflict)
	}
	r.providers[p.Name()] = p
	return nil
}

// Names returns the registered provider names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a provider is registered under name.
func (r *Registry) Has(name string) bool {
	_, err := r.get(name)
	return err == nil
}

// LoginURL starts an authorization with the named provider, saving state and the PKCE
// verifier in env.
func (r *Registry) LoginURL(env Env, name string) (string, error) {
	p, err := r.get(name)
	if err != nil {
		return "", err
	}

	state := randState(32)
	verifier := oauth2.GenerateVerifier()
	if err := env.Save(stateKey, state); err != nil {
		return "", fmt.Errorf("[Registry LoginURL] save state: %w", err)
	}
	if err := env.Save(verifierKey, verifier); err != nil {
		return "", fmt.Errorf("[Registry LoginURL] save verifier: %w", err)
	}
	return p.AuthCodeURL(state, verifier), nil
}

// Exchange completes an authorization. The returned state must match the one saved by
// LoginURL. State and verifier are single use and cleared from env either way.
func (r *Registry) Exchange(ctx context.Context, env Env, name, code, state string) (signin.OAuthProfile, error) {
	p, err := r.get(name)
	if err != nil {
		return signin.OAuthProfile{}, err
	}

	saved, err := env.Load(stateKey)
	verifier, verr := env.Load(verifierKey)
	env.Clear(stateKey)
	env.Clear(verifierKey)
	if err != nil || verr != nil || saved == "" || subtle.ConstantTimeCompare([]byte(saved), []byte(state)) != 1 {
		return signin.OAuthProfile{}, apperrors.ErrInvalidState
	}
	if code == "" {
		return signin.OAuthProfile{}, fmt.Errorf("[Registry Exchange] missing code: %w", ErrAuthFailed)
	}

	profile, err := p.Exchange(ctx, code, verifier)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil &&
			(rerr.Response.StatusCode == http.StatusBadRequest || rerr.Response.StatusCode == http.StatusUnauthorized) {
			return signin.OAuthProfile{}, fmt.Errorf("[Registry Exchange] %s: %w", name, ErrAuthFailed)
		}
		return signin.OAuthProfile{}, fmt.Errorf("[Registry Exchange] %s: %w", name, err)
	}
	profile.Provider = name
	return profile, nil
}

func (r *Registry) get(name string) (IdentityProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("[Registry] %q: %w", name, apperrors.ErrProviderNotFound)
	}
	return p, nil
}

func randState(size int) string {
	b := make([]byte, size)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
