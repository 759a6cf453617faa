package session

import (
	"context"

	"github.com/jrsteele09/go-storefront/signin"
	"github.com/rs/zerolog/log"
)

// Kind identifies how an authentication event was produced.
type Kind string

const (
	KindCredentials Kind = "credentials"
	KindOAuth       Kind = "oauth"
)

// Event is a single authentication event entering the callback chain.
type Event struct {
	Kind Kind
	// User is the in-flight identity. For credentials it comes from Exchanger.Authorize,
	// for OAuth it is seeded from the provider profile.
	User *signin.User
	// Profile is only set for OAuth events.
	Profile signin.OAuthProfile
}

// Linker links an OAuth identity to a backend account. *signin.Exchanger implements it.
type Linker interface {
	LinkOAuth(ctx context.Context, profile signin.OAuthProfile, user *signin.User) bool
}

// Chain is the sign-in gate that runs before a session token is issued.
type Chain struct {
	linker Linker
}

// NewChain creates the sign-in gate.
func NewChain(linker Linker) *Chain {
	return &Chain{linker: linker}
}

// SignIn decides whether an authentication event may produce a session. Credentials were
// already verified by the backend and always pass. OAuth events pass only once the backend
// has linked the account.
func (c *Chain) SignIn(ctx context.Context, ev Event) (ok bool) {
	switch ev.Kind {
	case KindCredentials:
		return true
	case KindOAuth:
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("provider", ev.Profile.Provider).Msg("oauth sign-in gate panicked")
				ok = false
			}
		}()
		if c.linker == nil {
			return false
		}
		return c.linker.LinkOAuth(ctx, ev.Profile, ev.User)
	default:
		log.Warn().Str("kind", string(ev.Kind)).Msg("unknown sign-in event kind")
		return false
	}
}
