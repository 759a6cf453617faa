package apiclient

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/jrsteele09/go-storefront/internal/errors"
	"github.com/jrsteele09/go-storefront/session"
	"github.com/rs/zerolog/log"
)

// SessionSource resolves the session of whoever the request is being made for.
// *session.Manager implements it.
type SessionSource interface {
	Current(ctx context.Context) (*session.Session, error)
}

// BearerTransport attaches "Authorization: Bearer <accessToken>" to every outgoing request
// whose context resolves to a signed-in session. Requests without a usable session go out
// unmodified. The session is looked up per request and never cached.
type BearerTransport struct {
	Source SessionSource
	// Base defaults to http.DefaultTransport.
	Base http.RoundTripper
}

func (t *BearerTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// RoundTrip implements http.RoundTripper. The caller's request is never mutated.
func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.accessToken(req.Context())
	if token == "" {
		return t.base().RoundTrip(req)
	}

	authed := req.Clone(req.Context())
	authed.Header.Set("Authorization", "Bearer "+token)
	return t.base().RoundTrip(authed)
}

func (t *BearerTransport) accessToken(ctx context.Context) string {
	if t.Source == nil {
		return ""
	}
	s, err := t.Source.Current(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrSessionNotFound) {
			log.Warn().Err(err).Msg("session lookup failed, sending request without credentials")
		}
		return ""
	}
	if s == nil {
		return ""
	}
	return s.AccessToken
}
