package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/jrsteele09/go-storefront/internal/errors"
	"github.com/jrsteele09/go-storefront/session"
	"github.com/rs/zerolog/log"
)

type contextKey string

const contextKeySession contextKey = "session"

// SessionFromContext returns the session resolved by RequireSession.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(contextKeySession).(*session.Session)
	return s, ok && s != nil
}

// LoadSession puts the session id from the cookie on the request context. Anything
// downstream, including the outbound API client, resolves the session from there.
func (s *Server) LoadSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id := s.sessionID(r); id != "" {
			r = r.WithContext(session.ContextWithID(r.Context(), id))
		}
		next(w, r)
	}
}

// RequireSession rejects requests without a signed-in session with 401.
func (s *Server) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, err := s.currentSession(r)
		if err != nil {
			writeAccessError(w, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), contextKeySession, current)))
	}
}

// RequirePermission checks the session's role against the role policy for the request
// path and method. It must run after RequireSession.
func (s *Server) RequirePermission(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, ok := SessionFromContext(r.Context())
		if !ok {
			writeAccessError(w, apperrors.ErrUnauthenticated)
			return
		}
		if err := s.checkPermission(current, r); err != nil {
			writeAccessError(w, err)
			return
		}
		next(w, r)
	}
}

// SameOriginMiddleware rejects state-changing requests sent by pages outside the allowed
// origins, so another site cannot sign a visitor in or out.
func (s *Server) SameOriginMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.checkRequestOrigin(r); err != nil {
			log.Warn().Err(err).Str("path", r.URL.Path).Msg("cross-site request rejected")
			writeAccessError(w, err)
			return
		}
		next(w, r)
	}
}

func (s *Server) currentSession(r *http.Request) (*session.Session, error) {
	current, err := s.sessions.Current(r.Context())
	if err != nil {
		if !errors.Is(err, apperrors.ErrSessionNotFound) {
			log.Error().Err(err).Msg("session lookup failed")
		}
		return nil, apperrors.Wrapf(apperrors.ErrUnauthenticated, "[currentSession] %v", err)
	}
	return current, nil
}

func (s *Server) checkPermission(current *session.Session, r *http.Request) error {
	allowed, err := s.enforcer.Enforce(policySubject(current.User.Role), r.URL.Path, r.Method)
	if err != nil {
		return fmt.Errorf("[checkPermission] %s %s: %w", r.Method, r.URL.Path, err)
	}
	if !allowed {
		log.Info().Str("user_id", current.User.ID).Str("role", current.User.Role).Str("path", r.URL.Path).Msg("forbidden")
		return apperrors.Wrapf(apperrors.ErrForbidden, "[checkPermission] role %q on %s %s", current.User.Role, r.Method, r.URL.Path)
	}
	return nil
}

// checkRequestOrigin accepts requests whose Origin is allowed. Without an Origin header,
// only a browser's Sec-Fetch-Site of "cross-site" is rejected.
func (s *Server) checkRequestOrigin(r *http.Request) error {
	if origin := r.Header.Get("Origin"); origin != "" {
		if !s.config.GetAllowedOrigins().IsAllowedOrigin(origin) {
			return apperrors.Wrapf(apperrors.ErrForbidden, "[checkRequestOrigin] origin %q", origin)
		}
		return nil
	}
	if r.Header.Get("Sec-Fetch-Site") == "cross-site" {
		return apperrors.Wrapf(apperrors.ErrForbidden, "[checkRequestOrigin] cross-site request without origin")
	}
	return nil
}

// writeAccessError maps authentication and authorization failures onto a JSON error.
func writeAccessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Sign in to continue.")
	case errors.Is(err, apperrors.ErrForbidden):
		writeJSONError(w, http.StatusForbidden, "forbidden", "You do not have access to this resource.")
	default:
		log.Error().Err(err).Msg("access check failed")
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Something went wrong.")
	}
}

// policySubject maps a backend role onto a policy role. Only "admin" is privileged.
func policySubject(role string) string {
	if role == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}
