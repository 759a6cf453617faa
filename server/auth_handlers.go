package server

import (
	"errors"
	"net/http"

	apperrors "github.com/jrsteele09/go-storefront/internal/errors"
	"github.com/jrsteele09/go-storefront/session"
	"github.com/rs/zerolog/log"
)

type providerInfo struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	SignInURL string `json:"signinUrl"`
}

type credentialsResponse struct {
	OK      bool   `json:"ok"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// ProvidersHandler lists the configured sign-in methods.
func (s *Server) ProvidersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		base := s.config.GetBaseURL()
		providers := map[string]providerInfo{
			"credentials": {ID: "credentials", Type: "credentials", SignInURL: base + RouteCredentialsCallback},
		}
		for _, name := range s.providers.Names() {
			providers[name] = providerInfo{ID: name, Type: "oauth", SignInURL: base + "/auth/signin/" + name}
		}
		writeJSON(w, http.StatusOK, providers)
	}
}

// CredentialsSignInHandler exchanges email and password for a session. Every failure
// returns the same generic message.
func (s *Server) CredentialsSignInHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds, err := readCredentials(w, r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, credentialsResponse{OK: false, Error: ErrorCodeCredentialsSignin, Message: credentialsErrorMessage})
			return
		}

		user, ok := s.exchanger.Authorize(r.Context(), creds)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, credentialsResponse{OK: false, Error: ErrorCodeCredentialsSignin, Message: credentialsErrorMessage})
			return
		}

		id, err := s.sessions.SignIn(r.Context(), session.Event{Kind: session.KindCredentials, User: user})
		if err != nil {
			log.Error().Err(err).Msg("failed to create session after credentials sign-in")
			writeJSON(w, http.StatusUnauthorized, credentialsResponse{OK: false, Error: ErrorCodeCredentialsSignin, Message: credentialsErrorMessage})
			return
		}

		s.setSessionCookie(w, r, id)
		writeJSON(w, http.StatusOK, credentialsResponse{OK: true, URL: s.safeCallbackURL(r.URL.Query().Get("callbackUrl"))})
	}
}

// SessionHandler returns the client-visible session, or null when signed out.
func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, err := s.sessions.Current(r.Context())
		if err != nil {
			if !errors.Is(err, apperrors.ErrSessionNotFound) {
				log.Error().Err(err).Msg("session lookup failed")
			}
			if s.sessionID(r) != "" {
				s.clearSessionCookie(w, r)
			}
			writeJSON(w, http.StatusOK, nil)
			return
		}
		writeJSON(w, http.StatusOK, current)
	}
}

// SignOutHandler deletes the session and clears the cookie.
func (s *Server) SignOutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id := s.sessionID(r); id != "" {
			if err := s.sessions.SignOut(r.Context(), id); err != nil {
				log.Error().Err(err).Msg("failed to delete session")
			}
		}
		s.clearSessionCookie(w, r)
		writeJSON(w, http.StatusOK, map[string]string{"url": s.safeCallbackURL(r.URL.Query().Get("callbackUrl"))})
	}
}

// HealthHandler reports liveness.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
