package server

import (
	"errors"
	"net/http"

	apperrors "github.com/jrsteele09/go-storefront/internal/errors"
	"github.com/jrsteele09/go-storefront/provider"
	"github.com/jrsteele09/go-storefront/session"
	"github.com/jrsteele09/go-storefront/signin"
	"github.com/rs/zerolog/log"
)

// ProviderSignInHandler redirects the browser to the provider's authorization page.
func (s *Server) ProviderSignInHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("provider")
		env := provider.NewCookieEnv(name, w, r)

		loginURL, err := s.providers.LoginURL(env, name)
		if err != nil {
			if errors.Is(err, apperrors.ErrProviderNotFound) {
				writeJSONError(w, http.StatusNotFound, "unknown_provider", "Unknown sign-in provider.")
				return
			}
			log.Error().Err(err).Str("provider", name).Msg("failed to start oauth sign-in")
			s.redirectWithError(w, r, ErrorCodeOAuthSignin)
			return
		}

		if err := env.Save(callbackURLCookie, s.safeCallbackURL(r.URL.Query().Get("callbackUrl"))); err != nil {
			log.Error().Err(err).Msg("failed to save callback url")
		}
		http.Redirect(w, r, loginURL, http.StatusFound)
	}
}

// OAuthCallbackHandler completes the provider round trip and runs the sign-in chain.
// Authorization problems redirect with OAuthSignin, a rejected account link with
// AccessDenied. In both cases no session is created.
func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("provider")
		query := r.URL.Query()
		if name == "credentials" {
			writeJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Credentials sign-in must use POST.")
			return
		}
		env := provider.NewCookieEnv(name, w, r)
		callbackURL, _ := env.Load(callbackURLCookie)
		env.Clear(callbackURLCookie)

		if errParam := query.Get("error"); errParam != "" {
			log.Info().Str("provider", name).Str("error", errParam).Str("description", query.Get("error_description")).Msg("provider returned an error")
			s.redirectWithError(w, r, ErrorCodeOAuthSignin)
			return
		}

		profile, err := s.providers.Exchange(r.Context(), env, name, query.Get("code"), query.Get("state"))
		if err != nil {
			log.Warn().Err(err).Str("provider", name).Msg("oauth exchange failed")
			s.redirectWithError(w, r, ErrorCodeOAuthSignin)
			return
		}

		id, err := s.sessions.SignIn(r.Context(), session.Event{
			Kind:    session.KindOAuth,
			Profile: profile,
			User:    signin.NewOAuthUser(profile),
		})
		if err != nil {
			if !errors.Is(err, apperrors.ErrSignInRejected) {
				log.Error().Err(err).Str("provider", name).Msg("failed to create session after oauth sign-in")
			}
			s.redirectWithError(w, r, ErrorCodeAccessDenied)
			return
		}

		s.setSessionCookie(w, r, id)
		http.Redirect(w, r, s.safeCallbackURL(callbackURL), http.StatusSeeOther)
	}
}
