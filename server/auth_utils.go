package server

import (
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/go-storefront/signin"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeJSON   = "application/json"
	callbackURLCookie = "callback-url"
)

func (s *Server) sessionID(r *http.Request) string {
	c, err := r.Cookie(s.config.GetSessionCookieName())
	if err != nil {
		return ""
	}
	return c.Value
}

func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.GetSessionCookieName(),
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   s.sessions.MaxAge(),
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.GetSessionCookieName(),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// safeCallbackURL only allows redirects back into this site. Anything else falls back to
// the base URL.
func (s *Server) safeCallbackURL(raw string) string {
	base := s.config.GetBaseURL()
	if raw == "" {
		return base + "/"
	}
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") && !strings.HasPrefix(raw, "/\\") {
		return base + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return base + "/"
	}
	b, err := url.Parse(base)
	if err != nil || u.Scheme != b.Scheme || u.Host != b.Host {
		return base + "/"
	}
	return u.String()
}

// redirectWithError sends the browser to the sign-in page with an error code.
func (s *Server) redirectWithError(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, s.config.GetSignInPage()+"?error="+url.QueryEscape(code), http.StatusSeeOther)
}

// readCredentials accepts a JSON body or a form post.
func readCredentials(w http.ResponseWriter, r *http.Request) (signin.Credentials, error) {
	var creds signin.Credentials
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == contentTypeJSON {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&creds); err != nil {
			return signin.Credentials{}, err
		}
		return creds, nil
	}

	if err := r.ParseForm(); err != nil {
		return signin.Credentials{}, err
	}
	return signin.Credentials{Email: r.PostFormValue("email"), Password: r.PostFormValue("password")}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write JSON response")
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}
