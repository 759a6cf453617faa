package session

import (
	"time"

	"github.com/jrsteele09/go-storefront/signin"
)

// Token is the server-held session token. It is only ever stored sealed by a Codec and
// owns every claim the client-visible Session is projected from. A Token with an empty
// AccessToken is unauthenticated.
type Token struct {
	AccessToken       string `json:"accessToken,omitempty"`
	RefreshToken      string `json:"refreshToken,omitempty"`
	ID                string `json:"id,omitempty"`
	Role              string `json:"role,omitempty"`
	Email             string `json:"email,omitempty"`
	FirstName         string `json:"firstName,omitempty"`
	LastName          string `json:"lastName,omitempty"`
	IsProfileComplete bool   `json:"isProfileComplete"`

	// Expires is filled in from the exp claim when the token is opened.
	Expires time.Time `json:"-"`
}

// Authenticated reports whether the token carries a backend access token.
func (t Token) Authenticated() bool {
	return t.AccessToken != ""
}

// User is the user portion of a Session.
type User struct {
	ID                string `json:"id"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Role              string `json:"role"`
	Email             string `json:"email"`
	IsProfileComplete bool   `json:"isProfileComplete"`
}

// Session is the client-visible projection of a Token. It is rebuilt on every read and
// never carries the refresh token.
type Session struct {
	AccessToken string    `json:"accessToken"`
	User        User      `json:"user"`
	Expires     time.Time `json:"expires"`
}

// Enrich copies the claims of a freshly signed-in user onto tok. The user owns every
// claim it carries. With a nil user the token is returned unchanged.
func Enrich(tok Token, user *signin.User) Token {
	if user == nil {
		return tok
	}
	tok.AccessToken = user.AccessToken
	tok.RefreshToken = user.RefreshToken
	tok.ID = user.ID
	tok.Role = user.Role
	tok.Email = user.Email
	tok.FirstName = user.FirstName
	tok.LastName = user.LastName
	tok.IsProfileComplete = user.IsProfileComplete
	return tok
}

// Project builds the client-visible Session from a token.
func Project(tok Token) *Session {
	return &Session{
		AccessToken: tok.AccessToken,
		User: User{
			ID:                tok.ID,
			FirstName:         tok.FirstName,
			LastName:          tok.LastName,
			Role:              tok.Role,
			Email:             tok.Email,
			IsProfileComplete: tok.IsProfileComplete,
		},
		Expires: tok.Expires,
	}
}
