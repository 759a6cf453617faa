package signin

import (
	"fmt"
	"strings"

	"github.com/jrsteele09/go-storefront/internal/utils"
)

// DefaultRole is assigned when the backend does not say otherwise.
const DefaultRole = "user"

// Credentials are supplied by the user for a password sign-in. They are never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// String keeps the password out of logs and error messages.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{Email: %q, Password: [REDACTED]}", c.Email)
}

// OAuthProfile is the identity an OAuth provider returns after a completed authorization.
type OAuthProfile struct {
	Provider          string
	ProviderAccountID string
	Email             string
	Name              string
	GivenName         string
	FamilyName        string
	Picture           string
}

// FirstName is the provider's given name, or the first word of the display name.
func (p OAuthProfile) FirstName() string {
	first, _ := SplitName(p.Name)
	return utils.FirstNonEmpty(p.GivenName, first)
}

// LastName is the provider's family name, or the display name minus its first word.
func (p OAuthProfile) LastName() string {
	_, last := SplitName(p.Name)
	return utils.FirstNonEmpty(p.FamilyName, last)
}

// User is the in-flight identity record produced by a sign-in and consumed by token
// enrichment. It only lives for the duration of the sign-in request.
type User struct {
	ID                string
	Username          string
	Email             string
	FirstName         string
	LastName          string
	Image             string
	Role              string
	IsProfileComplete bool
	AccessToken       string
	RefreshToken      string
}

// NewOAuthUser seeds the in-flight record for an OAuth sign-in from the provider profile.
// Backend-issued fields are attached later by Exchanger.LinkOAuth.
func NewOAuthUser(p OAuthProfile) *User {
	return &User{
		ID:        p.ProviderAccountID,
		Email:     p.Email,
		FirstName: p.FirstName(),
		LastName:  p.LastName(),
		Image:     p.Picture,
	}
}

// SplitName splits a display name into its first word and the remainder.
func SplitName(name string) (first, last string) {
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}

// ResolveUsername returns the backend username when present, otherwise the local part of
// the email address.
func ResolveUsername(backendUsername, email string) string {
	if strings.TrimSpace(backendUsername) != "" {
		return backendUsername
	}
	return utils.LocalPart(email)
}

// ResolveRole returns the backend role when present, otherwise DefaultRole.
func ResolveRole(role string) string {
	if strings.TrimSpace(role) == "" {
		return DefaultRole
	}
	return role
}

// ResolveProfileComplete treats an absent flag as false.
func ResolveProfileComplete(flag *bool) bool {
	return utils.Value(flag)
}
