package signin

import (
	"context"
	stderrors "errors"

	"github.com/jrsteele09/go-storefront/backend"
	apperrors "github.com/jrsteele09/go-storefront/internal/errors"
	"github.com/jrsteele09/go-storefront/internal/utils"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Backend is the subset of the backend API used to authenticate users.
type Backend interface {
	Login(ctx context.Context, req backend.LoginRequest) (*backend.AuthResponse, error)
	OAuthLogin(ctx context.Context, req backend.OAuthLoginRequest) (*backend.OAuthLoginResponse, error)
}

// Exchanger turns authentication events into canonical identity records by calling the
// backend. Failures of any kind are reported as a negative result, never as an error the
// caller has to surface.
type Exchanger struct {
	backend Backend
}

// NewExchanger creates an Exchanger over the given backend.
func NewExchanger(b Backend) (*Exchanger, error) {
	if b == nil {
		return nil, errors.New("[NewExchanger] backend is required")
	}
	return &Exchanger{backend: b}, nil
}

// Authorize validates password credentials with the backend. It returns (nil, false) for
// bad credentials, non-2xx responses, transport and decode failures, and responses
// without an access token.
func (e *Exchanger) Authorize(ctx context.Context, creds Credentials) (*User, bool) {
	user, err := e.authorize(ctx, creds)
	if err != nil {
		log.Info().Err(err).Str("email", creds.Email).Msg("credentials sign-in failed")
		return nil, false
	}
	return user, true
}

func (e *Exchanger) authorize(ctx context.Context, creds Credentials) (*User, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, errors.Wrap(apperrors.ErrInvalidCredentials, "[Exchanger authorize] email and password are required")
	}

	resp, err := e.backend.Login(ctx, backend.LoginRequest{Email: creds.Email, Password: creds.Password})
	if err != nil {
		var statusErr *backend.StatusError
		if stderrors.As(err, &statusErr) {
			return nil, errors.Wrapf(apperrors.ErrInvalidCredentials, "[Exchanger authorize] backend status %d", statusErr.StatusCode)
		}
		return nil, errors.Wrap(err, "[Exchanger authorize] backend login")
	}
	if resp.AccessToken == "" {
		return nil, errors.Wrap(apperrors.ErrInvalidCredentials, "[Exchanger authorize] backend response has no access_token")
	}

	return &User{
		ID:                resp.User.ID,
		Username:          ResolveUsername(resp.User.Username, creds.Email),
		Email:             creds.Email,
		FirstName:         resp.User.FirstName,
		LastName:          resp.User.LastName,
		Image:             resp.User.Image,
		Role:              ResolveRole(resp.User.Role),
		IsProfileComplete: ResolveProfileComplete(resp.User.IsProfileComplete),
		AccessToken:       resp.AccessToken,
		RefreshToken:      resp.RefreshToken,
	}, nil
}

// LinkOAuth registers the OAuth identity with the backend and, on success, attaches the
// backend-issued tokens and claims to user. On failure user is left untouched and the
// sign-in must be aborted.
func (e *Exchanger) LinkOAuth(ctx context.Context, profile OAuthProfile, user *User) bool {
	if err := e.linkOAuth(ctx, profile, user); err != nil {
		log.Warn().Err(err).Str("provider", profile.Provider).Str("email", profile.Email).Msg("oauth account linking failed")
		return false
	}
	return true
}

func (e *Exchanger) linkOAuth(ctx context.Context, profile OAuthProfile, user *User) error {
	if user == nil {
		return errors.Wrap(apperrors.ErrOAuthLinkFailed, "[Exchanger linkOAuth] no user record")
	}

	resp, err := e.backend.OAuthLogin(ctx, backend.OAuthLoginRequest{
		Provider:   profile.Provider,
		ProviderID: profile.ProviderAccountID,
		Email:      profile.Email,
		Name:       profile.Name,
		FirstName:  profile.FirstName(),
		LastName:   profile.LastName(),
		Image:      profile.Picture,
	})
	if err != nil {
		return errors.Wrap(stderrors.Join(apperrors.ErrOAuthLinkFailed, err), "[Exchanger linkOAuth] backend oauth-login")
	}

	accessToken := utils.FirstNonEmpty(resp.AccessToken, resp.Token)
	if accessToken == "" {
		return errors.Wrap(apperrors.ErrOAuthLinkFailed, "[Exchanger linkOAuth] backend response has no token")
	}

	user.AccessToken = accessToken
	user.RefreshToken = resp.RefreshToken
	user.ID = utils.FirstNonEmpty(resp.User.ID, user.ID)
	user.Email = utils.FirstNonEmpty(user.Email, profile.Email)
	user.Username = ResolveUsername(resp.User.Username, user.Email)
	user.FirstName = utils.FirstNonEmpty(resp.User.FirstName, user.FirstName)
	user.LastName = utils.FirstNonEmpty(resp.User.LastName, user.LastName)
	user.Image = utils.FirstNonEmpty(resp.User.Image, user.Image)
	user.Role = ResolveRole(resp.User.Role)
	user.IsProfileComplete = ResolveProfileComplete(resp.User.IsProfileComplete)
	return nil
}
