package provider

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-storefront/signin"
	"golang.org/x/oauth2"
)

const (
	GoogleName   = "google"
	googleIssuer = "https://accounts.google.com"
)

// Config is the client registration for a provider.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Google signs users in with Google OpenID Connect and verifies the returned ID token.
type Google struct {
	cfg      *oauth2.Config
	verifier *oidc.IDTokenVerifier
}

type googleClaims struct {
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	Verified   bool   `json:"email_verified"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// NewGoogle discovers Google's OIDC configuration.
func NewGoogle(ctx context.Context, cfg Config) (*Google, error) {
	return NewOIDC(ctx, googleIssuer, cfg)
}

// NewOIDC creates a Google-style provider against any OIDC issuer.
func NewOIDC(ctx context.Context, issuer string, cfg Config) (*Google, error) {
	p, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("[NewOIDC] discover %s: %w", issuer, err)
	}

	return &Google{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
			Endpoint:     p.Endpoint(),
		},
		verifier: p.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

func (g *Google) Name() string {
	return GoogleName
}

func (g *Google) AuthCodeURL(state, verifier string) string {
	return g.cfg.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
}

func (g *Google) Exchange(ctx context.Context, code, verifier string) (signin.OAuthProfile, error) {
	tok, err := g.cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return signin.OAuthProfile{}, err
	}

	raw, ok := tok.Extra("id_token").(string)
	if !ok || raw == "" {
		return signin.OAuthProfile{}, fmt.Errorf("[Google Exchange] token response has no id_token")
	}
	idTok, err := g.verifier.Verify(ctx, raw)
	if err != nil {
		return signin.OAuthProfile{}, fmt.Errorf("[Google Exchange] verify id token: %w", err)
	}

	var claims googleClaims
	if err := idTok.Claims(&claims); err != nil {
		return signin.OAuthProfile{}, fmt.Errorf("[Google Exchange] read claims: %w", err)
	}
	if !claims.Verified {
		return signin.OAuthProfile{}, fmt.Errorf("[Google Exchange] email %q is not verified: %w", claims.Email, ErrAuthFailed)
	}

	return signin.OAuthProfile{
		Provider:          GoogleName,
		ProviderAccountID: claims.Sub,
		Email:             claims.Email,
		Name:              claims.Name,
		GivenName:         claims.GivenName,
		FamilyName:        claims.FamilyName,
		Picture:           claims.Picture,
	}, nil
}
