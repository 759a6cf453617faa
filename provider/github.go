package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/go-storefront/signin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const (
	GitHubName       = "github"
	defaultGitHubAPI = "https://api.github.com"
)

// GitHub signs users in with GitHub OAuth apps and reads the profile from the REST API.
type GitHub struct {
	cfg    *oauth2.Config
	apiURL string
}

// GitHubOption configures a GitHub provider.
type GitHubOption func(*GitHub)

// WithGitHubEndpoints points the provider at a different GitHub host.
func WithGitHubEndpoints(endpoint oauth2.Endpoint, apiURL string) GitHubOption {
	return func(g *GitHub) {
		g.cfg.Endpoint = endpoint
		g.apiURL = strings.TrimSuffix(apiURL, "/")
	}
}

func NewGitHub(cfg Config, options ...GitHubOption) *GitHub {
	g := &GitHub{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     endpoints.GitHub,
		},
		apiURL: defaultGitHubAPI,
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func (g *GitHub) Name() string {
	return GitHubName
}

func (g *GitHub) AuthCodeURL(state, verifier string) string {
	return g.cfg.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
}

func (g *GitHub) Exchange(ctx context.Context, code, verifier string) (signin.OAuthProfile, error) {
	tok, err := g.cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return signin.OAuthProfile{}, err
	}
	client := g.cfg.Client(ctx, tok)

	var user githubUser
	if err := g.get(ctx, client, "/user", &user); err != nil {
		return signin.OAuthProfile{}, err
	}

	email := user.Email
	if email == "" {
		var emails []githubEmail
		if err := g.get(ctx, client, "/user/emails", &emails); err != nil {
			return signin.OAuthProfile{}, err
		}
		email = primaryEmail(emails)
	}
	if email == "" {
		return signin.OAuthProfile{}, fmt.Errorf("[GitHub Exchange] account has no verified email: %w", ErrAuthFailed)
	}

	name := user.Name
	if name == "" {
		name = user.Login
	}

	return signin.OAuthProfile{
		Provider:          GitHubName,
		ProviderAccountID: strconv.FormatInt(user.ID, 10),
		Email:             email,
		Name:              name,
		Picture:           user.AvatarURL,
	}, nil
}

func (g *GitHub) get(ctx context.Context, client *http.Client, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.apiURL+path, nil)
	if err != nil {
		return fmt.Errorf("[GitHub get] %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("[GitHub get] %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("[GitHub get] %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("[GitHub get] decode %s: %w", path, err)
	}
	return nil
}

func primaryEmail(emails []githubEmail) string {
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email
		}
	}
	for _, e := range emails {
		if e.Verified {
			return e.Email
		}
	}
	return ""
}
