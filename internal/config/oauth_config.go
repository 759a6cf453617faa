package config

const (
	googleClientIDVar     = "GOOGLE_CLIENT_ID"
	googleClientSecretVar = "GOOGLE_CLIENT_SECRET"
	githubClientIDVar     = "GITHUB_CLIENT_ID"
	githubClientSecretVar = "GITHUB_CLIENT_SECRET"
)

// ProviderCredentials is an OAuth client id/secret pair.
type ProviderCredentials struct {
	ClientID     string
	ClientSecret string
}

type OAuthConfig interface {
	GetGoogleCredentials() ProviderCredentials
	GetGitHubCredentials() ProviderCredentials
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetGoogleCredentials() ProviderCredentials {
	return ProviderCredentials{
		ClientID:     GetEnv(googleClientIDVar, ""),
		ClientSecret: GetEnv(googleClientSecretVar, ""),
	}
}

func (OAuth) GetGitHubCredentials() ProviderCredentials {
	return ProviderCredentials{
		ClientID:     GetEnv(githubClientIDVar, ""),
		ClientSecret: GetEnv(githubClientSecretVar, ""),
	}
}
