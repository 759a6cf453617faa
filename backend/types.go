package backend

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the identity record the backend returns on login or account linking.
// Optional fields are pointers where "absent" must be told apart from the zero value.
type User struct {
	ID                string `json:"id,omitempty"`
	Username          string `json:"username,omitempty"`
	FirstName         string `json:"firstName,omitempty"`
	LastName          string `json:"lastName,omitempty"`
	Image             string `json:"image,omitempty"`
	Role              string `json:"role,omitempty"`
	IsProfileComplete *bool  `json:"isProfileComplete,omitempty"`
}

// AuthResponse is the success body of POST /auth/login.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// OAuthLoginRequest is the body of POST /auth/oauth-login.
type OAuthLoginRequest struct {
	Provider   string `json:"provider"`
	ProviderID string `json:"providerId"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Image      string `json:"image"`
}

// OAuthLoginResponse is the success body of POST /auth/oauth-login.
type OAuthLoginResponse struct {
	Token        string `json:"token"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}
