package domain

// Provider is an OAuth identity provider supported by the backend.
type Provider string

const (
	ProviderGitHub Provider = "github"
	ProviderGitLab Provider = "gitlab"
)

// Valid reports whether p is a provider the backend accepts.
func (p Provider) Valid() bool {
	return p == ProviderGitHub || p == ProviderGitLab
}

// User is the authenticated account.
type User struct {
	UserID    string   `json:"user_id"`
	Username  string   `json:"username"`
	Email     string   `json:"email,omitempty"`
	Name      string   `json:"name,omitempty"`
	AvatarURL string   `json:"avatar_url,omitempty"`
	Provider  Provider `json:"provider"`
	TeamID    string   `json:"team_id,omitempty"`
}

// AuthResponse is returned by the callback and refresh endpoints.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	User        User   `json:"user"`
}

// AuthorizationURL is where the user must go to grant access.
// State must be echoed back to the callback endpoint.
type AuthorizationURL struct {
	AuthorizationURL string `json:"authorization_url"`
	State            string `json:"state"`
}

// Session pairs a bearer token with the user it was issued for.
type Session struct {
	Token string
	User  User
}
