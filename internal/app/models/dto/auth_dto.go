package dto

// LoginRedirectResponse carries the GitHub authorize URL the client should
// send the browser to.
type LoginRedirectResponse struct {
	AuthorizeURL string `json:"authorizeUrl"`
}

// TokenResponse is the session token issued after a successful OAuth callback
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"3600"`
}

// UserResponse represents the authenticated user's profile
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}
