package models

// User defines the user model based on the 'users' table. Accounts are
// provisioned on first GitHub login, so the profile mirrors what GitHub
// returns.
type User struct {
	ID        string `json:"id" db:"id" example:"8f14e45f-ceea-4e6b-8b54-0f0e9a1c2b3d"` // Unique identifier for the user
	Name      string `json:"name" db:"name" example:"Grace Hopper"`                     // Display name from the identity provider
	AvatarURL string `json:"avatarUrl" db:"avatar_url"`                                 // Avatar URL from the identity provider
}
