package dto

import "time"

// SaveConnectionRequest is posted by the identity service's OAuth
// callback once an owner grants calendar access.
type SaveConnectionRequest struct {
	Provider       string     `json:"provider"`
	Email          string     `json:"email"`
	AccessToken    string     `json:"access_token"`
	RefreshToken   string     `json:"refresh_token"`
	TokenExpiresAt *time.Time `json:"token_expires_at"`
}

// ConnectionResponse hides the tokens.
type ConnectionResponse struct {
	Provider       string     `json:"provider"`
	Email          string     `json:"email"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
