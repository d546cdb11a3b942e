package models

import "time"

// User is a registered account in the local credential store
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Argon2id hash, never exposed in API
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest is the request body for account registration
type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" form:"password" validate:"required,min=6,max=128"`
}

// LoginRequest accepts JSON or an OAuth2-style password form
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        *User     `json:"user"`
}
