package dto

import (
	"time"

	"github.com/spec-kit/ticket-board/internal/domain"
)

// RegisterRequest payload for new accounts, used for both users and support agents.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AccountResponse describes a registered account. Password hashes never leave the server.
type AccountResponse struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	Role      domain.Role `json:"role"`
}
