package auth

import "github.com/adirahmanto/craftline-backend/pkg/db/models"

// LoginRequest carries the identity-provider token to exchange for a session.
type LoginRequest struct {
	Token string `json:"token" validate:"required"`
}

// LoginResponse returns the opaque session id and the resolved user.
type LoginResponse struct {
	SessionID string         `json:"-"`
	User      models.AppUser `json:"user"`
}
