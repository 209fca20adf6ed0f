package auth

import (
	"context"
	"time"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	// Register creates another admin account. Callers must already be admins.
	Register(ctx context.Context, req RegisterRequest) (AdminResponse, error)
	// Logout revokes the token identified by jti until it would have expired.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}
