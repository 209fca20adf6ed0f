package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/admin"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the username does not exist, so a
// missing user costs the same bcrypt work as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("empatt-dummy-password"), bcrypt.DefaultCost)

type AuthServiceImpl struct {
	admin.AdminRepository
	jwt.Service
}

func NewAuthService(adminRepository admin.AdminRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		AdminRepository: adminRepository,
		Service:         jwtService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	adminData, err := a.AdminRepository.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, admin.ErrAdminNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get admin by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(adminData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(adminData.ID, adminData.Username)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	slog.Info("admin logged in", "admin_id", adminData.ID)

	return auth.TokenResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.AdminResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := req.Validate(); err != nil {
		return auth.AdminResponse{}, err
	}

	hash, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.AdminResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := a.AdminRepository.Create(ctx, admin.Admin{
		Username:     req.Username,
		PasswordHash: hash,
	})
	if err != nil {
		return auth.AdminResponse{}, err
	}

	slog.Info("admin registered", "admin_id", created.ID, "username", created.Username)

	return auth.AdminResponse{
		ID:        created.ID,
		Username:  created.Username,
		CreatedAt: created.CreatedAt,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return auth.ErrInvalidToken
	}
	if err := a.Service.RevokeToken(ctx, jti, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
