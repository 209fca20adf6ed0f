package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/admin"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type adminRepository struct {
	db *database.DB
}

func scanAdmin(row pgx.Row) (admin.Admin, error) {
	var a admin.Admin
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// Create implements admin.AdminRepository.
func (r *adminRepository) Create(ctx context.Context, newAdmin admin.Admin) (admin.Admin, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return admin.Admin{}, fmt.Errorf("failed to generate admin id: %w", err)
	}

	query := `
		INSERT INTO admins (id, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, username, password_hash, created_at, updated_at
	`

	created, err := scanAdmin(q.QueryRow(ctx, query, id.String(), newAdmin.Username, newAdmin.PasswordHash))
	if err != nil {
		if constraintViolation(err, pgUniqueViolation, "admins_username_key") {
			return admin.Admin{}, admin.ErrUsernameExists
		}
		return admin.Admin{}, fmt.Errorf("failed to create admin: %w", err)
	}

	return created, nil
}

// GetByUsername implements admin.AdminRepository.
func (r *adminRepository) GetByUsername(ctx context.Context, username string) (admin.Admin, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAdmin(q.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at, updated_at
		FROM admins
		WHERE username = $1
	`, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return admin.Admin{}, admin.ErrAdminNotFound
		}
		return admin.Admin{}, fmt.Errorf("failed to get admin by username: %w", err)
	}

	return a, nil
}

// GetByID implements admin.AdminRepository.
func (r *adminRepository) GetByID(ctx context.Context, id string) (admin.Admin, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAdmin(q.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at, updated_at
		FROM admins
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return admin.Admin{}, admin.ErrAdminNotFound
		}
		return admin.Admin{}, fmt.Errorf("failed to get admin by id %s: %w", id, err)
	}

	return a, nil
}

func NewAdminRepository(db *database.DB) admin.AdminRepository {
	return &adminRepository{db: db}
}
