package admin

import "context"

type AdminRepository interface {
	Create(ctx context.Context, admin Admin) (Admin, error)
	GetByUsername(ctx context.Context, username string) (Admin, error)
	GetByID(ctx context.Context, id string) (Admin, error)
}
