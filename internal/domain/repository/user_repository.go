package repository

import (
	"context"

	"hospital-management/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// FindByUsername returns nil, nil when no user has the username
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}
