package repository

import (
	"context"
	"time"

	"hospital-management/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionRepository tracks live sessions so they can be revoked before their token expires
type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session, ttl time.Duration) error
	Exists(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error)
	Delete(ctx context.Context, userID uuid.UUID, tokenID string) error
}
