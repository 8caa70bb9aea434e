package repository

import (
	"context"
	"fmt"
	"time"

	"hospital-management/internal/domain/entity"
	domainRepo "hospital-management/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

type sessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) domainRepo.SessionRepository {
	return &sessionRepository{client: client}
}

func sessionKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s%s:%s", sessionKeyPrefix, userID.String(), tokenID)
}

func (r *sessionRepository) Save(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	key := sessionKey(session.UserID, session.TokenID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			"username": session.Username,
			"role":     session.Role.String(),
		})
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

func (r *sessionRepository) Exists(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, sessionKey(userID, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *sessionRepository) Delete(ctx context.Context, userID uuid.UUID, tokenID string) error {
	return r.client.Del(ctx, sessionKey(userID, tokenID)).Err()
}
