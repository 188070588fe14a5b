package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lawncare-booking/internal/data/entity"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "lawncare:session:"

type redisSessionRepository struct {
	client *redis.Client
	log    *zap.Logger
}

// NewRedisSessionRepository stores sessions as JSON values whose TTL matches
// the session expiry, so Redis drops them without housekeeping.
func NewRedisSessionRepository(client *redis.Client, log *zap.Logger) SessionRepository {
	return &redisSessionRepository{
		client: client,
		log:    log.With(zap.String("repository", "session_redis")),
	}
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

func (r *redisSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("create session for user %d: already expired", session.UserID)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(session.Token.String()), data, ttl).Err(); err != nil {
		r.log.Error("Failed to create session",
			zap.Error(err),
			zap.Int64("user_id", session.UserID),
		)
		return fmt.Errorf("create session for user %d: %w", session.UserID, err)
	}

	return nil
}

func (r *redisSessionRepository) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("session: %w", ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find valid session", zap.Error(err))
		return nil, fmt.Errorf("find session: %w", err)
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	if !session.Valid(time.Now()) {
		return nil, fmt.Errorf("session: %w", ErrNotFound)
	}

	return &session, nil
}

func (r *redisSessionRepository) Revoke(ctx context.Context, token string) error {
	deleted, err := r.client.Del(ctx, sessionKey(token)).Result()
	if err != nil {
		r.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}

	if deleted == 0 {
		return fmt.Errorf("session: %w", ErrNotFound)
	}

	return nil
}

// CleanExpiredSessions is a no-op: keys expire on their own.
func (r *redisSessionRepository) CleanExpiredSessions(ctx context.Context) (int64, error) {
	return 0, nil
}
