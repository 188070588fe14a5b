package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lawncare-booking/internal/data/entity"

	"go.uber.org/zap"
)

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session
	now      func() time.Time
	log      *zap.Logger
}

func NewMemorySessionRepository(log *zap.Logger) SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[string]*entity.Session),
		now:      time.Now,
		log:      log.With(zap.String("repository", "session_memory")),
	}
}

func (r *memorySessionRepository) Create(ctx context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *session
	r.sessions[session.Token.String()] = &stored
	return nil
}

func (r *memorySessionRepository) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[token]
	if !ok || !session.Valid(r.now()) {
		return nil, fmt.Errorf("session: %w", ErrNotFound)
	}

	found := *session
	return &found, nil
}

func (r *memorySessionRepository) Revoke(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[token]
	if !ok || session.RevokedAt != nil {
		return fmt.Errorf("session: %w", ErrNotFound)
	}

	now := r.now()
	session.RevokedAt = &now
	return nil
}

func (r *memorySessionRepository) CleanExpiredSessions(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	var removed int64
	for token, session := range r.sessions {
		if !session.Valid(now) {
			delete(r.sessions, token)
			removed++
		}
	}

	return removed, nil
}
