package repository

import (
	"context"
	"fmt"
	"sync"

	"lawncare-booking/internal/data/entity"

	"go.uber.org/zap"
)

type memoryUserRepository struct {
	mu         sync.RWMutex
	users      map[int64]*entity.User
	byUsername map[string]int64
	nextID     int64
	log        *zap.Logger
}

func NewMemoryUserRepository(log *zap.Logger) UserRepository {
	return &memoryUserRepository{
		users:      make(map[int64]*entity.User),
		byUsername: make(map[string]int64),
		nextID:     1,
		log:        log.With(zap.String("repository", "user_memory")),
	}
}

// Create checks and inserts under one lock, so concurrent registrations of the
// same username cannot both succeed.
func (r *memoryUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[user.Username]; taken {
		return fmt.Errorf("create user %s: %w", user.Username, ErrDuplicateUsername)
	}

	user.ID = r.nextID
	r.nextID++

	stored := *user
	r.users[stored.ID] = &stored
	r.byUsername[stored.Username] = stored.ID

	return nil
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}

	found := *user
	return &found, nil
}

func (r *memoryUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
	}

	found := *r.users[id]
	return &found, nil
}

func (r *memoryUserRepository) SetAdmin(ctx context.Context, id int64, isAdmin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}

	user.IsAdmin = isAdmin
	return nil
}
