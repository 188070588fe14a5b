package repository

import (
	"errors"

	"lawncare-booking/pkg/database"

	"go.uber.org/zap"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateUsername = errors.New("username already exists")
)

// Repository groups the stores the application is wired with. All backends
// satisfy the same interfaces, so the rest of the code never knows which one
// it talks to.
type Repository struct {
	User    UserRepository
	Booking BookingRepository
	Session SessionRepository
}

// NewRepository returns Postgres-backed stores sharing one pool.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Session: NewSessionRepository(db, log),
	}
}

// NewMemoryRepository returns process-local stores. Data is lost on restart.
func NewMemoryRepository(log *zap.Logger) *Repository {
	return &Repository{
		User:    NewMemoryUserRepository(log),
		Booking: NewMemoryBookingRepository(log),
		Session: NewMemorySessionRepository(log),
	}
}
