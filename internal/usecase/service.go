package usecase

import (
	"errors"
	"time"

	"lawncare-booking/internal/data/repository"
	"lawncare-booking/pkg/utils"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

type Service struct {
	Auth    AuthService
	User    UserService
	Booking BookingService
	Export  ExportService
}

func NewService(repo *repository.Repository, config *utils.Config, metrics *BookingMetrics, log *zap.Logger) *Service {
	booking := NewBookingService(repo.Booking, config.Booking, metrics, log)
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		User:    NewUserService(repo.User, log),
		Booking: booking,
		Export:  NewExportService(repo.Booking, log),
	}
}

// clock lets tests pin "now".
type clock func() time.Time
