package wire

import (
	"lawncare-booking/internal/adaptor"
	"lawncare-booking/internal/data/repository"
	"lawncare-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Current user - requires authentication
	r.With(middleware.AuthSession(repo.Session, log)).Get("/api/user", userHandler.GetProfile)
}
