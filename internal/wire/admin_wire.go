package wire

import (
	"lawncare-booking/internal/adaptor"
	"lawncare-booking/internal/data/repository"
	"lawncare-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireAdmin registers the dashboard routes; every one needs an admin session.
func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.With(
		middleware.AuthSession(repo.Session, log),
		middleware.Admin(repo.User, log),
	).Route("/api/admin", func(r chi.Router) {
		r.Get("/bookings", adminHandler.GetAllBookings)
		r.Get("/bookings/export", adminHandler.ExportBookings)
		r.Get("/bookings/status/{status}", adminHandler.GetBookingsByStatus)
		r.Patch("/bookings/{id}/status", adminHandler.UpdateBookingStatus)
		r.Get("/dashboard/stats", adminHandler.GetDashboardStats)
	})
}
