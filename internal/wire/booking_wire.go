package wire

import (
	"lawncare-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireBooking registers the public booking form endpoints.
func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Post("/", bookingHandler.CreateBooking)
		r.Get("/{id}", bookingHandler.GetBooking)
	})
}
