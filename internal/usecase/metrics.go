package usecase

import (
	"lawncare-booking/internal/data/entity"

	"github.com/prometheus/client_golang/prometheus"
)

type BookingMetrics struct {
	Created       *prometheus.CounterVec
	StatusChanges *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		Created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lawncare_bookings_created_total",
			Help: "Bookings created, by service type",
		}, []string{"service_type"}),

		StatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lawncare_booking_status_changes_total",
			Help: "Booking status updates, by new status",
		}, []string{"status"}),
	}

	reg.MustRegister(m.Created, m.StatusChanges)
	return m
}

func (m *BookingMetrics) bookingCreated(serviceType entity.ServiceType) {
	if m == nil {
		return
	}
	m.Created.WithLabelValues(string(serviceType)).Inc()
}

func (m *BookingMetrics) statusChanged(status entity.BookingStatus) {
	if m == nil {
		return
	}
	m.StatusChanges.WithLabelValues(string(status)).Inc()
}
