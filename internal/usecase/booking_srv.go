package usecase

import (
	"context"
	"fmt"
	"time"

	"lawncare-booking/internal/data/entity"
	"lawncare-booking/internal/data/repository"
	"lawncare-booking/internal/dto/request"
	"lawncare-booking/internal/dto/response"
	"lawncare-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingService interface {
	// Public endpoints
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, id int64) (*response.BookingResponse, error)

	// Admin endpoints
	GetAllBookings(ctx context.Context) ([]response.BookingResponse, error)
	GetBookingsByStatus(ctx context.Context, status string) ([]response.BookingResponse, error)
	UpdateBookingStatus(ctx context.Context, id int64, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	GetDashboardStats(ctx context.Context) (*response.DashboardStatsResponse, error)
}

type bookingService struct {
	bookings repository.BookingRepository
	config   utils.BookingConfig
	metrics  *BookingMetrics
	now      clock
	log      *zap.Logger
}

func NewBookingService(
	bookings repository.BookingRepository,
	config utils.BookingConfig,
	metrics *BookingMetrics,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		bookings: bookings,
		config:   config,
		metrics:  metrics,
		now:      time.Now,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	input, err := ValidateBookingInput(req, s.now())
	if err != nil {
		s.log.Debug("Create booking validation failed", zap.Error(err))
		return nil, err
	}

	booking, err := s.bookings.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.metrics.bookingCreated(booking.ServiceType)
	s.log.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.String("service_type", string(booking.ServiceType)),
		zap.String("service_date", booking.ServiceDate),
		zap.Float64("price", booking.Price),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, id int64) (*response.BookingResponse, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetAllBookings(ctx context.Context) ([]response.BookingResponse, error) {
	bookings, err := s.bookings.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all bookings: %w", err)
	}

	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) GetBookingsByStatus(ctx context.Context, raw string) ([]response.BookingResponse, error) {
	status, err := ValidateStatus(raw)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookings.FindByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("get bookings by status: %w", err)
	}

	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, id int64, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	status, err := ValidateStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var check repository.TransitionCheck
	if s.config.StrictTransitions {
		check = strictTransition
	}

	booking, err := s.bookings.UpdateStatus(ctx, id, status, check)
	if err != nil {
		return nil, err
	}

	s.metrics.statusChanged(status)
	s.log.Info("Booking status updated",
		zap.Int64("booking_id", id),
		zap.String("status", string(status)),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetDashboardStats(ctx context.Context) (*response.DashboardStatsResponse, error) {
	stats, err := s.bookings.GetDashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("get dashboard stats: %w", err)
	}

	resp := response.StatsToResponse(stats)
	return &resp, nil
}

func strictTransition(from, to entity.BookingStatus) error {
	if !entity.CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
