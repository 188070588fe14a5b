package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"lawncare-booking/internal/data/entity"
	"lawncare-booking/internal/data/repository"
	"lawncare-booking/internal/dto/request"
	"lawncare-booking/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

func newTestBookingService(t *testing.T, strict bool) (*bookingService, *BookingMetrics) {
	t.Helper()
	metrics := NewBookingMetrics(prometheus.NewRegistry())
	svc := NewBookingService(
		repository.NewMemoryBookingRepository(zap.NewNop()),
		utils.BookingConfig{StrictTransitions: strict},
		metrics,
		zap.NewNop(),
	).(*bookingService)
	svc.now = func() time.Time { return fixedNow }
	return svc, metrics
}

func TestCreateBooking(t *testing.T) {
	svc, metrics := newTestBookingService(t, false)
	ctx := context.Background()

	req := validBookingRequest()
	req.ServiceType = "premium"
	req.LawnSize = 2000

	booking, err := svc.CreateBooking(ctx, req)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if booking.Status != entity.BookingStatusPending {
		t.Errorf("status = %s, want pending", booking.Status)
	}
	if booking.Price != 105.00 {
		t.Errorf("price = %.2f, want 105.00", booking.Price)
	}
	if got := testutil.ToFloat64(metrics.Created.WithLabelValues("premium")); got != 1 {
		t.Errorf("created counter = %v, want 1", got)
	}

	fetched, err := svc.GetBookingByID(ctx, booking.ID)
	if err != nil {
		t.Fatalf("GetBookingByID: %v", err)
	}
	if fetched.ID != booking.ID || fetched.Price != booking.Price || !fetched.CreatedAt.Equal(booking.CreatedAt) {
		t.Errorf("fetched %+v differs from created %+v", fetched, booking)
	}
}

func TestCreateBooking_InvalidInputStoresNothing(t *testing.T) {
	svc, _ := newTestBookingService(t, false)
	ctx := context.Background()

	req := validBookingRequest()
	req.LawnSize = 0

	_, err := svc.CreateBooking(ctx, req)
	var verr *utils.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want validation error", err)
	}

	all, _ := svc.GetAllBookings(ctx)
	if len(all) != 0 {
		t.Errorf("stored %d bookings after a rejected create", len(all))
	}
}

func TestGetBookingByID_NotFound(t *testing.T) {
	svc, _ := newTestBookingService(t, false)

	_, err := svc.GetBookingByID(context.Background(), 404)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestGetBookingsByStatus_InvalidStatus(t *testing.T) {
	svc, _ := newTestBookingService(t, false)

	_, err := svc.GetBookingsByStatus(context.Background(), "archived")
	var verr *utils.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestUpdateBookingStatus_Unrestricted(t *testing.T) {
	svc, metrics := newTestBookingService(t, false)
	ctx := context.Background()

	booking, _ := svc.CreateBooking(ctx, validBookingRequest())

	for _, status := range []string{"completed", "pending", "cancelled", "approved"} {
		updated, err := svc.UpdateBookingStatus(ctx, booking.ID, &request.UpdateBookingStatusRequest{Status: status})
		if err != nil {
			t.Fatalf("update to %s: %v", status, err)
		}
		if string(updated.Status) != status {
			t.Errorf("status = %s, want %s", updated.Status, status)
		}
	}

	if got := testutil.ToFloat64(metrics.StatusChanges.WithLabelValues("completed")); got != 1 {
		t.Errorf("completed counter = %v, want 1", got)
	}

	pending, _ := svc.GetBookingsByStatus(ctx, "pending")
	if len(pending) != 0 {
		t.Errorf("booking moved away from pending still listed as pending")
	}
}

func TestUpdateBookingStatus_Strict(t *testing.T) {
	svc, _ := newTestBookingService(t, true)
	ctx := context.Background()

	booking, _ := svc.CreateBooking(ctx, validBookingRequest())

	_, err := svc.UpdateBookingStatus(ctx, booking.ID, &request.UpdateBookingStatusRequest{Status: "completed"})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("pending -> completed: error = %v, want ErrInvalidTransition", err)
	}

	for _, status := range []string{"approved", "completed"} {
		if _, err := svc.UpdateBookingStatus(ctx, booking.ID, &request.UpdateBookingStatusRequest{Status: status}); err != nil {
			t.Fatalf("update to %s: %v", status, err)
		}
	}

	_, err = svc.UpdateBookingStatus(ctx, booking.ID, &request.UpdateBookingStatusRequest{Status: "pending"})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("completed -> pending: error = %v, want ErrInvalidTransition", err)
	}
}

func TestUpdateBookingStatus_Errors(t *testing.T) {
	svc, _ := newTestBookingService(t, false)
	ctx := context.Background()

	_, err := svc.UpdateBookingStatus(ctx, 99, &request.UpdateBookingStatusRequest{Status: "approved"})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("unknown id: error = %v, want ErrNotFound", err)
	}

	all, _ := svc.GetAllBookings(ctx)
	if len(all) != 0 {
		t.Errorf("status update created a booking")
	}

	_, err = svc.UpdateBookingStatus(ctx, 1, &request.UpdateBookingStatusRequest{Status: "lost"})
	var verr *utils.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("bad status: error = %v, want validation error", err)
	}
}

func TestGetDashboardStats(t *testing.T) {
	svc, _ := newTestBookingService(t, false)
	ctx := context.Background()

	// standard/1000 = 60, complete/500 = 110, premium/2000 = 105
	seed := []struct {
		serviceType string
		lawnSize    int
		status      string
	}{
		{"standard", 1000, "completed"},
		{"complete", 500, "approved"},
		{"premium", 2000, "cancelled"},
		{"standard", 1000, ""},
	}
	for _, s := range seed {
		req := validBookingRequest()
		req.ServiceType = s.serviceType
		req.LawnSize = s.lawnSize
		booking, err := svc.CreateBooking(ctx, req)
		if err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
		if s.status != "" {
			svc.UpdateBookingStatus(ctx, booking.ID, &request.UpdateBookingStatusRequest{Status: s.status})
		}
	}

	stats, err := svc.GetDashboardStats(ctx)
	if err != nil {
		t.Fatalf("GetDashboardStats: %v", err)
	}

	if stats.TotalBookings != 4 || stats.PendingBookings != 1 || stats.CompletedBookings != 1 {
		t.Errorf("counts = %+v", stats)
	}
	if stats.TotalRevenue != 170.00 {
		t.Errorf("revenue = %.2f, want 170.00", stats.TotalRevenue)
	}
}
