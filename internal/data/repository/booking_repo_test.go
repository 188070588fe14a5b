package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"lawncare-booking/internal/data/entity"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"go.uber.org/zap"
)

var bookingColumnNames = []string{
	"id", "first_name", "last_name", "email", "phone", "address", "city", "zip_code",
	"service_type", "lawn_size", "lawn_condition", "obstacles", "service_date", "service_time",
	"status", "price", "created_at",
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		mock.Close()
	})
	return mock
}

func bookingRow(rows *pgxmock.Rows, id int64, status entity.BookingStatus, created time.Time) *pgxmock.Rows {
	condition := "fair"
	return rows.AddRow(
		id, "Jane", "Doe", "jane@example.com", "555-0100", "12 Elm St", "Springfield", "12345",
		entity.ServiceStandard, 1000, &condition, (*string)(nil), "2030-05-01", entity.ServiceTimeMorning,
		status, entity.CalculatePrice(entity.ServiceStandard, 1000), created,
	)
}

func sampleNewBooking() *entity.NewBooking {
	return &entity.NewBooking{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@example.com",
		Phone:       "555-0100",
		Address:     "12 Elm St",
		City:        "Springfield",
		ZipCode:     "12345",
		ServiceType: entity.ServiceStandard,
		LawnSize:    1000,
		ServiceDate: "2030-05-01",
		ServiceTime: entity.ServiceTimeMorning,
	}
}

func TestBookingRepoCreate(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBookingRepository(mock, zap.NewNop())
	created := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	input := sampleNewBooking()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(
			input.FirstName, input.LastName, input.Email, input.Phone, input.Address, input.City, input.ZipCode,
			input.ServiceType, input.LawnSize, input.LawnCondition, input.Obstacles, input.ServiceDate,
			input.ServiceTime, entity.BookingStatusPending, entity.CalculatePrice(entity.ServiceStandard, 1000),
		).
		WillReturnRows(bookingRow(pgxmock.NewRows(bookingColumnNames), 11, entity.BookingStatusPending, created))

	booking, err := repo.Create(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}
	if booking.ID != 11 || booking.Status != entity.BookingStatusPending || !booking.CreatedAt.Equal(created) {
		t.Errorf("booking = %+v", booking)
	}
	if booking.LawnCondition == nil || *booking.LawnCondition != "fair" || booking.Obstacles != nil {
		t.Errorf("optional fields = %v, %v", booking.LawnCondition, booking.Obstacles)
	}
}

func TestBookingRepoFindByID_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBookingRepository(mock, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1")).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.FindByID(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestBookingRepoFindByStatus(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBookingRepository(mock, zap.NewNop())
	now := time.Now().UTC()

	rows := pgxmock.NewRows(bookingColumnNames)
	bookingRow(rows, 2, entity.BookingStatusApproved, now)
	bookingRow(rows, 5, entity.BookingStatusApproved, now)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1")).
		WithArgs(entity.BookingStatusApproved).
		WillReturnRows(rows)

	bookings, err := repo.FindByStatus(context.Background(), entity.BookingStatusApproved)
	if err != nil {
		t.Fatal(err)
	}
	if len(bookings) != 2 || bookings[0].ID != 2 || bookings[1].ID != 5 {
		t.Errorf("bookings = %+v", bookings)
	}
}

func TestBookingRepoFindAll_Empty(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBookingRepository(mock, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WillReturnRows(pgxmock.NewRows(bookingColumnNames))

	bookings, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if bookings == nil || len(bookings) != 0 {
		t.Errorf("bookings = %#v, want empty non-nil slice", bookings)
	}
}

func TestBookingRepoFindAll_QueryError(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBookingRepository(mock, zap.NewNop())

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings")).WillReturnError(boom)

	if _, err := repo.FindAll(context.Background()); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
}

func TestBookingRepoUpdateStatus_Unchecked(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBookingRepository(mock, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE bookings SET status = $2 WHERE id = $1")).
		WithArgs(int64(3), entity.BookingStatusCancelled).
		WillReturnRows(bookingRow(pgxmock.NewRows(bookingColumnNames), 3, entity.BookingStatusCancelled, time.Now()))

	booking, err := repo.UpdateStatus(context.Background(), 3, entity.BookingStatusCancelled, nil)
	if err != nil {
		t.Fatal(err)
	}
	if booking.Status != entity.BookingStatusCancelled {
		t.Errorf("status = %s", booking.Status)
	}

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE bookings")).
		WithArgs(int64(99), entity.BookingStatusApproved).
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.UpdateStatus(context.Background(), 99, entity.BookingStatusApproved, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing booking: err = %v, want ErrNotFound", err)
	}
}

func TestBookingRepoUpdateStatus_CheckedCommits(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBookingRepository(mock, zap.NewNop())

	var seen [2]entity.BookingStatus
	check := func(from, to entity.BookingStatus) error {
		seen = [2]entity.BookingStatus{from, to}
		return nil
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM bookings WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(8)).
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(entity.BookingStatusPending))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE bookings SET status = $2")).
		WithArgs(int64(8), entity.BookingStatusApproved).
		WillReturnRows(bookingRow(pgxmock.NewRows(bookingColumnNames), 8, entity.BookingStatusApproved, time.Now()))
	mock.ExpectCommit()

	booking, err := repo.UpdateStatus(context.Background(), 8, entity.BookingStatusApproved, check)
	if err != nil {
		t.Fatal(err)
	}
	if booking.Status != entity.BookingStatusApproved {
		t.Errorf("status = %s", booking.Status)
	}
	if seen != [2]entity.BookingStatus{entity.BookingStatusPending, entity.BookingStatusApproved} {
		t.Errorf("check saw %v", seen)
	}
}

func TestBookingRepoUpdateStatus_CheckRejectsAndRollsBack(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBookingRepository(mock, zap.NewNop())

	rejected := errors.New("not allowed")
	check := func(from, to entity.BookingStatus) error {
		return fmt.Errorf("%w: %s -> %s", rejected, from, to)
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(int64(8)).
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(entity.BookingStatusCompleted))
	mock.ExpectRollback()

	_, err := repo.UpdateStatus(context.Background(), 8, entity.BookingStatusPending, check)
	if !errors.Is(err, rejected) {
		t.Errorf("err = %v, want check error", err)
	}
}

func TestBookingRepoUpdateStatus_CheckedMissing(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBookingRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	check := func(from, to entity.BookingStatus) error { return nil }
	if _, err := repo.UpdateStatus(context.Background(), 404, entity.BookingStatusApproved, check); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestBookingRepoDashboardStats(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBookingRepository(mock, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) FILTER (WHERE status = 'pending')")).
		WillReturnRows(pgxmock.NewRows([]string{"total", "pending", "completed", "revenue"}).
			AddRow(int64(4), int64(1), int64(2), 180.004999))

	stats, err := repo.GetDashboardStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := entity.DashboardStats{TotalBookings: 4, PendingBookings: 1, CompletedBookings: 2, TotalRevenue: 180}
	if *stats != want {
		t.Errorf("stats = %+v, want %+v", *stats, want)
	}
}
