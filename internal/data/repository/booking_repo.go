package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	"lawncare-booking/internal/data/entity"
	"lawncare-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TransitionCheck vets a status change against the booking's current
// status. A nil check allows every change.
type TransitionCheck func(from, to entity.BookingStatus) error

type BookingRepository interface {
	// Create assigns the id, price, pending status and creation time.
	Create(ctx context.Context, input *entity.NewBooking) (*entity.Booking, error)
	FindByID(ctx context.Context, id int64) (*entity.Booking, error)
	// FindAll returns every booking, most recently created first.
	FindAll(ctx context.Context) ([]*entity.Booking, error)
	// FindByStatus returns bookings in status, soonest service date first.
	FindByStatus(ctx context.Context, status entity.BookingStatus) ([]*entity.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus, check TransitionCheck) (*entity.Booking, error)
	GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, first_name, last_name, email, phone, address, city, zip_code,
	service_type, lawn_size, lawn_condition, obstacles, service_date, service_time,
	status, price, created_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.FirstName,
		&b.LastName,
		&b.Email,
		&b.Phone,
		&b.Address,
		&b.City,
		&b.ZipCode,
		&b.ServiceType,
		&b.LawnSize,
		&b.LawnCondition,
		&b.Obstacles,
		&b.ServiceDate,
		&b.ServiceTime,
		&b.Status,
		&b.Price,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, input *entity.NewBooking) (*entity.Booking, error) {
	query := `
		INSERT INTO bookings (first_name, last_name, email, phone, address, city, zip_code,
		                      service_type, lawn_size, lawn_condition, obstacles, service_date,
		                      service_time, status, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + bookingColumns

	booking, err := scanBooking(r.db.QueryRow(ctx, query,
		input.FirstName,
		input.LastName,
		input.Email,
		input.Phone,
		input.Address,
		input.City,
		input.ZipCode,
		input.ServiceType,
		input.LawnSize,
		input.LawnCondition,
		input.Obstacles,
		input.ServiceDate,
		input.ServiceTime,
		entity.BookingStatusPending,
		entity.CalculatePrice(input.ServiceType, input.LawnSize),
	))
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("service_type", string(input.ServiceType)),
			zap.String("service_date", input.ServiceDate),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.Int64("booking_id", id),
		)
		return nil, fmt.Errorf("find booking by ID %d: %w", id, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC, id DESC`

	return r.queryBookings(ctx, "find all bookings", query)
}

func (r *bookingRepository) FindByStatus(ctx context.Context, status entity.BookingStatus) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = $1
		ORDER BY service_date ASC, id ASC
	`

	return r.queryBookings(ctx, "find bookings by status "+string(status), query, status)
}

func (r *bookingRepository) queryBookings(ctx context.Context, op, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query bookings", zap.Error(err), zap.String("operation", op))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	bookings := make([]*entity.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err), zap.String("operation", op))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

// UpdateStatus sets the status of one booking. Without a check it is a single
// UPDATE and concurrent writers resolve last-write-wins; with a check the row
// is locked while the current status is inspected.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus, check TransitionCheck) (*entity.Booking, error) {
	update := `UPDATE bookings SET status = $2 WHERE id = $1 RETURNING ` + bookingColumns

	if check == nil {
		booking, err := scanBooking(r.db.QueryRow(ctx, update, id, status))
		return r.statusResult(booking, err, id, status)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", zap.Error(err))
		return nil, fmt.Errorf("begin status update of booking %d: %w", id, err)
	}
	defer tx.Rollback(ctx)

	var current entity.BookingStatus
	err = tx.QueryRow(ctx, `SELECT status FROM bookings WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to lock booking", zap.Error(err), zap.Int64("booking_id", id))
		return nil, fmt.Errorf("lock booking %d: %w", id, err)
	}

	if err := check(current, status); err != nil {
		return nil, err
	}

	booking, err := scanBooking(tx.QueryRow(ctx, update, id, status))
	if booking, err = r.statusResult(booking, err, id, status); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit status update", zap.Error(err), zap.Int64("booking_id", id))
		return nil, fmt.Errorf("commit status update of booking %d: %w", id, err)
	}

	return booking, nil
}

func (r *bookingRepository) statusResult(booking *entity.Booking, err error, id int64, status entity.BookingStatus) (*entity.Booking, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.Int64("booking_id", id),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("update booking %d status to %s: %w", id, status, err)
	}
	return booking, nil
}

func (r *bookingRepository) GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'completed'),
		       COALESCE(SUM(price) FILTER (WHERE status IN ('approved', 'completed')), 0)
		FROM bookings
	`

	var stats entity.DashboardStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalBookings,
		&stats.PendingBookings,
		&stats.CompletedBookings,
		&stats.TotalRevenue,
	)
	if err != nil {
		r.log.Error("Failed to aggregate dashboard stats", zap.Error(err))
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	stats.TotalRevenue = roundCents(stats.TotalRevenue)
	return &stats, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
