package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"lawncare-booking/internal/data/entity"

	"go.uber.org/zap"
)

type memoryBookingRepository struct {
	mu       sync.RWMutex
	bookings map[int64]*entity.Booking
	nextID   int64
	now      func() time.Time
	log      *zap.Logger
}

func NewMemoryBookingRepository(log *zap.Logger) BookingRepository {
	return &memoryBookingRepository{
		bookings: make(map[int64]*entity.Booking),
		nextID:   1,
		now:      time.Now,
		log:      log.With(zap.String("repository", "booking_memory")),
	}
}

// cloneBooking copies b including its optional fields, so callers never share
// memory with the stored record.
func cloneBooking(b *entity.Booking) *entity.Booking {
	c := *b
	if b.LawnCondition != nil {
		v := *b.LawnCondition
		c.LawnCondition = &v
	}
	if b.Obstacles != nil {
		v := *b.Obstacles
		c.Obstacles = &v
	}
	return &c
}

func (r *memoryBookingRepository) Create(ctx context.Context, input *entity.NewBooking) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking := &entity.Booking{
		Base: entity.Base{
			ID:        r.nextID,
			CreatedAt: r.now(),
		},
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		City:          input.City,
		ZipCode:       input.ZipCode,
		ServiceType:   input.ServiceType,
		LawnSize:      input.LawnSize,
		LawnCondition: input.LawnCondition,
		Obstacles:     input.Obstacles,
		ServiceDate:   input.ServiceDate,
		ServiceTime:   input.ServiceTime,
		Status:        entity.BookingStatusPending,
		Price:         entity.CalculatePrice(input.ServiceType, input.LawnSize),
	}
	r.nextID++

	stored := cloneBooking(booking)
	r.bookings[stored.ID] = stored

	return cloneBooking(stored), nil
}

func (r *memoryBookingRepository) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}

	return cloneBooking(booking), nil
}

func (r *memoryBookingRepository) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	bookings := r.collect(func(*entity.Booking) bool { return true })

	sort.Slice(bookings, func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	return bookings, nil
}

func (r *memoryBookingRepository) FindByStatus(ctx context.Context, status entity.BookingStatus) ([]*entity.Booking, error) {
	bookings := r.collect(func(b *entity.Booking) bool { return b.Status == status })

	// ISO dates order lexically
	sort.Slice(bookings, func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		if a.ServiceDate != b.ServiceDate {
			return a.ServiceDate < b.ServiceDate
		}
		return a.ID < b.ID
	})

	return bookings, nil
}

func (r *memoryBookingRepository) collect(keep func(*entity.Booking) bool) []*entity.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings := make([]*entity.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		if keep(b) {
			bookings = append(bookings, cloneBooking(b))
		}
	}
	return bookings
}

func (r *memoryBookingRepository) UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus, check TransitionCheck) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}

	if check != nil {
		if err := check(booking.Status, status); err != nil {
			return nil, err
		}
	}

	booking.Status = status
	return cloneBooking(booking), nil
}

func (r *memoryBookingRepository) GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &entity.DashboardStats{
		TotalBookings: int64(len(r.bookings)),
	}

	for _, b := range r.bookings {
		switch b.Status {
		case entity.BookingStatusPending:
			stats.PendingBookings++
		case entity.BookingStatusCompleted:
			stats.CompletedBookings++
		}
		if b.Status.EarnsRevenue() {
			stats.TotalRevenue += b.Price
		}
	}

	stats.TotalRevenue = roundCents(stats.TotalRevenue)
	return stats, nil
}
