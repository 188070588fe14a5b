package response

import (
	"time"

	"lawncare-booking/internal/data/entity"
)

type BookingResponse struct {
	ID            int64                `json:"id"`
	FirstName     string               `json:"firstName"`
	LastName      string               `json:"lastName"`
	Email         string               `json:"email"`
	Phone         string               `json:"phone"`
	Address       string               `json:"address"`
	City          string               `json:"city"`
	ZipCode       string               `json:"zipCode"`
	ServiceType   entity.ServiceType   `json:"serviceType"`
	LawnSize      int                  `json:"lawnSize"`
	LawnCondition *string              `json:"lawnCondition"`
	Obstacles     *string              `json:"obstacles"`
	ServiceDate   string               `json:"serviceDate"`
	ServiceTime   entity.ServiceTime   `json:"serviceTime"`
	Status        entity.BookingStatus `json:"status"`
	Price         float64              `json:"price"`
	CreatedAt     time.Time            `json:"createdAt"`
}

type DashboardStatsResponse struct {
	TotalBookings     int64   `json:"totalBookings"`
	PendingBookings   int64   `json:"pendingBookings"`
	CompletedBookings int64   `json:"completedBookings"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

// Helper converters
func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		FirstName:     b.FirstName,
		LastName:      b.LastName,
		Email:         b.Email,
		Phone:         b.Phone,
		Address:       b.Address,
		City:          b.City,
		ZipCode:       b.ZipCode,
		ServiceType:   b.ServiceType,
		LawnSize:      b.LawnSize,
		LawnCondition: b.LawnCondition,
		Obstacles:     b.Obstacles,
		ServiceDate:   b.ServiceDate,
		ServiceTime:   b.ServiceTime,
		Status:        b.Status,
		Price:         b.Price,
		CreatedAt:     b.CreatedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	resp := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, BookingToResponse(b))
	}
	return resp
}

func StatsToResponse(stats *entity.DashboardStats) DashboardStatsResponse {
	return DashboardStatsResponse{
		TotalBookings:     stats.TotalBookings,
		PendingBookings:   stats.PendingBookings,
		CompletedBookings: stats.CompletedBookings,
		TotalRevenue:      stats.TotalRevenue,
	}
}
