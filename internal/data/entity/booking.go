package entity

type ServiceType string

const (
	ServiceStandard ServiceType = "standard"
	ServicePremium  ServiceType = "premium"
	ServiceComplete ServiceType = "complete"
)

type ServiceTime string

const (
	ServiceTimeMorning   ServiceTime = "morning"
	ServiceTimeAfternoon ServiceTime = "afternoon"
	ServiceTimeEvening   ServiceTime = "evening"
)

type LawnCondition string

const (
	LawnGood LawnCondition = "good"
	LawnFair LawnCondition = "fair"
	LawnPoor LawnCondition = "poor"
)

// ServiceDateLayout is the calendar date format of Booking.ServiceDate.
const ServiceDateLayout = "2006-01-02"

type Booking struct {
	Base
	FirstName     string        `db:"first_name"`
	LastName      string        `db:"last_name"`
	Email         string        `db:"email"`
	Phone         string        `db:"phone"`
	Address       string        `db:"address"`
	City          string        `db:"city"`
	ZipCode       string        `db:"zip_code"`
	ServiceType   ServiceType   `db:"service_type"`
	LawnSize      int           `db:"lawn_size"`
	LawnCondition *string       `db:"lawn_condition"`
	Obstacles     *string       `db:"obstacles"`
	ServiceDate   string        `db:"service_date"`
	ServiceTime   ServiceTime   `db:"service_time"`
	Status        BookingStatus `db:"status"`
	Price         float64       `db:"price"`
}

// NewBooking is the validated input a booking is created from. It has no
// identity, status or price: storage assigns those.
type NewBooking struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Address       string
	City          string
	ZipCode       string
	ServiceType   ServiceType
	LawnSize      int
	LawnCondition *string
	Obstacles     *string
	ServiceDate   string
	ServiceTime   ServiceTime
}

type DashboardStats struct {
	TotalBookings     int64   `db:"total_bookings"`
	PendingBookings   int64   `db:"pending_bookings"`
	CompletedBookings int64   `db:"completed_bookings"`
	TotalRevenue      float64 `db:"total_revenue"`
}
