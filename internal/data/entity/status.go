package entity

import (
	"errors"
	"fmt"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

var ErrInvalidStatus = errors.New("invalid booking status")

// BookingStatuses lists every status in lifecycle order.
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusApproved,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// EarnsRevenue reports whether bookings in this status count towards revenue.
func (s BookingStatus) EarnsRevenue() bool {
	return s == BookingStatusApproved || s == BookingStatusCompleted
}

func ParseBookingStatus(raw string) (BookingStatus, error) {
	status := BookingStatus(raw)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return status, nil
}

var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusApproved, BookingStatusCancelled},
	BookingStatusApproved:  {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCancelled: {BookingStatusPending},
	BookingStatusCompleted: {},
}

// CanTransition reports whether a booking may move from one status to
// another under the strict lifecycle. Re-applying the current status is
// always allowed.
func CanTransition(from, to BookingStatus) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
