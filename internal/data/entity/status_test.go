package entity

import (
	"errors"
	"testing"
)

func TestParseBookingStatus(t *testing.T) {
	for _, s := range BookingStatuses {
		got, err := ParseBookingStatus(string(s))
		if err != nil {
			t.Fatalf("ParseBookingStatus(%q) error: %v", s, err)
		}
		if got != s {
			t.Errorf("ParseBookingStatus(%q) = %q", s, got)
		}
	}

	for _, raw := range []string{"", "PENDING", "done", "canceled"} {
		if _, err := ParseBookingStatus(raw); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("ParseBookingStatus(%q) err = %v, want ErrInvalidStatus", raw, err)
		}
	}
}

func TestEarnsRevenue(t *testing.T) {
	want := map[BookingStatus]bool{
		BookingStatusPending:   false,
		BookingStatusApproved:  true,
		BookingStatusCompleted: true,
		BookingStatusCancelled: false,
	}
	for s, w := range want {
		if got := s.EarnsRevenue(); got != w {
			t.Errorf("%s.EarnsRevenue() = %v, want %v", s, got, w)
		}
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingStatusPending, BookingStatusApproved, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusCompleted, false},
		{BookingStatusApproved, BookingStatusCompleted, true},
		{BookingStatusApproved, BookingStatusCancelled, true},
		{BookingStatusApproved, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusPending, true},
		{BookingStatusCancelled, BookingStatusApproved, false},
		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusCompleted, BookingStatusPending, false},
		{BookingStatusCompleted, BookingStatusCompleted, true},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
