package usecase

import (
	"strings"
	"time"

	"lawncare-booking/internal/data/entity"
	"lawncare-booking/internal/dto/request"
	"lawncare-booking/pkg/utils"
)

// ValidateBookingInput checks a booking form against the field rules and the
// calendar at now, reporting every failing field at once.
func ValidateBookingInput(req *request.CreateBookingRequest, now time.Time) (*entity.NewBooking, error) {
	errs := utils.ValidateStruct(req)
	if errs == nil {
		errs = make(map[string]string)
	}

	if _, bad := errs["serviceDate"]; !bad {
		if req.ServiceDate < now.Format(entity.ServiceDateLayout) {
			errs["serviceDate"] = "Service date cannot be in the past"
		}
	}

	if len(errs) > 0 {
		return nil, utils.NewValidationError(errs)
	}

	return &entity.NewBooking{
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Email:         strings.TrimSpace(req.Email),
		Phone:         strings.TrimSpace(req.Phone),
		Address:       strings.TrimSpace(req.Address),
		City:          strings.TrimSpace(req.City),
		ZipCode:       strings.TrimSpace(req.ZipCode),
		ServiceType:   entity.ServiceType(req.ServiceType),
		LawnSize:      req.LawnSize,
		LawnCondition: optional(req.LawnCondition),
		Obstacles:     optional(req.Obstacles),
		ServiceDate:   req.ServiceDate,
		ServiceTime:   entity.ServiceTime(req.ServiceTime),
	}, nil
}

// ValidateStatus parses a booking status from client input.
func ValidateStatus(raw string) (entity.BookingStatus, error) {
	status, err := entity.ParseBookingStatus(raw)
	if err != nil {
		return "", utils.NewValidationError(map[string]string{
			"status": "Must be one of: pending, approved, completed, cancelled",
		})
	}
	return status, nil
}

// optional maps blank optional text to NULL.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
