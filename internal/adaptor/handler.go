package adaptor

import (
	"errors"
	"net/http"

	"lawncare-booking/internal/data/repository"
	"lawncare-booking/internal/usecase"
	"lawncare-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Booking *BookingHandler
	Admin   *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Booking: NewBookingHandler(service.Booking, log),
		Admin:   NewAdminHandler(service.Booking, service.Export, log),
	}
}

// handleServiceError maps service errors onto HTTP responses. Anything it
// does not recognise is logged and reported as a generic 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *utils.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Debug(operation+" validation failed", zap.Error(err))
		utils.ResponseValidation(w, validationErr)

	case errors.Is(err, repository.ErrNotFound):
		log.Debug(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "Not found")

	case errors.Is(err, repository.ErrDuplicateUsername):
		log.Warn(operation+" failed - duplicate username", zap.Error(err))
		utils.ResponseConflict(w, "Username already exists")

	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.ResponseUnauthorized(w, "Invalid username or password")

	case errors.Is(err, usecase.ErrInvalidTransition):
		log.Warn(operation+" failed - transition rejected", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// decodeBody reads a JSON payload into dst. It answers 400 itself and
// returns false when the body is malformed or has mistyped fields; in the
// latter case check is run over the decoded remainder so the client gets
// every field error at once.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, check func() map[string]string) bool {
	typeErrs, err := utils.DecodeJSON(r.Body, dst)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	if len(typeErrs) == 0 {
		return true
	}

	fields := check()
	if fields == nil {
		fields = make(map[string]string, len(typeErrs))
	}
	for name, msg := range typeErrs {
		fields[name] = msg
	}
	utils.ResponseValidation(w, utils.NewValidationError(fields))
	return false
}

// fieldErrors extracts the per-field messages from a validation error.
func fieldErrors(err error) map[string]string {
	var validationErr *utils.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Fields
	}
	return nil
}
