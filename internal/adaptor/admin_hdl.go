package adaptor

import (
	"fmt"
	"net/http"
	"time"

	"lawncare-booking/internal/dto/request"
	"lawncare-booking/internal/usecase"
	"lawncare-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminHandler serves the dashboard endpoints under /api/admin.
type AdminHandler struct {
	bookings usecase.BookingService
	export   usecase.ExportService
	log      *zap.Logger
}

func NewAdminHandler(bookings usecase.BookingService, export usecase.ExportService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		bookings: bookings,
		export:   export,
		log:      log.With(zap.String("handler", "admin")),
	}
}

// GetAllBookings handles GET /api/admin/bookings
func (h *AdminHandler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.GetAllBookings(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get all bookings")
		return
	}

	utils.ResponseSuccess(w, "Bookings retrieved successfully", bookings)
}

// GetBookingsByStatus handles GET /api/admin/bookings/status/{status}
func (h *AdminHandler) GetBookingsByStatus(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.GetBookingsByStatus(r.Context(), chi.URLParam(r, "status"))
	if err != nil {
		handleServiceError(w, h.log, err, "get bookings by status")
		return
	}

	utils.ResponseSuccess(w, "Bookings retrieved successfully", bookings)
}

// UpdateBookingStatus handles PATCH /api/admin/bookings/{id}/status
func (h *AdminHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	var req request.UpdateBookingStatusRequest
	if !decodeBody(w, r, &req, func() map[string]string { return utils.ValidateStruct(&req) }) {
		return
	}

	booking, err := h.bookings.UpdateBookingStatus(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update booking status")
		return
	}

	utils.ResponseSuccess(w, "Booking status updated successfully", booking)
}

// GetDashboardStats handles GET /api/admin/dashboard/stats
func (h *AdminHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.bookings.GetDashboardStats(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get dashboard stats")
		return
	}

	utils.ResponseSuccess(w, "Dashboard stats retrieved successfully", stats)
}

// ExportBookings handles GET /api/admin/bookings/export[?status=]
func (h *AdminHandler) ExportBookings(w http.ResponseWriter, r *http.Request) {
	buf, err := h.export.ExportBookings(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		handleServiceError(w, h.log, err, "export bookings")
		return
	}

	filename := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Warn("Export write interrupted", zap.Error(err))
	}
}
