package usecase

import (
	"bytes"
	"context"
	"fmt"

	"lawncare-booking/internal/data/entity"
	"lawncare-booking/internal/data/repository"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	bookingsSheet = "Bookings"
	summarySheet  = "Summary"
)

var exportHeaders = []string{
	"ID", "First Name", "Last Name", "Email", "Phone", "Address", "City",
	"Zip Code", "Service Type", "Lawn Size (sq ft)", "Lawn Condition",
	"Obstacles", "Service Date", "Service Time", "Status", "Price", "Created At",
}

type ExportService interface {
	// ExportBookings renders bookings as an XLSX workbook. An empty status
	// exports every booking.
	ExportBookings(ctx context.Context, status string) (*bytes.Buffer, error)
}

type exportService struct {
	bookings repository.BookingRepository
	log      *zap.Logger
}

func NewExportService(bookings repository.BookingRepository, log *zap.Logger) ExportService {
	return &exportService{
		bookings: bookings,
		log:      log.With(zap.String("service", "export")),
	}
}

func (s *exportService) ExportBookings(ctx context.Context, raw string) (*bytes.Buffer, error) {
	var (
		bookings []*entity.Booking
		err      error
	)
	if raw == "" {
		bookings, err = s.bookings.FindAll(ctx)
	} else {
		status, verr := ValidateStatus(raw)
		if verr != nil {
			return nil, verr
		}
		bookings, err = s.bookings.FindByStatus(ctx, status)
	}
	if err != nil {
		return nil, fmt.Errorf("load bookings for export: %w", err)
	}

	stats, err := s.bookings.GetDashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stats for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeBookingsSheet(f, bookings); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, stats); err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.log.Info("Bookings exported",
		zap.Int("count", len(bookings)),
		zap.String("status", raw),
	)
	return buf, nil
}

func writeBookingsSheet(f *excelize.File, bookings []*entity.Booking) error {
	index, err := f.NewSheet(bookingsSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	header := make([]any, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(bookingsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		f.SetCellStyle(bookingsSheet, "A1", last, style)
	}

	for i, b := range bookings {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{
			b.ID,
			b.FirstName,
			b.LastName,
			b.Email,
			b.Phone,
			b.Address,
			b.City,
			b.ZipCode,
			string(b.ServiceType),
			b.LawnSize,
			deref(b.LawnCondition),
			deref(b.Obstacles),
			b.ServiceDate,
			string(b.ServiceTime),
			string(b.Status),
			b.Price,
			b.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := f.SetSheetRow(bookingsSheet, cell, &row); err != nil {
			return fmt.Errorf("write booking %d: %w", b.ID, err)
		}
	}

	f.SetColWidth(bookingsSheet, "A", "A", 8)
	f.SetColWidth(bookingsSheet, "B", "Q", 18)
	return nil
}

func writeSummarySheet(f *excelize.File, stats *entity.DashboardStats) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	rows := [][]any{
		{"Total Bookings", stats.TotalBookings},
		{"Pending Bookings", stats.PendingBookings},
		{"Completed Bookings", stats.CompletedBookings},
		{"Total Revenue", stats.TotalRevenue},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	f.SetColWidth(summarySheet, "A", "A", 22)
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
