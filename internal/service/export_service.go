package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/pkg/export"
)

const (
	exportPageSize = 100
	// ExportMaxRows caps how many bookings one export collects.
	ExportMaxRows = 1000
)

type allBookingsLister interface {
	GetAllBookings(ctx context.Context, filter models.BookingFilter) (*models.Envelope[[]models.Booking], error)
}

// ExportResult is a rendered download.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
	Rows        int
}

// ExportService renders the admin booking list as CSV or PDF.
type ExportService struct {
	bookings allBookingsLister
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService constructs an export service.
func NewExportService(bookings allBookingsLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{bookings: bookings, logger: logger, now: time.Now}
}

// Bookings exports bookings with status (empty for all) in format.
func (s *ExportService) Bookings(ctx context.Context, status string, format export.Format) (*ExportResult, error) {
	if !models.BookingStatus(status).Valid() {
		status = ""
	}

	var rows []models.Booking
	for page := 1; len(rows) < ExportMaxRows; page++ {
		env, err := s.bookings.GetAllBookings(ctx, models.BookingFilter{Status: status, Page: page, Limit: exportPageSize})
		if err != nil {
			return nil, err
		}
		rows = append(rows, env.Data...)
		if env.Meta == nil || page >= env.Meta.TotalPages || len(env.Data) == 0 {
			break
		}
	}
	if len(rows) > ExportMaxRows {
		rows = rows[:ExportMaxRows]
	}

	title := "SkillBridge bookings"
	if status != "" {
		title += " (" + status + ")"
	}
	body, err := export.Render(format, BookingTable(title, rows))
	if err != nil {
		return nil, fmt.Errorf("render bookings export: %w", err)
	}
	s.logger.Info("bookings exported", zap.String("format", string(format)), zap.String("status", status), zap.Int("rows", len(rows)))

	return &ExportResult{
		Filename:    export.Filename(format, s.now(), "bookings", strings.ToLower(status)),
		ContentType: format.ContentType(),
		Body:        body,
		Rows:        len(rows),
	}, nil
}

// BookingTable lays bookings out as report rows.
func BookingTable(title string, bookings []models.Booking) export.Table {
	table := export.Table{
		Title:   title,
		Columns: []string{"Booking", "Student", "Tutor", "Scheduled (UTC)", "Duration (min)", "Status", "Notes"},
		Rows:    make([][]string, 0, len(bookings)),
	}
	for _, b := range bookings {
		student := ""
		if b.Student != nil {
			student = b.Student.Name
		}
		tutor := ""
		if t := b.TutorInfo(); t != nil {
			tutor = t.User.Name
		}
		table.Rows = append(table.Rows, []string{
			b.ID,
			student,
			tutor,
			b.ScheduledAt.UTC().Format("2006-01-02 15:04"),
			strconv.Itoa(b.Duration),
			string(b.Status),
			b.Notes,
		})
	}
	return table
}
