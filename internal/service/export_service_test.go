package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/pkg/export"
)

func TestExportBookingsWalksPages(t *testing.T) {
	repo := &fakeAdminRepo{
		totalPages: 2,
		pages: map[int][]models.Booking{
			1: {{ID: "b1", Status: models.BookingConfirmed, Duration: 60, Student: &models.UserSummary{Name: "Ana"}}},
			2: {{ID: "b2", Status: models.BookingConfirmed, Duration: 30, TutorProfile: &models.TutorProfile{User: models.UserSummary{Name: "Budi"}}}},
		},
	}
	svc := NewExportService(repo, nil)
	svc.now = func() time.Time { return time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC) }

	result, err := svc.Bookings(context.Background(), "CONFIRMED", export.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Rows)
	assert.Len(t, repo.bookingFilter, 2)
	assert.Equal(t, "CONFIRMED", repo.bookingFilter[0].Status)
	assert.Equal(t, "bookings-confirmed-20241005.csv", result.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", result.ContentType)

	lines := strings.Split(strings.TrimSpace(string(result.Body)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "b1,Ana,,"))
	assert.True(t, strings.HasPrefix(lines[2], "b2,,Budi,"))
}

func TestExportBookingsPDF(t *testing.T) {
	repo := &fakeAdminRepo{totalPages: 1, pages: map[int][]models.Booking{1: {{ID: "b1", Status: models.BookingPending}}}}
	svc := NewExportService(repo, nil)

	result, err := svc.Bookings(context.Background(), "bogus", export.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "", repo.bookingFilter[0].Status)
	assert.True(t, bytes.HasPrefix(result.Body, []byte("%PDF")))
}

func TestExportBookingsStopsAtCap(t *testing.T) {
	full := make([]models.Booking, exportPageSize)
	repo := &fakeAdminRepo{totalPages: 50, pages: map[int][]models.Booking{}}
	for p := 1; p <= 50; p++ {
		repo.pages[p] = full
	}
	svc := NewExportService(repo, nil)

	result, err := svc.Bookings(context.Background(), "", export.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, ExportMaxRows, result.Rows)
	assert.Len(t, repo.bookingFilter, ExportMaxRows/exportPageSize)
	assert.True(t, strings.HasPrefix(result.Filename, "bookings-"))
}
