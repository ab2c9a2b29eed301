package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/skillbridge-web/internal/models"
)

const (
	tutorUpcomingLimit = 5
	tutorStatsSample   = 100
)

type tutorProfileReader interface {
	GetMyProfile(ctx context.Context) (*models.Envelope[models.TutorProfile], error)
}

// TutorDashboard is the content of /tutor/dashboard.
type TutorDashboard struct {
	Profile  *models.TutorProfile
	Stats    models.TutorStats
	Upcoming []models.Booking
}

// DashboardService assembles the tutor dashboard.
type DashboardService struct {
	profiles tutorProfileReader
	bookings myBookingsLister
	logger   *zap.Logger
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(profiles tutorProfileReader, bookings myBookingsLister, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{profiles: profiles, bookings: bookings, logger: logger}
}

// Tutor loads the tutor dashboard. Each section degrades to empty on failure.
func (s *DashboardService) Tutor(ctx context.Context) TutorDashboard {
	var out TutorDashboard

	if env, err := s.profiles.GetMyProfile(ctx); err != nil {
		s.logger.Debug("tutor profile unavailable", zap.Error(err))
	} else if env.Data.ID != "" {
		profile := env.Data
		out.Profile = &profile
	}

	upcoming, err := s.bookings.GetMyBookings(ctx, models.BookingFilter{Status: "PENDING,CONFIRMED", Limit: tutorUpcomingLimit})
	if err != nil {
		s.logger.Warn("upcoming bookings unavailable", zap.Error(err))
	} else {
		out.Upcoming = upcoming.Data
	}

	all, err := s.bookings.GetMyBookings(ctx, models.BookingFilter{Limit: tutorStatsSample})
	if err != nil {
		s.logger.Warn("booking stats unavailable", zap.Error(err))
		return out
	}
	var rate float64
	if out.Profile != nil {
		rate = out.Profile.HourlyRate
	}
	out.Stats = ComputeTutorStats(all.Data, rate)
	return out
}

// ComputeTutorStats counts bookings and sums earnings over completed
// sessions at hourlyRate per hour.
func ComputeTutorStats(bookings []models.Booking, hourlyRate float64) models.TutorStats {
	stats := models.TutorStats{TotalBookings: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case models.BookingPending:
			stats.PendingBookings++
		case models.BookingCompleted:
			stats.CompletedSessions++
			stats.TotalEarnings += hourlyRate * float64(b.Duration) / 60
		}
	}
	return stats
}
