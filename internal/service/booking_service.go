package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/skillbridge-web/internal/dto"
	"github.com/noah-isme/skillbridge-web/internal/models"
)

const (
	// BookingPageSize is the page size of booking lists.
	BookingPageSize = 10
	// DefaultDuration is the session length when the form leaves it empty.
	DefaultDuration = 60
)

// BookingTab maps a tab of a booking list onto a status filter.
type BookingTab struct {
	Key    string
	Label  string
	Status string
}

// StudentBookingTabs are the tabs of /dashboard/bookings.
var StudentBookingTabs = []BookingTab{
	{Key: "upcoming", Label: "Upcoming", Status: "PENDING,CONFIRMED"},
	{Key: "past", Label: "Past", Status: "COMPLETED,CANCELLED"},
}

// TutorBookingTabs are the tabs of /tutor/bookings.
var TutorBookingTabs = []BookingTab{
	{Key: "pending", Label: "Pending", Status: string(models.BookingPending)},
	{Key: "confirmed", Label: "Confirmed", Status: string(models.BookingConfirmed)},
	{Key: "completed", Label: "Completed", Status: string(models.BookingCompleted)},
	{Key: "cancelled", Label: "Cancelled", Status: string(models.BookingCancelled)},
}

// FindTab returns the tab named key, or the first tab.
func FindTab(tabs []BookingTab, key string) BookingTab {
	for _, t := range tabs {
		if t.Key == key {
			return t
		}
	}
	return tabs[0]
}

type bookingRepository interface {
	Create(ctx context.Context, input models.CreateBookingInput) (*models.Envelope[models.Booking], error)
	GetMyBookings(ctx context.Context, filter models.BookingFilter) (*models.Envelope[[]models.Booking], error)
	GetByID(ctx context.Context, id string) (*models.Envelope[models.Booking], error)
	Cancel(ctx context.Context, id string) (*models.Envelope[models.Booking], error)
	Confirm(ctx context.Context, id string) (*models.Envelope[models.Booking], error)
	Complete(ctx context.Context, id string) (*models.Envelope[models.Booking], error)
}

// BookingService creates bookings and applies gated transitions.
type BookingService struct {
	repo      bookingRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBookingService constructs a booking service.
func NewBookingService(repo bookingRepository, validate *validator.Validate, logger *zap.Logger) *BookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &BookingService{repo: repo, validator: validate, logger: logger}
}

// Create books a session with tutorProfileID.
func (s *BookingService) Create(ctx context.Context, tutorProfileID string, form dto.BookingForm) (*models.Booking, error) {
	if strings.TrimSpace(form.Date) == "" || strings.TrimSpace(form.Time) == "" {
		return nil, invalid("Please select date and time")
	}
	if err := validate(s.validator, form); err != nil {
		return nil, err
	}
	scheduledAt, err := ScheduledAt(form.Date, form.Time, form.TZOffset)
	if err != nil {
		return nil, invalid("Please select date and time")
	}
	duration := form.Duration
	if duration == 0 {
		duration = DefaultDuration
	}

	env, err := s.repo.Create(ctx, models.CreateBookingInput{
		TutorProfileID: tutorProfileID,
		ScheduledAt:    scheduledAt,
		Duration:       duration,
		Notes:          strings.TrimSpace(form.Notes),
	})
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// List pages through the caller's bookings for a tab.
func (s *BookingService) List(ctx context.Context, tab BookingTab, page int) (*models.Envelope[[]models.Booking], error) {
	if page < 1 {
		page = 1
	}
	return s.repo.GetMyBookings(ctx, models.BookingFilter{Status: tab.Status, Page: page, Limit: BookingPageSize})
}

// Apply performs action on booking id as role. The booking is re-read first
// and actions the gate does not offer are rejected without a transition call.
func (s *BookingService) Apply(ctx context.Context, id string, role models.UserRole, action BookingAction) (*models.Booking, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !Allows(current.Data.Status, role, action) {
		return nil, invalid(fmt.Sprintf("Cannot %s a %s booking", action, strings.ToLower(string(current.Data.Status))))
	}

	var env *models.Envelope[models.Booking]
	switch action.Endpoint() {
	case string(ActionConfirm):
		env, err = s.repo.Confirm(ctx, id)
	case string(ActionComplete):
		env, err = s.repo.Complete(ctx, id)
	default:
		env, err = s.repo.Cancel(ctx, id)
	}
	if err != nil {
		s.logger.Debug("booking transition rejected", zap.String("booking_id", id), zap.String("action", string(action)), zap.Error(err))
		return nil, err
	}
	return &env.Data, nil
}

// ScheduledAt combines a date and wall clock time entered in a browser whose
// UTC offset is tzOffset minutes (as reported by getTimezoneOffset).
func ScheduledAt(date, clock string, tzOffset int) (time.Time, error) {
	local, err := time.Parse("2006-01-02T15:04", date+"T"+clock)
	if err != nil {
		return time.Time{}, err
	}
	return local.Add(time.Duration(tzOffset) * time.Minute).UTC(), nil
}
