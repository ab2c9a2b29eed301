package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/skillbridge-web/internal/dto"
	"github.com/noah-isme/skillbridge-web/internal/models"
)

// reviewLookupLimit bounds the bookings scanned for the one being reviewed.
const reviewLookupLimit = 100

type reviewRepository interface {
	Create(ctx context.Context, input models.CreateReviewInput) (*models.Envelope[models.Review], error)
}

type myBookingsLister interface {
	GetMyBookings(ctx context.Context, filter models.BookingFilter) (*models.Envelope[[]models.Booking], error)
}

// ReviewService checks review eligibility and submits reviews.
type ReviewService struct {
	repo      reviewRepository
	bookings  myBookingsLister
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReviewService constructs a review service.
func NewReviewService(repo reviewRepository, bookings myBookingsLister, validate *validator.Validate, logger *zap.Logger) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ReviewService{repo: repo, bookings: bookings, validator: validate, logger: logger}
}

// Reviewable returns the booking when the caller may review it.
func (s *ReviewService) Reviewable(ctx context.Context, bookingID string) (*models.Booking, error) {
	if strings.TrimSpace(bookingID) == "" {
		return nil, invalid("Booking not found")
	}
	env, err := s.bookings.GetMyBookings(ctx, models.BookingFilter{Limit: reviewLookupLimit})
	if err != nil {
		s.logger.Warn("review lookup failed", zap.String("booking_id", bookingID), zap.Error(err))
		return nil, invalid("Failed to load booking details")
	}
	for i := range env.Data {
		b := env.Data[i]
		if b.ID != bookingID {
			continue
		}
		if b.Status != models.BookingCompleted {
			return nil, invalid("You can only review completed sessions")
		}
		if b.Review != nil {
			return nil, invalid("You have already reviewed this session")
		}
		return &b, nil
	}
	return nil, invalid("Booking not found")
}

// Submit validates and posts a review for a reviewable booking.
func (s *ReviewService) Submit(ctx context.Context, form dto.ReviewForm) error {
	if err := validate(s.validator, form); err != nil {
		return err
	}
	if _, err := s.Reviewable(ctx, form.BookingID); err != nil {
		return err
	}
	_, err := s.repo.Create(ctx, models.CreateReviewInput{
		BookingID: form.BookingID,
		Rating:    form.Rating,
		Comment:   strings.TrimSpace(form.Comment),
	})
	return err
}
