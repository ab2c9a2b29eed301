package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/skillbridge-web/internal/dto"
	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/internal/repository"
)

const (
	// TutorPageSize is the number of tutors per search page.
	TutorPageSize = 12
	// TutorReviewLimit is how many reviews the detail page shows.
	TutorReviewLimit = 10
)

type tutorRepository interface {
	Search(ctx context.Context, params models.TutorSearchParams) (*models.Envelope[[]models.TutorProfile], error)
	GetByID(ctx context.Context, id string) (*models.Envelope[models.TutorProfile], error)
	CreateProfile(ctx context.Context, input repository.TutorProfileInput) (*models.Envelope[models.TutorProfile], error)
	UpdateProfile(ctx context.Context, input repository.TutorProfileInput) (*models.Envelope[models.TutorProfile], error)
	GetMyProfile(ctx context.Context) (*models.Envelope[models.TutorProfile], error)
	GetMyAvailability(ctx context.Context) (*models.Envelope[[]models.TutorAvailability], error)
	AddAvailability(ctx context.Context, input repository.AvailabilityInput) (*models.Envelope[models.TutorAvailability], error)
	DeleteAvailability(ctx context.Context, id string) (*models.Envelope[any], error)
}

type tutorReviewLister interface {
	GetTutorReviews(ctx context.Context, tutorProfileID string, page, limit int) (*models.Envelope[[]models.Review], error)
}

// TutorDetail is everything the public tutor page shows.
type TutorDetail struct {
	Profile models.TutorProfile
	Days    []models.DaySlots
	Reviews []models.Review
}

// TutorService covers the public tutor catalogue and the tutor's own profile.
type TutorService struct {
	repo      tutorRepository
	reviews   tutorReviewLister
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTutorService constructs a tutor service.
func NewTutorService(repo tutorRepository, reviews tutorReviewLister, validate *validator.Validate, logger *zap.Logger) *TutorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &TutorService{repo: repo, reviews: reviews, validator: validate, logger: logger}
}

// Search lists tutors, applying the page defaults.
func (s *TutorService) Search(ctx context.Context, params models.TutorSearchParams) (*models.Envelope[[]models.TutorProfile], error) {
	if params.SortBy == "" {
		params.SortBy = "rating"
	}
	if params.SortOrder == "" {
		params.SortOrder = "desc"
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit <= 0 {
		params.Limit = TutorPageSize
	}
	params.Search = strings.TrimSpace(params.Search)
	return s.repo.Search(ctx, params)
}

// Detail loads a tutor and their latest reviews. Missing reviews are not an error.
func (s *TutorService) Detail(ctx context.Context, id string) (*TutorDetail, error) {
	env, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &TutorDetail{Profile: env.Data, Days: models.GroupByDay(env.Data.Availabilities)}

	reviews, err := s.reviews.GetTutorReviews(ctx, env.Data.ID, 1, TutorReviewLimit)
	if err != nil {
		s.logger.Debug("tutor reviews unavailable", zap.String("tutor_id", id), zap.Error(err))
		return detail, nil
	}
	detail.Reviews = reviews.Data
	return detail, nil
}

// MyProfile returns the signed-in tutor's profile, or nil when none exists yet.
func (s *TutorService) MyProfile(ctx context.Context) *models.TutorProfile {
	env, err := s.repo.GetMyProfile(ctx)
	if err != nil {
		s.logger.Debug("tutor profile unavailable", zap.Error(err))
		return nil
	}
	if env.Data.ID == "" {
		return nil
	}
	profile := env.Data
	return &profile
}

// SaveProfile creates the profile when exists is false and updates it
// otherwise. It reports whether a profile was created.
func (s *TutorService) SaveProfile(ctx context.Context, form dto.TutorProfileForm, exists bool) (bool, error) {
	if err := validate(s.validator, form); err != nil {
		return false, err
	}
	input := repository.TutorProfileInput{
		Bio:         strings.TrimSpace(form.Bio),
		HourlyRate:  form.HourlyRate,
		Experience:  form.Experience,
		CategoryIDs: nonEmpty(form.CategoryIDs),
		IsAvailable: form.IsAvailable,
	}
	if exists {
		_, err := s.repo.UpdateProfile(ctx, input)
		return false, err
	}
	_, err := s.repo.CreateProfile(ctx, input)
	return err == nil, err
}

// Availability lists the tutor's slots grouped by weekday.
func (s *TutorService) Availability(ctx context.Context) ([]models.DaySlots, error) {
	env, err := s.repo.GetMyAvailability(ctx)
	if err != nil {
		return nil, err
	}
	return models.GroupByDay(env.Data), nil
}

// AddAvailability stores a weekly slot. Overlapping slots are accepted.
func (s *TutorService) AddAvailability(ctx context.Context, form dto.AvailabilityForm) error {
	if err := validate(s.validator, form); err != nil {
		return err
	}
	// HH:MM compares correctly as text
	if form.StartTime >= form.EndTime {
		return invalid("End time must be after start time")
	}
	_, err := s.repo.AddAvailability(ctx, repository.AvailabilityInput{
		DayOfWeek: form.DayOfWeek,
		StartTime: form.StartTime,
		EndTime:   form.EndTime,
	})
	return err
}

// RemoveAvailability deletes a slot.
func (s *TutorService) RemoveAvailability(ctx context.Context, id string) error {
	_, err := s.repo.DeleteAvailability(ctx, id)
	return err
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
