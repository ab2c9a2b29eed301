package repository

import (
	"context"
	"net/http"

	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/pkg/apiclient"
)

// TutorProfileInput is the create/update body for a tutor profile.
type TutorProfileInput struct {
	Bio         string   `json:"bio"`
	HourlyRate  float64  `json:"hourlyRate"`
	Experience  int      `json:"experience"`
	CategoryIDs []string `json:"categoryIds"`
	IsAvailable bool     `json:"isAvailable"`
}

// AvailabilityInput is the body of availability writes.
type AvailabilityInput struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// TutorRepository wraps the /tutors endpoints.
type TutorRepository struct {
	client *apiclient.Client
}

// NewTutorRepository constructs a tutor facade.
func NewTutorRepository(client *apiclient.Client) *TutorRepository {
	return &TutorRepository{client: client}
}

// Search lists tutor profiles matching params.
func (r *TutorRepository) Search(ctx context.Context, params models.TutorSearchParams) (*models.Envelope[[]models.TutorProfile], error) {
	q := newQuery().
		str("search", params.Search).
		str("categoryId", params.CategoryID).
		float("minRating", params.MinRating).
		str("sortBy", params.SortBy).
		str("sortOrder", params.SortOrder).
		boolPtr("isAvailable", params.IsAvailable).
		num("page", params.Page).
		num("limit", params.Limit)
	return get[[]models.TutorProfile](ctx, r.client, "/tutors", q)
}

// GetByID fetches one tutor profile with categories and availability.
func (r *TutorRepository) GetByID(ctx context.Context, id string) (*models.Envelope[models.TutorProfile], error) {
	return get[models.TutorProfile](ctx, r.client, "/tutors/"+escape(id), nil)
}

// CreateProfile creates the caller's tutor profile.
func (r *TutorRepository) CreateProfile(ctx context.Context, input TutorProfileInput) (*models.Envelope[models.TutorProfile], error) {
	return send[models.TutorProfile](ctx, r.client, http.MethodPost, "/tutors/profile", input)
}

// UpdateProfile updates the caller's tutor profile.
func (r *TutorRepository) UpdateProfile(ctx context.Context, input TutorProfileInput) (*models.Envelope[models.TutorProfile], error) {
	return send[models.TutorProfile](ctx, r.client, http.MethodPut, "/tutors/me/profile", input)
}

// GetMyProfile returns the caller's tutor profile.
func (r *TutorRepository) GetMyProfile(ctx context.Context) (*models.Envelope[models.TutorProfile], error) {
	return get[models.TutorProfile](ctx, r.client, "/tutors/me/profile", nil)
}

// GetMyAvailability lists the caller's weekly slots.
func (r *TutorRepository) GetMyAvailability(ctx context.Context) (*models.Envelope[[]models.TutorAvailability], error) {
	return get[[]models.TutorAvailability](ctx, r.client, "/tutors/me/availability", nil)
}

// AddAvailability adds a weekly slot.
func (r *TutorRepository) AddAvailability(ctx context.Context, input AvailabilityInput) (*models.Envelope[models.TutorAvailability], error) {
	return send[models.TutorAvailability](ctx, r.client, http.MethodPost, "/tutors/me/availability", input)
}

// UpdateAvailability replaces a weekly slot.
func (r *TutorRepository) UpdateAvailability(ctx context.Context, id string, input AvailabilityInput) (*models.Envelope[models.TutorAvailability], error) {
	return send[models.TutorAvailability](ctx, r.client, http.MethodPut, "/tutors/me/availability/"+escape(id), input)
}

// DeleteAvailability removes a weekly slot.
func (r *TutorRepository) DeleteAvailability(ctx context.Context, id string) (*models.Envelope[any], error) {
	return send[any](ctx, r.client, http.MethodDelete, "/tutors/me/availability/"+escape(id), nil)
}
