package repository

import (
	"context"
	"net/http"

	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/pkg/apiclient"
)

// ReviewUpdate is the body of PUT /reviews/:id.
type ReviewUpdate struct {
	Rating  int    `json:"rating,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// ReviewRepository wraps the /reviews endpoints.
type ReviewRepository struct {
	client *apiclient.Client
}

// NewReviewRepository constructs a review facade.
func NewReviewRepository(client *apiclient.Client) *ReviewRepository {
	return &ReviewRepository{client: client}
}

func (r *ReviewRepository) Create(ctx context.Context, input models.CreateReviewInput) (*models.Envelope[models.Review], error) {
	return send[models.Review](ctx, r.client, http.MethodPost, "/reviews", input)
}

// GetTutorReviews pages through a tutor's reviews.
func (r *ReviewRepository) GetTutorReviews(ctx context.Context, tutorProfileID string, page, limit int) (*models.Envelope[[]models.Review], error) {
	q := newQuery().num("page", page).num("limit", limit)
	return get[[]models.Review](ctx, r.client, "/reviews/tutor/"+escape(tutorProfileID), q)
}

// GetMyReviews pages through the caller's reviews.
func (r *ReviewRepository) GetMyReviews(ctx context.Context, page, limit int) (*models.Envelope[[]models.Review], error) {
	q := newQuery().num("page", page).num("limit", limit)
	return get[[]models.Review](ctx, r.client, "/reviews/me", q)
}

func (r *ReviewRepository) Update(ctx context.Context, id string, input ReviewUpdate) (*models.Envelope[models.Review], error) {
	return send[models.Review](ctx, r.client, http.MethodPut, "/reviews/"+escape(id), input)
}
