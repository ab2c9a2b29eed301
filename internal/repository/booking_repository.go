package repository

import (
	"context"
	"net/http"

	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/pkg/apiclient"
)

// BookingRepository wraps the /bookings endpoints.
type BookingRepository struct {
	client *apiclient.Client
}

// NewBookingRepository constructs a booking facade.
func NewBookingRepository(client *apiclient.Client) *BookingRepository {
	return &BookingRepository{client: client}
}

// Create books a session with a tutor.
func (r *BookingRepository) Create(ctx context.Context, input models.CreateBookingInput) (*models.Envelope[models.Booking], error) {
	return send[models.Booking](ctx, r.client, http.MethodPost, "/bookings", input)
}

// GetMyBookings lists bookings where the caller is student or tutor.
func (r *BookingRepository) GetMyBookings(ctx context.Context, filter models.BookingFilter) (*models.Envelope[[]models.Booking], error) {
	q := newQuery().str("status", filter.Status).num("page", filter.Page).num("limit", filter.Limit)
	return get[[]models.Booking](ctx, r.client, "/bookings/my", q)
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*models.Envelope[models.Booking], error) {
	return get[models.Booking](ctx, r.client, "/bookings/"+escape(id), nil)
}

func (r *BookingRepository) Cancel(ctx context.Context, id string) (*models.Envelope[models.Booking], error) {
	return r.transition(ctx, id, "cancel")
}

func (r *BookingRepository) Confirm(ctx context.Context, id string) (*models.Envelope[models.Booking], error) {
	return r.transition(ctx, id, "confirm")
}

func (r *BookingRepository) Complete(ctx context.Context, id string) (*models.Envelope[models.Booking], error) {
	return r.transition(ctx, id, "complete")
}

func (r *BookingRepository) transition(ctx context.Context, id, verb string) (*models.Envelope[models.Booking], error) {
	return send[models.Booking](ctx, r.client, http.MethodPatch, "/bookings/"+escape(id)+"/"+verb, nil)
}
