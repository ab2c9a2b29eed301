package repository

import (
	"context"
	"net/http"

	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/pkg/apiclient"
)

// AdminRepository wraps the /admin endpoints.
type AdminRepository struct {
	client *apiclient.Client
}

// NewAdminRepository constructs an admin facade.
func NewAdminRepository(client *apiclient.Client) *AdminRepository {
	return &AdminRepository{client: client}
}

func (r *AdminRepository) GetDashboardStats(ctx context.Context) (*models.Envelope[models.AdminStats], error) {
	return get[models.AdminStats](ctx, r.client, "/admin/dashboard", nil)
}

// GetUsers pages through accounts filtered by role and search text.
func (r *AdminRepository) GetUsers(ctx context.Context, filter models.UserFilter) (*models.Envelope[[]models.User], error) {
	q := newQuery().
		str("role", string(filter.Role)).
		str("search", filter.Search).
		num("page", filter.Page).
		num("limit", filter.Limit)
	return get[[]models.User](ctx, r.client, "/admin/users", q)
}

func (r *AdminRepository) GetUserByID(ctx context.Context, id string) (*models.Envelope[models.User], error) {
	return get[models.User](ctx, r.client, "/admin/users/"+escape(id), nil)
}

func (r *AdminRepository) UpdateUserRole(ctx context.Context, id string, role models.UserRole) (*models.Envelope[models.User], error) {
	return send[models.User](ctx, r.client, http.MethodPatch, "/admin/users/"+escape(id)+"/role", map[string]models.UserRole{"role": role})
}

func (r *AdminRepository) UpdateUserStatus(ctx context.Context, id string, status models.UserStatus) (*models.Envelope[models.User], error) {
	return send[models.User](ctx, r.client, http.MethodPatch, "/admin/users/"+escape(id)+"/status", map[string]models.UserStatus{"status": status})
}

// GetAllBookings pages through every booking on the platform.
func (r *AdminRepository) GetAllBookings(ctx context.Context, filter models.BookingFilter) (*models.Envelope[[]models.Booking], error) {
	q := newQuery().str("status", filter.Status).num("page", filter.Page).num("limit", filter.Limit)
	return get[[]models.Booking](ctx, r.client, "/admin/bookings", q)
}

// UpdateBookingStatus overwrites a booking's status.
func (r *AdminRepository) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) (*models.Envelope[models.Booking], error) {
	return send[models.Booking](ctx, r.client, http.MethodPatch, "/admin/bookings/"+escape(id)+"/status", map[string]models.BookingStatus{"status": status})
}
