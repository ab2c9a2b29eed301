package repository

import (
	"context"
	"net/http"

	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/pkg/apiclient"
)

// ProfileUpdate is the body of PUT /users/me.
type ProfileUpdate struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Image string `json:"image,omitempty"`
}

// UserRepository wraps the /users endpoints for the signed-in account.
type UserRepository struct {
	client *apiclient.Client
}

// NewUserRepository constructs a user facade.
func NewUserRepository(client *apiclient.Client) *UserRepository {
	return &UserRepository{client: client}
}

func (r *UserRepository) GetProfile(ctx context.Context) (*models.Envelope[models.User], error) {
	return get[models.User](ctx, r.client, "/users/me", nil)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, input ProfileUpdate) (*models.Envelope[models.User], error) {
	return send[models.User](ctx, r.client, http.MethodPut, "/users/me", input)
}

// GetDashboard returns the student dashboard summary.
func (r *UserRepository) GetDashboard(ctx context.Context) (*models.Envelope[models.StudentDashboard], error) {
	return get[models.StudentDashboard](ctx, r.client, "/users/dashboard", nil)
}
