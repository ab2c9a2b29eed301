package repository

import (
	"context"
	"net/http"

	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/pkg/apiclient"
)

// CategoryRepository wraps the /categories endpoints.
type CategoryRepository struct {
	client *apiclient.Client
}

// NewCategoryRepository constructs a category facade.
func NewCategoryRepository(client *apiclient.Client) *CategoryRepository {
	return &CategoryRepository{client: client}
}

func (r *CategoryRepository) GetAll(ctx context.Context) (*models.Envelope[[]models.Category], error) {
	return get[[]models.Category](ctx, r.client, "/categories", nil)
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*models.Envelope[models.Category], error) {
	return get[models.Category](ctx, r.client, "/categories/"+escape(id), nil)
}

func (r *CategoryRepository) Create(ctx context.Context, input models.CategoryInput) (*models.Envelope[models.Category], error) {
	return send[models.Category](ctx, r.client, http.MethodPost, "/categories", input)
}

func (r *CategoryRepository) Update(ctx context.Context, id string, input models.CategoryInput) (*models.Envelope[models.Category], error) {
	return send[models.Category](ctx, r.client, http.MethodPut, "/categories/"+escape(id), input)
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) (*models.Envelope[any], error) {
	return send[any](ctx, r.client, http.MethodDelete, "/categories/"+escape(id), nil)
}
