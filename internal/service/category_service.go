package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/skillbridge-web/internal/dto"
	"github.com/noah-isme/skillbridge-web/internal/models"
)

// categoryCountSample is how many tutors are scanned to count tutors per category.
const categoryCountSample = 100

type categoryRepository interface {
	GetAll(ctx context.Context) (*models.Envelope[[]models.Category], error)
	GetByID(ctx context.Context, id string) (*models.Envelope[models.Category], error)
	Create(ctx context.Context, input models.CategoryInput) (*models.Envelope[models.Category], error)
	Update(ctx context.Context, id string, input models.CategoryInput) (*models.Envelope[models.Category], error)
	Delete(ctx context.Context, id string) (*models.Envelope[any], error)
}

type catalogInvalidator interface {
	Invalidate(ctx context.Context)
}

// CategoryWithCount pairs a category with the number of listed tutors teaching it.
type CategoryWithCount struct {
	models.Category
	TutorCount int
}

// CategoryService lists and administers categories.
type CategoryService struct {
	repo      categoryRepository
	tutors    tutorSearcher
	catalog   catalogInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCategoryService constructs a category service. catalog may be nil.
func NewCategoryService(repo categoryRepository, tutors tutorSearcher, catalog catalogInvalidator, validate *validator.Validate, logger *zap.Logger) *CategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CategoryService{repo: repo, tutors: tutors, catalog: catalog, validator: validate, logger: logger}
}

// List returns every category.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	env, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ListWithCounts returns categories with tutor counts computed from a sample
// of listed tutors.
func (s *CategoryService) ListWithCounts(ctx context.Context) ([]CategoryWithCount, error) {
	categories, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	tutors, err := s.tutors.Search(ctx, models.TutorSearchParams{Limit: categoryCountSample})
	if err != nil {
		s.logger.Debug("tutor sample unavailable for category counts", zap.Error(err))
	} else {
		for _, t := range tutors.Data {
			for _, id := range t.CategoryIDs() {
				counts[id]++
			}
		}
	}

	out := make([]CategoryWithCount, len(categories))
	for i, c := range categories {
		out[i] = CategoryWithCount{Category: c, TutorCount: counts[c.ID]}
	}
	return out, nil
}

// Get returns one category.
func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	env, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Create adds a category.
func (s *CategoryService) Create(ctx context.Context, form dto.CategoryForm) (*models.Category, error) {
	input, err := s.input(form)
	if err != nil {
		return nil, err
	}
	env, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.changed(ctx)
	return &env.Data, nil
}

// Update edits a category.
func (s *CategoryService) Update(ctx context.Context, id string, form dto.CategoryForm) (*models.Category, error) {
	input, err := s.input(form)
	if err != nil {
		return nil, err
	}
	env, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.changed(ctx)
	return &env.Data, nil
}

// Delete removes a category.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

func (s *CategoryService) input(form dto.CategoryForm) (models.CategoryInput, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Description = strings.TrimSpace(form.Description)
	form.Icon = strings.TrimSpace(form.Icon)
	if err := validate(s.validator, form); err != nil {
		return models.CategoryInput{}, err
	}
	return models.CategoryInput{Name: form.Name, Description: form.Description, Icon: form.Icon}, nil
}

func (s *CategoryService) changed(ctx context.Context) {
	if s.catalog != nil {
		s.catalog.Invalidate(ctx)
	}
}
