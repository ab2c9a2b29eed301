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

type userRepository interface {
	GetProfile(ctx context.Context) (*models.Envelope[models.User], error)
	UpdateProfile(ctx context.Context, input repository.ProfileUpdate) (*models.Envelope[models.User], error)
	GetDashboard(ctx context.Context) (*models.Envelope[models.StudentDashboard], error)
}

// UserService serves the signed-in user's own account pages.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// Profile returns the account.
func (s *UserService) Profile(ctx context.Context) (*models.User, error) {
	env, err := s.repo.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// UpdateProfile saves name, phone and avatar.
func (s *UserService) UpdateProfile(ctx context.Context, form dto.ProfileForm) (*models.User, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Image = strings.TrimSpace(form.Image)
	if err := validate(s.validator, form); err != nil {
		return nil, err
	}
	env, err := s.repo.UpdateProfile(ctx, repository.ProfileUpdate{Name: form.Name, Phone: form.Phone, Image: form.Image})
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Dashboard returns the student dashboard; failures yield an empty one.
func (s *UserService) Dashboard(ctx context.Context) *models.StudentDashboard {
	env, err := s.repo.GetDashboard(ctx)
	if err != nil {
		s.logger.Warn("dashboard unavailable", zap.Error(err))
		return &models.StudentDashboard{}
	}
	return &env.Data
}
