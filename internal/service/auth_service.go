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

type authRepository interface {
	SignUpEmail(ctx context.Context, input repository.SignUpInput) (*repository.AuthResult, error)
	SignInEmail(ctx context.Context, input repository.SignInInput) (*repository.AuthResult, error)
	SignOut(ctx context.Context) (*repository.AuthResult, error)
}

// AuthService drives registration and sign in against the auth provider.
type AuthService struct {
	repo      authRepository
	validator *validator.Validate
	appURL    string
	logger    *zap.Logger
}

// NewAuthService constructs an auth service. appURL is the public origin used
// for the email verification callback.
func NewAuthService(repo authRepository, validate *validator.Validate, appURL string, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{repo: repo, validator: validate, appURL: strings.TrimRight(appURL, "/"), logger: logger}
}

// Register creates an account. The returned cookies must be relayed to the browser.
func (s *AuthService) Register(ctx context.Context, form dto.RegisterForm) (*repository.AuthResult, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	if err := validate(s.validator, form); err != nil {
		return nil, err
	}
	result, err := s.repo.SignUpEmail(ctx, repository.SignUpInput{
		Name:        form.Name,
		Email:       form.Email,
		Password:    form.Password,
		Role:        models.UserRole(form.Role),
		CallbackURL: s.appURL + "/verify-email",
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account registered", zap.String("role", form.Role))
	return result, nil
}

// Login signs in with email and password.
func (s *AuthService) Login(ctx context.Context, form dto.LoginForm) (*repository.AuthResult, error) {
	form.Email = strings.TrimSpace(form.Email)
	if err := validate(s.validator, form); err != nil {
		return nil, err
	}
	return s.repo.SignInEmail(ctx, repository.SignInInput{Email: form.Email, Password: form.Password})
}

// Logout ends the current session.
func (s *AuthService) Logout(ctx context.Context) (*repository.AuthResult, error) {
	return s.repo.SignOut(ctx)
}

// HomeFor returns the landing page for role after sign in.
func HomeFor(role models.UserRole) string {
	switch role {
	case models.RoleAdmin:
		return "/admin"
	case models.RoleTutor:
		return "/tutor/dashboard"
	}
	return "/dashboard"
}
