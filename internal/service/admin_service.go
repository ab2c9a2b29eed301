package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/skillbridge-web/internal/dto"
	"github.com/noah-isme/skillbridge-web/internal/models"
)

// AdminPageSize is the page size of admin lists.
const AdminPageSize = 10

type adminRepository interface {
	GetDashboardStats(ctx context.Context) (*models.Envelope[models.AdminStats], error)
	GetUsers(ctx context.Context, filter models.UserFilter) (*models.Envelope[[]models.User], error)
	UpdateUserRole(ctx context.Context, id string, role models.UserRole) (*models.Envelope[models.User], error)
	UpdateUserStatus(ctx context.Context, id string, status models.UserStatus) (*models.Envelope[models.User], error)
	GetAllBookings(ctx context.Context, filter models.BookingFilter) (*models.Envelope[[]models.Booking], error)
	UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) (*models.Envelope[models.Booking], error)
}

// AdminService backs the moderation pages.
type AdminService struct {
	repo      adminRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAdminService constructs an admin service.
func NewAdminService(repo adminRepository, validate *validator.Validate, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AdminService{repo: repo, validator: validate, logger: logger}
}

// Stats returns platform totals.
func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	env, err := s.repo.GetDashboardStats(ctx)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Users pages through accounts.
func (s *AdminService) Users(ctx context.Context, filter models.UserFilter) (*models.Envelope[[]models.User], error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = AdminPageSize
	}
	if !filter.Role.Valid() {
		filter.Role = ""
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.GetUsers(ctx, filter)
}

// ChangeRole sets a user's role.
func (s *AdminService) ChangeRole(ctx context.Context, id string, form dto.RoleForm) error {
	if err := validate(s.validator, form); err != nil {
		return err
	}
	_, err := s.repo.UpdateUserRole(ctx, id, models.UserRole(form.Role))
	if err == nil {
		s.logger.Info("user role changed", zap.String("user_id", id), zap.String("role", form.Role))
	}
	return err
}

// ChangeStatus bans or unbans a user.
func (s *AdminService) ChangeStatus(ctx context.Context, id string, form dto.UserStatusForm) error {
	if err := validate(s.validator, form); err != nil {
		return err
	}
	_, err := s.repo.UpdateUserStatus(ctx, id, models.UserStatus(form.Status))
	if err == nil {
		s.logger.Info("user status changed", zap.String("user_id", id), zap.String("status", form.Status))
	}
	return err
}

// Bookings pages through every booking, optionally filtered by status.
func (s *AdminService) Bookings(ctx context.Context, status string, page int) (*models.Envelope[[]models.Booking], error) {
	if page < 1 {
		page = 1
	}
	if !models.BookingStatus(status).Valid() {
		status = ""
	}
	return s.repo.GetAllBookings(ctx, models.BookingFilter{Status: status, Page: page, Limit: AdminPageSize})
}

// OverwriteBookingStatus sets any status without consulting the booking
// gate. It reports false, with no call made, when the chosen status equals
// the current one.
func (s *AdminService) OverwriteBookingStatus(ctx context.Context, id string, form dto.BookingStatusForm) (bool, error) {
	if err := validate(s.validator, form); err != nil {
		return false, err
	}
	if form.Status == form.Current {
		return false, nil
	}
	if _, err := s.repo.UpdateBookingStatus(ctx, id, models.BookingStatus(form.Status)); err != nil {
		return false, err
	}
	s.logger.Info("booking status overwritten", zap.String("booking_id", id), zap.String("from", form.Current), zap.String("to", form.Status))
	return true, nil
}
