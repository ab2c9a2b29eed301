package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/skillbridge-web/internal/dto"
	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/internal/service"
	"github.com/noah-isme/skillbridge-web/pkg/export"
)

type adminOperations interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
	Users(ctx context.Context, filter models.UserFilter) (*models.Envelope[[]models.User], error)
	ChangeRole(ctx context.Context, id string, form dto.RoleForm) error
	ChangeStatus(ctx context.Context, id string, form dto.UserStatusForm) error
	Bookings(ctx context.Context, status string, page int) (*models.Envelope[[]models.Booking], error)
	OverwriteBookingStatus(ctx context.Context, id string, form dto.BookingStatusForm) (bool, error)
}

type categoryAdmin interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, form dto.CategoryForm) (*models.Category, error)
	Update(ctx context.Context, id string, form dto.CategoryForm) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}

type bookingExporter interface {
	Bookings(ctx context.Context, status string, format export.Format) (*service.ExportResult, error)
}

const (
	adminUsersPath      = "/admin/users"
	adminCategoriesPath = "/admin/categories"
	adminBookingsPath   = "/admin/bookings"
)

// AdminUsersData is the body of /admin/users.
type AdminUsersData struct {
	Users      []models.User
	Search     string
	Role       string
	Roles      []models.UserRole
	Pagination dto.Pagination
	Return     string
	Err        string
}

// AdminCategoriesData is the body of /admin/categories.
type AdminCategoriesData struct {
	Categories []models.Category
	Editing    *models.Category
	Form       dto.CategoryForm
	Err        string
}

// AdminBookingsData is the body of /admin/bookings.
type AdminBookingsData struct {
	Rows       []BookingRow
	Status     string
	Statuses   []models.BookingStatus
	Pagination dto.Pagination
	Return     string
	Err        string
}

// AdminHandler serves the moderation pages.
type AdminHandler struct {
	admin      adminOperations
	categories categoryAdmin
	exports    bookingExporter
}

// NewAdminHandler constructs an admin handler.
func NewAdminHandler(admin adminOperations, categories categoryAdmin, exports bookingExporter) *AdminHandler {
	return &AdminHandler{admin: admin, categories: categories, exports: exports}
}

// Dashboard renders platform totals.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		failureNow(c, err, "Failed to load statistics")
		stats = &models.AdminStats{}
	}
	render(c, http.StatusOK, "admin_dashboard", "Admin dashboard", stats)
}

// Users lists accounts with search and role filter.
func (h *AdminHandler) Users(c *gin.Context) {
	page := dto.PageParam(c.Query("page"))
	filter := models.UserFilter{
		Role:   models.UserRole(c.Query("role")),
		Search: c.Query("search"),
		Page:   page,
		Limit:  service.AdminPageSize,
	}
	data := AdminUsersData{
		Search: filter.Search,
		Role:   c.Query("role"),
		Roles:  []models.UserRole{models.RoleStudent, models.RoleTutor, models.RoleAdmin},
		Return: c.Request.URL.RequestURI(),
	}
	env, err := h.admin.Users(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		data.Err = "Failed to load users"
		data.Pagination = dto.NewPagination(nil, page, service.AdminPageSize, adminUsersPath, c.Request.URL.Query())
	} else {
		data.Users = env.Data
		data.Pagination = dto.NewPagination(env.Meta, page, service.AdminPageSize, adminUsersPath, c.Request.URL.Query())
	}
	render(c, http.StatusOK, "admin_users", "Users", data)
}

// ChangeRole updates a user's role.
func (h *AdminHandler) ChangeRole(c *gin.Context) {
	var form dto.RoleForm
	_ = c.ShouldBind(&form)
	if err := h.admin.ChangeRole(c.Request.Context(), c.Param("id"), form); err != nil {
		failure(c, err, "Failed to update role")
	} else {
		success(c, fmt.Sprintf("User role updated to %s!", form.Role))
	}
	redirect(c, returnTo(c, adminUsersPath))
}

// ChangeStatus bans or unbans a user.
func (h *AdminHandler) ChangeStatus(c *gin.Context) {
	var form dto.UserStatusForm
	_ = c.ShouldBind(&form)
	if err := h.admin.ChangeStatus(c.Request.Context(), c.Param("id"), form); err != nil {
		failure(c, err, "Failed to update user status")
	} else if models.UserStatus(form.Status) == models.UserStatusBanned {
		success(c, "User banned successfully!")
	} else {
		success(c, "User unbanned successfully!")
	}
	redirect(c, returnTo(c, adminUsersPath))
}

// Categories lists categories; ?edit=<id> opens the edit form.
func (h *AdminHandler) Categories(c *gin.Context) {
	ctx := c.Request.Context()
	var data AdminCategoriesData

	categories, err := h.categories.List(ctx)
	if err != nil {
		_ = c.Error(err)
		data.Err = "Failed to load categories"
	}
	data.Categories = categories

	if id := c.Query("edit"); id != "" {
		category, err := h.categories.Get(ctx, id)
		if err != nil {
			failureNow(c, err, "Category not found")
		} else {
			data.Editing = category
			data.Form = dto.CategoryForm{Name: category.Name, Description: category.Description, Icon: category.Icon}
		}
	}
	render(c, http.StatusOK, "admin_categories", "Categories", data)
}

// CreateCategory adds a category.
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var form dto.CategoryForm
	_ = c.ShouldBind(&form)
	if _, err := h.categories.Create(c.Request.Context(), form); err != nil {
		failure(c, err, "Failed to create category")
	} else {
		success(c, "Category created successfully!")
	}
	redirect(c, adminCategoriesPath)
}

// UpdateCategory edits a category.
func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	id := c.Param("id")
	var form dto.CategoryForm
	_ = c.ShouldBind(&form)
	if _, err := h.categories.Update(c.Request.Context(), id, form); err != nil {
		failure(c, err, "Failed to update category")
		redirect(c, adminCategoriesPath+"?edit="+url.QueryEscape(id))
		return
	}
	success(c, "Category updated successfully!")
	redirect(c, adminCategoriesPath)
}

// DeleteCategory removes a category.
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	if err := h.categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failure(c, err, "Failed to delete category")
	} else {
		success(c, "Category deleted successfully!")
	}
	redirect(c, adminCategoriesPath)
}

// Bookings lists every booking with a status filter.
func (h *AdminHandler) Bookings(c *gin.Context) {
	page := dto.PageParam(c.Query("page"))
	status := strings.ToUpper(c.Query("status"))
	data := AdminBookingsData{
		Status:   status,
		Statuses: models.BookingStatuses,
		Return:   c.Request.URL.RequestURI(),
	}
	env, err := h.admin.Bookings(c.Request.Context(), status, page)
	if err != nil {
		_ = c.Error(err)
		data.Err = "Failed to load bookings"
		data.Pagination = dto.NewPagination(nil, page, service.AdminPageSize, adminBookingsPath, c.Request.URL.Query())
	} else {
		for _, b := range env.Data {
			data.Rows = append(data.Rows, BookingRow{Booking: b, Choices: service.AdminStatusChoices(b.Status)})
		}
		data.Pagination = dto.NewPagination(env.Meta, page, service.AdminPageSize, adminBookingsPath, c.Request.URL.Query())
	}
	render(c, http.StatusOK, "admin_bookings", "All bookings", data)
}

// UpdateBookingStatus overwrites a booking's status. Picking the current
// status changes nothing.
func (h *AdminHandler) UpdateBookingStatus(c *gin.Context) {
	var form dto.BookingStatusForm
	_ = c.ShouldBind(&form)
	changed, err := h.admin.OverwriteBookingStatus(c.Request.Context(), c.Param("id"), form)
	switch {
	case err != nil:
		failure(c, err, "Failed to update booking status")
	case changed:
		success(c, fmt.Sprintf("Booking status updated to %s!", form.Status))
	}
	redirect(c, returnTo(c, adminBookingsPath))
}

// ExportBookings downloads the filtered bookings as CSV or PDF.
func (h *AdminHandler) ExportBookings(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		failure(c, err, "Unsupported export format")
		redirect(c, adminBookingsPath)
		return
	}
	result, err := h.exports.Bookings(c.Request.Context(), strings.ToUpper(c.Query("status")), format)
	if err != nil {
		failure(c, err, "Failed to export bookings")
		redirect(c, adminBookingsPath)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, result.ContentType, result.Body)
}
