package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/skillbridge-web/internal/dto"
	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/internal/service"
)

type tutorAccount interface {
	MyProfile(ctx context.Context) *models.TutorProfile
	SaveProfile(ctx context.Context, form dto.TutorProfileForm, exists bool) (bool, error)
	Availability(ctx context.Context) ([]models.DaySlots, error)
	AddAvailability(ctx context.Context, form dto.AvailabilityForm) error
	RemoveAvailability(ctx context.Context, id string) error
}

type tutorDashboard interface {
	Tutor(ctx context.Context) service.TutorDashboard
}

const (
	tutorBookingsPath     = "/tutor/bookings"
	tutorAvailabilityPath = "/tutor/availability"
)

var tutorActionFlashes = map[service.BookingAction]string{
	service.ActionConfirm:  "Booking confirmed!",
	service.ActionComplete: "Session marked as completed!",
	service.ActionCancel:   "Booking cancelled",
	service.ActionDecline:  "Booking cancelled",
}

// TutorDashboardData is the body of /tutor/dashboard.
type TutorDashboardData struct {
	service.TutorDashboard
	Rows   []BookingRow
	Return string
}

// TutorProfileData is the body of /tutor/profile.
type TutorProfileData struct {
	Profile    *models.TutorProfile
	Form       dto.TutorProfileForm
	Categories []models.Category
}

// AvailabilityData is the body of /tutor/availability.
type AvailabilityData struct {
	Days     []models.DaySlots
	Form     dto.AvailabilityForm
	Weekdays [7]string
	Err      string
}

// TutorHandler serves the tutor workspace.
type TutorHandler struct {
	account    tutorAccount
	dashboard  tutorDashboard
	bookings   bookingManager
	categories categoryReader
}

// NewTutorHandler constructs a tutor handler.
func NewTutorHandler(account tutorAccount, dashboard tutorDashboard, bookings bookingManager, categories categoryReader) *TutorHandler {
	return &TutorHandler{account: account, dashboard: dashboard, bookings: bookings, categories: categories}
}

// Dashboard renders profile, stats and the next sessions.
func (h *TutorHandler) Dashboard(c *gin.Context) {
	dash := h.dashboard.Tutor(c.Request.Context())
	render(c, http.StatusOK, "tutor_dashboard", "Tutor dashboard", TutorDashboardData{
		TutorDashboard: dash,
		Rows:           bookingRows(dash.Upcoming, models.RoleTutor, tutorBookingsPath),
		Return:         "/tutor/dashboard",
	})
}

// Bookings renders the tutor's bookings by status tab.
func (h *TutorHandler) Bookings(c *gin.Context) {
	tab := service.FindTab(service.TutorBookingTabs, c.Query("tab"))
	page := dto.PageParam(c.Query("page"))
	render(c, http.StatusOK, "bookings", "Bookings", listBookings(c, h.bookings, tab, page, models.RoleTutor, service.TutorBookingTabs, tutorBookingsPath))
}

// BookingAction confirms, declines, completes or cancels a booking.
func (h *TutorHandler) BookingAction(c *gin.Context) {
	action := service.BookingAction(c.Param("action"))
	text, known := tutorActionFlashes[action]
	if !known {
		renderError(c, http.StatusNotFound, "Page not found")
		return
	}
	if _, err := h.bookings.Apply(c.Request.Context(), c.Param("id"), models.RoleTutor, action); err != nil {
		failure(c, err, "Failed to update booking")
	} else {
		success(c, text)
	}
	redirect(c, returnTo(c, tutorBookingsPath))
}

// Profile renders the create-or-update profile form.
func (h *TutorHandler) Profile(c *gin.Context) {
	profile := h.account.MyProfile(c.Request.Context())
	form := dto.TutorProfileForm{IsAvailable: true}
	if profile != nil {
		form = dto.TutorProfileForm{
			Bio:         profile.Bio,
			HourlyRate:  profile.HourlyRate,
			Experience:  profile.Experience,
			CategoryIDs: profile.CategoryIDs(),
			IsAvailable: profile.IsAvailable,
		}
	}
	render(c, http.StatusOK, "tutor_profile", "Tutor profile", h.profileData(c, profile, form))
}

// SaveProfile creates the profile on first save and updates it afterwards.
func (h *TutorHandler) SaveProfile(c *gin.Context) {
	var form dto.TutorProfileForm
	_ = c.ShouldBind(&form)

	ctx := c.Request.Context()
	profile := h.account.MyProfile(ctx)
	created, err := h.account.SaveProfile(ctx, form, profile != nil)
	if err != nil {
		failureNow(c, err, "Failed to save profile")
		render(c, http.StatusUnprocessableEntity, "tutor_profile", "Tutor profile", h.profileData(c, profile, form))
		return
	}
	if created {
		success(c, "Profile created successfully!")
	} else {
		success(c, "Profile updated successfully!")
	}
	redirect(c, "/tutor/profile")
}

func (h *TutorHandler) profileData(c *gin.Context, profile *models.TutorProfile, form dto.TutorProfileForm) TutorProfileData {
	data := TutorProfileData{Profile: profile, Form: form}
	if categories, err := h.categories.List(c.Request.Context()); err == nil {
		data.Categories = categories
	}
	return data
}

// Availability renders the weekly slots.
func (h *TutorHandler) Availability(c *gin.Context) {
	data := AvailabilityData{
		Form:     dto.AvailabilityForm{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
		Weekdays: models.Weekdays,
	}
	days, err := h.account.Availability(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		data.Err = "Failed to load availability"
	}
	data.Days = days
	render(c, http.StatusOK, "availability", "Availability", data)
}

// AddAvailability stores a new slot.
func (h *TutorHandler) AddAvailability(c *gin.Context) {
	var form dto.AvailabilityForm
	if err := c.ShouldBind(&form); err != nil {
		failure(c, err, "Please choose a day and time")
		redirect(c, tutorAvailabilityPath)
		return
	}
	if err := h.account.AddAvailability(c.Request.Context(), form); err != nil {
		failure(c, err, "Failed to add availability")
	} else {
		success(c, "Availability added!")
	}
	redirect(c, tutorAvailabilityPath)
}

// RemoveAvailability deletes a slot.
func (h *TutorHandler) RemoveAvailability(c *gin.Context) {
	if err := h.account.RemoveAvailability(c.Request.Context(), c.Param("id")); err != nil {
		failure(c, err, "Failed to remove availability")
	} else {
		success(c, "Availability removed")
	}
	redirect(c, tutorAvailabilityPath)
}
