package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/skillbridge-web/internal/dto"
	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/internal/service"
)

type studentAccount interface {
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, form dto.ProfileForm) (*models.User, error)
	Dashboard(ctx context.Context) *models.StudentDashboard
}

type bookingManager interface {
	List(ctx context.Context, tab service.BookingTab, page int) (*models.Envelope[[]models.Booking], error)
	Apply(ctx context.Context, id string, role models.UserRole, action service.BookingAction) (*models.Booking, error)
}

type reviewer interface {
	Reviewable(ctx context.Context, bookingID string) (*models.Booking, error)
	Submit(ctx context.Context, form dto.ReviewForm) error
}

const studentBookingsPath = "/dashboard/bookings"

// StudentDashboardData is the body of /dashboard.
type StudentDashboardData struct {
	Dashboard *models.StudentDashboard
	Rows      []BookingRow
	Return    string
	ToReview  []models.Booking
	Statuses  []models.BookingStatus
}

// ProfileData is the body of /dashboard/profile.
type ProfileData struct {
	User *models.User
	Form dto.ProfileForm
}

// ReviewData is the body of /dashboard/reviews/create.
type ReviewData struct {
	Booking *models.Booking
	Form    dto.ReviewForm
}

// StudentHandler serves the signed-in user's dashboard pages.
type StudentHandler struct {
	account  studentAccount
	bookings bookingManager
	reviews  reviewer
}

// NewStudentHandler constructs a student handler.
func NewStudentHandler(account studentAccount, bookings bookingManager, reviews reviewer) *StudentHandler {
	return &StudentHandler{account: account, bookings: bookings, reviews: reviews}
}

// Dashboard renders upcoming sessions, booking counts and review prompts.
func (h *StudentHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	dash := h.account.Dashboard(ctx)
	data := StudentDashboardData{
		Dashboard: dash,
		Rows:      bookingRows(dash.UpcomingSessions, models.RoleStudent, studentBookingsPath),
		Return:    "/dashboard",
		Statuses:  models.BookingStatuses,
	}
	if past, err := h.bookings.List(ctx, service.FindTab(service.StudentBookingTabs, "past"), 1); err == nil {
		for _, b := range past.Data {
			if service.CanLeaveReview(b) {
				data.ToReview = append(data.ToReview, b)
			}
		}
	}
	render(c, http.StatusOK, "student_dashboard", "Dashboard", data)
}

// Bookings renders the caller's bookings under the upcoming/past tabs.
func (h *StudentHandler) Bookings(c *gin.Context) {
	tab := service.FindTab(service.StudentBookingTabs, c.Query("tab"))
	page := dto.PageParam(c.Query("page"))
	role := currentRole(c)
	if role != models.RoleStudent {
		// actions for other roles live on their own pages
		role = ""
	}
	render(c, http.StatusOK, "bookings", "My bookings", listBookings(c, h.bookings, tab, page, role, service.StudentBookingTabs, studentBookingsPath))
}

// Cancel cancels one of the caller's bookings.
func (h *StudentHandler) Cancel(c *gin.Context) {
	if _, err := h.bookings.Apply(c.Request.Context(), c.Param("id"), currentRole(c), service.ActionCancel); err != nil {
		failure(c, err, "Failed to cancel booking")
	} else {
		success(c, "Booking cancelled successfully")
	}
	redirect(c, returnTo(c, studentBookingsPath))
}

// Profile renders the account form.
func (h *StudentHandler) Profile(c *gin.Context) {
	user, err := h.account.Profile(c.Request.Context())
	if err != nil {
		failureNow(c, err, "Failed to load profile")
		render(c, http.StatusOK, "profile", "My profile", ProfileData{})
		return
	}
	render(c, http.StatusOK, "profile", "My profile", ProfileData{
		User: user,
		Form: dto.ProfileForm{Name: user.Name, Phone: user.Phone, Image: user.Image},
	})
}

// UpdateProfile saves the account form.
func (h *StudentHandler) UpdateProfile(c *gin.Context) {
	var form dto.ProfileForm
	_ = c.ShouldBind(&form)

	if _, err := h.account.UpdateProfile(c.Request.Context(), form); err != nil {
		failureNow(c, err, "Failed to update profile")
		user, _ := h.account.Profile(c.Request.Context())
		render(c, http.StatusUnprocessableEntity, "profile", "My profile", ProfileData{User: user, Form: form})
		return
	}
	success(c, "Profile updated successfully!")
	redirect(c, "/dashboard/profile")
}

// ReviewForm renders the review form for a completed, unreviewed booking.
func (h *StudentHandler) ReviewForm(c *gin.Context) {
	bookingID := c.Query("bookingId")
	booking, err := h.reviews.Reviewable(c.Request.Context(), bookingID)
	if err != nil {
		failure(c, err, "Booking not found")
		redirect(c, studentBookingsPath)
		return
	}
	render(c, http.StatusOK, "review", "Leave a review", ReviewData{Booking: booking, Form: dto.ReviewForm{BookingID: bookingID}})
}

// SubmitReview posts the review.
func (h *StudentHandler) SubmitReview(c *gin.Context) {
	var form dto.ReviewForm
	_ = c.ShouldBind(&form)

	if err := h.reviews.Submit(c.Request.Context(), form); err != nil {
		failure(c, err, "Failed to submit review")
		redirect(c, "/dashboard/reviews/create?bookingId="+url.QueryEscape(form.BookingID))
		return
	}
	success(c, "Review submitted successfully!")
	redirect(c, studentBookingsPath+"?tab=past")
}

func listBookings(c *gin.Context, bookings bookingManager, tab service.BookingTab, page int, role models.UserRole, tabs []service.BookingTab, base string) BookingListData {
	data := BookingListData{
		Tabs:   bookingTabs(tabs, tab, base),
		Return: c.Request.URL.RequestURI(),
	}
	query := url.Values{"tab": {tab.Key}}
	env, err := bookings.List(c.Request.Context(), tab, page)
	if err != nil {
		_ = c.Error(err)
		data.Err = "Failed to load bookings"
		data.Pagination = dto.NewPagination(nil, page, service.BookingPageSize, base, query)
		return data
	}
	data.Rows = bookingRows(env.Data, role, base)
	data.Pagination = dto.NewPagination(env.Meta, page, service.BookingPageSize, base, query)
	return data
}
