package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/skillbridge-web/internal/dto"
	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/internal/service"
)

type catalogReader interface {
	Home(ctx context.Context) service.Catalog
}

type tutorFinder interface {
	Search(ctx context.Context, params models.TutorSearchParams) (*models.Envelope[[]models.TutorProfile], error)
	Detail(ctx context.Context, id string) (*service.TutorDetail, error)
}

type categoryReader interface {
	List(ctx context.Context) ([]models.Category, error)
	ListWithCounts(ctx context.Context) ([]service.CategoryWithCount, error)
}

type bookingCreator interface {
	Create(ctx context.Context, tutorProfileID string, form dto.BookingForm) (*models.Booking, error)
}

// SessionDurations are the session lengths offered by the booking form.
var SessionDurations = []int{30, 60, 90, 120}

// TutorFilter echoes the search form on /tutors.
type TutorFilter struct {
	Search     string
	CategoryID string
	MinRating  string
	SortBy     string
	SortOrder  string
}

// TutorListData is the body of /tutors.
type TutorListData struct {
	Tutors     []models.TutorProfile
	Categories []models.Category
	Filter     TutorFilter
	Pagination dto.Pagination
	Err        string
}

// TutorDetailData is the body of /tutors/:id.
type TutorDetailData struct {
	Detail    *service.TutorDetail
	Form      dto.BookingForm
	Durations []int
	Today     string
}

// PublicHandler serves the pages visitors can see without signing in, plus
// the booking form on the tutor page.
type PublicHandler struct {
	catalog    catalogReader
	tutors     tutorFinder
	categories categoryReader
	bookings   bookingCreator
}

// NewPublicHandler constructs a public handler.
func NewPublicHandler(catalog catalogReader, tutors tutorFinder, categories categoryReader, bookings bookingCreator) *PublicHandler {
	return &PublicHandler{catalog: catalog, tutors: tutors, categories: categories, bookings: bookings}
}

// Home renders the landing page.
func (h *PublicHandler) Home(c *gin.Context) {
	render(c, http.StatusOK, "home", "Find your perfect tutor", h.catalog.Home(c.Request.Context()))
}

// Tutors renders the searchable tutor list.
func (h *PublicHandler) Tutors(c *gin.Context) {
	filter := TutorFilter{
		Search:     c.Query("search"),
		CategoryID: c.Query("categoryId"),
		MinRating:  c.Query("minRating"),
		SortBy:     c.DefaultQuery("sortBy", "rating"),
		SortOrder:  c.DefaultQuery("sortOrder", "desc"),
	}
	page := dto.PageParam(c.Query("page"))

	params := models.TutorSearchParams{
		Search:     filter.Search,
		CategoryID: filter.CategoryID,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
		Page:       page,
		Limit:      service.TutorPageSize,
	}
	if v, err := strconv.ParseFloat(filter.MinRating, 64); err == nil && v > 0 {
		params.MinRating = v
	}

	data := TutorListData{Filter: filter}
	env, err := h.tutors.Search(c.Request.Context(), params)
	if err != nil {
		_ = c.Error(err)
		data.Err = "Failed to load tutors"
		data.Pagination = dto.NewPagination(nil, page, service.TutorPageSize, "/tutors", c.Request.URL.Query())
	} else {
		data.Tutors = env.Data
		data.Pagination = dto.NewPagination(env.Meta, page, service.TutorPageSize, "/tutors", c.Request.URL.Query())
	}
	if categories, err := h.categories.List(c.Request.Context()); err == nil {
		data.Categories = categories
	}

	render(c, http.StatusOK, "tutors", "Find a tutor", data)
}

// TutorDetail renders a tutor's public page.
func (h *PublicHandler) TutorDetail(c *gin.Context) {
	detail, err := h.tutors.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		renderError(c, http.StatusNotFound, "Tutor not found")
		return
	}
	render(c, http.StatusOK, "tutor_detail", detail.Profile.User.Name, TutorDetailData{
		Detail:    detail,
		Form:      dto.BookingForm{Duration: service.DefaultDuration},
		Durations: SessionDurations,
		Today:     time.Now().Format("2006-01-02"),
	})
}

// Book submits the booking form of a tutor page.
func (h *PublicHandler) Book(c *gin.Context) {
	id := c.Param("id")
	var form dto.BookingForm
	if err := c.ShouldBind(&form); err != nil {
		failure(c, err, "Please check the booking details")
		redirect(c, "/tutors/"+id)
		return
	}
	if _, err := h.bookings.Create(c.Request.Context(), id, form); err != nil {
		failure(c, err, "Failed to create booking")
		redirect(c, "/tutors/"+id)
		return
	}
	success(c, "Booking created successfully!")
	redirect(c, "/dashboard/bookings")
}

// Categories lists categories with the number of tutors teaching each.
func (h *PublicHandler) Categories(c *gin.Context) {
	categories, err := h.categories.ListWithCounts(c.Request.Context())
	if err != nil {
		failureNow(c, err, "Failed to load categories")
	}
	render(c, http.StatusOK, "categories", "Browse categories", categories)
}
