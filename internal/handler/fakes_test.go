package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/skillbridge-web/internal/dto"
	"github.com/noah-isme/skillbridge-web/internal/middleware"
	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/internal/repository"
	"github.com/noah-isme/skillbridge-web/internal/service"
	"github.com/noah-isme/skillbridge-web/internal/view"
	"github.com/noah-isme/skillbridge-web/pkg/export"
	"github.com/noah-isme/skillbridge-web/pkg/flash"
)

const testRoleHeader = "X-Test-Role"

type fakeCatalog struct{ catalog service.Catalog }

func (f *fakeCatalog) Home(context.Context) service.Catalog { return f.catalog }

type fakeTutors struct {
	tutors []models.TutorProfile
	meta   *models.Meta
	params models.TutorSearchParams
	detail *service.TutorDetail
	err    error
}

func (f *fakeTutors) Search(_ context.Context, params models.TutorSearchParams) (*models.Envelope[[]models.TutorProfile], error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return &models.Envelope[[]models.TutorProfile]{Success: true, Data: f.tutors, Meta: f.meta}, nil
}

func (f *fakeTutors) Detail(context.Context, string) (*service.TutorDetail, error) {
	if f.detail == nil {
		return nil, f.err
	}
	return f.detail, nil
}

type fakeCategories struct {
	items []models.Category
	err   error
}

func (f *fakeCategories) List(context.Context) ([]models.Category, error) {
	return f.items, f.err
}

func (f *fakeCategories) ListWithCounts(context.Context) ([]service.CategoryWithCount, error) {
	out := make([]service.CategoryWithCount, 0, len(f.items))
	for _, c := range f.items {
		out = append(out, service.CategoryWithCount{Category: c})
	}
	return out, f.err
}

func (f *fakeCategories) Get(_ context.Context, id string) (*models.Category, error) {
	for _, c := range f.items {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, f.err
}

func (f *fakeCategories) Create(_ context.Context, form dto.CategoryForm) (*models.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	c := models.Category{ID: "c" + form.Name, Name: form.Name}
	f.items = append(f.items, c)
	return &c, nil
}

func (f *fakeCategories) Update(_ context.Context, id string, form dto.CategoryForm) (*models.Category, error) {
	return &models.Category{ID: id, Name: form.Name}, f.err
}

func (f *fakeCategories) Delete(context.Context, string) error { return f.err }

type appliedAction struct {
	id     string
	role   models.UserRole
	action service.BookingAction
}

type fakeBookings struct {
	bookings []models.Booking
	meta     *models.Meta
	tabs     []service.BookingTab
	applied  []appliedAction
	created  *dto.BookingForm
	err      error
}

func (f *fakeBookings) Create(_ context.Context, _ string, form dto.BookingForm) (*models.Booking, error) {
	f.created = &form
	if f.err != nil {
		return nil, f.err
	}
	return &models.Booking{ID: "b-new"}, nil
}

func (f *fakeBookings) List(_ context.Context, tab service.BookingTab, page int) (*models.Envelope[[]models.Booking], error) {
	f.tabs = append(f.tabs, tab)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Envelope[[]models.Booking]{Success: true, Data: f.bookings, Meta: f.meta}, nil
}

func (f *fakeBookings) Apply(_ context.Context, id string, role models.UserRole, action service.BookingAction) (*models.Booking, error) {
	f.applied = append(f.applied, appliedAction{id, role, action})
	return &models.Booking{ID: id}, f.err
}

type fakeAuth struct {
	result *repository.AuthResult
	err    error
	form   *dto.RegisterForm
}

func (f *fakeAuth) Register(_ context.Context, form dto.RegisterForm) (*repository.AuthResult, error) {
	f.form = &form
	return f.result, f.err
}

func (f *fakeAuth) Login(context.Context, dto.LoginForm) (*repository.AuthResult, error) {
	return f.result, f.err
}

func (f *fakeAuth) Logout(context.Context) (*repository.AuthResult, error) {
	return &repository.AuthResult{}, f.err
}

type fakeAccount struct{ user models.User }

func (f *fakeAccount) Profile(context.Context) (*models.User, error) { return &f.user, nil }

func (f *fakeAccount) UpdateProfile(_ context.Context, form dto.ProfileForm) (*models.User, error) {
	f.user.Name = form.Name
	return &f.user, nil
}

func (f *fakeAccount) Dashboard(context.Context) *models.StudentDashboard {
	return &models.StudentDashboard{}
}

type fakeReviewer struct{ err error }

func (f *fakeReviewer) Reviewable(_ context.Context, id string) (*models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Booking{ID: id, Status: models.BookingCompleted}, nil
}

func (f *fakeReviewer) Submit(context.Context, dto.ReviewForm) error { return f.err }

type fakeTutorAccount struct {
	profile *models.TutorProfile
	added   *dto.AvailabilityForm
	err     error
}

func (f *fakeTutorAccount) MyProfile(context.Context) *models.TutorProfile { return f.profile }

func (f *fakeTutorAccount) SaveProfile(_ context.Context, _ dto.TutorProfileForm, exists bool) (bool, error) {
	return !exists && f.err == nil, f.err
}

func (f *fakeTutorAccount) Availability(context.Context) ([]models.DaySlots, error) { return nil, nil }

func (f *fakeTutorAccount) AddAvailability(_ context.Context, form dto.AvailabilityForm) error {
	f.added = &form
	return f.err
}

func (f *fakeTutorAccount) RemoveAvailability(context.Context, string) error { return f.err }

type fakeTutorDashboard struct{ dash service.TutorDashboard }

func (f *fakeTutorDashboard) Tutor(context.Context) service.TutorDashboard { return f.dash }

type fakeAdmin struct {
	bookings []models.Booking
	changed  bool
	forms    []dto.BookingStatusForm
	err      error
}

func (f *fakeAdmin) Stats(context.Context) (*models.AdminStats, error) {
	return &models.AdminStats{TotalUsers: 42}, f.err
}

func (f *fakeAdmin) Users(context.Context, models.UserFilter) (*models.Envelope[[]models.User], error) {
	return &models.Envelope[[]models.User]{Success: true}, f.err
}

func (f *fakeAdmin) ChangeRole(context.Context, string, dto.RoleForm) error { return f.err }

func (f *fakeAdmin) ChangeStatus(context.Context, string, dto.UserStatusForm) error { return f.err }

func (f *fakeAdmin) Bookings(context.Context, string, int) (*models.Envelope[[]models.Booking], error) {
	return &models.Envelope[[]models.Booking]{Success: true, Data: f.bookings}, f.err
}

func (f *fakeAdmin) OverwriteBookingStatus(_ context.Context, _ string, form dto.BookingStatusForm) (bool, error) {
	f.forms = append(f.forms, form)
	return f.changed, f.err
}

type fakeExporter struct{}

func (fakeExporter) Bookings(_ context.Context, status string, format export.Format) (*service.ExportResult, error) {
	return &service.ExportResult{
		Filename:    export.Filename(format, time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC), "bookings", status),
		ContentType: format.ContentType(),
		Body:        []byte("Booking\n"),
	}, nil
}

type testApp struct {
	router     *gin.Engine
	flashes    *flash.Store
	tutors     *fakeTutors
	categories *fakeCategories
	bookings   *fakeBookings
	auth       *fakeAuth
	tutorAcct  *fakeTutorAccount
	admin      *fakeAdmin
	reviews    *fakeReviewer
	ready      error
	resolved   int
}

// newTestApp wires every page against fakes. The visitor's role comes from
// the X-Test-Role header; no header means signed out.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	renderer, err := view.New()
	require.NoError(t, err)

	app := &testApp{
		flashes:    flash.NewStore("test-secret", time.Minute, false),
		tutors:     &fakeTutors{},
		categories: &fakeCategories{},
		bookings:   &fakeBookings{},
		auth:       &fakeAuth{},
		tutorAcct:  &fakeTutorAccount{},
		admin:      &fakeAdmin{},
		reviews:    &fakeReviewer{},
	}

	r := gin.New()
	r.HTMLRender = renderer
	r.Use(middleware.Flashes(app.flashes))

	Register(r, Routes{
		Public:  NewPublicHandler(&fakeCatalog{}, app.tutors, app.categories, app.bookings),
		Auth:    NewAuthHandler(app.auth),
		Student: NewStudentHandler(&fakeAccount{user: models.User{ID: "u1", Name: "Ana"}}, app.bookings, app.reviews),
		Tutor:   NewTutorHandler(app.tutorAcct, &fakeTutorDashboard{}, app.bookings, app.categories),
		Admin:   NewAdminHandler(app.admin, app.categories, fakeExporter{}),
		Ops: NewMetricsHandler(nil, map[string]Check{
			"backend": func(context.Context) error { return app.ready },
		}),
		AuthProxy: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("auth:" + r.URL.Path))
		}),
		Session: func(c *gin.Context) {
			app.resolved++
			state := models.SessionState{}
			if role := c.GetHeader(testRoleHeader); role != "" {
				state.Data = &models.Session{User: models.SessionUser{ID: "u1", Name: "Test User", Role: models.UserRole(role)}}
			}
			c.Set(middleware.ContextSessionKey, state)
			c.Next()
		},
	})
	app.router = r
	return app
}

func (a *testApp) do(req *http.Request, role models.UserRole) *httptest.ResponseRecorder {
	if role != "" {
		req.Header.Set(testRoleHeader, string(role))
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// flashOf decodes the flash cookie a response queued for the next page.
func (a *testApp) flashOf(rec *httptest.ResponseRecorder) *flash.Message {
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.Name == flash.CookieName && c.MaxAge >= 0 {
			next.AddCookie(c)
		}
	}
	return a.flashes.Pop(httptest.NewRecorder(), next)
}
