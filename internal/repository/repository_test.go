package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/pkg/apiclient"
	appErrors "github.com/noah-isme/skillbridge-web/pkg/errors"
)

type captured struct {
	method string
	path   string
	query  string
	body   string
}

func newBackend(t *testing.T, status int, body string) (*apiclient.Client, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		*got = captured{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, body: string(raw)}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Add("Set-Cookie", "better-auth.session_token=t; Path=/")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL + "/api"), got
}

func TestTutorSearchBuildsQuery(t *testing.T) {
	client, got := newBackend(t, http.StatusOK, `{"success":true,"data":[{"id":"t1","hourlyRate":25,"user":{"id":"u1","name":"Ana"}}],"meta":{"page":2,"limit":12,"total":13,"totalPages":2}}`)
	available := true

	env, err := NewTutorRepository(client).Search(context.Background(), models.TutorSearchParams{
		Search:      "math",
		SortBy:      "rating",
		SortOrder:   "desc",
		IsAvailable: &available,
		Page:        2,
		Limit:       12,
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/api/tutors", got.path)
	assert.Equal(t, "isAvailable=true&limit=12&page=2&search=math&sortBy=rating&sortOrder=desc", got.query)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "Ana", env.Data[0].User.Name)
	assert.Equal(t, 2, env.Meta.TotalPages)
}

func TestBookingTransitionsUsePatch(t *testing.T) {
	client, got := newBackend(t, http.StatusOK, `{"success":true,"data":{"id":"b1","status":"CONFIRMED"}}`)
	repo := NewBookingRepository(client)

	env, err := repo.Confirm(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, got.method)
	assert.Equal(t, "/api/bookings/b1/confirm", got.path)
	assert.Equal(t, models.BookingConfirmed, env.Data.Status)

	_, err = repo.Cancel(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "/api/bookings/b1/cancel", got.path)

	_, err = repo.Complete(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "/api/bookings/b1/complete", got.path)
}

func TestCategoryCreateSendsBody(t *testing.T) {
	client, got := newBackend(t, http.StatusCreated, `{"success":true,"message":"Category created","data":{"id":"c1","name":"Math"}}`)

	env, err := NewCategoryRepository(client).Create(context.Background(), models.CategoryInput{Name: "Math"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, got.method)
	assert.JSONEq(t, `{"name":"Math"}`, got.body)
	assert.Equal(t, "Math", env.Data.Name)
}

func TestAdminUpdatesSendSingleField(t *testing.T) {
	client, got := newBackend(t, http.StatusOK, `{"success":true,"data":{"id":"u1"}}`)
	repo := NewAdminRepository(client)

	_, err := repo.UpdateUserRole(context.Background(), "u1", models.RoleTutor)
	require.NoError(t, err)
	assert.Equal(t, "/api/admin/users/u1/role", got.path)
	assert.JSONEq(t, `{"role":"TUTOR"}`, got.body)

	_, err = repo.UpdateUserStatus(context.Background(), "u1", models.UserStatusBanned)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"BANNED"}`, got.body)

	_, err = repo.UpdateBookingStatus(context.Background(), "b1", models.BookingCompleted)
	require.NoError(t, err)
	assert.Equal(t, "/api/admin/bookings/b1/status", got.path)
	assert.JSONEq(t, `{"status":"COMPLETED"}`, got.body)
}

func TestSecondaryFacadeRoutes(t *testing.T) {
	client, got := newBackend(t, http.StatusOK, `{"success":true,"data":{"id":"x1"}}`)
	ctx := context.Background()

	_, err := NewAdminRepository(client).GetUserByID(ctx, "u 1")
	require.NoError(t, err)
	assert.Equal(t, "/api/admin/users/u 1", got.path)

	_, err = NewBookingRepository(client).GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/api/bookings/b1", got.path)

	_, err = NewReviewRepository(client).Update(ctx, "r1", ReviewUpdate{Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/api/reviews/r1", got.path)
	assert.JSONEq(t, `{"rating":4}`, got.body)

	_, err = NewTutorRepository(client).UpdateAvailability(ctx, "a1", AvailabilityInput{DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/api/tutors/me/availability/a1", got.path)
	assert.JSONEq(t, `{"dayOfWeek":2,"startTime":"09:00","endTime":"10:00"}`, got.body)
}

func TestReviewListsArePaged(t *testing.T) {
	client, got := newBackend(t, http.StatusOK, `{"success":true,"data":[{"id":"r1","rating":5}]}`)

	env, err := NewReviewRepository(client).GetMyReviews(context.Background(), 2, 5)
	require.NoError(t, err)
	assert.Equal(t, "/api/reviews/me", got.path)
	assert.Equal(t, "limit=5&page=2", got.query)
	require.Len(t, env.Data, 1)

	_, err = NewReviewRepository(client).GetTutorReviews(context.Background(), "t1", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "/api/reviews/tutor/t1", got.path)
}

func TestFacadeSurfacesBackendMessage(t *testing.T) {
	client, _ := newBackend(t, http.StatusBadRequest, `{"success":false,"message":"Hourly rate is required"}`)

	_, err := NewTutorRepository(client).CreateProfile(context.Background(), TutorProfileInput{})
	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Hourly rate is required", apiErr.Message)
}

func TestAuthSignInCollectsCookies(t *testing.T) {
	client, got := newBackend(t, http.StatusOK, `{"user":{"id":"u1","name":"Ana","role":"TUTOR"}}`)

	result, err := NewAuthRepository(client).SignInEmail(context.Background(), SignInInput{Email: "a@b.c", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "/api/sign-in/email", got.path)

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(got.body), &body))
	assert.Equal(t, "a@b.c", body["email"])
	assert.Equal(t, models.RoleTutor, result.User.Role)
	assert.Equal(t, []string{"better-auth.session_token=t; Path=/"}, result.Cookies)
}

func TestAuthGetSessionNull(t *testing.T) {
	client, _ := newBackend(t, http.StatusOK, `null`)

	session, err := NewAuthRepository(client).GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, "skillbridge")

	var out []models.Category
	err := repo.Get(context.Background(), "catalog", &out)
	assert.True(t, errors.Is(err, appErrors.ErrCacheMiss))
	assert.NoError(t, repo.Set(context.Background(), "catalog", out, 0))
	assert.NoError(t, repo.Delete(context.Background(), "catalog"))
	assert.NoError(t, repo.Ping(context.Background()))
}
