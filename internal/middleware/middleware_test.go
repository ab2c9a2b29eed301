package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/pkg/apiclient"
	"github.com/noah-isme/skillbridge-web/pkg/flash"
)

type stubResolver struct {
	state   models.SessionState
	cookies string
}

func (s *stubResolver) Resolve(ctx context.Context) models.SessionState {
	s.cookies = apiclient.CookiesFrom(ctx)
	return s.state
}

func signedIn(role models.UserRole) models.SessionState {
	return models.SessionState{Data: &models.Session{User: models.SessionUser{ID: "u1", Role: role}}}
}

func newRouter(resolver *stubResolver, store *flash.Store, gate gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Flashes(store), Session(resolver))
	r.GET("/admin", gate, func(c *gin.Context) { c.String(http.StatusOK, "admin content") })
	return r
}

func TestRequireRoleRedirectsWithFlash(t *testing.T) {
	store := flash.NewStore("secret", time.Minute, false)
	resolver := &stubResolver{state: signedIn(models.RoleStudent)}
	r := newRouter(resolver, store, RequireRole(models.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Cookie", "session=abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	assert.NotContains(t, rec.Body.String(), "admin content")
	assert.Equal(t, "session=abc", resolver.cookies)

	next := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	msg := store.Pop(httptest.NewRecorder(), next)
	require.NotNil(t, msg)
	assert.Equal(t, flash.Error, msg.Kind)
	assert.Equal(t, "Access denied. Admin privileges required.", msg.Text)
}

func TestRequireRoleSendsVisitorsToLogin(t *testing.T) {
	r := newRouter(&stubResolver{}, flash.NewStore("secret", time.Minute, false), RequireRole(models.RoleTutor))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	r := newRouter(&stubResolver{state: signedIn(models.RoleAdmin)}, nil, RequireRole(models.RoleAdmin))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin content", rec.Body.String())
}

func TestRequireSignedIn(t *testing.T) {
	r := newRouter(&stubResolver{state: models.SessionState{Err: assert.AnError}}, nil, RequireSignedIn())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestFlashNowWinsOverCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Nil(t, PopFlash(c))
	FlashNow(c, flash.Error, "Email already exists")
	msg := PopFlash(c)
	require.NotNil(t, msg)
	assert.Equal(t, "Email already exists", msg.Text)
}

func TestCSRFRejectsPostWithoutToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CSRF("0123456789abcdef0123456789abcdef", false))
	r.GET("/form", func(c *gin.Context) { c.String(http.StatusOK, "form") })
	r.POST("/form", func(c *gin.Context) { c.String(http.StatusOK, "saved") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/form", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := url.Values{"name": {"Math"}}.Encode()
	post := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(body))
	post.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, post)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), "saved")
}
