package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	failures map[string]int
}

func (c *countingObserver) ObserveProxyFailure(target string) {
	if c.failures == nil {
		c.failures = map[string]int{}
	}
	c.failures[target]++
}

func TestAuthProxyForwardsAndRewritesCookies(t *testing.T) {
	var gotPath, gotQuery, gotBody, gotCookie string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotCookie = r.Header.Get("Cookie")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "http://backend.example")
		w.Header().Add("Set-Cookie", "session=abc; Secure; SameSite=None; Partitioned")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer backend.Close()

	h, err := NewAuth(Config{BackendURL: backend.URL})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/sign-in/email?x=1", strings.NewReader(`{"email":"a@b.c"}`))
	req.Header.Set("Cookie", "old=1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/api/auth/sign-in/email", gotPath)
	assert.Equal(t, "x=1", gotQuery)
	assert.Equal(t, `{"email":"a@b.c"}`, gotBody)
	assert.Equal(t, "old=1", gotCookie)
	assert.Equal(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, []string{"session=abc; SameSite=Lax"}, rec.Header().Values("Set-Cookie"))
}

func TestAPIProxyMapsPathAndDropsCookies(t *testing.T) {
	var gotPath, gotMethod string
	var gotLen int64
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotLen = r.ContentLength
		w.Header().Set("Set-Cookie", "leak=1")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Tutor not found"}`))
	}))
	defer backend.Close()

	h, err := NewAPI(Config{BackendURL: backend.URL})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/proxy/tutors/t1", strings.NewReader("ignored"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "/api/tutors/t1", gotPath)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Zero(t, gotLen)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Header().Values("Set-Cookie"))
	assert.Contains(t, rec.Body.String(), "Tutor not found")
}

func TestProxyTransportFailure(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := backend.URL
	backend.Close()

	obs := &countingObserver{}
	auth, err := NewAuth(Config{BackendURL: url, Observer: obs})
	require.NoError(t, err)
	api, err := NewAPI(Config{BackendURL: url, Observer: obs})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	auth.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/get-session", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to connect to auth server"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	api.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/proxy/categories/c1", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to connect to API server"}`, rec.Body.String())

	assert.Equal(t, 1, obs.failures["auth"])
	assert.Equal(t, 1, obs.failures["api"])
}

func TestBuildRejectsRelativeURL(t *testing.T) {
	_, err := NewAPI(Config{BackendURL: "localhost:5000"})
	assert.Error(t, err)
}
