package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceCounts(t *testing.T) {
	m := NewMetricsService()

	m.ObserveHTTPRequest(http.MethodGet, "/tutors", http.StatusOK, 10*time.Millisecond)
	m.ObserveBackendCall(http.MethodGet, "/tutors", http.StatusOK, 5*time.Millisecond)
	m.ObserveBackendCall(http.MethodGet, "/tutors", 0, time.Millisecond)
	m.ObserveProxyFailure("auth")
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordRevalidation(true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `backend_requests_total{method="GET",route="/tutors",status="error"} 1`)
	assert.Contains(t, body, `proxy_upstream_failures_total{proxy="auth"} 1`)
	assert.Contains(t, body, `catalog_revalidations_total{result="ok"} 1`)

	snap := m.Snapshot()
	assert.Equal(t, uint64(1), snap.RequestsTotal)
	assert.Equal(t, uint64(2), snap.BackendFailures)
	assert.InDelta(t, 0.5, snap.CacheHitRatio, 0.0001)
}

func TestMetricsHandlerServesExposition(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestNilMetricsServiceIsSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest(http.MethodGet, "/", 200, time.Millisecond)
	m.ObserveBackendCall(http.MethodGet, "/", 200, time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	assert.Equal(t, MetricsSnapshot{}, m.Snapshot())
}
