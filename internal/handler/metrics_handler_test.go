package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/refine-admin-api/internal/service"
)

func TestMetricsHandlerEndpoints(t *testing.T) {
	metrics := service.NewMetricsService()
	metrics.RecordEventPublished("posts", "created")
	h := NewMetricsHandler(metrics, map[string]HealthCheck{
		"postgres": func(ctx context.Context) error { return nil },
	})
	r := newTestRouter(nil)
	r.GET("/metrics", h.Prometheus)
	r.GET("/metrics/snapshot", h.Snapshot)
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)

	w := doRequest(t, r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "events_published_total")

	w = doRequest(t, r, http.MethodGet, "/metrics/snapshot", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snap service.MetricsSnapshot
	decodeData(t, w, &snap)
	assert.Equal(t, uint64(1), snap.EventsPublished)

	assert.Equal(t, http.StatusOK, doRequest(t, r, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, doRequest(t, r, http.MethodGet, "/ready", nil).Code)
}

func TestMetricsHandlerReadyFails(t *testing.T) {
	h := NewMetricsHandler(nil, map[string]HealthCheck{
		"redis": func(ctx context.Context) error { return errors.New("connection refused") },
	})
	r := newTestRouter(nil)
	r.GET("/ready", h.Ready)

	w := doRequest(t, r, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}
