package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/rite-edu-api/internal/service"
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestMetricsHandlerReady(t *testing.T) {
	handler := NewMetricsHandler(nil, stubPinger{})
	c, rec := newTestContext(http.MethodGet, "/ready", nil)
	handler.Ready(c)
	assert.Equal(t, http.StatusOK, rec.Code)

	handler = NewMetricsHandler(nil, stubPinger{err: errors.New("connection refused")})
	c, rec = newTestContext(http.MethodGet, "/ready", nil)
	handler.Ready(c)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsHandlerSystemSnapshot(t *testing.T) {
	metrics := service.NewMetricsService()
	metrics.RecordCacheOperation(true, 0)
	metrics.RecordCacheOperation(false, 0)
	handler := NewMetricsHandler(metrics, nil)

	c, rec := newTestContext(http.MethodGet, "/admin/system/metrics", nil)
	handler.System(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, 0.5, data["cache_hit_ratio"])
}

func TestMetricsHandlerPrometheusUnavailable(t *testing.T) {
	handler := NewMetricsHandler(nil, nil)
	c, _ := newTestContext(http.MethodGet, "/metrics", nil)
	handler.Prometheus(c)
	assert.Equal(t, http.StatusServiceUnavailable, c.Writer.Status())
}
