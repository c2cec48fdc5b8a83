package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mw "github.com/donaldgifford/stock-tracker/internal/api/middleware"
	"github.com/donaldgifford/stock-tracker/internal/metrics"
)

func TestMetricsMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		route      string
		target     string
		handler    echo.HandlerFunc
		wantStatus int
	}{
		{
			name:   "records 200 response",
			method: http.MethodGet,
			route:  "/api/v1/summary",
			target: "/api/v1/summary",
			handler: func(c echo.Context) error {
				return c.JSON(http.StatusOK, map[string]int{"total": 0})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "labels by route template",
			method: http.MethodDelete,
			route:  "/api/v1/equipment/:id",
			target: "/api/v1/equipment/42",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusNoContent)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "records error returned by handler",
			method: http.MethodPost,
			route:  "/api/v1/imports",
			target: "/api/v1/imports",
			handler: func(echo.Context) error {
				return echo.NewHTTPError(http.StatusUnprocessableEntity, "bad row")
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Use(mw.Metrics())
			e.Add(tt.method, tt.route, tt.handler)

			req := httptest.NewRequest(tt.method, tt.target, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			statusStr := strconv.Itoa(tt.wantStatus)

			counter, err := metrics.HTTPRequestsTotal.GetMetricWithLabelValues(tt.method, tt.route, statusStr)
			require.NoError(t, err)
			assert.Greater(t, ptestutil.ToFloat64(counter), float64(0))

			observer, err := metrics.HTTPRequestDuration.GetMetricWithLabelValues(tt.method, tt.route, statusStr)
			require.NoError(t, err)

			hm := &io_prometheus_client.Metric{}
			require.NoError(t, observer.(prometheus.Metric).Write(hm))
			assert.Positive(t, hm.GetHistogram().GetSampleCount())
		})
	}
}

func TestMetricsMiddleware_UnmatchedRoute(t *testing.T) {
	e := echo.New()
	e.Use(mw.Metrics())

	req := httptest.NewRequest(http.MethodGet, "/wp-admin/setup.php", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	counter, err := metrics.HTTPRequestsTotal.GetMetricWithLabelValues(http.MethodGet, "unmatched", "404")
	require.NoError(t, err)
	assert.Greater(t, ptestutil.ToFloat64(counter), float64(0))
}

func TestMetricsMiddleware_HealthGauges(t *testing.T) {
	ready := true

	e := echo.New()
	e.Use(mw.Metrics())
	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/readyz", func(c echo.Context) error {
		if ready {
			return c.NoContent(http.StatusOK)
		}
		return c.NoContent(http.StatusServiceUnavailable)
	})

	serve := func(path string) {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
	}

	serve("/healthz")
	serve("/readyz")
	assert.InDelta(t, 1.0, ptestutil.ToFloat64(metrics.HealthzUp), 0)
	assert.InDelta(t, 1.0, ptestutil.ToFloat64(metrics.ReadyzUp), 0)

	ready = false
	serve("/readyz")
	assert.InDelta(t, 0.0, ptestutil.ToFloat64(metrics.ReadyzUp), 0)

	// Probes stay out of the request metrics.
	counter, err := metrics.HTTPRequestsTotal.GetMetricWithLabelValues(http.MethodGet, "/readyz", "200")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, ptestutil.ToFloat64(counter), 0)
}
