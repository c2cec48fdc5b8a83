package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveOnce(t *testing.T, h echo.HandlerFunc, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, http.NoBody)
	rec := httptest.NewRecorder()
	require.NoError(t, h(echo.New().NewContext(req, rec)))
	return rec
}

func TestRequestLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		method        string
		path          string
		status        int
		providedReqID string
		wantLogFields []string
	}{
		{
			name:   "logs GET request with generated ID",
			method: http.MethodGet,
			path:   "/api/v1/equipment",
			status: http.StatusOK,
			wantLogFields: []string{
				"level=INFO",
				"method=GET",
				"path=/api/v1/equipment",
				"status=200",
				"duration_ms=",
				"request_id=",
			},
		},
		{
			name:   "logs POST request",
			method: http.MethodPost,
			path:   "/api/v1/imports",
			status: http.StatusCreated,
			wantLogFields: []string{
				"method=POST",
				"status=201",
			},
		},
		{
			name:          "uses provided request ID",
			method:        http.MethodGet,
			path:          "/api/v1/summary",
			status:        http.StatusOK,
			providedReqID: "custom-req-id-123",
			wantLogFields: []string{
				"request_id=custom-req-id-123",
			},
		},
		{
			name:          "client error logs at warn",
			method:        http.MethodPut,
			path:          "/api/v1/equipment/9",
			status:        http.StatusUnprocessableEntity,
			wantLogFields: []string{"level=WARN", "status=422"},
		},
		{
			name:          "server error logs at error",
			method:        http.MethodGet,
			path:          "/api/v1/equipment",
			status:        http.StatusServiceUnavailable,
			wantLogFields: []string{"level=ERROR", "status=503"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			if tt.providedReqID != "" {
				req.Header.Set(requestIDHeader, tt.providedReqID)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := RequestLog(logger)(func(c echo.Context) error {
				return c.NoContent(tt.status)
			})

			require.NoError(t, handler(c))

			logOutput := buf.String()
			for _, field := range tt.wantLogFields {
				assert.Contains(t, logOutput, field)
			}

			respID := rec.Header().Get(requestIDHeader)
			assert.NotEmpty(t, respID)
			if tt.providedReqID != "" {
				assert.Equal(t, tt.providedReqID, respID)
			}
			assert.Equal(t, respID, RequestID(c))
		})
	}
}

func TestRequestLog_HTTPErrorStatus(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := RequestLog(slog.New(slog.NewTextHandler(&buf, nil)))(func(echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "nope")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/equipment/5", http.NoBody)
	err := handler(echo.New().NewContext(req, httptest.NewRecorder()))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "status=404")
}

func TestRequestLog_HealthzFirstSuccessLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := RequestLog(slog.New(slog.NewTextHandler(&buf, nil)))(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	serveOnce(t, handler, http.MethodGet, "/healthz")
	assert.Contains(t, buf.String(), "path=/healthz")
	assert.Contains(t, buf.String(), "status=200")

	firstLogLen := buf.Len()

	serveOnce(t, handler, http.MethodGet, "/healthz")
	serveOnce(t, handler, http.MethodGet, "/healthz")
	assert.Equal(t, firstLogLen, buf.Len(), "repeated successful healthz should not be logged")
}

func TestRequestLog_ProbeFailureAlwaysLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := RequestLog(slog.New(slog.NewTextHandler(&buf, nil)))(func(c echo.Context) error {
		return c.NoContent(http.StatusServiceUnavailable)
	})

	serveOnce(t, handler, http.MethodGet, "/readyz")
	assert.Contains(t, buf.String(), "status=503")
	assert.Contains(t, buf.String(), "level=WARN")

	firstLogLen := buf.Len()
	serveOnce(t, handler, http.MethodGet, "/readyz")
	assert.Greater(t, buf.Len(), firstLogLen, "failed readyz should always be logged")
}

func TestRequestLog_ReadyzRecoveryLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	statuses := []int{http.StatusOK, http.StatusOK, http.StatusServiceUnavailable, http.StatusOK}
	call := 0
	handler := RequestLog(slog.New(slog.NewTextHandler(&buf, nil)))(func(c echo.Context) error {
		s := statuses[call]
		call++
		return c.NoContent(s)
	})

	serveOnce(t, handler, http.MethodGet, "/readyz")
	n := buf.Len()

	serveOnce(t, handler, http.MethodGet, "/readyz")
	assert.Equal(t, n, buf.Len(), "second success suppressed")

	serveOnce(t, handler, http.MethodGet, "/readyz")
	assert.Greater(t, buf.Len(), n, "failure logged")
	n = buf.Len()

	serveOnce(t, handler, http.MethodGet, "/readyz")
	assert.Greater(t, buf.Len(), n, "first success after a failure logged")
}

func TestRequestLog_NonProbePathAlwaysLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := RequestLog(slog.New(slog.NewTextHandler(&buf, nil)))(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	serveOnce(t, handler, http.MethodGet, "/api/v1/equipment")
	firstLen := buf.Len()
	assert.Positive(t, firstLen)

	serveOnce(t, handler, http.MethodGet, "/api/v1/equipment")
	assert.Greater(t, buf.Len(), firstLen, "non-probe paths should always be logged")
}
