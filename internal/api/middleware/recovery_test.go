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

func TestRecovery_NoPanic(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary", http.NoBody)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	handler := Recovery(logger)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, buf.String(), "no panic should produce no log output")
}

func TestRecovery_Panic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		method  string
		value   any
		wantLog []string
	}{
		{
			name:    "string value",
			method:  http.MethodGet,
			value:   "nil map write",
			wantLog: []string{"panic recovered", "nil map write", "method=GET", "path=/api/v1/equipment"},
		},
		{
			name:    "non-string value",
			method:  http.MethodPost,
			value:   42,
			wantLog: []string{"42", "method=POST", "request_id=req-7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			req := httptest.NewRequest(tt.method, "/api/v1/equipment", http.NoBody)
			req.Header.Set(requestIDHeader, "req-7")
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(req, rec)

			handler := RequestLog(slog.New(slog.DiscardHandler))(Recovery(logger)(func(echo.Context) error {
				panic(tt.value)
			}))

			require.NoError(t, handler(c))
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get(echo.HeaderContentType))
			assert.JSONEq(t, `{"title":"Internal Server Error","status":500,"detail":"internal server error"}`, rec.Body.String())

			for _, want := range tt.wantLog {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestRecovery_AbortHandlerRepanics(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	handler := Recovery(slog.New(slog.DiscardHandler))(func(echo.Context) error {
		panic(http.ErrAbortHandler)
	})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() { _ = handler(c) })
}
