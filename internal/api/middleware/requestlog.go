package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	requestIDHeader = echo.HeaderXRequestID
	requestIDKey    = "request_id"
)

// RequestID returns the id assigned to the request by RequestLog, if any.
func RequestID(c echo.Context) string {
	id, _ := c.Get(requestIDKey).(string)
	return id
}

// probeState remembers whether the last probe on a path succeeded, so a
// steady stream of healthy probes is logged once.
type probeState struct {
	mu      sync.Mutex
	healthy map[string]bool
}

// quiet reports whether a probe result can go unlogged, and records it.
func (p *probeState) quiet(path string, ok bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	was := p.healthy[path]
	p.healthy[path] = ok
	return ok && was
}

// RequestLog returns Echo middleware that logs one structured line per
// request. It assigns a request id when the client sent none, echoes it in
// the response and stores it on the context. Server errors log at error
// level, client errors and failed probes at warn. Repeated successful
// /healthz and /readyz probes are logged only after a state change.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	probes := &probeState{healthy: map[string]bool{}}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			reqID := req.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			c.Set(requestIDKey, reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok && !c.Response().Committed {
				status = he.Code
			}

			path := req.URL.Path
			probe := path == "/healthz" || path == "/readyz"
			if probe && probes.quiet(path, status < http.StatusBadRequest) {
				return err
			}

			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError && !probe:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			log.Log(req.Context(), level, "request",
				"method", req.Method,
				"path", path,
				"status", status,
				"bytes_out", c.Response().Size,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			)

			return err
		}
	}
}
