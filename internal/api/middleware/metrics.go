// Package middleware provides Echo middleware for the stock tracker API.
package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/stock-tracker/internal/metrics"
)

// unmatchedRoute labels requests that hit no registered route, so scanners
// cannot grow the label set.
const unmatchedRoute = "unmatched"

// probePaths are served outside the request metrics. Health probes update
// their own up/down gauge instead.
var probePaths = map[string]prometheus.Gauge{
	"/metrics": nil,
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

// Metrics returns Echo middleware that records request duration and count by
// method, route template and status.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := routeLabel(c)

			if gauge, probe := probePaths[route]; probe {
				err := next(c)
				if gauge != nil {
					gauge.Set(upValue(c.Response().Status))
				}
				return err
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				// Let echo write the error response so the status is final.
				c.Error(err)
			}

			labels := []string{c.Request().Method, route, strconv.Itoa(c.Response().Status)}
			metrics.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()

			return nil
		}
	}
}

// routeLabel returns the matched route template ("/api/v1/equipment/:id"),
// the raw path for probes, or unmatchedRoute.
func routeLabel(c echo.Context) string {
	if _, probe := probePaths[c.Request().URL.Path]; probe {
		return c.Request().URL.Path
	}
	route := c.Path()
	if route == "" || route == "/*" {
		return unmatchedRoute
	}
	return route
}

func upValue(status int) float64 {
	if status >= 200 && status < 300 {
		return 1
	}
	return 0
}
