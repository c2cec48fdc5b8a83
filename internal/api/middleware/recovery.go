package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
)

// Recovery returns Echo middleware that turns a handler panic into a 500
// problem response and logs the stack.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				buf := make([]byte, 8<<10)
				buf = buf[:runtime.Stack(buf, false)]

				log.Error("panic recovered",
					"error", fmt.Sprint(r),
					"method", c.Request().Method,
					"path", c.Request().URL.Path,
					"request_id", RequestID(c),
					"stack", string(buf),
				)

				if c.Response().Committed {
					return
				}
				c.Response().Header().Set(echo.HeaderContentType, "application/problem+json")
				err = c.JSON(http.StatusInternalServerError, map[string]any{
					"title":  http.StatusText(http.StatusInternalServerError),
					"status": http.StatusInternalServerError,
					"detail": "internal server error",
				})
			}()
			return next(c)
		}
	}
}
