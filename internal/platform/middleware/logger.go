package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/meditrack/meditrack/internal/platform/auth"
)

// Logger emits one structured line per request, tagged with the asserted
// caller so access lines can be correlated with the audit trail.
func Logger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			caller := auth.IdentityFromContext(c.Request().Context())
			rid, _ := c.Get("request_id").(string)

			evt := logger.Info()
			if err != nil {
				evt = logger.Error().Err(err)
			}
			evt.
				Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("caller", caller.Name).
				Str("role", string(caller.Role)).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Msg("request")

			return err
		}
	}
}
