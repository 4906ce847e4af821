package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Recovery turns a handler panic into a 500 response instead of tearing
// down the server, logging the stack for the postmortem.
func Recovery(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					rid, _ := c.Get("request_id").(string)
					logger.Error().
						Str("request_id", rid).
						Interface("panic", r).
						Bytes("stack", debug.Stack()).
						Msg("panic recovered")
					err = echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
				}
			}()
			return next(c)
		}
	}
}
