package auth

import (
	"github.com/labstack/echo/v4"
)

const (
	HeaderUserName = "X-User-Name"
	HeaderUserRole = "X-User-Role"
)

// FromHeaders returns middleware that extracts the asserted caller identity
// from request headers and stores it on the request context. A missing name
// defaults to "User"; a missing or unrecognized role stays as asserted and
// is rejected later by the per-operation gates.
func FromHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := Identity{
				Name: req.Header.Get(HeaderUserName),
				Role: Role(req.Header.Get(HeaderUserRole)),
			}
			if id.Name == "" {
				id.Name = "User"
			}
			c.SetRequest(req.WithContext(WithIdentity(req.Context(), id)))
			return next(c)
		}
	}
}
