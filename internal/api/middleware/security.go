package middleware

import (
	"github.com/labstack/echo/v4"
)

// SecurityHeaders sets conservative response headers and disables caching
// of tick and descriptor responses.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")

			switch c.Request().URL.Path {
			case "/tick", "/integration.json", "/telex-integration":
				h.Set("Cache-Control", "no-store")
			}

			return next(c)
		}
	}
}
