package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ContextLogger stores a request-scoped logger, tagged with the request ID,
// in the request context so downstream services can log with zerolog.Ctx.
// It must run after the request ID middleware.
func ContextLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqLogger := logger.With().
				Str("requestId", c.Response().Header().Get(echo.HeaderXRequestID)).
				Logger()

			req := c.Request()
			c.SetRequest(req.WithContext(reqLogger.WithContext(req.Context())))
			return next(c)
		}
	}
}
