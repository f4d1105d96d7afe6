package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CORS mirrors the headers the web client already relies on. Preflight
// requests are answered with a bare 200 before auth or routing run.
func CORS() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
			h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")

			if c.Request().Method == http.MethodOptions {
				return c.String(http.StatusOK, "ok")
			}

			return next(c)
		}
	}
}
