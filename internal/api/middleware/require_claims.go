package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireIdentity rejects requests whose token validated but carries no
// usable user identity. Such a token is structurally valid yet operationally
// useless: no ownership check could ever pass for it.
func RequireIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get("user_id").(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
			}
			return next(c)
		}
	}
}
