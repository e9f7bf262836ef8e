package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eduforge/lms/internal/models"
	"github.com/eduforge/lms/internal/service"
)

const UserKey = "user"

// RequireUser gates a route behind a bearer token, resolving it to the user
// it was issued for and stashing the user on the context.
func RequireUser(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}

			user, err := auth.Resolve(c.Request().Context(), strings.TrimPrefix(header, prefix))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}

func CurrentUser(c echo.Context) *models.User {
	if u, ok := c.Get(UserKey).(*models.User); ok {
		return u
	}
	return nil
}
