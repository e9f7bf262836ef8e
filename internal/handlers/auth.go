package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eduforge/lms/internal/middleware"
	"github.com/eduforge/lms/internal/mykafka"
	"github.com/eduforge/lms/internal/service"
)

type AuthHandler struct {
	Auth     *service.AuthService
	Producer *mykafka.Producer
}

type userOut struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	user, err := h.Auth.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	event := map[string]interface{}{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	}
	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), event)

	return c.JSON(http.StatusOK, userOut{ID: user.ID, Name: user.Name, Email: user.Email})
}

// Token exchanges form credentials for a bearer token. The username field
// carries the email, mirroring the OAuth2 password form shape.
func (h *AuthHandler) Token(c echo.Context) error {
	email := c.FormValue("username")
	password := c.FormValue("password")

	user, err := h.Auth.Authenticate(c.Request().Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusBadRequest, "Incorrect email or password")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	token, err := h.Auth.IssueToken(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}
	return c.JSON(http.StatusOK, userOut{ID: user.ID, Name: user.Name, Email: user.Email})
}
