package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/grampanchayat/tax_collection/internal/models"
	"github.com/grampanchayat/tax_collection/internal/service"
	"github.com/grampanchayat/tax_collection/internal/tokens"
)

const userContextKey = "user"

type Middleware struct {
	Auth *service.AuthService
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", echo.NewHTTPError(http.StatusUnauthorized, tokens.ErrInvalidCredentials.Error())
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, tokens.ErrInvalidCredentials.Error())
	}
	return token, nil
}

func (m *Middleware) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := BearerToken(c)
		if err != nil {
			return err
		}
		user, err := m.Auth.CurrentUser(token)
		if err != nil {
			return toHTTP(err)
		}
		c.Set(userContextKey, user)
		return next(c)
	}
}

func (m *Middleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireUser(func(c echo.Context) error {
		if err := service.RequireAdmin(CurrentUser(c)); err != nil {
			return toHTTP(err)
		}
		return next(c)
	})
}

// CurrentUser returns the principal set by RequireUser, or nil outside a
// guarded route.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}

func toHTTP(err error) error {
	switch {
	case errors.Is(err, service.ErrInsufficientPermissions):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, tokens.ErrInvalidCredentials),
		errors.Is(err, tokens.ErrTokenExpired):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
