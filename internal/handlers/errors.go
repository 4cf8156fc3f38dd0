package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/grampanchayat/tax_collection/internal/service"
	"github.com/grampanchayat/tax_collection/internal/tokens"
)

// HTTPError maps the service error taxonomy onto HTTP statuses with the
// stable user-facing messages. Anything unmapped is an internal failure and
// must not leak details.
func HTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, tokens.ErrInvalidCredentials),
		errors.Is(err, tokens.ErrTokenExpired):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInsufficientPermissions),
		errors.Is(err, service.ErrOnlyCollectors),
		errors.Is(err, service.ErrNotAssigned):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrInvalidVolunteer),
		errors.Is(err, service.ErrInvalidHouseNumber):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
