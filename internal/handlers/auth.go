package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	authmw "github.com/grampanchayat/tax_collection/internal/middleware/auth"
	"github.com/grampanchayat/tax_collection/internal/mykafka"
	"github.com/grampanchayat/tax_collection/internal/service"
)

type AuthHandler struct {
	Auth     *service.AuthService
	Producer *mykafka.Producer
}

// Login accepts the username/password pair as a form post or JSON body and
// returns the bearer token pair plus the principal summary.
func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
	}

	result, err := h.Auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return HTTPError(err)
	}
	user := result.User

	h.publish(c, "user_events", user.Username, map[string]interface{}{
		"type":     "user_logged_in",
		"username": user.Username,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"token_type":    "Bearer",
		"username":      user.Username,
		"name":          user.Name,
		"phone":         user.Phone,
		"userRole":      user.Roles.String(),
	})
}

// Refresh exchanges a live refresh token for a fresh access token. A missing
// refresh_token field is a structural failure (422), not a credential one.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req struct {
		RefreshToken *string `json:"refresh_token" form:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil || req.RefreshToken == nil || *req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "refresh_token is required")
	}

	accessToken, err := h.Auth.Refresh(c.Request().Context(), *req.RefreshToken)
	if err != nil {
		return HTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token": accessToken,
		"token_type":   "Bearer",
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	token, err := authmw.BearerToken(c)
	if err != nil {
		return err
	}

	if err := h.Auth.Logout(c.Request().Context(), token); err != nil {
		return HTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": service.LoggedOutMessage,
	})
}

func (h *AuthHandler) publish(c echo.Context, topic, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		c.Logger().Errorf("kafka publish error: %v", err)
	}
}
