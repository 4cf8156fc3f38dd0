package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/grampanchayat/tax_collection/internal/hash"
	"github.com/grampanchayat/tax_collection/internal/logging"
	"github.com/grampanchayat/tax_collection/internal/models"
	"github.com/grampanchayat/tax_collection/internal/mykafka"
	"github.com/grampanchayat/tax_collection/internal/repo"
	"github.com/grampanchayat/tax_collection/internal/service"
)

type UserHandler struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

// Register creates a new user. The route is admin-gated; username is the
// immutable primary key, so a duplicate registration is rejected outright.
func (h *UserHandler) Register(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("svc", "user.register")

	var req struct {
		Username string `json:"username" form:"username"`
		Name     string `json:"name"     form:"name"`
		Phone    int64  `json:"phone"    form:"phone"`
		UserRole string `json:"userRole" form:"userRole"`
		Password string `json:"password" form:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "username and password are required")
	}

	existing, err := h.Repo.GetByUsername(req.Username)
	if err != nil {
		return HTTPError(err)
	}
	if existing != nil {
		l.Warn("register rejected", "status", 400, "reason", "username taken", "username", req.Username)
		return HTTPError(service.ErrUsernameTaken)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register failed", "status", 500, "error", err)
		return HTTPError(err)
	}

	user := models.User{
		Username:     req.Username,
		Name:         req.Name,
		Phone:        req.Phone,
		Roles:        models.ParseRoleSet(req.UserRole),
		PasswordHash: pwHash,
	}
	if err := h.Repo.CreateUser(&user); err != nil {
		return HTTPError(err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", user.Username, map[string]interface{}{
		"type":     "user_registered",
		"username": user.Username,
	}); err != nil {
		c.Logger().Errorf("kafka publish error: %v", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"username": user.Username,
		"name":     user.Name,
		"phone":    user.Phone,
		"userRole": user.Roles.String(),
	})
}
