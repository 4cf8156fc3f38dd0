package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/grampanchayat/tax_collection/internal/middleware/auth"
	"github.com/grampanchayat/tax_collection/internal/models"
	"github.com/grampanchayat/tax_collection/internal/repo"
	"github.com/grampanchayat/tax_collection/internal/service"
)

type AssignmentHandler struct {
	Repo *repo.GormRepo
}

// AssignCollector maps a collector to a house. Admin-gated at the router;
// both sides of the mapping must exist before the row is written.
func (h *AssignmentHandler) AssignCollector(c echo.Context) error {
	var req struct {
		HouseID  string `json:"houseId"  form:"houseId"`
		Username string `json:"username" form:"username"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
	}

	volunteer, err := h.Repo.GetByUsername(req.Username)
	if err != nil {
		return HTTPError(err)
	}
	if volunteer == nil || !volunteer.Roles.Has(models.RoleCollector) {
		return HTTPError(service.ErrInvalidVolunteer)
	}

	house, err := h.Repo.GetHouseByNumber(req.HouseID)
	if err != nil {
		return HTTPError(err)
	}
	if house == nil {
		return HTTPError(service.ErrInvalidHouseNumber)
	}

	assignment := models.Assignment{
		HouseID:  req.HouseID,
		Username: req.Username,
	}
	if err := h.Repo.CreateAssignment(&assignment); err != nil {
		return HTTPError(err)
	}

	return c.JSON(http.StatusOK, assignment)
}

// GetAssignments lists the caller's assignments with the houses attached. The
// path segment is kept for wire compatibility but the principal comes from the
// token, so one collector cannot enumerate another's assignments.
func (h *AssignmentHandler) GetAssignments(c echo.Context) error {
	user := authmw.CurrentUser(c)
	assignments, err := h.Repo.GetAssignmentsByUser(user.Username)
	if err != nil {
		return HTTPError(err)
	}
	return c.JSON(http.StatusOK, assignments)
}
