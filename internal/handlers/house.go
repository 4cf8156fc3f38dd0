package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/grampanchayat/tax_collection/internal/models"
	"github.com/grampanchayat/tax_collection/internal/mykafka"
	"github.com/grampanchayat/tax_collection/internal/repo"
)

type HouseHandler struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

// CreateHouses registers a batch of houses in one request; field sheets from
// a survey round arrive in bulk.
func (h *HouseHandler) CreateHouses(c echo.Context) error {
	var houses []models.House
	if err := c.Bind(&houses); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
	}
	if len(houses) == 0 {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "no houses provided")
	}

	if err := h.Repo.CreateHouses(houses); err != nil {
		return HTTPError(err)
	}

	numbers := make([]string, 0, len(houses))
	for _, house := range houses {
		numbers = append(numbers, house.HouseNumber)
	}
	created, err := h.Repo.GetHousesByNumbers(numbers)
	if err != nil {
		return HTTPError(err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	for _, house := range created {
		if err := h.Producer.PublishEvent(ctx, "house_events", house.HouseNumber, map[string]interface{}{
			"type":  "house_created",
			"house": house,
		}); err != nil {
			c.Logger().Errorf("kafka publish error: %v", err)
		}
	}

	return c.JSON(http.StatusOK, created)
}

func (h *HouseHandler) GetHouses(c echo.Context) error {
	houses, err := h.Repo.GetHouses()
	if err != nil {
		return HTTPError(err)
	}
	return c.JSON(http.StatusOK, houses)
}

func (h *HouseHandler) GetHousesByNumber(c echo.Context) error {
	householdID := c.Param("household_id")
	houses, err := h.Repo.GetHousesByNumbers([]string{householdID})
	if err != nil {
		return HTTPError(err)
	}
	return c.JSON(http.StatusOK, houses)
}
