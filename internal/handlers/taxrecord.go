package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	authmw "github.com/grampanchayat/tax_collection/internal/middleware/auth"
	"github.com/grampanchayat/tax_collection/internal/models"
	"github.com/grampanchayat/tax_collection/internal/mykafka"
	"github.com/grampanchayat/tax_collection/internal/repo"
	"github.com/grampanchayat/tax_collection/internal/service"
)

type TaxRecordHandler struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

// RecordCollections inserts a batch of collection events. Only collectors may
// record, and only against houses assigned to them; the records are
// attributed to the authenticated collector, never to a name in the body.
func (h *TaxRecordHandler) RecordCollections(c echo.Context) error {
	user := authmw.CurrentUser(c)
	if !user.Roles.Has(models.RoleCollector) {
		return HTTPError(service.ErrOnlyCollectors)
	}

	var req []struct {
		Amount  float64 `json:"amount"`
		HouseID string  `json:"houseId"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
	}
	if len(req) == 0 {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "no records provided")
	}

	// Admins who collect may record against any household; everyone else
	// only against houses assigned to them.
	if !user.Roles.Has(models.RoleAdmin) {
		houseIDs := make([]string, 0, len(req))
		for _, item := range req {
			houseIDs = append(houseIDs, item.HouseID)
		}

		assignments, err := h.Repo.GetAssignmentsByUserAndHouses(user.Username, houseIDs)
		if err != nil {
			return HTTPError(err)
		}
		assigned := make(map[string]bool, len(assignments))
		for _, a := range assignments {
			assigned[a.HouseID] = true
		}
		for _, item := range req {
			if !assigned[item.HouseID] {
				return HTTPError(service.ErrNotAssigned)
			}
		}
	}

	now := time.Now().UTC()
	records := make([]models.TaxRecord, 0, len(req))
	for _, item := range req {
		records = append(records, models.TaxRecord{
			Amount:      item.Amount,
			HouseID:     item.HouseID,
			CollectorID: user.Username,
			DateCreated: now,
			DateUpdated: now,
		})
	}

	records, err := h.Repo.InsertTaxRecords(records)
	if err != nil {
		return HTTPError(err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	for _, record := range records {
		if err := h.Producer.PublishEvent(ctx, "tax_events", record.HouseID, map[string]interface{}{
			"type":   "tax_recorded",
			"record": record,
		}); err != nil {
			c.Logger().Errorf("kafka publish error: %v", err)
		}
	}

	return c.JSON(http.StatusOK, records)
}

func (h *TaxRecordHandler) GetTaxRecords(c echo.Context) error {
	records, err := h.Repo.GetTaxRecords()
	if err != nil {
		return HTTPError(err)
	}
	return c.JSON(http.StatusOK, records)
}

func (h *TaxRecordHandler) GetTaxRecordsByHouse(c echo.Context) error {
	houseNumber := c.Param("houseNumber")
	records, err := h.Repo.GetTaxRecordsByHouse(houseNumber)
	if err != nil {
		return HTTPError(err)
	}
	return c.JSON(http.StatusOK, records)
}

// UpdateTaxRecord corrects the amount on an existing record. Allowed for
// admins and for the collector who recorded it.
func (h *TaxRecordHandler) UpdateTaxRecord(c echo.Context) error {
	user := authmw.CurrentUser(c)

	recordID, err := strconv.Atoi(c.Param("recordId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid record id")
	}

	record, err := h.Repo.GetTaxRecordByID(uint(recordID))
	if err != nil {
		return HTTPError(err)
	}
	if record == nil {
		return HTTPError(service.ErrRecordNotFound)
	}

	if !user.Roles.Has(models.RoleAdmin) && record.CollectorID != user.Username {
		return echo.NewHTTPError(http.StatusUnauthorized, service.ErrInsufficientPermissions.Error())
	}

	var req struct {
		Amount *float64 `json:"amount"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
	}
	if req.Amount != nil {
		record.Amount = *req.Amount
	}
	record.DateUpdated = time.Now().UTC()

	if err := h.Repo.UpdateTaxRecord(record); err != nil {
		return HTTPError(err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "tax_events", record.HouseID, map[string]interface{}{
		"type":   "tax_record_updated",
		"record": record,
	}); err != nil {
		c.Logger().Errorf("kafka publish error: %v", err)
	}

	return c.JSON(http.StatusOK, record)
}
