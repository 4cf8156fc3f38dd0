package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/grampanchayat/tax_collection/internal/handlers"
	authmw "github.com/grampanchayat/tax_collection/internal/middleware/auth"
)

type Deps struct {
	Auth              *authmw.Middleware
	AuthHandler       *handlers.AuthHandler
	UserHandler       *handlers.UserHandler
	HouseHandler      *handlers.HouseHandler
	AssignmentHandler *handlers.AssignmentHandler
	TaxRecordHandler  *handlers.TaxRecordHandler
	SearchHandler     *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.POST("/token", d.AuthHandler.Login)
	e.POST("/token/refresh", d.AuthHandler.Refresh)
	e.POST("/logout", d.AuthHandler.Logout)

	e.POST("/register", d.UserHandler.Register, d.Auth.AdminOnly)

	e.POST("/house", d.HouseHandler.CreateHouses, d.Auth.RequireUser)
	e.GET("/households", d.HouseHandler.GetHouses, d.Auth.RequireUser)
	e.GET("/households/:household_id", d.HouseHandler.GetHousesByNumber, d.Auth.RequireUser)

	e.POST("/assign-collector", d.AssignmentHandler.AssignCollector, d.Auth.AdminOnly)
	e.GET("/assignments/:collector_id", d.AssignmentHandler.GetAssignments, d.Auth.RequireUser)

	e.POST("/recordcollections", d.TaxRecordHandler.RecordCollections, d.Auth.RequireUser)
	e.GET("/gettaxrecords", d.TaxRecordHandler.GetTaxRecords, d.Auth.RequireUser)
	e.GET("/tax-records/:houseNumber", d.TaxRecordHandler.GetTaxRecordsByHouse, d.Auth.RequireUser)
	e.PUT("/tax-record/:recordId", d.TaxRecordHandler.UpdateTaxRecord, d.Auth.RequireUser)

	if d.SearchHandler != nil {
		e.GET("/search", d.SearchHandler.Search, d.Auth.RequireUser)
	}
}
