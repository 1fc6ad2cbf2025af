package routes

import (
	"github.com/labstack/echo/v4"

	"trackhub/internal/authz"
	"trackhub/internal/controllers"
)

func registerLocationRoutes(api *echo.Group, table *authz.RouteTable, ctrl *controllers.LocationController) {
	api.GET("/locations", ctrl.GetAll)
	table.Bind("GET", "/api/locations", "locations:list", authz.Rule{})

	api.GET("/locations/:id", ctrl.GetByID)
	table.Bind("GET", "/api/locations/:id", "locations:get", authz.Rule{})

	api.POST("/locations", ctrl.Create)
	table.Bind("POST", "/api/locations", "locations:create", authz.Rule{})

	api.PUT("/locations/:id", ctrl.Update)
	table.Bind("PUT", "/api/locations/:id", "locations:update", authz.Rule{})

	api.DELETE("/locations/:id", ctrl.Delete)
	table.Bind("DELETE", "/api/locations/:id", "locations:delete", authz.Rule{AdminOnly: true})
}
