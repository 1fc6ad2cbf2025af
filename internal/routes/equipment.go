package routes

import (
	"github.com/labstack/echo/v4"

	"trackhub/internal/authz"
	"trackhub/internal/controllers"
)

func registerEquipmentRoutes(api *echo.Group, table *authz.RouteTable, ctrl *controllers.EquipmentController) {
	api.GET("/equipments", ctrl.GetAll)
	table.Bind("GET", "/api/equipments", "equipments:list", authz.Rule{})

	api.GET("/equipments/export", ctrl.Export)
	table.Bind("GET", "/api/equipments/export", "equipments:export", authz.Rule{})

	api.GET("/equipments/:id", ctrl.GetByID)
	table.Bind("GET", "/api/equipments/:id", "equipments:get", authz.Rule{})

	api.POST("/equipments", ctrl.Create)
	table.Bind("POST", "/api/equipments", "equipments:create", authz.Rule{})

	api.PUT("/equipments/:id", ctrl.Update)
	table.Bind("PUT", "/api/equipments/:id", "equipments:update", authz.Rule{})

	// Deleting wipes the intervention history as well, so only admins.
	api.DELETE("/equipments/:id", ctrl.Delete)
	table.Bind("DELETE", "/api/equipments/:id", "equipments:delete", authz.Rule{AdminOnly: true})
}
