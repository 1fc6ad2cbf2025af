package routes

import (
	"github.com/labstack/echo/v4"

	"trackhub/internal/authz"
	"trackhub/internal/controllers"
)

func registerInterventionRoutes(api *echo.Group, table *authz.RouteTable, ctrl *controllers.InterventionController) {
	api.GET("/interventions", ctrl.GetAll)
	table.Bind("GET", "/api/interventions", "interventions:list", authz.Rule{})

	api.GET("/interventions/export", ctrl.Export)
	table.Bind("GET", "/api/interventions/export", "interventions:export", authz.Rule{})

	api.GET("/interventions/:id", ctrl.GetByID)
	table.Bind("GET", "/api/interventions/:id", "interventions:get", authz.Rule{})

	api.GET("/equipments/:id/interventions", ctrl.GetByEquipment)
	table.Bind("GET", "/api/equipments/:id/interventions", "interventions:by-equipment", authz.Rule{})

	api.POST("/interventions", ctrl.Create)
	table.Bind("POST", "/api/interventions", "interventions:create", authz.Rule{})

	api.PUT("/interventions/:id", ctrl.Update)
	table.Bind("PUT", "/api/interventions/:id", "interventions:update", authz.Rule{})

	api.DELETE("/interventions/:id", ctrl.Delete)
	table.Bind("DELETE", "/api/interventions/:id", "interventions:delete", authz.Rule{AdminOnly: true})
}
