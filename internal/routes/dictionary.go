package routes

import (
	"github.com/labstack/echo/v4"

	"trackhub/internal/authz"
	"trackhub/internal/controllers"
)

func registerDictionaryRoutes(api *echo.Group, table *authz.RouteTable, types, statuses, outcomes *controllers.DictionaryController) {
	api.GET("/equipment-types", types.GetAll)
	table.Bind("GET", "/api/equipment-types", "equipment-types:list", authz.Rule{})
	api.GET("/equipment-types/:id", types.GetByID)
	table.Bind("GET", "/api/equipment-types/:id", "equipment-types:get", authz.Rule{})

	api.GET("/equipment-statuses", statuses.GetAll)
	table.Bind("GET", "/api/equipment-statuses", "equipment-statuses:list", authz.Rule{})
	api.GET("/equipment-statuses/:id", statuses.GetByID)
	table.Bind("GET", "/api/equipment-statuses/:id", "equipment-statuses:get", authz.Rule{})

	api.GET("/intervention-outcomes", outcomes.GetAll)
	table.Bind("GET", "/api/intervention-outcomes", "intervention-outcomes:list", authz.Rule{})
	api.GET("/intervention-outcomes/:id", outcomes.GetByID)
	table.Bind("GET", "/api/intervention-outcomes/:id", "intervention-outcomes:get", authz.Rule{})
}
