package routes

import (
	"github.com/labstack/echo/v4"

	"trackhub/internal/authz"
	"trackhub/internal/controllers"
)

func registerUserRoutes(api *echo.Group, table *authz.RouteTable, ctrl *controllers.UserController) {
	api.GET("/users", ctrl.GetAll)
	table.Bind("GET", "/api/users", "users:list", authz.Rule{AdminOnly: true})

	api.GET("/users/technicians", ctrl.GetTechnicians)
	table.Bind("GET", "/api/users/technicians", "users:technicians", authz.Rule{})

	api.GET("/users/:id", ctrl.GetByID)
	table.Bind("GET", "/api/users/:id", "users:get", authz.Rule{SelfOrAdmin: true})

	api.POST("/users", ctrl.Create)
	table.Bind("POST", "/api/users", "users:create", authz.Rule{AdminOnly: true})

	api.PUT("/users/:id", ctrl.Update)
	table.Bind("PUT", "/api/users/:id", "users:update", authz.Rule{SelfOrAdmin: true})

	api.DELETE("/users/:id", ctrl.Delete)
	table.Bind("DELETE", "/api/users/:id", "users:delete", authz.Rule{AdminOnly: true})
}
