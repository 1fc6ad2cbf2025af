package routes

import (
	"github.com/labstack/echo/v4"

	"trackhub/internal/authz"
	"trackhub/internal/controllers"
)

func registerAuthRoutes(api *echo.Group, table *authz.RouteTable, ctrl *controllers.AuthController) {
	api.POST("/login", ctrl.Login)
	table.Bind("POST", "/api/login", "auth:login", authz.Rule{Public: true})

	api.POST("/logout", ctrl.Logout)
	table.Bind("POST", "/api/logout", "auth:logout", authz.Rule{})

	// Answers for anonymous callers too; the gate carries a zero
	// requester through instead of rejecting.
	api.GET("/users/me", ctrl.Me)
	table.Bind("GET", "/api/users/me", "auth:me", authz.Rule{Public: true})
}
