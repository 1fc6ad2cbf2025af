package routes

import (
	"github.com/labstack/echo/v4"

	"trackhub/internal/authz"
	"trackhub/internal/controllers"
)

func registerHomeRoutes(api *echo.Group, table *authz.RouteTable, ctrl *controllers.HomeController) {
	api.GET("/home/stats", ctrl.DashboardStats)
	table.Bind("GET", "/api/home/stats", "home:stats", authz.Rule{AdminOnly: true})

	api.GET("/home/activity", ctrl.TechnicianActivity)
	table.Bind("GET", "/api/home/activity", "home:activity", authz.Rule{AdminOnly: true})

	api.GET("/home/recent", ctrl.RecentInterventions)
	table.Bind("GET", "/api/home/recent", "home:recent", authz.Rule{})

	api.GET("/home/priority", ctrl.PriorityEquipments)
	table.Bind("GET", "/api/home/priority", "home:priority", authz.Rule{})
}
