package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"trackhub/internal/services"
	"trackhub/pkg/utils"
)

type HomeController struct {
	service services.HomeServiceInterface
	logger  *zap.Logger
}

func NewHomeController(service services.HomeServiceInterface, logger *zap.Logger) *HomeController {
	return &HomeController{service: service, logger: logger}
}

func (c *HomeController) DashboardStats(ctx echo.Context) error {
	requester := utils.RequesterFromCtx(ctx.Request().Context())
	stats, err := c.service.DashboardStats(ctx.Request().Context(), requester)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, stats, "dashboard stats", http.StatusOK)
}

func (c *HomeController) TechnicianActivity(ctx echo.Context) error {
	activity, err := c.service.TechnicianActivity(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, activity, "technician activity", http.StatusOK)
}

func (c *HomeController) RecentInterventions(ctx echo.Context) error {
	recent, err := c.service.RecentInterventions(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, recent, "recent interventions", http.StatusOK)
}

func (c *HomeController) PriorityEquipments(ctx echo.Context) error {
	priority, err := c.service.PriorityEquipments(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, priority, "priority equipment", http.StatusOK)
}
