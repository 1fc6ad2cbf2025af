package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"trackhub/internal/dto"
	"trackhub/internal/services"
	apperrors "trackhub/pkg/errors"
	"trackhub/pkg/utils"
)

type InterventionController struct {
	service       services.InterventionServiceInterface
	exportService services.ExportServiceInterface
	logger        *zap.Logger
}

func NewInterventionController(
	service services.InterventionServiceInterface,
	exportService services.ExportServiceInterface,
	logger *zap.Logger,
) *InterventionController {
	return &InterventionController{service: service, exportService: exportService, logger: logger}
}

func (c *InterventionController) GetAll(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	interventions, total, err := c.service.GetInterventions(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, interventions, "intervention list", http.StatusOK, total)
}

func (c *InterventionController) GetByEquipment(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	interventions, err := c.service.GetByEquipment(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, interventions, "equipment history", http.StatusOK)
}

func (c *InterventionController) GetByID(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	intervention, err := c.service.FindIntervention(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, intervention, "intervention found", http.StatusOK)
}

func (c *InterventionController) Create(ctx echo.Context) error {
	var payload dto.CreateInterventionDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	requester := utils.RequesterFromCtx(ctx.Request().Context())
	intervention, err := c.service.CreateIntervention(ctx.Request().Context(), requester, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, intervention, "intervention created", http.StatusCreated)
}

func (c *InterventionController) Update(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateInterventionDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	intervention, err := c.service.UpdateIntervention(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, intervention, "intervention updated", http.StatusOK)
}

func (c *InterventionController) Delete(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.service.DeleteIntervention(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "intervention deleted", http.StatusOK)
}

func (c *InterventionController) Export(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	workbook, err := c.exportService.InterventionWorkbook(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer workbook.Close()

	filename := fmt.Sprintf("interventions_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().WriteHeader(http.StatusOK)
	return workbook.Write(ctx.Response().Writer)
}
