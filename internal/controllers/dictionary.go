package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"trackhub/internal/services"
	"trackhub/pkg/utils"
)

// DictionaryController serves one reference table; the list name is
// only used in response messages.
type DictionaryController struct {
	service services.DictionaryServiceInterface
	name    string
	logger  *zap.Logger
}

func NewDictionaryController(service services.DictionaryServiceInterface, name string, logger *zap.Logger) *DictionaryController {
	return &DictionaryController{service: service, name: name, logger: logger}
}

func (c *DictionaryController) GetAll(ctx echo.Context) error {
	entries, err := c.service.GetAll(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, entries, c.name+" list", http.StatusOK)
}

func (c *DictionaryController) GetByID(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	entry, err := c.service.Find(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, entry, c.name+" found", http.StatusOK)
}
