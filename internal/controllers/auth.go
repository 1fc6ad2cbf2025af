package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"trackhub/internal/dto"
	"trackhub/internal/services"
	apperrors "trackhub/pkg/errors"
	"trackhub/pkg/utils"
)

type AuthController struct {
	service services.AuthServiceInterface
	logger  *zap.Logger
}

func NewAuthController(service services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{service: service, logger: logger}
}

func (c *AuthController) Login(ctx echo.Context) error {
	var payload dto.LoginDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	pair, err := c.service.Login(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, pair, "logged in", http.StatusOK)
}

// Logout acknowledges the request; tokens are stateless, so the client
// discards them.
func (c *AuthController) Logout(ctx echo.Context) error {
	return utils.SuccessResponse(ctx, struct{}{}, "logged out", http.StatusOK)
}

// Me answers for every caller, authenticated or not.
func (c *AuthController) Me(ctx echo.Context) error {
	requester := utils.RequesterFromCtx(ctx.Request().Context())
	who := c.service.Me(ctx.Request().Context(), requester)
	return utils.SuccessResponse(ctx, who, "session state", http.StatusOK)
}
