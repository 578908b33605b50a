package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"plantillas-system/internal/services"
	"plantillas-system/pkg/middleware"
	"plantillas-system/pkg/utils"
)

type CatalogController struct {
	catalogService services.CatalogServiceInterface
	logger         *zap.Logger
}

func NewCatalogController(catalogService services.CatalogServiceInterface, logger *zap.Logger) *CatalogController {
	return &CatalogController{catalogService: catalogService, logger: logger}
}

func (c *CatalogController) GetOperarios(ctx echo.Context) error {
	res, err := c.catalogService.ListOperarios(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, middleware.LoggerFrom(ctx, c.logger))
	}
	return utils.SuccessResponse(ctx, res, "", http.StatusOK)
}

func (c *CatalogController) GetProveedores(ctx echo.Context) error {
	res, err := c.catalogService.ListProveedores(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, middleware.LoggerFrom(ctx, c.logger))
	}
	return utils.SuccessResponse(ctx, res, "", http.StatusOK)
}
