package routes

import (
	"github.com/labstack/echo/v4"

	"plantillas-system/internal/controllers"
)

func runCatalogRouter(api *echo.Group, ctrl *controllers.CatalogController) {
	api.GET("/operarios", ctrl.GetOperarios)
	api.GET("/proveedores", ctrl.GetProveedores)
}
