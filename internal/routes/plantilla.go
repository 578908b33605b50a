package routes

import (
	"github.com/labstack/echo/v4"

	"plantillas-system/internal/controllers"
)

func runPlantillaRouter(api *echo.Group, ctrl *controllers.PlantillaController) {
	plantillas := api.Group("/plantillas")

	plantillas.POST("", ctrl.Process)
	plantillas.GET("/huerfanas", ctrl.ListHuerfanas)
	plantillas.GET("/:ticketId/tallas", ctrl.GetTallas)
	plantillas.PATCH("/:id", ctrl.Patch)
}
