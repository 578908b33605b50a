package routes

import (
	"github.com/labstack/echo/v4"

	"plantillas-system/internal/controllers"
)

func runTicketRouter(api *echo.Group, ctrl *controllers.TicketController) {
	api.GET("/tickets", ctrl.GetTickets)
	api.GET("/tickets/:id", ctrl.GetTicket)
	api.POST("/refresh", ctrl.Refresh)

	// Legacy per-ticket actions.
	api.PUT("/tickets/:id/programar", ctrl.Programar)
	api.PUT("/tickets/:id/fabricada", ctrl.Fabricada)
	api.PUT("/tickets/:id/lista", ctrl.Lista)
}
