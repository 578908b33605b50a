package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"plantillas-system/internal/dto"
	"plantillas-system/internal/services"
	apperrors "plantillas-system/pkg/errors"
	"plantillas-system/pkg/middleware"
	"plantillas-system/pkg/utils"
)

type TicketController struct {
	ticketService    services.TicketServiceInterface
	plantillaService services.PlantillaServiceInterface
	logger           *zap.Logger
}

func NewTicketController(
	ticketService services.TicketServiceInterface,
	plantillaService services.PlantillaServiceInterface,
	logger *zap.Logger,
) *TicketController {
	return &TicketController{
		ticketService:    ticketService,
		plantillaService: plantillaService,
		logger:           logger,
	}
}

func (c *TicketController) GetTickets(ctx echo.Context) error {
	logger := middleware.LoggerFrom(ctx, c.logger)

	views, meta, err := c.ticketService.ListTickets(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessWithMeta(ctx, views, meta, "")
}

func (c *TicketController) GetTicket(ctx echo.Context) error {
	logger := middleware.LoggerFrom(ctx, c.logger)

	numero, err := ticketParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}

	detail, err := c.ticketService.GetTicket(ctx.Request().Context(), numero)
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, detail, "", http.StatusOK)
}

func (c *TicketController) Refresh(ctx echo.Context) error {
	logger := middleware.LoggerFrom(ctx, c.logger)

	meta, err := c.ticketService.Refresh(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, meta, "Tickets actualizados", http.StatusOK)
}

// Programar handles PUT /api/tickets/:id/programar. The body is optional.
func (c *TicketController) Programar(ctx echo.Context) error {
	logger := middleware.LoggerFrom(ctx, c.logger)

	numero, err := ticketParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}

	var body dto.PlantillaActionDTO
	if ctx.Request().ContentLength != 0 {
		if err := ctx.Bind(&body); err != nil {
			return utils.ErrorResponse(ctx,
				apperrors.NewHttpError(http.StatusBadRequest, "Cuerpo de la solicitud inválido", err, nil),
				logger,
			)
		}
	}
	in, err := services.ScheduleInputFrom(body)
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}

	res, err := c.plantillaService.Schedule(ctx.Request().Context(), numero, in)
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, toResultDTO(res), "Plantilla programada", http.StatusOK)
}

func (c *TicketController) Fabricada(ctx echo.Context) error {
	logger := middleware.LoggerFrom(ctx, c.logger)

	numero, err := ticketParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	res, err := c.plantillaService.MarkManufactured(ctx.Request().Context(), numero)
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, toResultDTO(res), "Plantilla fabricada", http.StatusOK)
}

func (c *TicketController) Lista(ctx echo.Context) error {
	logger := middleware.LoggerFrom(ctx, c.logger)

	numero, err := ticketParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	res, err := c.plantillaService.MarkReady(ctx.Request().Context(), numero)
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, toResultDTO(res), "Plantilla lista", http.StatusOK)
}

func ticketParam(ctx echo.Context, name string) (int, error) {
	raw := ctx.Param(name)
	numero, err := strconv.Atoi(raw)
	if err != nil || numero <= 0 {
		return 0, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Número de ticket inválido",
			err,
			map[string]interface{}{"param": raw},
		)
	}
	return numero, nil
}

func toResultDTO(res *services.ProcessResult) dto.PlantillaResultDTO {
	return dto.PlantillaResultDTO{
		Plantilla:    res.Plantilla,
		Programacion: res.Programacion,
		Tallas:       res.Tallas,
	}
}
