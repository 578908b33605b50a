package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"plantillas-system/internal/dto"
	"plantillas-system/internal/services"
	apperrors "plantillas-system/pkg/errors"
	"plantillas-system/pkg/middleware"
	"plantillas-system/pkg/utils"
)

type PlantillaController struct {
	plantillaService services.PlantillaServiceInterface
	logger           *zap.Logger
}

func NewPlantillaController(plantillaService services.PlantillaServiceInterface, logger *zap.Logger) *PlantillaController {
	return &PlantillaController{plantillaService: plantillaService, logger: logger}
}

var actionMessages = map[services.Action]string{
	services.ActionRegister:     "Plantilla registrada",
	services.ActionSchedule:     "Plantilla programada",
	services.ActionManufactured: "Plantilla fabricada",
	services.ActionReady:        "Plantilla lista",
	services.ActionUpdate:       "Plantilla actualizada",
}

// Process handles POST /api/plantillas.
func (c *PlantillaController) Process(ctx echo.Context) error {
	logger := middleware.LoggerFrom(ctx, c.logger)

	var body dto.PlantillaActionDTO
	sent, err := decodeBody(ctx, &body)
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	body.Sent = sent

	if err := ctx.Validate(&body); err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}

	res, err := c.plantillaService.Process(ctx.Request().Context(), body)
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	return utils.SuccessResponse(ctx, toResultDTO(res), actionMessages[res.Action], status)
}

// Patch handles PATCH /api/plantillas/:id. Only allow-listed fields are accepted.
func (c *PlantillaController) Patch(ctx echo.Context) error {
	logger := middleware.LoggerFrom(ctx, c.logger)

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "ID de plantilla inválido", err,
				map[string]interface{}{"param": ctx.Param("id")}),
			logger,
		)
	}

	var body dto.PatchPlantillaDTO
	sent, err := decodeBody(ctx, &body)
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	body.Sent = sent

	if unknown := body.UnknownFields(); len(unknown) > 0 {
		return utils.ErrorResponse(ctx,
			apperrors.NewInvalidInputError("campos no permitidos: %s", strings.Join(unknown, ", ")),
			logger,
		)
	}
	if err := ctx.Validate(&body); err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}

	reg, err := c.plantillaService.PatchByID(ctx.Request().Context(), id, body.ToPatch())
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, reg, "Plantilla actualizada", http.StatusOK)
}

func (c *PlantillaController) GetTallas(ctx echo.Context) error {
	logger := middleware.LoggerFrom(ctx, c.logger)

	numero, err := ticketParam(ctx, "ticketId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}

	rows, err := c.plantillaService.GetTallas(ctx.Request().Context(), numero)
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, rows, "", http.StatusOK)
}

// ListHuerfanas handles GET /api/plantillas/huerfanas.
func (c *PlantillaController) ListHuerfanas(ctx echo.Context) error {
	logger := middleware.LoggerFrom(ctx, c.logger)

	rows, err := c.plantillaService.ListHuerfanas(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, logger)
	}
	return utils.SuccessResponse(ctx, rows, "", http.StatusOK)
}

// decodeBody reads the JSON body into dst and returns the keys the client sent.
func decodeBody(ctx echo.Context, dst interface{}) (map[string]bool, error) {
	raw, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "No se pudo leer el cuerpo de la solicitud", err, nil)
	}
	sent, err := utils.SentFields(raw)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "Cuerpo de la solicitud inválido", err, nil)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, dst); err != nil {
			return nil, apperrors.NewHttpError(http.StatusBadRequest, "Cuerpo de la solicitud inválido", err, nil)
		}
	}
	return sent, nil
}
