package controllers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"plantillas-system/internal/dto"
	"plantillas-system/internal/entities"
	"plantillas-system/internal/services"
	"plantillas-system/pkg/customvalidator"
	apperrors "plantillas-system/pkg/errors"
	"plantillas-system/pkg/utils"
)

type stubPlantillaService struct {
	processed dto.PlantillaActionDTO
	scheduled services.ScheduleInput
	patched   entities.PlantillaPatch
	result    *services.ProcessResult
	err       error
}

func (s *stubPlantillaService) Process(_ context.Context, d dto.PlantillaActionDTO) (*services.ProcessResult, error) {
	s.processed = d
	return s.result, s.err
}

func (s *stubPlantillaService) Schedule(_ context.Context, _ int, in services.ScheduleInput) (*services.ProcessResult, error) {
	s.scheduled = in
	return s.result, s.err
}

func (s *stubPlantillaService) MarkManufactured(context.Context, int) (*services.ProcessResult, error) {
	return s.result, s.err
}

func (s *stubPlantillaService) MarkReady(context.Context, int) (*services.ProcessResult, error) {
	return s.result, s.err
}

func (s *stubPlantillaService) PatchByID(_ context.Context, id uint64, patch entities.PlantillaPatch) (*entities.PlantillaRegistro, error) {
	s.patched = patch
	if s.err != nil {
		return nil, s.err
	}
	return &entities.PlantillaRegistro{ID: id}, nil
}

func (s *stubPlantillaService) GetTallas(context.Context, int) ([]entities.TallaDetalle, error) {
	return []entities.TallaDetalle{{Talla: "T36", Cantidad: 2}}, s.err
}

func (s *stubPlantillaService) ListHuerfanas(context.Context) ([]entities.PlantillaRegistro, error) {
	return nil, s.err
}

type stubTicketService struct {
	views []dto.TicketViewDTO
	err   error
}

func (s *stubTicketService) ListTickets(context.Context) ([]dto.TicketViewDTO, dto.TicketsMetaDTO, error) {
	return s.views, dto.TicketsMetaDTO{Total: len(s.views)}, s.err
}

func (s *stubTicketService) GetTicket(_ context.Context, numero int) (*dto.TicketDetailDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.TicketDetailDTO{TicketViewDTO: dto.TicketViewDTO{Ticket: entities.Ticket{Numero: numero}}}, nil
}

func (s *stubTicketService) Refresh(context.Context) (dto.TicketsMetaDTO, error) {
	return dto.TicketsMetaDTO{Total: len(s.views)}, s.err
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	v := validator.New()
	require.NoError(t, customvalidator.RegisterCustomValidations(v))
	e.Validator = utils.NewValidator(v)
	return e
}

func serve(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func registerPlantillaRoutes(e *echo.Echo, svc services.PlantillaServiceInterface) {
	ctrl := NewPlantillaController(svc, zap.NewNop())
	e.POST("/api/plantillas", ctrl.Process)
	e.GET("/api/plantillas/huerfanas", ctrl.ListHuerfanas)
	e.GET("/api/plantillas/:ticketId/tallas", ctrl.GetTallas)
	e.PATCH("/api/plantillas/:id", ctrl.Patch)
}

var errUnavailable = apperrors.StoreError("plantillas.find", context.DeadlineExceeded)
