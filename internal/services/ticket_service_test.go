package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"plantillas-system/internal/dto"
	"plantillas-system/internal/integrations/mock"
	"plantillas-system/pkg/constants"
	apperrors "plantillas-system/pkg/errors"
)

func TestParseHormaHeel(t *testing.T) {
	cases := []struct {
		in         string
		mold, heel interface{}
	}{
		{"PADE/14793 4.5", "PADE/14793", "4.5"},
		{"INCA/E393", "INCA/E393", nil},
		{"", nil, nil},
		{"   ", nil, nil},
		{"SALMA 41035 2.5", "SALMA 41035", "2.5"},
		{"  INCA/E393   4.5 ", "INCA/E393", "4.5"},
	}
	for _, tt := range cases {
		mold, heel := ParseHormaHeel(tt.in)
		assertOptional(t, tt.mold, mold, "mold of %q", tt.in)
		assertOptional(t, tt.heel, heel, "heel of %q", tt.in)
	}
}

func assertOptional(t *testing.T, want interface{}, got *string, msgAndArgs ...interface{}) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got, msgAndArgs...)
		return
	}
	if assert.NotNil(t, got, msgAndArgs...) {
		assert.Equal(t, want, *got, msgAndArgs...)
	}
}

type mergeFixture struct {
	engine *engineFixture
	svc    *TicketService
}

func newMergeFixture(t *testing.T) *mergeFixture {
	t.Helper()
	engine := newEngine(t)
	cache := &fakeTicketCache{tickets: mock.FixtureTickets(), refreshedAt: engine.now.Add(-time.Minute)}
	svc := NewTicketService(cache, engine.plantillas, engine.tallas, engine.progs, zap.NewNop())
	svc.now = func() time.Time { return engine.now }
	return &mergeFixture{engine: engine, svc: svc}
}

func viewByTicket(views []dto.TicketViewDTO, numero int) dto.TicketViewDTO {
	for _, v := range views {
		if v.Numero == numero {
			return v
		}
	}
	return dto.TicketViewDTO{}
}

func TestTicketService_ListMergesRegistrations(t *testing.T) {
	f := newMergeFixture(t)
	ctx := context.Background()

	_, err := f.engine.svc.Process(ctx, body(t, `{"ticket_id": 5932, "tipo": "fabricada", "personal_asignado": "Marta"}`))
	require.NoError(t, err)
	_, err = f.engine.svc.Process(ctx, body(t, `{"ticket_id": 5932, "accion": "programar", "numero_programa": "25101501"}`))
	require.NoError(t, err)

	views, meta, err := f.svc.ListTickets(ctx)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, f.engine.now, meta.Timestamp)
	assert.Equal(t, f.engine.now.Add(-time.Minute), meta.ActualizadoEn)

	v := viewByTicket(views, 5932)
	assert.True(t, v.TienePlantilla)
	assert.Equal(t, constants.EstadoProgramada, v.EstadoPlantilla)
	require.NotNil(t, v.Horma)
	assert.Equal(t, "PADE/14793", *v.Horma)
	assert.Equal(t, "4.5", *v.Heel)
	assert.Equal(t, v.Heel, v.Tacon)
	require.NotNil(t, v.NumeroPrograma)
	assert.Equal(t, "25101501", *v.NumeroPrograma)
	assert.Equal(t, "Marta", v.Plantilla.PersonalAsignado.String)
	assert.Equal(t, "PLANT PADE 14793 ALT 4.5 SHAN DOBLE BOTA", v.PlantArmado)

	empty := viewByTicket(views, 6222)
	assert.False(t, empty.TienePlantilla)
	assert.Equal(t, constants.EstadoSinPlantilla, empty.EstadoPlantilla)
	assert.Equal(t, constants.EstadoSinPlantilla, empty.Plantilla.Estado)
	assert.Nil(t, empty.Plantilla.ID)
	assert.Nil(t, empty.NumeroPrograma)
}

func TestTicketService_MixedQuantitiesRoundTrip(t *testing.T) {
	f := newMergeFixture(t)
	ctx := context.Background()

	_, err := f.engine.svc.Process(ctx, body(t, `{
		"ticket_id": 6638,
		"tipo_plantilla": "mixta",
		"cantidades_fabricadas": {"T37": 2, "T35": 1},
		"cantidades_compradas": {"T38": 2, "T41": 1}
	}`))
	require.NoError(t, err)

	views, _, err := f.svc.ListTickets(ctx)
	require.NoError(t, err)
	v := viewByTicket(views, 6638)
	assert.Equal(t, map[string]int{"T37": 2, "T35": 1}, v.Plantilla.CantidadesFabricadas)
	assert.Equal(t, map[string]int{"T38": 2, "T41": 1}, v.Plantilla.CantidadesCompradas)

	detail, err := f.svc.GetTicket(ctx, 6638)
	require.NoError(t, err)
	assert.Equal(t, v.Plantilla.CantidadesFabricadas, detail.Plantilla.CantidadesFabricadas)
	assert.Len(t, detail.Tallas, 4)
}

func TestTicketService_GetTicket(t *testing.T) {
	f := newMergeFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetTicket(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	detail, err := f.svc.GetTicket(ctx, 6222)
	require.NoError(t, err)
	assert.Nil(t, detail.Registro)
	assert.Empty(t, detail.Programaciones)
	assert.Equal(t, constants.EstadoSinPlantilla, detail.EstadoPlantilla)

	_, err = f.engine.svc.Process(ctx, body(t, `{"ticket_id": 6222, "tipo": "fabricada"}`))
	require.NoError(t, err)
	for _, numero := range []string{"A1", "A2"} {
		_, err = f.engine.svc.Schedule(ctx, 6222, ScheduleInput{NumeroPrograma: numero})
		require.NoError(t, err)
	}

	detail, err = f.svc.GetTicket(ctx, 6222)
	require.NoError(t, err)
	require.NotNil(t, detail.Registro)
	require.Len(t, detail.Programaciones, 2)
	assert.Equal(t, "A2", detail.Programaciones[0].NumeroProgramacion, "newest first")
	assert.Equal(t, "A2", *detail.NumeroPrograma)
	assert.Equal(t, "SALMA/41035", *detail.Horma)
}

func TestTicketService_StoreFailureFailsList(t *testing.T) {
	f := newMergeFixture(t)
	f.engine.plantillas.err = apperrors.StoreError("listar plantillas activas", assert.AnError)

	_, _, err := f.svc.ListTickets(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrStoreFailure)
}
