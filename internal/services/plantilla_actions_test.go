package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"plantillas-system/internal/entities"
	"plantillas-system/pkg/constants"
	apperrors "plantillas-system/pkg/errors"
)

func TestResolveAction(t *testing.T) {
	cases := []struct {
		name    string
		in      ActionInput
		want    Action
		wantErr error
	}{
		{"registrar sin activa", ActionInput{Accion: "registrar", Tipo: "mixta"}, ActionRegister, nil},
		{"registrar sin tipo", ActionInput{Accion: "registrar"}, ActionRegister, nil},
		{"registrar con activa actualiza", ActionInput{HasActive: true, Accion: "registrar", Tipo: "fabricada"}, ActionUpdate, nil},
		{"programar sin activa", ActionInput{Accion: "programar"}, ActionInvalid, apperrors.ErrNotFound},
		{"fabricada sin activa", ActionInput{Accion: "fabricada"}, ActionInvalid, apperrors.ErrNotFound},
		{"lista sin activa", ActionInput{Accion: "lista"}, ActionInvalid, apperrors.ErrNotFound},
		{"programar", ActionInput{HasActive: true, Accion: "programar"}, ActionSchedule, nil},
		{"fabricada", ActionInput{HasActive: true, Accion: "fabricada"}, ActionManufactured, nil},
		{"lista", ActionInput{HasActive: true, Accion: "lista"}, ActionReady, nil},
		{"accion desconocida", ActionInput{HasActive: true, Accion: "borrar"}, ActionInvalid, apperrors.ErrInvalidAction},
		{"inferir registro", ActionInput{Tipo: "comprada"}, ActionRegister, nil},
		{"inferir programacion", ActionInput{HasActive: true, NumeroPrograma: "25101501"}, ActionSchedule, nil},
		{"inferir actualizacion", ActionInput{HasActive: true, Tipo: "mixta"}, ActionUpdate, nil},
		{"nada que hacer", ActionInput{}, ActionInvalid, apperrors.ErrInvalidAction},
		{"numero sin activa", ActionInput{NumeroPrograma: "25101501"}, ActionInvalid, apperrors.ErrInvalidAction},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveAction(tt.in)
			assert.Equal(t, tt.want, got)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckTransition(t *testing.T) {
	cases := []struct {
		tipo, estado string
		action       Action
		ok           bool
	}{
		{constants.TipoFabricada, constants.EstadoPendiente, ActionSchedule, true},
		{constants.TipoFabricada, constants.EstadoProgramada, ActionSchedule, true},
		{constants.TipoFabricada, constants.EstadoCompletada, ActionSchedule, false},
		{constants.TipoFabricada, constants.EstadoPendiente, ActionManufactured, false},
		{constants.TipoFabricada, constants.EstadoProgramada, ActionManufactured, true},
		{constants.TipoFabricada, constants.EstadoLista, ActionSchedule, false},
		{constants.TipoComprada, constants.EstadoRecibida, ActionSchedule, false},
		{constants.TipoComprada, constants.EstadoRecibida, ActionManufactured, false},
		{constants.TipoComprada, constants.EstadoRecibida, ActionReady, true},
		{constants.TipoMixta, constants.EstadoPendiente, ActionManufactured, true},
		{constants.TipoMixta, constants.EstadoParcial, ActionSchedule, true},
		{constants.TipoMixta, constants.EstadoLista, ActionManufactured, false},
		{constants.TipoMixta, constants.EstadoLista, ActionUpdate, true},
	}
	for _, tt := range cases {
		err := CheckTransition(entities.PlantillaRegistro{TipoPlantilla: tt.tipo, Estado: tt.estado}, tt.action)
		if tt.ok {
			assert.NoError(t, err, "%s %s %s", tt.tipo, tt.estado, tt.action)
		} else {
			assert.ErrorIs(t, err, apperrors.ErrInvalidAction, "%s %s %s", tt.tipo, tt.estado, tt.action)
		}
	}
}

func TestComputeMixedState(t *testing.T) {
	row := func(tipo, estado string) entities.TallaDetalle {
		return entities.TallaDetalle{Tipo: tipo, Estado: estado}
	}
	cases := []struct {
		name string
		rows []entities.TallaDetalle
		want string
	}{
		{"sin filas", nil, constants.EstadoPendiente},
		{"todo pendiente", []entities.TallaDetalle{
			row("fabricada", "pendiente"), row("fabricada", "pendiente"),
		}, constants.EstadoPendiente},
		{"fabricadas pendientes y compradas recibidas", []entities.TallaDetalle{
			row("fabricada", "pendiente"), row("comprada", "recibida"),
		}, constants.EstadoParcial},
		{"fabricadas completadas", []entities.TallaDetalle{
			row("fabricada", "completada"), row("comprada", "recibida"),
		}, constants.EstadoParcial},
		{"solo compradas", []entities.TallaDetalle{
			row("comprada", "recibida"),
		}, constants.EstadoLista},
		{"todo listo", []entities.TallaDetalle{
			row("fabricada", "lista"), row("comprada", "lista"),
		}, constants.EstadoLista},
	}
	for _, tt := range cases {
		assert.Equal(t, tt.want, ComputeMixedState(tt.rows), tt.name)
	}
}

func TestGenerateNumeroPrograma(t *testing.T) {
	now := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "25030705", GenerateNumeroPrograma(now, func(int) int { return 5 }))
	assert.Equal(t, "25030799", GenerateNumeroPrograma(now, func(n int) int { return n - 1 }))
	assert.Len(t, GenerateNumeroPrograma(now, func(int) int { return 0 }), 8)
}
