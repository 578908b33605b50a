package services

import (
	"fmt"
	"time"

	"plantillas-system/internal/entities"
	"plantillas-system/pkg/constants"
	apperrors "plantillas-system/pkg/errors"
)

// Action is the lifecycle operation a POST /api/plantillas request resolves to.
type Action int

const (
	ActionInvalid Action = iota
	ActionRegister
	ActionSchedule
	ActionManufactured
	ActionReady
	ActionUpdate
)

func (a Action) String() string {
	switch a {
	case ActionRegister:
		return constants.AccionRegistrar
	case ActionSchedule:
		return constants.AccionProgramar
	case ActionManufactured:
		return constants.AccionFabricada
	case ActionReady:
		return constants.AccionLista
	case ActionUpdate:
		return "actualizar"
	default:
		return "invalida"
	}
}

type ActionInput struct {
	HasActive      bool
	Accion         string
	Tipo           string
	NumeroPrograma string
}

// ResolveAction is the decision table of the fulfillment engine.
//
//	accion     | active | result
//	registrar  | no     | Register
//	registrar  | yes    | Update (never a second registration)
//	programar  | no     | NotFound
//	fabricada  | no     | NotFound
//	lista      | no     | NotFound
//	programar  | yes    | Schedule
//	fabricada  | yes    | Manufactured
//	lista      | yes    | Ready
//	other      | any    | InvalidAction
//	(none)     | no     | Register if tipo given, else InvalidAction
//	(none)     | yes    | Schedule if numero_programa given, else Update
func ResolveAction(in ActionInput) (Action, error) {
	switch in.Accion {
	case "":
		switch {
		case !in.HasActive && in.Tipo != "":
			return ActionRegister, nil
		case in.HasActive && in.NumeroPrograma != "":
			return ActionSchedule, nil
		case in.HasActive:
			return ActionUpdate, nil
		default:
			return ActionInvalid, apperrors.ErrInvalidAction
		}
	case constants.AccionRegistrar:
		if in.HasActive {
			return ActionUpdate, nil
		}
		return ActionRegister, nil
	case constants.AccionProgramar, constants.AccionFabricada, constants.AccionLista:
		if !in.HasActive {
			return ActionInvalid, apperrors.ErrNotFound
		}
		return explicitActions[in.Accion], nil
	default:
		return ActionInvalid, apperrors.ErrInvalidAction
	}
}

var explicitActions = map[string]Action{
	constants.AccionProgramar: ActionSchedule,
	constants.AccionFabricada: ActionManufactured,
	constants.AccionLista:     ActionReady,
}

// allowedFrom lists the registration states each guarded action may start from.
var allowedFrom = map[string]map[Action][]string{
	constants.TipoFabricada: {
		ActionSchedule:     {constants.EstadoPendiente, constants.EstadoProgramada},
		ActionManufactured: {constants.EstadoProgramada},
	},
	constants.TipoMixta: {
		ActionSchedule:     {constants.EstadoPendiente, constants.EstadoParcial},
		ActionManufactured: {constants.EstadoPendiente, constants.EstadoParcial},
	},
}

// CheckTransition rejects lifecycle actions that do not apply to the
// registration's type and current state. Ready and Update are always allowed.
func CheckTransition(reg entities.PlantillaRegistro, action Action) error {
	if action != ActionSchedule && action != ActionManufactured {
		return nil
	}
	byAction, ok := allowedFrom[reg.TipoPlantilla]
	if !ok {
		return fmt.Errorf("%w: %s no aplica a plantillas %s", apperrors.ErrInvalidAction, action, reg.TipoPlantilla)
	}
	for _, estado := range byAction[action] {
		if reg.Estado == estado {
			return nil
		}
	}
	return fmt.Errorf("%w: %s no aplica en estado %s", apperrors.ErrInvalidAction, action, reg.Estado)
}

// ComputeMixedState aggregates the size rows of a mixed registration.
func ComputeMixedState(rows []entities.TallaDetalle) string {
	if len(rows) == 0 {
		return constants.EstadoPendiente
	}
	allDone, allPending := true, true
	for _, r := range rows {
		if r.Estado != constants.EstadoLista && r.Estado != constants.EstadoRecibida {
			allDone = false
		}
		if r.Estado != constants.EstadoPendiente {
			allPending = false
		}
	}
	switch {
	case allDone:
		return constants.EstadoLista
	case allPending:
		return constants.EstadoPendiente
	default:
		return constants.EstadoParcial
	}
}

// GenerateNumeroPrograma builds yyMMdd followed by a two-digit random suffix.
func GenerateNumeroPrograma(now time.Time, intn func(n int) int) string {
	return fmt.Sprintf("%s%02d", now.Format("060102"), intn(100))
}
