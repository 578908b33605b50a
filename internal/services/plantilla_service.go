package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"plantillas-system/internal/dto"
	"plantillas-system/internal/entities"
	"plantillas-system/internal/events"
	"plantillas-system/internal/repositories"
	"plantillas-system/pkg/constants"
	apperrors "plantillas-system/pkg/errors"
	"plantillas-system/pkg/eventbus"
	"plantillas-system/pkg/utils"
)

// ProcessResult is the outcome of one lifecycle action.
type ProcessResult struct {
	Action       Action
	Created      bool
	Plantilla    *entities.PlantillaRegistro
	Programacion *entities.Programacion
	Tallas       []entities.TallaDetalle
}

type ScheduleInput struct {
	NumeroPrograma string
	Fecha          time.Time // zero means now
	Operario       null.String
}

type PlantillaServiceInterface interface {
	Process(ctx context.Context, d dto.PlantillaActionDTO) (*ProcessResult, error)
	Schedule(ctx context.Context, ticketID int, in ScheduleInput) (*ProcessResult, error)
	MarkManufactured(ctx context.Context, ticketID int) (*ProcessResult, error)
	MarkReady(ctx context.Context, ticketID int) (*ProcessResult, error)
	PatchByID(ctx context.Context, id uint64, patch entities.PlantillaPatch) (*entities.PlantillaRegistro, error)
	GetTallas(ctx context.Context, ticketID int) ([]entities.TallaDetalle, error)
	ListHuerfanas(ctx context.Context) ([]entities.PlantillaRegistro, error)
}

type PlantillaService struct {
	tickets        TicketCacheInterface
	plantillas     repositories.PlantillaRepositoryInterface
	tallas         repositories.TallaDetalleRepositoryInterface
	programaciones repositories.ProgramacionRepositoryInterface
	txManager      repositories.TxManagerInterface
	publisher      eventbus.Publisher
	now            func() time.Time
	intn           func(n int) int
	logger         *zap.Logger
}

func NewPlantillaService(
	tickets TicketCacheInterface,
	plantillas repositories.PlantillaRepositoryInterface,
	tallas repositories.TallaDetalleRepositoryInterface,
	programaciones repositories.ProgramacionRepositoryInterface,
	txManager repositories.TxManagerInterface,
	publisher eventbus.Publisher,
	logger *zap.Logger,
) *PlantillaService {
	return &PlantillaService{
		tickets:        tickets,
		plantillas:     plantillas,
		tallas:         tallas,
		programaciones: programaciones,
		txManager:      txManager,
		publisher:      publisher,
		now:            time.Now,
		intn:           rand.IntN,
		logger:         logger.Named("plantilla_service"),
	}
}

// Process resolves the action of a POST /api/plantillas body and runs it.
func (s *PlantillaService) Process(ctx context.Context, d dto.PlantillaActionDTO) (*ProcessResult, error) {
	ticketID := int(d.TicketID)
	if ticketID == 0 {
		return nil, apperrors.NewInvalidInputError("ticket_id es requerido")
	}

	ticket, err := s.tickets.FindTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	active, err := s.findActive(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	action, err := ResolveAction(ActionInput{
		HasActive:      active != nil,
		Accion:         d.Accion,
		Tipo:           d.ResolvedTipo(),
		NumeroPrograma: d.ResolvedNumeroPrograma(),
	})
	if err != nil {
		s.logger.Info("acción rechazada",
			zap.Int("ticket_id", ticketID),
			zap.String("accion", d.Accion),
			zap.Error(err),
		)
		return nil, err
	}

	switch action {
	case ActionRegister:
		return s.register(ctx, ticket, d)
	case ActionSchedule:
		in, err := ScheduleInputFrom(d)
		if err != nil {
			return nil, err
		}
		return s.schedule(ctx, active, in)
	case ActionManufactured:
		return s.markManufactured(ctx, active)
	case ActionReady:
		return s.markReady(ctx, active)
	case ActionUpdate:
		return s.update(ctx, active, d.UpdatePatch())
	default:
		return nil, apperrors.ErrInvalidAction
	}
}

// Schedule, MarkManufactured and MarkReady serve the per-ticket legacy routes.
func (s *PlantillaService) Schedule(ctx context.Context, ticketID int, in ScheduleInput) (*ProcessResult, error) {
	reg, err := s.requireActive(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	return s.schedule(ctx, reg, in)
}

func (s *PlantillaService) MarkManufactured(ctx context.Context, ticketID int) (*ProcessResult, error) {
	reg, err := s.requireActive(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	return s.markManufactured(ctx, reg)
}

func (s *PlantillaService) MarkReady(ctx context.Context, ticketID int) (*ProcessResult, error) {
	reg, err := s.requireActive(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	return s.markReady(ctx, reg)
}

// PatchByID writes an allow-listed patch straight to a registration, outside
// the state machine.
func (s *PlantillaService) PatchByID(ctx context.Context, id uint64, patch entities.PlantillaPatch) (*entities.PlantillaRegistro, error) {
	if patch.IsEmpty() {
		return nil, apperrors.NewInvalidInputError("no se enviaron campos actualizables")
	}
	updated, err := s.plantillas.Update(ctx, id, patch)
	if err != nil {
		return nil, s.storeFailure("actualizar plantilla", err, zap.Uint64("registro_id", id))
	}
	s.publish(ctx, updated, "patch")
	return updated, nil
}

// GetTallas returns the size rows of the ticket's active registration.
func (s *PlantillaService) GetTallas(ctx context.Context, ticketID int) ([]entities.TallaDetalle, error) {
	reg, err := s.requireActive(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	rows, err := s.tallas.ListByRegistro(ctx, reg.ID)
	if err != nil {
		return nil, s.storeFailure("listar tallas", err, zap.Uint64("registro_id", reg.ID))
	}
	return rows, nil
}

// ListHuerfanas lists active mixed registrations without size rows.
func (s *PlantillaService) ListHuerfanas(ctx context.Context) ([]entities.PlantillaRegistro, error) {
	rows, err := s.plantillas.ListHuerfanas(ctx)
	if err != nil {
		return nil, s.storeFailure("listar plantillas sin tallas", err)
	}
	return rows, nil
}

func (s *PlantillaService) register(ctx context.Context, ticket entities.Ticket, d dto.PlantillaActionDTO) (*ProcessResult, error) {
	tipo := d.ResolvedTipo()
	if tipo == "" {
		tipo = constants.TipoFabricada
	}

	reg := entities.PlantillaRegistro{
		TicketID:         ticket.Numero,
		TipoPlantilla:    tipo,
		Estado:           constants.EstadoPendiente,
		PersonalAsignado: nullIfEmpty(d.PersonalAsignado),
		Proveedor:        nullIfEmpty(d.Proveedor),
		Observaciones:    nullIfEmpty(d.Observaciones),
	}
	if tipo == constants.TipoComprada {
		reg.Estado = constants.EstadoRecibida
	}

	var fabricadas, compradas dto.SizeQuantities
	if tipo == constants.TipoMixta {
		fabricadas, compradas = d.Fabricadas(), d.Compradas()
		if err := validateQuantities(ticket, fabricadas, compradas); err != nil {
			return nil, err
		}
	}

	result := &ProcessResult{Action: ActionRegister, Created: true}
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		created, err := s.plantillas.WithTx(tx).Create(ctx, reg)
		if err != nil {
			return err
		}
		result.Plantilla = created

		if tipo != constants.TipoMixta {
			return nil
		}
		tallas := s.tallas.WithTx(tx)
		if err := tallas.BulkInsert(ctx, sizeRows(created.ID, fabricadas, compradas)); err != nil {
			return err
		}
		rows, err := tallas.ListByRegistro(ctx, created.ID)
		if err != nil {
			return err
		}
		result.Tallas = rows
		return nil
	})
	if err != nil {
		return nil, s.storeFailure("registrar plantilla", err, zap.Int("ticket_id", ticket.Numero))
	}

	s.logger.Info("plantilla registrada",
		zap.Int("ticket_id", ticket.Numero),
		zap.Uint64("registro_id", result.Plantilla.ID),
		zap.String("tipo", tipo),
		zap.String("estado", result.Plantilla.Estado),
	)
	s.publish(ctx, result.Plantilla, constants.AccionRegistrar)
	return result, nil
}

func (s *PlantillaService) schedule(ctx context.Context, reg *entities.PlantillaRegistro, in ScheduleInput) (*ProcessResult, error) {
	if err := CheckTransition(*reg, ActionSchedule); err != nil {
		return nil, err
	}

	now := s.now()
	numero := in.NumeroPrograma
	if numero == "" {
		numero = GenerateNumeroPrograma(now, s.intn)
	}
	fecha := in.Fecha
	if fecha.IsZero() {
		fecha = now
	}
	operario := in.Operario
	if !operario.Valid {
		operario = reg.PersonalAsignado
	}

	result := &ProcessResult{Action: ActionSchedule}
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		prog, err := s.programaciones.WithTx(tx).Create(ctx, entities.Programacion{
			TicketID:            reg.TicketID,
			PlantillaRegistroID: reg.ID,
			NumeroProgramacion:  numero,
			FechaProgramacion:   fecha,
			Operario:            operario,
			Estado:              constants.EstadoProgramada,
		})
		if err != nil {
			return err
		}
		result.Programacion = prog

		estado := constants.EstadoProgramada
		if reg.TipoPlantilla == constants.TipoMixta {
			rows, err := s.advanceFabricadas(ctx, tx, reg.ID, constants.EstadoProgramada)
			if err != nil {
				return err
			}
			result.Tallas = rows
			estado = ComputeMixedState(rows)
		}

		updated, err := s.plantillas.WithTx(tx).Update(ctx, reg.ID, entities.PlantillaPatch{Estado: &estado})
		if err != nil {
			return err
		}
		result.Plantilla = updated
		return nil
	})
	if err != nil {
		return nil, s.storeFailure("programar plantilla", err, zap.Int("ticket_id", reg.TicketID))
	}

	s.logger.Info("plantilla programada",
		zap.Int("ticket_id", reg.TicketID),
		zap.String("numero_programacion", numero),
		zap.String("estado", result.Plantilla.Estado),
	)
	s.publish(ctx, result.Plantilla, constants.AccionProgramar)
	return result, nil
}

func (s *PlantillaService) markManufactured(ctx context.Context, reg *entities.PlantillaRegistro) (*ProcessResult, error) {
	if err := CheckTransition(*reg, ActionManufactured); err != nil {
		return nil, err
	}

	result := &ProcessResult{Action: ActionManufactured}
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var patch entities.PlantillaPatch
		if reg.TipoPlantilla == constants.TipoMixta {
			rows, err := s.advanceFabricadas(ctx, tx, reg.ID, constants.EstadoCompletada)
			if err != nil {
				return err
			}
			result.Tallas = rows
			estado := ComputeMixedState(rows)
			patch.Estado = &estado
		} else {
			estado := constants.EstadoCompletada
			fecha := null.TimeFrom(s.now())
			patch.Estado = &estado
			patch.FechaCompletacionFabricacion = &fecha
		}

		updated, err := s.plantillas.WithTx(tx).Update(ctx, reg.ID, patch)
		if err != nil {
			return err
		}
		result.Plantilla = updated

		// A mixed registration may be manufactured without ever being scheduled.
		latest, err := s.programaciones.WithTx(tx).LatestByRegistro(ctx, reg.ID)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := s.programaciones.WithTx(tx).UpdateEstado(ctx, latest.ID, constants.EstadoCompletada); err != nil {
			return err
		}
		latest.Estado = constants.EstadoCompletada
		result.Programacion = latest
		return nil
	})
	if err != nil {
		return nil, s.storeFailure("marcar plantilla fabricada", err, zap.Int("ticket_id", reg.TicketID))
	}

	s.logger.Info("plantilla fabricada",
		zap.Int("ticket_id", reg.TicketID),
		zap.String("estado", result.Plantilla.Estado),
	)
	s.publish(ctx, result.Plantilla, constants.AccionFabricada)
	return result, nil
}

func (s *PlantillaService) markReady(ctx context.Context, reg *entities.PlantillaRegistro) (*ProcessResult, error) {
	result := &ProcessResult{Action: ActionReady}
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if reg.TipoPlantilla == constants.TipoMixta {
			tallas := s.tallas.WithTx(tx)
			if err := tallas.UpdateAllEstado(ctx, reg.ID, constants.EstadoLista); err != nil {
				return err
			}
			rows, err := tallas.ListByRegistro(ctx, reg.ID)
			if err != nil {
				return err
			}
			result.Tallas = rows
		}

		estado := constants.EstadoLista
		updated, err := s.plantillas.WithTx(tx).Update(ctx, reg.ID, entities.PlantillaPatch{Estado: &estado})
		if err != nil {
			return err
		}
		result.Plantilla = updated
		return nil
	})
	if err != nil {
		return nil, s.storeFailure("marcar plantilla lista", err, zap.Int("ticket_id", reg.TicketID))
	}

	s.logger.Info("plantilla lista", zap.Int("ticket_id", reg.TicketID))
	s.publish(ctx, result.Plantilla, constants.AccionLista)
	return result, nil
}

func (s *PlantillaService) update(ctx context.Context, reg *entities.PlantillaRegistro, patch entities.PlantillaPatch) (*ProcessResult, error) {
	result := &ProcessResult{Action: ActionUpdate, Plantilla: reg}
	if patch.IsEmpty() {
		return result, nil
	}
	updated, err := s.plantillas.Update(ctx, reg.ID, patch)
	if err != nil {
		return nil, s.storeFailure("actualizar plantilla", err, zap.Int("ticket_id", reg.TicketID))
	}
	result.Plantilla = updated
	s.publish(ctx, updated, "actualizar")
	return result, nil
}

// advanceFabricadas moves the manufactured size rows to estado and returns all rows.
func (s *PlantillaService) advanceFabricadas(ctx context.Context, tx pgx.Tx, registroID uint64, estado string) ([]entities.TallaDetalle, error) {
	tallas := s.tallas.WithTx(tx)
	if err := tallas.UpdateEstadoByTipo(ctx, registroID, constants.TallaFabricada, estado); err != nil {
		return nil, err
	}
	return tallas.ListByRegistro(ctx, registroID)
}

// findActive returns nil without error when the ticket has no active registration.
func (s *PlantillaService) findActive(ctx context.Context, ticketID int) (*entities.PlantillaRegistro, error) {
	reg, err := s.plantillas.FindActiveByTicket(ctx, ticketID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.storeFailure("buscar plantilla activa", err, zap.Int("ticket_id", ticketID))
	}
	return reg, nil
}

func (s *PlantillaService) requireActive(ctx context.Context, ticketID int) (*entities.PlantillaRegistro, error) {
	if _, err := s.tickets.FindTicket(ctx, ticketID); err != nil {
		return nil, err
	}
	reg, err := s.findActive(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, apperrors.ErrNotFound
	}
	return reg, nil
}

// storeFailure logs persistence errors before they propagate; domain errors pass silently.
func (s *PlantillaService) storeFailure(op string, err error, fields ...zap.Field) error {
	if errors.Is(err, apperrors.ErrStoreFailure) {
		s.logger.Error("error de almacenamiento: "+op, append(fields, zap.Error(err))...)
	}
	return err
}

func (s *PlantillaService) publish(ctx context.Context, reg *entities.PlantillaRegistro, accion string) {
	if s.publisher == nil || reg == nil {
		return
	}
	s.publisher.Publish(ctx, events.PlantillaActualizada{
		TicketID:   reg.TicketID,
		RegistroID: reg.ID,
		Accion:     accion,
		Tipo:       reg.TipoPlantilla,
		Estado:     reg.Estado,
	})
}

// ScheduleInputFrom reads the scheduling fields of an action body.
func ScheduleInputFrom(d dto.PlantillaActionDTO) (ScheduleInput, error) {
	in := ScheduleInput{
		NumeroPrograma: d.ResolvedNumeroPrograma(),
		Operario:       d.ResolvedOperario(),
	}
	if d.FechaProgramacion != "" {
		fecha, ok := utils.ParseFlexibleDate(d.FechaProgramacion)
		if !ok {
			return ScheduleInput{}, apperrors.NewInvalidInputError("fecha_programacion %q no es una fecha válida", d.FechaProgramacion)
		}
		in.Fecha = fecha
	}
	return in, nil
}

// validateQuantities checks the size maps of a mixed registration against the
// ticket: known labels, quantities of at least one, and no more pairs per size
// than the ticket ordered.
func validateQuantities(ticket entities.Ticket, fabricadas, compradas dto.SizeQuantities) error {
	for _, q := range []dto.SizeQuantities{fabricadas, compradas} {
		for _, label := range q.Labels() {
			if !constants.IsSizeLabel(label) {
				return apperrors.NewInvalidInputError("talla %q no válida", label)
			}
			if q[label] < 1 {
				return apperrors.NewInvalidInputError("la cantidad de la talla %s debe ser al menos 1", label)
			}
		}
	}
	for _, label := range constants.SizeLabels {
		total := fabricadas[label] + compradas[label]
		if total > ticket.Tallas[label] {
			return apperrors.NewInvalidInputError(
				"la talla %s excede lo pedido en el ticket %d (%d > %d)",
				label, ticket.Numero, total, ticket.Tallas[label],
			)
		}
	}
	return nil
}

func sizeRows(registroID uint64, fabricadas, compradas dto.SizeQuantities) []entities.TallaDetalle {
	rows := make([]entities.TallaDetalle, 0, len(fabricadas)+len(compradas))
	for _, label := range fabricadas.Labels() {
		rows = append(rows, entities.TallaDetalle{
			PlantillaRegistroID: registroID,
			Talla:               label,
			Cantidad:            fabricadas[label],
			Tipo:                constants.TallaFabricada,
			Estado:              constants.EstadoPendiente,
		})
	}
	for _, label := range compradas.Labels() {
		rows = append(rows, entities.TallaDetalle{
			PlantillaRegistroID: registroID,
			Talla:               label,
			Cantidad:            compradas[label],
			Tipo:                constants.TallaComprada,
			Estado:              constants.EstadoRecibida,
		})
	}
	return rows
}

func nullIfEmpty(v null.String) null.String {
	if !v.Valid || v.String == "" {
		return null.String{}
	}
	return v
}
