package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"plantillas-system/internal/dto"
	"plantillas-system/internal/entities"
	"plantillas-system/internal/repositories"
	"plantillas-system/pkg/constants"
	apperrors "plantillas-system/pkg/errors"
)

// ParseHormaHeel splits a mold descriptor into the mold id (every token but
// the last) and the heel code (last token).
//
//	"PADE/14793 4.5" -> "PADE/14793", "4.5"
//	"INCA/E393"      -> "INCA/E393", nil
//	""               -> nil, nil
func ParseHormaHeel(descriptor string) (moldID *string, heelCode *string) {
	tokens := strings.Fields(descriptor)
	switch len(tokens) {
	case 0:
		return nil, nil
	case 1:
		mold := tokens[0]
		return &mold, nil
	default:
		mold := strings.Join(tokens[:len(tokens)-1], " ")
		heel := tokens[len(tokens)-1]
		return &mold, &heel
	}
}

type TicketServiceInterface interface {
	ListTickets(ctx context.Context) ([]dto.TicketViewDTO, dto.TicketsMetaDTO, error)
	GetTicket(ctx context.Context, numero int) (*dto.TicketDetailDTO, error)
	Refresh(ctx context.Context) (dto.TicketsMetaDTO, error)
}

type TicketService struct {
	tickets        TicketCacheInterface
	plantillas     repositories.PlantillaRepositoryInterface
	tallas         repositories.TallaDetalleRepositoryInterface
	programaciones repositories.ProgramacionRepositoryInterface
	now            func() time.Time
	logger         *zap.Logger
}

func NewTicketService(
	tickets TicketCacheInterface,
	plantillas repositories.PlantillaRepositoryInterface,
	tallas repositories.TallaDetalleRepositoryInterface,
	programaciones repositories.ProgramacionRepositoryInterface,
	logger *zap.Logger,
) *TicketService {
	return &TicketService{
		tickets:        tickets,
		plantillas:     plantillas,
		tallas:         tallas,
		programaciones: programaciones,
		now:            time.Now,
		logger:         logger.Named("ticket_service"),
	}
}

// ListTickets merges every cached ticket with its active registration.
// A failed read of schedules or size rows degrades the view instead of failing it.
func (s *TicketService) ListTickets(ctx context.Context) ([]dto.TicketViewDTO, dto.TicketsMetaDTO, error) {
	tickets, err := s.tickets.GetTickets(ctx)
	if err != nil {
		return nil, dto.TicketsMetaDTO{}, err
	}

	registros, err := s.plantillas.ListActive(ctx)
	if err != nil {
		s.logger.Error("error obteniendo plantillas activas", zap.Error(err))
		return nil, dto.TicketsMetaDTO{}, err
	}

	byTicket := make(map[int]*entities.PlantillaRegistro, len(registros))
	ids := make([]uint64, 0, len(registros))
	var mixtas []uint64
	for i := range registros {
		r := &registros[i]
		byTicket[r.TicketID] = r
		ids = append(ids, r.ID)
		if r.TipoPlantilla == constants.TipoMixta {
			mixtas = append(mixtas, r.ID)
		}
	}

	latest, err := s.programaciones.LatestByRegistros(ctx, ids)
	if err != nil {
		s.logger.Warn("error obteniendo programaciones", zap.Error(err))
		latest = map[uint64]entities.Programacion{}
	}
	tallas, err := s.tallas.ListByRegistros(ctx, mixtas)
	if err != nil {
		s.logger.Warn("error obteniendo tallas de plantillas mixtas", zap.Error(err))
		tallas = map[uint64][]entities.TallaDetalle{}
	}

	views := make([]dto.TicketViewDTO, 0, len(tickets))
	for _, t := range tickets {
		reg := byTicket[t.Numero]
		var prog *entities.Programacion
		var rows []entities.TallaDetalle
		if reg != nil {
			if p, ok := latest[reg.ID]; ok {
				prog = &p
			}
			rows = tallas[reg.ID]
		}
		views = append(views, buildTicketView(t, reg, prog, rows))
	}

	meta := dto.TicketsMetaDTO{
		Total:         len(views),
		Timestamp:     s.now(),
		ActualizadoEn: s.tickets.LastRefreshedAt(),
	}
	return views, meta, nil
}

// GetTicket returns one merged ticket with the schedule history and size rows
// of its active registration.
func (s *TicketService) GetTicket(ctx context.Context, numero int) (*dto.TicketDetailDTO, error) {
	ticket, err := s.tickets.FindTicket(ctx, numero)
	if err != nil {
		return nil, err
	}

	detail := &dto.TicketDetailDTO{
		Programaciones: []entities.Programacion{},
		Tallas:         []entities.TallaDetalle{},
	}

	reg, err := s.plantillas.FindActiveByTicket(ctx, numero)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		detail.TicketViewDTO = buildTicketView(ticket, nil, nil, nil)
		return detail, nil
	case err != nil:
		s.logger.Error("error obteniendo plantilla", zap.Int("ticket_id", numero), zap.Error(err))
		return nil, err
	}

	historial, err := s.programaciones.ListByRegistro(ctx, reg.ID)
	if err != nil {
		s.logger.Error("error obteniendo historial de programación", zap.Uint64("registro_id", reg.ID), zap.Error(err))
		return nil, err
	}
	var latest *entities.Programacion
	if len(historial) > 0 {
		latest = &historial[0]
	}

	if reg.TipoPlantilla == constants.TipoMixta {
		rows, err := s.tallas.ListByRegistro(ctx, reg.ID)
		if err != nil {
			s.logger.Error("error obteniendo tallas", zap.Uint64("registro_id", reg.ID), zap.Error(err))
			return nil, err
		}
		detail.Tallas = rows
	}

	detail.TicketViewDTO = buildTicketView(ticket, reg, latest, detail.Tallas)
	detail.Registro = reg
	detail.Programacion = latest
	detail.Programaciones = historial
	return detail, nil
}

// Refresh forces a feed reload.
func (s *TicketService) Refresh(ctx context.Context) (dto.TicketsMetaDTO, error) {
	tickets, err := s.tickets.ForceRefresh(ctx)
	if err != nil {
		s.logger.Error("error refrescando tickets", zap.Error(err))
		return dto.TicketsMetaDTO{}, err
	}
	return dto.TicketsMetaDTO{
		Total:         len(tickets),
		Timestamp:     s.now(),
		ActualizadoEn: s.tickets.LastRefreshedAt(),
	}, nil
}

func buildTicketView(t entities.Ticket, reg *entities.PlantillaRegistro, prog *entities.Programacion, rows []entities.TallaDetalle) dto.TicketViewDTO {
	mold, heel := ParseHormaHeel(t.Horma)
	view := dto.TicketViewDTO{
		Ticket: t,
		Horma:  mold,
		Heel:   heel,
		Tacon:  heel,
		Plantilla: dto.PlantillaResumenDTO{
			Estado: constants.EstadoSinPlantilla,
		},
		EstadoPlantilla: constants.EstadoSinPlantilla,
	}
	if reg == nil {
		return view
	}

	id, tipo := reg.ID, reg.TipoPlantilla
	resumen := dto.PlantillaResumenDTO{
		ID:               &id,
		Tipo:             &tipo,
		Estado:           reg.Estado,
		FechaFabricacion: reg.FechaCompletacionFabricacion,
		PersonalAsignado: reg.PersonalAsignado,
		Proveedor:        reg.Proveedor,
		Observaciones:    reg.Observaciones,
	}
	if prog != nil {
		numero, fecha := prog.NumeroProgramacion, prog.FechaProgramacion
		resumen.NumeroPrograma = &numero
		resumen.FechaProgramacion = &fecha
		view.NumeroPrograma = &numero
	}
	if reg.TipoPlantilla == constants.TipoMixta {
		resumen.CantidadesFabricadas, resumen.CantidadesCompradas = groupQuantities(rows)
	}

	view.Plantilla = resumen
	view.TienePlantilla = true
	view.EstadoPlantilla = reg.Estado
	return view
}

// groupQuantities turns size rows back into label -> quantity maps per sub-type.
func groupQuantities(rows []entities.TallaDetalle) (fabricadas, compradas map[string]int) {
	fabricadas = map[string]int{}
	compradas = map[string]int{}
	for _, r := range rows {
		switch r.Tipo {
		case constants.TallaFabricada:
			fabricadas[r.Talla] += r.Cantidad
		case constants.TallaComprada:
			compradas[r.Talla] += r.Cantidad
		}
	}
	return fabricadas, compradas
}
