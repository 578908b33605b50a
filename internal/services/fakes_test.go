package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"plantillas-system/internal/entities"
	"plantillas-system/internal/repositories"
	apperrors "plantillas-system/pkg/errors"
	"plantillas-system/pkg/eventbus"
)

type fakeTicketCache struct {
	tickets     []entities.Ticket
	err         error
	refreshedAt time.Time
}

func (f *fakeTicketCache) GetTickets(context.Context) ([]entities.Ticket, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tickets, nil
}

func (f *fakeTicketCache) ForceRefresh(ctx context.Context) ([]entities.Ticket, error) {
	return f.GetTickets(ctx)
}

func (f *fakeTicketCache) FindTicket(ctx context.Context, numero int) (entities.Ticket, error) {
	tickets, err := f.GetTickets(ctx)
	if err != nil {
		return entities.Ticket{}, err
	}
	if t, ok := entities.FindTicket(tickets, numero); ok {
		return t, nil
	}
	return entities.Ticket{}, apperrors.ErrNotFound
}

func (f *fakeTicketCache) LastRefreshedAt() time.Time { return f.refreshedAt }

type fakePlantillaRepo struct {
	rows   map[uint64]*entities.PlantillaRegistro
	nextID uint64
	now    time.Time
	err    error
}

func newFakePlantillaRepo() *fakePlantillaRepo {
	return &fakePlantillaRepo{rows: map[uint64]*entities.PlantillaRegistro{}}
}

func (r *fakePlantillaRepo) WithTx(pgx.Tx) repositories.PlantillaRepositoryInterface { return r }

func (r *fakePlantillaRepo) FindActiveByTicket(_ context.Context, ticketID int) (*entities.PlantillaRegistro, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, reg := range r.rows {
		if reg.TicketID == ticketID && reg.Activo {
			cp := *reg
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakePlantillaRepo) FindByID(_ context.Context, id uint64) (*entities.PlantillaRegistro, error) {
	reg, ok := r.rows[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *reg
	return &cp, nil
}

func (r *fakePlantillaRepo) ListActive(context.Context) ([]entities.PlantillaRegistro, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []entities.PlantillaRegistro{}
	for _, reg := range r.rows {
		if reg.Activo {
			out = append(out, *reg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePlantillaRepo) ListHuerfanas(context.Context) ([]entities.PlantillaRegistro, error) {
	return []entities.PlantillaRegistro{}, nil
}

func (r *fakePlantillaRepo) Create(_ context.Context, reg entities.PlantillaRegistro) (*entities.PlantillaRegistro, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, existing := range r.rows {
		if existing.TicketID == reg.TicketID && existing.Activo {
			return nil, apperrors.ErrConflict
		}
	}
	r.nextID++
	reg.ID = r.nextID
	reg.Activo = true
	reg.FechaRegistro = r.now
	r.rows[reg.ID] = &reg
	cp := reg
	return &cp, nil
}

func (r *fakePlantillaRepo) Update(_ context.Context, id uint64, patch entities.PlantillaPatch) (*entities.PlantillaRegistro, error) {
	reg, ok := r.rows[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	updated := patch.ApplyTo(*reg)
	r.rows[id] = &updated
	cp := updated
	return &cp, nil
}

type fakeTallaRepo struct {
	rows   []entities.TallaDetalle
	nextID uint64
}

func (r *fakeTallaRepo) WithTx(pgx.Tx) repositories.TallaDetalleRepositoryInterface { return r }

func (r *fakeTallaRepo) BulkInsert(_ context.Context, rows []entities.TallaDetalle) error {
	for _, d := range rows {
		r.nextID++
		d.ID = r.nextID
		r.rows = append(r.rows, d)
	}
	return nil
}

func (r *fakeTallaRepo) ListByRegistro(_ context.Context, registroID uint64) ([]entities.TallaDetalle, error) {
	out := []entities.TallaDetalle{}
	for _, d := range r.rows {
		if d.PlantillaRegistroID == registroID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeTallaRepo) ListByRegistros(ctx context.Context, ids []uint64) (map[uint64][]entities.TallaDetalle, error) {
	out := map[uint64][]entities.TallaDetalle{}
	for _, id := range ids {
		rows, _ := r.ListByRegistro(ctx, id)
		if len(rows) > 0 {
			out[id] = rows
		}
	}
	return out, nil
}

func (r *fakeTallaRepo) UpdateEstadoByTipo(_ context.Context, registroID uint64, tipo, estado string) error {
	for i := range r.rows {
		if r.rows[i].PlantillaRegistroID == registroID && r.rows[i].Tipo == tipo {
			r.rows[i].Estado = estado
		}
	}
	return nil
}

func (r *fakeTallaRepo) UpdateAllEstado(_ context.Context, registroID uint64, estado string) error {
	for i := range r.rows {
		if r.rows[i].PlantillaRegistroID == registroID {
			r.rows[i].Estado = estado
		}
	}
	return nil
}

type fakeProgramacionRepo struct {
	rows   []entities.Programacion
	nextID uint64
}

func (r *fakeProgramacionRepo) WithTx(pgx.Tx) repositories.ProgramacionRepositoryInterface { return r }

func (r *fakeProgramacionRepo) Create(_ context.Context, p entities.Programacion) (*entities.Programacion, error) {
	r.nextID++
	p.ID = r.nextID
	r.rows = append(r.rows, p)
	cp := p
	return &cp, nil
}

func (r *fakeProgramacionRepo) LatestByRegistro(_ context.Context, registroID uint64) (*entities.Programacion, error) {
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].PlantillaRegistroID == registroID {
			cp := r.rows[i]
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeProgramacionRepo) LatestByRegistros(ctx context.Context, ids []uint64) (map[uint64]entities.Programacion, error) {
	out := map[uint64]entities.Programacion{}
	for _, id := range ids {
		if p, err := r.LatestByRegistro(ctx, id); err == nil {
			out[id] = *p
		}
	}
	return out, nil
}

func (r *fakeProgramacionRepo) ListByRegistro(_ context.Context, registroID uint64) ([]entities.Programacion, error) {
	out := []entities.Programacion{}
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].PlantillaRegistroID == registroID {
			out = append(out, r.rows[i])
		}
	}
	return out, nil
}

func (r *fakeProgramacionRepo) UpdateEstado(_ context.Context, id uint64, estado string) error {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].Estado = estado
			return nil
		}
	}
	return apperrors.ErrNotFound
}

// fakeTxManager runs fn without a transaction; the fakes ignore the tx handle.
type fakeTxManager struct{ calls int }

func (m *fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	m.calls++
	return fn(nil)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e eventbus.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) Events() []eventbus.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]eventbus.Event(nil), p.events...)
}
