package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"plantillas-system/internal/entities"
)

const (
	programacionTable  = "programacion_plantillas"
	programacionFields = "id, ticket_id, plantilla_registro_id, numero_programacion, fecha_programacion, operario, estado"
)

// ProgramacionRepositoryInterface reads and appends schedule history.
// The row with the highest id of a registration is its current schedule.
type ProgramacionRepositoryInterface interface {
	WithTx(tx pgx.Tx) ProgramacionRepositoryInterface
	Create(ctx context.Context, p entities.Programacion) (*entities.Programacion, error)
	LatestByRegistro(ctx context.Context, registroID uint64) (*entities.Programacion, error)
	LatestByRegistros(ctx context.Context, registroIDs []uint64) (map[uint64]entities.Programacion, error)
	ListByRegistro(ctx context.Context, registroID uint64) ([]entities.Programacion, error)
	UpdateEstado(ctx context.Context, id uint64, estado string) error
}

type ProgramacionRepository struct {
	storage querier
}

func NewProgramacionRepository(storage *pgxpool.Pool) ProgramacionRepositoryInterface {
	return &ProgramacionRepository{storage: storage}
}

func (r *ProgramacionRepository) WithTx(tx pgx.Tx) ProgramacionRepositoryInterface {
	return &ProgramacionRepository{storage: tx}
}

func scanProgramacion(row pgx.Row) (*entities.Programacion, error) {
	var p entities.Programacion
	if err := row.Scan(&p.ID, &p.TicketID, &p.PlantillaRegistroID, &p.NumeroProgramacion, &p.FechaProgramacion, &p.Operario, &p.Estado); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgramacionRepository) Create(ctx context.Context, p entities.Programacion) (*entities.Programacion, error) {
	query, args, err := psql.Insert(programacionTable).
		Columns("ticket_id", "plantilla_registro_id", "numero_programacion", "fecha_programacion", "operario", "estado").
		Values(p.TicketID, p.PlantillaRegistroID, p.NumeroProgramacion, p.FechaProgramacion, p.Operario, p.Estado).
		Suffix("RETURNING " + programacionFields).
		ToSql()
	if err != nil {
		return nil, storeErr("crear programación", err)
	}
	created, err := scanProgramacion(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, storeErr("crear programación", err)
	}
	return created, nil
}

func (r *ProgramacionRepository) LatestByRegistro(ctx context.Context, registroID uint64) (*entities.Programacion, error) {
	query, args, err := psql.Select(programacionFields).
		From(programacionTable).
		Where(sq.Eq{"plantilla_registro_id": registroID}).
		OrderBy("id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, storeErr("buscar programación", err)
	}
	p, err := scanProgramacion(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, storeErr("buscar programación", err)
	}
	return p, nil
}

func (r *ProgramacionRepository) LatestByRegistros(ctx context.Context, registroIDs []uint64) (map[uint64]entities.Programacion, error) {
	result := make(map[uint64]entities.Programacion, len(registroIDs))
	if len(registroIDs) == 0 {
		return result, nil
	}
	builder := psql.Select(programacionFields).
		Options("DISTINCT ON (plantilla_registro_id)").
		From(programacionTable).
		Where(sq.Eq{"plantilla_registro_id": registroIDs}).
		OrderBy("plantilla_registro_id", "id DESC")

	list, err := r.list(ctx, "listar programaciones", builder)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		result[p.PlantillaRegistroID] = p
	}
	return result, nil
}

// ListByRegistro returns the schedule history, newest first.
func (r *ProgramacionRepository) ListByRegistro(ctx context.Context, registroID uint64) ([]entities.Programacion, error) {
	builder := psql.Select(programacionFields).
		From(programacionTable).
		Where(sq.Eq{"plantilla_registro_id": registroID}).
		OrderBy("id DESC")
	return r.list(ctx, "historial de programación", builder)
}

func (r *ProgramacionRepository) list(ctx context.Context, op string, builder sq.SelectBuilder) ([]entities.Programacion, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, storeErr(op, err)
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	result := make([]entities.Programacion, 0)
	for rows.Next() {
		p, err := scanProgramacion(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return result, nil
}

func (r *ProgramacionRepository) UpdateEstado(ctx context.Context, id uint64, estado string) error {
	query, args, err := psql.Update(programacionTable).Set("estado", estado).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return storeErr("actualizar programación", err)
	}
	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return storeErr("actualizar programación", err)
	}
	if tag.RowsAffected() == 0 {
		return storeErr("actualizar programación", pgx.ErrNoRows)
	}
	return nil
}
