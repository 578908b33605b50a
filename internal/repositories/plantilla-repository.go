package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"plantillas-system/internal/entities"
	"plantillas-system/pkg/constants"
)

const (
	plantillaTable  = "plantillas_registro"
	plantillaFields = "id, ticket_id, tipo_plantilla, estado, personal_asignado, proveedor, observaciones, fecha_registro, fecha_completacion_fabricacion, activo"
)

type PlantillaRepositoryInterface interface {
	WithTx(tx pgx.Tx) PlantillaRepositoryInterface
	FindActiveByTicket(ctx context.Context, ticketID int) (*entities.PlantillaRegistro, error)
	FindByID(ctx context.Context, id uint64) (*entities.PlantillaRegistro, error)
	ListActive(ctx context.Context) ([]entities.PlantillaRegistro, error)
	ListHuerfanas(ctx context.Context) ([]entities.PlantillaRegistro, error)
	Create(ctx context.Context, registro entities.PlantillaRegistro) (*entities.PlantillaRegistro, error)
	Update(ctx context.Context, id uint64, patch entities.PlantillaPatch) (*entities.PlantillaRegistro, error)
}

type PlantillaRepository struct {
	storage querier
}

func NewPlantillaRepository(storage *pgxpool.Pool) PlantillaRepositoryInterface {
	return &PlantillaRepository{storage: storage}
}

func (r *PlantillaRepository) WithTx(tx pgx.Tx) PlantillaRepositoryInterface {
	return &PlantillaRepository{storage: tx}
}

func scanPlantilla(row pgx.Row) (*entities.PlantillaRegistro, error) {
	var p entities.PlantillaRegistro
	err := row.Scan(
		&p.ID, &p.TicketID, &p.TipoPlantilla, &p.Estado,
		&p.PersonalAsignado, &p.Proveedor, &p.Observaciones,
		&p.FechaRegistro, &p.FechaCompletacionFabricacion, &p.Activo,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlantillaRepository) queryOne(ctx context.Context, op string, builder sq.Sqlizer) (*entities.PlantillaRegistro, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, storeErr(op, err)
	}
	p, err := scanPlantilla(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, storeErr(op, err)
	}
	return p, nil
}

func (r *PlantillaRepository) queryMany(ctx context.Context, op string, builder sq.SelectBuilder) ([]entities.PlantillaRegistro, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, storeErr(op, err)
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	result := make([]entities.PlantillaRegistro, 0)
	for rows.Next() {
		p, err := scanPlantilla(rows)
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

func (r *PlantillaRepository) FindActiveByTicket(ctx context.Context, ticketID int) (*entities.PlantillaRegistro, error) {
	builder := psql.Select(plantillaFields).
		From(plantillaTable).
		Where(sq.Eq{"ticket_id": ticketID, "activo": true}).
		OrderBy("id DESC").
		Limit(1)
	return r.queryOne(ctx, "buscar plantilla activa", builder)
}

func (r *PlantillaRepository) FindByID(ctx context.Context, id uint64) (*entities.PlantillaRegistro, error) {
	builder := psql.Select(plantillaFields).From(plantillaTable).Where(sq.Eq{"id": id})
	return r.queryOne(ctx, "buscar plantilla", builder)
}

func (r *PlantillaRepository) ListActive(ctx context.Context) ([]entities.PlantillaRegistro, error) {
	builder := psql.Select(plantillaFields).
		From(plantillaTable).
		Where(sq.Eq{"activo": true}).
		OrderBy("ticket_id")
	return r.queryMany(ctx, "listar plantillas activas", builder)
}

// ListHuerfanas returns active mixed registrations that have no size rows.
func (r *PlantillaRepository) ListHuerfanas(ctx context.Context) ([]entities.PlantillaRegistro, error) {
	builder := psql.Select(plantillaFields).
		From(plantillaTable+" r").
		Where(sq.Eq{"r.activo": true, "r.tipo_plantilla": constants.TipoMixta}).
		Where("NOT EXISTS (SELECT 1 FROM " + tallaDetalleTable + " d WHERE d.plantilla_registro_id = r.id)").
		OrderBy("r.id")
	return r.queryMany(ctx, "listar plantillas sin tallas", builder)
}

func (r *PlantillaRepository) Create(ctx context.Context, registro entities.PlantillaRegistro) (*entities.PlantillaRegistro, error) {
	builder := psql.Insert(plantillaTable).
		Columns("ticket_id", "tipo_plantilla", "estado", "personal_asignado", "proveedor", "observaciones", "fecha_completacion_fabricacion", "activo").
		Values(registro.TicketID, registro.TipoPlantilla, registro.Estado, registro.PersonalAsignado, registro.Proveedor, registro.Observaciones, registro.FechaCompletacionFabricacion, true).
		Suffix("RETURNING " + plantillaFields)
	return r.queryOne(ctx, "crear plantilla", builder)
}

// Update writes only the fields set in patch. An empty patch returns the current row.
func (r *PlantillaRepository) Update(ctx context.Context, id uint64, patch entities.PlantillaPatch) (*entities.PlantillaRegistro, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	set := make(map[string]interface{})
	if patch.TipoPlantilla != nil {
		set["tipo_plantilla"] = *patch.TipoPlantilla
	}
	if patch.Estado != nil {
		set["estado"] = *patch.Estado
	}
	if patch.PersonalAsignado != nil {
		set["personal_asignado"] = *patch.PersonalAsignado
	}
	if patch.Proveedor != nil {
		set["proveedor"] = *patch.Proveedor
	}
	if patch.Observaciones != nil {
		set["observaciones"] = *patch.Observaciones
	}
	if patch.FechaCompletacionFabricacion != nil {
		set["fecha_completacion_fabricacion"] = *patch.FechaCompletacionFabricacion
	}
	if patch.Activo != nil {
		set["activo"] = *patch.Activo
	}

	builder := psql.Update(plantillaTable).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + plantillaFields)
	return r.queryOne(ctx, "actualizar plantilla", builder)
}
