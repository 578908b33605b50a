package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"plantillas-system/internal/entities"
)

const (
	operarioTable  = "operarios"
	proveedorTable = "proveedores"
)

type CatalogRepositoryInterface interface {
	ListOperarios(ctx context.Context) ([]entities.Operario, error)
	ListProveedores(ctx context.Context) ([]entities.Proveedor, error)
}

type CatalogRepository struct {
	storage *pgxpool.Pool
}

func NewCatalogRepository(storage *pgxpool.Pool) CatalogRepositoryInterface {
	return &CatalogRepository{storage: storage}
}

type catalogRow struct {
	ID     uint64
	Nombre string
	Activo bool
}

// listActive reads the active rows of a lookup table ordered by name.
func (r *CatalogRepository) listActive(ctx context.Context, table string) ([]catalogRow, error) {
	op := "listar " + table
	query, args, err := psql.Select("id", "nombre", "activo").
		From(table).
		Where(sq.Eq{"activo": true}).
		OrderBy("nombre").
		ToSql()
	if err != nil {
		return nil, storeErr(op, err)
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	result := make([]catalogRow, 0)
	for rows.Next() {
		var c catalogRow
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Activo); err != nil {
			return nil, storeErr(op, err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return result, nil
}

func (r *CatalogRepository) ListOperarios(ctx context.Context) ([]entities.Operario, error) {
	rows, err := r.listActive(ctx, operarioTable)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Operario, 0, len(rows))
	for _, c := range rows {
		out = append(out, entities.Operario{ID: c.ID, Nombre: c.Nombre, Activo: c.Activo})
	}
	return out, nil
}

func (r *CatalogRepository) ListProveedores(ctx context.Context) ([]entities.Proveedor, error) {
	rows, err := r.listActive(ctx, proveedorTable)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Proveedor, 0, len(rows))
	for _, c := range rows {
		out = append(out, entities.Proveedor{ID: c.ID, Nombre: c.Nombre, Activo: c.Activo})
	}
	return out, nil
}
