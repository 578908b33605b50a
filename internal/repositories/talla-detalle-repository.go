package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"plantillas-system/internal/entities"
)

const (
	tallaDetalleTable  = "plantillas_tallas_detalle"
	tallaDetalleFields = "id, plantilla_registro_id, talla, cantidad, tipo, estado"
)

type TallaDetalleRepositoryInterface interface {
	WithTx(tx pgx.Tx) TallaDetalleRepositoryInterface
	BulkInsert(ctx context.Context, rows []entities.TallaDetalle) error
	ListByRegistro(ctx context.Context, registroID uint64) ([]entities.TallaDetalle, error)
	ListByRegistros(ctx context.Context, registroIDs []uint64) (map[uint64][]entities.TallaDetalle, error)
	UpdateEstadoByTipo(ctx context.Context, registroID uint64, tipo, estado string) error
	UpdateAllEstado(ctx context.Context, registroID uint64, estado string) error
}

type TallaDetalleRepository struct {
	storage querier
}

func NewTallaDetalleRepository(storage *pgxpool.Pool) TallaDetalleRepositoryInterface {
	return &TallaDetalleRepository{storage: storage}
}

func (r *TallaDetalleRepository) WithTx(tx pgx.Tx) TallaDetalleRepositoryInterface {
	return &TallaDetalleRepository{storage: tx}
}

// BulkInsert writes all rows with a single multi-values INSERT.
func (r *TallaDetalleRepository) BulkInsert(ctx context.Context, rows []entities.TallaDetalle) error {
	if len(rows) == 0 {
		return nil
	}
	builder := psql.Insert(tallaDetalleTable).Columns("plantilla_registro_id", "talla", "cantidad", "tipo", "estado")
	for _, d := range rows {
		builder = builder.Values(d.PlantillaRegistroID, d.Talla, d.Cantidad, d.Tipo, d.Estado)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return storeErr("insertar tallas", err)
	}
	if _, err := r.storage.Exec(ctx, query, args...); err != nil {
		return storeErr("insertar tallas", err)
	}
	return nil
}

func (r *TallaDetalleRepository) ListByRegistro(ctx context.Context, registroID uint64) ([]entities.TallaDetalle, error) {
	grouped, err := r.ListByRegistros(ctx, []uint64{registroID})
	if err != nil {
		return nil, err
	}
	if rows, ok := grouped[registroID]; ok {
		return rows, nil
	}
	return []entities.TallaDetalle{}, nil
}

func (r *TallaDetalleRepository) ListByRegistros(ctx context.Context, registroIDs []uint64) (map[uint64][]entities.TallaDetalle, error) {
	result := make(map[uint64][]entities.TallaDetalle, len(registroIDs))
	if len(registroIDs) == 0 {
		return result, nil
	}

	query, args, err := psql.Select(tallaDetalleFields).
		From(tallaDetalleTable).
		Where(sq.Eq{"plantilla_registro_id": registroIDs}).
		OrderBy("plantilla_registro_id", "tipo", "talla").
		ToSql()
	if err != nil {
		return nil, storeErr("listar tallas", err)
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("listar tallas", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d entities.TallaDetalle
		if err := rows.Scan(&d.ID, &d.PlantillaRegistroID, &d.Talla, &d.Cantidad, &d.Tipo, &d.Estado); err != nil {
			return nil, storeErr("listar tallas", err)
		}
		result[d.PlantillaRegistroID] = append(result[d.PlantillaRegistroID], d)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("listar tallas", err)
	}
	return result, nil
}

func (r *TallaDetalleRepository) UpdateEstadoByTipo(ctx context.Context, registroID uint64, tipo, estado string) error {
	return r.updateEstado(ctx, estado, sq.Eq{"plantilla_registro_id": registroID, "tipo": tipo})
}

func (r *TallaDetalleRepository) UpdateAllEstado(ctx context.Context, registroID uint64, estado string) error {
	return r.updateEstado(ctx, estado, sq.Eq{"plantilla_registro_id": registroID})
}

func (r *TallaDetalleRepository) updateEstado(ctx context.Context, estado string, where sq.Eq) error {
	query, args, err := psql.Update(tallaDetalleTable).Set("estado", estado).Where(where).ToSql()
	if err != nil {
		return storeErr("actualizar tallas", err)
	}
	if _, err := r.storage.Exec(ctx, query, args...); err != nil {
		return storeErr("actualizar tallas", err)
	}
	return nil
}
