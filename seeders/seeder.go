package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedCatalogs fills the operator and supplier lookups. Safe to run repeatedly.
func SeedCatalogs(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("▶️  Cargando catálogos...")

	if err := seedNames(ctx, db, "operarios", operariosData); err != nil {
		return err
	}
	if err := seedNames(ctx, db, "proveedores", proveedoresData); err != nil {
		return err
	}

	log.Println("✅ Catálogos cargados")
	return nil
}

func seedNames(ctx context.Context, db *pgxpool.Pool, table string, names []string) error {
	log.Printf("  - Llenando la tabla '%s'...", table)
	query := `INSERT INTO ` + table + ` (nombre, activo) VALUES ($1, TRUE) ON CONFLICT (nombre) DO UPDATE SET activo = TRUE;`
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	for _, name := range names {
		if _, err := tx.Exec(ctx, query, name); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
