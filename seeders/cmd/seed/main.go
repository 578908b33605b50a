package main

import (
	"context"
	"flag"
	"log"

	"plantillas-system/migrations"
	"plantillas-system/pkg/config"
	"plantillas-system/pkg/database/postgresql"
	"plantillas-system/seeders"
)

func main() {
	runMigrate := flag.Bool("migrate", false, "Aplicar migraciones antes de cargar datos")
	runCatalogs := flag.Bool("catalogs", false, "Cargar operarios y proveedores")
	runAll := flag.Bool("all", false, "Equivale a -migrate -catalogs")
	flag.Parse()

	if !*runMigrate && !*runCatalogs && !*runAll {
		log.Println("❌ No se eligió ningún seeder.")
		log.Println("Flags disponibles:")
		flag.PrintDefaults()
		log.Println("Ejemplo:  go run ./seeders/cmd/seed -all")
		return
	}

	ctx := context.Background()
	cfg := config.New()
	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("❌ No se pudo conectar a la base de datos: %v", err)
	}
	defer dbPool.Close()

	if *runAll || *runMigrate {
		if err := postgresql.Migrate(ctx, dbPool, migrations.FS); err != nil {
			log.Fatalf("❌ Error aplicando migraciones: %v", err)
		}
	}
	if *runAll || *runCatalogs {
		if err := seeders.SeedCatalogs(ctx, dbPool); err != nil {
			log.Fatalf("❌ Error cargando catálogos: %v", err)
		}
	}

	log.Println("✅ Seeders terminados")
}
