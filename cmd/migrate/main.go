// migrate aplica o revierte el esquema embebido de la base de datos.
//
// Uso:
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down [n]
//	go run ./cmd/migrate version
//	go run ./cmd/migrate force <version>
//
// La conexión sale de la misma configuración que la API (DATABASE_URL o DB_*).
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/micro-erp/internal/infrastructure/postgres"
	"github.com/jhoicas/micro-erp/pkg/config"
	"github.com/jhoicas/micro-erp/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: migrate up | down [n] | version | force <version>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	m, err := postgres.NewMigrator(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("preparar migraciones")
	}
	defer m.Close()

	switch cmd := os.Args[1]; cmd {
	case "up":
		err = m.Up()
	case "down":
		n := 0
		if len(os.Args) > 2 {
			if n, err = strconv.Atoi(os.Args[2]); err != nil {
				log.Fatal().Str("n", os.Args[2]).Msg("n inválido")
			}
		}
		err = m.Down(n)
	case "force":
		if len(os.Args) < 3 {
			log.Fatal().Msg("force requiere la versión")
		}
		v, convErr := strconv.Atoi(os.Args[2])
		if convErr != nil {
			log.Fatal().Str("version", os.Args[2]).Msg("versión inválida")
		}
		err = m.Force(v)
	case "version":
	default:
		log.Fatal().Str("comando", cmd).Msg("comando desconocido")
	}
	if err != nil {
		log.Fatal().Err(err).Str("comando", os.Args[1]).Msg("migración fallida")
	}

	v, dirty, err := m.Version()
	if err != nil {
		log.Fatal().Err(err).Msg("leer versión")
	}
	log.Info().Uint("version", v).Bool("dirty", dirty).Msg("esquema")
}
