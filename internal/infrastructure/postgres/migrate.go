package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/jhoicas/micro-erp/internal/infrastructure/postgres/migrations"
)

// Migrator aplica el esquema embebido en internal/infrastructure/postgres/migrations.
type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator prepara golang-migrate con el driver pgx/v5 sobre la URL postgres:// dada.
func NewMigrator(databaseURL string) (*Migrator, error) {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("migrations source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, migrateURL(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("crear migrate: %w", err)
	}
	return &Migrator{m: m}, nil
}

// Up aplica las migraciones pendientes. Sin cambios no es error.
func (r *Migrator) Up() error {
	if err := r.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("aplicar migraciones: %w", err)
	}
	return nil
}

// Down revierte n migraciones (todas si n <= 0).
func (r *Migrator) Down(n int) error {
	var err error
	if n <= 0 {
		err = r.m.Down()
	} else {
		err = r.m.Steps(-n)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("revertir migraciones: %w", err)
	}
	return nil
}

// Version devuelve la versión actual y si quedó a medias (dirty).
func (r *Migrator) Version() (uint, bool, error) {
	v, dirty, err := r.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Force fija la versión sin ejecutar SQL (recuperación tras un dirty).
func (r *Migrator) Force(version int) error {
	return r.m.Force(version)
}

// Close libera source y conexión.
func (r *Migrator) Close() error {
	srcErr, dbErr := r.m.Close()
	return errors.Join(srcErr, dbErr)
}

// migrateURL cambia el esquema postgres:// por pgx5://, que es el que registra el driver pgx/v5.
func migrateURL(databaseURL string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(databaseURL, prefix) {
			return "pgx5://" + strings.TrimPrefix(databaseURL, prefix)
		}
	}
	return databaseURL
}
