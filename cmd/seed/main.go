// seed crea (o reinicia) el colaborador administrador inicial con su cargo de nivel admin.
//
// Uso: SEED_ADMIN_PASSWORD=... SEED_ADMIN_CPF=... go run ./cmd/seed
//
// Variables: SEED_ADMIN_USER (admin), SEED_ADMIN_PASSWORD, SEED_ADMIN_CPF,
// SEED_ADMIN_NAME (Administrador), SEED_ADMIN_LASTNAME (Sistema), SEED_ADMIN_BIRTHDATE (1990-01-01).
// Si el usuario ya existe solo se reemplaza la senha y se desbloquea.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/micro-erp/internal/application/dto"
	"github.com/jhoicas/micro-erp/internal/application/usecase"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
	"github.com/jhoicas/micro-erp/internal/infrastructure/postgres"
	"github.com/jhoicas/micro-erp/pkg/config"
	"github.com/jhoicas/micro-erp/pkg/logger"
)

const adminRoleName = "Administrador"

type seedInput struct {
	username  string
	password  string
	cpf       string
	firstName string
	lastName  string
	birthDate string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("SEED_ADMIN_USER", "admin")
	v.SetDefault("SEED_ADMIN_NAME", "Administrador")
	v.SetDefault("SEED_ADMIN_LASTNAME", "Sistema")
	v.SetDefault("SEED_ADMIN_BIRTHDATE", "1990-01-01")
	in := seedInput{
		username:  v.GetString("SEED_ADMIN_USER"),
		password:  v.GetString("SEED_ADMIN_PASSWORD"),
		cpf:       v.GetString("SEED_ADMIN_CPF"),
		firstName: v.GetString("SEED_ADMIN_NAME"),
		lastName:  v.GetString("SEED_ADMIN_LASTNAME"),
		birthDate: v.GetString("SEED_ADMIN_BIRTHDATE"),
	}
	if in.password == "" {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD es obligatorio")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	roleRepo := postgres.NewRoleRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)

	id, created, err := seedAdmin(ctx, roleRepo, employeeRepo, in)
	if err != nil {
		log.Fatal().Err(err).Msg("seed administrador")
	}
	log.Info().Int64("colaborador_id", id).Str("usuario", in.username).Bool("creado", created).Msg("administrador listo")
}

func seedAdmin(
	ctx context.Context,
	roleRepo repository.RoleRepository,
	employeeRepo repository.EmployeeRepository,
	in seedInput,
) (int64, bool, error) {
	// ── 1. Usuario existente: nueva senha y desbloqueo ───────────────────────
	existing, err := employeeRepo.GetByUsername(ctx, in.username)
	if err != nil {
		return 0, false, err
	}
	if existing != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.password), bcrypt.DefaultCost)
		if err != nil {
			return 0, false, err
		}
		if err := employeeRepo.UpdatePassword(ctx, existing.ID, string(hash)); err != nil {
			return 0, false, err
		}
		return existing.ID, false, employeeRepo.Unlock(ctx, existing.ID)
	}

	// ── 2. Cargo admin (reutiliza uno activo si ya existe) ────────────────────
	roleID, err := adminRole(ctx, roleRepo)
	if err != nil {
		return 0, false, err
	}

	// ── 3. Colaborador vía caso de uso (mismas validaciones que la API) ──────
	birth, err := entity.ParseDate(in.birthDate)
	if err != nil {
		return 0, false, err
	}
	emp, err := usecase.NewEmployeeUseCase(employeeRepo, roleRepo).Create(ctx, dto.EmployeeRequest{
		FirstName: in.firstName,
		LastName:  in.lastName,
		BirthDate: &birth,
		CPF:       in.cpf,
		RoleID:    roleID,
		Username:  in.username,
		Password:  in.password,
	})
	if err != nil {
		return 0, false, err
	}
	return emp.ID, true, nil
}

func adminRole(ctx context.Context, roleRepo repository.RoleRepository) (int64, error) {
	active := true
	roles, err := roleRepo.List(ctx, repository.RoleFilter{Active: &active})
	if err != nil {
		return 0, err
	}
	for _, r := range roles {
		if r.AccessLevel == entity.LevelAdmin {
			return r.ID, nil
		}
	}
	role, err := usecase.NewRoleUseCase(roleRepo).Create(ctx, dto.RoleRequest{
		Name:        adminRoleName,
		AccessLevel: string(entity.LevelAdmin),
	})
	if err != nil {
		return 0, err
	}
	return role.ID, nil
}
