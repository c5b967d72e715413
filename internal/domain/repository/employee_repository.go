package repository

import (
	"context"
	"time"

	"github.com/jhoicas/micro-erp/internal/domain/entity"
)

// EmployeeFilter filtros del listado de colaboradores.
type EmployeeFilter struct {
	Active *bool
	RoleID *int64
	Search string
}

// EmployeeRepository define el puerto de persistencia para colaboradores.
// Las lecturas incluyen cargo_nome y nivel_acesso del cargo.
type EmployeeRepository interface {
	List(ctx context.Context, f EmployeeFilter) ([]entity.Employee, error)
	GetByID(ctx context.Context, id int64) (*entity.Employee, error)
	GetByUsername(ctx context.Context, username string) (*entity.Employee, error)
	// Create persiste el colaborador; cpf o usuario repetidos devuelven *domain.DuplicateError.
	Create(ctx context.Context, e *entity.Employee) error
	// Update no toca senha ni los campos de bloqueo.
	Update(ctx context.Context, e *entity.Employee) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	Delete(ctx context.Context, id int64) error
	Deactivate(ctx context.Context, id int64) error
	CountSales(ctx context.Context, id int64) (int, error)

	// RegisterLoginSuccess pone tentativas_login a 0 y sella ultimo_acesso.
	RegisterLoginSuccess(ctx context.Context, id int64) error
	// RegisterLoginFailure incrementa el contador del usuario y lo bloquea al llegar a maxAttempts,
	// en un único UPDATE. Usuarios inexistentes no producen error.
	RegisterLoginFailure(ctx context.Context, username string, maxAttempts int) error
	// UnlockExpired desbloquea al usuario si fue bloqueado antes de lockedBefore.
	UnlockExpired(ctx context.Context, username string, lockedBefore time.Time) error
	Unlock(ctx context.Context, id int64) error
}
