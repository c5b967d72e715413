package repository

import (
	"context"

	"github.com/jhoicas/micro-erp/internal/domain/entity"
)

// RoleFilter filtros del listado de cargos.
type RoleFilter struct {
	Active *bool
}

// RoleRepository define el puerto de persistencia para cargos.
type RoleRepository interface {
	List(ctx context.Context, f RoleFilter) ([]entity.Role, error)
	GetByID(ctx context.Context, id int64) (*entity.Role, error)
	Create(ctx context.Context, role *entity.Role) error
	Update(ctx context.Context, role *entity.Role) error
	Delete(ctx context.Context, id int64) error
	// CountEmployees cuenta los colaboradores vinculados (activos o no).
	CountEmployees(ctx context.Context, roleID int64) (int, error)
}
