package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/micro-erp/internal/application/dto"
	"github.com/jhoicas/micro-erp/internal/domain"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
	"github.com/jhoicas/micro-erp/internal/domain/validation"
)

// RoleUseCase casos de uso CRUD para cargos.
type RoleUseCase struct {
	repo repository.RoleRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(repo repository.RoleRepository) *RoleUseCase {
	return &RoleUseCase{repo: repo}
}

// List lista cargos ordenados por nombre.
func (uc *RoleUseCase) List(ctx context.Context, f repository.RoleFilter) ([]entity.Role, error) {
	return uc.repo.List(ctx, f)
}

// GetByID obtiene un cargo.
func (uc *RoleUseCase) GetByID(ctx context.Context, id int64) (*entity.Role, error) {
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, &domain.NotFoundError{Message: "Cargo não encontrado"}
	}
	return role, nil
}

// Create crea un cargo; activo por defecto.
func (uc *RoleUseCase) Create(ctx context.Context, in dto.RoleRequest) (*entity.Role, error) {
	if err := validateRole(in); err != nil {
		return nil, err
	}
	role := &entity.Role{Active: true}
	applyRole(role, in)
	if err := uc.repo.Create(ctx, role); err != nil {
		return nil, fmt.Errorf("cargo: crear: %w", err)
	}
	return role, nil
}

// Update reemplaza los campos del cargo.
func (uc *RoleUseCase) Update(ctx context.Context, id int64, in dto.RoleRequest) (*entity.Role, error) {
	if err := validateRole(in); err != nil {
		return nil, err
	}
	role, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyRole(role, in)
	if err := uc.repo.Update(ctx, role); err != nil {
		return nil, fmt.Errorf("cargo: actualizar: %w", err)
	}
	return role, nil
}

// Delete borra el cargo; se rechaza con colaboradores vinculados.
func (uc *RoleUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := uc.repo.CountEmployees(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &domain.ConflictError{Message: "Não é possível excluir cargo com colaboradores vinculados"}
	}
	return uc.repo.Delete(ctx, id)
}

func validateRole(in dto.RoleRequest) error {
	var v validation.Errors
	v.Required(in.Name, "Nome é obrigatório")
	if validation.Blank(in.AccessLevel) {
		v.Add("Nível de acesso é obrigatório")
	} else {
		v.Check(entity.AccessLevel(in.AccessLevel).Valid(), "Nível de acesso inválido")
	}
	v.Check(validation.Percent(in.DefaultCommission), "Comissão deve estar entre 0 e 100%")
	v.Check(!in.BaseSalary.IsNegative(), "Salário base inválido")
	return v.Err()
}

func applyRole(role *entity.Role, in dto.RoleRequest) {
	role.Name = strings.TrimSpace(in.Name)
	role.Description = validation.TrimPtr(in.Description)
	role.AccessLevel = entity.AccessLevel(in.AccessLevel)
	role.BaseSalary = in.BaseSalary
	role.DefaultCommission = in.DefaultCommission
	if in.Active != nil {
		role.Active = *in.Active
	}
}
