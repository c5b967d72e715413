package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/micro-erp/internal/application/dto"
	"github.com/jhoicas/micro-erp/internal/domain"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
	"github.com/jhoicas/micro-erp/internal/domain/validation"
	"github.com/jhoicas/micro-erp/pkg/taxid"
)

// EmployeeUseCase casos de uso CRUD para colaboradores.
type EmployeeUseCase struct {
	repo     repository.EmployeeRepository
	roleRepo repository.RoleRepository
	hashCost int
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository, roleRepo repository.RoleRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, roleRepo: roleRepo, hashCost: bcrypt.DefaultCost}
}

// List lista colaboradores con el nombre del cargo.
func (uc *EmployeeUseCase) List(ctx context.Context, f repository.EmployeeFilter) ([]entity.Employee, error) {
	return uc.repo.List(ctx, f)
}

// GetByID obtiene un colaborador.
func (uc *EmployeeUseCase) GetByID(ctx context.Context, id int64) (*entity.Employee, error) {
	emp, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, &domain.NotFoundError{Message: "Colaborador não encontrado"}
	}
	return emp, nil
}

// Create valida, hashea la senha y persiste. cpf o usuario repetidos llegan como *domain.DuplicateError.
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.EmployeeRequest) (*entity.Employee, error) {
	if err := validateEmployee(in, true); err != nil {
		return nil, err
	}
	if err := uc.ensureRole(ctx, in.RoleID); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.hashCost)
	if err != nil {
		return nil, err
	}
	emp := &entity.Employee{Active: true, PasswordHash: string(hash)}
	applyEmployee(emp, in)
	if err := uc.repo.Create(ctx, emp); err != nil {
		return nil, fmt.Errorf("colaborador: crear: %w", err)
	}
	return emp, nil
}

// Update reemplaza los datos; la senha solo cambia si viene informada.
func (uc *EmployeeUseCase) Update(ctx context.Context, id int64, in dto.EmployeeRequest) (*entity.Employee, error) {
	if err := validateEmployee(in, false); err != nil {
		return nil, err
	}
	emp, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp.RoleID != in.RoleID {
		if err := uc.ensureRole(ctx, in.RoleID); err != nil {
			return nil, err
		}
	}
	applyEmployee(emp, in)
	if err := uc.repo.Update(ctx, emp); err != nil {
		return nil, fmt.Errorf("colaborador: actualizar: %w", err)
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.hashCost)
		if err != nil {
			return nil, err
		}
		if err := uc.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
			return nil, fmt.Errorf("colaborador: senha: %w", err)
		}
	}
	return emp, nil
}

// Delete inactiva al colaborador con vendas; si no tiene, lo borra.
func (uc *EmployeeUseCase) Delete(ctx context.Context, id int64) (*dto.DeleteResult, error) {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return nil, err
	}
	n, err := uc.repo.CountSales(ctx, id)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		if err := uc.repo.Deactivate(ctx, id); err != nil {
			return nil, err
		}
		return &dto.DeleteResult{Deactivated: true, Message: "Colaborador inativado (possui vendas cadastradas)"}, nil
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &dto.DeleteResult{Message: "Colaborador excluído com sucesso"}, nil
}

// Unlock levanta el bloqueo por intentos fallidos.
func (uc *EmployeeUseCase) Unlock(ctx context.Context, id int64) error {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.repo.Unlock(ctx, id)
}

func (uc *EmployeeUseCase) ensureRole(ctx context.Context, roleID int64) error {
	role, err := uc.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return &domain.NotFoundError{Message: "Cargo não encontrado"}
	}
	return nil
}

func validateEmployee(in dto.EmployeeRequest, create bool) error {
	var v validation.Errors
	v.Required(in.FirstName, "Nome é obrigatório")
	v.Required(in.LastName, "Sobrenome é obrigatório")
	if validation.Blank(in.CPF) {
		v.Add("CPF é obrigatório")
	} else {
		v.Check(validation.CPF(in.CPF), "CPF inválido")
	}
	v.Check(in.BirthDate != nil, "Data de nascimento é obrigatória")
	v.Check(in.RoleID > 0, "Cargo é obrigatório")
	v.Required(in.Username, "Usuário é obrigatório")
	if create {
		v.Check(in.Password != "", "Senha é obrigatória")
	}
	if !validation.BlankPtr(in.Email) {
		v.Check(validation.Email(*in.Email), "Email inválido")
	}
	if in.CustomCommission != nil {
		v.Check(validation.Percent(*in.CustomCommission), "Comissão deve estar entre 0 e 100%")
	}
	return v.Err()
}

func applyEmployee(e *entity.Employee, in dto.EmployeeRequest) {
	e.FirstName = strings.TrimSpace(in.FirstName)
	e.LastName = strings.TrimSpace(in.LastName)
	e.BirthDate = in.BirthDate
	e.CPF = taxid.Digits(in.CPF)
	e.RG = validation.TrimPtr(in.RG)
	e.Phone = validation.TrimPtr(in.Phone)
	e.Mobile = validation.TrimPtr(in.Mobile)
	e.Email = validation.TrimPtr(in.Email)
	e.Address = toAddress(in.AddressRequest)
	e.RoleID = in.RoleID
	e.HireDate = in.HireDate
	e.Salary = in.Salary
	e.CustomCommission = in.CustomCommission
	e.Username = strings.TrimSpace(in.Username)
	if in.Active != nil {
		e.Active = *in.Active
	}
}

func toAddress(in dto.AddressRequest) entity.Address {
	return entity.Address{
		ZipCode:    validation.TrimPtr(in.ZipCode),
		Street:     validation.TrimPtr(in.Street),
		Number:     validation.TrimPtr(in.Number),
		Complement: validation.TrimPtr(in.Complement),
		District:   validation.TrimPtr(in.District),
		City:       validation.TrimPtr(in.City),
		State:      validation.TrimPtr(in.State),
	}
}
