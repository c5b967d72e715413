package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/micro-erp/internal/application/dto"
	"github.com/jhoicas/micro-erp/internal/domain"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
	"github.com/jhoicas/micro-erp/internal/domain/validation"
	"github.com/jhoicas/micro-erp/pkg/taxid"
)

// CustomerUseCase casos de uso CRUD para clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// List lista clientes; Search busca en nombres, cpf y cnpj.
func (uc *CustomerUseCase) List(ctx context.Context, f repository.CustomerFilter) ([]entity.Customer, error) {
	if f.PersonType != "" && !f.PersonType.Valid() {
		return nil, domain.NewValidationError("Tipo de pessoa inválido")
	}
	return uc.repo.List(ctx, f)
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &domain.NotFoundError{Message: "Cliente não encontrado"}
	}
	return c, nil
}

// Create valida según el tipo de pessoa y persiste; cpf o cnpj repetidos llegan como *domain.DuplicateError.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*entity.Customer, error) {
	if err := validateCustomer(in); err != nil {
		return nil, err
	}
	c := &entity.Customer{Active: true}
	applyCustomer(c, in)
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("cliente: crear: %w", err)
	}
	return c, nil
}

// Update reemplaza los datos del cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, id int64, in dto.CustomerRequest) (*entity.Customer, error) {
	if err := validateCustomer(in); err != nil {
		return nil, err
	}
	c, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyCustomer(c, in)
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("cliente: actualizar: %w", err)
	}
	return c, nil
}

// Delete inactiva el cliente con vendas; si no tiene, lo borra.
func (uc *CustomerUseCase) Delete(ctx context.Context, id int64) (*dto.DeleteResult, error) {
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
		return &dto.DeleteResult{Deactivated: true, Message: "Cliente inativado (possui vendas cadastradas)"}, nil
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &dto.DeleteResult{Message: "Cliente excluído com sucesso"}, nil
}

func validateCustomer(in dto.CustomerRequest) error {
	var v validation.Errors
	pt := entity.PersonType(in.PersonType)
	if in.PersonType == "" {
		v.Add("Tipo de pessoa é obrigatório")
	} else {
		v.Check(pt.Valid(), "Tipo de pessoa inválido")
	}
	v.Check(!validation.BlankPtr(in.Street), "Endereço é obrigatório")
	v.Check(!validation.BlankPtr(in.City), "Cidade é obrigatória")
	v.Check(!validation.BlankPtr(in.State), "Estado é obrigatório")

	switch pt {
	case entity.PersonIndividual:
		v.Check(!validation.BlankPtr(in.FirstName), "Nome é obrigatório para pessoa física")
		if validation.BlankPtr(in.CPF) {
			v.Add("CPF é obrigatório para pessoa física")
		} else {
			v.Check(validation.CPF(*in.CPF), "CPF inválido")
		}
	case entity.PersonCompany:
		v.Check(!validation.BlankPtr(in.LegalName), "Razão social é obrigatória para pessoa jurídica")
		if validation.BlankPtr(in.CNPJ) {
			v.Add("CNPJ é obrigatório para pessoa jurídica")
		} else {
			v.Check(validation.CNPJ(*in.CNPJ), "CNPJ inválido")
		}
	}
	if !validation.BlankPtr(in.Email) {
		v.Check(validation.Email(*in.Email), "Email inválido")
	}
	return v.Err()
}

// applyCustomer copia el request y anula la identidad del otro tipo de pessoa.
func applyCustomer(c *entity.Customer, in dto.CustomerRequest) {
	c.PersonType = entity.PersonType(in.PersonType)
	c.FirstName, c.LastName, c.CPF, c.RG, c.BirthDate = nil, nil, nil, nil, nil
	c.LegalName, c.TradeName, c.CNPJ, c.StateRegistration = nil, nil, nil, nil
	if c.PersonType == entity.PersonIndividual {
		c.FirstName = validation.TrimPtr(in.FirstName)
		c.LastName = validation.TrimPtr(in.LastName)
		c.CPF = digitsPtr(in.CPF)
		c.RG = validation.TrimPtr(in.RG)
		c.BirthDate = in.BirthDate
	} else {
		c.LegalName = validation.TrimPtr(in.LegalName)
		c.TradeName = validation.TrimPtr(in.TradeName)
		c.CNPJ = digitsPtr(in.CNPJ)
		c.StateRegistration = validation.TrimPtr(in.StateRegistration)
	}
	c.Phone = validation.TrimPtr(in.Phone)
	c.Mobile = validation.TrimPtr(in.Mobile)
	c.Email = validation.TrimPtr(in.Email)
	c.Address = toAddress(in.AddressRequest)
	c.Notes = validation.TrimPtr(in.Notes)
	if in.Active != nil {
		c.Active = *in.Active
	}
}

func digitsPtr(s *string) *string {
	if s == nil {
		return nil
	}
	d := taxid.Digits(*s)
	if d == "" {
		return nil
	}
	return &d
}
