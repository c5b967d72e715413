package repository

import (
	"context"

	"github.com/jhoicas/micro-erp/internal/domain/entity"
)

// CustomerFilter filtros del listado de clientes.
type CustomerFilter struct {
	Active     *bool
	PersonType entity.PersonType
	Search     string // nome, sobrenome, razao_social, cpf o cnpj
}

// CustomerRepository define el puerto de persistencia para clientes.
type CustomerRepository interface {
	List(ctx context.Context, f CustomerFilter) ([]entity.Customer, error)
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	// Create persiste el cliente; cpf o cnpj repetidos devuelven *domain.DuplicateError.
	Create(ctx context.Context, c *entity.Customer) error
	Update(ctx context.Context, c *entity.Customer) error
	Delete(ctx context.Context, id int64) error
	Deactivate(ctx context.Context, id int64) error
	CountSales(ctx context.Context, id int64) (int, error)
}
