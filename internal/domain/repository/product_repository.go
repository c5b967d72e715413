package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/micro-erp/internal/domain/entity"
)

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Active     *bool
	CategoryID *int64
	LowStock   bool // estoque_atual <= estoque_minimo
	Search     string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	List(ctx context.Context, f ProductFilter) ([]entity.Product, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE); solo tiene sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	// Create persiste el producto con el estoque_atual recibido; codigo repetido devuelve *domain.DuplicateError.
	Create(ctx context.Context, p *entity.Product) error
	// Update no modifica estoque_atual.
	Update(ctx context.Context, p *entity.Product) error
	SetStock(ctx context.Context, id int64, stock int) error
	// SetCostPrice fija preco_custo (costo médio tras una entrada con custo_unitario).
	SetCostPrice(ctx context.Context, id int64, cost decimal.Decimal) error
	Delete(ctx context.Context, id int64) error
	Deactivate(ctx context.Context, id int64) error
	CountSaleItems(ctx context.Context, id int64) (int, error)
	// MaxGeneratedCode devuelve el mayor N de los códigos "P<N>" existentes (0 si no hay).
	MaxGeneratedCode(ctx context.Context) (int, error)
}
