package sales

import (
	"context"

	"github.com/jhoicas/micro-erp/internal/application/inventory"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

// SalesTxRunner ejecuta una función dentro de una transacción que incluye repos de ventas, comisiones y estoque.
type SalesTxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		commissionRepo repository.CommissionRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}

// StockApplier integra ventas con el motor de estoque.
// ApplyInTx usa los repositorios del caller (misma transacción); si retorna error
// (ej: *domain.InsufficientStockError), el caller debe hacer rollback.
type StockApplier interface {
	ApplyInTx(
		ctx context.Context,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		actorID *int64,
		in inventory.StockChange,
	) (*inventory.StockResult, error)
}

// ReceiptPDFGenerator genera el comprovante de venta en PDF.
type ReceiptPDFGenerator interface {
	GenerateSaleReceipt(ctx context.Context, sale *entity.Sale, customer *entity.Customer) ([]byte, error)
}
