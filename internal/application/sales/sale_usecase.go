package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/micro-erp/internal/application/inventory"
	"github.com/jhoicas/micro-erp/internal/domain"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

// SaleUseCase consultas de ventas y cambio de estado.
type SaleUseCase struct {
	saleRepo       repository.SaleRepository
	txRunner       SalesTxRunner
	stock          StockApplier
	decrementStock bool
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(saleRepo repository.SaleRepository, txRunner SalesTxRunner, stock StockApplier, decrementStock bool) *SaleUseCase {
	return &SaleUseCase{saleRepo: saleRepo, txRunner: txRunner, stock: stock, decrementStock: decrementStock}
}

// ListFilter filtros de consulta; las fechas son inclusivas en ambos extremos.
type ListFilter struct {
	DateFrom      *entity.Date
	DateTo        *entity.Date
	SalespersonID *int64
	CustomerID    *int64
	Status        string
}

// List devuelve las ventas más recientes primero.
func (uc *SaleUseCase) List(ctx context.Context, f ListFilter) ([]entity.Sale, error) {
	rf, err := f.toRepository()
	if err != nil {
		return nil, err
	}
	return uc.saleRepo.List(ctx, rf)
}

func (f ListFilter) toRepository() (repository.SaleFilter, error) {
	rf := repository.SaleFilter{SalespersonID: f.SalespersonID, CustomerID: f.CustomerID}
	if f.Status != "" {
		s := entity.SaleStatus(f.Status)
		if !s.Valid() {
			return rf, domain.NewValidationError("Status da venda inválido")
		}
		rf.Status = s
	}
	if f.DateFrom != nil {
		from := f.DateFrom.Time
		rf.From = &from
	}
	if f.DateTo != nil {
		to := f.DateTo.Time.AddDate(0, 0, 1)
		rf.To = &to
	}
	if rf.From != nil && rf.To != nil && !rf.From.Before(*rf.To) {
		return rf, domain.NewValidationError("Período inválido")
	}
	return rf, nil
}

// Get devuelve la cabecera con sus items.
func (uc *SaleUseCase) Get(ctx context.Context, id int64) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("venda: obtener: %w", err)
	}
	if sale == nil {
		return nil, &domain.NotFoundError{Message: "Venda não encontrada"}
	}
	items, err := uc.saleRepo.ListItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("venda: obtener itens: %w", err)
	}
	sale.Items = items
	return sale, nil
}

// UpdateStatus mueve la venta entre los cuatro estados bajo bloqueo de su fila.
// cancelada es terminal: cancela las comisiones pendientes y devuelve al estoque
// las saídas de la venta. Con baja de estoque activa no se vuelve a orcamento.
func (uc *SaleUseCase) UpdateStatus(ctx context.Context, actor *entity.Principal, id int64, status string) error {
	next := entity.SaleStatus(status)
	if !next.Valid() {
		return domain.NewValidationError("Status da venda inválido")
	}
	return uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		commissionRepo repository.CommissionRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		sale, err := saleRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return &domain.NotFoundError{Message: "Venda não encontrada"}
		}
		if sale.Status == next {
			return nil
		}
		if sale.Status == entity.SaleCancelled {
			return &domain.ConflictError{Message: "Venda cancelada não pode ser alterada"}
		}
		// con baja de estoque activa el estoque ya salió; no hay vuelta a orcamento
		if uc.decrementStock && next == entity.SaleQuote {
			return &domain.ConflictError{Message: "Venda confirmada não pode voltar a orçamento"}
		}
		if err := saleRepo.UpdateStatus(ctx, id, next); err != nil {
			return err
		}

		switch {
		case next == entity.SaleCancelled:
			if err := commissionRepo.CancelBySale(ctx, id); err != nil {
				return err
			}
			return uc.restoreStock(ctx, productRepo, movRepo, actor, sale)
		case uc.decrementStock && sale.Status == entity.SaleQuote:
			// orçamento confirmado: recién ahora sale del estoque
			items, err := saleRepo.ListItems(ctx, id)
			if err != nil {
				return err
			}
			return applySaleStock(ctx, uc.stock, productRepo, movRepo, actor, sale, items)
		}
		return nil
	})
}

// restoreStock registra una entrada por cada saída enlazada a la venta.
func (uc *SaleUseCase) restoreStock(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	actor *entity.Principal,
	sale *entity.Sale,
) error {
	saleID := sale.ID
	movs, err := movRepo.List(ctx, repository.MovementFilter{SaleID: &saleID})
	if err != nil {
		return err
	}
	for _, m := range movs {
		if m.Direction != entity.MovementOut {
			continue
		}
		if _, err := uc.stock.ApplyInTx(ctx, productRepo, movRepo, actorRef(actor), inventory.StockChange{
			ProductID: m.ProductID,
			Quantity:  m.Quantity,
			Direction: entity.MovementIn,
			Reason:    "Cancelamento da venda " + sale.Number,
			SaleID:    &saleID,
		}); err != nil {
			return err
		}
	}
	return nil
}
