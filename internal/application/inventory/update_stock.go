package inventory

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/micro-erp/internal/domain"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	domaininv "github.com/jhoicas/micro-erp/internal/domain/inventory"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
	"github.com/jhoicas/micro-erp/internal/domain/validation"
)

// UpdateStockUseCase único camino para cambiar estoque_atual: bloquea la fila del producto
// (SELECT FOR UPDATE), aplica la entrada o salida, registra el movimiento y hace Commit o Rollback.
type UpdateStockUseCase struct {
	txRunner TxRunner
	movRepo  repository.InventoryMovementRepository
}

// NewUpdateStockUseCase construye el caso de uso.
func NewUpdateStockUseCase(txRunner TxRunner, movRepo repository.InventoryMovementRepository) *UpdateStockUseCase {
	return &UpdateStockUseCase{txRunner: txRunner, movRepo: movRepo}
}

// StockChange entrada de un movimiento de estoque.
type StockChange struct {
	ProductID int64
	Quantity  int
	Direction entity.MovementDirection
	Reason    string
	SaleID    *int64
	UnitCost  *decimal.Decimal // en una entrada recalcula preco_custo por costo médio ponderado
}

// StockResult estado del producto tras el movimiento.
type StockResult struct {
	ProductID   int64 `json:"produto_id"`
	MovementID  int64 `json:"movimentacao_id"`
	StockBefore int   `json:"estoque_anterior"`
	StockAfter  int   `json:"novo_estoque"`
}

// UpdateStock valida, abre la transacción y delega en ApplyInTx.
func (uc *UpdateStockUseCase) UpdateStock(ctx context.Context, actor *entity.Principal, in StockChange) (*StockResult, error) {
	if err := validateChange(in); err != nil {
		return nil, err
	}
	var result *StockResult
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.InventoryMovementRepository) error {
		var err error
		result, err = uc.ApplyInTx(ctx, productRepo, movRepo, actorID(actor), in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyInTx aplica el movimiento usando los repositorios del caller (misma transacción).
// Si retorna error (ej: *domain.InsufficientStockError), el caller debe hacer rollback;
// en ese caso no se escribió nada.
func (uc *UpdateStockUseCase) ApplyInTx(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	actorID *int64,
	in StockChange,
) (*StockResult, error) {
	if err := validateChange(in); err != nil {
		return nil, err
	}
	// Bloquea la fila del producto para evitar condiciones de carrera entre lecturas y escrituras
	product, err := productRepo.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Message: "Produto não encontrado"}
	}

	before := product.StockCurrent
	after := before + in.Quantity
	if in.Direction == entity.MovementOut {
		after = before - in.Quantity
	}
	if after < 0 {
		return nil, &domain.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Available:   before,
			Requested:   in.Quantity,
		}
	}

	if err := productRepo.SetStock(ctx, product.ID, after); err != nil {
		return nil, err
	}
	if in.Direction == entity.MovementIn && in.UnitCost != nil {
		cost := domaininv.WeightedAverageCost(before, product.CostPrice, in.Quantity, *in.UnitCost)
		if err := productRepo.SetCostPrice(ctx, product.ID, cost); err != nil {
			return nil, err
		}
	}
	mov := &entity.InventoryMovement{
		ProductID:   product.ID,
		Direction:   in.Direction,
		Quantity:    in.Quantity,
		StockBefore: before,
		StockAfter:  after,
		SaleID:      in.SaleID,
		EmployeeID:  actorID,
		Reason:      validation.TrimPtr(&in.Reason),
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return &StockResult{ProductID: product.ID, MovementID: mov.ID, StockBefore: before, StockAfter: after}, nil
}

// ListMovements histórico de movimientos.
func (uc *UpdateStockUseCase) ListMovements(ctx context.Context, f repository.MovementFilter) ([]entity.InventoryMovement, error) {
	return uc.movRepo.List(ctx, f)
}

func validateChange(in StockChange) error {
	var v validation.Errors
	v.Check(in.ProductID > 0, "Produto é obrigatório")
	v.Check(in.Quantity > 0, "Quantidade deve ser maior que zero")
	v.Check(in.Direction.Valid(), "Tipo de movimentação inválido")
	v.Check(len(strings.TrimSpace(in.Reason)) <= 200, "Motivo muito longo")
	if in.UnitCost != nil {
		v.Check(in.Direction == entity.MovementIn, "Custo unitário só se aplica a entradas")
		v.Check(!in.UnitCost.IsNegative(), "Custo unitário inválido")
	}
	return v.Err()
}

func actorID(p *entity.Principal) *int64 {
	if p == nil || p.EmployeeID == 0 {
		return nil
	}
	id := p.EmployeeID
	return &id
}
