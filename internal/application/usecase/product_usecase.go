package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/micro-erp/internal/application/dto"
	"github.com/jhoicas/micro-erp/internal/application/inventory"
	"github.com/jhoicas/micro-erp/internal/domain"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
	"github.com/jhoicas/micro-erp/internal/domain/validation"
)

// codeAttempts reintentos al generar un código P### que otra petición tomó primero.
const codeAttempts = 3

// ProductUseCase casos de uso CRUD para productos. El estoque se maneja vía movimientos.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
	stock    StockApplier
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner inventory.TxRunner, stock StockApplier) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner, stock: stock}
}

// List lista productos con el nombre de la categoría.
func (uc *ProductUseCase) List(ctx context.Context, f repository.ProductFilter) ([]entity.Product, error) {
	return uc.repo.List(ctx, f)
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.NotFoundError{Message: "Produto não encontrado"}
	}
	return p, nil
}

// Create crea el producto con estoque 0; un estoque inicial > 0 entra como movimiento
// "Estoque inicial" en la misma transacción. Sin código se genera P### y se reintenta si choca.
func (uc *ProductUseCase) Create(ctx context.Context, actor *entity.Principal, in dto.ProductRequest) (*entity.Product, error) {
	if err := validateProduct(in, true); err != nil {
		return nil, err
	}

	generate := validation.Blank(in.Code)
	for attempt := 1; ; attempt++ {
		p := &entity.Product{Active: true}
		applyProduct(p, in)
		if generate {
			code, err := uc.nextCode(ctx)
			if err != nil {
				return nil, err
			}
			p.Code = code
		}
		err := uc.createWithStock(ctx, actor, p, in.InitialStock)
		var dup *domain.DuplicateError
		if generate && attempt < codeAttempts && errors.As(err, &dup) && dup.Field == "codigo" {
			continue
		}
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

func (uc *ProductUseCase) createWithStock(ctx context.Context, actor *entity.Principal, p *entity.Product, initial int) error {
	return uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.InventoryMovementRepository) error {
		if err := productRepo.Create(ctx, p); err != nil {
			return err
		}
		if initial == 0 {
			return nil
		}
		res, err := uc.stock.ApplyInTx(ctx, productRepo, movRepo, actorID(actor), inventory.StockChange{
			ProductID: p.ID,
			Quantity:  initial,
			Direction: entity.MovementIn,
			Reason:    "Estoque inicial",
		})
		if err != nil {
			return err
		}
		p.StockCurrent = res.StockAfter
		return nil
	})
}

func (uc *ProductUseCase) nextCode(ctx context.Context) (string, error) {
	n, err := uc.repo.MaxGeneratedCode(ctx)
	if err != nil {
		return "", fmt.Errorf("produto: gerar código: %w", err)
	}
	return fmt.Sprintf("P%03d", n+1), nil
}

// Update reemplaza los datos; estoque_atual no cambia. Sin código conserva el actual.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.ProductRequest) (*entity.Product, error) {
	if err := validateProduct(in, false); err != nil {
		return nil, err
	}
	p, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	code := p.Code
	applyProduct(p, in)
	if validation.Blank(in.Code) {
		p.Code = code
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("produto: actualizar: %w", err)
	}
	return p, nil
}

// Delete inactiva el producto vendido alguna vez; si no, lo borra.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) (*dto.DeleteResult, error) {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return nil, err
	}
	n, err := uc.repo.CountSaleItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		if err := uc.repo.Deactivate(ctx, id); err != nil {
			return nil, err
		}
		return &dto.DeleteResult{Deactivated: true, Message: "Produto inativado (possui vendas cadastradas)"}, nil
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &dto.DeleteResult{Message: "Produto excluído com sucesso"}, nil
}

func validateProduct(in dto.ProductRequest, create bool) error {
	var v validation.Errors
	v.Required(in.Name, "Nome é obrigatório")
	v.Check(in.SalePrice.IsPositive(), "Preço de venda deve ser maior que zero")
	v.Check(!in.CostPrice.IsNegative(), "Preço de custo inválido")
	v.Check(validation.Percent(in.CommissionPercent), "Percentual de comissão inválido")
	v.Check(in.StockMinimum >= 0, "Estoque mínimo inválido")
	v.Check(len(strings.TrimSpace(in.Code)) <= 50, "Código muito longo")
	if create {
		v.Check(in.InitialStock >= 0, "Estoque inicial inválido")
	}
	return v.Err()
}

func applyProduct(p *entity.Product, in dto.ProductRequest) {
	p.Code = strings.TrimSpace(in.Code)
	p.Name = strings.TrimSpace(in.Name)
	p.Description = validation.TrimPtr(in.Description)
	p.CategoryID = in.CategoryID
	p.CostPrice = in.CostPrice
	p.SalePrice = in.SalePrice
	p.CommissionPercent = in.CommissionPercent
	p.StockMinimum = in.StockMinimum
	p.Unit = strings.TrimSpace(in.Unit)
	if p.Unit == "" {
		p.Unit = entity.UnitDefault
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
}

func actorID(p *entity.Principal) *int64 {
	if p == nil || p.EmployeeID == 0 {
		return nil
	}
	id := p.EmployeeID
	return &id
}
