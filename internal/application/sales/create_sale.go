package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/micro-erp/internal/application/dto"
	"github.com/jhoicas/micro-erp/internal/application/inventory"
	"github.com/jhoicas/micro-erp/internal/domain"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
	"github.com/jhoicas/micro-erp/internal/domain/validation"
)

var hundred = decimal.NewFromInt(100)

// CreateSaleUseCase crea la venta con sus items y comisiones en una sola transacción.
// Con decrementStock registra además una saída de estoque por item (venda_id enlazado).
type CreateSaleUseCase struct {
	txRunner       SalesTxRunner
	productRepo    repository.ProductRepository
	stock          StockApplier
	decrementStock bool
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner SalesTxRunner,
	productRepo repository.ProductRepository,
	stock StockApplier,
	decrementStock bool,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:       txRunner,
		productRepo:    productRepo,
		stock:          stock,
		decrementStock: decrementStock,
	}
}

// CreateSale valida, congela precios y comisiones de cada producto, calcula los totales
// y persiste cabecera, items y comisiones. Devuelve la venta con ID, numero_venda e items.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, actor *entity.Principal, in dto.CreateSaleRequest) (*entity.Sale, error) {
	// ── 1. Validar cabecera e items ──────────────────────────────────────────
	if err := validateSale(in); err != nil {
		return nil, err
	}

	// ── 2. Precios y comisiones (fuera de la tx, solo lectura) ────────────────
	items := make([]entity.SaleItem, 0, len(in.Items))
	subtotal := decimal.Zero
	for i, req := range in.Items {
		product, err := uc.productRepo.GetByID(ctx, req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("venda: obtener produto: %w", err)
		}
		if product == nil {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("Produto %d não encontrado", req.ProductID)}
		}
		if !product.Active {
			return nil, domain.NewValidationError("Produto inativo: " + product.Name)
		}
		item, err := priceItem(i, req, product)
		if err != nil {
			return nil, err
		}
		subtotal = subtotal.Add(item.Subtotal)
		items = append(items, item)
	}

	total := subtotal.Sub(in.Discount).Add(in.Surcharge)
	if !total.IsPositive() {
		return nil, domain.NewValidationError("Valor total inválido")
	}

	sale := newSale(in, subtotal, total)

	// ── 3. Cabecera, items, comisiones y estoque en la misma transacción ─────
	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		commissionRepo repository.CommissionRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for i := range items {
			items[i].SaleID = sale.ID
			if err := saleRepo.CreateItem(ctx, &items[i]); err != nil {
				return err
			}
			if err := createCommission(ctx, commissionRepo, sale, &items[i]); err != nil {
				return err
			}
		}
		if uc.decrementStock && sale.Status != entity.SaleQuote {
			return applySaleStock(ctx, uc.stock, productRepo, movRepo, actor, sale, items)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

func validateSale(in dto.CreateSaleRequest) error {
	var v validation.Errors
	v.Check(in.CustomerID > 0, "Cliente é obrigatório")
	v.Check(in.SalespersonID > 0, "Vendedor é obrigatório")
	v.Check(len(in.Items) > 0, "Pelo menos um item é obrigatório")
	v.Check(!in.Discount.IsNegative(), "Desconto inválido")
	v.Check(!in.Surcharge.IsNegative(), "Acréscimo inválido")
	v.Check(in.Installments >= 0, "Parcelas inválidas")
	if in.Status != "" {
		s := entity.SaleStatus(in.Status)
		v.Check(s.Valid() && s != entity.SaleCancelled, "Status da venda inválido")
	}
	for i, it := range in.Items {
		n := i + 1
		v.Check(it.ProductID > 0, fmt.Sprintf("Item %d: produto é obrigatório", n))
		v.Check(it.Quantity > 0, fmt.Sprintf("Item %d: quantidade deve ser maior que zero", n))
		v.Check(!it.ItemDiscount.IsNegative(), fmt.Sprintf("Item %d: desconto inválido", n))
		if it.UnitPrice != nil {
			v.Check(it.UnitPrice.IsPositive(), fmt.Sprintf("Item %d: preço unitário inválido", n))
		}
		if it.CommissionPercent != nil {
			v.Check(validation.Percent(*it.CommissionPercent), fmt.Sprintf("Item %d: comissão deve estar entre 0 e 100", n))
		}
	}
	return v.Err()
}

// priceItem subtotal = quantidade × preço − desconto; comissão = subtotal × pct / 100.
func priceItem(i int, req dto.SaleItemRequest, product *entity.Product) (entity.SaleItem, error) {
	price := product.SalePrice
	if req.UnitPrice != nil {
		price = *req.UnitPrice
	}
	pct := product.CommissionPercent
	if req.CommissionPercent != nil {
		pct = *req.CommissionPercent
	}
	sub := price.Mul(decimal.NewFromInt(int64(req.Quantity))).Sub(req.ItemDiscount).Round(2)
	if sub.IsNegative() {
		return entity.SaleItem{}, domain.NewValidationError(fmt.Sprintf("Item %d: desconto maior que o subtotal", i+1))
	}
	return entity.SaleItem{
		ProductID:         product.ID,
		Quantity:          req.Quantity,
		UnitPrice:         price,
		ItemDiscount:      req.ItemDiscount,
		Subtotal:          sub,
		CommissionPercent: pct,
		CommissionValue:   sub.Mul(pct).Div(hundred).Round(2),
		ProductCode:       product.Code,
		ProductName:       product.Name,
	}, nil
}

func newSale(in dto.CreateSaleRequest, subtotal, total decimal.Decimal) *entity.Sale {
	saleDate := time.Now()
	if in.SaleDate != nil {
		saleDate = in.SaleDate.Time
	}
	status := entity.SaleConfirmed
	if in.Status != "" {
		status = entity.SaleStatus(in.Status)
	}
	method := in.PaymentMethod
	if method == "" {
		method = entity.PaymentMethodDefault
	}
	installments := in.Installments
	if installments == 0 {
		installments = 1
	}
	return &entity.Sale{
		CustomerID:           in.CustomerID,
		SalespersonID:        in.SalespersonID,
		InstallationProtocol: validation.TrimPtr(in.InstallationProtocol),
		SaleDate:             saleDate,
		InstallationDate:     in.InstallationDate,
		Subtotal:             subtotal,
		Discount:             in.Discount,
		Surcharge:            in.Surcharge,
		Total:                total,
		PaymentMethod:        method,
		Installments:         installments,
		Status:               status,
		PaymentStatus:        entity.PaymentPending,
		Notes:                validation.TrimPtr(in.Notes),
		InternalNotes:        validation.TrimPtr(in.InternalNotes),
	}
}

// createCommission registra la comisión del vendedor por el item; items sin comisión no generan fila.
func createCommission(ctx context.Context, repo repository.CommissionRepository, sale *entity.Sale, item *entity.SaleItem) error {
	if item.CommissionValue.IsZero() {
		return nil
	}
	itemID := item.ID
	return repo.Create(ctx, &entity.Commission{
		SaleID:     sale.ID,
		EmployeeID: sale.SalespersonID,
		SaleItemID: &itemID,
		SaleValue:  item.Subtotal,
		Percent:    item.CommissionPercent,
		Value:      item.CommissionValue,
		Status:     entity.PaymentPending,
	})
}

// applySaleStock registra una saída por item enlazada a la venta.
func applySaleStock(
	ctx context.Context,
	stock StockApplier,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	actor *entity.Principal,
	sale *entity.Sale,
	items []entity.SaleItem,
) error {
	saleID := sale.ID
	for _, it := range items {
		if _, err := stock.ApplyInTx(ctx, productRepo, movRepo, actorRef(actor), inventory.StockChange{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Direction: entity.MovementOut,
			Reason:    "Venda " + sale.Number,
			SaleID:    &saleID,
		}); err != nil {
			return err
		}
	}
	return nil
}

func actorRef(p *entity.Principal) *int64 {
	if p == nil || p.EmployeeID == 0 {
		return nil
	}
	id := p.EmployeeID
	return &id
}
