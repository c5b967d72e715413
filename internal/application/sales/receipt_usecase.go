package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

// ReceiptUseCase genera el comprovante PDF de una venta.
type ReceiptUseCase struct {
	sales        *SaleUseCase
	customerRepo repository.CustomerRepository
	generator    ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(sales *SaleUseCase, customerRepo repository.CustomerRepository, generator ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{sales: sales, customerRepo: customerRepo, generator: generator}
}

// Receipt devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *ReceiptUseCase) Receipt(ctx context.Context, saleID int64) ([]byte, string, error) {
	// ── 1. Venta con items ───────────────────────────────────────────────────
	sale, err := uc.sales.Get(ctx, saleID)
	if err != nil {
		return nil, "", err
	}

	// ── 2. Cliente (documento y dirección) ───────────────────────────────────
	customer, err := uc.customerRepo.GetByID(ctx, sale.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("comprovante: obtener cliente: %w", err)
	}

	// ── 3. Generar PDF ───────────────────────────────────────────────────────
	pdf, err := uc.generator.GenerateSaleReceipt(ctx, sale, customer)
	if err != nil {
		return nil, "", fmt.Errorf("comprovante: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("venda_%s.pdf", sale.Number), nil
}
