package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/micro-erp/internal/domain/entity"
)

// SaleItemRequest línea pedida. Sin UnitPrice/CommissionPercent se toman del producto.
type SaleItemRequest struct {
	ProductID         int64            `json:"produto_id"`
	Quantity          int              `json:"quantidade"`
	UnitPrice         *decimal.Decimal `json:"preco_unitario"`
	ItemDiscount      decimal.Decimal  `json:"desconto_item"`
	CommissionPercent *decimal.Decimal `json:"comissao_percentual"`
}

// CreateSaleRequest cuerpo de POST /api/vendas. Los totales se calculan en el servidor.
type CreateSaleRequest struct {
	CustomerID           int64             `json:"cliente_id"`
	SalespersonID        int64             `json:"vendedor_id"`
	InstallationProtocol *string           `json:"protocolo_instalacao"`
	SaleDate             *entity.Date      `json:"data_venda"`
	InstallationDate     *entity.Date      `json:"data_instalacao"`
	Discount             decimal.Decimal   `json:"desconto"`
	Surcharge            decimal.Decimal   `json:"acrescimo"`
	PaymentMethod        string            `json:"forma_pagamento"`
	Installments         int               `json:"parcelas"`
	Status               string            `json:"status_venda"`
	Notes                *string           `json:"observacoes"`
	InternalNotes        *string           `json:"observacoes_internas"`
	Items                []SaleItemRequest `json:"itens"`
}

// SaleStatusRequest cuerpo de PUT /api/vendas/:id/status.
type SaleStatusRequest struct {
	Status string `json:"status_venda"`
}

// SalesReport relatório de ventas por período.
type SalesReport struct {
	Sales   []entity.Sale `json:"vendas"`
	Summary SalesSummary  `json:"resumo"`
}

// SalesSummary totales del período.
type SalesSummary struct {
	SalesCount    int             `json:"total_vendas"`
	Total         decimal.Decimal `json:"valor_total"`
	AverageTicket decimal.Decimal `json:"ticket_medio"`
}

// CommissionsReport comisiones pendientes y su suma.
type CommissionsReport struct {
	Commissions  []entity.Commission `json:"comissoes"`
	TotalPending decimal.Decimal     `json:"total_pendente"`
}
