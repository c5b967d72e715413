package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado comercial de la venta.
type SaleStatus string

// Estados de venta.
const (
	SaleQuote     SaleStatus = "orcamento"
	SaleConfirmed SaleStatus = "confirmada"
	SaleInstalled SaleStatus = "instalada"
	SaleCancelled SaleStatus = "cancelada"
)

// Valid indica si el estado es uno de los cuatro conocidos.
func (s SaleStatus) Valid() bool {
	switch s {
	case SaleQuote, SaleConfirmed, SaleInstalled, SaleCancelled:
		return true
	}
	return false
}

// PaymentStatus estado de pago de venta y comisión.
type PaymentStatus string

// Estados de pago.
const (
	PaymentPending   PaymentStatus = "pendente"
	PaymentPaid      PaymentStatus = "pago"
	PaymentCancelled PaymentStatus = "cancelado"
)

// PaymentMethodDefault forma de pago cuando no se informa.
const PaymentMethodDefault = "dinheiro"

// Sale cabecera de venta. Subtotal y Total se calculan a partir de los items.
type Sale struct {
	ID                   int64           `db:"id" json:"id"`
	Number               string          `db:"numero_venda" json:"numero_venda"`
	CustomerID           int64           `db:"cliente_id" json:"cliente_id"`
	SalespersonID        int64           `db:"vendedor_id" json:"vendedor_id"`
	InstallationProtocol *string         `db:"protocolo_instalacao" json:"protocolo_instalacao"`
	SaleDate             time.Time       `db:"data_venda" json:"data_venda"`
	InstallationDate     *Date           `db:"data_instalacao" json:"data_instalacao"`
	Subtotal             decimal.Decimal `db:"subtotal" json:"subtotal"`
	Discount             decimal.Decimal `db:"desconto" json:"desconto"`
	Surcharge            decimal.Decimal `db:"acrescimo" json:"acrescimo"`
	Total                decimal.Decimal `db:"valor_total" json:"valor_total"`
	PaymentMethod        string          `db:"forma_pagamento" json:"forma_pagamento"`
	Installments         int             `db:"parcelas" json:"parcelas"`
	Status               SaleStatus      `db:"status_venda" json:"status_venda"`
	PaymentStatus        PaymentStatus   `db:"status_pagamento" json:"status_pagamento"`
	Notes                *string         `db:"observacoes" json:"observacoes"`
	InternalNotes        *string         `db:"observacoes_internas" json:"observacoes_internas"`
	CreatedAt            time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at" json:"updated_at"`

	CustomerName    string `db:"cliente_nome" json:"cliente_nome"`
	SalespersonName string `db:"vendedor_nome" json:"vendedor_nome"`

	Items []SaleItem `db:"-" json:"itens,omitempty"`
}

// SaleItem línea de venta con los precios y la comisión congelados al crear.
type SaleItem struct {
	ID                int64           `db:"id" json:"id"`
	SaleID            int64           `db:"venda_id" json:"venda_id"`
	ProductID         int64           `db:"produto_id" json:"produto_id"`
	Quantity          int             `db:"quantidade" json:"quantidade"`
	UnitPrice         decimal.Decimal `db:"preco_unitario" json:"preco_unitario"`
	ItemDiscount      decimal.Decimal `db:"desconto_item" json:"desconto_item"`
	Subtotal          decimal.Decimal `db:"subtotal" json:"subtotal"`
	CommissionPercent decimal.Decimal `db:"comissao_percentual" json:"comissao_percentual"`
	CommissionValue   decimal.Decimal `db:"comissao_valor" json:"comissao_valor"`

	ProductCode string `db:"produto_codigo" json:"produto_codigo"`
	ProductName string `db:"produto_nome" json:"produto_nome"`
}
