package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Commission comisión del vendedor por un item de venta.
type Commission struct {
	ID         int64           `db:"id" json:"id"`
	SaleID     int64           `db:"venda_id" json:"venda_id"`
	EmployeeID int64           `db:"colaborador_id" json:"colaborador_id"`
	SaleItemID *int64          `db:"item_venda_id" json:"item_venda_id"`
	SaleValue  decimal.Decimal `db:"valor_venda" json:"valor_venda"`
	Percent    decimal.Decimal `db:"percentual_comissao" json:"percentual_comissao"`
	Value      decimal.Decimal `db:"valor_comissao" json:"valor_comissao"`
	Status     PaymentStatus   `db:"status_pagamento" json:"status_pagamento"`
	PaidAt     *time.Time      `db:"data_pagamento" json:"data_pagamento"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`

	SaleNumber   string    `db:"numero_venda" json:"numero_venda"`
	SaleDate     time.Time `db:"data_venda" json:"data_venda"`
	EmployeeName string    `db:"colaborador_nome" json:"colaborador_nome"`
}
