package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnitDefault unidad de medida cuando no se informa.
const UnitDefault = "UN"

// Product producto o servicio vendible. StockCurrent solo cambia vía movimientos de estoque.
type Product struct {
	ID                int64           `db:"id" json:"id"`
	Code              string          `db:"codigo" json:"codigo"`
	Name              string          `db:"nome" json:"nome"`
	Description       *string         `db:"descricao" json:"descricao"`
	CategoryID        *int64          `db:"categoria_id" json:"categoria_id"`
	CostPrice         decimal.Decimal `db:"preco_custo" json:"preco_custo"`
	SalePrice         decimal.Decimal `db:"preco_venda" json:"preco_venda"`
	CommissionPercent decimal.Decimal `db:"comissao_percentual" json:"comissao_percentual"`
	StockCurrent      int             `db:"estoque_atual" json:"estoque_atual"`
	StockMinimum      int             `db:"estoque_minimo" json:"estoque_minimo"`
	Unit              string          `db:"unidade_medida" json:"unidade_medida"`
	Active            bool            `db:"ativo" json:"ativo"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`

	CategoryName *string `db:"categoria_nome" json:"categoria_nome"`
}

// LowStock indica estoque_atual <= estoque_minimo.
func (p *Product) LowStock() bool {
	return p.StockCurrent <= p.StockMinimum
}
