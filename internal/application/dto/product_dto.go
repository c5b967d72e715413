package dto

import "github.com/shopspring/decimal"

// ProductRequest cuerpo de alta/edición de producto. InitialStock solo se usa en el alta.
type ProductRequest struct {
	Code              string          `json:"codigo"`
	Name              string          `json:"nome"`
	Description       *string         `json:"descricao"`
	CategoryID        *int64          `json:"categoria_id"`
	CostPrice         decimal.Decimal `json:"preco_custo"`
	SalePrice         decimal.Decimal `json:"preco_venda"`
	CommissionPercent decimal.Decimal `json:"comissao_percentual"`
	InitialStock      int             `json:"estoque_atual"`
	StockMinimum      int             `json:"estoque_minimo"`
	Unit              string          `json:"unidade_medida"`
	Active            *bool           `json:"ativo"`
}

// CategoryRequest cuerpo de alta de categoría.
type CategoryRequest struct {
	Name        string  `json:"nome"`
	Description *string `json:"descricao"`
}

// StockMovementRequest cuerpo de POST /api/estoque/movimentacoes.
type StockMovementRequest struct {
	ProductID int64            `json:"produto_id"`
	Quantity  int              `json:"quantidade"`
	Direction string           `json:"tipo_movimentacao"`
	Reason    string           `json:"motivo"`
	UnitCost  *decimal.Decimal `json:"custo_unitario"`
}
