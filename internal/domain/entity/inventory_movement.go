package entity

import "time"

// MovementDirection sentido de un movimiento de estoque.
type MovementDirection string

// Tipos de movimiento de estoque.
const (
	MovementIn  MovementDirection = "entrada"
	MovementOut MovementDirection = "saida"
)

// Valid indica si el sentido es entrada o saida.
func (d MovementDirection) Valid() bool {
	return d == MovementIn || d == MovementOut
}

// InventoryMovement registro inmutable de un cambio de estoque con el antes y el después.
type InventoryMovement struct {
	ID          int64             `db:"id" json:"id"`
	ProductID   int64             `db:"produto_id" json:"produto_id"`
	Direction   MovementDirection `db:"tipo_movimentacao" json:"tipo_movimentacao"`
	Quantity    int               `db:"quantidade" json:"quantidade"`
	StockBefore int               `db:"estoque_anterior" json:"estoque_anterior"`
	StockAfter  int               `db:"estoque_atual" json:"estoque_atual"`
	SaleID      *int64            `db:"venda_id" json:"venda_id"`
	EmployeeID  *int64            `db:"colaborador_id" json:"colaborador_id"`
	Reason      *string           `db:"motivo" json:"motivo"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`

	ProductName  string  `db:"produto_nome" json:"produto_nome"`
	EmployeeName *string `db:"colaborador_nome" json:"colaborador_nome"`
}
