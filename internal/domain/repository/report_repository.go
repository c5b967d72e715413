package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardCards totales de las tarjetas del dashboard.
type DashboardCards struct {
	SalesCount      int             `db:"vendas" json:"vendas"`
	Revenue         decimal.Decimal `db:"faturamento" json:"faturamento"`
	ActiveEmployees int             `db:"colaboradores" json:"colaboradores"`
	LowStock        int             `db:"estoque_baixo" json:"estoque_baixo"`
}

// MonthlySales ventas agregadas por mes ("YYYY-MM").
type MonthlySales struct {
	Month      string          `db:"mes" json:"mes"`
	SalesCount int             `db:"total_vendas" json:"total_vendas"`
	Total      decimal.Decimal `db:"valor_total" json:"valor_total"`
}

// SalespersonRanking fila del ranking de vendedores.
type SalespersonRanking struct {
	EmployeeID    int64           `db:"id" json:"id"`
	Name          string          `db:"nome" json:"nome"`
	SalesCount    int             `db:"total_vendas" json:"total_vendas"`
	Total         decimal.Decimal `db:"valor_total" json:"valor_total"`
	AverageTicket decimal.Decimal `db:"ticket_medio" json:"ticket_medio"`
}

// ReportRepository consultas de solo lectura para dashboard y relatórios.
// Las ventas canceladas no cuentan en ningún agregado.
type ReportRepository interface {
	// DashboardCards agrega ventas y faturamento desde since; colaboradores activos y productos con estoque baixo.
	DashboardCards(ctx context.Context, since time.Time) (*DashboardCards, error)
	// SalesByMonth agrupa por mes las ventas con data_venda >= since.
	SalesByMonth(ctx context.Context, since time.Time) ([]MonthlySales, error)
	// TopSalespeople ranking por valor vendido desde since.
	TopSalespeople(ctx context.Context, since time.Time, limit uint64) ([]SalespersonRanking, error)
}
