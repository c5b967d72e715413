package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para dashboard y relatórios.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de relatórios.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// DashboardCards una sola ida a la DB con subconsultas escalares.
func (r *ReportRepo) DashboardCards(ctx context.Context, since time.Time) (*repository.DashboardCards, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM vendas
	      WHERE data_venda >= $1 AND status_venda <> 'cancelada')                  AS vendas,
	    (SELECT COALESCE(SUM(valor_total), 0) FROM vendas
	      WHERE data_venda >= $1 AND status_venda <> 'cancelada')                  AS faturamento,
	    (SELECT COUNT(*) FROM colaboradores WHERE ativo)                           AS colaboradores,
	    (SELECT COUNT(*) FROM produtos WHERE ativo AND estoque_atual <= estoque_minimo) AS estoque_baixo`

	var cards repository.DashboardCards
	if err := pgxscan.Get(ctx, r.q, &cards, query, since); err != nil {
		return nil, fmt.Errorf("report.DashboardCards: %w", err)
	}
	return &cards, nil
}

func (r *ReportRepo) SalesByMonth(ctx context.Context, since time.Time) ([]repository.MonthlySales, error) {
	const query = `
	SELECT
	    to_char(date_trunc('month', data_venda), 'YYYY-MM') AS mes,
	    COUNT(*)                                            AS total_vendas,
	    COALESCE(SUM(valor_total), 0)                       AS valor_total
	FROM vendas
	WHERE data_venda >= $1 AND status_venda <> 'cancelada'
	GROUP BY 1
	ORDER BY 1`

	rows := []repository.MonthlySales{}
	if err := pgxscan.Select(ctx, r.q, &rows, query, since); err != nil {
		return nil, fmt.Errorf("report.SalesByMonth: %w", err)
	}
	return rows, nil
}

func (r *ReportRepo) TopSalespeople(ctx context.Context, since time.Time, limit uint64) ([]repository.SalespersonRanking, error) {
	query, args, err := psql.Select(
		"c.id",
		"(c.nome || ' ' || c.sobrenome) AS nome",
		"COUNT(v.id) AS total_vendas",
		"COALESCE(SUM(v.valor_total), 0) AS valor_total",
		"COALESCE(ROUND(AVG(v.valor_total), 2), 0) AS ticket_medio",
	).
		From("colaboradores c").
		Join("vendas v ON v.vendedor_id = c.id AND v.data_venda >= ? AND v.status_venda <> 'cancelada'", since).
		GroupBy("c.id", "c.nome", "c.sobrenome").
		OrderBy("valor_total DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build top vendedores: %w", err)
	}
	rows := []repository.SalespersonRanking{}
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("report.TopSalespeople: %w", err)
	}
	return rows, nil
}
