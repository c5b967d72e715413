// Package reports contiene el dashboard y los relatórios gerenciais.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

const (
	defaultPeriodDays = 30
	maxPeriodDays     = 3650
	chartMonths       = 6 // meses del gráfico vendas_por_mes
)

// Dashboard cards del período y gráfico de los últimos meses.
type Dashboard struct {
	Cards  repository.DashboardCards `json:"cards"`
	Charts DashboardCharts           `json:"graficos"`
}

// DashboardCharts series del dashboard.
type DashboardCharts struct {
	SalesByMonth []repository.MonthlySales `json:"vendas_por_mes"`
}

// DashboardUseCase genera el resumen del dashboard.
//
// Fuente de datos: ReportRepository (consultas read-only).
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
	now        func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reportRepo repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo, now: time.Now}
}

// GetDashboard arma cards (últimos periodDays días) y vendas_por_mes (últimos 6 meses).
//
// Dos llamadas en paralelo:
//  1. DashboardCards(desde)  → vendas, faturamento, colaboradores, estoque_baixo
//  2. SalesByMonth(6 meses)  → gráfico
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, periodDays int) (*Dashboard, error) {
	now := uc.now()
	since := PeriodStart(now, periodDays)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(chartMonths - 1), 0)

	// ── Goroutines para paralelizar las 2 consultas DB ────────────────────────
	type cardsResult struct {
		cards *repository.DashboardCards
		err   error
	}
	type monthsResult struct {
		months []repository.MonthlySales
		err    error
	}
	cardsCh := make(chan cardsResult, 1)
	monthsCh := make(chan monthsResult, 1)

	go func() {
		c, err := uc.reportRepo.DashboardCards(ctx, since)
		cardsCh <- cardsResult{c, err}
	}()
	go func() {
		m, err := uc.reportRepo.SalesByMonth(ctx, monthStart)
		monthsCh <- monthsResult{m, err}
	}()

	cards := <-cardsCh
	months := <-monthsCh
	if cards.err != nil {
		return nil, fmt.Errorf("dashboard: cards: %w", cards.err)
	}
	if months.err != nil {
		return nil, fmt.Errorf("dashboard: vendas por mês: %w", months.err)
	}
	return &Dashboard{
		Cards:  *cards.cards,
		Charts: DashboardCharts{SalesByMonth: months.months},
	}, nil
}

// PeriodStart inicio (00:00) del día de hace days días; days fuera de rango usa 30.
func PeriodStart(now time.Time, days int) time.Time {
	if days <= 0 || days > maxPeriodDays {
		days = defaultPeriodDays
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.AddDate(0, 0, -days)
}
