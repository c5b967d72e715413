package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/micro-erp/internal/application/dto"
	"github.com/jhoicas/micro-erp/internal/application/sales"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

const topSalespeopleLimit = 10

// ReportUseCase relatórios de ventas, comisiones y estoque.
type ReportUseCase struct {
	sales          *sales.SaleUseCase
	commissionRepo repository.CommissionRepository
	productRepo    repository.ProductRepository
	reportRepo     repository.ReportRepository
	now            func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	saleUC *sales.SaleUseCase,
	commissionRepo repository.CommissionRepository,
	productRepo repository.ProductRepository,
	reportRepo repository.ReportRepository,
) *ReportUseCase {
	return &ReportUseCase{
		sales:          saleUC,
		commissionRepo: commissionRepo,
		productRepo:    productRepo,
		reportRepo:     reportRepo,
		now:            time.Now,
	}
}

// SalesByPeriod ventas del período con total y ticket médio. Sin fechas usa el mes en curso.
func (uc *ReportUseCase) SalesByPeriod(ctx context.Context, f sales.ListFilter) (*dto.SalesReport, error) {
	if f.DateFrom == nil && f.DateTo == nil {
		now := uc.now()
		from := entity.NewDate(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()))
		to := entity.NewDate(now)
		f.DateFrom, f.DateTo = &from, &to
	}
	list, err := uc.sales.List(ctx, f)
	if err != nil {
		return nil, err
	}
	summary := dto.SalesSummary{SalesCount: len(list), Total: decimal.Zero, AverageTicket: decimal.Zero}
	for _, s := range list {
		summary.Total = summary.Total.Add(s.Total)
	}
	if summary.SalesCount > 0 {
		summary.AverageTicket = summary.Total.Div(decimal.NewFromInt(int64(summary.SalesCount))).Round(2)
	}
	return &dto.SalesReport{Sales: list, Summary: summary}, nil
}

// PendingCommissions comisiones pendientes, opcionalmente de un vendedor.
func (uc *ReportUseCase) PendingCommissions(ctx context.Context, employeeID *int64) (*dto.CommissionsReport, error) {
	list, err := uc.commissionRepo.ListPending(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, c := range list {
		total = total.Add(c.Value)
	}
	return &dto.CommissionsReport{Commissions: list, TotalPending: total}, nil
}

// MarkCommissionPaid pasa la comisión a pago.
func (uc *ReportUseCase) MarkCommissionPaid(ctx context.Context, id int64) error {
	return uc.commissionRepo.MarkPaid(ctx, id)
}

// LowStock productos activos con estoque_atual <= estoque_minimo, los más críticos primero.
func (uc *ReportUseCase) LowStock(ctx context.Context) ([]entity.Product, error) {
	active := true
	list, err := uc.productRepo.List(ctx, repository.ProductFilter{Active: &active, LowStock: true})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].StockCurrent-list[i].StockMinimum < list[j].StockCurrent-list[j].StockMinimum
	})
	return list, nil
}

// TopSalespeople los 10 vendedores con mayor faturamento en los últimos periodDays días.
func (uc *ReportUseCase) TopSalespeople(ctx context.Context, periodDays int) ([]repository.SalespersonRanking, error) {
	return uc.reportRepo.TopSalespeople(ctx, PeriodStart(uc.now(), periodDays), topSalespeopleLimit)
}
