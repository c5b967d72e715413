package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/micro-erp/internal/application/reports"
)

const defaultPeriodDays = 30

// ReportHandler expone el dashboard y los relatórios.
type ReportHandler struct {
	dashboard *reports.DashboardUseCase
	reports   *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(dashboard *reports.DashboardUseCase, uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{dashboard: dashboard, reports: uc}
}

// Dashboard godoc
// @Summary      Cards y gráfico de vendas por mes
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        periodo  query  int  false  "Días para los cards (30)"
// @Success      200  {object}  dto.Response
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	days, err := queryInt(c, "periodo", defaultPeriodDays)
	if err != nil {
		return err
	}
	out, err := h.dashboard.GetDashboard(c.Context(), days)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// SalesByPeriod godoc
// @Summary      Vendas por período con resumo (sin fechas: mes en curso)
// @Tags         relatorios
// @Security     Bearer
// @Produce      json
// @Param        data_inicio  query  string  false  "YYYY-MM-DD"
// @Param        data_fim     query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        vendedor_id  query  int     false  "Filtrar por vendedor"
// @Success      200  {object}  dto.Response
// @Router       /api/relatorios/vendas [get]
func (h *ReportHandler) SalesByPeriod(c *fiber.Ctx) error {
	f, err := saleFilter(c)
	if err != nil {
		return err
	}
	out, err := h.reports.SalesByPeriod(c.Context(), f)
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *ReportHandler) PendingCommissions(c *fiber.Ctx) error {
	employeeID, err := queryInt64(c, "vendedor_id")
	if err != nil {
		return err
	}
	out, err := h.reports.PendingCommissions(c.Context(), employeeID)
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.reports.LowStock(c.Context())
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *ReportHandler) TopSalespeople(c *fiber.Ctx) error {
	days, err := queryInt(c, "periodo", defaultPeriodDays)
	if err != nil {
		return err
	}
	out, err := h.reports.TopSalespeople(c.Context(), days)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// MarkCommissionPaid marca una comisión pendente como paga.
func (h *ReportHandler) MarkCommissionPaid(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.reports.MarkCommissionPaid(c.Context(), id); err != nil {
		return err
	}
	return okMessage(c, "Comissão marcada como paga")
}
