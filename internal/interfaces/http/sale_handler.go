package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/micro-erp/internal/application/dto"
	"github.com/jhoicas/micro-erp/internal/application/sales"
)

// SaleHandler maneja las peticiones HTTP de vendas.
type SaleHandler struct {
	create  *sales.CreateSaleUseCase
	uc      *sales.SaleUseCase
	receipt *sales.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(create *sales.CreateSaleUseCase, uc *sales.SaleUseCase, receipt *sales.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{create: create, uc: uc, receipt: receipt}
}

// Create godoc
// @Summary      Registrar venda
// @Description  Cabecera, items y comisiones en una sola transacción. Responde id y numero_venda.
// @Tags         vendas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "cliente_id, vendedor_id, itens[]"
// @Success      200   {object}  dto.Response
// @Router       /api/vendas [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	sale, err := h.create.CreateSale(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.Response{
		Success:     true,
		Message:     "Venda criada com sucesso",
		ID:          &sale.ID,
		NumeroVenda: sale.Number,
	})
}

// List godoc
// @Summary      Listar vendas
// @Tags         vendas
// @Security     Bearer
// @Produce      json
// @Param        data_inicio   query  string  false  "YYYY-MM-DD"
// @Param        data_fim      query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        vendedor_id   query  int     false  "Filtrar por vendedor"
// @Param        cliente_id    query  int     false  "Filtrar por cliente"
// @Param        status_venda  query  string  false  "orcamento | confirmada | instalada | cancelada"
// @Success      200  {object}  dto.Response
// @Router       /api/vendas [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	f, err := saleFilter(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.Context(), f)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// Get venda con sus items.
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// UpdateStatus godoc
// @Summary      Cambiar status de la venda (cancelar restaura estoque y comisiones)
// @Tags         vendas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID de la venda"
// @Param        body  body  dto.SaleStatusRequest  true  "status_venda"
// @Success      200   {object}  dto.Response
// @Router       /api/vendas/{id}/status [put]
func (h *SaleHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in dto.SaleStatusRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := h.uc.UpdateStatus(c.Context(), GetPrincipal(c), id, in.Status); err != nil {
		return err
	}
	return okMessage(c, "Status da venda atualizado com sucesso")
}

// Receipt godoc
// @Summary      Comprovante PDF de la venda
// @Tags         vendas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la venda"
// @Success      200  {file}  binary
// @Router       /api/vendas/{id}/comprovante [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	pdf, filename, err := h.receipt.Receipt(c.Context(), id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}

func saleFilter(c *fiber.Ctx) (sales.ListFilter, error) {
	var (
		f   sales.ListFilter
		err error
	)
	if f.DateFrom, err = queryDate(c, "data_inicio"); err != nil {
		return f, err
	}
	if f.DateTo, err = queryDate(c, "data_fim"); err != nil {
		return f, err
	}
	if f.SalespersonID, err = queryInt64(c, "vendedor_id"); err != nil {
		return f, err
	}
	if f.CustomerID, err = queryInt64(c, "cliente_id"); err != nil {
		return f, err
	}
	f.Status = c.Query("status_venda")
	return f, nil
}
