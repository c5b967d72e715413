package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/micro-erp/internal/application/dto"
	"github.com/jhoicas/micro-erp/internal/application/inventory"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

const defaultMovementLimit = 100

// InventoryHandler maneja las peticiones HTTP de movimentações de estoque (protegido).
type InventoryHandler struct {
	uc *inventory.UpdateStockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UpdateStockUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterMovement godoc
// @Summary      Registrar movimentação de estoque
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "produto_id, quantidade, tipo_movimentacao (entrada|saida), motivo, custo_unitario (solo entradas)"
// @Success      200   {object}  dto.Response
// @Router       /api/estoque/movimentacoes [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	res, err := h.uc.UpdateStock(c.Context(), GetPrincipal(c), inventory.StockChange{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Direction: entity.MovementDirection(in.Direction),
		Reason:    in.Reason,
		UnitCost:  in.UnitCost,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.Response{
		Success: true,
		Message: "Estoque atualizado com sucesso",
		ID:      &res.MovementID,
		Data:    res,
	})
}

// ListMovements godoc
// @Summary      Listar movimentações (más recientes primero)
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        produto_id   query  int     false  "Filtrar por produto"
// @Param        venda_id     query  int     false  "Filtrar por venda"
// @Param        data_inicio  query  string  false  "YYYY-MM-DD"
// @Param        data_fim     query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        limite       query  int     false  "Máximo de filas (100)"
// @Success      200  {object}  dto.Response
// @Router       /api/estoque/movimentacoes [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var (
		f   repository.MovementFilter
		err error
	)
	if f.ProductID, err = queryInt64(c, "produto_id"); err != nil {
		return err
	}
	if f.SaleID, err = queryInt64(c, "venda_id"); err != nil {
		return err
	}
	from, err := queryDate(c, "data_inicio")
	if err != nil {
		return err
	}
	if from != nil {
		f.From = &from.Time
	}
	to, err := queryDate(c, "data_fim")
	if err != nil {
		return err
	}
	if to != nil {
		end := to.Time.AddDate(0, 0, 1)
		f.To = &end
	}
	limit, err := queryInt(c, "limite", defaultMovementLimit)
	if err != nil {
		return err
	}
	if limit <= 0 {
		limit = defaultMovementLimit
	}
	f.Limit = uint64(limit)

	out, err := h.uc.ListMovements(c.Context(), f)
	if err != nil {
		return err
	}
	return ok(c, out)
}
