package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/micro-erp/internal/application/dto"
	"github.com/jhoicas/micro-erp/internal/application/usecase"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

// ProductHandler maneja las peticiones HTTP de produtos y categorias.
type ProductHandler struct {
	uc         *usecase.ProductUseCase
	categories *usecase.CategoryUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, categories *usecase.CategoryUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, categories: categories}
}

// List godoc
// @Summary      Listar produtos
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Param        ativo          query  string  false  "1 o 0"
// @Param        categoria_id   query  int     false  "Filtrar por categoria"
// @Param        estoque_baixo  query  string  false  "Solo estoque_atual <= estoque_minimo"
// @Param        busca          query  string  false  "Código o nome"
// @Success      200  {object}  dto.Response
// @Router       /api/produtos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	active, err := queryBool(c, "ativo")
	if err != nil {
		return err
	}
	categoryID, err := queryInt64(c, "categoria_id")
	if err != nil {
		return err
	}
	low, err := queryBool(c, "estoque_baixo")
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.Context(), repository.ProductFilter{
		Active:     active,
		CategoryID: categoryID,
		LowStock:   low != nil && *low,
		Search:     c.Query("busca"),
	})
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// Create godoc
// @Summary      Crear produto (codigo P### automático si se omite)
// @Tags         produtos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del produto"
// @Success      200   {object}  dto.Response
// @Router       /api/produtos [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.Response{
		Success: true,
		Message: "Produto criado com sucesso",
		ID:      &out.ID,
		Data:    out,
	})
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in dto.ProductRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if _, err := h.uc.Update(c.Context(), id, in); err != nil {
		return err
	}
	return okMessage(c, "Produto atualizado com sucesso")
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	res, err := h.uc.Delete(c.Context(), id)
	if err != nil {
		return err
	}
	return okMessage(c, res.Message)
}

// ListCategories categorias activas.
func (h *ProductHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.categories.List(c.Context())
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *ProductHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.categories.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return created(c, out.ID, "Categoria criada com sucesso")
}
