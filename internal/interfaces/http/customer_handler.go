package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/micro-erp/internal/application/dto"
	"github.com/jhoicas/micro-erp/internal/application/usecase"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

// CustomerHandler maneja las peticiones HTTP de clientes (pessoa física o jurídica).
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List godoc
// @Summary      Listar clientes
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        ativo        query  string  false  "1 o 0"
// @Param        tipo_pessoa  query  string  false  "fisica | juridica"
// @Param        busca        query  string  false  "Nome, razão social, CPF o CNPJ"
// @Success      200  {object}  dto.Response
// @Router       /api/clientes [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	active, err := queryBool(c, "ativo")
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.Context(), repository.CustomerFilter{
		Active:     active,
		PersonType: entity.PersonType(c.Query("tipo_pessoa")),
		Search:     c.Query("busca"),
	})
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *CustomerHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Crear cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomerRequest  true  "Datos del cliente"
// @Success      200   {object}  dto.Response
// @Router       /api/clientes [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return created(c, out.ID, "Cliente criado com sucesso")
}

func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in dto.CustomerRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if _, err := h.uc.Update(c.Context(), id, in); err != nil {
		return err
	}
	return okMessage(c, "Cliente atualizado com sucesso")
}

func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
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
