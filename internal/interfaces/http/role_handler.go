package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/micro-erp/internal/application/dto"
	"github.com/jhoicas/micro-erp/internal/application/usecase"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

// RoleHandler CRUD de cargos.
type RoleHandler struct {
	uc *usecase.RoleUseCase
}

// NewRoleHandler construye el handler.
func NewRoleHandler(uc *usecase.RoleUseCase) *RoleHandler {
	return &RoleHandler{uc: uc}
}

// List godoc
// @Summary      Listar cargos
// @Tags         cargos
// @Security     Bearer
// @Produce      json
// @Param        ativo  query  string  false  "1 o 0"
// @Success      200  {object}  dto.Response
// @Router       /api/cargos [get]
func (h *RoleHandler) List(c *fiber.Ctx) error {
	active, err := queryBool(c, "ativo")
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.Context(), repository.RoleFilter{Active: active})
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *RoleHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Crear cargo
// @Tags         cargos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RoleRequest  true  "Datos del cargo"
// @Success      200   {object}  dto.Response
// @Router       /api/cargos [post]
func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var in dto.RoleRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return created(c, out.ID, "Cargo criado com sucesso")
}

func (h *RoleHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in dto.RoleRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if _, err := h.uc.Update(c.Context(), id, in); err != nil {
		return err
	}
	return okMessage(c, "Cargo atualizado com sucesso")
}

func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return err
	}
	return okMessage(c, "Cargo excluído com sucesso")
}
