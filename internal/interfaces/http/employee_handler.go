package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/micro-erp/internal/application/dto"
	"github.com/jhoicas/micro-erp/internal/application/usecase"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

// EmployeeHandler maneja colaboradores (gerente o superior; borrar y desbloquear solo admin).
type EmployeeHandler struct {
	uc *usecase.EmployeeUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// List godoc
// @Summary      Listar colaboradores
// @Tags         colaboradores
// @Security     Bearer
// @Produce      json
// @Param        ativo     query  string  false  "1 o 0"
// @Param        cargo_id  query  int     false  "Filtrar por cargo"
// @Param        busca     query  string  false  "Nome, sobrenome o CPF"
// @Success      200  {object}  dto.Response
// @Router       /api/colaboradores [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	active, err := queryBool(c, "ativo")
	if err != nil {
		return err
	}
	roleID, err := queryInt64(c, "cargo_id")
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.Context(), repository.EmployeeFilter{
		Active: active,
		RoleID: roleID,
		Search: c.Query("busca"),
	})
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Crear colaborador
// @Tags         colaboradores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmployeeRequest  true  "Datos del colaborador"
// @Success      200   {object}  dto.Response
// @Router       /api/colaboradores [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.EmployeeRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return created(c, out.ID, "Colaborador criado com sucesso")
}

func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in dto.EmployeeRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if _, err := h.uc.Update(c.Context(), id, in); err != nil {
		return err
	}
	return okMessage(c, "Colaborador atualizado com sucesso")
}

// Delete inativa si el colaborador tiene ventas; si no, lo borra.
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
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

func (h *EmployeeHandler) Unlock(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.uc.Unlock(c.Context(), id); err != nil {
		return err
	}
	return okMessage(c, "Colaborador desbloqueado com sucesso")
}
