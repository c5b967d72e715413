package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/micro-erp/internal/application/dto"
	"github.com/jhoicas/micro-erp/internal/domain"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/pkg/logger"
)

const msgInternal = "Erro interno do servidor"

// ok responde success:true con data.
func ok(c *fiber.Ctx, data any) error {
	return c.JSON(dto.Response{Success: true, Data: data})
}

// okMessage responde success:true solo con un mensaje.
func okMessage(c *fiber.Ctx, msg string) error {
	return c.JSON(dto.Response{Success: true, Message: msg})
}

// created responde el alta con el id generado.
func created(c *fiber.Ctx, id int64, msg string) error {
	return c.JSON(dto.Response{Success: true, Message: msg, ID: &id})
}

// ErrorHandler convierte cualquier error devuelto por handlers o middlewares en el sobre
// con success:false. Los errores no clasificados se registran y se ocultan al cliente.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code, msg := classify(err)
		if code == dto.CodeInternal {
			ev := log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path())
			if p := GetPrincipal(c); p != nil {
				ev = ev.Int64("colaborador_id", p.EmployeeID)
			}
			ev.Msg("error no controlado")
		}
		return c.Status(fiber.StatusOK).JSON(dto.Response{Success: false, Code: code, Message: msg})
	}
}

// classify traduce un error a código y mensaje del sobre.
func classify(err error) (string, string) {
	var (
		ve  *domain.ValidationError
		de  *domain.DuplicateError
		nfe *domain.NotFoundError
		ce  *domain.ConflictError
		ise *domain.InsufficientStockError
		fe  *fiber.Error
	)
	switch {
	case errors.As(err, &ve):
		return dto.CodeValidation, ve.Error()
	case errors.As(err, &de):
		return dto.CodeDuplicate, de.Error()
	case errors.As(err, &nfe):
		return dto.CodeNotFound, nfe.Message
	case errors.As(err, &ce):
		return dto.CodeConflict, ce.Message
	case errors.As(err, &ise):
		return dto.CodeInsufficientStock, ise.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return dto.CodeUnauthorized, "Usuário ou senha inválidos"
	case errors.Is(err, domain.ErrUnauthorized):
		return dto.CodeUnauthorized, "Não autenticado"
	case errors.Is(err, domain.ErrForbidden):
		return dto.CodeForbidden, "Acesso negado"
	case errors.Is(err, domain.ErrNotFound):
		return dto.CodeNotFound, "Registro não encontrado"
	case errors.Is(err, domain.ErrInvalidInput):
		return dto.CodeValidation, "Dados inválidos"
	case errors.As(err, &fe):
		if fe.Code == fiber.StatusNotFound {
			return dto.CodeNotFound, "Endpoint não encontrado"
		}
		if fe.Code < fiber.StatusInternalServerError {
			return dto.CodeValidation, "Requisição inválida"
		}
	}
	return dto.CodeInternal, msgInternal
}

// parseBody decodifica el JSON del cuerpo.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewValidationError("JSON inválido")
	}
	return nil
}

// idParam lee el id del segmento de ruta o, en su defecto, de ?id=.
func idParam(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	if raw == "" {
		raw = c.Query("id")
	}
	if raw == "" {
		return 0, domain.NewValidationError("ID necessário")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("ID inválido")
	}
	return id, nil
}

func queryInt64(c *fiber.Ctx, key string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, domain.NewValidationError("Parâmetro " + key + " inválido")
	}
	return &n, nil
}

// queryBool acepta 1/0 y true/false.
func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.NewValidationError("Parâmetro " + key + " inválido")
	}
	return &b, nil
}

func queryDate(c *fiber.Ctx, key string) (*entity.Date, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	d, err := entity.ParseDate(raw)
	if err != nil {
		return nil, domain.NewValidationError("Parâmetro " + key + " inválido")
	}
	return &d, nil
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError("Parâmetro " + key + " inválido")
	}
	return n, nil
}
