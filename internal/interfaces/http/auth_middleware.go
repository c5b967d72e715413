package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/micro-erp/internal/domain"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
)

// LocalPrincipal clave en c.Locals() del colaborador autenticado.
const LocalPrincipal = "principal"

// Authenticator valida un token de sesión. Lo implementa *auth.AuthUseCase.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.Principal, error)
}

// AuthMiddleware exige un token válido y no revocado.
// Se acepta "Authorization: Bearer <token>" o la cookie de sesión emitida en el login.
func AuthMiddleware(authn Authenticator, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" && cookieName != "" {
			token = c.Cookies(cookieName)
		}
		if token == "" {
			return domain.ErrUnauthorized
		}
		p, err := authn.Authenticate(c.Context(), token)
		if err != nil {
			return err
		}
		c.Locals(LocalPrincipal, p)
		return c.Next()
	}
}

// RequireLevel exige que el nivel del colaborador alcance level en la jerarquía
// funcionario < vendedor < gerente < admin. Debe ir después de AuthMiddleware.
func RequireLevel(level entity.AccessLevel) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p == nil {
			return domain.ErrUnauthorized
		}
		if !p.Allows(level) {
			return domain.ErrForbidden
		}
		return c.Next()
	}
}

// GetPrincipal devuelve el colaborador autenticado o nil.
func GetPrincipal(c *fiber.Ctx) *entity.Principal {
	p, _ := c.Locals(LocalPrincipal).(*entity.Principal)
	return p
}

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
