package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/micro-erp/internal/application/auth"
	"github.com/jhoicas/micro-erp/internal/application/dto"
)

// AuthHandler maneja login, logout y consulta de sesión.
type AuthHandler struct {
	uc           *auth.AuthUseCase
	cookieName   string
	secureCookie bool
}

// NewAuthHandler construye el handler. cookieName vacío desactiva la cookie de sesión.
func NewAuthHandler(uc *auth.AuthUseCase, cookieName string, secureCookie bool) *AuthHandler {
	return &AuthHandler{uc: uc, cookieName: cookieName, secureCookie: secureCookie}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "usuario y senha"
// @Success      200   {object}  dto.Response
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return err
	}
	if h.cookieName != "" {
		c.Cookie(&fiber.Cookie{
			Name:     h.cookieName,
			Value:    out.Token,
			Path:     "/",
			Expires:  out.User.ExpiresAt,
			HTTPOnly: true,
			Secure:   h.secureCookie,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	user := out.User
	return c.JSON(dto.Response{
		Success: true,
		Message: "Login realizado com sucesso",
		User:    &user,
		Token:   out.Token,
	})
}

// Logout godoc
// @Summary      Cerrar sesión (revoca el token)
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.Context(), GetPrincipal(c)); err != nil {
		return err
	}
	if h.cookieName != "" {
		c.Cookie(&fiber.Cookie{
			Name:     h.cookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			Secure:   h.secureCookie,
		})
	}
	return okMessage(c, "Logout realizado com sucesso")
}

// Check devuelve el colaborador de la sesión actual.
func (h *AuthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(dto.Response{Success: true, User: GetPrincipal(c)})
}
