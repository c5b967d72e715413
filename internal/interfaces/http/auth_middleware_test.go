package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/micro-erp/internal/domain"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	apphttp "github.com/jhoicas/micro-erp/internal/interfaces/http"
	"github.com/jhoicas/micro-erp/pkg/logger"
)

// stubAuthenticator acepta como token el nombre de un nivel de acceso.
type stubAuthenticator struct{}

func (stubAuthenticator) Authenticate(_ context.Context, token string) (*entity.Principal, error) {
	level := entity.AccessLevel(token)
	if !level.Valid() {
		return nil, domain.ErrUnauthorized
	}
	return &entity.Principal{EmployeeID: 7, Name: "Teste", AccessLevel: level}, nil
}

// buildLevelApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para cargar el principal
//   - RequireLevel para autorizar el acceso
//   - Un handler dummy que devuelve success si pasa los middlewares
func buildLevelApp(required entity.AccessLevel) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	app.Get("/protected",
		apphttp.AuthMiddleware(stubAuthenticator{}, "sessao"),
		apphttp.RequireLevel(required),
		func(c *fiber.Ctx) error {
			p := apphttp.GetPrincipal(c)
			return c.JSON(fiber.Map{"success": true, "code": string(p.AccessLevel)})
		},
	)
	return app
}

func doProtected(t *testing.T, app *fiber.App, authHeader string) map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ─── RequireLevel ────────────────────────────────────────────────────────────

func TestRequireLevel_Jerarquia(t *testing.T) {
	tests := []struct {
		required entity.AccessLevel
		actual   string
		allowed  bool
	}{
		{entity.LevelFuncionario, "funcionario", true},
		{entity.LevelFuncionario, "admin", true},
		{entity.LevelVendedor, "funcionario", false},
		{entity.LevelVendedor, "gerente", true},
		{entity.LevelGerente, "vendedor", false},
		{entity.LevelAdmin, "gerente", false},
		{entity.LevelAdmin, "admin", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.required)+"_"+tt.actual, func(t *testing.T) {
			body := doProtected(t, buildLevelApp(tt.required), "Bearer "+tt.actual)
			assert.Equal(t, tt.allowed, body["success"])
			if tt.allowed {
				assert.Equal(t, tt.actual, body["code"])
			} else {
				assert.Equal(t, "FORBIDDEN", body["code"])
			}
		})
	}
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	body := doProtected(t, buildLevelApp(entity.LevelFuncionario), "")
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "UNAUTHORIZED", body["code"])
}

func TestAuthMiddleware_EsquemaNoBearer(t *testing.T) {
	body := doProtected(t, buildLevelApp(entity.LevelFuncionario), "Basic admin")
	assert.Equal(t, "UNAUTHORIZED", body["code"])
}

func TestAuthMiddleware_TokenRechazado(t *testing.T) {
	body := doProtected(t, buildLevelApp(entity.LevelFuncionario), "Bearer desconhecido")
	assert.Equal(t, "UNAUTHORIZED", body["code"])
	assert.Equal(t, "Não autenticado", body["message"])
}

func TestAuthMiddleware_Cookie(t *testing.T) {
	app := buildLevelApp(entity.LevelVendedor)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "sessao", Value: "vendedor"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["success"])
}
