package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/micro-erp/internal/application/auth"
	"github.com/jhoicas/micro-erp/internal/application/inventory"
	"github.com/jhoicas/micro-erp/internal/application/reports"
	"github.com/jhoicas/micro-erp/internal/application/sales"
	"github.com/jhoicas/micro-erp/internal/application/usecase"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/micro-erp/internal/interfaces/http"
	"github.com/jhoicas/micro-erp/internal/testutil/memrepo"
	"github.com/jhoicas/micro-erp/pkg/jwt"
	"github.com/jhoicas/micro-erp/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testPassword = "senha-de-teste"
	testCookie   = "micro_erp_session"
)

type envelope struct {
	Success     bool            `json:"success"`
	Message     string          `json:"message"`
	Code        string          `json:"code"`
	Data        json.RawMessage `json:"data"`
	ID          *int64          `json:"id"`
	NumeroVenda string          `json:"numero_venda"`
	Token       string          `json:"token"`
	User        *struct {
		ID          int64  `json:"id"`
		Nome        string `json:"nome"`
		NivelAcesso string `json:"nivel_acesso"`
	} `json:"user"`
}

type testEnv struct {
	app   *fiber.App
	store *memrepo.Store
}

// newTestEnv arma la app completa sobre el store en memoria con un colaborador
// por nivel: admin, gerente, vendedor y funcionario (todos con testPassword).
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	store := memrepo.New()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	cpfs := map[entity.AccessLevel]string{
		entity.LevelAdmin:       "52998224725",
		entity.LevelGerente:     "11144477735",
		entity.LevelVendedor:    "39053344705",
		entity.LevelFuncionario: "15350946056",
	}
	for _, level := range []entity.AccessLevel{entity.LevelAdmin, entity.LevelGerente, entity.LevelVendedor, entity.LevelFuncionario} {
		role := &entity.Role{Name: string(level), AccessLevel: level, Active: true}
		require.NoError(t, store.RoleRepo().Create(ctx, role))
		emp := &entity.Employee{
			FirstName: string(level), CPF: cpfs[level], RoleID: role.ID,
			Username: string(level), PasswordHash: string(hash), Active: true,
		}
		require.NoError(t, store.EmployeeRepo().Create(ctx, emp))
	}

	signer, err := jwt.NewSigner(testSecret, "micro-erp-test", 30)
	require.NoError(t, err)
	authUC := auth.NewAuthUseCase(store.EmployeeRepo(), store.SessionRepo(), signer, auth.LockoutConfig{})

	stockUC := inventory.NewUpdateStockUseCase(store.TxRunner(), store.MovementRepo())
	saleUC := sales.NewSaleUseCase(store.SaleRepo(), store.TxRunner(), stockUC, true)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	app.Use(recover.New())
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		RoleUC:      usecase.NewRoleUseCase(store.RoleRepo()),
		EmployeeUC:  usecase.NewEmployeeUseCase(store.EmployeeRepo(), store.RoleRepo()),
		ProductUC:   usecase.NewProductUseCase(store.ProductRepo(), store.TxRunner(), stockUC),
		CategoryUC:  usecase.NewCategoryUseCase(store.CategoryRepo()),
		CustomerUC:  usecase.NewCustomerUseCase(store.CustomerRepo()),
		UpdateStock: stockUC,
		CreateSale:  sales.NewCreateSaleUseCase(store.TxRunner(), store.ProductRepo(), stockUC, true),
		SaleUC:      saleUC,
		ReceiptUC:   sales.NewReceiptUseCase(saleUC, store.CustomerRepo(), pdf.NewReceiptGenerator("Micro ERP")),
		DashboardUC: reports.NewDashboardUseCase(store.ReportRepo()),
		ReportUC:    reports.NewReportUseCase(saleUC, store.CommissionRepo(), store.ProductRepo(), store.ReportRepo()),
		CookieName:  testCookie,
	})
	return &testEnv{app: app, store: store}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) call(t *testing.T, method, path, token string, body any) envelope {
	t.Helper()
	resp := e.do(t, method, path, token, body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "el sobre siempre responde HTTP 200")
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func (e *testEnv) login(t *testing.T, username string) string {
	t.Helper()
	env := e.call(t, http.MethodPost, "/api/login", "", map[string]string{"usuario": username, "senha": testPassword})
	require.True(t, env.Success, env.Message)
	require.NotEmpty(t, env.Token)
	return env.Token
}

// ─── Auth ────────────────────────────────────────────────────────────────────

func TestLogin_DevuelveTokenUsuarioYCookie(t *testing.T) {
	e := newTestEnv(t)
	resp := e.do(t, http.MethodPost, "/api/login", "", map[string]string{"usuario": "gerente", "senha": testPassword})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Token)
	require.NotNil(t, env.User)
	assert.Equal(t, "gerente", env.User.NivelAcesso)

	var session *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == testCookie {
			session = ck
		}
	}
	require.NotNil(t, session, "el login debe emitir la cookie de sesión")
	assert.Equal(t, env.Token, session.Value)
	assert.True(t, session.HttpOnly)
}

func TestLogin_CredencialesInvalidasResponde200ConSuccessFalse(t *testing.T) {
	e := newTestEnv(t)
	env := e.call(t, http.MethodPost, "/api/login", "", map[string]string{"usuario": "gerente", "senha": "errada"})
	assert.False(t, env.Success)
	assert.Equal(t, "UNAUTHORIZED", env.Code)
	assert.Equal(t, "Usuário ou senha inválidos", env.Message)
	assert.Empty(t, env.Token)
}

func TestRutaProtegida_SinToken(t *testing.T) {
	e := newTestEnv(t)
	env := e.call(t, http.MethodGet, "/api/dashboard", "", nil)
	assert.False(t, env.Success)
	assert.Equal(t, "UNAUTHORIZED", env.Code)
}

func TestRutaProtegida_TokenInvalido(t *testing.T) {
	e := newTestEnv(t)
	env := e.call(t, http.MethodGet, "/api/dashboard", "token.invalido.aqui", nil)
	assert.Equal(t, "UNAUTHORIZED", env.Code)
}

func TestAuthCheck_AceptaCookieDeSesion(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t, "vendedor")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.True(t, env.Success)
	require.NotNil(t, env.User)
	assert.Equal(t, "vendedor", env.User.NivelAcesso)
}

func TestLogout_RevocaElToken(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t, "funcionario")

	assert.True(t, e.call(t, http.MethodGet, "/api/auth/check", token, nil).Success)
	assert.True(t, e.call(t, http.MethodPost, "/api/logout", token, nil).Success)

	env := e.call(t, http.MethodGet, "/api/auth/check", token, nil)
	assert.False(t, env.Success)
	assert.Equal(t, "UNAUTHORIZED", env.Code)
}

// ─── Permisos por nivel ──────────────────────────────────────────────────────

func TestPermisos_PorNivel(t *testing.T) {
	e := newTestEnv(t)
	tokens := map[string]string{}
	for _, u := range []string{"admin", "gerente", "vendedor", "funcionario"} {
		tokens[u] = e.login(t, u)
	}

	tests := []struct {
		name    string
		user    string
		method  string
		path    string
		allowed bool
	}{
		{"funcionario ve dashboard", "funcionario", http.MethodGet, "/api/dashboard", true},
		{"funcionario lista produtos", "funcionario", http.MethodGet, "/api/produtos", true},
		{"funcionario no lista clientes", "funcionario", http.MethodGet, "/api/clientes", false},
		{"vendedor lista clientes", "vendedor", http.MethodGet, "/api/clientes", true},
		{"vendedor lista vendas", "vendedor", http.MethodGet, "/api/vendas", true},
		{"funcionario no ve detalle de venda", "funcionario", http.MethodGet, "/api/vendas/1", false},
		{"vendedor no lista colaboradores", "vendedor", http.MethodGet, "/api/colaboradores", false},
		{"vendedor no ve relatorios", "vendedor", http.MethodGet, "/api/relatorios/estoque-baixo", false},
		{"gerente lista colaboradores", "gerente", http.MethodGet, "/api/colaboradores", true},
		{"gerente ve relatorios", "gerente", http.MethodGet, "/api/relatorios/top-vendedores", true},
		{"gerente no lista cargos", "gerente", http.MethodGet, "/api/cargos", false},
		{"admin lista cargos", "admin", http.MethodGet, "/api/cargos", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := e.call(t, tt.method, tt.path, tokens[tt.user], nil)
			assert.Equal(t, tt.allowed, env.Success, env.Message)
			if !tt.allowed {
				assert.Equal(t, "FORBIDDEN", env.Code)
				assert.Equal(t, "Acesso negado", env.Message)
			}
		})
	}
}

// ─── Recursos ────────────────────────────────────────────────────────────────

func TestClientes_ValidacionDevuelveMensajes(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t, "vendedor")

	env := e.call(t, http.MethodPost, "/api/clientes", token, map[string]any{"tipo_pessoa": "fisica"})
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION", env.Code)
	assert.Contains(t, env.Message, "CPF é obrigatório para pessoa física")
}

func TestBodyInvalido(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t, "admin")

	req := httptest.NewRequest(http.MethodPost, "/api/cargos", bytes.NewBufferString("{no-json"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, "VALIDATION", env.Code)
	assert.Equal(t, "JSON inválido", env.Message)
}

func TestCargos_IDPorQueryOPorRuta(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t, "admin")

	env := e.call(t, http.MethodPost, "/api/cargos", token, map[string]any{
		"nome": "Técnico", "nivel_acesso": "funcionario", "salario_base": "2500.00",
	})
	require.True(t, env.Success, env.Message)
	require.NotNil(t, env.ID)
	roleID := *env.ID
	id := strconv.FormatInt(roleID, 10)

	env = e.call(t, http.MethodPut, "/api/cargos?id="+id, token, map[string]any{
		"nome": "Técnico de campo", "nivel_acesso": "funcionario",
	})
	require.True(t, env.Success, env.Message)
	assert.Equal(t, "Técnico de campo", e.store.Roles[roleID].Name)

	env = e.call(t, http.MethodDelete, "/api/cargos/"+id, token, nil)
	assert.True(t, env.Success, env.Message)

	env = e.call(t, http.MethodPut, "/api/cargos", token, map[string]any{"nome": "x"})
	assert.False(t, env.Success)
	assert.Equal(t, "ID necessário", env.Message)
}

func TestCargo_NoSeBorraConColaboradores(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t, "admin")

	var roleID int64
	for id, r := range e.store.Roles {
		if r.AccessLevel == entity.LevelVendedor {
			roleID = id
		}
	}
	env := e.call(t, http.MethodDelete, "/api/cargos/"+strconv.FormatInt(roleID, 10), token, nil)
	assert.False(t, env.Success)
	assert.Equal(t, "CONFLICT", env.Code)
	assert.Equal(t, "Não é possível excluir cargo com colaboradores vinculados", env.Message)
}

func TestEndpointInexistente(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t, "admin")

	env := e.call(t, http.MethodGet, "/api/nao-existe", token, nil)
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Code)
	assert.Equal(t, "Endpoint não encontrado", env.Message)
}

// ─── Flujo de venda ──────────────────────────────────────────────────────────

func TestVenda_FlujoCompleto(t *testing.T) {
	e := newTestEnv(t)
	gerente := e.login(t, "gerente")
	vendedor := e.login(t, "vendedor")

	env := e.call(t, http.MethodPost, "/api/produtos", gerente, map[string]any{
		"nome": "Roteador Wi-Fi", "preco_venda": "50.00", "comissao_percentual": "10", "estoque_atual": 5,
	})
	require.True(t, env.Success, env.Message)
	productID := *env.ID
	assert.Equal(t, "P001", e.store.Products[productID].Code)

	env = e.call(t, http.MethodPost, "/api/clientes", vendedor, map[string]any{
		"tipo_pessoa": "fisica", "nome": "João", "cpf": "529.982.247-25",
		"endereco": "Rua A", "cidade": "Recife", "estado": "PE",
	})
	require.True(t, env.Success, env.Message)
	customerID := *env.ID

	var sellerID int64
	for id, emp := range e.store.Employees {
		if emp.Username == "vendedor" {
			sellerID = id
		}
	}

	env = e.call(t, http.MethodPost, "/api/vendas", vendedor, map[string]any{
		"cliente_id":  customerID,
		"vendedor_id": sellerID,
		"itens":       []map[string]any{{"produto_id": productID, "quantidade": 2}},
	})
	require.True(t, env.Success, env.Message)
	assert.Equal(t, "V000001", env.NumeroVenda)
	saleID := strconv.FormatInt(*env.ID, 10)

	sale := e.store.Sales[*env.ID]
	assert.True(t, decimal.NewFromInt(100).Equal(sale.Total))
	assert.Equal(t, 3, e.store.Products[productID].StockCurrent)

	env = e.call(t, http.MethodGet, "/api/vendas/"+saleID, vendedor, nil)
	require.True(t, env.Success, env.Message)
	var detail struct {
		Numero string `json:"numero_venda"`
		Itens  []struct {
			Quantidade int `json:"quantidade"`
		} `json:"itens"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "V000001", detail.Numero)
	require.Len(t, detail.Itens, 1)
	assert.Equal(t, 2, detail.Itens[0].Quantidade)

	resp := e.do(t, http.MethodGet, "/api/vendas/"+saleID+"/comprovante", vendedor, nil)
	defer resp.Body.Close()
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "venda_V000001.pdf")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	// vendedor no puede cambiar el status
	env = e.call(t, http.MethodPut, "/api/vendas/"+saleID+"/status", vendedor, map[string]string{"status_venda": "cancelada"})
	assert.Equal(t, "FORBIDDEN", env.Code)

	env = e.call(t, http.MethodPut, "/api/vendas/"+saleID+"/status", gerente, map[string]string{"status_venda": "cancelada"})
	require.True(t, env.Success, env.Message)
	assert.Equal(t, 5, e.store.Products[productID].StockCurrent)
}

func TestEstoque_SalidaInsuficiente(t *testing.T) {
	e := newTestEnv(t)
	gerente := e.login(t, "gerente")

	env := e.call(t, http.MethodPost, "/api/produtos", gerente, map[string]any{
		"nome": "Cabo de rede", "preco_venda": "3.50", "estoque_atual": 2,
	})
	require.True(t, env.Success, env.Message)

	env = e.call(t, http.MethodPost, "/api/estoque/movimentacoes", gerente, map[string]any{
		"produto_id": *env.ID, "quantidade": 3, "tipo_movimentacao": "saida", "motivo": "Perda",
	})
	assert.False(t, env.Success)
	assert.Equal(t, "INSUFFICIENT_STOCK", env.Code)
}
