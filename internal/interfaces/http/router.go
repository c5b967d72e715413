package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/micro-erp/internal/application/auth"
	"github.com/jhoicas/micro-erp/internal/application/inventory"
	"github.com/jhoicas/micro-erp/internal/application/reports"
	"github.com/jhoicas/micro-erp/internal/application/sales"
	"github.com/jhoicas/micro-erp/internal/application/usecase"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	RoleUC       *usecase.RoleUseCase
	EmployeeUC   *usecase.EmployeeUseCase
	ProductUC    *usecase.ProductUseCase
	CategoryUC   *usecase.CategoryUseCase
	CustomerUC   *usecase.CustomerUseCase
	UpdateStock  *inventory.UpdateStockUseCase
	CreateSale   *sales.CreateSaleUseCase
	SaleUC       *sales.SaleUseCase
	ReceiptUC    *sales.ReceiptUseCase
	DashboardUC  *reports.DashboardUseCase
	ReportUC     *reports.ReportUseCase
	CookieName   string
	SecureCookie bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	funcionario := RequireLevel(entity.LevelFuncionario)
	vendedor := RequireLevel(entity.LevelVendedor)
	gerente := RequireLevel(entity.LevelGerente)
	admin := RequireLevel(entity.LevelAdmin)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieName, deps.SecureCookie)
	api.Post("/login", authHandler.Login)

	// Rutas protegidas (Bearer Token o cookie de sesión)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC, deps.CookieName))
	protected.Post("/logout", authHandler.Logout)
	protected.Get("/auth/check", authHandler.Check)

	// Cargos (admin)
	roles := protected.Group("/cargos", admin)
	roleHandler := NewRoleHandler(deps.RoleUC)
	roles.Get("/", roleHandler.List)
	roles.Get("/:id", roleHandler.Get)
	roles.Post("/", roleHandler.Create)
	roles.Put("/:id?", roleHandler.Update)
	roles.Delete("/:id?", roleHandler.Delete)

	// Colaboradores (gerente; borrar y desbloquear admin)
	employees := protected.Group("/colaboradores", gerente)
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.Get)
	employees.Post("/", employeeHandler.Create)
	employees.Put("/:id/desbloquear", admin, employeeHandler.Unlock)
	employees.Put("/:id?", employeeHandler.Update)
	employees.Delete("/:id?", admin, employeeHandler.Delete)

	// Produtos (lectura funcionario; escritura gerente)
	products := protected.Group("/produtos")
	productHandler := NewProductHandler(deps.ProductUC, deps.CategoryUC)
	products.Get("/", funcionario, productHandler.List)
	products.Get("/:id", funcionario, productHandler.Get)
	products.Post("/", gerente, productHandler.Create)
	products.Put("/:id?", gerente, productHandler.Update)
	products.Delete("/:id?", gerente, productHandler.Delete)

	categories := protected.Group("/categorias")
	categories.Get("/", funcionario, productHandler.ListCategories)
	categories.Post("/", gerente, productHandler.CreateCategory)

	// Estoque (gerente)
	stock := protected.Group("/estoque", gerente)
	inventoryHandler := NewInventoryHandler(deps.UpdateStock)
	stock.Get("/movimentacoes", inventoryHandler.ListMovements)
	stock.Post("/movimentacoes", inventoryHandler.RegisterMovement)

	// Clientes (vendedor)
	customers := protected.Group("/clientes", vendedor)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.Get)
	customers.Post("/", customerHandler.Create)
	customers.Put("/:id?", customerHandler.Update)
	customers.Delete("/:id?", gerente, customerHandler.Delete)

	// Vendas (vendedor; status gerente)
	salesGroup := protected.Group("/vendas", vendedor)
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleUC, deps.ReceiptUC)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id/comprovante", saleHandler.Receipt)
	salesGroup.Get("/:id", saleHandler.Get)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Put("/:id/status", gerente, saleHandler.UpdateStatus)

	// Dashboard y relatórios
	reportHandler := NewReportHandler(deps.DashboardUC, deps.ReportUC)
	protected.Get("/dashboard", funcionario, reportHandler.Dashboard)

	rel := protected.Group("/relatorios", gerente)
	rel.Get("/vendas", reportHandler.SalesByPeriod)
	rel.Get("/comissoes", reportHandler.PendingCommissions)
	rel.Get("/estoque-baixo", reportHandler.LowStock)
	rel.Get("/top-vendedores", reportHandler.TopSalespeople)

	protected.Put("/comissoes/:id/pagar", gerente, reportHandler.MarkCommissionPaid)
}
