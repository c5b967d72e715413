package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/micro-erp/internal/application/auth"
	"github.com/jhoicas/micro-erp/internal/application/inventory"
	"github.com/jhoicas/micro-erp/internal/application/reports"
	"github.com/jhoicas/micro-erp/internal/application/sales"
	"github.com/jhoicas/micro-erp/internal/application/usecase"
	infrapdf "github.com/jhoicas/micro-erp/internal/infrastructure/pdf"
	"github.com/jhoicas/micro-erp/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/micro-erp/internal/interfaces/http"
	"github.com/jhoicas/micro-erp/pkg/config"
	"github.com/jhoicas/micro-erp/pkg/jwt"
	"github.com/jhoicas/micro-erp/pkg/logger"
)

const revokedPurgeInterval = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("baixa_estoque_venda", cfg.Sales.DecrementStock).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.DB.AutoMigrate {
		if err := migrateUp(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	roleRepo := postgres.NewRoleRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	commissionRepo := postgres.NewCommissionRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	signer, err := jwt.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal().Err(err).Msg("firmador JWT")
	}
	authUC := auth.NewAuthUseCase(employeeRepo, sessionRepo, signer, auth.LockoutConfig{
		MaxAttempts: cfg.Security.MaxLoginAttempts,
		Window:      time.Duration(cfg.Security.LockoutMinutes) * time.Minute,
	})

	updateStockUC := inventory.NewUpdateStockUseCase(txRunner, movementRepo)
	createSaleUC := sales.NewCreateSaleUseCase(txRunner, productRepo, updateStockUC, cfg.Sales.DecrementStock)
	saleUC := sales.NewSaleUseCase(saleRepo, txRunner, updateStockUC, cfg.Sales.DecrementStock)

	// PDF: comprovante de venda
	receiptUC := sales.NewReceiptUseCase(saleUC, customerRepo, infrapdf.NewReceiptGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Component("http")),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(httpRouter.CORS(cfg.HTTP.CORSOrigins))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Micro ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		RoleUC:       usecase.NewRoleUseCase(roleRepo),
		EmployeeUC:   usecase.NewEmployeeUseCase(employeeRepo, roleRepo),
		ProductUC:    usecase.NewProductUseCase(productRepo, txRunner, updateStockUC),
		CategoryUC:   usecase.NewCategoryUseCase(categoryRepo),
		CustomerUC:   usecase.NewCustomerUseCase(customerRepo),
		UpdateStock:  updateStockUC,
		CreateSale:   createSaleUC,
		SaleUC:       saleUC,
		ReceiptUC:    receiptUC,
		DashboardUC:  reports.NewDashboardUseCase(reportRepo),
		ReportUC:     reports.NewReportUseCase(saleUC, commissionRepo, productRepo, reportRepo),
		CookieName:   cfg.JWT.CookieName,
		SecureCookie: cfg.App.IsProduction(),
	})

	go purgeRevoked(ctx, authUC, log.Component("auth"))

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func migrateUp(databaseURL string) error {
	m, err := postgres.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}

// purgeRevoked limpia periódicamente las revocaciones de tokens ya expirados.
func purgeRevoked(ctx context.Context, authUC *auth.AuthUseCase, log *logger.Logger) {
	ticker := time.NewTicker(revokedPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := authUC.PurgeRevoked(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("purga de sesiones revocadas")
				continue
			}
			log.Debug().Int64("eliminadas", n).Msg("sesiones revocadas purgadas")
		}
	}
}
