package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/pedidos-api/internal/application/admin"
	appanalytics "github.com/jhoicas/pedidos-api/internal/application/analytics"
	"github.com/jhoicas/pedidos-api/internal/application/auth"
	"github.com/jhoicas/pedidos-api/internal/application/cart"
	"github.com/jhoicas/pedidos-api/internal/application/order"
	"github.com/jhoicas/pedidos-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/pedidos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/pedidos-api/internal/interfaces/http"
	"github.com/jhoicas/pedidos-api/pkg/config"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("tz", cfg.App.Timezone).
		Str("tax_rate", cfg.Orders.TaxRate.String()).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	cartStore, err := sqlite.Open(cfg.Cart.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Cart.DBPath).Msg("almacén de carritos")
	}
	defer cartStore.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	loc := cfg.App.Location()

	resolver := auth.NewResolver(userRepo, cfg.Admin.SuperadminEmail, log.Component("auth"))
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, log.Component("catalog"))
	cartUC := cart.NewUseCase(cartStore, productRepo, log.Component("cart"))
	orderUC := order.NewUseCase(orderRepo, txRunner, cartUC, cfg.Orders.TaxRate, log.Component("orders"))
	adminGuard := admin.NewGuard(userRepo, log.Component("admin"))
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, orderRepo, productRepo, loc)

	// Exportaciones del reporte de ventas: PDF (maroto) y libro .xlsx
	renderers := map[string]appanalytics.ReportRenderer{}
	for _, r := range []appanalytics.ReportRenderer{
		infrapdf.NewReportGenerator(cfg.App.Name),
		spreadsheet.NewWorkbookRenderer(),
	} {
		renderers[r.Extension()] = r
	}
	reportUC := appanalytics.NewReportUseCase(orderRepo, userRepo, categoryRepo, renderers, loc, log.Component("reports"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Pedidos API",
		}))
	}

	app.Get("/health", httpRouter.Health(cfg.App.Name, map[string]httpRouter.Pinger{
		"postgres": pool,
		"carts":    cartStore,
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Resolver:    resolver,
		ProductUC:   productUC,
		CartUC:      cartUC,
		OrderUC:     orderUC,
		ReportUC:    reportUC,
		DashboardUC: dashboardUC,
		AdminGuard:  adminGuard,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
