package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pedidos-api/internal/application/admin"
	appanalytics "github.com/jhoicas/pedidos-api/internal/application/analytics"
	"github.com/jhoicas/pedidos-api/internal/application/auth"
	"github.com/jhoicas/pedidos-api/internal/application/cart"
	"github.com/jhoicas/pedidos-api/internal/application/order"
	"github.com/jhoicas/pedidos-api/internal/application/usecase"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Resolver    *auth.Resolver
	ProductUC   *usecase.ProductUseCase
	CartUC      *cart.UseCase
	OrderUC     *order.UseCase
	ReportUC    *appanalytics.ReportUseCase
	DashboardUC *appanalytics.DashboardUseCase
	AdminGuard  *admin.Guard
	JWTSecret   string
	JWTIssuer   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authMW := AuthMiddleware(deps.JWTSecret, deps.JWTIssuer, deps.Resolver)
	sellers := RequireRole(entity.RoleCompany, entity.RoleAdmin, entity.RoleSuperadmin)
	staff := RequireRole(entity.RoleAdmin, entity.RoleSuperadmin)
	superadmin := RequireRole(entity.RoleSuperadmin)

	// Catálogo: lectura pública, escritura autenticada
	productHandler := NewProductHandler(deps.ProductUC)
	catalog := api.Group("/catalog")
	catalog.Get("/", productHandler.List)
	catalog.Get("/categories", productHandler.Categories)
	catalog.Get("/mine", authMW, sellers, productHandler.Mine)
	catalog.Post("/import", authMW, superadmin, productHandler.Import)
	catalog.Post("/", authMW, sellers, productHandler.Create)
	catalog.Put("/:id", authMW, sellers, productHandler.Update)
	catalog.Delete("/:id", authMW, sellers, productHandler.Delete)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", authMW)

	profileHandler := NewProfileHandler(deps.Resolver)
	protected.Get("/profile", profileHandler.Get)
	protected.Post("/profile", profileHandler.Register)

	cartHandler := NewCartHandler(deps.CartUC)
	carts := protected.Group("/cart")
	carts.Get("/", cartHandler.Get)
	carts.Delete("/", cartHandler.Clear)
	carts.Post("/items", cartHandler.AddItem)
	carts.Patch("/items/:itemId", cartHandler.ChangeQuantity)
	carts.Delete("/items/:itemId", cartHandler.RemoveItem)

	orderHandler := NewOrderHandler(deps.OrderUC)
	orders := protected.Group("/orders")
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)

	reportHandler := NewReportHandler(deps.ReportUC)
	reports := protected.Group("/reports", staff)
	reports.Get("/sales", reportHandler.Sales)
	reports.Get("/sales/export", reportHandler.Export)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	adminHandler := NewAdminHandler(deps.AdminGuard)
	adminGroup := protected.Group("/admin", superadmin)
	adminGroup.Get("/dashboard", dashboardHandler.GetSummary)
	adminGroup.Get("/users", adminHandler.ListUsers)
	adminGroup.Put("/users/:id", adminHandler.UpdateUser)
	adminGroup.Put("/users/:id/role", adminHandler.SetRole)
	adminGroup.Delete("/users/:id", adminHandler.DeleteUser)
}
