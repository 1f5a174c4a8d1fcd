package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/stockpro/internal/application/analytics"
	"github.com/jhoicas/stockpro/internal/application/auth"
	"github.com/jhoicas/stockpro/internal/application/inventory"
	"github.com/jhoicas/stockpro/internal/application/sales"
	"github.com/jhoicas/stockpro/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	StockUC     *inventory.StockUseCase
	SaleUC      *sales.SaleUseCase
	DashboardUC *appanalytics.DashboardUseCase
	JournalUC   *usecase.JournalUseCase
	ProfileUC   *usecase.ProfileUseCase
	Session     SessionConfig
	ServiceName string
	Log         zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Session, deps.Log)
	authGroup := api.Group("/auth")
	authGroup.Post("/sign-up", authHandler.SignUp)
	authGroup.Post("/sign-in", authHandler.SignIn)
	authGroup.Post("/sign-out", authHandler.SignOut)

	// Rutas protegidas (cookie de sesión o Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.AuthUC, deps.Session))
	protected.Get("/auth/me", authHandler.Me)

	// Products; las rutas fijas van antes de /:id
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	inventoryHandler := NewInventoryHandler(deps.StockUC, deps.Log)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/stats", productHandler.Stats)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/export.pdf", productHandler.Export)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/movements", inventoryHandler.ProductMovements)
	products.Post("/:id/stock", inventoryHandler.AdjustStock)

	// Stock
	stock := protected.Group("/stock")
	stock.Get("/movements", inventoryHandler.Movements)
	stock.Get("/overview", inventoryHandler.Overview)
	stock.Get("/reconciliation", inventoryHandler.Reconciliation)

	// Sales
	saleHandler := NewSaleHandler(deps.SaleUC, deps.Log)
	salesGroup := protected.Group("/sales")
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/stats", saleHandler.Stats)
	salesGroup.Get("/:id", saleHandler.Get)

	// Journal
	journalHandler := NewJournalHandler(deps.JournalUC, deps.Log)
	protected.Get("/journal", journalHandler.List)
	protected.Get("/journal/stats", journalHandler.Stats)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Log)
	protected.Get("/dashboard/stats", dashboardHandler.GetStats)

	// Profile
	profileHandler := NewProfileHandler(deps.ProfileUC, deps.Log)
	protected.Get("/profile", profileHandler.Get)
	protected.Get("/profile/stats", profileHandler.Stats)
}
