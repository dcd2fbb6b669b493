package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-inventario/internal/application/auth"
	"github.com/jhoicas/pos-inventario/internal/application/inventory"
	"github.com/jhoicas/pos-inventario/internal/application/usecase"
	"github.com/jhoicas/pos-inventario/internal/domain/access"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	ProductUC    *usecase.ProductUseCase
	IngredientUC *usecase.IngredientUseCase
	InventoryUC  *inventory.InventoryUseCase
	ReportUC     *inventory.ReportUseCase
	JWTSecret    string
	ServiceName  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// El resto resuelve identidad (anónimo si no hay token) y autoriza por capacidad.
	identity := IdentityMiddleware(deps.JWTSecret)
	authGroup.Get("/me", identity, authHandler.Me)

	products := api.Group("/products", identity)
	productHandler := NewProductHandler(deps.ProductUC, deps.InventoryUC)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	products.Get("/", RequireCapability(access.ListProducts), productHandler.List)
	products.Post("/", RequireCapability(access.ManageCatalog), productHandler.Create)
	products.Get("/:id", RequireCapability(access.ViewProduct), productHandler.GetByID)
	products.Get("/:id/calories", RequireCapability(access.ViewCalories), productHandler.Calories)
	products.Get("/:id/profitability", RequireCapability(access.ViewProfitability), productHandler.Profitability)
	products.Post("/:id/sell", RequireCapability(access.SellProduct), inventoryHandler.Sell)
	products.Post("/:id/restock", RequireCapability(access.AdjustStock), inventoryHandler.Restock)
	products.Post("/:id/renew", RequireCapability(access.AdjustStock), inventoryHandler.Renew)
	products.Get("/:id/movements", RequireCapability(access.ViewReports), inventoryHandler.Movements)

	ingredients := api.Group("/ingredients", identity, RequireCapability(access.ManageCatalog))
	ingredientHandler := NewIngredientHandler(deps.IngredientUC)
	ingredients.Get("/", ingredientHandler.List)
	ingredients.Post("/", ingredientHandler.Create)

	invGroup := api.Group("/inventory", identity)
	reportHandler := NewReportHandler(deps.ReportUC)
	invGroup.Get("/report.pdf", RequireCapability(access.ViewReports), reportHandler.StockPDF)
}
