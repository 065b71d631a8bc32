package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pasteleria-api/internal/application/ingredients"
	"github.com/jhoicas/Pasteleria-api/internal/application/inventory"
	"github.com/jhoicas/Pasteleria-api/internal/application/recipes"
	"github.com/jhoicas/Pasteleria-api/internal/application/settings"
	"github.com/jhoicas/Pasteleria-api/internal/application/suppliers"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	IngredientUC *ingredients.UseCase
	StockLedger  *inventory.StockLedger
	PriceLedger  *inventory.PriceLedger
	Analytics    *inventory.PriceAnalytics
	RecipeUC     *recipes.UseCase
	RecipePDF    *recipes.PDFUseCase
	SettingsUC   *settings.UseCase
	SupplierUC   *suppliers.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Ingredients: CRUD + stock + precios (protegido)
	ingredientsGroup := protected.Group("/ingredients")
	ingredientHandler := NewIngredientHandler(deps.IngredientUC, deps.StockLedger, deps.PriceLedger)
	ingredientsGroup.Post("/", ingredientHandler.Create)
	ingredientsGroup.Get("/", ingredientHandler.List)
	ingredientsGroup.Get("/:id", ingredientHandler.GetByID)
	ingredientsGroup.Put("/:id", ingredientHandler.Update)
	ingredientsGroup.Delete("/:id", ingredientHandler.Delete)
	ingredientsGroup.Get("/:id/stock-status", ingredientHandler.StockStatus)
	ingredientsGroup.Post("/:id/movements", ingredientHandler.RegisterMovement)
	ingredientsGroup.Get("/:id/movements", ingredientHandler.ListMovements)
	ingredientsGroup.Post("/:id/prices", ingredientHandler.RecordPrice)
	ingredientsGroup.Get("/:id/prices", ingredientHandler.PriceHistory)

	// Recipes: CRUD + costeo + exportación (protegido)
	recipesGroup := protected.Group("/recipes")
	recipeHandler := NewRecipeHandler(deps.RecipeUC, deps.RecipePDF)
	recipesGroup.Post("/", recipeHandler.Create)
	recipesGroup.Get("/", recipeHandler.List)
	recipesGroup.Get("/:id", recipeHandler.GetByID)
	recipesGroup.Put("/:id", recipeHandler.Update)
	recipesGroup.Delete("/:id", recipeHandler.Delete)
	recipesGroup.Get("/:id/cost", recipeHandler.Cost)
	recipesGroup.Post("/:id/refresh-costs", recipeHandler.RefreshCosts)
	recipesGroup.Post("/:id/duplicate", recipeHandler.Duplicate)
	recipesGroup.Get("/:id/cost-sheet.pdf", recipeHandler.CostSheetPDF)

	// Analytics: precios y stock bajo (protegido)
	analyticsGroup := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.Analytics)
	analyticsGroup.Get("/ingredients/:id/price-trend", analyticsHandler.PriceTrend)
	analyticsGroup.Get("/ingredients/:id/average-price", analyticsHandler.AveragePrice)
	analyticsGroup.Get("/ingredients/:id/price-alerts", analyticsHandler.PriceAlerts)
	analyticsGroup.Get("/low-stock", analyticsHandler.LowStock)

	// Suppliers (protegido)
	suppliersGroup := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliersGroup.Post("/", supplierHandler.Create)
	suppliersGroup.Get("/", supplierHandler.List)
	suppliersGroup.Get("/:id", supplierHandler.GetByID)
	suppliersGroup.Put("/:id", supplierHandler.Update)
	suppliersGroup.Delete("/:id", supplierHandler.Delete)

	// Settings de costeo (protegido)
	settingsGroup := protected.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settingsGroup.Get("/costing", settingsHandler.Get)
	settingsGroup.Put("/costing", settingsHandler.Update)
}
