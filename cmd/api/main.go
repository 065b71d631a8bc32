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
	"github.com/shopspring/decimal"

	appcosting "github.com/jhoicas/Pasteleria-api/internal/application/costing"
	"github.com/jhoicas/Pasteleria-api/internal/application/ingredients"
	"github.com/jhoicas/Pasteleria-api/internal/application/inventory"
	"github.com/jhoicas/Pasteleria-api/internal/application/recipes"
	"github.com/jhoicas/Pasteleria-api/internal/application/settings"
	"github.com/jhoicas/Pasteleria-api/internal/application/suppliers"
	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
	infrapdf "github.com/jhoicas/Pasteleria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Pasteleria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Pasteleria-api/internal/interfaces/http"
	"github.com/jhoicas/Pasteleria-api/pkg/config"
	"github.com/jhoicas/Pasteleria-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	ingredientRepo := postgres.NewIngredientRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	priceRepo := postgres.NewPriceHistoryRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockLedger := inventory.NewStockLedger(txRunner, movementRepo)
	priceLedger := inventory.NewPriceLedger(priceRepo, txRunner)
	priceAnalytics := inventory.NewPriceAnalytics(priceRepo, ingredientRepo)

	graphValidator := appcosting.NewGraphValidator(recipeRepo, log.Component("costing"))
	costResolver := appcosting.NewCostResolver(
		recipeRepo, ingredientRepo, priceLedger, settingsRepo, log.Component("costing"),
	)

	ingredientUC := ingredients.NewUseCase(ingredientRepo)
	recipeUC := recipes.NewUseCase(txRunner, recipeRepo, graphValidator, costResolver, log.Component("recipes"))
	recipePDF := recipes.NewPDFUseCase(recipeUC, infrapdf.NewMarotoCostSheetGenerator())
	// Defaults de costeo desde env; aplican mientras no haya configuración guardada.
	costingDefaults := entity.DefaultCostingSettings()
	costingDefaults.LaborHourRate = decimal.NewFromFloat(cfg.Costing.LaborHourRate)
	costingDefaults.DefaultMargin = decimal.NewFromFloat(cfg.Costing.DefaultMargin)
	settingsUC := settings.NewUseCase(settingsRepo, costingDefaults)
	supplierUC := suppliers.NewUseCase(supplierRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Pastelería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		IngredientUC: ingredientUC,
		StockLedger:  stockLedger,
		PriceLedger:  priceLedger,
		Analytics:    priceAnalytics,
		RecipeUC:     recipeUC,
		RecipePDF:    recipePDF,
		SettingsUC:   settingsUC,
		SupplierUC:   supplierUC,
		JWTSecret:    cfg.JWT.Secret,
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
