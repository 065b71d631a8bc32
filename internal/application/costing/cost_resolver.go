package costing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pasteleria-api/internal/domain"
	domcost "github.com/jhoicas/Pasteleria-api/internal/domain/costing"
	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/Pasteleria-api/internal/domain/repository"
	"github.com/jhoicas/Pasteleria-api/pkg/logger"
)

// MaxResolveDepth acota la recursión sobre sub-recetas. El validador de
// grafo garantiza aciclicidad al escribir, pero datos escritos por otras
// vías (edición directa en BD) podrían violarla; antes que desbordar la
// pila, la resolución falla con ErrMaxDepth.
const MaxResolveDepth = 16

var (
	sixty      = decimal.NewFromInt(60)
	one        = decimal.NewFromInt(1)
	hundredPct = decimal.NewFromInt(100)
)

// ItemCost costo resuelto de un ítem de receta. Missing marca los ítems cuya
// referencia no pudo resolverse: cuestan cero pero quedan señalados para que
// la UI no presente un total artificialmente bajo como completo.
type ItemCost struct {
	ItemID        string          `json:"item_id"`
	Type          string          `json:"type"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit,omitempty"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Missing       bool            `json:"missing,omitempty"`
	MissingReason string          `json:"missing_reason,omitempty"`
}

// CostBreakdown desglose de costos de una receta.
type CostBreakdown struct {
	RecipeID        string          `json:"recipe_id"`
	Items           []ItemCost      `json:"items"`
	IngredientsCost decimal.Decimal `json:"ingredients_cost"`
	SubRecipesCost  decimal.Decimal `json:"sub_recipes_cost"`
	LaborCost       decimal.Decimal `json:"labor_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	CostPerServing  decimal.Decimal `json:"cost_per_serving"`
	SuggestedPrice  decimal.Decimal `json:"suggested_price"`
	MarginPct       decimal.Decimal `json:"margin_pct"`
	Servings        int             `json:"servings"`
	// Incomplete indica que al menos un ítem no pudo resolverse y el total
	// es un piso, no el costo real.
	Incomplete   bool      `json:"incomplete,omitempty"`
	Unresolved   []string  `json:"unresolved,omitempty"`
	CalculatedAt time.Time `json:"calculated_at"`
}

// PriceSource resuelve el precio vigente de un ingrediente desde el
// historial; nil cuando no hay historial.
type PriceSource interface {
	LatestPrice(ingredientID string) (*decimal.Decimal, error)
}

// CostResolver calcula el costo de una receta resolviendo recursivamente
// ingredientes y sub-recetas contra los ledgers de precio y la configuración
// de costeo vigente.
type CostResolver struct {
	recipes     repository.RecipeRepository
	ingredients repository.IngredientRepository
	prices      PriceSource
	settings    repository.SettingsRepository
	log         *logger.Logger
}

// NewCostResolver construye el resolver.
func NewCostResolver(
	recipes repository.RecipeRepository,
	ingredients repository.IngredientRepository,
	prices PriceSource,
	settings repository.SettingsRepository,
	log *logger.Logger,
) *CostResolver {
	return &CostResolver{
		recipes:     recipes,
		ingredients: ingredients,
		prices:      prices,
		settings:    settings,
		log:         log,
	}
}

// Resolve calcula el desglose de costos de la receta.
// Falla con ErrNotFound si la receta no existe o fue borrada (borrado
// lógico), ErrInvalidInput si no tiene porciones declaradas, y ErrMaxDepth si
// la composición excede la cota de recursión. Las referencias faltantes
// dentro de la receta NO abortan el cálculo: producen ítems a costo cero
// marcados en el desglose.
func (r *CostResolver) Resolve(ctx context.Context, recipeID string) (*CostBreakdown, error) {
	settings, err := r.settings.Get()
	if err != nil || settings == nil {
		// Sin configuración guardada (o ilegible) se costea con los valores
		// por defecto; la operación de lectura no debe bloquearse por esto.
		if err != nil {
			r.log.Warn().Err(err).Msg("configuración de costeo ilegible, usando valores por defecto")
		}
		settings = entity.DefaultCostingSettings()
	}
	visited := map[string]bool{recipeID: true}
	return r.resolve(ctx, recipeID, settings, visited, 0)
}

func (r *CostResolver) resolve(ctx context.Context, recipeID string, settings *entity.CostingSettings, visited map[string]bool, depth int) (*CostBreakdown, error) {
	if depth > MaxResolveDepth {
		return nil, fmt.Errorf("receta %s: %w", recipeID, domain.ErrMaxDepth)
	}

	recipe, err := r.recipes.GetByID(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, fmt.Errorf("receta %s: %w", recipeID, domain.ErrNotFound)
	}
	if !recipe.IsActive {
		// Una receta borrada lógicamente no se costea: para quien la
		// referencia es equivalente a una inexistente (ítem no resuelto).
		return nil, fmt.Errorf("receta %s borrada: %w", recipeID, domain.ErrNotFound)
	}
	if recipe.Servings <= 0 {
		// Una receta sin porciones no puede costearse por porción; se
		// reporta explícitamente en vez de dividir por cero.
		return nil, fmt.Errorf("receta %s sin porciones declaradas: %w", recipeID, domain.ErrInvalidInput)
	}

	breakdown := &CostBreakdown{
		RecipeID:     recipeID,
		Items:        make([]ItemCost, 0, len(recipe.Items)),
		Servings:     recipe.Servings,
		CalculatedAt: time.Now(),
	}

	for _, item := range recipe.Items {
		var itemCost ItemCost
		switch item.Type {
		case entity.ItemTypeIngredient:
			itemCost = r.resolveIngredientItem(item)
			breakdown.IngredientsCost = breakdown.IngredientsCost.Add(itemCost.TotalCost)
		case entity.ItemTypeSubRecipe:
			var err error
			itemCost, err = r.resolveSubRecipeItem(ctx, item, settings, visited, depth, breakdown)
			if err != nil {
				return nil, err
			}
			breakdown.SubRecipesCost = breakdown.SubRecipesCost.Add(itemCost.TotalCost)
		default:
			itemCost = ItemCost{
				ItemID:        item.ID,
				Type:          item.Type,
				Missing:       true,
				MissingReason: "tipo de ítem desconocido",
			}
		}
		if itemCost.Missing {
			breakdown.Incomplete = true
			breakdown.Unresolved = append(breakdown.Unresolved, itemCost.ItemID)
		}
		breakdown.Items = append(breakdown.Items, itemCost)
	}

	// Mano de obra: minutos de preparación a la tarifa horaria configurada.
	breakdown.LaborCost = decimal.NewFromInt(int64(recipe.PreparationTime)).
		Div(sixty).Mul(settings.LaborHourRate)

	breakdown.TotalCost = breakdown.IngredientsCost.
		Add(breakdown.SubRecipesCost).
		Add(breakdown.LaborCost)
	breakdown.CostPerServing = breakdown.TotalCost.Div(decimal.NewFromInt(int64(recipe.Servings)))

	margin := settings.MarginFor(recipe.Category)
	breakdown.MarginPct = margin.Mul(hundredPct)
	breakdown.SuggestedPrice = breakdown.TotalCost.Mul(one.Add(margin))

	return breakdown, nil
}

// resolveIngredientItem costea un ítem de ingrediente: precio vigente (último
// del historial, o el denormalizado del ingrediente), convertido a la unidad
// de precio del ingrediente.
func (r *CostResolver) resolveIngredientItem(item entity.RecipeItem) ItemCost {
	cost := ItemCost{
		ItemID:   item.ID,
		Type:     item.Type,
		Name:     item.IngredientName,
		Quantity: item.Quantity,
		Unit:     item.Unit,
	}

	ingredient, err := r.ingredients.GetByID(item.IngredientID)
	if err != nil || ingredient == nil || !ingredient.IsActive {
		cost.Missing = true
		cost.MissingReason = "ingrediente no encontrado: " + item.IngredientID
		if err != nil {
			r.log.Warn().Err(err).Str("ingredient_id", item.IngredientID).
				Msg("costeo: no se pudo leer el ingrediente")
			cost.MissingReason = "error leyendo ingrediente: " + item.IngredientID
		}
		return cost
	}
	if cost.Name == "" {
		cost.Name = ingredient.Name
	}

	price := ingredient.CurrentPrice
	if latest, err := r.prices.LatestPrice(ingredient.ID); err == nil && latest != nil {
		price = *latest
	}

	// CurrentPrice es por MeasurementValue unidades de la unidad del
	// ingrediente (ej. 8.50 por 1 kg).
	measurement := ingredient.MeasurementValue
	if !measurement.GreaterThan(decimal.Zero) {
		measurement = one
	}
	pricePerUnit := price.Div(measurement)

	if !domcost.Convertible(item.Unit, ingredient.Unit) {
		// Familias no comparables (ej. gramos contra unidades): la cantidad
		// se toma tal cual en la unidad de precio del ingrediente.
		r.log.Debug().Str("ingredient_id", ingredient.ID).
			Str("item_unit", item.Unit).Str("pricing_unit", ingredient.Unit).
			Msg("costeo: unidades no convertibles, cantidad sin conversión")
	}
	qtyInPricingUnit := domcost.Convert(item.Unit, ingredient.Unit, item.Quantity)
	cost.UnitCost = pricePerUnit
	cost.TotalCost = qtyInPricingUnit.Mul(pricePerUnit)
	return cost
}

// resolveSubRecipeItem costea un ítem de sub-receta: porciones usadas por el
// costo por porción de la sub-receta, resuelto recursivamente.
func (r *CostResolver) resolveSubRecipeItem(ctx context.Context, item entity.RecipeItem, settings *entity.CostingSettings, visited map[string]bool, depth int, parent *CostBreakdown) (ItemCost, error) {
	cost := ItemCost{
		ItemID:   item.ID,
		Type:     item.Type,
		Name:     item.SubRecipeName,
		Quantity: item.Portions,
	}

	if item.SubRecipeID == "" {
		cost.Missing = true
		cost.MissingReason = "ítem de sub-receta sin referencia"
		return cost, nil
	}
	if visited[item.SubRecipeID] {
		// Ciclo preexistente escrito por otra vía: se costea a cero y se
		// marca, en lugar de recurrir infinitamente.
		r.log.Warn().Str("sub_recipe_id", item.SubRecipeID).
			Msg("costeo: dependencia circular en datos, ítem a costo cero")
		cost.Missing = true
		cost.MissingReason = "dependencia circular: " + item.SubRecipeID
		return cost, nil
	}

	visited[item.SubRecipeID] = true
	sub, err := r.resolve(ctx, item.SubRecipeID, settings, visited, depth+1)
	delete(visited, item.SubRecipeID)

	if err != nil {
		if errors.Is(err, domain.ErrMaxDepth) {
			// La cota de recursión es un error diagnosticable, no degradable.
			return cost, err
		}
		cost.Missing = true
		cost.MissingReason = "sub-receta no resuelta: " + err.Error()
		return cost, nil
	}

	if sub.Incomplete {
		parent.Incomplete = true
		parent.Unresolved = append(parent.Unresolved, sub.Unresolved...)
	}

	cost.UnitCost = sub.CostPerServing
	cost.TotalCost = sub.CostPerServing.Mul(item.Portions)
	return cost, nil
}
