package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de recetas.
const (
	RecipeCategoryCakes    = "cakes"
	RecipeCategoryCupcakes = "cupcakes"
	RecipeCategoryCookies  = "cookies"
	RecipeCategoryBreads   = "breads"
	RecipeCategoryPastries = "pastries"
	RecipeCategoryIcings   = "icings"
	RecipeCategoryFillings = "fillings"
	RecipeCategoryOther    = "other"
)

// Dificultad de la receta.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Tipos de ítem de receta (unión etiquetada).
const (
	ItemTypeIngredient = "ingredient"
	ItemTypeSubRecipe  = "recipe"
)

// RecipeItem es un componente de una receta: o bien un ingrediente con
// cantidad/unidad, o bien una sub-receta con número de porciones.
// Invariante: la lista de ítems de una receta no puede, tras expansión
// transitiva, contener el ID de la propia receta (validado al escribir).
type RecipeItem struct {
	ID   string `json:"id"`
	Type string `json:"type"` // ingredient | recipe

	// Type == ingredient
	IngredientID   string          `json:"ingredient_id,omitempty"`
	IngredientName string          `json:"ingredient_name,omitempty"` // denormalizado para UI
	Quantity       decimal.Decimal `json:"quantity,omitempty"`
	Unit           string          `json:"unit,omitempty"`

	// Type == recipe
	SubRecipeID   string          `json:"sub_recipe_id,omitempty"`
	SubRecipeName string          `json:"sub_recipe_name,omitempty"` // denormalizado para UI
	Portions      decimal.Decimal `json:"portions,omitempty"`

	Notes     string `json:"notes,omitempty"`
	SortOrder int    `json:"sort_order"`
}

// RecipeStep es un paso de preparación; TimeMinutes suma al tiempo total.
type RecipeStep struct {
	ID          string `json:"id"`
	StepNumber  int    `json:"step_number"`
	Instruction string `json:"instruction"`
	TimeMinutes int    `json:"time_minutes"`
	Notes       string `json:"notes,omitempty"`
}

// Recipe representa una receta, posiblemente compuesta por otras recetas.
// Los campos de costos son derivados: los posee el CostResolver y se
// recalculan, nunca se editan a mano.
type Recipe struct {
	ID          string
	Name        string // único entre recetas activas
	Description string
	Category    string
	Difficulty  string

	GeneratedAmount decimal.Decimal // rendimiento total de una tanda
	GeneratedUnit   string
	Servings        int
	PortionSize     decimal.Decimal // derivado: GeneratedAmount / Servings

	PreparationTime int // minutos, derivado de los pasos

	Items        []RecipeItem
	Instructions []RecipeStep
	Notes        string

	// Derivados (cache de CostResolver)
	TotalCost      decimal.Decimal
	CostPerServing decimal.Decimal
	LaborCost      decimal.Decimal
	SuggestedPrice decimal.Decimal

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
}

// SubRecipeIDs devuelve los IDs de sub-recetas referenciadas (aristas del
// grafo de composición; los ítems de ingrediente no son aristas).
func (r *Recipe) SubRecipeIDs() []string {
	var ids []string
	for _, item := range r.Items {
		if item.Type == ItemTypeSubRecipe && item.SubRecipeID != "" {
			ids = append(ids, item.SubRecipeID)
		}
	}
	return ids
}
