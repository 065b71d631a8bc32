package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
)

// RecipeItemRequest ítem de receta: ingrediente o sub-receta, según type.
type RecipeItemRequest struct {
	Type string `json:"type" validate:"required,oneof=ingredient recipe"`

	// Campos para type == "ingredient"
	IngredientID string          `json:"ingredient_id,omitempty"`
	Quantity     decimal.Decimal `json:"quantity,omitempty"`
	Unit         string          `json:"unit,omitempty"`

	// Campos para type == "recipe"
	SubRecipeID string          `json:"sub_recipe_id,omitempty"`
	Portions    decimal.Decimal `json:"portions,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// RecipeStepRequest paso de preparación.
type RecipeStepRequest struct {
	Instruction string `json:"instruction" validate:"required"`
	TimeMinutes int    `json:"time_minutes" validate:"min=0"`
	Notes       string `json:"notes,omitempty"`
}

// CreateRecipeRequest body para POST /api/recipes.
type CreateRecipeRequest struct {
	Name            string              `json:"name" validate:"required,min=2,max=120"`
	Description     string              `json:"description,omitempty"`
	Category        string              `json:"category" validate:"required"`
	Difficulty      string              `json:"difficulty" validate:"required"`
	GeneratedAmount decimal.Decimal     `json:"generated_amount" validate:"required"`
	GeneratedUnit   string              `json:"generated_unit" validate:"required"`
	Servings        int                 `json:"servings" validate:"required,min=1"`
	Items           []RecipeItemRequest `json:"items" validate:"dive"`
	Instructions    []RecipeStepRequest `json:"instructions" validate:"dive"`
	Notes           string              `json:"notes,omitempty"`
}

// DuplicateRecipeRequest body para POST /api/recipes/:id/duplicate.
type DuplicateRecipeRequest struct {
	Name string `json:"name" validate:"required,min=2,max=120"`
}

// RecipeResponse representación de una receta con sus costos derivados.
type RecipeResponse struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Description     string              `json:"description,omitempty"`
	Category        string              `json:"category"`
	Difficulty      string              `json:"difficulty"`
	GeneratedAmount decimal.Decimal     `json:"generated_amount"`
	GeneratedUnit   string              `json:"generated_unit"`
	Servings        int                 `json:"servings"`
	PortionSize     decimal.Decimal     `json:"portion_size"`
	PreparationTime int                 `json:"preparation_time"`
	Items           []entity.RecipeItem `json:"items"`
	Instructions    []entity.RecipeStep `json:"instructions"`
	TotalCost       decimal.Decimal     `json:"total_cost"`
	CostPerServing  decimal.Decimal     `json:"cost_per_serving"`
	LaborCost       decimal.Decimal     `json:"labor_cost"`
	SuggestedPrice  decimal.Decimal     `json:"suggested_price"`
	IsActive        bool                `json:"is_active"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ToRecipeResponse mapea la entidad a su representación HTTP.
func ToRecipeResponse(r *entity.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		Category:        r.Category,
		Difficulty:      r.Difficulty,
		GeneratedAmount: r.GeneratedAmount,
		GeneratedUnit:   r.GeneratedUnit,
		Servings:        r.Servings,
		PortionSize:     r.PortionSize,
		PreparationTime: r.PreparationTime,
		Items:           r.Items,
		Instructions:    r.Instructions,
		TotalCost:       r.TotalCost,
		CostPerServing:  r.CostPerServing,
		LaborCost:       r.LaborCost,
		SuggestedPrice:  r.SuggestedPrice,
		IsActive:        r.IsActive,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// UpdateSettingsRequest body para PUT /api/settings/costing.
// Los márgenes se expresan como fracción (1.5 = 150%).
type UpdateSettingsRequest struct {
	LaborHourRate     decimal.Decimal            `json:"labor_hour_rate" validate:"required"`
	DefaultMargin     decimal.Decimal            `json:"default_margin" validate:"required"`
	MarginsByCategory map[string]decimal.Decimal `json:"margins_by_category,omitempty"`
}
