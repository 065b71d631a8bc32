package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida de ingredientes (value object conceptual).
// Las familias masa y volumen son convertibles entre sí vía factor fijo;
// "unit" y "dozen" son unidades de conteo, no convertibles.
const (
	UnitKilogram   = "kilogram"
	UnitGram       = "gram"
	UnitPound      = "pound"
	UnitOunce      = "ounce"
	UnitLiter      = "liter"
	UnitMilliliter = "milliliter"
	UnitCup        = "cup"
	UnitTablespoon = "tablespoon"
	UnitTeaspoon   = "teaspoon"
	UnitUnit       = "unit"
	UnitDozen      = "dozen"
)

// Categorías de ingredientes para organización y filtrado.
const (
	CategoryFlour         = "flour"
	CategorySugar         = "sugar"
	CategoryDairy         = "dairy"
	CategoryEggs          = "eggs"
	CategoryFats          = "fats"
	CategoryLeavening     = "leavening"
	CategoryFlavoring     = "flavoring"
	CategoryNuts          = "nuts"
	CategoryFruits        = "fruits"
	CategoryChocolate     = "chocolate"
	CategorySpices        = "spices"
	CategoryPreservatives = "preservatives"
	CategoryOther         = "other"
)

// Ingredient representa un ingrediente del inventario de la pastelería.
// CurrentPrice es el precio por MeasurementValue unidades de Unit
// (ej. 8.50 por 1 kilogram). CurrentPrice y CurrentStock se mutan solo
// vía PriceLedger/StockLedger, nunca por escritura directa.
type Ingredient struct {
	ID               string
	Name             string
	Description      string
	Category         string
	Unit             string          // unidad de precio y stock
	MeasurementValue decimal.Decimal // ej. 1 para "1 kg de azúcar"
	Brand            string
	CurrentPrice     decimal.Decimal
	CurrentStock     decimal.Decimal // invariante: >= 0
	MinStock         decimal.Decimal // invariante: >= 0
	SupplierID       string          // opcional
	Allergens        []string
	IsActive         bool // soft-delete
	CreatedAt        time.Time
	UpdatedAt        time.Time
	CreatedBy        string
}
