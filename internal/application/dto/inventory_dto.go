package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/ingredients/:id/movements.
// Para purchase/usage, quantity es la cantidad movida; para adjustment es el
// nuevo stock absoluto.
type RegisterMovementRequest struct {
	Type     string           `json:"type" validate:"required,oneof=purchase usage adjustment"`
	Quantity decimal.Decimal  `json:"quantity" validate:"required"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason   string           `json:"reason,omitempty"`
	Notes    string           `json:"notes,omitempty"`
}

// MovementResponse resultado de aplicar un movimiento.
type MovementResponse struct {
	IngredientID string          `json:"ingredient_id"`
	NewStock     decimal.Decimal `json:"new_stock"`
	Status       string          `json:"status"` // banda de salud resultante
}

// RecordPriceRequest body para POST /api/ingredients/:id/prices.
type RecordPriceRequest struct {
	Price      decimal.Decimal `json:"price" validate:"required"`
	SupplierID string          `json:"supplier_id,omitempty"`
	Notes      string          `json:"notes,omitempty"`
}

// StockStatusResponse respuesta de GET /api/ingredients/:id/stock-status.
type StockStatusResponse struct {
	IngredientID string          `json:"ingredient_id"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Unit         string          `json:"unit"`
	Status       string          `json:"status"` // good | low | critical | out
}

// PriceChangeDTO comparación entre dos precios consecutivos.
type PriceChangeDTO struct {
	Change     decimal.Decimal `json:"change"`
	Percentage decimal.Decimal `json:"percentage"`
	Trend      string          `json:"trend"` // up | down | stable
}

// PricePointDTO punto de la serie de tendencia de precios.
type PricePointDTO struct {
	Date      time.Time       `json:"date"`
	Price     decimal.Decimal `json:"price"`
	ChangePct decimal.Decimal `json:"change_pct"`
}

// PriceAlertDTO alerta por cambio de precio por encima del umbral.
type PriceAlertDTO struct {
	Type       string          `json:"type"` // increase | decrease
	Percentage decimal.Decimal `json:"percentage"`
	Current    decimal.Decimal `json:"current"`
	Previous   decimal.Decimal `json:"previous"`
}

// LowStockItemDTO ingrediente en o bajo su stock mínimo.
type LowStockItemDTO struct {
	IngredientID string          `json:"ingredient_id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Status       string          `json:"status"`
}
