package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
)

// CreateIngredientRequest body para POST /api/ingredients.
// MeasurementValue es el contenido de la presentación comprada (ej. 1 para
// "harina por kg", 500 para "esencia frasco de 500 ml"); el precio actual
// corresponde a esa presentación completa.
type CreateIngredientRequest struct {
	Name             string          `json:"name" validate:"required,min=2,max=120"`
	Description      string          `json:"description,omitempty"`
	Category         string          `json:"category" validate:"required"`
	Unit             string          `json:"unit" validate:"required"`
	MeasurementValue decimal.Decimal `json:"measurement_value" validate:"required"`
	Brand            string          `json:"brand,omitempty"`
	CurrentPrice     decimal.Decimal `json:"current_price"`
	InitialStock     decimal.Decimal `json:"initial_stock"`
	MinStock         decimal.Decimal `json:"min_stock"`
	SupplierID       string          `json:"supplier_id,omitempty"`
	Allergens        []string        `json:"allergens,omitempty"`
}

// UpdateIngredientRequest body para PUT /api/ingredients/:id.
// No incluye precio ni stock: esos cambian solo vía movimientos y precios.
type UpdateIngredientRequest struct {
	Name             string          `json:"name" validate:"required,min=2,max=120"`
	Description      string          `json:"description,omitempty"`
	Category         string          `json:"category" validate:"required"`
	Unit             string          `json:"unit" validate:"required"`
	MeasurementValue decimal.Decimal `json:"measurement_value" validate:"required"`
	Brand            string          `json:"brand,omitempty"`
	MinStock         decimal.Decimal `json:"min_stock"`
	SupplierID       string          `json:"supplier_id,omitempty"`
	Allergens        []string        `json:"allergens,omitempty"`
}

// IngredientResponse representación de un ingrediente en la API.
type IngredientResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Category         string          `json:"category"`
	Unit             string          `json:"unit"`
	MeasurementValue decimal.Decimal `json:"measurement_value"`
	Brand            string          `json:"brand,omitempty"`
	CurrentPrice     decimal.Decimal `json:"current_price"`
	CurrentStock     decimal.Decimal `json:"current_stock"`
	MinStock         decimal.Decimal `json:"min_stock"`
	SupplierID       string          `json:"supplier_id,omitempty"`
	Allergens        []string        `json:"allergens,omitempty"`
	StockStatus      string          `json:"stock_status"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToIngredientResponse mapea la entidad a su representación HTTP.
// stockStatus se calcula fuera para no acoplar el DTO al clasificador.
func ToIngredientResponse(i *entity.Ingredient, stockStatus string) IngredientResponse {
	return IngredientResponse{
		ID:               i.ID,
		Name:             i.Name,
		Description:      i.Description,
		Category:         i.Category,
		Unit:             i.Unit,
		MeasurementValue: i.MeasurementValue,
		Brand:            i.Brand,
		CurrentPrice:     i.CurrentPrice,
		CurrentStock:     i.CurrentStock,
		MinStock:         i.MinStock,
		SupplierID:       i.SupplierID,
		Allergens:        i.Allergens,
		StockStatus:      stockStatus,
		IsActive:         i.IsActive,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

// CreateSupplierRequest body para POST /api/suppliers (y PUT /:id).
type CreateSupplierRequest struct {
	Name          string   `json:"name" validate:"required,min=2,max=120"`
	ContactPerson string   `json:"contact_person,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Email         string   `json:"email,omitempty" validate:"omitempty,email"`
	Rating        int      `json:"rating,omitempty" validate:"min=0,max=5"`
	Categories    []string `json:"categories,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}
