package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
)

// IngredientRepository define el puerto de persistencia para Ingredient (DIP).
// CurrentPrice y CurrentStock solo se actualizan vía UpdatePrice/UpdateStock,
// llamados desde los ledgers dentro de una transacción.
type IngredientRepository interface {
	Create(ingredient *entity.Ingredient) error
	GetByID(id string) (*entity.Ingredient, error)
	// GetForUpdate bloquea la fila del ingrediente (SELECT FOR UPDATE) para
	// serializar el read-modify-write de stock por ingrediente.
	GetForUpdate(id string) (*entity.Ingredient, error)
	Update(ingredient *entity.Ingredient) error
	UpdatePrice(id string, price decimal.Decimal) error
	UpdateStock(id string, stock decimal.Decimal) error
	List(category string, activeOnly bool) ([]*entity.Ingredient, error)
	// ListBelowMinStock devuelve ingredientes activos con stock <= mínimo.
	ListBelowMinStock() ([]*entity.Ingredient, error)
	// Delete es borrado lógico (is_active = false).
	Delete(id string) error
}
