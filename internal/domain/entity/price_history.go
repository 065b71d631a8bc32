package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceHistoryEntry es un registro inmutable de precio de un ingrediente.
// Se crea en cada compra con costo unitario y en cambios manuales de precio;
// ordenado por CreatedAt descendente para resolver "último precio".
type PriceHistoryEntry struct {
	ID           string
	IngredientID string
	Price        decimal.Decimal
	SupplierID   string           // opcional
	Quantity     *decimal.Decimal // cantidad comprada, opcional
	Notes        string
	CreatedAt    time.Time
	CreatedBy    string
}
