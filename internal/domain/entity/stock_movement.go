package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypePurchase   = "purchase"   // compra: incrementa
	MovementTypeUsage      = "usage"      // consumo: decrementa
	MovementTypeAdjustment = "adjustment" // ajuste: fija valor absoluto
)

// StockMovement es el registro de auditoría de una mutación de stock
// (append-only). Para ajustes, Quantity guarda el delta con signo, no el
// valor absoluto fijado.
type StockMovement struct {
	ID           string
	IngredientID string
	Type         string // purchase | usage | adjustment
	Quantity     decimal.Decimal
	UnitCost     *decimal.Decimal // solo compras
	Reason       string
	Notes        string
	CreatedAt    time.Time
	CreatedBy    string
}
