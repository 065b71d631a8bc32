package costing

import "github.com/shopspring/decimal"

// StockStatus es la banda de salud de stock de un ingrediente.
type StockStatus string

const (
	StockOut      StockStatus = "out"      // stock == 0
	StockCritical StockStatus = "critical" // 0 < stock <= 0.5 * mínimo
	StockLow      StockStatus = "low"      // 0.5 * mínimo < stock <= mínimo
	StockGood     StockStatus = "good"     // stock > mínimo
)

var half = decimal.NewFromFloat(0.5)

// Classify deriva la banda de salud de stock a partir del stock actual y el
// umbral mínimo. Función pura y total: particiona [0, ∞) en exactamente
// cuatro bandas sin huecos ni solapes. Con minStock == 0 las bandas crítica
// y baja colapsan y cualquier stock positivo es "good".
func Classify(currentStock, minStock decimal.Decimal) StockStatus {
	if currentStock.LessThanOrEqual(decimal.Zero) {
		return StockOut
	}
	if currentStock.LessThanOrEqual(minStock.Mul(half)) {
		return StockCritical
	}
	if currentStock.LessThanOrEqual(minStock) {
		return StockLow
	}
	return StockGood
}
