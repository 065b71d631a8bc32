package repository

import (
	"time"

	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
)

// StockMovementRepository define el puerto para el registro de auditoría de
// movimientos de stock (append-only).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByIngredient(ingredientID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
