package repository

import (
	"time"

	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
)

// PriceHistoryRepository define el puerto para el log de precios
// (append-only: nunca se mutan ni borran entradas).
type PriceHistoryRepository interface {
	Create(entry *entity.PriceHistoryEntry) error
	// GetLatest devuelve la entrada más reciente del ingrediente; nil si no
	// hay historial.
	GetLatest(ingredientID string) (*entity.PriceHistoryEntry, error)
	// ListByIngredient devuelve entradas ordenadas por fecha descendente.
	ListByIngredient(ingredientID string, from, to *time.Time, limit int) ([]*entity.PriceHistoryEntry, error)
}
