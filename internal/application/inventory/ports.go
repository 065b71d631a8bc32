package inventory

import (
	"context"

	"github.com/jhoicas/Pasteleria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la actualización del contador
// de stock, el registro de auditoría y el historial de precios se persistan
// todo-o-nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ingredientRepo repository.IngredientRepository,
		movementRepo repository.StockMovementRepository,
		priceRepo repository.PriceHistoryRepository,
	) error) error
}
