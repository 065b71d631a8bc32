package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pasteleria-api/internal/domain"
	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/Pasteleria-api/internal/domain/repository"
)

// StockLedger aplica movimientos de stock (compra, consumo, ajuste) de forma
// transaccional con bloqueo de fila (SELECT FOR UPDATE) por ingrediente.
// Cada movimiento exitoso deja exactamente un registro de auditoría.
type StockLedger struct {
	txRunner  TxRunner
	movements repository.StockMovementRepository
}

// NewStockLedger construye el ledger de stock. movements se usa solo para
// lecturas fuera de transacción (historial de auditoría).
func NewStockLedger(txRunner TxRunner, movements repository.StockMovementRepository) *StockLedger {
	return &StockLedger{txRunner: txRunner, movements: movements}
}

// Movements devuelve el historial de auditoría de un ingrediente, más
// reciente primero.
func (l *StockLedger) Movements(ingredientID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return l.movements.ListByIngredient(ingredientID, from, to, limit, offset)
}

// MovementInput entrada para aplicar un movimiento de stock.
// Para purchase/usage, Quantity es la cantidad movida (> 0).
// Para adjustment, Quantity es el nuevo stock absoluto (>= 0); en la
// auditoría se registra el delta con signo, no el valor fijado.
type MovementInput struct {
	IngredientID string
	Type         string
	Quantity     decimal.Decimal
	UnitCost     *decimal.Decimal // solo purchase; actualiza precio vigente
	Reason       string
	Notes        string
	UserID       string
}

// ApplyMovement valida y aplica el movimiento; devuelve el stock resultante.
// Falla con ErrInvalidInput en cantidades no positivas, ErrInsufficientStock
// si un consumo dejaría el stock negativo, y ErrNotFound si el ingrediente
// no existe. La fila del ingrediente se bloquea dentro de la transacción
// para evitar lost updates entre compras/consumos simultáneos.
func (l *StockLedger) ApplyMovement(ctx context.Context, input MovementInput) (decimal.Decimal, error) {
	switch input.Type {
	case entity.MovementTypePurchase, entity.MovementTypeUsage:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return decimal.Zero, domain.ErrInvalidInput
		}
	case entity.MovementTypeAdjustment:
		if input.Quantity.LessThan(decimal.Zero) {
			return decimal.Zero, domain.ErrInvalidInput
		}
	default:
		return decimal.Zero, domain.ErrInvalidInput
	}
	if input.UnitCost != nil && input.UnitCost.LessThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}

	now := time.Now()
	var newStock decimal.Decimal

	err := l.txRunner.Run(ctx, func(
		ingredientRepo repository.IngredientRepository,
		movementRepo repository.StockMovementRepository,
		priceRepo repository.PriceHistoryRepository,
	) error {
		// Bloquea la fila del ingrediente (SELECT FOR UPDATE)
		ingredient, err := ingredientRepo.GetForUpdate(input.IngredientID)
		if err != nil {
			return err
		}
		if ingredient == nil {
			return domain.ErrNotFound
		}

		// Cantidad auditada: delta con signo
		audited := input.Quantity

		switch input.Type {
		case entity.MovementTypePurchase:
			newStock = ingredient.CurrentStock.Add(input.Quantity)
			if input.UnitCost != nil {
				// Compra con costo: nueva entrada en el historial de precios
				// y actualización del precio vigente denormalizado.
				entry := &entity.PriceHistoryEntry{
					ID:           uuid.New().String(),
					IngredientID: ingredient.ID,
					Price:        *input.UnitCost,
					Quantity:     &input.Quantity,
					Notes:        input.Notes,
					CreatedAt:    now,
					CreatedBy:    input.UserID,
				}
				if err := priceRepo.Create(entry); err != nil {
					return err
				}
				if err := ingredientRepo.UpdatePrice(ingredient.ID, *input.UnitCost); err != nil {
					return err
				}
			}

		case entity.MovementTypeUsage:
			if ingredient.CurrentStock.LessThan(input.Quantity) {
				return domain.ErrInsufficientStock
			}
			newStock = ingredient.CurrentStock.Sub(input.Quantity)
			audited = input.Quantity.Neg()

		case entity.MovementTypeAdjustment:
			newStock = input.Quantity
			audited = input.Quantity.Sub(ingredient.CurrentStock)
		}

		if err := ingredientRepo.UpdateStock(ingredient.ID, newStock); err != nil {
			return err
		}

		movement := &entity.StockMovement{
			ID:           uuid.New().String(),
			IngredientID: ingredient.ID,
			Type:         input.Type,
			Quantity:     audited,
			UnitCost:     input.UnitCost,
			Reason:       input.Reason,
			Notes:        input.Notes,
			CreatedAt:    now,
			CreatedBy:    input.UserID,
		}
		return movementRepo.Create(movement)
	})
	if err != nil {
		return decimal.Zero, err
	}
	return newStock, nil
}
