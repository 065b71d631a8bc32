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

// PriceLedger resuelve el precio vigente de un ingrediente desde el
// historial de precios y registra cambios manuales de precio. El historial
// es inmutable: solo se agregan entradas, nunca se mutan ni borran.
type PriceLedger struct {
	historyRepo repository.PriceHistoryRepository
	txRunner    TxRunner
}

// NewPriceLedger construye el ledger de precios.
func NewPriceLedger(historyRepo repository.PriceHistoryRepository, txRunner TxRunner) *PriceLedger {
	return &PriceLedger{historyRepo: historyRepo, txRunner: txRunner}
}

// LatestPrice devuelve el precio más reciente del historial, o nil si el
// ingrediente no tiene historial (el caller hace fallback al precio
// denormalizado del ingrediente).
func (l *PriceLedger) LatestPrice(ingredientID string) (*decimal.Decimal, error) {
	entry, err := l.historyRepo.GetLatest(ingredientID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	price := entry.Price
	return &price, nil
}

// RecordPriceChange agrega una entrada inmutable al historial y actualiza el
// precio vigente denormalizado del ingrediente, en una sola transacción.
func (l *PriceLedger) RecordPriceChange(ctx context.Context, ingredientID string, newPrice decimal.Decimal, supplierID, notes, createdBy string) (*entity.PriceHistoryEntry, error) {
	if newPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	entry := &entity.PriceHistoryEntry{
		ID:           uuid.New().String(),
		IngredientID: ingredientID,
		Price:        newPrice,
		SupplierID:   supplierID,
		Notes:        notes,
		CreatedAt:    time.Now(),
		CreatedBy:    createdBy,
	}

	err := l.txRunner.Run(ctx, func(
		ingredientRepo repository.IngredientRepository,
		_ repository.StockMovementRepository,
		priceRepo repository.PriceHistoryRepository,
	) error {
		ingredient, err := ingredientRepo.GetForUpdate(ingredientID)
		if err != nil {
			return err
		}
		if ingredient == nil {
			return domain.ErrNotFound
		}
		if err := priceRepo.Create(entry); err != nil {
			return err
		}
		return ingredientRepo.UpdatePrice(ingredientID, newPrice)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// History devuelve las entradas del ingrediente, más recientes primero.
func (l *PriceLedger) History(ingredientID string, from, to *time.Time, limit int) ([]*entity.PriceHistoryEntry, error) {
	return l.historyRepo.ListByIngredient(ingredientID, from, to, limit)
}
