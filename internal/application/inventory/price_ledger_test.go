package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pasteleria-api/internal/application/inventory"
	"github.com/jhoicas/Pasteleria-api/internal/domain"
	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
)

func newPriceLedger(ingredients ...*entity.Ingredient) (*inventory.PriceLedger, *memTxRunner) {
	tx := &memTxRunner{
		ingredients: newMemIngredientRepo(ingredients...),
		movements:   &memMovementRepo{},
		prices:      &memPriceRepo{},
	}
	return inventory.NewPriceLedger(tx.prices, tx), tx
}

func priceEntry(ingredientID, price string, at time.Time) *entity.PriceHistoryEntry {
	return &entity.PriceHistoryEntry{
		ID:           uuid.New().String(),
		IngredientID: ingredientID,
		Price:        dec(price),
		CreatedAt:    at,
	}
}

func TestLatestPrice_SinHistorialDevuelveNil(t *testing.T) {
	ledger, _ := newPriceLedger(stockIngredient("harina", "10", "5"))

	price, err := ledger.LatestPrice("harina")
	require.NoError(t, err)
	assert.Nil(t, price, "sin historial el caller debe caer al precio denormalizado")
}

func TestLatestPrice_DevuelveLaEntradaMasReciente(t *testing.T) {
	ledger, tx := newPriceLedger(stockIngredient("harina", "10", "5"))
	now := time.Now()
	tx.prices.entries = append(tx.prices.entries,
		priceEntry("harina", "8.00", now.Add(-48*time.Hour)),
		priceEntry("harina", "9.25", now.Add(-time.Hour)),
		priceEntry("otro", "99", now),
	)

	price, err := ledger.LatestPrice("harina")
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.True(t, price.Equal(dec("9.25")))
}

func TestRecordPriceChange_AgregaEntradaYActualizaVigente(t *testing.T) {
	ledger, tx := newPriceLedger(stockIngredient("harina", "10", "5"))

	entry, err := ledger.RecordPriceChange(context.Background(), "harina", dec("11.40"), "prov-1", "nueva lista", "u1")
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.True(t, entry.Price.Equal(dec("11.40")))
	assert.Equal(t, "prov-1", entry.SupplierID)
	require.Len(t, tx.prices.entries, 1)
	assert.True(t, tx.ingredients.ingredients["harina"].CurrentPrice.Equal(dec("11.40")),
		"el precio denormalizado debe reflejar la última entrada")
}

func TestRecordPriceChange_PrecioNegativoRechazado(t *testing.T) {
	ledger, tx := newPriceLedger(stockIngredient("harina", "10", "5"))

	_, err := ledger.RecordPriceChange(context.Background(), "harina", dec("-1"), "", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, tx.prices.entries)
}

func TestRecordPriceChange_IngredienteInexistente(t *testing.T) {
	ledger, _ := newPriceLedger()

	_, err := ledger.RecordPriceChange(context.Background(), "nada", dec("5"), "", "", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Precio cero es válido: un insumo puede ser regalado o promocional.
func TestRecordPriceChange_PrecioCeroPermitido(t *testing.T) {
	ledger, tx := newPriceLedger(stockIngredient("harina", "10", "5"))

	_, err := ledger.RecordPriceChange(context.Background(), "harina", dec("0"), "", "", "")
	require.NoError(t, err)
	assert.True(t, tx.ingredients.ingredients["harina"].CurrentPrice.IsZero())
}

func TestHistory_FiltraPorIngrediente(t *testing.T) {
	ledger, tx := newPriceLedger(stockIngredient("harina", "10", "5"))
	now := time.Now()
	tx.prices.entries = append(tx.prices.entries,
		priceEntry("harina", "8.00", now.Add(-2*time.Hour)),
		priceEntry("harina", "9.00", now.Add(-time.Hour)),
		priceEntry("otro", "1.00", now),
	)

	entries, err := ledger.History("harina", nil, nil, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Price.Equal(dec("9.00")), "más recientes primero")
}
