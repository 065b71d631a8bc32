package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pasteleria-api/internal/application/inventory"
	"github.com/jhoicas/Pasteleria-api/internal/domain"
	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
)

func newLedger(ingredients ...*entity.Ingredient) (*inventory.StockLedger, *memTxRunner) {
	tx := &memTxRunner{
		ingredients: newMemIngredientRepo(ingredients...),
		movements:   &memMovementRepo{},
		prices:      &memPriceRepo{},
	}
	return inventory.NewStockLedger(tx, tx.movements), tx
}

// ──────────────────────────────────────────────────────────────────────────────
// Compras
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_CompraIncrementaStock(t *testing.T) {
	ledger, tx := newLedger(stockIngredient("harina", "10", "5"))

	newStock, err := ledger.ApplyMovement(context.Background(), inventory.MovementInput{
		IngredientID: "harina",
		Type:         entity.MovementTypePurchase,
		Quantity:     dec("25"),
		UserID:       "u1",
	})
	require.NoError(t, err)

	assert.True(t, newStock.Equal(dec("35")))
	assert.True(t, tx.ingredients.ingredients["harina"].CurrentStock.Equal(dec("35")))
	require.Len(t, tx.movements.movements, 1, "cada movimiento deja exactamente un registro de auditoría")
	assert.True(t, tx.movements.movements[0].Quantity.Equal(dec("25")))
}

// Compra con costo unitario: además del stock, alimenta el historial de
// precios y actualiza el precio vigente.
func TestApplyMovement_CompraConCostoActualizaPrecio(t *testing.T) {
	ledger, tx := newLedger(stockIngredient("azucar", "0", "2"))

	_, err := ledger.ApplyMovement(context.Background(), inventory.MovementInput{
		IngredientID: "azucar",
		Type:         entity.MovementTypePurchase,
		Quantity:     dec("10"),
		UnitCost:     decPtr("4.75"),
		UserID:       "u1",
	})
	require.NoError(t, err)

	require.Len(t, tx.prices.entries, 1)
	assert.True(t, tx.prices.entries[0].Price.Equal(dec("4.75")))
	assert.True(t, tx.ingredients.ingredients["azucar"].CurrentPrice.Equal(dec("4.75")))
}

func TestApplyMovement_CompraSinCostoNoTocaPrecio(t *testing.T) {
	ledger, tx := newLedger(stockIngredient("azucar", "0", "2"))

	_, err := ledger.ApplyMovement(context.Background(), inventory.MovementInput{
		IngredientID: "azucar",
		Type:         entity.MovementTypePurchase,
		Quantity:     dec("10"),
	})
	require.NoError(t, err)

	assert.Empty(t, tx.prices.entries)
	assert.True(t, tx.ingredients.ingredients["azucar"].CurrentPrice.Equal(dec("10")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Consumos
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_ConsumoDecrementaYAuditaNegativo(t *testing.T) {
	ledger, tx := newLedger(stockIngredient("harina", "10", "5"))

	newStock, err := ledger.ApplyMovement(context.Background(), inventory.MovementInput{
		IngredientID: "harina",
		Type:         entity.MovementTypeUsage,
		Quantity:     dec("4"),
	})
	require.NoError(t, err)

	assert.True(t, newStock.Equal(dec("6")))
	require.Len(t, tx.movements.movements, 1)
	assert.True(t, tx.movements.movements[0].Quantity.Equal(dec("-4")),
		"el consumo se audita como delta negativo")
}

// El stock nunca queda negativo: el consumo que excede el disponible se
// rechaza sin efectos.
func TestApplyMovement_ConsumoInsuficienteRechazadoSinEfectos(t *testing.T) {
	ledger, tx := newLedger(stockIngredient("harina", "3", "5"))

	_, err := ledger.ApplyMovement(context.Background(), inventory.MovementInput{
		IngredientID: "harina",
		Type:         entity.MovementTypeUsage,
		Quantity:     dec("4"),
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, tx.ingredients.ingredients["harina"].CurrentStock.Equal(dec("3")), "el stock no debe cambiar")
	assert.Empty(t, tx.movements.movements, "un movimiento rechazado no deja auditoría")
}

// Consumo del total exacto es válido (deja el stock en cero).
func TestApplyMovement_ConsumoExacto(t *testing.T) {
	ledger, _ := newLedger(stockIngredient("harina", "3", "5"))

	newStock, err := ledger.ApplyMovement(context.Background(), inventory.MovementInput{
		IngredientID: "harina",
		Type:         entity.MovementTypeUsage,
		Quantity:     dec("3"),
	})
	require.NoError(t, err)
	assert.True(t, newStock.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes
// ──────────────────────────────────────────────────────────────────────────────

// El ajuste fija el stock absoluto pero audita el delta con signo.
func TestApplyMovement_AjusteAuditaDelta(t *testing.T) {
	ledger, tx := newLedger(stockIngredient("harina", "10", "5"))

	newStock, err := ledger.ApplyMovement(context.Background(), inventory.MovementInput{
		IngredientID: "harina",
		Type:         entity.MovementTypeAdjustment,
		Quantity:     dec("7.5"),
		Reason:       "inventario físico",
	})
	require.NoError(t, err)

	assert.True(t, newStock.Equal(dec("7.5")))
	require.Len(t, tx.movements.movements, 1)
	assert.True(t, tx.movements.movements[0].Quantity.Equal(dec("-2.5")),
		"el ajuste de 10 a 7.5 se audita como -2.5")
}

func TestApplyMovement_AjusteACero(t *testing.T) {
	ledger, tx := newLedger(stockIngredient("harina", "10", "5"))

	newStock, err := ledger.ApplyMovement(context.Background(), inventory.MovementInput{
		IngredientID: "harina",
		Type:         entity.MovementTypeAdjustment,
		Quantity:     dec("0"),
	})
	require.NoError(t, err)

	assert.True(t, newStock.IsZero())
	assert.True(t, tx.movements.movements[0].Quantity.Equal(dec("-10")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_EntradasInvalidas(t *testing.T) {
	cases := []struct {
		name  string
		input inventory.MovementInput
	}{
		{"tipo desconocido", inventory.MovementInput{IngredientID: "harina", Type: "transfer", Quantity: dec("1")}},
		{"compra con cantidad cero", inventory.MovementInput{IngredientID: "harina", Type: entity.MovementTypePurchase, Quantity: dec("0")}},
		{"compra con cantidad negativa", inventory.MovementInput{IngredientID: "harina", Type: entity.MovementTypePurchase, Quantity: dec("-1")}},
		{"consumo con cantidad cero", inventory.MovementInput{IngredientID: "harina", Type: entity.MovementTypeUsage, Quantity: dec("0")}},
		{"ajuste negativo", inventory.MovementInput{IngredientID: "harina", Type: entity.MovementTypeAdjustment, Quantity: dec("-1")}},
		{"costo unitario negativo", inventory.MovementInput{IngredientID: "harina", Type: entity.MovementTypePurchase, Quantity: dec("1"), UnitCost: decPtr("-1")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ledger, tx := newLedger(stockIngredient("harina", "10", "5"))
			_, err := ledger.ApplyMovement(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, tx.movements.movements)
		})
	}
}

func TestApplyMovement_IngredienteInexistente(t *testing.T) {
	ledger, _ := newLedger()

	_, err := ledger.ApplyMovement(context.Background(), inventory.MovementInput{
		IngredientID: "nada",
		Type:         entity.MovementTypePurchase,
		Quantity:     dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
