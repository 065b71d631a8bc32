package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pasteleria-api/internal/application/inventory"
	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
)

func newAnalytics(ingredients ...*entity.Ingredient) (*inventory.PriceAnalytics, *memPriceRepo) {
	prices := &memPriceRepo{}
	return inventory.NewPriceAnalytics(prices, newMemIngredientRepo(ingredients...)), prices
}

// ──────────────────────────────────────────────────────────────────────────────
// Clasificación de cambios de precio
// ──────────────────────────────────────────────────────────────────────────────

func TestPriceChange_Clasificacion(t *testing.T) {
	cases := []struct {
		name     string
		current  string
		previous string
		trend    string
	}{
		{"subida clara", "12", "10", "up"},
		{"bajada clara", "8", "10", "down"},
		{"sin cambio", "10", "10", "stable"},
		{"cambio dentro del 1% es estable", "10.05", "10", "stable"},
		{"justo sobre el 1% es subida", "10.2", "10", "up"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			change := inventory.PriceChange(dec(tc.current), dec(tc.previous))
			assert.Equal(t, tc.trend, change.Trend)
		})
	}
}

func TestPriceChange_PrevioCeroNoDivide(t *testing.T) {
	change := inventory.PriceChange(dec("5"), dec("0"))

	assert.True(t, change.Change.Equal(dec("5")))
	assert.True(t, change.Percentage.IsZero(), "sin base no hay porcentaje")
	assert.Equal(t, "stable", change.Trend)
}

func TestPriceChange_PorcentajeCalculado(t *testing.T) {
	change := inventory.PriceChange(dec("12"), dec("10"))

	assert.True(t, change.Change.Equal(dec("2")))
	assert.True(t, change.Percentage.Equal(dec("20")), "de 10 a 12 es +20%%, fue %s", change.Percentage)
}

// ──────────────────────────────────────────────────────────────────────────────
// Promedio y tendencia
// ──────────────────────────────────────────────────────────────────────────────

func TestAveragePrice_PromediaLaVentana(t *testing.T) {
	analytics, prices := newAnalytics()
	now := time.Now()
	prices.entries = append(prices.entries,
		priceEntry("harina", "8", now.Add(-72*time.Hour)),
		priceEntry("harina", "10", now.Add(-48*time.Hour)),
		priceEntry("harina", "12", now.Add(-24*time.Hour)),
		priceEntry("harina", "100", now.AddDate(0, 0, -60)), // fuera de la ventana
	)

	avg, err := analytics.AveragePrice("harina", 30)
	require.NoError(t, err)
	assert.True(t, avg.Equal(dec("10")), "promedio de 8, 10 y 12: %s", avg)
}

func TestAveragePrice_SinEntradasDevuelveCero(t *testing.T) {
	analytics, _ := newAnalytics()

	avg, err := analytics.AveragePrice("harina", 30)
	require.NoError(t, err)
	assert.True(t, avg.IsZero())
}

func TestTrend_SerieAscendenteConCambios(t *testing.T) {
	analytics, prices := newAnalytics()
	now := time.Now()
	prices.entries = append(prices.entries,
		priceEntry("harina", "10", now.Add(-48*time.Hour)),
		priceEntry("harina", "12", now.Add(-24*time.Hour)),
		priceEntry("harina", "9", now.Add(-time.Hour)),
	)

	points, err := analytics.Trend("harina", 30)
	require.NoError(t, err)

	require.Len(t, points, 3)
	assert.True(t, points[0].Date.Before(points[1].Date), "la serie va de más antigua a más reciente")
	assert.True(t, points[0].Price.Equal(dec("10")))
	assert.True(t, points[0].ChangePct.IsZero(), "la primera entrada no tiene contra qué comparar")
	assert.True(t, points[1].ChangePct.Equal(dec("20")))
	assert.True(t, points[2].ChangePct.Equal(dec("-25")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Alertas de precio
// ──────────────────────────────────────────────────────────────────────────────

func TestDetectAlerts_SubidaBrusca(t *testing.T) {
	analytics, prices := newAnalytics()
	now := time.Now()
	prices.entries = append(prices.entries,
		priceEntry("harina", "10", now.Add(-time.Hour)),
		priceEntry("harina", "13", now),
	)

	alerts, err := analytics.DetectAlerts("harina", dec("20"))
	require.NoError(t, err)

	require.Len(t, alerts, 1)
	assert.Equal(t, "increase", alerts[0].Type)
	assert.True(t, alerts[0].Percentage.Equal(dec("30")))
	assert.True(t, alerts[0].Current.Equal(dec("13")))
	assert.True(t, alerts[0].Previous.Equal(dec("10")))
}

func TestDetectAlerts_BajadaBrusca(t *testing.T) {
	analytics, prices := newAnalytics()
	now := time.Now()
	prices.entries = append(prices.entries,
		priceEntry("harina", "10", now.Add(-time.Hour)),
		priceEntry("harina", "6", now),
	)

	alerts, err := analytics.DetectAlerts("harina", dec("20"))
	require.NoError(t, err)

	require.Len(t, alerts, 1)
	assert.Equal(t, "decrease", alerts[0].Type)
}

func TestDetectAlerts_DentroDelUmbralNoAlerta(t *testing.T) {
	analytics, prices := newAnalytics()
	now := time.Now()
	prices.entries = append(prices.entries,
		priceEntry("harina", "10", now.Add(-time.Hour)),
		priceEntry("harina", "11", now),
	)

	alerts, err := analytics.DetectAlerts("harina", dec("20"))
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestDetectAlerts_HistorialInsuficiente(t *testing.T) {
	analytics, prices := newAnalytics()
	prices.entries = append(prices.entries, priceEntry("harina", "10", time.Now()))

	alerts, err := analytics.DetectAlerts("harina", dec("20"))
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock bajo
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStockList_OrdenaPorUrgencia(t *testing.T) {
	analytics, _ := newAnalytics(
		stockIngredient("bajo", "8", "10"),     // low
		stockIngredient("agotado", "0", "10"),  // out
		stockIngredient("critico", "4", "10"),  // critical
		stockIngredient("sobrado", "50", "10"), // no aparece
	)

	items, err := analytics.LowStockList()
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, "agotado", items[0].IngredientID)
	assert.Equal(t, "out", items[0].Status)
	assert.Equal(t, "critico", items[1].IngredientID)
	assert.Equal(t, "critical", items[1].Status)
	assert.Equal(t, "bajo", items[2].IngredientID)
	assert.Equal(t, "low", items[2].Status)
}
