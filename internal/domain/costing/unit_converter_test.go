package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Pasteleria-api/internal/domain/costing"
	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Conversión dentro de la misma familia
// ──────────────────────────────────────────────────────────────────────────────

func TestConvert_GramosAKilogramos(t *testing.T) {
	// 500 g de harina = 0.5 kg
	got := costing.Convert(entity.UnitGram, entity.UnitKilogram, dec("500"))
	assert.True(t, got.Equal(dec("0.5")), "500 g deben ser 0.5 kg, fue %s", got)
}

func TestConvert_KilogramosAGramos(t *testing.T) {
	got := costing.Convert(entity.UnitKilogram, entity.UnitGram, dec("2"))
	assert.True(t, got.Equal(dec("2000")))
}

func TestConvert_LibrasAGramos(t *testing.T) {
	got := costing.Convert(entity.UnitPound, entity.UnitGram, dec("1"))
	assert.True(t, got.Equal(dec("453.592")))
}

func TestConvert_TazasAMililitros(t *testing.T) {
	// Una taza estándar de repostería son 240 ml
	got := costing.Convert(entity.UnitCup, entity.UnitMilliliter, dec("1"))
	assert.True(t, got.Equal(dec("240")))
}

func TestConvert_CucharadasACucharaditas(t *testing.T) {
	// 1 tbsp = 15 ml, 1 tsp = 5 ml
	got := costing.Convert(entity.UnitTablespoon, entity.UnitTeaspoon, dec("2"))
	assert.True(t, got.Equal(dec("6")))
}

func TestConvert_IdaYVueltaNoPierdeValor(t *testing.T) {
	original := dec("750")
	kg := costing.Convert(entity.UnitGram, entity.UnitKilogram, original)
	back := costing.Convert(entity.UnitKilogram, entity.UnitGram, kg)
	assert.True(t, back.Equal(original), "g→kg→g debe devolver el valor original")
}

// ──────────────────────────────────────────────────────────────────────────────
// Casos sin conversión posible
// ──────────────────────────────────────────────────────────────────────────────

func TestConvert_FamiliasDistintasDevuelveSinCambio(t *testing.T) {
	// Masa a volumen requeriría densidad; la cantidad queda tal cual.
	got := costing.Convert(entity.UnitGram, entity.UnitMilliliter, dec("100"))
	assert.True(t, got.Equal(dec("100")))
}

func TestConvert_UnidadesDeConteoDevuelveSinCambio(t *testing.T) {
	got := costing.Convert(entity.UnitUnit, entity.UnitDozen, dec("12"))
	assert.True(t, got.Equal(dec("12")))
}

func TestConvert_MismaUnidad(t *testing.T) {
	got := costing.Convert(entity.UnitGram, entity.UnitGram, dec("42"))
	assert.True(t, got.Equal(dec("42")))
}

func TestConvertible(t *testing.T) {
	assert.True(t, costing.Convertible(entity.UnitGram, entity.UnitKilogram))
	assert.True(t, costing.Convertible(entity.UnitLiter, entity.UnitTeaspoon))
	assert.False(t, costing.Convertible(entity.UnitGram, entity.UnitLiter))
	assert.False(t, costing.Convertible(entity.UnitUnit, entity.UnitDozen))
}
