package costing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
)

// Factores a unidad base por familia: gramos para masa, mililitros para
// volumen. Las unidades de conteo (unit, dozen) no aparecen: no son
// convertibles.
var massFactors = map[string]decimal.Decimal{
	entity.UnitGram:     decimal.NewFromInt(1),
	entity.UnitKilogram: decimal.NewFromInt(1000),
	entity.UnitPound:    decimal.NewFromFloat(453.592),
	entity.UnitOunce:    decimal.NewFromFloat(28.3495),
}

var volumeFactors = map[string]decimal.Decimal{
	entity.UnitMilliliter: decimal.NewFromInt(1),
	entity.UnitLiter:      decimal.NewFromInt(1000),
	entity.UnitCup:        decimal.NewFromInt(240), // taza US
	entity.UnitTablespoon: decimal.NewFromInt(15),
	entity.UnitTeaspoon:   decimal.NewFromInt(5),
}

// Convert convierte value de la unidad from a la unidad to dentro de la
// misma familia física. Si las unidades pertenecen a familias distintas o
// alguna no es convertible (conteo), devuelve el valor sin cambios: las
// recetas mezclan legítimamente unidades comparables y no comparables y el
// costeo debe degradar sin abortar. Función pura y total: nunca falla.
func Convert(from, to string, value decimal.Decimal) decimal.Decimal {
	if from == to {
		return value
	}
	if ff, ok := massFactors[from]; ok {
		if tf, ok := massFactors[to]; ok {
			return value.Mul(ff).Div(tf)
		}
		return value
	}
	if ff, ok := volumeFactors[from]; ok {
		if tf, ok := volumeFactors[to]; ok {
			return value.Mul(ff).Div(tf)
		}
		return value
	}
	return value
}

// Convertible indica si ambas unidades pertenecen a la misma familia
// convertible (o son iguales).
func Convertible(from, to string) bool {
	if from == to {
		return true
	}
	if _, ok := massFactors[from]; ok {
		_, ok2 := massFactors[to]
		return ok2
	}
	if _, ok := volumeFactors[from]; ok {
		_, ok2 := volumeFactors[to]
		return ok2
	}
	return false
}
