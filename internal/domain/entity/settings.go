package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostingSettings son los parámetros de costeo de recetas.
// Los márgenes se guardan como fracción: 1.5 = 150% sobre el costo total.
type CostingSettings struct {
	ID                string
	LaborHourRate     decimal.Decimal // tarifa de mano de obra por hora
	DefaultMargin     decimal.Decimal // fracción, ej. 1.5
	MarginsByCategory map[string]decimal.Decimal
	UpdatedAt         time.Time
}

// MarginFor devuelve el margen de la categoría, o el margen por defecto.
func (s *CostingSettings) MarginFor(category string) decimal.Decimal {
	if m, ok := s.MarginsByCategory[category]; ok {
		return m
	}
	return s.DefaultMargin
}

// DefaultCostingSettings valores usados cuando no hay configuración guardada.
func DefaultCostingSettings() *CostingSettings {
	return &CostingSettings{
		ID:            "default",
		LaborHourRate: decimal.NewFromFloat(25.0),
		DefaultMargin: decimal.NewFromFloat(1.5),
		MarginsByCategory: map[string]decimal.Decimal{
			RecipeCategoryCakes:    decimal.NewFromFloat(1.5),
			RecipeCategoryCupcakes: decimal.NewFromFloat(1.8),
			RecipeCategoryCookies:  decimal.NewFromFloat(2.0),
			RecipeCategoryBreads:   decimal.NewFromFloat(1.2),
			RecipeCategoryPastries: decimal.NewFromFloat(1.6),
			RecipeCategoryIcings:   decimal.NewFromFloat(3.0),
			RecipeCategoryFillings: decimal.NewFromFloat(2.5),
			RecipeCategoryOther:    decimal.NewFromFloat(1.5),
		},
		UpdatedAt: time.Now(),
	}
}
