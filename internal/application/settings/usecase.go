// Package settings gestiona los parámetros de costeo (tarifa de mano de obra
// y márgenes por categoría). Hay una sola configuración por instalación.
package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pasteleria-api/internal/domain"
	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/Pasteleria-api/internal/domain/repository"
)

// UseCase lee y guarda la configuración de costeo.
type UseCase struct {
	repo     repository.SettingsRepository
	fallback *entity.CostingSettings
}

// NewUseCase construye el caso de uso de configuración. fallback se devuelve
// cuando aún no hay configuración guardada; nil usa los defaults de dominio.
func NewUseCase(repo repository.SettingsRepository, fallback *entity.CostingSettings) *UseCase {
	if fallback == nil {
		fallback = entity.DefaultCostingSettings()
	}
	return &UseCase{repo: repo, fallback: fallback}
}

// Get devuelve la configuración vigente; si no hay guardada, el fallback.
func (uc *UseCase) Get(ctx context.Context) (*entity.CostingSettings, error) {
	stored, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return uc.fallback, nil
	}
	return stored, nil
}

// UpdateInput entrada para guardar la configuración. Márgenes como fracción
// (1.5 = 150%).
type UpdateInput struct {
	LaborHourRate     decimal.Decimal
	DefaultMargin     decimal.Decimal
	MarginsByCategory map[string]decimal.Decimal
}

// Update valida y guarda la configuración; devuelve la versión guardada.
func (uc *UseCase) Update(ctx context.Context, in UpdateInput) (*entity.CostingSettings, error) {
	if in.LaborHourRate.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("tarifa de mano de obra no puede ser negativa: %w", domain.ErrInvalidInput)
	}
	if in.DefaultMargin.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("margen por defecto no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	for category, margin := range in.MarginsByCategory {
		if margin.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("margen de %q no puede ser negativo: %w", category, domain.ErrInvalidInput)
		}
	}

	settings := &entity.CostingSettings{
		ID:                "default",
		LaborHourRate:     in.LaborHourRate,
		DefaultMargin:     in.DefaultMargin,
		MarginsByCategory: in.MarginsByCategory,
		UpdatedAt:         time.Now(),
	}
	if err := uc.repo.Upsert(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
