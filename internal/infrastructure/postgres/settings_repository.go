package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/Pasteleria-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación de SettingsRepository sobre PostgreSQL.
// Hay una sola fila de configuración (id fijo); los márgenes por categoría
// van como JSONB.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador de configuración de costeo.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devuelve la configuración guardada; nil si aún no existe.
func (r *SettingsRepo) Get() (*entity.CostingSettings, error) {
	query := `
		SELECT id, labor_hour_rate, default_margin, margins_by_category, updated_at
		FROM costing_settings LIMIT 1`
	var s entity.CostingSettings
	var marginsJSON []byte
	err := r.q.QueryRow(context.Background(), query).Scan(
		&s.ID, &s.LaborHourRate, &s.DefaultMargin, &marginsJSON, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get costing settings: %w", err)
	}
	if len(marginsJSON) > 0 {
		s.MarginsByCategory = map[string]decimal.Decimal{}
		if err := json.Unmarshal(marginsJSON, &s.MarginsByCategory); err != nil {
			return nil, fmt.Errorf("unmarshal margins: %w", err)
		}
	}
	return &s, nil
}

// Upsert guarda la configuración (inserta la fila única o la reemplaza).
func (r *SettingsRepo) Upsert(settings *entity.CostingSettings) error {
	marginsJSON, err := json.Marshal(settings.MarginsByCategory)
	if err != nil {
		return fmt.Errorf("marshal margins: %w", err)
	}
	query := `
		INSERT INTO costing_settings (id, labor_hour_rate, default_margin, margins_by_category, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			labor_hour_rate = EXCLUDED.labor_hour_rate,
			default_margin = EXCLUDED.default_margin,
			margins_by_category = EXCLUDED.margins_by_category,
			updated_at = EXCLUDED.updated_at`
	_, err = r.q.Exec(context.Background(), query,
		settings.ID, settings.LaborHourRate, settings.DefaultMargin, marginsJSON, settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert costing settings: %w", err)
	}
	return nil
}
