package repository

import "github.com/jhoicas/Pasteleria-api/internal/domain/entity"

// SettingsRepository define el puerto para la configuración de costeo.
// Get devuelve nil si no hay configuración guardada; el caller usa los
// valores por defecto.
type SettingsRepository interface {
	Get() (*entity.CostingSettings, error)
	Upsert(settings *entity.CostingSettings) error
}
