package repository

import "github.com/jhoicas/Pasteleria-api/internal/domain/entity"

// RecipeRepository define el puerto de persistencia para Recipe.
type RecipeRepository interface {
	Create(recipe *entity.Recipe) error
	GetByID(id string) (*entity.Recipe, error)
	// GetByNormalizedName busca por nombre normalizado (sin acentos, lower)
	// entre recetas activas; nil si no existe.
	GetByNormalizedName(normalizedName string) (*entity.Recipe, error)
	Update(recipe *entity.Recipe) error
	// UpdateCosts actualiza solo los campos derivados de costo.
	UpdateCosts(recipe *entity.Recipe) error
	List(category string, activeOnly bool) ([]*entity.Recipe, error)
	// Delete es borrado lógico (is_active = false).
	Delete(id string) error
}
