package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Pasteleria-api/internal/application/recipes"
	"github.com/jhoicas/Pasteleria-api/internal/domain"
	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/Pasteleria-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

const recipeColumns = `id, name, description, category, difficulty,
	generated_amount, generated_unit, servings, portion_size, preparation_time,
	items, instructions, notes,
	total_cost, cost_per_serving, labor_cost, suggested_price,
	is_active, created_at, updated_at, created_by`

// RecipeRepo implementación de RecipeRepository sobre PostgreSQL (usable con pool o tx).
// Los ítems y pasos se guardan como JSONB: se leen y escriben siempre como un
// todo con la receta, nunca se consultan por separado.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador de recetas. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

func scanRecipe(row pgx.Row) (*entity.Recipe, error) {
	var rec entity.Recipe
	var itemsJSON, stepsJSON []byte
	err := row.Scan(
		&rec.ID, &rec.Name, &rec.Description, &rec.Category, &rec.Difficulty,
		&rec.GeneratedAmount, &rec.GeneratedUnit, &rec.Servings, &rec.PortionSize, &rec.PreparationTime,
		&itemsJSON, &stepsJSON, &rec.Notes,
		&rec.TotalCost, &rec.CostPerServing, &rec.LaborCost, &rec.SuggestedPrice,
		&rec.IsActive, &rec.CreatedAt, &rec.UpdatedAt, &rec.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &rec.Items); err != nil {
			return nil, fmt.Errorf("unmarshal recipe items: %w", err)
		}
	}
	if len(stepsJSON) > 0 {
		if err := json.Unmarshal(stepsJSON, &rec.Instructions); err != nil {
			return nil, fmt.Errorf("unmarshal recipe steps: %w", err)
		}
	}
	return &rec, nil
}

func marshalRecipeParts(rec *entity.Recipe) (items, steps []byte, err error) {
	items, err = json.Marshal(rec.Items)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal recipe items: %w", err)
	}
	steps, err = json.Marshal(rec.Instructions)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal recipe steps: %w", err)
	}
	return items, steps, nil
}

// Create persiste una receta nueva. El índice único sobre normalized_name
// (parcial, solo activas) respalda la unicidad de nombre.
func (r *RecipeRepo) Create(rec *entity.Recipe) error {
	items, steps, err := marshalRecipeParts(rec)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO recipes (` + recipeColumns + `, normalized_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err = r.q.Exec(context.Background(), query,
		rec.ID, rec.Name, rec.Description, rec.Category, rec.Difficulty,
		rec.GeneratedAmount, rec.GeneratedUnit, rec.Servings, rec.PortionSize, rec.PreparationTime,
		items, steps, rec.Notes,
		rec.TotalCost, rec.CostPerServing, rec.LaborCost, rec.SuggestedPrice,
		rec.IsActive, rec.CreatedAt, rec.UpdatedAt, rec.CreatedBy,
		recipes.NormalizeName(rec.Name),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recipe: %w", err)
	}
	return nil
}

// GetByID obtiene una receta por ID; nil si no existe.
func (r *RecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1`
	rec, err := scanRecipe(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return rec, nil
}

// GetByNormalizedName busca una receta activa por nombre normalizado; nil si no existe.
func (r *RecipeRepo) GetByNormalizedName(normalizedName string) (*entity.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE normalized_name = $1 AND is_active`
	rec, err := scanRecipe(r.q.QueryRow(context.Background(), query, normalizedName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe by name: %w", err)
	}
	return rec, nil
}

// Update reescribe la receta completa (ítems y pasos incluidos). Los campos
// de costo derivados se actualizan aparte con UpdateCosts.
func (r *RecipeRepo) Update(rec *entity.Recipe) error {
	items, steps, err := marshalRecipeParts(rec)
	if err != nil {
		return err
	}
	query := `
		UPDATE recipes
		SET name = $2, normalized_name = $3, description = $4, category = $5, difficulty = $6,
			generated_amount = $7, generated_unit = $8, servings = $9, portion_size = $10,
			preparation_time = $11, items = $12, instructions = $13, notes = $14, updated_at = $15
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		rec.ID, rec.Name, recipes.NormalizeName(rec.Name), rec.Description, rec.Category, rec.Difficulty,
		rec.GeneratedAmount, rec.GeneratedUnit, rec.Servings, rec.PortionSize,
		rec.PreparationTime, items, steps, rec.Notes, rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update recipe: %w", err)
	}
	return nil
}

// UpdateCosts actualiza solo el cache de costos derivados.
func (r *RecipeRepo) UpdateCosts(rec *entity.Recipe) error {
	query := `
		UPDATE recipes
		SET total_cost = $2, cost_per_serving = $3, labor_cost = $4, suggested_price = $5, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.TotalCost, rec.CostPerServing, rec.LaborCost, rec.SuggestedPrice,
	)
	if err != nil {
		return fmt.Errorf("update recipe costs: %w", err)
	}
	return nil
}

// List devuelve recetas, opcionalmente por categoría y solo activas.
func (r *RecipeRepo) List(category string, activeOnly bool) ([]*entity.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes
		WHERE ($1 = '' OR category = $1) AND (NOT $2 OR is_active)
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, category, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// Delete hace borrado lógico; las recetas que la referencian como sub-receta
// la verán como no resuelta en el costeo.
func (r *RecipeRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE recipes SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}
