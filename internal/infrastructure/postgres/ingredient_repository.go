package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pasteleria-api/internal/domain"
	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/Pasteleria-api/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

const ingredientColumns = `id, name, description, category, unit, measurement_value, brand,
	current_price, current_stock, min_stock, supplier_id, allergens, is_active,
	created_at, updated_at, created_by`

// IngredientRepo implementación de IngredientRepository sobre PostgreSQL (usable con pool o tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador de ingredientes. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

func scanIngredient(row pgx.Row) (*entity.Ingredient, error) {
	var i entity.Ingredient
	err := row.Scan(
		&i.ID, &i.Name, &i.Description, &i.Category, &i.Unit, &i.MeasurementValue, &i.Brand,
		&i.CurrentPrice, &i.CurrentStock, &i.MinStock, &i.SupplierID, &i.Allergens, &i.IsActive,
		&i.CreatedAt, &i.UpdatedAt, &i.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create persiste un ingrediente nuevo.
func (r *IngredientRepo) Create(ingredient *entity.Ingredient) error {
	query := `
		INSERT INTO ingredients (` + ingredientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		ingredient.ID, ingredient.Name, ingredient.Description, ingredient.Category,
		ingredient.Unit, ingredient.MeasurementValue, ingredient.Brand,
		ingredient.CurrentPrice, ingredient.CurrentStock, ingredient.MinStock,
		ingredient.SupplierID, ingredient.Allergens, ingredient.IsActive,
		ingredient.CreatedAt, ingredient.UpdatedAt, ingredient.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// GetByID obtiene un ingrediente por ID; nil si no existe.
func (r *IngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1`
	i, err := scanIngredient(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return i, nil
}

// GetForUpdate obtiene el ingrediente y bloquea su fila (SELECT FOR UPDATE)
// para serializar el read-modify-write de stock.
func (r *IngredientRepo) GetForUpdate(id string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1 FOR UPDATE`
	i, err := scanIngredient(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient for update: %w", err)
	}
	return i, nil
}

// Update actualiza los campos descriptivos. No toca current_price ni
// current_stock: esos cambian solo vía UpdatePrice/UpdateStock.
func (r *IngredientRepo) Update(ingredient *entity.Ingredient) error {
	query := `
		UPDATE ingredients
		SET name = $2, description = $3, category = $4, unit = $5, measurement_value = $6,
			brand = $7, min_stock = $8, supplier_id = $9, allergens = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		ingredient.ID, ingredient.Name, ingredient.Description, ingredient.Category,
		ingredient.Unit, ingredient.MeasurementValue, ingredient.Brand, ingredient.MinStock,
		ingredient.SupplierID, ingredient.Allergens, ingredient.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update ingredient: %w", err)
	}
	return nil
}

// UpdatePrice actualiza solo el precio vigente (lo llama el ledger de precios).
func (r *IngredientRepo) UpdatePrice(id string, price decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE ingredients SET current_price = $2, updated_at = now() WHERE id = $1`,
		id, price,
	)
	if err != nil {
		return fmt.Errorf("update ingredient price: %w", err)
	}
	return nil
}

// UpdateStock actualiza solo el contador de stock (lo llama el ledger de stock).
func (r *IngredientRepo) UpdateStock(id string, stock decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE ingredients SET current_stock = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update ingredient stock: %w", err)
	}
	return nil
}

// List devuelve ingredientes, opcionalmente filtrados por categoría y actividad.
func (r *IngredientRepo) List(category string, activeOnly bool) ([]*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients
		WHERE ($1 = '' OR category = $1) AND (NOT $2 OR is_active)
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, category, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()
	return collectIngredients(rows)
}

// ListBelowMinStock devuelve ingredientes activos con stock en o bajo el mínimo.
func (r *IngredientRepo) ListBelowMinStock() ([]*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients
		WHERE is_active AND current_stock <= min_stock
		ORDER BY current_stock / NULLIF(min_stock, 0) NULLS FIRST, name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list ingredients below min stock: %w", err)
	}
	defer rows.Close()
	return collectIngredients(rows)
}

func collectIngredients(rows pgx.Rows) ([]*entity.Ingredient, error) {
	var list []*entity.Ingredient
	for rows.Next() {
		i, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// Delete hace borrado lógico: las recetas y el historial siguen apuntando al ID.
func (r *IngredientRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE ingredients SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	return nil
}
