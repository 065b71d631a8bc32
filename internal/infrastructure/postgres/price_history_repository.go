package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/Pasteleria-api/internal/domain/repository"
)

var _ repository.PriceHistoryRepository = (*PriceHistoryRepo)(nil)

// PriceHistoryRepo implementación de PriceHistoryRepository sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only: solo INSERT y SELECT.
type PriceHistoryRepo struct {
	q Querier
}

// NewPriceHistoryRepository construye el adaptador del historial de precios. Pasar pool o tx (Querier).
func NewPriceHistoryRepository(q Querier) *PriceHistoryRepo {
	return &PriceHistoryRepo{q: q}
}

// Create inserta una entrada de historial.
func (r *PriceHistoryRepo) Create(entry *entity.PriceHistoryEntry) error {
	query := `
		INSERT INTO price_history (id, ingredient_id, price, supplier_id, quantity, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.IngredientID, entry.Price, entry.SupplierID,
		entry.Quantity, entry.Notes, entry.CreatedAt, entry.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert price history: %w", err)
	}
	return nil
}

// GetLatest devuelve la entrada más reciente del ingrediente; nil si no hay historial.
func (r *PriceHistoryRepo) GetLatest(ingredientID string) (*entity.PriceHistoryEntry, error) {
	query := `
		SELECT id, ingredient_id, price, supplier_id, quantity, notes, created_at, created_by
		FROM price_history WHERE ingredient_id = $1
		ORDER BY created_at DESC LIMIT 1`
	var e entity.PriceHistoryEntry
	err := r.q.QueryRow(context.Background(), query, ingredientID).Scan(
		&e.ID, &e.IngredientID, &e.Price, &e.SupplierID, &e.Quantity, &e.Notes, &e.CreatedAt, &e.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest price: %w", err)
	}
	return &e, nil
}

// ListByIngredient devuelve entradas ordenadas por fecha descendente, con
// rango de fechas opcional.
func (r *PriceHistoryRepo) ListByIngredient(ingredientID string, from, to *time.Time, limit int) ([]*entity.PriceHistoryEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, ingredient_id, price, supplier_id, quantity, notes, created_at, created_by
		FROM price_history
		WHERE ingredient_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC LIMIT $4`
	rows, err := r.q.Query(context.Background(), query, ingredientID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceHistoryEntry
	for rows.Next() {
		var e entity.PriceHistoryEntry
		if err := rows.Scan(&e.ID, &e.IngredientID, &e.Price, &e.SupplierID, &e.Quantity,
			&e.Notes, &e.CreatedAt, &e.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan price history: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
