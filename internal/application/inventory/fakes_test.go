package inventory_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pasteleria-api/internal/application/inventory"
	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/Pasteleria-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: repos + TxRunner que ejecuta el callback directamente
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type memIngredientRepo struct {
	ingredients map[string]*entity.Ingredient
}

var _ repository.IngredientRepository = (*memIngredientRepo)(nil)

func newMemIngredientRepo(ingredients ...*entity.Ingredient) *memIngredientRepo {
	repo := &memIngredientRepo{ingredients: map[string]*entity.Ingredient{}}
	for _, i := range ingredients {
		repo.ingredients[i.ID] = i
	}
	return repo
}

func (f *memIngredientRepo) Create(i *entity.Ingredient) error { f.ingredients[i.ID] = i; return nil }
func (f *memIngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	return f.ingredients[id], nil
}
func (f *memIngredientRepo) GetForUpdate(id string) (*entity.Ingredient, error) {
	return f.ingredients[id], nil
}
func (f *memIngredientRepo) Update(i *entity.Ingredient) error { f.ingredients[i.ID] = i; return nil }
func (f *memIngredientRepo) UpdatePrice(id string, price decimal.Decimal) error {
	if i, ok := f.ingredients[id]; ok {
		i.CurrentPrice = price
	}
	return nil
}
func (f *memIngredientRepo) UpdateStock(id string, stock decimal.Decimal) error {
	if i, ok := f.ingredients[id]; ok {
		i.CurrentStock = stock
	}
	return nil
}
func (f *memIngredientRepo) List(category string, activeOnly bool) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	for _, i := range f.ingredients {
		if (category == "" || i.Category == category) && (!activeOnly || i.IsActive) {
			out = append(out, i)
		}
	}
	return out, nil
}
func (f *memIngredientRepo) ListBelowMinStock() ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	for _, i := range f.ingredients {
		if i.IsActive && i.CurrentStock.LessThanOrEqual(i.MinStock) {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}
func (f *memIngredientRepo) Delete(id string) error {
	if i, ok := f.ingredients[id]; ok {
		i.IsActive = false
	}
	return nil
}

type memMovementRepo struct {
	movements []*entity.StockMovement
}

var _ repository.StockMovementRepository = (*memMovementRepo)(nil)

func (f *memMovementRepo) Create(m *entity.StockMovement) error {
	f.movements = append(f.movements, m)
	return nil
}

func (f *memMovementRepo) ListByIngredient(ingredientID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.movements {
		if m.IngredientID == ingredientID {
			out = append(out, m)
		}
	}
	return out, nil
}

type memPriceRepo struct {
	entries []*entity.PriceHistoryEntry
}

var _ repository.PriceHistoryRepository = (*memPriceRepo)(nil)

func (f *memPriceRepo) Create(e *entity.PriceHistoryEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

// más recientes primero, como el repositorio real
func (f *memPriceRepo) sorted() []*entity.PriceHistoryEntry {
	out := make([]*entity.PriceHistoryEntry, len(f.entries))
	copy(out, f.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *memPriceRepo) GetLatest(ingredientID string) (*entity.PriceHistoryEntry, error) {
	for _, e := range f.sorted() {
		if e.IngredientID == ingredientID {
			return e, nil
		}
	}
	return nil, nil
}

func (f *memPriceRepo) ListByIngredient(ingredientID string, from, to *time.Time, limit int) ([]*entity.PriceHistoryEntry, error) {
	var out []*entity.PriceHistoryEntry
	for _, e := range f.sorted() {
		if e.IngredientID != ingredientID {
			continue
		}
		if from != nil && e.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && e.CreatedAt.After(*to) {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// memTxRunner ejecuta el callback directamente sobre los repos en memoria;
// no hay rollback: los tests verifican que los use cases fallen ANTES de
// escribir cuando corresponde.
type memTxRunner struct {
	ingredients *memIngredientRepo
	movements   *memMovementRepo
	prices      *memPriceRepo
}

var _ inventory.TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) Run(ctx context.Context, fn func(
	ingredientRepo repository.IngredientRepository,
	movementRepo repository.StockMovementRepository,
	priceRepo repository.PriceHistoryRepository,
) error) error {
	return fn(r.ingredients, r.movements, r.prices)
}

func stockIngredient(id string, stock, minStock string) *entity.Ingredient {
	return &entity.Ingredient{
		ID:               id,
		Name:             "Ingrediente " + id,
		Unit:             entity.UnitKilogram,
		MeasurementValue: decimal.NewFromInt(1),
		CurrentPrice:     dec("10"),
		CurrentStock:     dec(stock),
		MinStock:         dec(minStock),
		IsActive:         true,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
}
