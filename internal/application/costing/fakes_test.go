package costing_test

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/Pasteleria-api/internal/domain/repository"
	"github.com/jhoicas/Pasteleria-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los tests de costeo
// ──────────────────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// fakeRecipeRepo repositorio de recetas en memoria; failIDs simula fallos de
// lectura por ID.
type fakeRecipeRepo struct {
	recipes map[string]*entity.Recipe
	failIDs map[string]bool
}

var _ repository.RecipeRepository = (*fakeRecipeRepo)(nil)

func newFakeRecipeRepo(recipes ...*entity.Recipe) *fakeRecipeRepo {
	repo := &fakeRecipeRepo{recipes: map[string]*entity.Recipe{}, failIDs: map[string]bool{}}
	for _, r := range recipes {
		repo.recipes[r.ID] = r
	}
	return repo
}

func (f *fakeRecipeRepo) Create(r *entity.Recipe) error { f.recipes[r.ID] = r; return nil }

func (f *fakeRecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	if f.failIDs[id] {
		return nil, errors.New("fallo de lectura simulado")
	}
	return f.recipes[id], nil
}

func (f *fakeRecipeRepo) GetByNormalizedName(name string) (*entity.Recipe, error) {
	for _, r := range f.recipes {
		if r.IsActive && r.Name == name {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRecipeRepo) Update(r *entity.Recipe) error      { f.recipes[r.ID] = r; return nil }
func (f *fakeRecipeRepo) UpdateCosts(r *entity.Recipe) error { f.recipes[r.ID] = r; return nil }

func (f *fakeRecipeRepo) List(category string, activeOnly bool) ([]*entity.Recipe, error) {
	var out []*entity.Recipe
	for _, r := range f.recipes {
		if (category == "" || r.Category == category) && (!activeOnly || r.IsActive) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepo) Delete(id string) error {
	if r, ok := f.recipes[id]; ok {
		r.IsActive = false
	}
	return nil
}

// fakeIngredientRepo repositorio de ingredientes en memoria (solo lectura
// para el costeo).
type fakeIngredientRepo struct {
	ingredients map[string]*entity.Ingredient
}

var _ repository.IngredientRepository = (*fakeIngredientRepo)(nil)

func newFakeIngredientRepo(ingredients ...*entity.Ingredient) *fakeIngredientRepo {
	repo := &fakeIngredientRepo{ingredients: map[string]*entity.Ingredient{}}
	for _, i := range ingredients {
		repo.ingredients[i.ID] = i
	}
	return repo
}

func (f *fakeIngredientRepo) Create(i *entity.Ingredient) error { f.ingredients[i.ID] = i; return nil }
func (f *fakeIngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	return f.ingredients[id], nil
}
func (f *fakeIngredientRepo) GetForUpdate(id string) (*entity.Ingredient, error) {
	return f.ingredients[id], nil
}
func (f *fakeIngredientRepo) Update(i *entity.Ingredient) error { f.ingredients[i.ID] = i; return nil }
func (f *fakeIngredientRepo) UpdatePrice(id string, price decimal.Decimal) error {
	if i, ok := f.ingredients[id]; ok {
		i.CurrentPrice = price
	}
	return nil
}
func (f *fakeIngredientRepo) UpdateStock(id string, stock decimal.Decimal) error {
	if i, ok := f.ingredients[id]; ok {
		i.CurrentStock = stock
	}
	return nil
}
func (f *fakeIngredientRepo) List(category string, activeOnly bool) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	for _, i := range f.ingredients {
		if (category == "" || i.Category == category) && (!activeOnly || i.IsActive) {
			out = append(out, i)
		}
	}
	return out, nil
}
func (f *fakeIngredientRepo) ListBelowMinStock() ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	for _, i := range f.ingredients {
		if i.IsActive && i.CurrentStock.LessThanOrEqual(i.MinStock) {
			out = append(out, i)
		}
	}
	return out, nil
}
func (f *fakeIngredientRepo) Delete(id string) error {
	if i, ok := f.ingredients[id]; ok {
		i.IsActive = false
	}
	return nil
}

// fakeSettingsRepo sin configuración guardada por defecto (Get → nil).
type fakeSettingsRepo struct {
	stored *entity.CostingSettings
	err    error
}

var _ repository.SettingsRepository = (*fakeSettingsRepo)(nil)

func (f *fakeSettingsRepo) Get() (*entity.CostingSettings, error) { return f.stored, f.err }
func (f *fakeSettingsRepo) Upsert(s *entity.CostingSettings) error {
	f.stored = s
	return nil
}

// fakePriceSource historial de precios en memoria; sin entrada devuelve nil
// (el costeo cae al precio denormalizado del ingrediente).
type fakePriceSource struct {
	latest map[string]decimal.Decimal
}

func (f *fakePriceSource) LatestPrice(ingredientID string) (*decimal.Decimal, error) {
	if f.latest == nil {
		return nil, nil
	}
	if p, ok := f.latest[ingredientID]; ok {
		return &p, nil
	}
	return nil, nil
}

// Constructores de entidades de prueba.

func testIngredient(id, name, unit string, price string) *entity.Ingredient {
	return &entity.Ingredient{
		ID:               id,
		Name:             name,
		Unit:             unit,
		MeasurementValue: decimal.NewFromInt(1),
		CurrentPrice:     dec(price),
		IsActive:         true,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
}

func testRecipe(id, name string, servings int, prepMinutes int, items ...entity.RecipeItem) *entity.Recipe {
	return &entity.Recipe{
		ID:              id,
		Name:            name,
		Category:        entity.RecipeCategoryCakes,
		Difficulty:      entity.DifficultyEasy,
		GeneratedAmount: decimal.NewFromInt(1000),
		GeneratedUnit:   entity.UnitGram,
		Servings:        servings,
		PreparationTime: prepMinutes,
		Items:           items,
		IsActive:        true,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

func ingredientItem(id, ingredientID, unit, qty string) entity.RecipeItem {
	return entity.RecipeItem{
		ID:           id,
		Type:         entity.ItemTypeIngredient,
		IngredientID: ingredientID,
		Quantity:     dec(qty),
		Unit:         unit,
	}
}

func subRecipeItem(id, subRecipeID, portions string) entity.RecipeItem {
	return entity.RecipeItem{
		ID:          id,
		Type:        entity.ItemTypeSubRecipe,
		SubRecipeID: subRecipeID,
		Portions:    dec(portions),
	}
}
