package recipes_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pasteleria-api/internal/application/costing"
	"github.com/jhoicas/Pasteleria-api/internal/application/recipes"
	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/Pasteleria-api/internal/domain/repository"
	"github.com/jhoicas/Pasteleria-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los tests del ciclo de vida de recetas
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

type memRecipeRepo struct {
	recipes map[string]*entity.Recipe
}

var _ repository.RecipeRepository = (*memRecipeRepo)(nil)

func newMemRecipeRepo(rs ...*entity.Recipe) *memRecipeRepo {
	repo := &memRecipeRepo{recipes: map[string]*entity.Recipe{}}
	for _, r := range rs {
		repo.recipes[r.ID] = r
	}
	return repo
}

func (f *memRecipeRepo) Create(r *entity.Recipe) error { f.recipes[r.ID] = r; return nil }
func (f *memRecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	return f.recipes[id], nil
}

// misma semántica que el índice único: solo activas, nombre normalizado
func (f *memRecipeRepo) GetByNormalizedName(normalized string) (*entity.Recipe, error) {
	for _, r := range f.recipes {
		if r.IsActive && recipes.NormalizeName(r.Name) == normalized {
			return r, nil
		}
	}
	return nil, nil
}

func (f *memRecipeRepo) Update(r *entity.Recipe) error      { f.recipes[r.ID] = r; return nil }
func (f *memRecipeRepo) UpdateCosts(r *entity.Recipe) error { f.recipes[r.ID] = r; return nil }

func (f *memRecipeRepo) List(category string, activeOnly bool) ([]*entity.Recipe, error) {
	var out []*entity.Recipe
	for _, r := range f.recipes {
		if (category == "" || r.Category == category) && (!activeOnly || r.IsActive) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *memRecipeRepo) Delete(id string) error {
	if r, ok := f.recipes[id]; ok {
		r.IsActive = false
	}
	return nil
}

type memRecipeTxRunner struct {
	repo *memRecipeRepo
}

var _ recipes.TxRunner = (*memRecipeTxRunner)(nil)

func (r *memRecipeTxRunner) RunRecipes(ctx context.Context, fn func(recipeRepo repository.RecipeRepository) error) error {
	return fn(r.repo)
}

type memIngredientRepo struct {
	ingredients map[string]*entity.Ingredient
}

var _ repository.IngredientRepository = (*memIngredientRepo)(nil)

func (f *memIngredientRepo) Create(i *entity.Ingredient) error { f.ingredients[i.ID] = i; return nil }
func (f *memIngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	return f.ingredients[id], nil
}
func (f *memIngredientRepo) GetForUpdate(id string) (*entity.Ingredient, error) {
	return f.ingredients[id], nil
}
func (f *memIngredientRepo) Update(i *entity.Ingredient) error                  { return nil }
func (f *memIngredientRepo) UpdatePrice(id string, price decimal.Decimal) error { return nil }
func (f *memIngredientRepo) UpdateStock(id string, stock decimal.Decimal) error { return nil }
func (f *memIngredientRepo) List(string, bool) ([]*entity.Ingredient, error)    { return nil, nil }
func (f *memIngredientRepo) ListBelowMinStock() ([]*entity.Ingredient, error)   { return nil, nil }
func (f *memIngredientRepo) Delete(id string) error                             { return nil }

type memSettingsRepo struct{}

var _ repository.SettingsRepository = (*memSettingsRepo)(nil)

func (f *memSettingsRepo) Get() (*entity.CostingSettings, error) { return nil, nil }
func (f *memSettingsRepo) Upsert(*entity.CostingSettings) error  { return nil }

type noPriceHistory struct{}

func (noPriceHistory) LatestPrice(string) (*decimal.Decimal, error) { return nil, nil }

// testEnv arma el caso de uso completo sobre los fakes.
type testEnv struct {
	uc          *recipes.UseCase
	repo        *memRecipeRepo
	ingredients *memIngredientRepo
}

func newTestEnv(existing ...*entity.Recipe) *testEnv {
	repo := newMemRecipeRepo(existing...)
	ingredients := &memIngredientRepo{ingredients: map[string]*entity.Ingredient{
		"harina": {
			ID:               "harina",
			Name:             "Harina de trigo",
			Unit:             entity.UnitKilogram,
			MeasurementValue: decimal.NewFromInt(1),
			CurrentPrice:     dec("10"),
			IsActive:         true,
		},
	}}
	log := testLogger()
	validator := costing.NewGraphValidator(repo, log)
	resolver := costing.NewCostResolver(repo, ingredients, noPriceHistory{}, &memSettingsRepo{}, log)
	return &testEnv{
		uc:          recipes.NewUseCase(&memRecipeTxRunner{repo: repo}, repo, validator, resolver, log),
		repo:        repo,
		ingredients: ingredients,
	}
}

func validCreateInput(name string) recipes.CreateInput {
	return recipes.CreateInput{
		Name:            name,
		Category:        entity.RecipeCategoryCakes,
		Difficulty:      entity.DifficultyEasy,
		GeneratedAmount: dec("1000"),
		GeneratedUnit:   entity.UnitGram,
		Servings:        10,
		Items: []recipes.ItemInput{
			{Type: entity.ItemTypeIngredient, IngredientID: "harina", Quantity: dec("1"), Unit: entity.UnitKilogram},
		},
		Instructions: []recipes.StepInput{
			{Instruction: "Mezclar los secos", TimeMinutes: 10},
			{Instruction: "Hornear", TimeMinutes: 14},
		},
		UserID: "u1",
	}
}

func storedRecipe(id, name string, items ...entity.RecipeItem) *entity.Recipe {
	now := time.Now()
	return &entity.Recipe{
		ID:              id,
		Name:            name,
		Category:        entity.RecipeCategoryCakes,
		Difficulty:      entity.DifficultyEasy,
		GeneratedAmount: dec("1000"),
		GeneratedUnit:   entity.UnitGram,
		Servings:        10,
		Items:           items,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func subItem(id, subRecipeID string) entity.RecipeItem {
	return entity.RecipeItem{
		ID:          id,
		Type:        entity.ItemTypeSubRecipe,
		SubRecipeID: subRecipeID,
		Portions:    decimal.NewFromInt(1),
	}
}
