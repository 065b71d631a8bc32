package recipes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pasteleria-api/internal/application/costing"
	"github.com/jhoicas/Pasteleria-api/internal/domain"
	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/Pasteleria-api/internal/domain/repository"
	"github.com/jhoicas/Pasteleria-api/pkg/logger"
)

var validCategories = map[string]bool{
	entity.RecipeCategoryCakes:    true,
	entity.RecipeCategoryCupcakes: true,
	entity.RecipeCategoryCookies:  true,
	entity.RecipeCategoryBreads:   true,
	entity.RecipeCategoryPastries: true,
	entity.RecipeCategoryIcings:   true,
	entity.RecipeCategoryFillings: true,
	entity.RecipeCategoryOther:    true,
}

var validDifficulties = map[string]bool{
	entity.DifficultyEasy:   true,
	entity.DifficultyMedium: true,
	entity.DifficultyHard:   true,
}

// UseCase gestiona el ciclo de vida de recetas: creación y actualización
// validadas (incluida la verificación de dependencia circular antes de
// persistir), borrado lógico, duplicación y recálculo de costos derivados.
type UseCase struct {
	txRunner  TxRunner
	recipes   repository.RecipeRepository
	validator *costing.GraphValidator
	resolver  *costing.CostResolver
	log       *logger.Logger
}

// NewUseCase construye el caso de uso de recetas.
func NewUseCase(
	txRunner TxRunner,
	recipes repository.RecipeRepository,
	validator *costing.GraphValidator,
	resolver *costing.CostResolver,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		recipes:   recipes,
		validator: validator,
		resolver:  resolver,
		log:       log,
	}
}

// ItemInput ítem de receta en una operación de escritura.
type ItemInput struct {
	Type           string
	IngredientID   string
	IngredientName string
	Quantity       decimal.Decimal
	Unit           string
	SubRecipeID    string
	SubRecipeName  string
	Portions       decimal.Decimal
	Notes          string
}

// StepInput paso de preparación en una operación de escritura.
type StepInput struct {
	StepNumber  int
	Instruction string
	TimeMinutes int
	Notes       string
}

// CreateInput entrada para crear una receta.
type CreateInput struct {
	Name            string
	Description     string
	Category        string
	Difficulty      string
	GeneratedAmount decimal.Decimal
	GeneratedUnit   string
	Servings        int
	Items           []ItemInput
	Instructions    []StepInput
	Notes           string
	UserID          string
}

// UpdateInput entrada para actualizar una receta (reemplazo completo).
type UpdateInput struct {
	ID string
	CreateInput
}

func validateInput(in CreateInput) error {
	if in.Name == "" {
		return fmt.Errorf("nombre de receta requerido: %w", domain.ErrInvalidInput)
	}
	if !validCategories[in.Category] {
		return fmt.Errorf("categoría %q inválida: %w", in.Category, domain.ErrInvalidInput)
	}
	if !validDifficulties[in.Difficulty] {
		return fmt.Errorf("dificultad %q inválida: %w", in.Difficulty, domain.ErrInvalidInput)
	}
	if !in.GeneratedAmount.GreaterThan(decimal.Zero) {
		return fmt.Errorf("cantidad generada debe ser mayor que cero: %w", domain.ErrInvalidInput)
	}
	if in.Servings <= 0 {
		return fmt.Errorf("número de porciones debe ser mayor que cero: %w", domain.ErrInvalidInput)
	}
	for _, item := range in.Items {
		switch item.Type {
		case entity.ItemTypeIngredient:
			if item.IngredientID == "" {
				return fmt.Errorf("ítem de ingrediente sin referencia: %w", domain.ErrInvalidInput)
			}
			if !item.Quantity.GreaterThan(decimal.Zero) {
				return fmt.Errorf("cantidad del ingrediente %s debe ser positiva: %w", item.IngredientID, domain.ErrInvalidInput)
			}
		case entity.ItemTypeSubRecipe:
			if item.SubRecipeID == "" {
				return fmt.Errorf("ítem de sub-receta sin referencia: %w", domain.ErrInvalidInput)
			}
			if !item.Portions.GreaterThan(decimal.Zero) {
				return fmt.Errorf("porciones de la sub-receta %s deben ser positivas: %w", item.SubRecipeID, domain.ErrInvalidInput)
			}
		default:
			return fmt.Errorf("tipo de ítem %q inválido: %w", item.Type, domain.ErrInvalidInput)
		}
	}
	return nil
}

func buildItems(in []ItemInput) []entity.RecipeItem {
	items := make([]entity.RecipeItem, 0, len(in))
	for i, item := range in {
		items = append(items, entity.RecipeItem{
			ID:             uuid.New().String(),
			Type:           item.Type,
			IngredientID:   item.IngredientID,
			IngredientName: item.IngredientName,
			Quantity:       item.Quantity,
			Unit:           item.Unit,
			SubRecipeID:    item.SubRecipeID,
			SubRecipeName:  item.SubRecipeName,
			Portions:       item.Portions,
			Notes:          item.Notes,
			SortOrder:      i,
		})
	}
	return items
}

func buildSteps(in []StepInput) ([]entity.RecipeStep, int) {
	steps := make([]entity.RecipeStep, 0, len(in))
	totalMinutes := 0
	for i, step := range in {
		number := step.StepNumber
		if number == 0 {
			number = i + 1
		}
		steps = append(steps, entity.RecipeStep{
			ID:          uuid.New().String(),
			StepNumber:  number,
			Instruction: step.Instruction,
			TimeMinutes: step.TimeMinutes,
			Notes:       step.Notes,
		})
		totalMinutes += step.TimeMinutes
	}
	return steps, totalMinutes
}

// checkSubRecipes verifica que cada sub-receta referenciada exista y esté
// activa.
func (uc *UseCase) checkSubRecipes(items []entity.RecipeItem) error {
	for _, item := range items {
		if item.Type != entity.ItemTypeSubRecipe {
			continue
		}
		sub, err := uc.recipes.GetByID(item.SubRecipeID)
		if err != nil {
			return err
		}
		if sub == nil {
			return fmt.Errorf("sub-receta %s: %w", item.SubRecipeID, domain.ErrNotFound)
		}
		if !sub.IsActive {
			return fmt.Errorf("sub-receta %s inactiva: %w", item.SubRecipeID, domain.ErrInvalidInput)
		}
	}
	return nil
}

// Create valida y persiste una receta nueva, y calcula sus costos derivados.
// El nombre debe ser único entre recetas activas (comparación sin acentos).
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Recipe, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	normalized := NormalizeName(in.Name)
	if existing, err := uc.recipes.GetByNormalizedName(normalized); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("ya existe una receta activa con el nombre %q: %w", in.Name, domain.ErrDuplicate)
	}

	items := buildItems(in.Items)
	if err := uc.checkSubRecipes(items); err != nil {
		return nil, err
	}

	steps, totalMinutes := buildSteps(in.Instructions)
	now := time.Now()
	recipe := &entity.Recipe{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Description:     in.Description,
		Category:        in.Category,
		Difficulty:      in.Difficulty,
		GeneratedAmount: in.GeneratedAmount,
		GeneratedUnit:   in.GeneratedUnit,
		Servings:        in.Servings,
		PortionSize:     in.GeneratedAmount.Div(decimal.NewFromInt(int64(in.Servings))),
		PreparationTime: totalMinutes,
		Items:           items,
		Instructions:    steps,
		Notes:           in.Notes,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
		CreatedBy:       in.UserID,
	}

	// Una receta nueva no puede cerrar un ciclo (nadie la referencia aún),
	// así que basta con persistir; el índice único de nombre cubre la
	// carrera de duplicados.
	err := uc.txRunner.RunRecipes(ctx, func(recipeRepo repository.RecipeRepository) error {
		return recipeRepo.Create(recipe)
	})
	if err != nil {
		return nil, err
	}

	uc.refreshCostsBestEffort(ctx, recipe)
	return recipe, nil
}

// Update valida y reemplaza una receta. Cada referencia a sub-receta pasa
// por el validador de grafo antes de persistir, y se re-verifica dentro de
// la misma transacción de escritura.
func (uc *UseCase) Update(ctx context.Context, in UpdateInput) (*entity.Recipe, error) {
	existing, err := uc.recipes.GetByID(in.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("receta %s: %w", in.ID, domain.ErrNotFound)
	}
	if err := validateInput(in.CreateInput); err != nil {
		return nil, err
	}

	normalized := NormalizeName(in.Name)
	if other, err := uc.recipes.GetByNormalizedName(normalized); err != nil {
		return nil, err
	} else if other != nil && other.ID != in.ID {
		return nil, fmt.Errorf("ya existe una receta activa con el nombre %q: %w", in.Name, domain.ErrDuplicate)
	}

	items := buildItems(in.Items)
	if err := uc.checkSubRecipes(items); err != nil {
		return nil, err
	}
	if res := uc.validator.ValidateItems(ctx, in.ID, items); res.HasCircularDependency {
		return nil, fmt.Errorf("%s: %w", res.Message, domain.ErrCircularDependency)
	}

	steps, totalMinutes := buildSteps(in.Instructions)
	updated := &entity.Recipe{
		ID:              existing.ID,
		Name:            in.Name,
		Description:     in.Description,
		Category:        in.Category,
		Difficulty:      in.Difficulty,
		GeneratedAmount: in.GeneratedAmount,
		GeneratedUnit:   in.GeneratedUnit,
		Servings:        in.Servings,
		PortionSize:     in.GeneratedAmount.Div(decimal.NewFromInt(int64(in.Servings))),
		PreparationTime: totalMinutes,
		Items:           items,
		Instructions:    steps,
		Notes:           in.Notes,
		IsActive:        existing.IsActive,
		CreatedAt:       existing.CreatedAt,
		UpdatedAt:       time.Now(),
		CreatedBy:       existing.CreatedBy,
	}

	err = uc.txRunner.RunRecipes(ctx, func(recipeRepo repository.RecipeRepository) error {
		// Re-verificación dentro de la transacción: otro escritor pudo
		// agregar aristas entre la verificación de arriba y este punto.
		txValidator := costing.NewGraphValidator(recipeRepo, uc.log)
		if res := txValidator.ValidateItems(ctx, in.ID, items); res.HasCircularDependency {
			return fmt.Errorf("%s: %w", res.Message, domain.ErrCircularDependency)
		}
		return recipeRepo.Update(updated)
	})
	if err != nil {
		return nil, err
	}

	uc.refreshCostsBestEffort(ctx, updated)
	return updated, nil
}

// Get devuelve una receta por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Recipe, error) {
	recipe, err := uc.recipes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, fmt.Errorf("receta %s: %w", id, domain.ErrNotFound)
	}
	return recipe, nil
}

// List devuelve recetas, opcionalmente filtradas por categoría.
func (uc *UseCase) List(ctx context.Context, category string) ([]*entity.Recipe, error) {
	return uc.recipes.List(category, true)
}

// Delete hace borrado lógico; las recetas históricas que la referencian
// conservan integridad referencial.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	existing, err := uc.recipes.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("receta %s: %w", id, domain.ErrNotFound)
	}
	return uc.recipes.Delete(id)
}

// Duplicate crea una copia de la receta con otro nombre.
func (uc *UseCase) Duplicate(ctx context.Context, id, newName, userID string) (*entity.Recipe, error) {
	original, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	in := CreateInput{
		Name:            newName,
		Description:     original.Description,
		Category:        original.Category,
		Difficulty:      original.Difficulty,
		GeneratedAmount: original.GeneratedAmount,
		GeneratedUnit:   original.GeneratedUnit,
		Servings:        original.Servings,
		Notes:           original.Notes,
		UserID:          userID,
	}
	for _, item := range original.Items {
		in.Items = append(in.Items, ItemInput{
			Type:           item.Type,
			IngredientID:   item.IngredientID,
			IngredientName: item.IngredientName,
			Quantity:       item.Quantity,
			Unit:           item.Unit,
			SubRecipeID:    item.SubRecipeID,
			SubRecipeName:  item.SubRecipeName,
			Portions:       item.Portions,
			Notes:          item.Notes,
		})
	}
	for _, step := range original.Instructions {
		in.Instructions = append(in.Instructions, StepInput{
			StepNumber:  step.StepNumber,
			Instruction: step.Instruction,
			TimeMinutes: step.TimeMinutes,
			Notes:       step.Notes,
		})
	}
	return uc.Create(ctx, in)
}

// Cost resuelve el desglose de costos vigente de la receta (sin persistir).
func (uc *UseCase) Cost(ctx context.Context, id string) (*costing.CostBreakdown, error) {
	return uc.resolver.Resolve(ctx, id)
}

// RefreshCosts recalcula y persiste los campos derivados de costo.
func (uc *UseCase) RefreshCosts(ctx context.Context, id string) (*costing.CostBreakdown, error) {
	recipe, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	breakdown, err := uc.resolver.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	recipe.TotalCost = breakdown.TotalCost
	recipe.CostPerServing = breakdown.CostPerServing
	recipe.LaborCost = breakdown.LaborCost
	recipe.SuggestedPrice = breakdown.SuggestedPrice
	recipe.UpdatedAt = time.Now()
	if err := uc.recipes.UpdateCosts(recipe); err != nil {
		return nil, err
	}
	return breakdown, nil
}

// refreshCostsBestEffort recalcula costos tras una escritura. Un fallo de
// costeo no revierte la creación/actualización de la receta: los derivados
// quedan pendientes y se recalculan en la siguiente lectura o refresh.
func (uc *UseCase) refreshCostsBestEffort(ctx context.Context, recipe *entity.Recipe) {
	if len(recipe.Items) == 0 {
		return
	}
	if _, err := uc.RefreshCosts(ctx, recipe.ID); err != nil {
		uc.log.Warn().Err(err).Str("recipe_id", recipe.ID).
			Msg("no se pudieron calcular los costos de la receta")
	}
}
