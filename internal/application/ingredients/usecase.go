package ingredients

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pasteleria-api/internal/domain"
	"github.com/jhoicas/Pasteleria-api/internal/domain/costing"
	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
	"github.com/jhoicas/Pasteleria-api/internal/domain/repository"
)

var validUnits = map[string]bool{
	entity.UnitKilogram:   true,
	entity.UnitGram:       true,
	entity.UnitPound:      true,
	entity.UnitOunce:      true,
	entity.UnitLiter:      true,
	entity.UnitMilliliter: true,
	entity.UnitCup:        true,
	entity.UnitTablespoon: true,
	entity.UnitTeaspoon:   true,
	entity.UnitUnit:       true,
	entity.UnitDozen:      true,
}

// UseCase gestiona el CRUD de ingredientes y la consulta de salud de stock.
// Precio y stock NO se modifican por aquí: solo vía StockLedger/PriceLedger.
type UseCase struct {
	ingredients repository.IngredientRepository
}

// NewUseCase construye el caso de uso de ingredientes.
func NewUseCase(ingredients repository.IngredientRepository) *UseCase {
	return &UseCase{ingredients: ingredients}
}

// CreateInput entrada para crear un ingrediente.
type CreateInput struct {
	Name             string
	Description      string
	Category         string
	Unit             string
	MeasurementValue decimal.Decimal
	Brand            string
	CurrentPrice     decimal.Decimal
	InitialStock     decimal.Decimal
	MinStock         decimal.Decimal
	SupplierID       string
	Allergens        []string
	UserID           string
}

func (in CreateInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("nombre de ingrediente requerido: %w", domain.ErrInvalidInput)
	}
	if !validUnits[in.Unit] {
		return fmt.Errorf("unidad %q inválida: %w", in.Unit, domain.ErrInvalidInput)
	}
	if !in.MeasurementValue.GreaterThan(decimal.Zero) {
		return fmt.Errorf("valor de medida debe ser positivo: %w", domain.ErrInvalidInput)
	}
	if in.CurrentPrice.LessThan(decimal.Zero) {
		return fmt.Errorf("precio no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	if in.InitialStock.LessThan(decimal.Zero) || in.MinStock.LessThan(decimal.Zero) {
		return fmt.Errorf("stock no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	return nil
}

// Create valida y persiste un ingrediente nuevo.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Ingredient, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	ingredient := &entity.Ingredient{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Description:      in.Description,
		Category:         in.Category,
		Unit:             in.Unit,
		MeasurementValue: in.MeasurementValue,
		Brand:            in.Brand,
		CurrentPrice:     in.CurrentPrice,
		CurrentStock:     in.InitialStock,
		MinStock:         in.MinStock,
		SupplierID:       in.SupplierID,
		Allergens:        in.Allergens,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
		CreatedBy:        in.UserID,
	}
	if err := uc.ingredients.Create(ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

// UpdateInput entrada para actualizar datos descriptivos de un ingrediente.
type UpdateInput struct {
	ID               string
	Name             string
	Description      string
	Category         string
	Unit             string
	MeasurementValue decimal.Decimal
	Brand            string
	MinStock         decimal.Decimal
	SupplierID       string
	Allergens        []string
}

// Update actualiza los campos descriptivos. CurrentPrice y CurrentStock se
// preservan: sus rutas de escritura son los ledgers.
func (uc *UseCase) Update(ctx context.Context, in UpdateInput) (*entity.Ingredient, error) {
	existing, err := uc.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, fmt.Errorf("nombre de ingrediente requerido: %w", domain.ErrInvalidInput)
	}
	if !validUnits[in.Unit] {
		return nil, fmt.Errorf("unidad %q inválida: %w", in.Unit, domain.ErrInvalidInput)
	}
	if !in.MeasurementValue.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("valor de medida debe ser positivo: %w", domain.ErrInvalidInput)
	}
	if in.MinStock.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("stock mínimo no puede ser negativo: %w", domain.ErrInvalidInput)
	}

	existing.Name = in.Name
	existing.Description = in.Description
	existing.Category = in.Category
	existing.Unit = in.Unit
	existing.MeasurementValue = in.MeasurementValue
	existing.Brand = in.Brand
	existing.MinStock = in.MinStock
	existing.SupplierID = in.SupplierID
	existing.Allergens = in.Allergens
	existing.UpdatedAt = time.Now()

	if err := uc.ingredients.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Get devuelve un ingrediente por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Ingredient, error) {
	ingredient, err := uc.ingredients.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, fmt.Errorf("ingrediente %s: %w", id, domain.ErrNotFound)
	}
	return ingredient, nil
}

// List devuelve ingredientes activos, opcionalmente por categoría.
func (uc *UseCase) List(ctx context.Context, category string) ([]*entity.Ingredient, error) {
	return uc.ingredients.List(category, true)
}

// Delete hace borrado lógico para preservar integridad referencial de
// recetas históricas.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.Get(ctx, id); err != nil {
		return err
	}
	return uc.ingredients.Delete(id)
}

// StockStatus devuelve la banda de salud de stock del ingrediente.
func (uc *UseCase) StockStatus(ctx context.Context, id string) (costing.StockStatus, *entity.Ingredient, error) {
	ingredient, err := uc.Get(ctx, id)
	if err != nil {
		return "", nil, err
	}
	return costing.Classify(ingredient.CurrentStock, ingredient.MinStock), ingredient, nil
}
