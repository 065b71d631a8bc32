package recipes

import (
	"context"

	"github.com/jhoicas/Pasteleria-api/internal/application/costing"
	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
)

// CostSheetGenerator genera la ficha técnica de costos de una receta en PDF.
type CostSheetGenerator interface {
	GenerateCostSheet(ctx context.Context, recipe *entity.Recipe, breakdown *costing.CostBreakdown) ([]byte, error)
}

// PDFUseCase orquesta receta + desglose de costos → PDF exportable.
type PDFUseCase struct {
	recipes   *UseCase
	generator CostSheetGenerator
}

// NewPDFUseCase construye el caso de uso de exportación.
func NewPDFUseCase(recipes *UseCase, generator CostSheetGenerator) *PDFUseCase {
	return &PDFUseCase{recipes: recipes, generator: generator}
}

// CostSheet devuelve los bytes del PDF con el desglose de costos vigente.
func (uc *PDFUseCase) CostSheet(ctx context.Context, recipeID string) ([]byte, error) {
	recipe, err := uc.recipes.Get(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	breakdown, err := uc.recipes.Cost(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateCostSheet(ctx, recipe, breakdown)
}
