// Package pdf implementa la generación de la ficha técnica de costos de una
// receta usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la receta │ Categoría + Dificultad       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: Rinde / Porciones / Tiempo de preparación           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ítem | Cant | Unidad | Costo Unit | Costo Total     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Insumos / Mano de obra / TOTAL / Por porción      │
//	│           Precio sugerido (margen configurado)              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pasteleria-api/internal/application/costing"
	"github.com/jhoicas/Pasteleria-api/internal/application/recipes"
	"github.com/jhoicas/Pasteleria-api/internal/domain/entity"
)

var _ recipes.CostSheetGenerator = (*MarotoCostSheetGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 140, Green: 60, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoCostSheetGenerator implementa recipes.CostSheetGenerator con Maroto v2.
type MarotoCostSheetGenerator struct{}

// NewMarotoCostSheetGenerator construye el generador.
func NewMarotoCostSheetGenerator() *MarotoCostSheetGenerator { return &MarotoCostSheetGenerator{} }

// GenerateCostSheet genera el PDF de la ficha de costos y devuelve sus bytes.
func (g *MarotoCostSheetGenerator) GenerateCostSheet(
	_ context.Context,
	recipe *entity.Recipe,
	breakdown *costing.CostBreakdown,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha de costos: "+recipe.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(recipe))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(yieldRow(recipe))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, item := range breakdown.Items {
		m.AddRows(itemRow(item))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(breakdown)...)

	if breakdown.Incomplete {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New("ATENCIÓN: hay ítems sin resolver; el costo total es un piso, no el costo real.",
				props.Text{Size: 8, Style: fontstyle.Italic, Color: colorGray}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ficha de costos: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(recipe *entity.Recipe) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(recipe.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(4).Add(
			text.New(recipe.Category+" · "+recipe.Difficulty,
				props.Text{Size: 9, Top: 3, Align: align.Right, Color: colorGray}),
		),
	)
}

func yieldRow(recipe *entity.Recipe) core.Row {
	yield := fmt.Sprintf("Rinde: %s %s", recipe.GeneratedAmount.String(), recipe.GeneratedUnit)
	servings := fmt.Sprintf("Porciones: %d (%s %s c/u)", recipe.Servings, recipe.PortionSize.Round(2).String(), recipe.GeneratedUnit)
	prep := fmt.Sprintf("Preparación: %d min", recipe.PreparationTime)
	return row.New(8).Add(
		col.New(4).Add(text.New(yield, props.Text{Size: 9, Top: 1})),
		col.New(4).Add(text.New(servings, props.Text{Size: 9, Top: 1})),
		col.New(4).Add(text.New(prep, props.Text{Size: 9, Top: 1, Align: align.Right})),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}
	return row.New(7).Add(
		col.New(5).Add(text.New("Ítem", header)),
		col.New(2).Add(text.New("Cantidad", headerAligned(header))),
		col.New(1).Add(text.New("Unidad", header)),
		col.New(2).Add(text.New("Costo unit.", headerAligned(header))),
		col.New(2).Add(text.New("Costo total", headerAligned(header))),
	)
}

func headerAligned(p props.Text) props.Text {
	p.Align = align.Right
	return p
}

func itemRow(item costing.ItemCost) core.Row {
	name := item.Name
	if item.Missing {
		name += " (sin resolver)"
	}
	cell := props.Text{Size: 9, Top: 1}
	num := props.Text{Size: 9, Top: 1, Align: align.Right}
	return row.New(6).Add(
		col.New(5).Add(text.New(name, cell)),
		col.New(2).Add(text.New(item.Quantity.String(), num)),
		col.New(1).Add(text.New(item.Unit, cell)),
		col.New(2).Add(text.New(money(item.UnitCost), num)),
		col.New(2).Add(text.New(money(item.TotalCost), num)),
	)
}

func totalsRows(b *costing.CostBreakdown) []core.Row {
	label := props.Text{Size: 9, Top: 1, Align: align.Right}
	value := props.Text{Size: 9, Top: 1, Align: align.Right, Style: fontstyle.Bold}
	totalValue := props.Text{Size: 11, Top: 1, Align: align.Right, Style: fontstyle.Bold, Color: colorPrimary}

	lineOf := func(height float64, name, amount string, vp props.Text) core.Row {
		return row.New(height).Add(
			col.New(8).Add(text.New(name, label)),
			col.New(4).Add(text.New(amount, vp)),
		)
	}

	return []core.Row{
		lineOf(6, "Insumos y sub-recetas", money(b.IngredientsCost.Add(b.SubRecipesCost)), value),
		lineOf(6, "Mano de obra", money(b.LaborCost), value),
		lineOf(8, "COSTO TOTAL", money(b.TotalCost), totalValue),
		lineOf(6, fmt.Sprintf("Costo por porción (%d porciones)", b.Servings), money(b.CostPerServing), value),
		lineOf(6, fmt.Sprintf("Precio sugerido (margen %s%%)", b.MarginPct.Round(0).String()), money(b.SuggestedPrice), totalValue),
	}
}

func money(v decimal.Decimal) string {
	return "R$ " + v.Round(2).StringFixed(2)
}
