package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pasteleria-api/internal/application/dto"
	"github.com/jhoicas/Pasteleria-api/internal/domain/costing"
	"github.com/jhoicas/Pasteleria-api/internal/domain/repository"
)

// Un cambio de precio se considera significativo a partir del 1%.
var stableThreshold = decimal.NewFromInt(1)

// PriceAnalytics deriva métricas del historial de precios y del stock:
// tendencia, promedio móvil, alertas de cambio brusco y lista de
// ingredientes bajo stock mínimo con su banda de salud.
type PriceAnalytics struct {
	historyRepo    repository.PriceHistoryRepository
	ingredientRepo repository.IngredientRepository
}

// NewPriceAnalytics construye el caso de uso de analítica de precios.
func NewPriceAnalytics(historyRepo repository.PriceHistoryRepository, ingredientRepo repository.IngredientRepository) *PriceAnalytics {
	return &PriceAnalytics{historyRepo: historyRepo, ingredientRepo: ingredientRepo}
}

// PriceChange compara dos precios y clasifica la tendencia.
// Cambios de magnitud <= 1% se reportan como estables.
func PriceChange(current, previous decimal.Decimal) dto.PriceChangeDTO {
	change := current.Sub(previous)
	var pct decimal.Decimal
	if !previous.IsZero() {
		pct = change.Div(previous).Mul(decimal.NewFromInt(100))
	}
	trend := "stable"
	if pct.Abs().GreaterThan(stableThreshold) {
		if pct.IsPositive() {
			trend = "up"
		} else {
			trend = "down"
		}
	}
	return dto.PriceChangeDTO{Change: change, Percentage: pct.Round(2), Trend: trend}
}

// AveragePrice devuelve el precio promedio de los últimos days días.
// Sin entradas en la ventana devuelve cero.
func (a *PriceAnalytics) AveragePrice(ingredientID string, days int) (decimal.Decimal, error) {
	from := time.Now().AddDate(0, 0, -days)
	entries, err := a.historyRepo.ListByIngredient(ingredientID, &from, nil, 0)
	if err != nil {
		return decimal.Zero, err
	}
	if len(entries) == 0 {
		return decimal.Zero, nil
	}
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Price)
	}
	return sum.Div(decimal.NewFromInt(int64(len(entries)))), nil
}

// Trend devuelve la serie de precios de los últimos days días, ordenada
// ascendente por fecha, con el % de cambio contra la entrada anterior.
func (a *PriceAnalytics) Trend(ingredientID string, days int) ([]dto.PricePointDTO, error) {
	from := time.Now().AddDate(0, 0, -days)
	entries, err := a.historyRepo.ListByIngredient(ingredientID, &from, nil, 0)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	points := make([]dto.PricePointDTO, 0, len(entries))
	for i, e := range entries {
		p := dto.PricePointDTO{Date: e.CreatedAt, Price: e.Price}
		if i > 0 {
			p.ChangePct = PriceChange(e.Price, entries[i-1].Price).Percentage
		}
		points = append(points, p)
	}
	return points, nil
}

// DetectAlerts compara las dos entradas más recientes y devuelve una alerta
// si el cambio supera thresholdPct (en puntos porcentuales, ej. 20).
func (a *PriceAnalytics) DetectAlerts(ingredientID string, thresholdPct decimal.Decimal) ([]dto.PriceAlertDTO, error) {
	entries, err := a.historyRepo.ListByIngredient(ingredientID, nil, nil, 2)
	if err != nil {
		return nil, err
	}
	if len(entries) < 2 {
		return []dto.PriceAlertDTO{}, nil
	}
	latest, previous := entries[0], entries[1]
	change := PriceChange(latest.Price, previous.Price)
	if change.Percentage.Abs().LessThanOrEqual(thresholdPct) {
		return []dto.PriceAlertDTO{}, nil
	}
	alertType := "increase"
	if change.Percentage.IsNegative() {
		alertType = "decrease"
	}
	return []dto.PriceAlertDTO{{
		Type:       alertType,
		Percentage: change.Percentage,
		Current:    latest.Price,
		Previous:   previous.Price,
	}}, nil
}

// LowStockList devuelve los ingredientes activos en o bajo su stock mínimo,
// con su banda de salud, ordenados de más a menos urgente.
func (a *PriceAnalytics) LowStockList() ([]dto.LowStockItemDTO, error) {
	ingredients, err := a.ingredientRepo.ListBelowMinStock()
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItemDTO, 0, len(ingredients))
	for _, ing := range ingredients {
		items = append(items, dto.LowStockItemDTO{
			IngredientID: ing.ID,
			Name:         ing.Name,
			Unit:         ing.Unit,
			CurrentStock: ing.CurrentStock,
			MinStock:     ing.MinStock,
			Status:       string(costing.Classify(ing.CurrentStock, ing.MinStock)),
		})
	}
	// out primero, luego critical, luego low
	rank := map[string]int{"out": 0, "critical": 1, "low": 2, "good": 3}
	sort.SliceStable(items, func(i, j int) bool {
		return rank[items[i].Status] < rank[items[j].Status]
	})
	return items, nil
}
