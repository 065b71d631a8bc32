package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pasteleria-api/internal/application/dto"
	"github.com/jhoicas/Pasteleria-api/internal/application/inventory"
)

// AnalyticsHandler maneja las consultas de análisis de precios y stock (protegido).
type AnalyticsHandler struct {
	analytics *inventory.PriceAnalytics
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(analytics *inventory.PriceAnalytics) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// PriceTrend godoc
// @Summary      Serie de precios del ingrediente con variación por punto
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del ingrediente"
// @Param        days  query  int     false  "Ventana en días (default 90)"
// @Success      200  {array}  dto.PricePointDTO
// @Router       /api/analytics/ingredients/{id}/price-trend [get]
func (h *AnalyticsHandler) PriceTrend(c *fiber.Ctx) error {
	days := c.QueryInt("days", 90)
	points, err := h.analytics.Trend(c.Params("id"), days)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(points)
}

// AveragePrice godoc
// @Summary      Precio promedio del ingrediente en una ventana de días
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del ingrediente"
// @Param        days  query  int     false  "Ventana en días (default 30)"
// @Success      200  {object}  map[string]any
// @Router       /api/analytics/ingredients/{id}/average-price [get]
func (h *AnalyticsHandler) AveragePrice(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	avg, err := h.analytics.AveragePrice(c.Params("id"), days)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"ingredient_id": c.Params("id"), "days": days, "average_price": avg})
}

// PriceAlerts godoc
// @Summary      Alertas por variación de precio sobre el umbral
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id         path   string  true   "ID del ingrediente"
// @Param        threshold  query  number  false  "Umbral en porcentaje (default 10)"
// @Success      200  {array}  dto.PriceAlertDTO
// @Router       /api/analytics/ingredients/{id}/price-alerts [get]
func (h *AnalyticsHandler) PriceAlerts(c *fiber.Ctx) error {
	threshold := decimal.NewFromInt(10)
	if s := c.Query("threshold"); s != "" {
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "threshold debe ser numérico"})
		}
		threshold = parsed
	}
	alerts, err := h.analytics.DetectAlerts(c.Params("id"), threshold)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(alerts)
}

// LowStock godoc
// @Summary      Ingredientes en o bajo su stock mínimo
// @Description  Ordenados por severidad: agotados primero, luego críticos y bajos.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/analytics/low-stock [get]
func (h *AnalyticsHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.analytics.LowStockList()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(list)
}
