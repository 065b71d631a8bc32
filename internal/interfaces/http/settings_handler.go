package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pasteleria-api/internal/application/dto"
	"github.com/jhoicas/Pasteleria-api/internal/application/settings"
)

// SettingsHandler maneja la configuración de costeo (protegido).
type SettingsHandler struct {
	uc *settings.UseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *settings.UseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get godoc
// @Summary      Configuración de costeo vigente
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.CostingSettings
// @Router       /api/settings/costing [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Guardar configuración de costeo
// @Description  Márgenes como fracción: 1.5 equivale a 150% sobre el costo.
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSettingsRequest  true  "Parámetros de costeo"
// @Success      200   {object}  entity.CostingSettings
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/costing [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if resp := decodeBody(c, &in); resp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	out, err := h.uc.Update(c.Context(), settings.UpdateInput{
		LaborHourRate:     in.LaborHourRate,
		DefaultMargin:     in.DefaultMargin,
		MarginsByCategory: in.MarginsByCategory,
	})
	if err != nil {
		if resp := mapDomainError(c, err); resp != nil {
			return resp
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}
