package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pasteleria-api/internal/application/dto"
	"github.com/jhoicas/Pasteleria-api/internal/application/ingredients"
	"github.com/jhoicas/Pasteleria-api/internal/application/inventory"
	"github.com/jhoicas/Pasteleria-api/internal/domain"
	"github.com/jhoicas/Pasteleria-api/internal/domain/costing"
)

// IngredientHandler maneja las peticiones HTTP de ingredientes, movimientos
// de stock y precios (protegido).
type IngredientHandler struct {
	uc          *ingredients.UseCase
	stockLedger *inventory.StockLedger
	priceLedger *inventory.PriceLedger
}

// NewIngredientHandler construye el handler.
func NewIngredientHandler(uc *ingredients.UseCase, stockLedger *inventory.StockLedger, priceLedger *inventory.PriceLedger) *IngredientHandler {
	return &IngredientHandler{uc: uc, stockLedger: stockLedger, priceLedger: priceLedger}
}

// mapDomainError traduce errores de dominio a respuestas HTTP; nil si el
// error no es de dominio (el caller responde 500).
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrCircularDependency):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "CIRCULAR_DEPENDENCY", Message: err.Error()})
	case errors.Is(err, domain.ErrMaxDepth):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MAX_DEPTH", Message: err.Error()})
	}
	return nil
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// Create godoc
// @Summary      Crear ingrediente
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIngredientRequest  true  "Datos del ingrediente"
// @Success      201   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingredients [post]
func (h *IngredientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIngredientRequest
	if resp := decodeBody(c, &in); resp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	ingredient, err := h.uc.Create(c.Context(), ingredients.CreateInput{
		Name:             in.Name,
		Description:      in.Description,
		Category:         in.Category,
		Unit:             in.Unit,
		MeasurementValue: in.MeasurementValue,
		Brand:            in.Brand,
		CurrentPrice:     in.CurrentPrice,
		InitialStock:     in.InitialStock,
		MinStock:         in.MinStock,
		SupplierID:       in.SupplierID,
		Allergens:        in.Allergens,
		UserID:           GetUserID(c),
	})
	if err != nil {
		if resp := mapDomainError(c, err); resp != nil {
			return resp
		}
		return internalError(c, err)
	}
	status := string(costing.Classify(ingredient.CurrentStock, ingredient.MinStock))
	return c.Status(fiber.StatusCreated).JSON(dto.ToIngredientResponse(ingredient, status))
}

// List godoc
// @Summary      Listar ingredientes activos
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Filtrar por categoría"
// @Success      200  {array}  dto.IngredientResponse
// @Router       /api/ingredients [get]
func (h *IngredientHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Query("category"))
	if err != nil {
		return internalError(c, err)
	}
	out := make([]dto.IngredientResponse, 0, len(list))
	for _, ingredient := range list {
		status := string(costing.Classify(ingredient.CurrentStock, ingredient.MinStock))
		out = append(out, dto.ToIngredientResponse(ingredient, status))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener ingrediente por ID
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ingrediente"
// @Success      200  {object}  dto.IngredientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [get]
func (h *IngredientHandler) GetByID(c *fiber.Ctx) error {
	ingredient, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		if resp := mapDomainError(c, err); resp != nil {
			return resp
		}
		return internalError(c, err)
	}
	status := string(costing.Classify(ingredient.CurrentStock, ingredient.MinStock))
	return c.JSON(dto.ToIngredientResponse(ingredient, status))
}

// Update godoc
// @Summary      Actualizar datos descriptivos del ingrediente
// @Description  Precio y stock no se modifican por aquí: usar movimientos y precios.
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ingrediente"
// @Param        body  body  dto.UpdateIngredientRequest  true  "Datos del ingrediente"
// @Success      200   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [put]
func (h *IngredientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateIngredientRequest
	if resp := decodeBody(c, &in); resp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	ingredient, err := h.uc.Update(c.Context(), ingredients.UpdateInput{
		ID:               c.Params("id"),
		Name:             in.Name,
		Description:      in.Description,
		Category:         in.Category,
		Unit:             in.Unit,
		MeasurementValue: in.MeasurementValue,
		Brand:            in.Brand,
		MinStock:         in.MinStock,
		SupplierID:       in.SupplierID,
		Allergens:        in.Allergens,
	})
	if err != nil {
		if resp := mapDomainError(c, err); resp != nil {
			return resp
		}
		return internalError(c, err)
	}
	status := string(costing.Classify(ingredient.CurrentStock, ingredient.MinStock))
	return c.JSON(dto.ToIngredientResponse(ingredient, status))
}

// Delete godoc
// @Summary      Desactivar ingrediente (borrado lógico)
// @Tags         ingredients
// @Security     Bearer
// @Param        id  path  string  true  "ID del ingrediente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [delete]
func (h *IngredientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if resp := mapDomainError(c, err); resp != nil {
			return resp
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// StockStatus godoc
// @Summary      Banda de salud de stock del ingrediente
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ingrediente"
// @Success      200  {object}  dto.StockStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id}/stock-status [get]
func (h *IngredientHandler) StockStatus(c *fiber.Ctx) error {
	status, ingredient, err := h.uc.StockStatus(c.Context(), c.Params("id"))
	if err != nil {
		if resp := mapDomainError(c, err); resp != nil {
			return resp
		}
		return internalError(c, err)
	}
	return c.JSON(dto.StockStatusResponse{
		IngredientID: ingredient.ID,
		Name:         ingredient.Name,
		CurrentStock: ingredient.CurrentStock,
		MinStock:     ingredient.MinStock,
		Unit:         ingredient.Unit,
		Status:       string(status),
	})
}

// RegisterMovement godoc
// @Summary      Aplicar movimiento de stock (compra, consumo, ajuste)
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ingrediente"
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id}/movements [post]
func (h *IngredientHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if resp := decodeBody(c, &in); resp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	ingredientID := c.Params("id")
	newStock, err := h.stockLedger.ApplyMovement(c.Context(), inventory.MovementInput{
		IngredientID: ingredientID,
		Type:         in.Type,
		Quantity:     in.Quantity,
		UnitCost:     in.UnitCost,
		Reason:       in.Reason,
		Notes:        in.Notes,
		UserID:       GetUserID(c),
	})
	if err != nil {
		if resp := mapDomainError(c, err); resp != nil {
			return resp
		}
		return internalError(c, err)
	}
	ingredient, err := h.uc.Get(c.Context(), ingredientID)
	if err != nil {
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		IngredientID: ingredientID,
		NewStock:     newStock,
		Status:       string(costing.Classify(newStock, ingredient.MinStock)),
	})
}

// ListMovements godoc
// @Summary      Historial de movimientos de stock
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del ingrediente"
// @Param        from    query  string  false  "Desde (RFC3339)"
// @Param        to      query  string  false  "Hasta (RFC3339)"
// @Param        limit   query  int     false  "Máximo de filas (default 50)"
// @Param        offset  query  int     false  "Offset de paginación"
// @Success      200  {array}  entity.StockMovement
// @Router       /api/ingredients/{id}/movements [get]
func (h *IngredientHandler) ListMovements(c *fiber.Ctx) error {
	from, to, ok := parseDateRange(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC3339"})
	}
	list, err := h.stockLedger.Movements(c.Params("id"), from, to, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(list)
}

// RecordPrice godoc
// @Summary      Registrar cambio manual de precio
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ingrediente"
// @Param        body  body  dto.RecordPriceRequest  true  "Nuevo precio"
// @Success      201   {object}  entity.PriceHistoryEntry
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id}/prices [post]
func (h *IngredientHandler) RecordPrice(c *fiber.Ctx) error {
	var in dto.RecordPriceRequest
	if resp := decodeBody(c, &in); resp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	entry, err := h.priceLedger.RecordPriceChange(c.Context(), c.Params("id"), in.Price, in.SupplierID, in.Notes, GetUserID(c))
	if err != nil {
		if resp := mapDomainError(c, err); resp != nil {
			return resp
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// PriceHistory godoc
// @Summary      Historial de precios del ingrediente
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del ingrediente"
// @Param        from   query  string  false  "Desde (RFC3339)"
// @Param        to     query  string  false  "Hasta (RFC3339)"
// @Param        limit  query  int     false  "Máximo de filas (default 100)"
// @Success      200  {array}  entity.PriceHistoryEntry
// @Router       /api/ingredients/{id}/prices [get]
func (h *IngredientHandler) PriceHistory(c *fiber.Ctx) error {
	from, to, ok := parseDateRange(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC3339"})
	}
	list, err := h.priceLedger.History(c.Params("id"), from, to, c.QueryInt("limit"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(list)
}

// parseDateRange lee from/to en RFC3339 de la query; ok=false si alguno es
// ilegible.
func parseDateRange(c *fiber.Ctx) (from, to *time.Time, ok bool) {
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, false
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, false
		}
		to = &t
	}
	return from, to, true
}
