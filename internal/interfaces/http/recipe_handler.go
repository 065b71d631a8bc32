package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pasteleria-api/internal/application/dto"
	"github.com/jhoicas/Pasteleria-api/internal/application/recipes"
)

// RecipeHandler maneja las peticiones HTTP de recetas y su costeo (protegido).
type RecipeHandler struct {
	uc  *recipes.UseCase
	pdf *recipes.PDFUseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *recipes.UseCase, pdf *recipes.PDFUseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc, pdf: pdf}
}

func toCreateInput(in dto.CreateRecipeRequest, userID string) recipes.CreateInput {
	items := make([]recipes.ItemInput, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, recipes.ItemInput{
			Type:         item.Type,
			IngredientID: item.IngredientID,
			Quantity:     item.Quantity,
			Unit:         item.Unit,
			SubRecipeID:  item.SubRecipeID,
			Portions:     item.Portions,
			Notes:        item.Notes,
		})
	}
	steps := make([]recipes.StepInput, 0, len(in.Instructions))
	for i, step := range in.Instructions {
		steps = append(steps, recipes.StepInput{
			StepNumber:  i + 1,
			Instruction: step.Instruction,
			TimeMinutes: step.TimeMinutes,
			Notes:       step.Notes,
		})
	}
	return recipes.CreateInput{
		Name:            in.Name,
		Description:     in.Description,
		Category:        in.Category,
		Difficulty:      in.Difficulty,
		GeneratedAmount: in.GeneratedAmount,
		GeneratedUnit:   in.GeneratedUnit,
		Servings:        in.Servings,
		Items:           items,
		Instructions:    steps,
		Notes:           in.Notes,
		UserID:          userID,
	}
}

// Create godoc
// @Summary      Crear receta
// @Description  Rechaza nombres duplicados (comparación sin acentos) y ciclos de sub-recetas.
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecipeRequest  true  "Datos de la receta"
// @Success      201   {object}  dto.RecipeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/recipes [post]
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRecipeRequest
	if resp := decodeBody(c, &in); resp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	recipe, err := h.uc.Create(c.Context(), toCreateInput(in, GetUserID(c)))
	if err != nil {
		if resp := mapDomainError(c, err); resp != nil {
			return resp
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToRecipeResponse(recipe))
}

// List godoc
// @Summary      Listar recetas activas
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Filtrar por categoría"
// @Success      200  {array}  dto.RecipeResponse
// @Router       /api/recipes [get]
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Query("category"))
	if err != nil {
		return internalError(c, err)
	}
	out := make([]dto.RecipeResponse, 0, len(list))
	for _, recipe := range list {
		out = append(out, dto.ToRecipeResponse(recipe))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener receta por ID
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la receta"
// @Success      200  {object}  dto.RecipeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [get]
func (h *RecipeHandler) GetByID(c *fiber.Ctx) error {
	recipe, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		if resp := mapDomainError(c, err); resp != nil {
			return resp
		}
		return internalError(c, err)
	}
	return c.JSON(dto.ToRecipeResponse(recipe))
}

// Update godoc
// @Summary      Actualizar receta (reemplazo completo de ítems y pasos)
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la receta"
// @Param        body  body  dto.CreateRecipeRequest  true  "Datos de la receta"
// @Success      200   {object}  dto.RecipeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [put]
func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateRecipeRequest
	if resp := decodeBody(c, &in); resp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	recipe, err := h.uc.Update(c.Context(), recipes.UpdateInput{
		ID:          c.Params("id"),
		CreateInput: toCreateInput(in, GetUserID(c)),
	})
	if err != nil {
		if resp := mapDomainError(c, err); resp != nil {
			return resp
		}
		return internalError(c, err)
	}
	return c.JSON(dto.ToRecipeResponse(recipe))
}

// Delete godoc
// @Summary      Desactivar receta (borrado lógico)
// @Tags         recipes
// @Security     Bearer
// @Param        id  path  string  true  "ID de la receta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [delete]
func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if resp := mapDomainError(c, err); resp != nil {
			return resp
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cost godoc
// @Summary      Desglose de costos de la receta
// @Description  Resuelve ingredientes y sub-recetas recursivamente; los ítems
//
//	no resolubles se marcan y el total queda como piso (incomplete).
//
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la receta"
// @Success      200  {object}  costing.CostBreakdown
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id}/cost [get]
func (h *RecipeHandler) Cost(c *fiber.Ctx) error {
	breakdown, err := h.uc.Cost(c.Context(), c.Params("id"))
	if err != nil {
		if resp := mapDomainError(c, err); resp != nil {
			return resp
		}
		return internalError(c, err)
	}
	return c.JSON(breakdown)
}

// RefreshCosts godoc
// @Summary      Recalcular y persistir el cache de costos de la receta
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la receta"
// @Success      200  {object}  costing.CostBreakdown
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id}/refresh-costs [post]
func (h *RecipeHandler) RefreshCosts(c *fiber.Ctx) error {
	breakdown, err := h.uc.RefreshCosts(c.Context(), c.Params("id"))
	if err != nil {
		if resp := mapDomainError(c, err); resp != nil {
			return resp
		}
		return internalError(c, err)
	}
	return c.JSON(breakdown)
}

// Duplicate godoc
// @Summary      Duplicar receta con otro nombre
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la receta original"
// @Param        body  body  dto.DuplicateRecipeRequest  true  "Nombre de la copia"
// @Success      201   {object}  dto.RecipeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/recipes/{id}/duplicate [post]
func (h *RecipeHandler) Duplicate(c *fiber.Ctx) error {
	var in dto.DuplicateRecipeRequest
	if resp := decodeBody(c, &in); resp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	recipe, err := h.uc.Duplicate(c.Context(), c.Params("id"), in.Name, GetUserID(c))
	if err != nil {
		if resp := mapDomainError(c, err); resp != nil {
			return resp
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToRecipeResponse(recipe))
}

// CostSheetPDF godoc
// @Summary      Ficha técnica de costos en PDF
// @Tags         recipes
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la receta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id}/cost-sheet.pdf [get]
func (h *RecipeHandler) CostSheetPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	pdfBytes, err := h.pdf.CostSheet(c.Context(), id)
	if err != nil {
		if resp := mapDomainError(c, err); resp != nil {
			return resp
		}
		return internalError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="ficha-costos-%s.pdf"`, id))
	return c.Send(pdfBytes)
}
