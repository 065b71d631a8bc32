package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pasteleria-api/internal/application/dto"
	"github.com/jhoicas/Pasteleria-api/internal/application/suppliers"
)

// SupplierHandler maneja las peticiones HTTP de proveedores (protegido).
type SupplierHandler struct {
	uc *suppliers.UseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *suppliers.UseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

func toSupplierInput(in dto.CreateSupplierRequest) suppliers.Input {
	return suppliers.Input{
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Rating:        in.Rating,
		Categories:    in.Categories,
		Notes:         in.Notes,
	}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  entity.Supplier
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if resp := decodeBody(c, &in); resp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	supplier, err := h.uc.Create(c.Context(), toSupplierInput(in))
	if err != nil {
		if resp := mapDomainError(c, err); resp != nil {
			return resp
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

// List godoc
// @Summary      Listar proveedores activos
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Supplier
// @Router       /api/suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener proveedor por ID
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  entity.Supplier
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	supplier, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		if resp := mapDomainError(c, err); resp != nil {
			return resp
		}
		return internalError(c, err)
	}
	return c.JSON(supplier)
}

// Update godoc
// @Summary      Actualizar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proveedor"
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      200   {object}  entity.Supplier
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [put]
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if resp := decodeBody(c, &in); resp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	supplier, err := h.uc.Update(c.Context(), c.Params("id"), toSupplierInput(in))
	if err != nil {
		if resp := mapDomainError(c, err); resp != nil {
			return resp
		}
		return internalError(c, err)
	}
	return c.JSON(supplier)
}

// Delete godoc
// @Summary      Desactivar proveedor (borrado lógico)
// @Tags         suppliers
// @Security     Bearer
// @Param        id  path  string  true  "ID del proveedor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if resp := mapDomainError(c, err); resp != nil {
			return resp
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
