package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pasteleria-api/internal/application/dto"
)

// validate instancia compartida de go-playground/validator; es segura para
// uso concurrente y cachea la metadata de structs.
var validate = validator.New()

// decodeBody hace BodyParser + validación de tags sobre el request.
// Devuelve el ErrorResponse a responder con 400, o nil si el body es válido.
func decodeBody(c *fiber.Ctx, out any) *dto.ErrorResponse {
	if err := c.BodyParser(out); err != nil {
		return &dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}
	}
	if err := validate.Struct(out); err != nil {
		return &dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	}
	return nil
}
