package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"

	"github.com/jhoicas/product-catalog/internal/application/dto"
)

// Health responde siempre 200 mientras el proceso sirva peticiones.
func Health(service string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}

// OpenAPI sirve el documento registrado por swag (paquete docs).
func OpenAPI(c *fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_DOCS", Message: "documentación no registrada"})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.SendString(doc)
}
