package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/product-catalog/internal/application/dto"
	"github.com/jhoicas/product-catalog/internal/domain"
)

// Mensajes públicos de error de la API (contrato con los clientes existentes).
const (
	MsgMissingFields = "Missing required fields: name, price, and stock are required."
	MsgInvalidBody   = "Invalid request body."
	MsgDuplicateName = "A product with this name already exists."
	MsgInternal      = "Internal Server Error"
)

// writeError traduce un error de dominio a status + dto.ErrorResponse. Nunca serializa la causa.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: MsgMissingFields})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: MsgDuplicateName})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: MsgInternal})
	}
}

// ErrorHandler reemplaza el de Fiber para que 404/405 y pánicos recuperados salgan como dto.ErrorResponse.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_" + strconv.Itoa(fe.Code), Message: fe.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: MsgInternal})
}

