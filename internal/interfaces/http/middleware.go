package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/product-catalog/pkg/logger"
)

// HeaderRequestID cabecera de correlación entre cliente, logs y respuesta.
const HeaderRequestID = "X-Request-ID"

// LocalRequestID clave de c.Locals con el id de la petición.
const LocalRequestID = "request_id"

// RequestID reutiliza el X-Request-ID entrante o genera un UUID nuevo.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalRequestID, id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}

// GetRequestID devuelve el id de la petición (después de RequestID).
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}

// RequestLogger registra método, ruta, status y duración de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("request_id", GetRequestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Err(err).
			Msg("petición")
		return err
	}
}
