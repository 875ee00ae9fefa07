package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys de la petición en Fiber.
const (
	LocalUserID    = "user_id"
	LocalRequestID = "request_id"
)

// HeaderUserID identifica a quien contabiliza (auditoría de lotes y documentos).
// La autenticación vive fuera de este servicio; aquí solo se propaga el usuario.
const HeaderUserID = "X-User-ID"

// ActorMiddleware copia el usuario y un ID de petición a c.Locals.
func ActorMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalUserID, strings.TrimSpace(c.Get(HeaderUserID)))
		reqID := c.Get(fiber.HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Locals(LocalRequestID, reqID)
		c.Set(fiber.HeaderXRequestID, reqID)
		return c.Next()
	}
}

// GetUserID devuelve el usuario de la petición (vacío si no vino el header).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRequestID devuelve el ID de la petición.
func GetRequestID(c *fiber.Ctx) string {
	v := c.Locals(LocalRequestID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
