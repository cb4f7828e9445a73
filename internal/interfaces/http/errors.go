package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ascari-panel/internal/application/dto"
	"github.com/jhoicas/ascari-panel/internal/domain"
)

const msgNotCompleted = "no se pudo completar la operación"

// respondError traduce errores de dominio a HTTP. El detalle técnico solo va al log;
// el cliente recibe mensajes genéricos.
func respondError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	status, code, msg := fiber.StatusInternalServerError, "INTERNAL", msgNotCompleted
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code, msg = fiber.StatusBadRequest, "VALIDATION", "datos inválidos"
	case errors.Is(err, domain.ErrSessionExpired):
		status, code, msg = fiber.StatusUnauthorized, "SESSION_EXPIRED", "la sesión expiró, conéctese de nuevo"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code, msg = fiber.StatusUnauthorized, "UNAUTHORIZED", "no se pudo completar la conexión; revise los datos de acceso"
	case errors.Is(err, domain.ErrForbidden):
		status, code, msg = fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"
	case errors.Is(err, domain.ErrNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"
	case errors.Is(err, domain.ErrEmptyCart):
		status, code, msg = fiber.StatusUnprocessableEntity, "EMPTY_CART", "el carrito está vacío"
	case errors.Is(err, domain.ErrQuoteFinalized):
		status, code, msg = fiber.StatusConflict, "QUOTE_FINALIZED", "la cotización ya fue emitida; inicie una nueva"
	case errors.Is(err, domain.ErrConflict):
		status, code, msg = fiber.StatusConflict, "CONFLICT", msgNotCompleted
	case errors.Is(err, domain.ErrGatewayUnavailable), errors.Is(err, domain.ErrCategoryCycle):
		status, code, msg = fiber.StatusBadGateway, "BACKEND_UNAVAILABLE", "no se pudo completar la operación con el sistema de gestión"
	}

	ev := log.Warn()
	if status >= fiber.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Err(err).Str("method", c.Method()).Str("path", c.Path()).Int("status", status).Msg("petición fallida")

	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
