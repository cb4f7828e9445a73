package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ascari-panel/internal/application/auth"
	"github.com/jhoicas/ascari-panel/internal/application/dto"
	"github.com/jhoicas/ascari-panel/internal/domain"
)

// Locals keys para la sesión y el rol en Fiber.
const (
	LocalSession = "session"
	LocalRole    = "role"
)

// HeaderDeviceID identifica el dispositivo para las credenciales recordadas.
const HeaderDeviceID = "X-Device-ID"

// sessionResolver lo implementa *auth.AuthUseCase.
type sessionResolver interface {
	Resolve(token string) (*auth.Session, error)
}

// AuthMiddleware valida el Bearer Token, resuelve la sesión viva y la deja en c.Locals.
func AuthMiddleware(resolver sessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		session, err := resolver.Resolve(tokenString)
		if err != nil {
			if errors.Is(err, domain.ErrSessionExpired) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "la sesión expiró, conéctese de nuevo"})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalSession, session)
		c.Locals(LocalRole, session.Role)
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto (después del middleware de auth).
func GetSession(c *fiber.Ctx) *auth.Session {
	s, _ := c.Locals(LocalSession).(*auth.Session)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetDeviceID identificador del dispositivo enviado por el shell.
func GetDeviceID(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Get(HeaderDeviceID))
}
