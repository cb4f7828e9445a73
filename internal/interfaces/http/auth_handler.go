package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ascari-panel/internal/application/auth"
	"github.com/jhoicas/ascari-panel/internal/application/dto"
)

// AuthHandler maneja conexión al backend, credenciales recordadas y cierre de sesión.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log zerolog.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Connect abre una sesión contra el backend de gestión.
// POST /api/auth/connect
func (h *AuthHandler) Connect(c *fiber.Ctx) error {
	var in dto.ConnectRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	// url y db pueden venir vacíos si el despliegue define ODOO_URL / ODOO_DB
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "username y password son requeridos"})
	}
	out, err := h.uc.Connect(c.Context(), in, GetDeviceID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Remembered credenciales guardadas del dispositivo (sin contraseña).
// GET /api/auth/remembered
func (h *AuthHandler) Remembered(c *fiber.Ctx) error {
	out, err := h.uc.Remembered(c.Context(), GetDeviceID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

type connectRememberedRequest struct {
	Role string `json:"role"`
}

// ConnectRemembered reconecta con las credenciales guardadas.
// POST /api/auth/remembered/connect
func (h *AuthHandler) ConnectRemembered(c *fiber.Ctx) error {
	var in connectRememberedRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	deviceID := GetDeviceID(c)
	if deviceID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: HeaderDeviceID + " requerido"})
	}
	out, err := h.uc.ConnectRemembered(c.Context(), deviceID, in.Role)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Me datos de la sesión.
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	s := GetSession(c)
	if s == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.Me(s.ID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Logout cierra la sesión y olvida las credenciales del dispositivo.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	s := GetSession(c)
	if s == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Logout(c.Context(), s.ID, GetDeviceID(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
