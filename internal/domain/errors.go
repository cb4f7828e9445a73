package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrEmptyCart          = errors.New("el carrito está vacío")
	ErrQuoteFinalized     = errors.New("la cotización ya fue emitida; inicie una nueva")
	ErrCategoryCycle      = errors.New("el árbol de categorías contiene un ciclo")
	ErrGatewayUnavailable = errors.New("backend de gestión no disponible")
	ErrSessionExpired     = errors.New("sesión expirada")
)
