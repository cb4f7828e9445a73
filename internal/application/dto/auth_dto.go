package dto

import "time"

// ConnectRequest body para POST /api/auth/connect (formulario de conexión al backend).
type ConnectRequest struct {
	URL        string `json:"url"`
	DB         string `json:"db"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Role       string `json:"role"` // admin | sales; vacío = sales
	RememberMe bool   `json:"remember_me"`
}

// SessionUser datos de la sesión abierta.
type SessionUser struct {
	Username      string `json:"username"`
	Role          string `json:"role"`
	UID           int    `json:"uid"`
	BackendURL    string `json:"backend_url"`
	ServerVersion string `json:"server_version,omitempty"`
}

// ConnectResponse token de sesión + usuario.
type ConnectResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      SessionUser `json:"user"`
}

// RememberedResponse credenciales recordadas del dispositivo (nunca incluye la contraseña).
type RememberedResponse struct {
	Remembered  bool   `json:"remembered"`
	URL         string `json:"url,omitempty"`
	DB          string `json:"db,omitempty"`
	Username    string `json:"username,omitempty"`
	HasPassword bool   `json:"has_password"`
}
