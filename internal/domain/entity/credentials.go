package entity

import "time"

// Credentials datos de acceso al backend de gestión tal como los escribe el usuario.
type Credentials struct {
	URL      string
	DB       string
	Username string
	Password string
}

// RememberedCredentials credenciales guardadas por dispositivo ("Beni Hatırla").
type RememberedCredentials struct {
	DeviceID    string
	Credentials Credentials
	UpdatedAt   time.Time
}

// Roles del panel.
const (
	RoleAdmin = "admin"
	RoleSales = "sales"
)

// ValidRole indica si el rol existe en el panel.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSales
}
