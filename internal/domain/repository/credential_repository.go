package repository

import (
	"context"

	"github.com/jhoicas/ascari-panel/internal/domain/entity"
)

// CredentialRepository puerto de persistencia de las credenciales recordadas por dispositivo.
// La implementación cifra la contraseña; el dominio siempre la ve en claro.
type CredentialRepository interface {
	Save(ctx context.Context, rc *entity.RememberedCredentials) error
	// GetByDevice retorna (nil, nil) si el dispositivo no tiene credenciales guardadas.
	GetByDevice(ctx context.Context, deviceID string) (*entity.RememberedCredentials, error)
	Delete(ctx context.Context, deviceID string) error
}
