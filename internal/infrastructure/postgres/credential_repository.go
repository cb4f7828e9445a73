package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ascari-panel/internal/domain/entity"
	"github.com/jhoicas/ascari-panel/internal/domain/repository"
	"github.com/jhoicas/ascari-panel/pkg/sealer"
)

var _ repository.CredentialRepository = (*CredentialRepo)(nil)

// CredentialRepo credenciales recordadas; la contraseña se guarda cifrada.
type CredentialRepo struct {
	q      Querier
	sealer *sealer.Sealer
}

// NewCredentialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCredentialRepository(q Querier, s *sealer.Sealer) *CredentialRepo {
	return &CredentialRepo{q: q, sealer: s}
}

// Save inserta o reemplaza las credenciales del dispositivo.
func (r *CredentialRepo) Save(ctx context.Context, rc *entity.RememberedCredentials) error {
	sealed, err := r.sealer.Seal(rc.Credentials.Password)
	if err != nil {
		return fmt.Errorf("cifrar contraseña: %w", err)
	}
	query := `
		INSERT INTO remembered_credentials (device_id, backend_url, backend_db, username, password_sealed, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (device_id) DO UPDATE SET
			backend_url = EXCLUDED.backend_url,
			backend_db = EXCLUDED.backend_db,
			username = EXCLUDED.username,
			password_sealed = EXCLUDED.password_sealed,
			updated_at = EXCLUDED.updated_at`
	_, err = r.q.Exec(ctx, query,
		rc.DeviceID, rc.Credentials.URL, rc.Credentials.DB, rc.Credentials.Username, sealed, rc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save remembered credentials: %w", err)
	}
	return nil
}

// GetByDevice obtiene las credenciales del dispositivo; (nil, nil) si no hay.
func (r *CredentialRepo) GetByDevice(ctx context.Context, deviceID string) (*entity.RememberedCredentials, error) {
	query := `
		SELECT device_id, backend_url, backend_db, username, password_sealed, updated_at
		FROM remembered_credentials WHERE device_id = $1`
	var rc entity.RememberedCredentials
	var sealed string
	err := r.q.QueryRow(ctx, query, deviceID).Scan(
		&rc.DeviceID, &rc.Credentials.URL, &rc.Credentials.DB, &rc.Credentials.Username, &sealed, &rc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get remembered credentials: %w", err)
	}
	password, err := r.sealer.Open(sealed)
	if err != nil {
		// clave rotada: las credenciales ya no sirven
		return nil, nil
	}
	rc.Credentials.Password = password
	return &rc, nil
}

// Delete olvida las credenciales del dispositivo.
func (r *CredentialRepo) Delete(ctx context.Context, deviceID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM remembered_credentials WHERE device_id = $1`, deviceID); err != nil {
		return fmt.Errorf("delete remembered credentials: %w", err)
	}
	return nil
}
