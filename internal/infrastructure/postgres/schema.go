package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema tablas propias del panel. El catálogo, los clientes y las cotizaciones viven en el
// backend de gestión; aquí solo quedan las credenciales recordadas por dispositivo.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS remembered_credentials (
		device_id       TEXT PRIMARY KEY,
		backend_url     TEXT NOT NULL,
		backend_db      TEXT NOT NULL,
		username        TEXT NOT NULL,
		password_sealed TEXT NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS remembered_credentials_updated_at_idx
		ON remembered_credentials (updated_at)`,
}

// EnsureSchema crea las tablas si no existen, todo en una transacción.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return NewTxRunner(pool).Run(ctx, func(q Querier) error {
		for _, stmt := range schema {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("ensure schema: %w", err)
			}
		}
		return nil
	})
}
