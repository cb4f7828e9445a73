package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ascari-panel/pkg/config"
)

func TestNewPoolConfig_PoolChicoParaCredenciales(t *testing.T) {
	cfg, err := newPoolConfig(config.DBConfig{
		Host: "db.internal", Port: 5433, User: "panel", Password: "p@ss:w/rd", DBName: "ascari_panel", SSLMode: "disable",
	})
	require.NoError(t, err)

	assert.Equal(t, int32(4), cfg.MaxConns)
	assert.Equal(t, int32(0), cfg.MinConns)
	assert.Equal(t, 5*time.Minute, cfg.MaxConnIdleTime)
	assert.Equal(t, 5*time.Second, cfg.ConnConfig.ConnectTimeout)
	assert.Equal(t, "db.internal", cfg.ConnConfig.Host, "el host no se reescribe a una IP")
	assert.Equal(t, uint16(5433), cfg.ConnConfig.Port)
	assert.Equal(t, "p@ss:w/rd", cfg.ConnConfig.Password)
	assert.Equal(t, "ascari-panel", cfg.ConnConfig.RuntimeParams["application_name"])
	assert.Nil(t, cfg.AfterConnect)
}

func TestNewPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	cfg, err := newPoolConfig(config.DBConfig{
		DatabaseURL: "postgres://u:p@pg.example.com:6543/panel?sslmode=require",
		Host:        "ignorado",
	})
	require.NoError(t, err)
	assert.Equal(t, "pg.example.com", cfg.ConnConfig.Host)
	assert.Equal(t, "panel", cfg.ConnConfig.Database)
}

func TestNewPoolConfig_DSNInvalido(t *testing.T) {
	_, err := newPoolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@host:notaport/db"})
	assert.Error(t, err)
}
