package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/torneos-admin-api/pkg/config"
)

func TestPoolConfigFor_DSNYLimites(t *testing.T) {
	cfg, err := poolConfigFor(config.DBConfig{
		Host: "127.0.0.1", Port: 5432, User: "postgres", Password: "p@ss", DBName: "torneos", SSLMode: "disable",
		MaxConns: 7, MinConns: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(7), cfg.MaxConns)
	assert.Equal(t, int32(1), cfg.MinConns)
	assert.Equal(t, "127.0.0.1", cfg.ConnConfig.Host)
	assert.Equal(t, "torneos", cfg.ConnConfig.Database)
	assert.Equal(t, "p@ss", cfg.ConnConfig.Password)
	assert.NotNil(t, cfg.AfterConnect)
}

func TestPoolConfigFor_DatabaseURLConIP(t *testing.T) {
	cfg, err := poolConfigFor(config.DBConfig{
		DatabaseURL: "postgresql://u:p@127.0.0.1:6543/postgres?sslmode=disable",
		MaxConns:    3,
	})
	require.NoError(t, err)

	assert.Equal(t, uint16(6543), cfg.ConnConfig.Port)
	assert.Equal(t, int32(3), cfg.MaxConns)
}

func TestPoolConfigFor_URLInvalida(t *testing.T) {
	_, err := poolConfigFor(config.DBConfig{DatabaseURL: "postgres://u:p@127.0.0.1:notaport/x", MaxConns: 1})
	assert.Error(t, err)
}
