package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/torneos-admin-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("IDENTITY_PROVIDER", "")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, 4, cfg.Provisioning.BulkWorkers)
	assert.Equal(t, 5, cfg.Provisioning.PublicRoleID)
}

func TestLoad_GoTrueSinClaveFalla(t *testing.T) {
	t.Setenv("IDENTITY_PROVIDER", "gotrue")
	t.Setenv("SUPABASE_URL", "https://demo.supabase.co")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ProveedorDesconocido(t *testing.T) {
	t.Setenv("IDENTITY_PROVIDER", "ldap")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{
		Host: "db", Port: 5432, User: "postgres", Password: "p@ss:w/rd", DBName: "torneos", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://postgres:p%40ss%3Aw%2Frd@db:5432/torneos?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgresql://u:p@h:6543/x"
	assert.Equal(t, "postgresql://u:p@h:6543/x", c.ConnectionString())
}
