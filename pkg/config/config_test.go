package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/helpdesk-pro/pkg/config"
)

// Caso 1: sin env vars, Load entrega los defaults de desarrollo.
func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 60*time.Second, cfg.Provisioning.Timeout)
}

// Caso 2: las env vars tienen prioridad sobre los defaults.
func TestLoad_EnvVarsGanan(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("PROVISIONING_TIMEOUT_SECONDS", "90")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 90*time.Second, cfg.Provisioning.Timeout)
}

// Caso 3: DATABASE_URL completo gana sobre los campos sueltos.
func TestConnectionString_DatabaseURLGana(t *testing.T) {
	c := config.DBConfig{
		DatabaseURL: "postgresql://app:secret@db:5432/helpdesk?sslmode=require",
		Host:        "ignorado",
	}
	assert.Equal(t, "postgresql://app:secret@db:5432/helpdesk?sslmode=require", c.ConnectionString())
}

// Caso 4: el DSN construido escapa los caracteres especiales de la contraseña.
func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word#1",
		DBName:   "helpdesk_pro",
		SSLMode:  "disable",
	}
	dsn := c.DSN()
	assert.Contains(t, dsn, "postgres://postgres:")
	assert.Contains(t, dsn, "@localhost:5432/helpdesk_pro?sslmode=disable")
	assert.NotContains(t, dsn, "p@ss/word#1", "la contraseña debe ir URL-encoded")
}
