package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imprentacamiri/imprenta-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "imprenta-api", cfg.App.Name)
	assert.Equal(t, config.StorageDriverPostgres, cfg.App.StorageDriver)
	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.Equal(t, "@gmail.com", cfg.Rules.UserEmailDomain)
	assert.Equal(t, 30, cfg.Reset.TokenTTLMinutes)
	assert.False(t, cfg.SMTP.Enabled())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("SMTP_HOST", "smtp.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8081", cfg.HTTP.Addr())
	assert.Equal(t, config.StorageDriverMemory, cfg.App.StorageDriver)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.InDelta(t, 2.5, cfg.RateLimit.RPS, 0.0001)
	assert.True(t, cfg.SMTP.Enabled())
}

func TestLoad_SinSecretoJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_DriverDesconocido(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("STORAGE_DRIVER", "mongo")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "imprenta", Password: "p@ss:word", DBName: "imprenta", SSLMode: "disable"}

	assert.Equal(t, "postgres://imprenta:p%40ss%3Aword@db:5432/imprenta?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
