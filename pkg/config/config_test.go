package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-ledger/pkg/config"
)

func TestLoad_SinBaseDeDatosUsaMemoria(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("STORE_DRIVER", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoreMemory, cfg.Store.Driver)
	assert.False(t, cfg.Ledger.AllowNegativeStock)
}

func TestLoad_ConDatabaseURLUsaPostgres(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/ledger?sslmode=disable")
	t.Setenv("STORE_DRIVER", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StorePostgres, cfg.Store.Driver)
	assert.Equal(t, "postgres://u:p@localhost:5432/ledger?sslmode=disable", cfg.DB.ConnectionString())
}

func TestLoad_VariablesDelLibro(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LEDGER_ALLOW_NEGATIVE_STOCK", "true")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Ledger.AllowNegativeStock)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "ledger", Password: "p@ss/word", DBName: "retail", SSLMode: "disable"}
	assert.Equal(t, "postgres://ledger:p%40ss%2Fword@db:5432/retail?sslmode=disable", db.DSN())
}
