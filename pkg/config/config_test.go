package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-inventario/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 5, cfg.Inventory.DefaultRestock)
	assert.Equal(t, 10, cfg.Inventory.DefaultRenew)
	assert.Equal(t, 5*time.Second, cfg.Inventory.OperationTimeout)
	assert.Equal(t, "margin", cfg.Inventory.ProfitabilityStrategy)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Empty(t, cfg.Telemetry.Endpoint)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("INVENTORY_DEFAULT_RESTOCK", "7")
	t.Setenv("INVENTORY_OPERATION_TIMEOUT_SECONDS", "2")
	t.Setenv("INVENTORY_PROFITABILITY_STRATEGY", "margin_ratio")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 7, cfg.Inventory.DefaultRestock)
	assert.Equal(t, 2*time.Second, cfg.Inventory.OperationTimeout)
	assert.Equal(t, "margin_ratio", cfg.Inventory.ProfitabilityStrategy)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "sqlite")
	_, err := config.Load()
	assert.ErrorContains(t, err, "STORE_DRIVER")
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "pos", Password: "p@ss:w/rd", DBName: "pos", SSLMode: "disable"}
	assert.Equal(t, "postgres://pos:p%40ss%3Aw%2Frd@db:5432/pos?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
