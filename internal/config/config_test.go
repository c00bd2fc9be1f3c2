package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg := Load()

	assert.Equal(t, "caixa-api", cfg.App.Name)
	assert.Equal(t, "America/Sao_Paulo", cfg.App.Timezone)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 48, cfg.Printer.Width)
	assert.Equal(t, "none", cfg.Printer.Type)
	assert.Equal(t, 12*time.Hour, cfg.JWT.ExpiryHours)
	assert.Equal(t, 10*time.Minute, cfg.Report.CacheTTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("PRINTER_TYPE", "network")
	t.Setenv("PRINTER_ADDRESS", "192.168.0.50:9100")
	t.Setenv("ADMIN_MATRICULA", "0001")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, "network", cfg.Printer.Type)
	assert.Equal(t, "192.168.0.50:9100", cfg.Printer.Address)
	assert.Equal(t, "0001", cfg.Admin.Matricula)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "db", Port: "5432", Name: "caixa", User: "u", Password: "p",
		SSLMode: "disable", Timezone: "UTC",
	}
	assert.Equal(t, "host=db user=u password=p dbname=caixa port=5432 sslmode=disable TimeZone=UTC", c.DSN())
}
