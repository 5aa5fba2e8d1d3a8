package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 0.13, cfg.POS.TaxRate)
	assert.Equal(t, 0.95, cfg.Payment.SuccessRate)
	assert.Equal(t, 2*time.Second, cfg.Payment.VerifyDelay)
	assert.Equal(t, 7, cfg.Forecast.WindowDays)
	assert.Equal(t, 1.2, cfg.Forecast.SafetyBuffer)
	assert.Equal(t, 60, cfg.Forecast.ConfidenceFloor)
	assert.Equal(t, 95, cfg.Forecast.ConfidenceCeil)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("KIRANA_POS_TAX_RATE", "0.1")
	t.Setenv("KIRANA_PAYMENT_VERIFY_DELAY", "10ms")
	t.Setenv("KIRANA_STORE_DRIVER", "redis")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 0.1, cfg.POS.TaxRate)
	assert.Equal(t, 10*time.Millisecond, cfg.Payment.VerifyDelay)
	assert.Equal(t, "redis", cfg.Store.Driver)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kirana.yaml")
	content := "server:\n  port: 9090\npayment:\n  success_rate: 0.5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 0.5, cfg.Payment.SuccessRate)
}

func TestLoad_RejectsZeroSummaryIntervalFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("KIRANA_NOTIFY_SUMMARY_EVERY", "0s")

	_, err := Load("")
	assert.ErrorContains(t, err, "notify.summary_every")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	base, err := Load("")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown driver", func(c *Config) { c.Store.Driver = "sqlite" }},
		{"postgres without url", func(c *Config) { c.Store.Driver = "postgres" }},
		{"tax rate above one", func(c *Config) { c.POS.TaxRate = 1.5 }},
		{"negative success rate", func(c *Config) { c.Payment.SuccessRate = -0.1 }},
		{"floor above ceiling", func(c *Config) { c.Forecast.ConfidenceFloor = 99 }},
		{"zero forecast window", func(c *Config) { c.Forecast.WindowDays = 0 }},
		{"zero summary interval", func(c *Config) { c.Notify.SummaryEvery = 0 }},
		{"negative summary interval", func(c *Config) { c.Notify.SummaryEvery = -time.Minute }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
