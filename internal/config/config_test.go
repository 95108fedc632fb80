package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "https://fullnode.devnet.aptoslabs.com", cfg.NodeURL)
	assert.Equal(t, 10*time.Second, cfg.PollInterval)
	assert.Equal(t, []string{"localkey"}, cfg.WalletBackends)
	assert.Empty(t, cfg.ModuleAddress, "module address has no default on purpose")
}

func TestParseEnv_Overlay(t *testing.T) {
	t.Setenv("APTRENT_NODE_URL", "http://localhost:8080")
	t.Setenv("APTRENT_MODULE_ADDRESS", "0xcafe")
	t.Setenv("APTRENT_POLL_INTERVAL", "3s")
	t.Setenv("APTRENT_WALLET_BACKENDS", "localkey, hardware")
	t.Setenv("APTRENT_VERBOSE", "true")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "http://localhost:8080", cfg.NodeURL)
	assert.Equal(t, "0xcafe", cfg.ModuleAddress)
	assert.Equal(t, 3*time.Second, cfg.PollInterval)
	assert.Equal(t, []string{"localkey", "hardware"}, cfg.WalletBackends)
	assert.True(t, cfg.Verbose)
}

func TestParseEnv_IgnoresBadValues(t *testing.T) {
	t.Setenv("APTRENT_POLL_INTERVAL", "soon")
	t.Setenv("APTRENT_VERBOSE", "maybe")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 10*time.Second, cfg.PollInterval)
	assert.False(t, cfg.Verbose)
}
