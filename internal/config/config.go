// Package config assembles the client's runtime settings from defaults, a
// .env file / environment variables, and command-line flags, in that order
// of precedence. The result is an explicit object handed to the components
// at start; nothing here is global mutable state.
package config

import "time"

// Config holds runtime settings for the rental client.
//
// ModuleAddress is the account the rental program is published under; it is
// a hard precondition for any submit or fetch operation and deliberately has
// no default.
type Config struct {
	// NodeURL is the base URL of the fullnode REST API.
	NodeURL string

	// ModuleAddress is the 0x-prefixed address of the rental program.
	ModuleAddress string

	// PollInterval is the reconciliation period for the listing snapshot.
	PollInterval time.Duration

	// KeyFile is the path of the local signer's ed25519 seed file.
	KeyFile string

	// WalletBackends lists the enabled signer backends.
	WalletBackends []string

	// Verbose switches diagnostic logging to debug level.
	Verbose bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.NodeURL = "https://fullnode.devnet.aptoslabs.com"
	c.PollInterval = 10 * time.Second
	c.KeyFile = "wallet.key"
	c.WalletBackends = []string{"localkey"}
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including a .env file if present) and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
