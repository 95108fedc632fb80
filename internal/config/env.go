package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment. A .env file in
// the working directory is loaded first if present; real environment
// variables win over it.
//
// Recognized variables:
//
//	APTRENT_NODE_URL        — fullnode REST base URL
//	APTRENT_MODULE_ADDRESS  — rental program address
//	APTRENT_POLL_INTERVAL   — reconciliation period, e.g. "10s"
//	APTRENT_KEY_FILE        — local signer seed file
//	APTRENT_WALLET_BACKENDS — comma-separated backend names
//	APTRENT_VERBOSE         — "1"/"true" for debug logging
func parseEnv(cfg *Config) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	cfg.NodeURL = getEnv("APTRENT_NODE_URL", cfg.NodeURL)
	cfg.ModuleAddress = getEnv("APTRENT_MODULE_ADDRESS", cfg.ModuleAddress)
	cfg.KeyFile = getEnv("APTRENT_KEY_FILE", cfg.KeyFile)

	if v := os.Getenv("APTRENT_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.PollInterval = d
		}
	}
	if v := os.Getenv("APTRENT_WALLET_BACKENDS"); v != "" {
		backends := make([]string, 0)
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				backends = append(backends, b)
			}
		}
		if len(backends) > 0 {
			cfg.WalletBackends = backends
		}
	}
	if v := os.Getenv("APTRENT_VERBOSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Verbose = b
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
