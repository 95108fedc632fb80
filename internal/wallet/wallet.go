// Package wallet abstracts the signing authority over the {Address,
// SignAndSubmit} capability pair. Concrete backends are variants behind the
// Signer interface and are selected by configuration, never inspected by
// type.
package wallet

import (
	"context"
	"fmt"

	"github.com/aptrent/aptrent/internal/ledger"
)

// Signer is the identity-provider capability the client depends on.
type Signer interface {
	// Address returns the connected account address, 0x-prefixed.
	Address() string

	// SignAndSubmit signs the entry-function payload and broadcasts it,
	// returning the transaction hash to await finality on.
	SignAndSubmit(ctx context.Context, payload ledger.EntryFunctionPayload) (string, error)
}

// BackendLocalKey signs with an ed25519 key file held by this process.
const BackendLocalKey = "localkey"

// Config lists the signer backends the client supports. It is built once at
// process start and passed in explicitly; there is no ambient registry.
type Config struct {
	Backends []string
	KeyFile  string
}

// Supports reports whether the named backend is enabled.
func (c Config) Supports(backend string) bool {
	for _, b := range c.Backends {
		if b == backend {
			return true
		}
	}
	return false
}

// Connect opens the named backend. The passphrase callback is invoked only
// when the backend needs one, e.g. for a sealed key file.
func Connect(ctx context.Context, cfg Config, backend string, node *ledger.NodeClient, passphrase func() ([]byte, error)) (Signer, error) {
	if !cfg.Supports(backend) {
		return nil, fmt.Errorf("signer backend %q is not enabled", backend)
	}
	switch backend {
	case BackendLocalKey:
		return LoadLocalKey(cfg.KeyFile, node, passphrase)
	default:
		return nil, fmt.Errorf("unknown signer backend %q", backend)
	}
}
