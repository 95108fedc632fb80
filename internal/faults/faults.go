// Package faults classifies the heterogeneous failures produced by wallet,
// network and ledger interactions into a small closed set of user-actionable
// categories. Classification is pure: no state, no I/O.
package faults

import (
	"errors"
	"strings"
)

// Category identifies one failure class. The set is closed; anything that
// does not match a known signal falls back to CategoryUnknown.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryValidation
	CategoryIdentity
	CategoryConnectivity
	CategoryFunds
	CategoryRejection
	CategoryConflict
	CategorySimulation
)

func (c Category) String() string {
	switch c {
	case CategoryValidation:
		return "validation"
	case CategoryIdentity:
		return "identity"
	case CategoryConnectivity:
		return "connectivity"
	case CategoryFunds:
		return "funds"
	case CategoryRejection:
		return "rejection"
	case CategoryConflict:
		return "conflict"
	case CategorySimulation:
		return "simulation"
	default:
		return "unknown"
	}
}

// Sentinels raised locally, before any ledger interaction. Matched with
// errors.Is so wrapped variants classify correctly.
var (
	// ErrValidation marks input rejected before any network call. The
	// wrapping message is shown to the user as-is.
	ErrValidation = errors.New("validation failed")

	// ErrNoWallet means no signer is attached.
	ErrNoWallet = errors.New("wallet not connected")

	// ErrUnavailable means the node could not be reached at all.
	ErrUnavailable = errors.New("node unreachable")
)

// Fault is a classified failure. Message is safe to show to the end user;
// Err keeps the raw diagnostic for developer-facing logs only.
type Fault struct {
	Category Category
	Message  string
	Err      error
}

func (f Fault) Error() string { return f.Message }

func (f Fault) Unwrap() error { return f.Err }

// Classify maps a raw error from the signing, network or ledger layer to a
// Fault. Matching order is fixed and total: a balance shortfall wins over any
// other signal present in the same message, then wallet rejection, then the
// local sentinels, then ledger-side conflicts and simulation failures.
func Classify(err error) Fault {
	if err == nil {
		return Fault{}
	}
	if f, ok := err.(Fault); ok {
		return f
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "insufficient balance"):
		return Fault{CategoryFunds, "Insufficient balance to perform this transaction", err}
	case strings.Contains(msg, "rejected"), strings.Contains(msg, "declined"):
		return Fault{CategoryRejection, "Transaction rejected by wallet", err}
	case errors.Is(err, ErrValidation):
		return Fault{CategoryValidation, err.Error(), err}
	case errors.Is(err, ErrNoWallet):
		return Fault{CategoryIdentity, "Please connect your wallet first", err}
	case errors.Is(err, ErrUnavailable):
		return Fault{CategoryConnectivity, "Cannot reach the network, please retry", err}
	case strings.Contains(msg, "cannot borrow"), strings.Contains(msg, "already rented"):
		return Fault{CategoryConflict, "Equipment is already rented or not available", err}
	case strings.Contains(msg, "simulation failed"):
		return Fault{CategorySimulation, "Transaction simulation failed. Check that your balance covers rent and deposit", err}
	default:
		return Fault{CategoryUnknown, "Operation failed, please try again", err}
	}
}
