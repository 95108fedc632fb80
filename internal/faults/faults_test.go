package faults

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Categories(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"funds", errors.New("API error: insufficient balance for transaction fee"), CategoryFunds},
		{"rejection", errors.New("user rejected the request"), CategoryRejection},
		{"rejection declined", errors.New("signing declined"), CategoryRejection},
		{"validation passthrough", fmt.Errorf("%w: daily rate must be greater than 0", ErrValidation), CategoryValidation},
		{"identity", fmt.Errorf("submit: %w", ErrNoWallet), CategoryIdentity},
		{"connectivity", fmt.Errorf("fetching listings: %w", ErrUnavailable), CategoryConnectivity},
		{"conflict", errors.New("Move abort: Cannot borrow mutable reference"), CategoryConflict},
		{"simulation", errors.New("transaction simulation failed: out of gas"), CategorySimulation},
		{"fallback", errors.New("something odd happened"), CategoryUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Classify(tt.err)
			assert.Equal(t, tt.want, f.Category)
			assert.NotEmpty(t, f.Message)
			// Raw diagnostic is always retained for logging.
			require.ErrorIs(t, f, tt.err)
		})
	}
}

func TestClassify_FundsWinsOverOtherSignals(t *testing.T) {
	// Priority order is total: a balance shortfall beats every other
	// substring present in the same message.
	err := errors.New("simulation failed: insufficient balance, request rejected, cannot borrow")
	f := Classify(err)
	assert.Equal(t, CategoryFunds, f.Category)
}

func TestClassify_ValidationMessagePassesThrough(t *testing.T) {
	err := fmt.Errorf("%w: rental days must be a whole number between 1 and 365", ErrValidation)
	f := Classify(err)
	assert.Equal(t, CategoryValidation, f.Category)
	assert.Equal(t, err.Error(), f.Message)
}

func TestClassify_NilAndIdempotent(t *testing.T) {
	assert.Equal(t, Fault{}, Classify(nil))

	// Re-classifying an already classified fault keeps the original category.
	f := Classify(errors.New("user rejected the request"))
	assert.Equal(t, f, Classify(f))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "funds", CategoryFunds.String())
	assert.Equal(t, "unknown", Category(99).String())
}
