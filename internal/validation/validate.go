// Package validation normalizes raw user input into the ledger's numeric
// domain. Everything here runs before any network call; a rejection never
// reaches the submission pipeline.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aptrent/aptrent/internal/faults"
	"github.com/aptrent/aptrent/internal/units"
)

// Sanity bounds in whole APT. They exist to catch unit-entry mistakes, such
// as typing an octa amount into an APT field, not to encode a ledger limit.
const (
	MaxDailyRateAPT uint64 = 100_000
	MaxDepositAPT   uint64 = 1_000_000
)

// MaxRentalDays caps a single rental period.
const MaxRentalDays uint64 = 365

// Listing is a validated, ledger-ready listing request. Amounts are octas.
type Listing struct {
	Name          string
	DailyRate     uint64
	DepositAmount uint64
}

// ListingInput validates and normalizes the three raw strings of a listing
// form. All rejections wrap faults.ErrValidation so the classifier passes
// the message through to the user unchanged.
func ListingInput(name, dailyRate, deposit string) (*Listing, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: equipment name is required", faults.ErrValidation)
	}
	rate, err := amount("daily rate", dailyRate, MaxDailyRateAPT)
	if err != nil {
		return nil, err
	}
	dep, err := amount("deposit", deposit, MaxDepositAPT)
	if err != nil {
		return nil, err
	}
	return &Listing{Name: name, DailyRate: rate, DepositAmount: dep}, nil
}

// RentalDays validates the rental period entered by the user.
func RentalDays(raw string) (uint64, error) {
	days, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || days < 1 || days > MaxRentalDays {
		return 0, fmt.Errorf("%w: rental days must be a whole number between 1 and %d", faults.ErrValidation, MaxRentalDays)
	}
	return days, nil
}

func amount(field, raw string, maxAPT uint64) (uint64, error) {
	oct, err := units.ToOctas(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", faults.ErrValidation, field, strings.TrimSpace(raw))
	}
	if oct == 0 {
		return 0, fmt.Errorf("%w: %s must be greater than 0", faults.ErrValidation, field)
	}
	if oct > maxAPT*units.OctasPerAPT {
		return 0, fmt.Errorf("%w: %s exceeds the maximum of %d APT", faults.ErrValidation, field, maxAPT)
	}
	return oct, nil
}
