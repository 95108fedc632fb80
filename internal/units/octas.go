// Package units converts between human-entered APT amounts and the ledger's
// integer octa representation. All on-chain fields are u64 octas; amounts are
// carried as decimal strings on the wire because u64 does not survive float64.
package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// OctasPerAPT is the ledger scale factor: 1 APT = 100_000_000 octas.
const OctasPerAPT uint64 = 100_000_000

const fracDigits = 8

var (
	ErrNotANumber      = errors.New("not a decimal number")
	ErrTooManyDecimals = errors.New("more than 8 decimal places")
	ErrOutOfRange      = errors.New("amount out of range")
)

// ToOctas converts a decimal APT amount such as "1.5" to octas.
//
// The conversion is pure integer arithmetic on the digit strings, so every
// amount with at most 8 fraction digits converts exactly. Scaling through a
// float and truncating loses a smallest unit for inputs like "0.29".
func ToOctas(major string) (uint64, error) {
	s := strings.TrimSpace(major)
	if s == "" {
		return 0, ErrNotANumber
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" && fracPart == "" {
		return 0, ErrNotANumber
	}
	if len(fracPart) > fracDigits {
		return 0, fmt.Errorf("%w: %q", ErrTooManyDecimals, major)
	}

	whole := uint64(0)
	if intPart != "" {
		var err error
		whole, err = strconv.ParseUint(intPart, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotANumber, major)
		}
	}

	frac := uint64(0)
	if fracPart != "" {
		padded := fracPart + strings.Repeat("0", fracDigits-len(fracPart))
		var err error
		frac, err = strconv.ParseUint(padded, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotANumber, major)
		}
	}

	if whole > (math.MaxUint64-frac)/OctasPerAPT {
		return 0, fmt.Errorf("%w: %q", ErrOutOfRange, major)
	}
	return whole*OctasPerAPT + frac, nil
}

// FromOctas renders octas as a decimal APT string with trailing fraction
// zeros trimmed, e.g. 150000000 -> "1.5". The result round-trips through
// ToOctas exactly.
func FromOctas(oct uint64) string {
	whole := oct / OctasPerAPT
	frac := oct % OctasPerAPT
	if frac == 0 {
		return strconv.FormatUint(whole, 10)
	}
	fs := strings.TrimRight(fmt.Sprintf("%08d", frac), "0")
	return fmt.Sprintf("%d.%s", whole, fs)
}
