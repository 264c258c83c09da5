package trade

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// AutoFee is the fixed auto-mode prioritization fee: (5_000_000 - 50_000) / 14.
	AutoFee uint64 = 353_571

	feeScale   = 10_000_000_000
	feeOffset  = 50_000
	feeDivisor = 14
)

var feeScaleDec = decimal.NewFromInt(feeScale)

// ComputeFee turns the fee prompt answer into a lamport prioritization fee.
// "a"/"A" selects the auto constant; anything else must parse as a decimal
// number and goes through the same offset/divisor normalization:
// floor((x * 1e10 - 50_000) / 14). The fee is negotiated once per session
// and reused for every swap in it.
func ComputeFee(choice string) (uint64, error) {
	choice = strings.TrimSpace(choice)
	if choice == "a" || choice == "A" {
		return AutoFee, nil
	}
	d, err := decimal.NewFromString(choice)
	if err != nil {
		return 0, fmt.Errorf("%w: fee %q is not a number", ErrInvalidInput, choice)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: fee %q is negative", ErrInvalidInput, choice)
	}
	scaled := d.Mul(feeScaleDec).Floor()
	bi := scaled.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("%w: fee %q out of range", ErrInvalidInput, choice)
	}
	s := bi.Uint64()
	if s < feeOffset {
		return 0, fmt.Errorf("%w: fee %q below the %d offset", ErrInvalidInput, choice, feeOffset)
	}
	return (s - feeOffset) / feeDivisor, nil
}
