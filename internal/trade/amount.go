// Package trade holds the numeric core of the swap flow: turning user intent
// into exact lamport amounts and a per-session prioritization fee.
package trade

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// LamportsPerSol is the fixed smallest-unit scale for SOL.
const LamportsPerSol = 1_000_000_000

var lamportsPerSolDec = decimal.NewFromInt(LamportsPerSol)

// ResolveBuyAmount converts a user-entered SOL quantity into lamports,
// truncating toward zero: floor(q * 1e9).
func ResolveBuyAmount(raw string) (uint64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q is not a number", ErrInvalidInput, raw)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: amount %q is negative", ErrInvalidInput, raw)
	}
	scaled := d.Mul(lamportsPerSolDec).Floor()
	bi := scaled.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("%w: amount %q out of range", ErrInvalidInput, raw)
	}
	return bi.Uint64(), nil
}

// ResolveSellAmount applies a discrete percentage to an on-chain balance:
// floor(balance * percent / 100). Only 50 and 100 are accepted.
func ResolveSellAmount(balance uint64, percent uint64) (uint64, error) {
	if percent != 50 && percent != 100 {
		return 0, fmt.Errorf("%w: percent %d is not one of 50 or 100", ErrInvalidInput, percent)
	}
	return balance * percent / 100, nil
}
