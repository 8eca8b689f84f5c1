package math

import (
	"errors"
	"fmt"
	gomath "math"

	"bankgo/constants"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount   = errors.New("amount is negative")
	ErrFractionalAmount = errors.New("amount is finer than one lamport")
	ErrAmountOverflow   = errors.New("amount does not fit in u64 lamports")
)

var maxLamports = decimal.NewFromUint64(gomath.MaxUint64)

// SolToLamports converts exactly; amounts below one lamport are rejected rather than rounded.
func SolToLamports(sol decimal.Decimal) (uint64, error) {
	if sol.IsNegative() {
		return 0, fmt.Errorf("%w: %s", ErrNegativeAmount, sol)
	}
	lamports := sol.Mul(constants.LAMPORTS_PRECISION)
	if !lamports.Equal(lamports.Truncate(0)) {
		return 0, fmt.Errorf("%w: %s SOL", ErrFractionalAmount, sol)
	}
	if lamports.GreaterThan(maxLamports) {
		return 0, fmt.Errorf("%w: %s SOL", ErrAmountOverflow, sol)
	}
	return lamports.BigInt().Uint64(), nil
}

func ParseSol(sol string) (uint64, error) {
	amount, err := decimal.NewFromString(sol)
	if err != nil {
		return 0, fmt.Errorf("parse SOL amount %q: %w", sol, err)
	}
	return SolToLamports(amount)
}

func LamportsToSol(lamports uint64) decimal.Decimal {
	return decimal.NewFromUint64(lamports).Div(constants.LAMPORTS_PRECISION)
}

func FormatSol(lamports uint64) string {
	return LamportsToSol(lamports).String() + " SOL"
}

// DefaultAmount is DEFAULT_AMOUNT_SOL in lamports.
func DefaultAmount() uint64 {
	lamports, err := ParseSol(constants.DEFAULT_AMOUNT_SOL)
	if err != nil {
		panic(err)
	}
	return lamports
}
