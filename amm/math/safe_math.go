package math

import (
	"math/big"

	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

// Checked uint64 arithmetic. Every faulting path collapses to
// shared.ErrMathOverflow; there is no silent wraparound anywhere in the
// engine.

func AddU64(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, shared.ErrMathOverflow
	}
	return sum, nil
}

func SubU64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, shared.ErrMathOverflow
	}
	return a - b, nil
}

func MulU64(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	prod := a * b
	if prod/a != b {
		return 0, shared.ErrMathOverflow
	}
	return prod, nil
}

func DivU64(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, shared.ErrMathOverflow
	}
	return a / b, nil
}

func RemU64(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, shared.ErrMathOverflow
	}
	return a % b, nil
}

func ShlU64(a uint64, offset uint) (uint64, error) {
	if offset >= 64 {
		return 0, shared.ErrMathOverflow
	}
	return a << offset, nil
}

func ShrU64(a uint64, offset uint) (uint64, error) {
	if offset >= 64 {
		return 0, shared.ErrMathOverflow
	}
	return a >> offset, nil
}

// MulDiv64 computes x*y/denominator for two 64-bit operands, widening to
// a big integer before the multiply. The rounding mode is chosen by the
// caller: round up for amounts owed to the protocol, round down for
// amounts owed to the user.
func MulDiv64(x, y, denominator uint64, rounding shared.Rounding) (uint64, error) {
	if denominator == 0 {
		return 0, shared.ErrMathOverflow
	}
	prod := new(big.Int).Mul(new(big.Int).SetUint64(x), new(big.Int).SetUint64(y))
	denom := new(big.Int).SetUint64(denominator)
	if rounding == shared.RoundingUp {
		prod.Add(prod, new(big.Int).Sub(denom, big.NewInt(1)))
	}
	return CastU64(prod.Div(prod, denom))
}
