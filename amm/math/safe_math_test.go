package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

func TestAddU64Overflow(t *testing.T) {
	sum, err := AddU64(1, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(3), sum)

	_, err = AddU64(math.MaxUint64, 1)
	require.ErrorIs(t, err, shared.ErrMathOverflow)
}

func TestSubU64Underflow(t *testing.T) {
	diff, err := SubU64(10, 4)
	require.NoError(t, err)
	require.Equal(t, uint64(6), diff)

	_, err = SubU64(4, 10)
	require.ErrorIs(t, err, shared.ErrMathOverflow)
}

func TestMulU64Overflow(t *testing.T) {
	prod, err := MulU64(1<<32, 1<<31)
	require.NoError(t, err)
	require.Equal(t, uint64(1)<<63, prod)

	_, err = MulU64(1<<32, 1<<32)
	require.ErrorIs(t, err, shared.ErrMathOverflow)
}

func TestDivU64ByZero(t *testing.T) {
	_, err := DivU64(1, 0)
	require.ErrorIs(t, err, shared.ErrMathOverflow)

	_, err = RemU64(1, 0)
	require.ErrorIs(t, err, shared.ErrMathOverflow)
}

func TestShiftOutOfRange(t *testing.T) {
	_, err := ShlU64(1, 64)
	require.ErrorIs(t, err, shared.ErrMathOverflow)

	_, err = ShrU64(1, 64)
	require.ErrorIs(t, err, shared.ErrMathOverflow)

	v, err := ShlU64(1, 63)
	require.NoError(t, err)
	require.Equal(t, uint64(1)<<63, v)
}

func TestMulDiv64Rounding(t *testing.T) {
	down, err := MulDiv64(10, 7, 3, shared.RoundingDown)
	require.NoError(t, err)
	require.Equal(t, uint64(23), down)

	up, err := MulDiv64(10, 7, 3, shared.RoundingUp)
	require.NoError(t, err)
	require.Equal(t, uint64(24), up)

	exact, err := MulDiv64(10, 6, 3, shared.RoundingUp)
	require.NoError(t, err)
	require.Equal(t, uint64(20), exact)
}

func TestMulDiv64WidensBeforeMultiply(t *testing.T) {
	// x*y overflows 64 bits but the quotient fits
	out, err := MulDiv64(math.MaxUint64, 1000, 100_000, shared.RoundingDown)
	require.NoError(t, err)
	require.Equal(t, uint64(184467440737095516), out)
}

func TestMulDiv64ResultTooWide(t *testing.T) {
	_, err := MulDiv64(math.MaxUint64, 2, 1, shared.RoundingDown)
	require.ErrorIs(t, err, shared.ErrTypeCastFailed)
}
