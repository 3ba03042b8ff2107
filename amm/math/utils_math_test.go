package math

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

func TestSqrtExact(t *testing.T) {
	cases := []struct {
		in   int64
		want int64
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{4, 2},
		{100, 10},
		{101, 10},
		{1_000_000_000_000, 1_000_000},
	}
	for _, tc := range cases {
		got, err := Sqrt(big.NewInt(tc.in))
		require.NoError(t, err)
		require.Equal(t, big.NewInt(tc.want), got, "sqrt(%d)", tc.in)
	}
}

func TestSqrtOneBelowSquareDoesNotConverge(t *testing.T) {
	// v = n^2 - 1 has no fixed point under the integer Newton step: the
	// iteration bounces between n and n-1 until the cap trips. Both
	// implementations of this engine fail the same way on purpose.
	for _, in := range []int64{3, 99, 9_999} {
		_, err := Sqrt(big.NewInt(in))
		require.ErrorIs(t, err, shared.ErrMathOverflow, "sqrt(%d)", in)
	}
}

func TestSqrtWideOperand(t *testing.T) {
	// (10^18)^2 has 120 bits; the result must be exact
	root := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	square := new(big.Int).Mul(root, root)

	got, err := Sqrt(square)
	require.NoError(t, err)
	require.Equal(t, root, got)

	got, err = Sqrt(new(big.Int).Add(square, big.NewInt(1)))
	require.NoError(t, err)
	require.Equal(t, root, got)
}

func TestSqrtNegative(t *testing.T) {
	_, err := Sqrt(big.NewInt(-1))
	require.ErrorIs(t, err, shared.ErrMathOverflow)
}

func TestSubChecked(t *testing.T) {
	_, err := Sub(big.NewInt(1), big.NewInt(2))
	require.ErrorIs(t, err, shared.ErrMathOverflow)

	out, err := Sub(big.NewInt(5), big.NewInt(2))
	require.NoError(t, err)
	require.Equal(t, big.NewInt(3), out)
}

func TestDivByZero(t *testing.T) {
	_, err := Div(big.NewInt(1), big.NewInt(0))
	require.ErrorIs(t, err, shared.ErrMathOverflow)
}

func TestMulDivRounding(t *testing.T) {
	down, err := MulDiv(big.NewInt(10), big.NewInt(7), big.NewInt(3), shared.RoundingDown)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(23), down)

	up, err := MulDiv(big.NewInt(10), big.NewInt(7), big.NewInt(3), shared.RoundingUp)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(24), up)
}

func TestCastU64Bounds(t *testing.T) {
	v, err := CastU64(new(big.Int).SetUint64(1<<63 + 1))
	require.NoError(t, err)
	require.Equal(t, uint64(1<<63+1), v)

	tooWide := new(big.Int).Lsh(big.NewInt(1), 64)
	_, err = CastU64(tooWide)
	require.ErrorIs(t, err, shared.ErrTypeCastFailed)

	_, err = CastU64(big.NewInt(-1))
	require.ErrorIs(t, err, shared.ErrTypeCastFailed)
}

func TestBigToU128Bounds(t *testing.T) {
	v := new(big.Int).Lsh(big.NewInt(1), 127)
	u, err := BigToU128(v)
	require.NoError(t, err)
	require.Equal(t, v, u.BigInt())

	_, err = BigToU128(new(big.Int).Lsh(big.NewInt(1), 128))
	require.ErrorIs(t, err, shared.ErrTypeCastFailed)
}

func TestU128ToBigRoundTrip(t *testing.T) {
	v := new(big.Int).Lsh(big.NewInt(5), 64)
	v.Add(v, big.NewInt(7))

	u, err := BigToU128(v)
	require.NoError(t, err)
	require.Equal(t, v, U128ToBig(u))
}

func TestMulShr(t *testing.T) {
	// (3 << 64) * (5 << 64) >> 128 == 15
	a := new(big.Int).Lsh(big.NewInt(3), 64)
	b := new(big.Int).Lsh(big.NewInt(5), 64)
	require.Equal(t, big.NewInt(15), MulShr(a, b, 128))

	// zero offset multiplies without shifting
	require.Equal(t, big.NewInt(42), MulShr(big.NewInt(6), big.NewInt(7), 0))

	// fractional bits are truncated toward zero
	require.Equal(t, big.NewInt(0), MulShr(big.NewInt(3), big.NewInt(5), 64))
}
