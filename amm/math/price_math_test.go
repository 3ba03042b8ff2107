package math

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

func TestSqrtPriceFromAmountsZeroBase(t *testing.T) {
	_, err := SqrtPriceFromAmounts(0, 1_000_000_000, 6, 9)
	require.ErrorIs(t, err, shared.ErrAmountIsZero)
}

func TestSqrtPriceFromAmountsUnitPrice(t *testing.T) {
	// equal decimals, price 1: sqrt price is exactly 1 in Q64.64
	got, err := SqrtPriceFromAmounts(1_000_000, 1_000_000, 9, 9)
	require.NoError(t, err)

	want := new(big.Int).Lsh(big.NewInt(1_000_000_000), shared.Resolution)
	require.Equal(t, want, got)
}

func TestSqrtPriceFromAmountsMonotonic(t *testing.T) {
	baseAmount := uint64(1_000_000_000_000_000)

	prev := new(big.Int)
	for _, quoteAmount := range []uint64{
		1_000_000_000,
		5_000_000_000,
		30_000_000_000,
		85_000_000_000,
		400_000_000_000,
	} {
		got, err := SqrtPriceFromAmounts(baseAmount, quoteAmount, 6, 9)
		require.NoError(t, err)
		require.True(t, got.Cmp(prev) >= 0, "sqrt price decreased at quote=%d", quoteAmount)
		prev = got
	}
}

func TestSqrtPriceFromAmountsDecimalAdjustment(t *testing.T) {
	// same amounts, different decimal gap: a 9/6 pair prices 1000x
	// higher than a 6/9 pair before the square root
	highGap, err := SqrtPriceFromAmounts(1_000_000, 1_000_000, 6, 9)
	require.NoError(t, err)
	lowGap, err := SqrtPriceFromAmounts(1_000_000, 1_000_000, 9, 6)
	require.NoError(t, err)
	require.True(t, highGap.Cmp(lowGap) > 0)
}
