package math

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

const (
	testVirtualQuote = uint64(30_000_000_000)
	testVirtualBase  = uint64(1_073_000_000_000_000)
)

func TestSwapQuoteToBaseKInvariant(t *testing.T) {
	amountIn := uint64(1_000_000_000)

	out, err := SwapQuoteToBase(testVirtualQuote, testVirtualBase, amountIn)
	require.NoError(t, err)
	require.Equal(t, uint64(34_612_903_225_806), out)

	// the invariant holds on the scaled reserves before the final
	// unscaling division
	vbScaled := new(big.Int).Mul(new(big.Int).SetUint64(testVirtualBase), big.NewInt(shared.BaseScalingFactor))
	k := new(big.Int).Mul(new(big.Int).SetUint64(testVirtualQuote), vbScaled)
	newQuote := new(big.Int).SetUint64(testVirtualQuote + amountIn)
	newVbScaled := new(big.Int).Div(k, newQuote)

	kAfter := new(big.Int).Mul(newQuote, newVbScaled)
	require.True(t, kAfter.Cmp(k) <= 0)
	require.True(t, new(big.Int).Sub(k, kAfter).Cmp(newQuote) < 0)

	wantOut := new(big.Int).Sub(vbScaled, newVbScaled)
	wantOut.Div(wantOut, big.NewInt(shared.BaseScalingFactor))
	require.Equal(t, wantOut.Uint64(), out)
}

func TestSwapBaseToQuote(t *testing.T) {
	out, err := SwapBaseToQuote(85_000_000_000, 279_900_000_000_000, 793_100_000_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(62_827_120_224), out)
}

func TestSwapRoundTripLosesAtMostRounding(t *testing.T) {
	amountIn := uint64(2_500_000_000)

	baseOut, err := SwapQuoteToBase(testVirtualQuote, testVirtualBase, amountIn)
	require.NoError(t, err)
	require.NotZero(t, baseOut)

	newQuote := testVirtualQuote + amountIn
	newBase := testVirtualBase - baseOut

	quoteBack, err := SwapBaseToQuote(newQuote, newBase, baseOut)
	require.NoError(t, err)
	require.LessOrEqual(t, quoteBack, amountIn)
	require.GreaterOrEqual(t, quoteBack, amountIn-2)
}

func TestSwapQuoteToBaseMonotonic(t *testing.T) {
	prev := uint64(0)
	for _, amountIn := range []uint64{1, 1_000, 1_000_000, 1_000_000_000, 10_000_000_000} {
		out, err := SwapQuoteToBase(testVirtualQuote, testVirtualBase, amountIn)
		require.NoError(t, err)
		require.GreaterOrEqual(t, out, prev)
		prev = out
	}
}

func TestSwapZeroAmount(t *testing.T) {
	out, err := SwapQuoteToBase(testVirtualQuote, testVirtualBase, 0)
	require.NoError(t, err)
	require.Zero(t, out)

	out, err = SwapBaseToQuote(testVirtualQuote, testVirtualBase, 0)
	require.NoError(t, err)
	require.Zero(t, out)
}

func TestSpotPriceZeroLiquidity(t *testing.T) {
	_, err := SpotPrice(1, 0)
	require.ErrorIs(t, err, shared.ErrMathOverflow)
}
