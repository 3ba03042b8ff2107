package math

import (
	"math/big"

	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

// Constant-product pricing over virtual reserves. The base side is
// scaled by a fixed factor before entering the invariant to compensate
// for the 9/6 decimal asymmetry between quote and base tokens; all
// intermediates are bounded to 128 bits like the on-chain arithmetic.

var baseScalingFactor = big.NewInt(shared.BaseScalingFactor)

func checkU128(v *big.Int) (*big.Int, error) {
	if v.BitLen() > 128 {
		return nil, shared.ErrMathOverflow
	}
	return v, nil
}

// SwapQuoteToBase prices a buy: quote in, base out.
//
//	k = virtual_quote * (virtual_base * 1000)
//	base_out = (virtual_base * 1000 - k / (virtual_quote + amount_in)) / 1000
func SwapQuoteToBase(virtualQuote, virtualBase, amountIn uint64) (uint64, error) {
	virtualBaseScaled, err := checkU128(new(big.Int).Mul(new(big.Int).SetUint64(virtualBase), baseScalingFactor))
	if err != nil {
		return 0, err
	}
	k, err := checkU128(new(big.Int).Mul(new(big.Int).SetUint64(virtualQuote), virtualBaseScaled))
	if err != nil {
		return 0, err
	}
	newVirtualQuote, err := checkU128(new(big.Int).Add(new(big.Int).SetUint64(virtualQuote), new(big.Int).SetUint64(amountIn)))
	if err != nil {
		return 0, err
	}
	newVirtualBaseScaled, err := Div(k, newVirtualQuote)
	if err != nil {
		return 0, err
	}
	baseOutScaled, err := Sub(virtualBaseScaled, newVirtualBaseScaled)
	if err != nil {
		return 0, err
	}
	baseOut := new(big.Int).Div(baseOutScaled, baseScalingFactor)
	return CastU64(baseOut)
}

// SwapBaseToQuote prices a sell: base in, quote out.
//
//	k = (virtual_base * 1000) * virtual_quote
//	quote_out = virtual_quote - k / (virtual_base * 1000 + amount_in * 1000)
func SwapBaseToQuote(virtualQuote, virtualBase, amountIn uint64) (uint64, error) {
	virtualBaseScaled, err := checkU128(new(big.Int).Mul(new(big.Int).SetUint64(virtualBase), baseScalingFactor))
	if err != nil {
		return 0, err
	}
	amountInScaled, err := checkU128(new(big.Int).Mul(new(big.Int).SetUint64(amountIn), baseScalingFactor))
	if err != nil {
		return 0, err
	}
	newVirtualBaseScaled, err := checkU128(new(big.Int).Add(virtualBaseScaled, amountInScaled))
	if err != nil {
		return 0, err
	}
	k, err := checkU128(new(big.Int).Mul(virtualBaseScaled, new(big.Int).SetUint64(virtualQuote)))
	if err != nil {
		return 0, err
	}
	newQuote, err := Div(k, newVirtualBaseScaled)
	if err != nil {
		return 0, err
	}
	quoteOut, err := Sub(new(big.Int).SetUint64(virtualQuote), newQuote)
	if err != nil {
		return 0, err
	}
	return CastU64(quoteOut)
}

// SpotPrice is the integer quote-per-scaled-base price of the virtual
// reserves. It truncates toward zero and is meant for coarse display,
// not for trade pricing.
func SpotPrice(virtualQuote, virtualBase uint64) (uint64, error) {
	virtualBaseScaled, err := checkU128(new(big.Int).Mul(new(big.Int).SetUint64(virtualBase), baseScalingFactor))
	if err != nil {
		return 0, err
	}
	price, err := Div(new(big.Int).SetUint64(virtualQuote), virtualBaseScaled)
	if err != nil {
		return 0, err
	}
	return CastU64(price)
}
