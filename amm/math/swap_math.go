package math

import (
	"math/big"

	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

// CurvePoint is one breakpoint of a segmented curve. Liquidity is
// constant between a point's sqrt price and the previous one.
type CurvePoint struct {
	SqrtPrice *big.Int
	Liquidity *big.Int
}

// QuoteToBaseFromAmountIn walks the curve upward from currentSqrtPrice,
// consuming quote input segment by segment until the input is exhausted
// or the walk reaches stopSqrtPrice. A breakpoint with zero price or
// liquidity means the curve is not configured past that point and
// terminates the walk; whatever input is still unconsumed is reported in
// AmountLeft for the caller's swallow-tolerance decision.
func QuoteToBaseFromAmountIn(curve []CurvePoint, currentSqrtPrice, amountIn, stopSqrtPrice *big.Int) (shared.SwapAmount, error) {
	if amountIn.Sign() == 0 {
		return shared.SwapAmount{
			OutputAmount:  big.NewInt(0),
			NextSqrtPrice: new(big.Int).Set(currentSqrtPrice),
			AmountLeft:    big.NewInt(0),
		}, nil
	}

	current := new(big.Int).Set(currentSqrtPrice)
	amountLeft := new(big.Int).Set(amountIn)
	totalOutput := big.NewInt(0)

	for i := 0; i < len(curve); i++ {
		if curve[i].SqrtPrice.Sign() == 0 || curve[i].Liquidity.Sign() == 0 {
			break
		}
		reference := minBig(stopSqrtPrice, curve[i].SqrtPrice)
		if reference.Cmp(current) <= 0 {
			continue
		}

		maxAmountIn, err := DeltaAmountQuoteUnsigned(current, reference, curve[i].Liquidity, shared.RoundingUp)
		if err != nil {
			return shared.SwapAmount{}, err
		}
		if amountLeft.Cmp(maxAmountIn) < 0 {
			nextSqrtPrice, err := NextSqrtPriceFromInput(current, curve[i].Liquidity, amountLeft, false)
			if err != nil {
				return shared.SwapAmount{}, err
			}
			outputAmount, err := DeltaAmountBaseUnsigned(current, nextSqrtPrice, curve[i].Liquidity, shared.RoundingDown)
			if err != nil {
				return shared.SwapAmount{}, err
			}
			totalOutput.Add(totalOutput, outputAmount)
			current = nextSqrtPrice
			amountLeft = big.NewInt(0)
			break
		}

		nextSqrtPrice := reference
		outputAmount, err := DeltaAmountBaseUnsigned(current, nextSqrtPrice, curve[i].Liquidity, shared.RoundingDown)
		if err != nil {
			return shared.SwapAmount{}, err
		}
		totalOutput.Add(totalOutput, outputAmount)
		current = nextSqrtPrice
		amountLeft.Sub(amountLeft, maxAmountIn)
		if nextSqrtPrice.Cmp(stopSqrtPrice) == 0 {
			break
		}
	}

	return shared.SwapAmount{OutputAmount: totalOutput, NextSqrtPrice: current, AmountLeft: amountLeft}, nil
}

// BaseToQuoteFromAmountIn walks the curve downward from currentSqrtPrice,
// consuming base input in reverse breakpoint order, bounded below by
// sqrtStartPrice. Zero breakpoints are skipped on the way down. Input
// that cannot be absorbed above sqrtStartPrice is reported in AmountLeft.
func BaseToQuoteFromAmountIn(curve []CurvePoint, sqrtStartPrice, currentSqrtPrice, amountIn *big.Int) (shared.SwapAmount, error) {
	current := new(big.Int).Set(currentSqrtPrice)
	amountLeft := new(big.Int).Set(amountIn)
	totalOutput := big.NewInt(0)

	for i := len(curve) - 2; i >= 0; i-- {
		if curve[i].SqrtPrice.Sign() == 0 || curve[i].Liquidity.Sign() == 0 {
			continue
		}
		if curve[i].SqrtPrice.Cmp(current) >= 0 {
			continue
		}

		maxAmountIn, err := DeltaAmountBaseUnsigned(curve[i].SqrtPrice, current, curve[i+1].Liquidity, shared.RoundingUp)
		if err != nil {
			return shared.SwapAmount{}, err
		}
		if amountLeft.Cmp(maxAmountIn) < 0 {
			nextSqrtPrice, err := NextSqrtPriceFromInput(current, curve[i+1].Liquidity, amountLeft, true)
			if err != nil {
				return shared.SwapAmount{}, err
			}
			outputAmount, err := DeltaAmountQuoteUnsigned(nextSqrtPrice, current, curve[i+1].Liquidity, shared.RoundingDown)
			if err != nil {
				return shared.SwapAmount{}, err
			}
			totalOutput.Add(totalOutput, outputAmount)
			return shared.SwapAmount{OutputAmount: totalOutput, NextSqrtPrice: nextSqrtPrice, AmountLeft: big.NewInt(0)}, nil
		}

		nextSqrtPrice := curve[i].SqrtPrice
		outputAmount, err := DeltaAmountQuoteUnsigned(nextSqrtPrice, current, curve[i+1].Liquidity, shared.RoundingDown)
		if err != nil {
			return shared.SwapAmount{}, err
		}
		totalOutput.Add(totalOutput, outputAmount)
		current = new(big.Int).Set(nextSqrtPrice)
		amountLeft.Sub(amountLeft, maxAmountIn)
	}

	if amountLeft.Sign() != 0 {
		nextSqrtPrice, err := NextSqrtPriceFromInput(current, curve[0].Liquidity, amountLeft, true)
		if err != nil {
			return shared.SwapAmount{}, err
		}
		if nextSqrtPrice.Cmp(sqrtStartPrice) < 0 {
			nextSqrtPrice = new(big.Int).Set(sqrtStartPrice)
			absorbed, err := DeltaAmountBaseUnsigned(nextSqrtPrice, current, curve[0].Liquidity, shared.RoundingUp)
			if err != nil {
				return shared.SwapAmount{}, err
			}
			amountLeft, err = Sub(amountLeft, absorbed)
			if err != nil {
				return shared.SwapAmount{}, err
			}
		} else {
			amountLeft = big.NewInt(0)
		}
		outputAmount, err := DeltaAmountQuoteUnsigned(nextSqrtPrice, current, curve[0].Liquidity, shared.RoundingDown)
		if err != nil {
			return shared.SwapAmount{}, err
		}
		totalOutput.Add(totalOutput, outputAmount)
		current = nextSqrtPrice
	}

	return shared.SwapAmount{OutputAmount: totalOutput, NextSqrtPrice: current, AmountLeft: amountLeft}, nil
}

func minBig(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}
