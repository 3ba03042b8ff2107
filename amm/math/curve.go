package math

import (
	"math/big"

	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

// Single-segment primitives for a concentrated-liquidity curve with
// piecewise-constant liquidity between sqrt-price breakpoints.

// DeltaAmountBaseUnsigned is the token-0 amount spanned by a price
// interval at the given liquidity:
//
//	L * (sqrt_hi - sqrt_lo) / (sqrt_hi * sqrt_lo)
func DeltaAmountBaseUnsigned(lowerSqrtPrice, upperSqrtPrice, liquidity *big.Int, round shared.Rounding) (*big.Int, error) {
	numerator2, err := Sub(upperSqrtPrice, lowerSqrtPrice)
	if err != nil {
		return nil, err
	}
	denominator := Mul(lowerSqrtPrice, upperSqrtPrice)
	if denominator.Sign() == 0 {
		return nil, shared.ErrMathOverflow
	}
	return MulDiv(liquidity, numerator2, denominator, round)
}

// DeltaAmountQuoteUnsigned is the token-1 amount spanned by a price
// interval at the given liquidity: L * (sqrt_hi - sqrt_lo) >> 128.
func DeltaAmountQuoteUnsigned(lowerSqrtPrice, upperSqrtPrice, liquidity *big.Int, round shared.Rounding) (*big.Int, error) {
	deltaSqrtPrice, err := Sub(upperSqrtPrice, lowerSqrtPrice)
	if err != nil {
		return nil, err
	}
	if round == shared.RoundingUp {
		prod := Mul(liquidity, deltaSqrtPrice)
		denominator := new(big.Int).Lsh(big.NewInt(1), shared.Resolution*2)
		numerator := new(big.Int).Add(prod, new(big.Int).Sub(denominator, big.NewInt(1)))
		return Div(numerator, denominator)
	}
	return MulShr(liquidity, deltaSqrtPrice, shared.Resolution*2), nil
}

// NextSqrtPriceFromInput solves the closed-form single-segment price move
// after injecting amountIn of one side. The caller is responsible for
// clamping amountIn to the segment's capacity first.
func NextSqrtPriceFromInput(sqrtPrice, liquidity, amountIn *big.Int, baseForQuote bool) (*big.Int, error) {
	if sqrtPrice.Sign() == 0 || liquidity.Sign() == 0 {
		return nil, shared.ErrMathOverflow
	}
	if baseForQuote {
		return nextSqrtPriceFromBaseAmountInRoundingUp(sqrtPrice, liquidity, amountIn)
	}
	return nextSqrtPriceFromQuoteAmountInRoundingDown(sqrtPrice, liquidity, amountIn)
}

// sqrt_price_new = (L * sqrt_price) / (L + amount * sqrt_price)
func nextSqrtPriceFromBaseAmountInRoundingUp(sqrtPrice, liquidity, amount *big.Int) (*big.Int, error) {
	if amount.Sign() == 0 {
		return new(big.Int).Set(sqrtPrice), nil
	}
	product := Mul(amount, sqrtPrice)
	if product.Cmp(shared.U128Max) > 0 {
		quotient, err := Div(liquidity, sqrtPrice)
		if err != nil {
			return nil, err
		}
		denominator := new(big.Int).Add(quotient, amount)
		return Div(liquidity, denominator)
	}
	denominator := new(big.Int).Add(liquidity, product)
	return MulDiv(liquidity, sqrtPrice, denominator, shared.RoundingUp)
}

// sqrt_price_new = sqrt_price + (amount << 128) / L
func nextSqrtPriceFromQuoteAmountInRoundingDown(sqrtPrice, liquidity, amount *big.Int) (*big.Int, error) {
	quotient := new(big.Int).Lsh(amount, shared.Resolution*2)
	q, err := Div(quotient, liquidity)
	if err != nil {
		return nil, err
	}
	return Add(sqrtPrice, q), nil
}

// InitialLiquidityFromDeltaQuote derives the liquidity that places
// quoteAmount between sqrtMinPrice and sqrtPrice, used when seeding a
// curve or a migrated pool.
func InitialLiquidityFromDeltaQuote(quoteAmount, sqrtMinPrice, sqrtPrice *big.Int) (*big.Int, error) {
	priceDelta, err := Sub(sqrtPrice, sqrtMinPrice)
	if err != nil {
		return nil, err
	}
	quoteAmountShifted := new(big.Int).Lsh(quoteAmount, shared.Resolution*2)
	return Div(quoteAmountShifted, priceDelta)
}

// InitialLiquidityFromDeltaBase is the base-side counterpart bounded by
// sqrtMaxPrice.
func InitialLiquidityFromDeltaBase(baseAmount, sqrtMaxPrice, sqrtPrice *big.Int) (*big.Int, error) {
	priceDelta, err := Sub(sqrtMaxPrice, sqrtPrice)
	if err != nil {
		return nil, err
	}
	prod := Mul(Mul(baseAmount, sqrtPrice), sqrtMaxPrice)
	return Div(prod, priceDelta)
}
