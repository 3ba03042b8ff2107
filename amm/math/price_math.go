package math

import (
	"math/big"

	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

var priceScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// SqrtPriceFromAmounts converts a base/quote amount pair into the Q64.64
// fixed-point square root of price.
//
// price = (sqrtPrice >> 64)^2 * 10^(baseDecimal - quoteDecimal), so
// sqrtPrice = sqrt(price / 10^(baseDecimal - quoteDecimal)) << 64, with
// price = quoteAmount/baseAmount carried at 18 decimals of precision.
func SqrtPriceFromAmounts(baseAmount, quoteAmount uint64, baseDecimal, quoteDecimal uint8) (*big.Int, error) {
	if baseAmount == 0 {
		return nil, shared.ErrAmountIsZero
	}

	priceScaled := new(big.Int).Mul(new(big.Int).SetUint64(quoteAmount), priceScale)
	priceScaled.Div(priceScaled, new(big.Int).SetUint64(baseAmount))

	return sqrtPriceFromPrice(priceScaled, baseDecimal, quoteDecimal)
}

func sqrtPriceFromPrice(price *big.Int, baseDecimal, quoteDecimal uint8) (*big.Int, error) {
	decimalDiff := int(baseDecimal) - int(quoteDecimal)
	adjusted := new(big.Int).Set(price)
	switch {
	case decimalDiff > 0:
		// base has more decimals than quote
		pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimalDiff)), nil)
		adjusted.Div(adjusted, pow)
	case decimalDiff < 0:
		pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-decimalDiff)), nil)
		adjusted.Mul(adjusted, pow)
	}

	sqrtPrice, err := Sqrt(adjusted)
	if err != nil {
		return nil, err
	}

	sqrtPriceQ64 := new(big.Int).Lsh(sqrtPrice, shared.Resolution)
	if sqrtPriceQ64.BitLen() > 128 {
		return nil, shared.ErrTypeCastFailed
	}
	return sqrtPriceQ64, nil
}
