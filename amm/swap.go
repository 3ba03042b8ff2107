package amm

import (
	"math/big"

	"github.com/jacobhjkim/gachi-amm/amm/math"
	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

func u64ToBig(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}

// GetSwapResult prices one trade without mutating the curve. Buys take
// the fee off the quote input before pricing; sells price first and take
// the fee off the quote output. The caller commits the result with
// ApplySwapResult.
func (b *BondingCurve) GetSwapResult(
	cfg *Config,
	amountIn uint64,
	direction shared.TradeDirection,
	hasL1Referral, hasL2Referral, hasL3Referral bool,
	cashbackTier shared.CashbackTier,
	hasCashback bool,
) (*shared.SwapResult, error) {
	if cfg.CurveModel == shared.CurveModelSegmented {
		return b.getSwapResultSegmented(cfg, amountIn, direction, hasL1Referral, hasL2Referral, hasL3Referral, cashbackTier, hasCashback)
	}
	return b.getSwapResultConstantProduct(cfg, amountIn, direction, hasL1Referral, hasL2Referral, hasL3Referral, cashbackTier, hasCashback)
}

func (b *BondingCurve) getSwapResultConstantProduct(
	cfg *Config,
	amountIn uint64,
	direction shared.TradeDirection,
	hasL1Referral, hasL2Referral, hasL3Referral bool,
	cashbackTier shared.CashbackTier,
	hasCashback bool,
) (*shared.SwapResult, error) {
	var breakdown shared.FeeBreakdown
	var err error

	actualAmountIn := amountIn
	if direction == shared.TradeDirectionQuoteToBase {
		breakdown, err = cfg.GetFeeOnAmount(amountIn, hasL1Referral, hasL2Referral, hasL3Referral, b.FeeType, cashbackTier, hasCashback)
		if err != nil {
			return nil, err
		}
		actualAmountIn = breakdown.Amount
	}

	var outputAmount uint64
	if direction == shared.TradeDirectionQuoteToBase {
		outputAmount, err = math.SwapQuoteToBase(b.VirtualQuoteReserve, b.VirtualBaseReserve, actualAmountIn)
	} else {
		outputAmount, err = math.SwapBaseToQuote(b.VirtualQuoteReserve, b.VirtualBaseReserve, actualAmountIn)
	}
	if err != nil {
		return nil, err
	}

	actualAmountOut := outputAmount
	if direction == shared.TradeDirectionQuoteToBase {
		if outputAmount >= b.BaseReserve || b.BaseReserve-outputAmount < cfg.MigrationBaseThreshold {
			// the naive result overshoots graduation; solve for the
			// input that drains the base reserve exactly to the
			// threshold by evaluating the curve in reverse
			cappedOutput, err := math.SubU64(b.BaseReserve, cfg.MigrationBaseThreshold)
			if err != nil {
				return nil, shared.ErrInvalidMigrationCalculation
			}
			newVirtualBase, err := math.SubU64(b.VirtualBaseReserve, cappedOutput)
			if err != nil {
				return nil, shared.ErrInvalidMigrationCalculation
			}
			cappedAmountIn, err := math.SwapBaseToQuote(cfg.MigrationQuoteThreshold, newVirtualBase, cappedOutput)
			if err != nil {
				return nil, shared.ErrInvalidMigrationCalculation
			}

			breakdown, err = cfg.GetFeeOnAmount(cappedAmountIn, hasL1Referral, hasL2Referral, hasL3Referral, b.FeeType, cashbackTier, hasCashback)
			if err != nil {
				return nil, err
			}
			actualAmountIn = cappedAmountIn
			actualAmountOut = cappedOutput
		}
	} else {
		breakdown, err = cfg.GetFeeOnAmount(outputAmount, hasL1Referral, hasL2Referral, hasL3Referral, b.FeeType, cashbackTier, hasCashback)
		if err != nil {
			return nil, err
		}
		actualAmountOut = breakdown.Amount
	}

	return &shared.SwapResult{
		ActualInputAmount: actualAmountIn,
		OutputAmount:      actualAmountOut,
		TradingFee:        breakdown.Sum(),
		ProtocolFee:       breakdown.ProtocolFee,
		CashbackFee:       breakdown.CashbackFee,
		CreatorFee:        breakdown.CreatorFee,
		L1ReferralFee:     breakdown.L1ReferralFee,
		L2ReferralFee:     breakdown.L2ReferralFee,
		L3ReferralFee:     breakdown.L3ReferralFee,
	}, nil
}

func (b *BondingCurve) getSwapResultSegmented(
	cfg *Config,
	amountIn uint64,
	direction shared.TradeDirection,
	hasL1Referral, hasL2Referral, hasL3Referral bool,
	cashbackTier shared.CashbackTier,
	hasCashback bool,
) (*shared.SwapResult, error) {
	points := cfg.CurvePoints()
	currentSqrtPrice := math.U128ToBig(b.SqrtPrice)

	if direction == shared.TradeDirectionQuoteToBase {
		breakdown, err := cfg.GetFeeOnAmount(amountIn, hasL1Referral, hasL2Referral, hasL3Referral, b.FeeType, cashbackTier, hasCashback)
		if err != nil {
			return nil, err
		}

		swapAmount, err := math.QuoteToBaseFromAmountIn(
			points,
			currentSqrtPrice,
			u64ToBig(breakdown.Amount),
			cfg.MigrationSqrtPriceBig(),
		)
		if err != nil {
			return nil, err
		}

		// input the walk could not place is tolerated up to the swallow
		// threshold; the curve absorbs it without moving the price
		if swapAmount.AmountLeft.Sign() != 0 {
			leftover, err := math.CastU64(swapAmount.AmountLeft)
			if err != nil {
				return nil, err
			}
			tolerance, err := cfg.SwallowThreshold()
			if err != nil {
				return nil, err
			}
			if leftover > tolerance {
				return nil, shared.ErrSwapAmountIsOverAThreshold
			}
		}

		outputAmount, err := math.CastU64(swapAmount.OutputAmount)
		if err != nil {
			return nil, err
		}

		return &shared.SwapResult{
			ActualInputAmount: breakdown.Amount,
			OutputAmount:      outputAmount,
			NextSqrtPrice:     swapAmount.NextSqrtPrice,
			TradingFee:        breakdown.Sum(),
			ProtocolFee:       breakdown.ProtocolFee,
			CashbackFee:       breakdown.CashbackFee,
			CreatorFee:        breakdown.CreatorFee,
			L1ReferralFee:     breakdown.L1ReferralFee,
			L2ReferralFee:     breakdown.L2ReferralFee,
			L3ReferralFee:     breakdown.L3ReferralFee,
		}, nil
	}

	swapAmount, err := math.BaseToQuoteFromAmountIn(
		points,
		math.U128ToBig(cfg.SqrtStartPrice),
		currentSqrtPrice,
		u64ToBig(amountIn),
	)
	if err != nil {
		return nil, err
	}
	if swapAmount.AmountLeft.Sign() != 0 {
		return nil, shared.ErrNotEnoughLiquidity
	}

	grossOutput, err := math.CastU64(swapAmount.OutputAmount)
	if err != nil {
		return nil, err
	}
	breakdown, err := cfg.GetFeeOnAmount(grossOutput, hasL1Referral, hasL2Referral, hasL3Referral, b.FeeType, cashbackTier, hasCashback)
	if err != nil {
		return nil, err
	}

	return &shared.SwapResult{
		ActualInputAmount: amountIn,
		OutputAmount:      breakdown.Amount,
		NextSqrtPrice:     swapAmount.NextSqrtPrice,
		TradingFee:        breakdown.Sum(),
		ProtocolFee:       breakdown.ProtocolFee,
		CashbackFee:       breakdown.CashbackFee,
		CreatorFee:        breakdown.CreatorFee,
		L1ReferralFee:     breakdown.L1ReferralFee,
		L2ReferralFee:     breakdown.L2ReferralFee,
		L3ReferralFee:     breakdown.L3ReferralFee,
	}, nil
}
