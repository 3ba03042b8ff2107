package amm

import (
	"github.com/jacobhjkim/gachi-amm/amm/math"
	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

// GetFeeOnAmount decomposes amountIn into fee components and the net
// amount. The computation order is load-bearing: the protocol fee is
// derived last by checked subtraction from the total, so it absorbs the
// rounding residue of every floor division before it. Reordering changes
// the residue and breaks parity with other implementations.
//
// hasCashback selects whether the trader's tier rebate applies;
// referral flags select which tiers of the referral chain get paid. When
// any referral is active, the referee discount is taken off the gross
// rate before the total fee is computed.
func (c *Config) GetFeeOnAmount(
	amountIn uint64,
	hasL1Referral, hasL2Referral, hasL3Referral bool,
	feeType shared.FeeType,
	cashbackTier shared.CashbackTier,
	hasCashback bool,
) (shared.FeeBreakdown, error) {
	var l1ReferralFee, l2ReferralFee, l3ReferralFee uint64
	var err error

	if hasL1Referral {
		l1ReferralFee, err = math.MulDiv64(amountIn, uint64(c.L1ReferralFeeBasisPoints), shared.FeeDenominator, shared.RoundingDown)
		if err != nil {
			return shared.FeeBreakdown{}, err
		}
	}
	if hasL2Referral {
		l2ReferralFee, err = math.MulDiv64(amountIn, uint64(c.L2ReferralFeeBasisPoints), shared.FeeDenominator, shared.RoundingDown)
		if err != nil {
			return shared.FeeBreakdown{}, err
		}
	}
	if hasL3Referral {
		l3ReferralFee, err = math.MulDiv64(amountIn, uint64(c.L3ReferralFeeBasisPoints), shared.FeeDenominator, shared.RoundingDown)
		if err != nil {
			return shared.FeeBreakdown{}, err
		}
	}

	var cashbackBps uint64
	if hasCashback {
		cashbackBps = cashbackTier.CashbackBps()
	}
	cashbackFee, err := math.MulDiv64(amountIn, cashbackBps, shared.FeeDenominator, shared.RoundingDown)
	if err != nil {
		return shared.FeeBreakdown{}, err
	}

	var creatorFeeBasisPoints uint16
	switch feeType {
	case shared.FeeTypeCreator:
		creatorFeeBasisPoints = c.CreatorFeeBasisPoints
	case shared.FeeTypeMeme:
		creatorFeeBasisPoints = c.MemeFeeBasisPoints
	}
	creatorFee, err := math.MulDiv64(amountIn, uint64(creatorFeeBasisPoints), shared.FeeDenominator, shared.RoundingDown)
	if err != nil {
		return shared.FeeBreakdown{}, err
	}

	hasReferral := hasL1Referral || hasL2Referral || hasL3Referral
	effectiveBps := uint64(c.FeeBasisPoints)
	if hasReferral {
		effectiveBps, err = math.SubU64(uint64(c.FeeBasisPoints), uint64(c.RefereeDiscountBasisPoints))
		if err != nil {
			return shared.FeeBreakdown{}, err
		}
	}
	totalFee, err := math.MulDiv64(amountIn, effectiveBps, shared.FeeDenominator, shared.RoundingDown)
	if err != nil {
		return shared.FeeBreakdown{}, err
	}

	// validated configs can never make this underflow; the checked
	// subtraction stays as a per-trade safety net
	protocolFee := totalFee
	for _, component := range []uint64{l1ReferralFee, l2ReferralFee, l3ReferralFee, creatorFee, cashbackFee} {
		protocolFee, err = math.SubU64(protocolFee, component)
		if err != nil {
			return shared.FeeBreakdown{}, err
		}
	}

	amount, err := math.SubU64(amountIn, totalFee)
	if err != nil {
		return shared.FeeBreakdown{}, err
	}

	return shared.FeeBreakdown{
		Amount:        amount,
		L1ReferralFee: l1ReferralFee,
		L2ReferralFee: l2ReferralFee,
		L3ReferralFee: l3ReferralFee,
		CreatorFee:    creatorFee,
		CashbackFee:   cashbackFee,
		ProtocolFee:   protocolFee,
	}, nil
}
