package amm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

func TestGetFeeOnAmountCreatorScenario(t *testing.T) {
	cfg := &Config{
		FeeBasisPoints:        100,
		CreatorFeeBasisPoints: 20,
	}

	breakdown, err := cfg.GetFeeOnAmount(1_000_000, false, false, false, shared.FeeTypeCreator, 0, false)
	require.NoError(t, err)

	require.Equal(t, uint64(1_000), breakdown.Sum())
	require.Equal(t, uint64(200), breakdown.CreatorFee)
	require.Equal(t, uint64(800), breakdown.ProtocolFee)
	require.Equal(t, uint64(999_000), breakdown.Amount)
}

func TestGetFeeOnAmountConservation(t *testing.T) {
	cfg := &Config{
		FeeBasisPoints:             1_000,
		L1ReferralFeeBasisPoints:   300,
		L2ReferralFeeBasisPoints:   200,
		L3ReferralFeeBasisPoints:   100,
		RefereeDiscountBasisPoints: 100,
		CreatorFeeBasisPoints:      100,
		MemeFeeBasisPoints:         50,
	}

	amounts := []uint64{1, 999, 100_000, 1_000_000_007, 1 << 50}
	for _, amountIn := range amounts {
		for _, feeType := range []shared.FeeType{shared.FeeTypeCreator, shared.FeeTypeMeme, shared.FeeTypeBlocked} {
			breakdown, err := cfg.GetFeeOnAmount(amountIn, true, true, false, feeType, shared.CashbackTierGold, true)
			require.NoError(t, err)

			total := breakdown.Amount + breakdown.L1ReferralFee + breakdown.L2ReferralFee +
				breakdown.L3ReferralFee + breakdown.CreatorFee + breakdown.CashbackFee + breakdown.ProtocolFee
			require.Equal(t, amountIn, total, "amount=%d feeType=%s", amountIn, feeType)
		}
	}
}

func TestGetFeeOnAmountRefereeDiscount(t *testing.T) {
	cfg := &Config{
		FeeBasisPoints:             1_000,
		L1ReferralFeeBasisPoints:   300,
		L2ReferralFeeBasisPoints:   200,
		L3ReferralFeeBasisPoints:   100,
		RefereeDiscountBasisPoints: 100,
	}
	amountIn := uint64(1_000_000)

	withReferral, err := cfg.GetFeeOnAmount(amountIn, true, false, false, shared.FeeTypeBlocked, 0, false)
	require.NoError(t, err)
	// effective rate 900/100000
	require.Equal(t, uint64(9_000), withReferral.Sum())
	require.Equal(t, uint64(3_000), withReferral.L1ReferralFee)
	require.Equal(t, uint64(6_000), withReferral.ProtocolFee)

	withoutReferral, err := cfg.GetFeeOnAmount(amountIn, false, false, false, shared.FeeTypeBlocked, 0, false)
	require.NoError(t, err)
	require.Equal(t, uint64(10_000), withoutReferral.Sum())
	require.Zero(t, withoutReferral.L1ReferralFee)
}

func TestGetFeeOnAmountCashbackTiers(t *testing.T) {
	cfg := &Config{FeeBasisPoints: 1_000}
	amountIn := uint64(10_000_000)

	wood, err := cfg.GetFeeOnAmount(amountIn, false, false, false, shared.FeeTypeBlocked, shared.CashbackTierWood, true)
	require.NoError(t, err)
	require.Equal(t, uint64(5_000), wood.CashbackFee)

	champion, err := cfg.GetFeeOnAmount(amountIn, false, false, false, shared.FeeTypeBlocked, shared.CashbackTierChampion, true)
	require.NoError(t, err)
	require.Equal(t, uint64(25_000), champion.CashbackFee)

	none, err := cfg.GetFeeOnAmount(amountIn, false, false, false, shared.FeeTypeBlocked, shared.CashbackTierChampion, false)
	require.NoError(t, err)
	require.Zero(t, none.CashbackFee)
}

func TestGetFeeOnAmountComponentOverflowIsChecked(t *testing.T) {
	// components exceed the total fee; the per-trade subtraction must
	// fault instead of minting value
	cfg := &Config{
		FeeBasisPoints:           100,
		L1ReferralFeeBasisPoints: 300,
	}

	_, err := cfg.GetFeeOnAmount(1_000_000, true, false, false, shared.FeeTypeBlocked, 0, false)
	require.ErrorIs(t, err, shared.ErrMathOverflow)
}
