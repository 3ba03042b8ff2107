package shared

import "math/big"

const (
	// MaxCurvePoint bounds the segmented price curve.
	MaxCurvePoint = 4

	// Resolution is the number of fractional bits in a Q64.64 sqrt price.
	Resolution = 64

	// FeeDenominator is the denominator for every trading fee rate.
	// Rates here are out of 100_000, NOT out of 10_000.
	FeeDenominator = 100_000
	// MaxFeeBasisPoints caps the gross trading fee (10% of trade).
	MaxFeeBasisPoints = 10_000
	// MaxCreatorFeeBasisPoints caps the creator/meme fee (10% of trade).
	MaxCreatorFeeBasisPoints = 10_000

	// TokenTotalSupply is the default supply of a listed base token,
	// expressed in lamports (1B tokens with 6 decimals).
	TokenTotalSupply = 1_000_000_000_000_000

	// BaseScalingFactor corrects the base/quote decimal asymmetry in the
	// constant-product variant (quote 9 decimals, base 6 decimals).
	BaseScalingFactor = 1000

	// SwallowPercentage is the fraction of the migration quote threshold
	// that a graduating buy may leave unconsumed after exhausting the
	// segmented curve.
	SwallowPercentage = 25
)

// Cashback rates per tier, out of FeeDenominator.
const (
	CashbackWoodBps     = 50
	CashbackBronzeBps   = 100
	CashbackSilverBps   = 125
	CashbackGoldBps     = 150
	CashbackPlatinumBps = 175
	CashbackDiamondBps  = 200
	CashbackChampionBps = 250
)

const (
	// CashbackClaimCooldown is the minimum time between cashback claims.
	CashbackClaimCooldown int64 = 7 * 24 * 60 * 60
	// CashbackInactivePeriod is how long an account must be dormant before
	// an authority may reclaim its unclaimed balance.
	CashbackInactivePeriod int64 = 365 * 24 * 60 * 60
)

var (
	OneQ64 = new(big.Int).Lsh(big.NewInt(1), Resolution)

	U64Max  = new(big.Int).SetUint64(^uint64(0))
	U128Max = bigIntFromString("340282366920938463463374607431768211455")

	MinSqrtPrice = bigIntFromString("4295048016")
	MaxSqrtPrice = bigIntFromString("79226673521066979257578248091")
)

func bigIntFromString(v string) *big.Int {
	out, ok := new(big.Int).SetString(v, 10)
	if !ok {
		panic("invalid big integer literal")
	}
	return out
}
