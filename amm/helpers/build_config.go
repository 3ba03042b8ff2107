// Package helpers builds validated engine configs from human-scale
// parameters (whole-token amounts, market caps) and from JSON documents.
package helpers

import (
	"math/big"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/jacobhjkim/gachi-amm/amm"
	mathutil "github.com/jacobhjkim/gachi-amm/amm/math"
	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

// FeeParams groups the per-trade fee rates, all out of
// shared.FeeDenominator.
type FeeParams struct {
	FeeBasisPoints             uint16
	L1ReferralFeeBasisPoints   uint16
	L2ReferralFeeBasisPoints   uint16
	L3ReferralFeeBasisPoints   uint16
	RefereeDiscountBasisPoints uint16
	CreatorFeeBasisPoints      uint16
	MemeFeeBasisPoints         uint16
	MigrationFeeBasisPoints    uint16
}

// ConstantProductParams describes a constant-product deployment in
// whole-token units.
type ConstantProductParams struct {
	QuoteMint  solana.PublicKey
	FeeClaimer solana.PublicKey

	BaseDecimal  uint8
	QuoteDecimal uint8

	Fees FeeParams

	// whole tokens; converted to lamports with the decimals above
	TotalTokenSupply            float64
	PercentageSupplyOnMigration float64
	MigrationQuoteThreshold     float64
	InitialVirtualQuoteReserve  float64
	InitialVirtualBaseReserve   float64

	LockedVesting amm.LockedVestingParams
	Authorities   amm.AuthoritySet
}

// BuildConstantProductConfig converts whole-token parameters into a
// validated Config. The migration base threshold is the share of supply
// that stays in the curve for pool seeding.
func BuildConstantProductConfig(params ConstantProductParams) (*amm.Config, error) {
	totalSupply, err := lamportsFromFloat(params.TotalTokenSupply, params.BaseDecimal)
	if err != nil {
		return nil, err
	}
	migrationBaseThreshold, err := lamportsFromDecimal(
		decimalFromFloat(params.TotalTokenSupply).
			Mul(decimalFromFloat(params.PercentageSupplyOnMigration)).
			Div(decimal.NewFromInt(100)),
		params.BaseDecimal,
	)
	if err != nil {
		return nil, err
	}
	if migrationBaseThreshold == 0 || migrationBaseThreshold >= totalSupply {
		return nil, shared.ErrInvalidConfig
	}

	migrationQuoteThreshold, err := lamportsFromFloat(params.MigrationQuoteThreshold, params.QuoteDecimal)
	if err != nil {
		return nil, err
	}
	initialVirtualQuote, err := lamportsFromFloat(params.InitialVirtualQuoteReserve, params.QuoteDecimal)
	if err != nil {
		return nil, err
	}
	initialVirtualBase, err := lamportsFromFloat(params.InitialVirtualBaseReserve, params.BaseDecimal)
	if err != nil {
		return nil, err
	}

	return amm.NewConfig(amm.ConfigParams{
		QuoteMint:  params.QuoteMint,
		FeeClaimer: params.FeeClaimer,

		BaseDecimal:  params.BaseDecimal,
		QuoteDecimal: params.QuoteDecimal,

		FeeBasisPoints:             params.Fees.FeeBasisPoints,
		L1ReferralFeeBasisPoints:   params.Fees.L1ReferralFeeBasisPoints,
		L2ReferralFeeBasisPoints:   params.Fees.L2ReferralFeeBasisPoints,
		L3ReferralFeeBasisPoints:   params.Fees.L3ReferralFeeBasisPoints,
		RefereeDiscountBasisPoints: params.Fees.RefereeDiscountBasisPoints,
		CreatorFeeBasisPoints:      params.Fees.CreatorFeeBasisPoints,
		MemeFeeBasisPoints:         params.Fees.MemeFeeBasisPoints,
		MigrationFeeBasisPoints:    params.Fees.MigrationFeeBasisPoints,

		MigrationBaseThreshold:  migrationBaseThreshold,
		MigrationQuoteThreshold: migrationQuoteThreshold,

		CurveModel:                 shared.CurveModelConstantProduct,
		InitialVirtualQuoteReserve: initialVirtualQuote,
		InitialVirtualBaseReserve:  initialVirtualBase,

		LockedVesting: params.LockedVesting,
		Authorities:   params.Authorities,
	})
}

// SegmentedParams describes a segmented-curve deployment via market
// caps; the start and migration sqrt prices and the single-segment
// liquidity are derived.
type SegmentedParams struct {
	QuoteMint  solana.PublicKey
	FeeClaimer solana.PublicKey

	BaseDecimal  uint8
	QuoteDecimal uint8

	Fees FeeParams

	// whole tokens / quote units
	TotalTokenSupply            float64
	InitialMarketCap            float64
	MigrationMarketCap          float64
	PercentageSupplyOnMigration float64

	LockedVesting amm.LockedVestingParams
	Authorities   amm.AuthoritySet
}

// BuildSegmentedConfig derives a one-segment curve: start price from the
// initial market cap, migration price from the migration market cap, and
// liquidity sized so the quote threshold is collected exactly over the
// price interval.
func BuildSegmentedConfig(params SegmentedParams) (*amm.Config, error) {
	totalSupply, err := lamportsFromFloat(params.TotalTokenSupply, params.BaseDecimal)
	if err != nil {
		return nil, err
	}
	initialMarketCap, err := lamportsFromFloat(params.InitialMarketCap, params.QuoteDecimal)
	if err != nil {
		return nil, err
	}
	migrationMarketCap, err := lamportsFromFloat(params.MigrationMarketCap, params.QuoteDecimal)
	if err != nil {
		return nil, err
	}

	sqrtStartPrice, err := mathutil.SqrtPriceFromAmounts(totalSupply, initialMarketCap, params.BaseDecimal, params.QuoteDecimal)
	if err != nil {
		return nil, err
	}
	migrationSqrtPrice, err := mathutil.SqrtPriceFromAmounts(totalSupply, migrationMarketCap, params.BaseDecimal, params.QuoteDecimal)
	if err != nil {
		return nil, err
	}

	migrationBaseThreshold, err := lamportsFromDecimal(
		decimalFromFloat(params.TotalTokenSupply).
			Mul(decimalFromFloat(params.PercentageSupplyOnMigration)).
			Div(decimal.NewFromInt(100)),
		params.BaseDecimal,
	)
	if err != nil {
		return nil, err
	}

	migrationQuoteThreshold, err := lamportsFromDecimal(
		decimalFromFloat(params.MigrationMarketCap).
			Mul(decimalFromFloat(params.PercentageSupplyOnMigration)).
			Div(decimal.NewFromInt(100)),
		params.QuoteDecimal,
	)
	if err != nil {
		return nil, err
	}

	liquidity, err := mathutil.InitialLiquidityFromDeltaQuote(
		new(big.Int).SetUint64(migrationQuoteThreshold),
		sqrtStartPrice,
		migrationSqrtPrice,
	)
	if err != nil {
		return nil, err
	}

	startU128, err := mathutil.BigToU128(sqrtStartPrice)
	if err != nil {
		return nil, err
	}
	migrationU128, err := mathutil.BigToU128(migrationSqrtPrice)
	if err != nil {
		return nil, err
	}
	liquidityU128, err := mathutil.BigToU128(liquidity)
	if err != nil {
		return nil, err
	}

	return amm.NewConfig(amm.ConfigParams{
		QuoteMint:  params.QuoteMint,
		FeeClaimer: params.FeeClaimer,

		BaseDecimal:  params.BaseDecimal,
		QuoteDecimal: params.QuoteDecimal,

		FeeBasisPoints:             params.Fees.FeeBasisPoints,
		L1ReferralFeeBasisPoints:   params.Fees.L1ReferralFeeBasisPoints,
		L2ReferralFeeBasisPoints:   params.Fees.L2ReferralFeeBasisPoints,
		L3ReferralFeeBasisPoints:   params.Fees.L3ReferralFeeBasisPoints,
		RefereeDiscountBasisPoints: params.Fees.RefereeDiscountBasisPoints,
		CreatorFeeBasisPoints:      params.Fees.CreatorFeeBasisPoints,
		MemeFeeBasisPoints:         params.Fees.MemeFeeBasisPoints,
		MigrationFeeBasisPoints:    params.Fees.MigrationFeeBasisPoints,

		MigrationBaseThreshold:  migrationBaseThreshold,
		MigrationQuoteThreshold: migrationQuoteThreshold,

		CurveModel:         shared.CurveModelSegmented,
		SqrtStartPrice:     startU128,
		MigrationSqrtPrice: migrationU128,
		Curve: []amm.LiquidityDistribution{
			{
				SqrtPrice: mustU128(shared.MaxSqrtPrice),
				Liquidity: liquidityU128,
			},
		},

		LockedVesting: params.LockedVesting,
		Authorities:   params.Authorities,
	})
}

func decimalFromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func lamportsFromFloat(v float64, decimals uint8) (uint64, error) {
	return lamportsFromDecimal(decimalFromFloat(v), decimals)
}

func lamportsFromDecimal(v decimal.Decimal, decimals uint8) (uint64, error) {
	if v.IsNegative() {
		return 0, shared.ErrInvalidConfig
	}
	scaled := v.Mul(decimal.New(1, int32(decimals))).Floor()
	return mathutil.CastU64(scaled.BigInt())
}

func mustU128(v *big.Int) bin.Uint128 {
	out, err := mathutil.BigToU128(v)
	if err != nil {
		panic(err)
	}
	return out
}
