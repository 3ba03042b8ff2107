package amm

import (
	"math/big"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/jacobhjkim/gachi-amm/amm/math"
	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

// LiquidityDistribution is one breakpoint of a segmented price curve.
type LiquidityDistribution struct {
	SqrtPrice bin.Uint128
	Liquidity bin.Uint128
}

// LockedVestingParams describes the base-token vesting schedule that runs
// between graduation and pool creation. A zero schedule means graduation
// skips the PostBondingCurve phase.
type LockedVestingParams struct {
	AmountPerPeriod                uint64
	CliffDurationFromMigrationTime uint64
	Frequency                      uint64
	NumberOfPeriod                 uint64
	CliffUnlockAmount              uint64
}

func (p LockedVestingParams) HasVesting() bool {
	return p.Frequency != 0 || p.CliffUnlockAmount != 0
}

// TotalAmount is the full vested base amount over the whole schedule.
func (p LockedVestingParams) TotalAmount() (uint64, error) {
	periodic, err := math.MulU64(p.AmountPerPeriod, p.NumberOfPeriod)
	if err != nil {
		return 0, err
	}
	return math.AddU64(periodic, p.CliffUnlockAmount)
}

// AuthoritySet holds the principals allowed to run privileged operations.
// Authorization happens at this boundary; the engine itself assumes an
// already-authorized caller identity.
type AuthoritySet struct {
	Global    []solana.PublicKey
	Migration []solana.PublicKey
	FeeType   []solana.PublicKey
}

func containsKey(keys []solana.PublicKey, key solana.PublicKey) bool {
	for _, k := range keys {
		if k.Equals(key) {
			return true
		}
	}
	return false
}

// ConfigParams carries everything needed to validate and build a Config.
type ConfigParams struct {
	QuoteMint  solana.PublicKey
	FeeClaimer solana.PublicKey

	BaseTokenFlag  uint8
	QuoteTokenFlag uint8
	BaseDecimal    uint8
	QuoteDecimal   uint8

	FeeBasisPoints             uint16
	L1ReferralFeeBasisPoints   uint16
	L2ReferralFeeBasisPoints   uint16
	L3ReferralFeeBasisPoints   uint16
	RefereeDiscountBasisPoints uint16
	CreatorFeeBasisPoints      uint16
	MemeFeeBasisPoints         uint16
	MigrationFeeBasisPoints    uint16

	MigrationBaseThreshold  uint64
	MigrationQuoteThreshold uint64

	CurveModel shared.CurveModel

	// ConstantProduct model
	InitialVirtualQuoteReserve uint64
	InitialVirtualBaseReserve  uint64

	// Segmented model
	SqrtStartPrice     bin.Uint128
	MigrationSqrtPrice bin.Uint128
	Curve              []LiquidityDistribution

	LockedVesting LockedVestingParams
	Authorities   AuthoritySet
}

// Config is immutable once built; every pricing and lifecycle decision
// reads it but never writes it.
type Config struct {
	QuoteMint  solana.PublicKey
	FeeClaimer solana.PublicKey

	BaseTokenFlag  uint8
	QuoteTokenFlag uint8
	BaseDecimal    uint8
	QuoteDecimal   uint8

	FeeBasisPoints             uint16
	L1ReferralFeeBasisPoints   uint16
	L2ReferralFeeBasisPoints   uint16
	L3ReferralFeeBasisPoints   uint16
	RefereeDiscountBasisPoints uint16
	CreatorFeeBasisPoints      uint16
	MemeFeeBasisPoints         uint16
	MigrationFeeBasisPoints    uint16

	MigrationBaseThreshold  uint64
	MigrationQuoteThreshold uint64

	CurveModel shared.CurveModel

	InitialVirtualQuoteReserve uint64
	InitialVirtualBaseReserve  uint64

	SqrtStartPrice     bin.Uint128
	MigrationSqrtPrice bin.Uint128
	Curve              []LiquidityDistribution

	LockedVesting LockedVestingParams

	authorities AuthoritySet
}

// NewConfig validates params and builds an immutable Config. Validation
// mirrors the invariants the fee engine and graduation math rely on, so a
// Config that passes here can never make the per-trade protocol-fee
// subtraction underflow.
func NewConfig(params ConfigParams) (*Config, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	cfg := &Config{
		QuoteMint:  params.QuoteMint,
		FeeClaimer: params.FeeClaimer,

		BaseTokenFlag:  params.BaseTokenFlag,
		QuoteTokenFlag: params.QuoteTokenFlag,
		BaseDecimal:    params.BaseDecimal,
		QuoteDecimal:   params.QuoteDecimal,

		FeeBasisPoints:             params.FeeBasisPoints,
		L1ReferralFeeBasisPoints:   params.L1ReferralFeeBasisPoints,
		L2ReferralFeeBasisPoints:   params.L2ReferralFeeBasisPoints,
		L3ReferralFeeBasisPoints:   params.L3ReferralFeeBasisPoints,
		RefereeDiscountBasisPoints: params.RefereeDiscountBasisPoints,
		CreatorFeeBasisPoints:      params.CreatorFeeBasisPoints,
		MemeFeeBasisPoints:         params.MemeFeeBasisPoints,
		MigrationFeeBasisPoints:    params.MigrationFeeBasisPoints,

		MigrationBaseThreshold:  params.MigrationBaseThreshold,
		MigrationQuoteThreshold: params.MigrationQuoteThreshold,

		CurveModel: params.CurveModel,

		InitialVirtualQuoteReserve: params.InitialVirtualQuoteReserve,
		InitialVirtualBaseReserve:  params.InitialVirtualBaseReserve,

		SqrtStartPrice:     params.SqrtStartPrice,
		MigrationSqrtPrice: params.MigrationSqrtPrice,
		Curve:              append([]LiquidityDistribution(nil), params.Curve...),

		LockedVesting: params.LockedVesting,
		authorities: AuthoritySet{
			Global:    append([]solana.PublicKey(nil), params.Authorities.Global...),
			Migration: append([]solana.PublicKey(nil), params.Authorities.Migration...),
			FeeType:   append([]solana.PublicKey(nil), params.Authorities.FeeType...),
		},
	}
	return cfg, nil
}

func (p ConfigParams) validate() error {
	if p.BaseDecimal < 6 || p.BaseDecimal > 9 {
		return shared.ErrInvalidConfig
	}
	if p.QuoteDecimal < 6 || p.QuoteDecimal > 9 {
		return shared.ErrInvalidConfig
	}
	if p.FeeBasisPoints > shared.MaxFeeBasisPoints {
		return shared.ErrInvalidConfig
	}
	if p.CreatorFeeBasisPoints > shared.MaxCreatorFeeBasisPoints {
		return shared.ErrInvalidConfig
	}
	if p.MemeFeeBasisPoints > shared.MaxCreatorFeeBasisPoints {
		return shared.ErrInvalidConfig
	}
	if p.RefereeDiscountBasisPoints > p.FeeBasisPoints {
		return shared.ErrInvalidConfig
	}

	// the fee engine derives the protocol fee by subtraction, so every
	// component plus the largest possible cashback must leave headroom
	// inside the gross rate
	creatorSide := p.CreatorFeeBasisPoints
	if p.MemeFeeBasisPoints > creatorSide {
		creatorSide = p.MemeFeeBasisPoints
	}
	otherSum := uint64(p.L1ReferralFeeBasisPoints) +
		uint64(p.L2ReferralFeeBasisPoints) +
		uint64(p.L3ReferralFeeBasisPoints) +
		uint64(creatorSide) +
		shared.CashbackChampionBps
	if uint64(p.FeeBasisPoints) <= otherSum {
		return shared.ErrInvalidConfig
	}

	if p.L1ReferralFeeBasisPoints <= p.L2ReferralFeeBasisPoints {
		return shared.ErrInvalidConfig
	}
	if p.L2ReferralFeeBasisPoints <= p.L3ReferralFeeBasisPoints {
		return shared.ErrInvalidConfig
	}

	if p.MigrationBaseThreshold == 0 || p.MigrationQuoteThreshold == 0 {
		return shared.ErrInvalidConfig
	}

	switch p.CurveModel {
	case shared.CurveModelConstantProduct:
		if p.InitialVirtualQuoteReserve == 0 || p.InitialVirtualBaseReserve == 0 {
			return shared.ErrInvalidConfig
		}
	case shared.CurveModelSegmented:
		return validateSegmentedCurve(p.SqrtStartPrice, p.MigrationSqrtPrice, p.Curve)
	default:
		return shared.ErrInvalidConfig
	}
	return nil
}

func validateSegmentedCurve(sqrtStartPrice, migrationSqrtPrice bin.Uint128, curve []LiquidityDistribution) error {
	if len(curve) == 0 || len(curve) > shared.MaxCurvePoint {
		return shared.ErrInvalidCurve
	}

	start := math.U128ToBig(sqrtStartPrice)
	if start.Cmp(shared.MinSqrtPrice) < 0 || start.Cmp(shared.MaxSqrtPrice) >= 0 {
		return shared.ErrInvalidCurve
	}
	migration := math.U128ToBig(migrationSqrtPrice)
	if migration.Cmp(start) <= 0 || migration.Cmp(shared.MaxSqrtPrice) > 0 {
		return shared.ErrInvalidCurve
	}

	// breakpoints must be strictly increasing while configured; a zero
	// point is the unconfigured tail and nothing may follow it
	prev := start
	sawZero := false
	for _, point := range curve {
		price := math.U128ToBig(point.SqrtPrice)
		if price.Sign() == 0 || math.U128ToBig(point.Liquidity).Sign() == 0 {
			sawZero = true
			continue
		}
		if sawZero {
			return shared.ErrInvalidCurve
		}
		if price.Cmp(prev) <= 0 || price.Cmp(shared.MaxSqrtPrice) > 0 {
			return shared.ErrInvalidCurve
		}
		prev = price
	}
	if prev.Cmp(migration) < 0 {
		return shared.ErrInvalidCurve
	}
	return nil
}

// CurvePoints converts the stored breakpoints into the evaluator's wide
// representation.
func (c *Config) CurvePoints() []math.CurvePoint {
	points := make([]math.CurvePoint, len(c.Curve))
	for i, p := range c.Curve {
		points[i] = math.CurvePoint{
			SqrtPrice: math.U128ToBig(p.SqrtPrice),
			Liquidity: math.U128ToBig(p.Liquidity),
		}
	}
	return points
}

// SwallowThreshold is the quote amount a graduating segmented trade may
// leave unconsumed after the walk exhausts the curve.
func (c *Config) SwallowThreshold() (uint64, error) {
	return math.MulDiv64(c.MigrationQuoteThreshold, shared.SwallowPercentage, 100, shared.RoundingDown)
}

func (c *Config) IsGlobalAuthority(key solana.PublicKey) bool {
	return containsKey(c.authorities.Global, key)
}

func (c *Config) IsMigrationAuthority(key solana.PublicKey) bool {
	return containsKey(c.authorities.Migration, key)
}

func (c *Config) IsFeeTypeAuthority(key solana.PublicKey) bool {
	return containsKey(c.authorities.FeeType, key)
}

// MigrationSqrtPriceBig is a convenience for the graduation stop price.
func (c *Config) MigrationSqrtPriceBig() *big.Int {
	return math.U128ToBig(c.MigrationSqrtPrice)
}
