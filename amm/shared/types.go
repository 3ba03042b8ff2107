package shared

import "math/big"

type TradeDirection uint8

const (
	TradeDirectionBaseToQuote TradeDirection = 0
	TradeDirectionQuoteToBase TradeDirection = 1
)

func (d TradeDirection) String() string {
	if d == TradeDirectionBaseToQuote {
		return "base_to_quote"
	}
	return "quote_to_base"
}

type Rounding uint8

const (
	RoundingUp   Rounding = 0
	RoundingDown Rounding = 1
)

type TokenType uint8

const (
	TokenTypeSPL       TokenType = 0
	TokenTypeToken2022 TokenType = 1
)

// CurveModel selects the pricing formula for a curve family. The two
// models are not interchangeable within one curve instance.
type CurveModel uint8

const (
	CurveModelConstantProduct CurveModel = 0
	CurveModelSegmented       CurveModel = 1
)

// FeeType selects which rate the creator-or-community fee uses.
type FeeType uint8

const (
	FeeTypeCreator FeeType = 0
	FeeTypeMeme    FeeType = 1
	FeeTypeBlocked FeeType = 2
)

func (t FeeType) String() string {
	switch t {
	case FeeTypeCreator:
		return "creator"
	case FeeTypeMeme:
		return "meme"
	case FeeTypeBlocked:
		return "blocked"
	}
	return "unknown"
}

// MigrationStatus only ever advances forward:
// PreBondingCurve -> (PostBondingCurve) -> LockedVesting -> CreatedPool.
type MigrationStatus uint8

const (
	MigrationStatusPreBondingCurve  MigrationStatus = 0
	MigrationStatusPostBondingCurve MigrationStatus = 1
	MigrationStatusLockedVesting    MigrationStatus = 2
	MigrationStatusCreatedPool      MigrationStatus = 3
)

func (s MigrationStatus) String() string {
	switch s {
	case MigrationStatusPreBondingCurve:
		return "pre_bonding_curve"
	case MigrationStatusPostBondingCurve:
		return "post_bonding_curve"
	case MigrationStatusLockedVesting:
		return "locked_vesting"
	case MigrationStatusCreatedPool:
		return "created_pool"
	}
	return "unknown"
}

// CashbackTier is the trader-loyalty rank, assigned off-chain by an
// authority based on trading volume.
type CashbackTier uint8

const (
	CashbackTierWood     CashbackTier = 0
	CashbackTierBronze   CashbackTier = 1
	CashbackTierSilver   CashbackTier = 2
	CashbackTierGold     CashbackTier = 3
	CashbackTierPlatinum CashbackTier = 4
	CashbackTierDiamond  CashbackTier = 5
	CashbackTierChampion CashbackTier = 6
)

// CashbackBps returns the tier's rebate rate out of FeeDenominator.
func (t CashbackTier) CashbackBps() uint64 {
	switch t {
	case CashbackTierWood:
		return CashbackWoodBps
	case CashbackTierBronze:
		return CashbackBronzeBps
	case CashbackTierSilver:
		return CashbackSilverBps
	case CashbackTierGold:
		return CashbackGoldBps
	case CashbackTierPlatinum:
		return CashbackPlatinumBps
	case CashbackTierDiamond:
		return CashbackDiamondBps
	case CashbackTierChampion:
		return CashbackChampionBps
	}
	return 0
}

// FeeBreakdown decomposes a gross amount into its fee components and the
// remaining net amount. ProtocolFee is derived last by subtraction so it
// absorbs all rounding residue.
type FeeBreakdown struct {
	Amount        uint64
	L1ReferralFee uint64
	L2ReferralFee uint64
	L3ReferralFee uint64
	CreatorFee    uint64
	CashbackFee   uint64
	ProtocolFee   uint64
}

// Sum returns the total fee taken from the gross amount.
func (b FeeBreakdown) Sum() uint64 {
	return b.L1ReferralFee + b.L2ReferralFee + b.L3ReferralFee +
		b.CreatorFee + b.CashbackFee + b.ProtocolFee
}

// SwapResult encodes all results of swapping. NextSqrtPrice is nil for
// the constant-product model.
type SwapResult struct {
	ActualInputAmount uint64
	OutputAmount      uint64
	NextSqrtPrice     *big.Int
	TradingFee        uint64
	ProtocolFee       uint64
	CashbackFee       uint64
	CreatorFee        uint64
	L1ReferralFee     uint64
	L2ReferralFee     uint64
	L3ReferralFee     uint64
}

// SwapAmount is the outcome of a curve walk.
type SwapAmount struct {
	OutputAmount  *big.Int
	NextSqrtPrice *big.Int
	AmountLeft    *big.Int
}

// MigrationAmount is the post-migration-fee pair of reserves handed to
// the migration collaborator for pool seeding.
type MigrationAmount struct {
	BaseAmount  uint64
	QuoteAmount uint64
}
