package amm

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/jacobhjkim/gachi-amm/amm/math"
	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

// BondingCurve is the mutable per-pair state: reserves, current price,
// lifecycle phase, and accrued-but-unclaimed fees. All mutation goes
// through one logical operation at a time and is all-or-nothing.
type BondingCurve struct {
	Creator    solana.PublicKey
	BaseMint   solana.PublicKey
	BaseVault  solana.PublicKey
	QuoteVault solana.PublicKey

	BaseReserve  uint64
	QuoteReserve uint64

	// ConstantProduct model only
	VirtualBaseReserve  uint64
	VirtualQuoteReserve uint64

	// Segmented model only
	SqrtPrice bin.Uint128

	FeeType         shared.FeeType
	MigrationStatus shared.MigrationStatus
	IsMigrated      bool

	CurveFinishTimestamp uint64

	ProtocolFee uint64
	CreatorFee  uint64
}

// NewBondingCurve seeds a curve from its config: the constant-product
// model starts at the configured virtual reserves, the segmented model at
// the configured start price.
func NewBondingCurve(cfg *Config, creator, baseMint, baseVault, quoteVault solana.PublicKey, baseReserve uint64) *BondingCurve {
	curve := &BondingCurve{
		Creator:     creator,
		BaseMint:    baseMint,
		BaseVault:   baseVault,
		QuoteVault:  quoteVault,
		BaseReserve: baseReserve,
		FeeType:     shared.FeeTypeCreator,
	}
	switch cfg.CurveModel {
	case shared.CurveModelConstantProduct:
		curve.VirtualBaseReserve = cfg.InitialVirtualBaseReserve
		curve.VirtualQuoteReserve = cfg.InitialVirtualQuoteReserve
	case shared.CurveModelSegmented:
		curve.SqrtPrice = cfg.SqrtStartPrice
	}
	return curve
}

// ApplySwapResult commits a computed swap to the reserves and accrued
// fees. It is the single mutation point of a trade; GetSwapResult never
// touches the curve.
func (b *BondingCurve) ApplySwapResult(cfg *Config, result *shared.SwapResult, direction shared.TradeDirection) error {
	next := *b

	var err error
	if direction == shared.TradeDirectionBaseToQuote {
		if next.BaseReserve, err = math.AddU64(next.BaseReserve, result.ActualInputAmount); err != nil {
			return err
		}
		if next.QuoteReserve, err = math.SubU64(next.QuoteReserve, result.OutputAmount); err != nil {
			return err
		}
		if cfg.CurveModel == shared.CurveModelConstantProduct {
			if next.VirtualBaseReserve, err = math.AddU64(next.VirtualBaseReserve, result.ActualInputAmount); err != nil {
				return err
			}
			if next.VirtualQuoteReserve, err = math.SubU64(next.VirtualQuoteReserve, result.OutputAmount); err != nil {
				return err
			}
		}
	} else {
		if next.QuoteReserve, err = math.AddU64(next.QuoteReserve, result.ActualInputAmount); err != nil {
			return err
		}
		if next.BaseReserve, err = math.SubU64(next.BaseReserve, result.OutputAmount); err != nil {
			return err
		}
		if cfg.CurveModel == shared.CurveModelConstantProduct {
			if next.VirtualQuoteReserve, err = math.AddU64(next.VirtualQuoteReserve, result.ActualInputAmount); err != nil {
				return err
			}
			if next.VirtualBaseReserve, err = math.SubU64(next.VirtualBaseReserve, result.OutputAmount); err != nil {
				return err
			}
		}
	}

	if cfg.CurveModel == shared.CurveModelSegmented && result.NextSqrtPrice != nil {
		if next.SqrtPrice, err = math.BigToU128(result.NextSqrtPrice); err != nil {
			return err
		}
	}

	if next.ProtocolFee, err = math.AddU64(next.ProtocolFee, result.ProtocolFee); err != nil {
		return err
	}
	if next.CreatorFee, err = math.AddU64(next.CreatorFee, result.CreatorFee); err != nil {
		return err
	}

	*b = next
	return nil
}

// IsCurveComplete reports whether the curve has graduated. The
// constant-product model graduates when the base reserve is drained to
// its migration threshold; the segmented model when the quote reserve
// reaches its threshold.
func (b *BondingCurve) IsCurveComplete(cfg *Config) bool {
	if cfg.CurveModel == shared.CurveModelConstantProduct {
		return b.BaseReserve <= cfg.MigrationBaseThreshold
	}
	return b.QuoteReserve >= cfg.MigrationQuoteThreshold
}

// MarkCurveFinish records graduation exactly once and advances the
// lifecycle by one step: to PostBondingCurve when a vesting schedule must
// run first, else directly to LockedVesting. Calling it again after
// migration has started is a no-op, so a later trade cannot re-trigger
// the transition.
func (b *BondingCurve) MarkCurveFinish(cfg *Config, now uint64) bool {
	if b.MigrationStatus != shared.MigrationStatusPreBondingCurve {
		return false
	}
	b.CurveFinishTimestamp = now
	if cfg.LockedVesting.HasVesting() {
		b.MigrationStatus = shared.MigrationStatusPostBondingCurve
	} else {
		b.MigrationStatus = shared.MigrationStatusLockedVesting
	}
	return true
}

// advanceMigrationStatus moves the lifecycle forward. Backward or
// repeated transitions are rejected; no state is ever revisited.
func (b *BondingCurve) advanceMigrationStatus(to shared.MigrationStatus) error {
	if to <= b.MigrationStatus {
		return shared.ErrPoolIsIncompleted
	}
	b.MigrationStatus = to
	return nil
}

// ClaimProtocolFee zeroes the accrued protocol fee and returns the prior
// value.
func (b *BondingCurve) ClaimProtocolFee() (uint64, error) {
	if b.ProtocolFee == 0 {
		return 0, shared.ErrNothingToClaim
	}
	claimed := b.ProtocolFee
	b.ProtocolFee = 0
	return claimed, nil
}

// ClaimCreatorFee zeroes the accrued creator/community fee and returns
// the prior value.
func (b *BondingCurve) ClaimCreatorFee() (uint64, error) {
	if b.CreatorFee == 0 {
		return 0, shared.ErrNothingToClaim
	}
	claimed := b.CreatorFee
	b.CreatorFee = 0
	return claimed, nil
}

// SetFeeType transitions the curve's fee-type selector.
//
// Creator -> Meme rescales the accrued unclaimed creator fee by
// meme/creator rate ratio and sweeps the excess into the protocol fee, so
// the transition never invents or destroys value. Meme -> Creator is a
// plain relabel. Any state -> Blocked sweeps the whole accrued creator
// fee into the protocol fee; Blocked is terminal. Re-setting the current
// type is rejected.
func (b *BondingCurve) SetFeeType(cfg *Config, newFeeType shared.FeeType) error {
	if newFeeType > shared.FeeTypeBlocked {
		return shared.ErrInvalidFeeType
	}
	if b.FeeType == newFeeType {
		return shared.ErrFeeTypeAlreadySet
	}

	switch {
	case b.FeeType == shared.FeeTypeCreator && newFeeType == shared.FeeTypeMeme:
		rescaled, err := math.MulDiv64(b.CreatorFee, uint64(cfg.MemeFeeBasisPoints), uint64(cfg.CreatorFeeBasisPoints), shared.RoundingDown)
		if err != nil {
			return err
		}
		excess, err := math.SubU64(b.CreatorFee, rescaled)
		if err != nil {
			return err
		}
		protocolFee, err := math.AddU64(b.ProtocolFee, excess)
		if err != nil {
			return err
		}
		b.CreatorFee = rescaled
		b.ProtocolFee = protocolFee
		b.FeeType = shared.FeeTypeMeme
	case b.FeeType == shared.FeeTypeMeme && newFeeType == shared.FeeTypeCreator:
		b.FeeType = shared.FeeTypeCreator
	case newFeeType == shared.FeeTypeBlocked:
		protocolFee, err := math.AddU64(b.ProtocolFee, b.CreatorFee)
		if err != nil {
			return err
		}
		b.CreatorFee = 0
		b.ProtocolFee = protocolFee
		b.FeeType = shared.FeeTypeBlocked
	default:
		return shared.ErrInvalidFeeType
	}
	return nil
}

// MigrationAmount computes the post-migration-fee reserves handed to the
// migration collaborator for pool seeding. Rounds up so the fee side
// never overcounts.
func (b *BondingCurve) MigrationAmount(migrationFeeBasisPoints uint16) (shared.MigrationAmount, error) {
	keepBps, err := math.SubU64(shared.FeeDenominator, uint64(migrationFeeBasisPoints))
	if err != nil {
		return shared.MigrationAmount{}, err
	}
	quoteAmount, err := math.MulDiv64(b.QuoteReserve, keepBps, shared.FeeDenominator, shared.RoundingUp)
	if err != nil {
		return shared.MigrationAmount{}, err
	}
	baseAmount, err := math.MulDiv64(b.BaseReserve, keepBps, shared.FeeDenominator, shared.RoundingUp)
	if err != nil {
		return shared.MigrationAmount{}, err
	}
	return shared.MigrationAmount{BaseAmount: baseAmount, QuoteAmount: quoteAmount}, nil
}
