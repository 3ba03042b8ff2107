package amm

import (
	"math/big"

	"github.com/jacobhjkim/gachi-amm/amm/math"
	"github.com/jacobhjkim/gachi-amm/amm/shared"
	"github.com/jacobhjkim/gachi-amm/audit"
)

// Engine drives trades, claims, and lifecycle transitions over one
// config. Authorization happens before calls reach the engine: callers
// pass identities the boundary has already checked against the config's
// authority sets.
type Engine struct {
	cfg      *Config
	recorder audit.Recorder
}

type EngineOption func(*Engine)

// WithRecorder replaces the default no-op audit recorder.
func WithRecorder(recorder audit.Recorder) EngineOption {
	return func(e *Engine) { e.recorder = recorder }
}

func NewEngine(cfg *Config, opts ...EngineOption) *Engine {
	e := &Engine{cfg: cfg, recorder: audit.Nop{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Config() *Config {
	return e.cfg
}

// SwapParams carries one trade intent. The referral accounts are the
// referral chain's cashback ledgers; nil tiers are inactive. Cashback is
// the trader's own ledger, nil when the trader has none.
type SwapParams struct {
	AmountIn         uint64
	MinimumAmountOut uint64

	L1Referral *CashbackAccount
	L2Referral *CashbackAccount
	L3Referral *CashbackAccount
	Cashback   *CashbackAccount
}

// Swap executes one full trade: fee decomposition, curve evaluation,
// slippage check, state commit, rebate accrual, and the graduation
// transition when the trade completes the curve. now is the settlement
// timestamp, injected for testability.
func (e *Engine) Swap(curve *BondingCurve, params SwapParams, direction shared.TradeDirection, now uint64) (*shared.SwapResult, error) {
	if params.AmountIn == 0 {
		return nil, shared.ErrAmountIsZero
	}
	if curve.IsCurveComplete(e.cfg) {
		return nil, shared.ErrPoolIsCompleted
	}

	result, err := e.quote(curve, params, direction)
	if err != nil {
		return nil, err
	}
	if result.OutputAmount < params.MinimumAmountOut {
		return nil, shared.ErrExceededSlippage
	}

	// stage the commit so every remaining failure path leaves the curve
	// and the rebate ledgers untouched
	next := *curve
	if err := next.ApplySwapResult(e.cfg, result, direction); err != nil {
		return nil, err
	}
	if next.IsCurveComplete(e.cfg) && next.BaseReserve < e.cfg.MigrationBaseThreshold {
		return nil, shared.ErrInsufficientLiquidityForMigration
	}
	if err := e.accrueRebates(params, result); err != nil {
		return nil, err
	}
	*curve = next

	e.recorder.RecordSwap(curve.BaseMint, direction, result)

	if curve.IsCurveComplete(e.cfg) {
		from := curve.MigrationStatus
		if curve.MarkCurveFinish(e.cfg, now) {
			e.recorder.RecordTransition(curve.BaseMint, from, curve.MigrationStatus)
		}
	}

	return result, nil
}

// SwapQuote prices a trade against a copy of the curve, so off-chain
// quoting returns bit-for-bit the result a settlement would commit.
func (e *Engine) SwapQuote(curve *BondingCurve, params SwapParams, direction shared.TradeDirection) (*shared.SwapResult, error) {
	if params.AmountIn == 0 {
		return nil, shared.ErrAmountIsZero
	}
	if curve.IsCurveComplete(e.cfg) {
		return nil, shared.ErrPoolIsCompleted
	}
	scratch := *curve
	result, err := e.quote(&scratch, params, direction)
	if err != nil {
		return nil, err
	}
	if result.OutputAmount < params.MinimumAmountOut {
		return nil, shared.ErrExceededSlippage
	}
	// rehearse the commit so a quote fails exactly where settlement would
	if err := scratch.ApplySwapResult(e.cfg, result, direction); err != nil {
		return nil, err
	}
	if scratch.IsCurveComplete(e.cfg) && scratch.BaseReserve < e.cfg.MigrationBaseThreshold {
		return nil, shared.ErrInsufficientLiquidityForMigration
	}
	return result, nil
}

func (e *Engine) quote(curve *BondingCurve, params SwapParams, direction shared.TradeDirection) (*shared.SwapResult, error) {
	var tier shared.CashbackTier
	hasCashback := params.Cashback != nil
	if hasCashback {
		tier = params.Cashback.Tier()
	}
	return curve.GetSwapResult(
		e.cfg,
		params.AmountIn,
		direction,
		params.L1Referral != nil,
		params.L2Referral != nil,
		params.L3Referral != nil,
		tier,
		hasCashback,
	)
}

// accrueRebates credits the referral chain and the trader's cashback
// ledger. Every addition is checked before any balance is written, so a
// failing credit leaves all accounts untouched.
func (e *Engine) accrueRebates(params SwapParams, result *shared.SwapResult) error {
	accounts := []*CashbackAccount{params.L1Referral, params.L2Referral, params.L3Referral, params.Cashback}
	amounts := []uint64{result.L1ReferralFee, result.L2ReferralFee, result.L3ReferralFee, result.CashbackFee}

	staged := make(map[*CashbackAccount]uint64, len(accounts))
	for i, account := range accounts {
		if account == nil {
			continue
		}
		balance, ok := staged[account]
		if !ok {
			balance = account.Balance
		}
		balance, err := math.AddU64(balance, amounts[i])
		if err != nil {
			return err
		}
		staged[account] = balance
	}
	for account, balance := range staged {
		account.Balance = balance
	}
	return nil
}

// ClaimProtocolFee pays the accrued protocol fee out to the config's fee
// claimer and zeroes the counter.
func (e *Engine) ClaimProtocolFee(curve *BondingCurve) (uint64, error) {
	claimed, err := curve.ClaimProtocolFee()
	if err != nil {
		return 0, err
	}
	e.recorder.RecordClaim("protocol_fee", e.cfg.FeeClaimer, claimed)
	return claimed, nil
}

// ClaimCreatorFee pays the accrued creator/community fee out to the
// curve's creator and zeroes the counter.
func (e *Engine) ClaimCreatorFee(curve *BondingCurve) (uint64, error) {
	claimed, err := curve.ClaimCreatorFee()
	if err != nil {
		return 0, err
	}
	e.recorder.RecordClaim("creator_fee", curve.Creator, claimed)
	return claimed, nil
}

// SetFeeType applies a reviewed fee-type transition.
func (e *Engine) SetFeeType(curve *BondingCurve, newFeeType shared.FeeType) error {
	from := curve.FeeType
	if err := curve.SetFeeType(e.cfg, newFeeType); err != nil {
		return err
	}
	e.recorder.RecordFeeType(curve.BaseMint, from, curve.FeeType)
	return nil
}

// CompleteLockedVesting acknowledges that the vesting escrow for a
// graduated curve has been created, moving the lifecycle from
// PostBondingCurve to LockedVesting.
func (e *Engine) CompleteLockedVesting(curve *BondingCurve) error {
	if curve.MigrationStatus != shared.MigrationStatusPostBondingCurve {
		return shared.ErrPoolIsIncompleted
	}
	if err := curve.advanceMigrationStatus(shared.MigrationStatusLockedVesting); err != nil {
		return err
	}
	e.recorder.RecordTransition(curve.BaseMint, shared.MigrationStatusPostBondingCurve, curve.MigrationStatus)
	return nil
}

// MigrationResult is everything the migration collaborator needs to seed
// the external pool.
type MigrationResult struct {
	Amount    shared.MigrationAmount
	SqrtPrice *big.Int
	Liquidity *big.Int
}

// CompleteMigration finalizes a graduated curve: computes the
// post-migration-fee seeding amounts and the initial pool liquidity, and
// advances the lifecycle to its terminal CreatedPool state.
func (e *Engine) CompleteMigration(curve *BondingCurve) (*MigrationResult, error) {
	if curve.MigrationStatus != shared.MigrationStatusLockedVesting {
		return nil, shared.ErrPoolIsIncompleted
	}
	if !curve.IsCurveComplete(e.cfg) {
		return nil, shared.ErrPoolIsIncompleted
	}

	amount, err := curve.MigrationAmount(e.cfg.MigrationFeeBasisPoints)
	if err != nil {
		return nil, err
	}

	sqrtPrice := e.cfg.MigrationSqrtPriceBig()
	if sqrtPrice.Sign() == 0 {
		sqrtPrice, err = math.SqrtPriceFromAmounts(amount.BaseAmount, amount.QuoteAmount, e.cfg.BaseDecimal, e.cfg.QuoteDecimal)
		if err != nil {
			return nil, err
		}
	}

	liquidity, err := poolSeedingLiquidity(amount.BaseAmount, amount.QuoteAmount, sqrtPrice)
	if err != nil {
		return nil, err
	}

	from := curve.MigrationStatus
	if err := curve.advanceMigrationStatus(shared.MigrationStatusCreatedPool); err != nil {
		return nil, err
	}
	curve.IsMigrated = true
	e.recorder.RecordTransition(curve.BaseMint, from, curve.MigrationStatus)

	return &MigrationResult{Amount: amount, SqrtPrice: sqrtPrice, Liquidity: liquidity}, nil
}

// poolSeedingLiquidity takes the smaller of the base-funded and
// quote-funded liquidity so neither side of the deposit is overdrawn.
func poolSeedingLiquidity(baseAmount, quoteAmount uint64, sqrtPrice *big.Int) (*big.Int, error) {
	fromBase, err := math.InitialLiquidityFromDeltaBase(u64ToBig(baseAmount), shared.MaxSqrtPrice, sqrtPrice)
	if err != nil {
		return nil, err
	}
	fromQuote, err := math.InitialLiquidityFromDeltaQuote(u64ToBig(quoteAmount), shared.MinSqrtPrice, sqrtPrice)
	if err != nil {
		return nil, err
	}
	if fromBase.Cmp(fromQuote) > 0 {
		return fromQuote, nil
	}
	return fromBase, nil
}

// ClaimCashback pays out a trader's unclaimed rebate balance.
func (e *Engine) ClaimCashback(account *CashbackAccount, now int64) (uint64, error) {
	claimed, err := account.Claim(now)
	if err != nil {
		return 0, err
	}
	e.recorder.RecordClaim("cashback", account.Owner, claimed)
	return claimed, nil
}

// ReclaimCashback sweeps a dormant account's balance to the protocol.
func (e *Engine) ReclaimCashback(account *CashbackAccount, now int64) (uint64, error) {
	reclaimed, err := account.Reclaim(now)
	if err != nil {
		return 0, err
	}
	e.recorder.RecordClaim("cashback_reclaim", e.cfg.FeeClaimer, reclaimed)
	return reclaimed, nil
}

// UpdateCashbackTier stores an authority-assigned tier ordinal.
func (e *Engine) UpdateCashbackTier(account *CashbackAccount, tier uint8) {
	account.SetTier(tier)
}
