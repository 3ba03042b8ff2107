package shared

import "errors"

// Every failure in the engine is a local validation or invariant fault.
// None are retriable; each aborts the current operation with no partial
// state mutation.
var (
	ErrMathOverflow   = errors.New("math operation overflow")
	ErrTypeCastFailed = errors.New("type cast error")

	ErrAmountIsZero      = errors.New("amount is zero")
	ErrExceededSlippage  = errors.New("exceeded slippage tolerance")
	ErrPoolIsCompleted   = errors.New("pool is completed")
	ErrPoolIsIncompleted = errors.New("pool is incompleted")

	ErrSwapAmountIsOverAThreshold        = errors.New("swap amount is over a threshold")
	ErrNotEnoughLiquidity                = errors.New("not enough liquidity")
	ErrInsufficientLiquidityForMigration = errors.New("insufficient liquidity for migration")
	ErrInvalidMigrationCalculation       = errors.New("invalid migration calculation")

	ErrInvalidFeeType    = errors.New("invalid fee type")
	ErrFeeTypeAlreadySet = errors.New("setting the same fee type")

	ErrInvalidCashbackTier = errors.New("invalid cashback tier")
	ErrClaimCooldownNotMet = errors.New("claim cooldown period not met")
	ErrAccountNotInactive  = errors.New("account is not inactive for required period")
	ErrNothingToClaim      = errors.New("nothing to claim")
	ErrNoCashbackToClaim   = errors.New("no cashback available to claim")

	ErrInvalidConfig = errors.New("invalid amm config")
	ErrInvalidCurve  = errors.New("invalid curve")
)
