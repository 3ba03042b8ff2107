package amm

import (
	"github.com/gagliardetto/solana-go"

	"github.com/jacobhjkim/gachi-amm/amm/math"
	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

// CashbackAccount tracks one trader's loyalty tier and rebate balance
// across every curve. The tier is assigned by an authority off this
// ledger, based on trading volume.
type CashbackAccount struct {
	Owner solana.PublicKey

	// raw ordinal; read through Tier() which clamps out-of-range values
	CurrentTier uint8

	// unclaimed quote-denominated rebates accrued from swaps
	Balance uint64

	LastClaimTimestamp int64
}

// NewCashbackAccount starts a trader at the lowest tier. The claim
// timestamp is seeded with the creation time so the first claim also
// waits out the cooldown.
func NewCashbackAccount(owner solana.PublicKey, now int64) *CashbackAccount {
	return &CashbackAccount{
		Owner:              owner,
		CurrentTier:        uint8(shared.CashbackTierWood),
		LastClaimTimestamp: now,
	}
}

// Tier normalizes the stored ordinal; anything above Champion reads as
// Champion rather than failing.
func (a *CashbackAccount) Tier() shared.CashbackTier {
	if a.CurrentTier > uint8(shared.CashbackTierChampion) {
		return shared.CashbackTierChampion
	}
	return shared.CashbackTier(a.CurrentTier)
}

// SetTier stores a new tier ordinal. Assignment is authority-gated at
// the engine boundary.
func (a *CashbackAccount) SetTier(tier uint8) {
	a.CurrentTier = tier
}

// Accrue adds a swap's rebate to the unclaimed balance.
func (a *CashbackAccount) Accrue(amount uint64) error {
	balance, err := math.AddU64(a.Balance, amount)
	if err != nil {
		return err
	}
	a.Balance = balance
	return nil
}

// Claim pays out the full unclaimed balance. It requires the cooldown to
// have elapsed since the last claim and a positive balance; on success
// the claim timestamp advances to now.
func (a *CashbackAccount) Claim(now int64) (uint64, error) {
	if now-a.LastClaimTimestamp < shared.CashbackClaimCooldown {
		return 0, shared.ErrClaimCooldownNotMet
	}
	if a.Balance == 0 {
		return 0, shared.ErrNoCashbackToClaim
	}
	claimed := a.Balance
	a.Balance = 0
	a.LastClaimTimestamp = now
	return claimed, nil
}

// Reclaim sweeps a dormant account's balance back to the protocol. Only
// allowed after the inactivity window; it deliberately leaves the claim
// timestamp alone, so the account stays dormant and a later legitimate
// claim simply finds the balance already swept.
func (a *CashbackAccount) Reclaim(now int64) (uint64, error) {
	if now-a.LastClaimTimestamp < shared.CashbackInactivePeriod {
		return 0, shared.ErrAccountNotInactive
	}
	if a.Balance == 0 {
		return 0, shared.ErrNoCashbackToClaim
	}
	reclaimed := a.Balance
	a.Balance = 0
	return reclaimed, nil
}
