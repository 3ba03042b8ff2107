package amm

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

func TestCashbackTierClamp(t *testing.T) {
	account := NewCashbackAccount(solana.NewWallet().PublicKey(), 0)
	require.Equal(t, shared.CashbackTierWood, account.Tier())

	account.SetTier(uint8(shared.CashbackTierDiamond))
	require.Equal(t, shared.CashbackTierDiamond, account.Tier())

	// out-of-range ordinals read as the top tier instead of failing
	account.SetTier(9)
	require.Equal(t, shared.CashbackTierChampion, account.Tier())
}

func TestCashbackClaimCooldown(t *testing.T) {
	start := int64(1_700_000_000)
	account := NewCashbackAccount(solana.NewWallet().PublicKey(), start)
	require.NoError(t, account.Accrue(5_000))

	// the creation timestamp seeds the cooldown
	_, err := account.Claim(start + shared.CashbackClaimCooldown - 1)
	require.ErrorIs(t, err, shared.ErrClaimCooldownNotMet)

	claimTime := start + shared.CashbackClaimCooldown
	claimed, err := account.Claim(claimTime)
	require.NoError(t, err)
	require.Equal(t, uint64(5_000), claimed)
	require.Zero(t, account.Balance)
	require.Equal(t, claimTime, account.LastClaimTimestamp)

	_, err = account.Claim(claimTime + shared.CashbackClaimCooldown)
	require.ErrorIs(t, err, shared.ErrNoCashbackToClaim)
}

func TestCashbackReclaim(t *testing.T) {
	start := int64(1_700_000_000)
	account := NewCashbackAccount(solana.NewWallet().PublicKey(), start)
	require.NoError(t, account.Accrue(7_777))

	_, err := account.Reclaim(start + shared.CashbackInactivePeriod - 1)
	require.ErrorIs(t, err, shared.ErrAccountNotInactive)

	reclaimed, err := account.Reclaim(start + shared.CashbackInactivePeriod)
	require.NoError(t, err)
	require.Equal(t, uint64(7_777), reclaimed)
	require.Zero(t, account.Balance)

	// the sweep leaves the claim timestamp alone so the account stays
	// dormant
	require.Equal(t, start, account.LastClaimTimestamp)

	_, err = account.Reclaim(start + shared.CashbackInactivePeriod)
	require.ErrorIs(t, err, shared.ErrNoCashbackToClaim)
}

func TestCashbackAccrueOverflow(t *testing.T) {
	account := NewCashbackAccount(solana.NewWallet().PublicKey(), 0)
	account.Balance = ^uint64(0)
	require.ErrorIs(t, account.Accrue(1), shared.ErrMathOverflow)
	require.Equal(t, ^uint64(0), account.Balance)
}
