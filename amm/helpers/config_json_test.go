package helpers

import (
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

const feesJSON = `{
	"fee_basis_points": 1000,
	"l1_referral_fee_basis_points": 300,
	"l2_referral_fee_basis_points": 200,
	"l3_referral_fee_basis_points": 100,
	"referee_discount_basis_points": 100,
	"creator_fee_basis_points": 100,
	"meme_fee_basis_points": 50,
	"migration_fee_basis_points": 1000
}`

func TestLoadConfigJSONConstantProduct(t *testing.T) {
	quoteMint := solana.NewWallet().PublicKey()
	feeClaimer := solana.NewWallet().PublicKey()
	global := solana.NewWallet().PublicKey()

	doc := fmt.Sprintf(`{
		"quote_mint": %q,
		"fee_claimer": %q,
		"base_decimal": 6,
		"quote_decimal": 9,
		"fees": %s,
		"migration_base_threshold": 206900000000000,
		"migration_quote_threshold": 85000000000,
		"curve_model": "constant_product",
		"initial_virtual_quote_reserve": 30000000000,
		"initial_virtual_base_reserve": 1073000000000000,
		"locked_vesting": {
			"amount_per_period": 1000000,
			"frequency": 86400,
			"number_of_period": 30
		},
		"authorities": {
			"global": [%q]
		}
	}`, quoteMint, feeClaimer, feesJSON, global)

	cfg, err := LoadConfigJSON([]byte(doc))
	require.NoError(t, err)

	require.Equal(t, quoteMint, cfg.QuoteMint)
	require.Equal(t, feeClaimer, cfg.FeeClaimer)
	require.Equal(t, shared.CurveModelConstantProduct, cfg.CurveModel)
	require.Equal(t, uint16(1_000), cfg.FeeBasisPoints)
	require.Equal(t, uint64(206_900_000_000_000), cfg.MigrationBaseThreshold)
	require.Equal(t, uint64(30_000_000_000), cfg.InitialVirtualQuoteReserve)
	require.True(t, cfg.LockedVesting.HasVesting())
	require.True(t, cfg.IsGlobalAuthority(global))
}

func TestLoadConfigJSONSegmented(t *testing.T) {
	quoteMint := solana.NewWallet().PublicKey()
	feeClaimer := solana.NewWallet().PublicKey()

	// wide values carried as decimal strings
	doc := fmt.Sprintf(`{
		"quote_mint": %q,
		"fee_claimer": %q,
		"base_decimal": 6,
		"quote_decimal": 9,
		"fees": %s,
		"migration_base_threshold": 200000000000000,
		"migration_quote_threshold": 60000000000,
		"curve_model": "segmented",
		"sqrt_start_price": "18446744073709551616",
		"migration_sqrt_price": "36893488147419103232",
		"curve": [
			{"sqrt_price": "73786976294838206464", "liquidity": "1267650600228229401496703205376"}
		]
	}`, quoteMint, feeClaimer, feesJSON)

	cfg, err := LoadConfigJSON([]byte(doc))
	require.NoError(t, err)

	require.Equal(t, shared.CurveModelSegmented, cfg.CurveModel)
	require.Equal(t, uint64(1), cfg.SqrtStartPrice.Hi)
	require.Equal(t, uint64(2), cfg.MigrationSqrtPrice.Hi)
	require.Len(t, cfg.Curve, 1)
	require.Equal(t, uint64(4), cfg.Curve[0].SqrtPrice.Hi)
	require.Equal(t, uint64(1<<36), cfg.Curve[0].Liquidity.Hi)
}

func TestLoadConfigJSONRejections(t *testing.T) {
	_, err := LoadConfigJSON([]byte("not json"))
	require.ErrorIs(t, err, shared.ErrInvalidConfig)

	_, err = LoadConfigJSON([]byte(`{"quote_mint": "not-a-key"}`))
	require.ErrorIs(t, err, shared.ErrInvalidConfig)

	quoteMint := solana.NewWallet().PublicKey()
	feeClaimer := solana.NewWallet().PublicKey()

	doc := fmt.Sprintf(`{
		"quote_mint": %q,
		"fee_claimer": %q,
		"base_decimal": 6,
		"quote_decimal": 9,
		"fees": %s,
		"migration_base_threshold": 1,
		"migration_quote_threshold": 1,
		"curve_model": "bonded"
	}`, quoteMint, feeClaimer, feesJSON)
	_, err = LoadConfigJSON([]byte(doc))
	require.ErrorIs(t, err, shared.ErrInvalidConfig)

	doc = fmt.Sprintf(`{
		"quote_mint": %q,
		"fee_claimer": %q,
		"base_decimal": 6,
		"quote_decimal": 9,
		"fees": %s,
		"migration_base_threshold": 1,
		"migration_quote_threshold": 1,
		"curve_model": "segmented",
		"sqrt_start_price": "not-a-number"
	}`, quoteMint, feeClaimer, feesJSON)
	_, err = LoadConfigJSON([]byte(doc))
	require.ErrorIs(t, err, shared.ErrInvalidConfig)
}
