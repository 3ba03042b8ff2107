package helpers

import (
	"math/big"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/tidwall/gjson"

	"github.com/jacobhjkim/gachi-amm/amm"
	mathutil "github.com/jacobhjkim/gachi-amm/amm/math"
	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

// LoadConfigJSON builds a validated Config from a JSON document.
//
// Wide values (sqrt prices, liquidity) are decimal strings so they
// survive JSON number precision. The curve model is "constant_product"
// or "segmented".
func LoadConfigJSON(doc []byte) (*amm.Config, error) {
	if !gjson.ValidBytes(doc) {
		return nil, shared.ErrInvalidConfig
	}
	root := gjson.ParseBytes(doc)

	quoteMint, err := pubkeyField(root, "quote_mint")
	if err != nil {
		return nil, err
	}
	feeClaimer, err := pubkeyField(root, "fee_claimer")
	if err != nil {
		return nil, err
	}

	params := amm.ConfigParams{
		QuoteMint:  quoteMint,
		FeeClaimer: feeClaimer,

		BaseDecimal:  uint8(root.Get("base_decimal").Uint()),
		QuoteDecimal: uint8(root.Get("quote_decimal").Uint()),

		FeeBasisPoints:             uint16(root.Get("fees.fee_basis_points").Uint()),
		L1ReferralFeeBasisPoints:   uint16(root.Get("fees.l1_referral_fee_basis_points").Uint()),
		L2ReferralFeeBasisPoints:   uint16(root.Get("fees.l2_referral_fee_basis_points").Uint()),
		L3ReferralFeeBasisPoints:   uint16(root.Get("fees.l3_referral_fee_basis_points").Uint()),
		RefereeDiscountBasisPoints: uint16(root.Get("fees.referee_discount_basis_points").Uint()),
		CreatorFeeBasisPoints:      uint16(root.Get("fees.creator_fee_basis_points").Uint()),
		MemeFeeBasisPoints:         uint16(root.Get("fees.meme_fee_basis_points").Uint()),
		MigrationFeeBasisPoints:    uint16(root.Get("fees.migration_fee_basis_points").Uint()),

		MigrationBaseThreshold:  root.Get("migration_base_threshold").Uint(),
		MigrationQuoteThreshold: root.Get("migration_quote_threshold").Uint(),
	}

	switch root.Get("curve_model").String() {
	case "constant_product":
		params.CurveModel = shared.CurveModelConstantProduct
		params.InitialVirtualQuoteReserve = root.Get("initial_virtual_quote_reserve").Uint()
		params.InitialVirtualBaseReserve = root.Get("initial_virtual_base_reserve").Uint()
	case "segmented":
		params.CurveModel = shared.CurveModelSegmented
		if params.SqrtStartPrice, err = u128Field(root, "sqrt_start_price"); err != nil {
			return nil, err
		}
		if params.MigrationSqrtPrice, err = u128Field(root, "migration_sqrt_price"); err != nil {
			return nil, err
		}
		for _, point := range root.Get("curve").Array() {
			sqrtPrice, err := u128Field(point, "sqrt_price")
			if err != nil {
				return nil, err
			}
			liquidity, err := u128Field(point, "liquidity")
			if err != nil {
				return nil, err
			}
			params.Curve = append(params.Curve, amm.LiquidityDistribution{
				SqrtPrice: sqrtPrice,
				Liquidity: liquidity,
			})
		}
	default:
		return nil, shared.ErrInvalidConfig
	}

	if vesting := root.Get("locked_vesting"); vesting.Exists() {
		params.LockedVesting = amm.LockedVestingParams{
			AmountPerPeriod:                vesting.Get("amount_per_period").Uint(),
			CliffDurationFromMigrationTime: vesting.Get("cliff_duration_from_migration_time").Uint(),
			Frequency:                      vesting.Get("frequency").Uint(),
			NumberOfPeriod:                 vesting.Get("number_of_period").Uint(),
			CliffUnlockAmount:              vesting.Get("cliff_unlock_amount").Uint(),
		}
	}

	if params.Authorities.Global, err = pubkeyList(root, "authorities.global"); err != nil {
		return nil, err
	}
	if params.Authorities.Migration, err = pubkeyList(root, "authorities.migration"); err != nil {
		return nil, err
	}
	if params.Authorities.FeeType, err = pubkeyList(root, "authorities.fee_type"); err != nil {
		return nil, err
	}

	return amm.NewConfig(params)
}

func pubkeyField(root gjson.Result, path string) (solana.PublicKey, error) {
	value := root.Get(path)
	if !value.Exists() {
		return solana.PublicKey{}, shared.ErrInvalidConfig
	}
	key, err := solana.PublicKeyFromBase58(value.String())
	if err != nil {
		return solana.PublicKey{}, shared.ErrInvalidConfig
	}
	return key, nil
}

func pubkeyList(root gjson.Result, path string) ([]solana.PublicKey, error) {
	var keys []solana.PublicKey
	for _, value := range root.Get(path).Array() {
		key, err := solana.PublicKeyFromBase58(value.String())
		if err != nil {
			return nil, shared.ErrInvalidConfig
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func u128Field(root gjson.Result, path string) (bin.Uint128, error) {
	value, ok := new(big.Int).SetString(root.Get(path).String(), 10)
	if !ok {
		return bin.Uint128{}, shared.ErrInvalidConfig
	}
	return mathutil.BigToU128(value)
}
