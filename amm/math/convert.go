package math

import (
	"math/big"

	bin "github.com/gagliardetto/binary"

	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

func U128ToBig(v bin.Uint128) *big.Int {
	return v.BigInt()
}

// BigToU128 narrows a wide integer into a stored Uint128 field, failing
// instead of truncating.
func BigToU128(v *big.Int) (bin.Uint128, error) {
	if v == nil || v.Sign() < 0 || v.BitLen() > 128 {
		return bin.Uint128{}, shared.ErrTypeCastFailed
	}
	lo := new(big.Int).And(v, shared.U64Max).Uint64()
	hi := new(big.Int).Rsh(v, 64).Uint64()
	return bin.Uint128{Lo: lo, Hi: hi}, nil
}

// CastU64 narrows a wide integer into a 64-bit amount field, failing
// instead of truncating.
func CastU64(v *big.Int) (uint64, error) {
	if v == nil || v.Sign() < 0 || v.BitLen() > 64 {
		return 0, shared.ErrTypeCastFailed
	}
	return v.Uint64(), nil
}
