package u128

import (
	"errors"
	"fmt"
	"math/big"

	binary "github.com/gagliardetto/binary"
)

type Uint128 binary.Uint128

func (u *Uint128) Scan(s fmt.ScanState, ch rune) error {
	i := new(big.Int)
	if err := i.Scan(s, ch); err != nil {
		return err
	} else if i.Sign() < 0 {
		return errors.New("value cannot be negative")
	} else if i.BitLen() > 128 {
		return errors.New("value overflows Uint128")
	}
	u.Lo = i.Uint64()
	u.Hi = i.Rsh(i, 64).Uint64()
	return nil
}

// FromString parses a decimal string into a Uint128, for sqrt prices and
// liquidity values too wide for JSON numbers.
func FromString(num string) (binary.Uint128, error) {
	out := binary.NewUint128LittleEndian()
	if _, err := fmt.Sscan(num, (*Uint128)(out)); err != nil {
		return binary.Uint128{}, err
	}
	return *out, nil
}

// MustFromString is FromString for known-good literals.
func MustFromString(num string) binary.Uint128 {
	out, err := FromString(num)
	if err != nil {
		panic(err)
	}
	return out
}

// FromBig narrows a big integer, rejecting negatives and overflow.
func FromBig(v *big.Int) (binary.Uint128, error) {
	if v == nil || v.Sign() < 0 {
		return binary.Uint128{}, errors.New("value cannot be negative")
	}
	if v.BitLen() > 128 {
		return binary.Uint128{}, errors.New("value overflows Uint128")
	}
	lo := new(big.Int).And(v, maxU64).Uint64()
	hi := new(big.Int).Rsh(v, 64).Uint64()
	return binary.Uint128{Lo: lo, Hi: hi}, nil
}

var maxU64 = new(big.Int).SetUint64(^uint64(0))
