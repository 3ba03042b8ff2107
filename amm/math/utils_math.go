package math

import (
	"math/big"

	"github.com/jacobhjkim/gachi-amm/amm/shared"
)

// Wide-integer helpers over math/big. Sub and Div are checked; the curve
// math treats any negative intermediate as an overflow fault.

func Add(a, b *big.Int) *big.Int {
	return new(big.Int).Add(a, b)
}

func Sub(a, b *big.Int) (*big.Int, error) {
	if b.Cmp(a) > 0 {
		return nil, shared.ErrMathOverflow
	}
	return new(big.Int).Sub(a, b), nil
}

func Mul(a, b *big.Int) *big.Int {
	return new(big.Int).Mul(a, b)
}

func Div(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, shared.ErrMathOverflow
	}
	return new(big.Int).Div(a, b), nil
}

func MulDiv(x, y, denominator *big.Int, rounding shared.Rounding) (*big.Int, error) {
	if denominator.Sign() == 0 {
		return nil, shared.ErrMathOverflow
	}
	if denominator.Cmp(big.NewInt(1)) == 0 || x.Sign() == 0 || y.Sign() == 0 {
		return new(big.Int).Mul(x, y), nil
	}
	prod := new(big.Int).Mul(x, y)
	if rounding == shared.RoundingUp {
		numerator := new(big.Int).Add(prod, new(big.Int).Sub(denominator, big.NewInt(1)))
		return new(big.Int).Div(numerator, denominator), nil
	}
	return new(big.Int).Div(prod, denominator), nil
}

func MulShr(x, y *big.Int, offset uint) *big.Int {
	if offset == 0 || x.Sign() == 0 || y.Sign() == 0 {
		return new(big.Int).Mul(x, y)
	}
	prod := new(big.Int).Mul(x, y)
	return new(big.Int).Rsh(prod, offset)
}

const sqrtMaxIterations = 255

// Sqrt is the integer square root via Newton's method, seeded from the
// operand's bit length. It must be exact so that independent
// implementations agree bit for bit; non-convergence within 255
// iterations is a math fault.
func Sqrt(value *big.Int) (*big.Int, error) {
	if value.Sign() < 0 {
		return nil, shared.ErrMathOverflow
	}
	if value.Sign() == 0 {
		return big.NewInt(0), nil
	}

	x := big.NewInt(1)
	if bits := value.BitLen(); bits > 1 {
		x.Lsh(x, uint(bits-1)/2)
	}

	iterations := 0
	for {
		prev := new(big.Int).Set(x)
		quot := new(big.Int).Div(value, x)
		x.Add(x, quot).Rsh(x, 1)

		iterations++
		if x.Cmp(prev) == 0 || iterations >= sqrtMaxIterations {
			break
		}
	}
	if iterations >= sqrtMaxIterations {
		return nil, shared.ErrMathOverflow
	}
	return x, nil
}
