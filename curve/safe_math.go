package curve

import (
	"errors"
	"math"

	"github.com/holiman/uint256"
)

// Arithmetic failures. Every checked operation reports one of these instead of
// wrapping or truncating silently.
var (
	ErrOverflow           = errors.New("curve: math overflow")
	ErrDivisionByZero     = errors.New("curve: division by zero")
	ErrInvalidCalculation = errors.New("curve: invalid calculation")
)

// AddU64 returns a+b or ErrOverflow.
func AddU64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// SubU64 returns a-b or ErrOverflow when the result would underflow.
func SubU64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrOverflow
	}
	return a - b, nil
}

// MulDivU64 computes floor(a*b/den) in extended width and checks that the
// result converts back to uint64.
func MulDivU64(a, b, den uint64) (uint64, error) {
	if den == 0 {
		return 0, ErrDivisionByZero
	}
	prod := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	quo := new(uint256.Int).Div(prod, uint256.NewInt(den))
	return ToU64(quo)
}

// ToU64 converts an extended-width value, reporting ErrOverflow when it does
// not fit.
func ToU64(v *uint256.Int) (uint64, error) {
	if !v.IsUint64() {
		return 0, ErrOverflow
	}
	return v.Uint64(), nil
}
