// Package curve implements the quadratic bonding curve: pure, stateless,
// deterministic integer pricing. Cost to mint ds shares from supply s is
// slope*((s+ds)^2 - s^2) / (2*scale). All intermediates run in extended-width
// integers with individually checked operations.
package curve

import (
	"github.com/holiman/uint256"
)

// Curve calibration. Quadratic: price rises linearly with supply, so early
// buyers get more shares per lamport. Total shares issued at the USD
// graduation target depend on the base-asset price at the time.
const (
	Slope uint64 = 781_250
	Scale uint64 = 1_000_000_000_000
)

// BuyQuote returns the lamport cost to mint sharesOut from currentSupply.
// Zero shares cost zero. Cost is strictly increasing in both arguments.
func BuyQuote(sharesOut, currentSupply uint64) (uint64, error) {
	if sharesOut == 0 {
		return 0, nil
	}

	sCurrent := uint256.NewInt(currentSupply)
	sNew, carry := new(uint256.Int).AddOverflow(sCurrent, uint256.NewInt(sharesOut))
	if carry {
		return 0, ErrOverflow
	}

	sNewSq, o1 := new(uint256.Int).MulOverflow(sNew, sNew)
	sCurrSq, o2 := new(uint256.Int).MulOverflow(sCurrent, sCurrent)
	if o1 || o2 {
		return 0, ErrOverflow
	}
	deltaSq, borrow := new(uint256.Int).SubOverflow(sNewSq, sCurrSq)
	if borrow {
		return 0, ErrOverflow
	}

	numerator, o3 := new(uint256.Int).MulOverflow(uint256.NewInt(Slope), deltaSq)
	if o3 {
		return 0, ErrOverflow
	}
	denominator := new(uint256.Int).Mul(uint256.NewInt(2), uint256.NewInt(Scale))
	cost := new(uint256.Int).Div(numerator, denominator)

	return ToU64(cost)
}

// BuyReturn is the inverse of BuyQuote: the shares minted for baseAmount
// lamports from currentSupply, via
//
//	s_new = floor(sqrt(2*amount*scale/slope + s_current^2))
//	shares = s_new - s_current
//
// Zero amount returns zero shares. There is no cap; issuance is dynamic until
// the USD market-cap target graduates the launch.
func BuyReturn(baseAmount, currentSupply uint64) (uint64, error) {
	if baseAmount == 0 {
		return 0, nil
	}

	cost := uint256.NewInt(baseAmount)
	sCurrent := uint256.NewInt(currentSupply)

	t1, o1 := new(uint256.Int).MulOverflow(uint256.NewInt(2), cost)
	if o1 {
		return 0, ErrOverflow
	}
	t2, o2 := new(uint256.Int).MulOverflow(t1, uint256.NewInt(Scale))
	if o2 {
		return 0, ErrOverflow
	}
	term1 := new(uint256.Int).Div(t2, uint256.NewInt(Slope))

	sCurrSq, o3 := new(uint256.Int).MulOverflow(sCurrent, sCurrent)
	if o3 {
		return 0, ErrOverflow
	}
	insideSqrt, carry := new(uint256.Int).AddOverflow(term1, sCurrSq)
	if carry {
		return 0, ErrOverflow
	}

	sNew := integerSqrt(insideSqrt)

	shares, borrow := new(uint256.Int).SubOverflow(sNew, sCurrent)
	if borrow {
		return 0, ErrOverflow
	}
	return ToU64(shares)
}

// SellReturn computes the basis-proportional refund for selling shares:
// floor(sharesToSell * userBasis / userShares). Deliberately NOT the inverse
// of the curve - sellers recover their pro-rata deposit, never the curve's
// current valuation. Paper gains are realized only by holding to graduation.
func SellReturn(sharesToSell, userShares, userBasis uint64) (uint64, error) {
	if sharesToSell == 0 {
		return 0, nil
	}
	if userShares == 0 {
		return 0, ErrInvalidCalculation
	}
	return MulDivU64(sharesToSell, userBasis, userShares)
}

// GeometricMean returns floor(sqrt(a*b)). Constant-product pools mint this
// many LP tokens for an initial deposit of a and b.
func GeometricMean(a, b uint64) (uint64, error) {
	product, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(a), uint256.NewInt(b))
	if overflow {
		return 0, ErrOverflow
	}
	return ToU64(integerSqrt(product))
}

// integerSqrt returns floor(sqrt(n)) by Newton's method. The initial guess is
// derived from the bit length so the first iteration cannot overflow even for
// values near the top of the range.
func integerSqrt(n *uint256.Int) *uint256.Int {
	if n.LtUint64(2) {
		return new(uint256.Int).Set(n)
	}

	shift := uint(n.BitLen()+1) / 2
	x := new(uint256.Int).Lsh(uint256.NewInt(1), shift)

	for {
		y := new(uint256.Int).Div(n, x)
		y.Add(y, x)
		y.Rsh(y, 1)
		if y.Cmp(x) >= 0 {
			return x
		}
		x = y
	}
}
