package amm

import (
	"errors"
	"math/big"
	"math/bits"
)

// errOverflow is returned by the checked helpers; handlers surface it as
// tecMATH_OVERFLOW.
var errOverflow = errors.New("arithmetic overflow")

// mulDiv computes (a*b)/den with a 128-bit intermediate, truncating toward
// zero. Division by zero and quotients that do not fit in 64 bits are
// overflow.
func mulDiv(a, b, den uint64) (uint64, error) {
	if den == 0 {
		return 0, errOverflow
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= den {
		return 0, errOverflow
	}
	q, _ := bits.Div64(hi, lo, den)
	return q, nil
}

func checkedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, errOverflow
	}
	return sum, nil
}

func checkedSub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, errOverflow
	}
	return diff, nil
}

// initialShares returns floor(sqrt(base*quote)) for the first deposit into
// an empty pool. The product can exceed 64 bits, so it is taken over a
// 128-bit value.
func initialShares(base, quote uint64) uint64 {
	product := new(big.Int).Mul(
		new(big.Int).SetUint64(base),
		new(big.Int).SetUint64(quote),
	)
	return product.Sqrt(product).Uint64()
}
