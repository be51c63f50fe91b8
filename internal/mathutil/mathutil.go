// Package mathutil holds the small integer-arithmetic helpers shared by
// plan, tv and parallelx. None of it is stencil-specific.
package mathutil

import "math/bits"

// CeilDiv returns ceil(a/b) for positive a, b.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}

func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func MaxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func AbsInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// Log2Ceil returns the bit-length of i (the number of square-and-multiply
// rounds repeated_square needs for exponent i): 1->1, 2->2, 3->2, 4->3,
// 7->3, 8->4.
func Log2Ceil(i int) int {
	if i <= 0 {
		return 0
	}
	return bits.Len(uint(i))
}

// NextPow2 returns the smallest power of two >= n.
func NextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// IsPow2 reports whether n is an exact power of two.
func IsPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// RoundEven rounds x to the nearest integer and nudges the result to even
// when exactly halfway, so AP planner sub-box extents stay splittable.
func RoundEven(x float64) int {
	lo := int(x)
	frac := x - float64(lo)
	switch {
	case frac < 0.5:
		return lo
	case frac > 0.5:
		return lo + 1
	default:
		if lo%2 == 0 {
			return lo
		}
		return lo + 1
	}
}
