package parallelx

import "github.com/tealab-go/nhls/internal/mathutil"

// SetValue sets every element of a to v, chunked over chunkSize.
func SetValue(a []complex128, v complex128, chunkSize int) {
	Execute(len(a), chunkSize, func(start, end int) {
		for i := start; i < end; i++ {
			a[i] = v
		}
	})
}

// Multiply computes a[i] *= b[i] for all i, chunked over chunkSize.
// len(a) must equal len(b); mismatched lengths are a programmer error.
func Multiply(a, b []complex128, chunkSize int) {
	if len(a) != len(b) {
		panic("parallelx: Multiply length mismatch")
	}
	Execute(len(a), chunkSize, func(start, end int) {
		for i := start; i < end; i++ {
			a[i] *= b[i]
		}
	})
}

// Copy copies src into dst, chunked over chunkSize. len(dst) must equal
// len(src).
func Copy(dst, src []complex128, chunkSize int) {
	if len(dst) != len(src) {
		panic("parallelx: Copy length mismatch")
	}
	Execute(len(src), chunkSize, func(start, end int) {
		copy(dst[start:end], src[start:end])
	})
}

// Power raises a to the k-th power elementwise via repeated squaring,
// leaving the result in a and using tmp (same length as a) as scratch for
// the running squares. k must be >= 1. After return a[i] == a_in[i]^k.
func Power(k int, a, tmp []complex128, chunkSize int) {
	if len(a) != len(tmp) {
		panic("parallelx: Power scratch length mismatch")
	}
	if k < 1 {
		panic("parallelx: Power exponent must be >= 1")
	}

	Copy(tmp, a, chunkSize)
	SetValue(a, 1, chunkSize)

	exp := k
	rounds := mathutil.Log2Ceil(k)
	for r := 0; r < rounds; r++ {
		if exp%2 == 1 {
			Multiply(a, tmp, chunkSize)
			exp--
		}
		exp /= 2
		Execute(len(tmp), chunkSize, func(start, end int) {
			for i := start; i < end; i++ {
				tmp[i] *= tmp[i]
			}
		})
	}
}
