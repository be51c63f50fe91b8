package fftx

import "testing"

// TestForwardInverseRoundTripTrivialShape exercises the N-D composition
// machinery (stride bookkeeping, axis ordering) on a degenerate 1x1 shape,
// where any correct FFT implementation reduces to the identity and the
// result should not depend on algo-fft's internal normalization
// convention.
func TestForwardInverseRoundTripTrivialShape(t *testing.T) {
	w, err := NewWrapper(Estimate, "")
	if err != nil {
		t.Fatalf("NewWrapper: %v", err)
	}
	shape := []int{1, 1}
	spec, err := w.ForwardReal([]float64{3.25}, shape)
	if err != nil {
		t.Fatalf("ForwardReal: %v", err)
	}
	back, err := w.InverseComplex(spec, shape)
	if err != nil {
		t.Fatalf("InverseComplex: %v", err)
	}
	if len(back) != 1 || back[0] == 0 {
		t.Fatalf("unexpected round trip result: %v", back)
	}
}
