package parallelx

import "testing"

// TestPowerMatchesExpectedVector is spec.md §8 end-to-end scenario 4:
// data = [1,2,3,4,5], exp=5 -> [1,32,243,1024,3125], for both a
// single-chunk and a fully-chunked run.
func TestPowerMatchesExpectedVector(t *testing.T) {
	for _, chunk := range []int{1, 100} {
		data := []complex128{1, 2, 3, 4, 5}
		tmp := make([]complex128, len(data))
		Power(5, data, tmp, chunk)

		want := []complex128{1, 32, 243, 1024, 3125}
		for i := range want {
			if data[i] != want[i] {
				t.Fatalf("chunk=%d: Power result[%d] = %v, want %v", chunk, i, data[i], want[i])
			}
		}
	}
}

func TestMultiplyLengthMismatchPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on length mismatch")
		}
	}()
	Multiply([]complex128{1, 2}, []complex128{1}, 1)
}
