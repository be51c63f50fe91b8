// Package fftx wraps the planned, wisdom-capable FFT transforms the
// periodic solver and TV kernel tree need. The actual transform math is an
// external collaborator (spec.md §1): this package only owns plan caching,
// wisdom persistence and the N-D-via-per-axis-1-D composition, built on
// github.com/MeKo-Christian/algo-fft's complex128 plans, the same
// composition the corpus's PlanNDPeriodic uses.
package fftx

import (
	"os"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/pkg/errors"
)

// PlanType mirrors the FFT library's planning-effort knob.
type PlanType int

const (
	Estimate PlanType = iota
	Measure
	Patient
)

// Wrapper caches one axisPlan per distinct axis length and serves N-D
// forward/inverse transforms by composing per-axis 1-D transforms, exactly
// as the corpus's PlanNDPeriodic does. Plans are configured single-threaded
// (see Design Notes in SPEC_FULL.md §9): the executor's own worker pool
// does the tiling across plan nodes, not algo-fft's internal threading.
type Wrapper struct {
	planType PlanType
	axisCache map[int]*axisPlan
}

// NewWrapper constructs a Wrapper and, if wisdomPath names an existing
// file, loads it before any plan is built.
func NewWrapper(planType PlanType, wisdomPath string) (*Wrapper, error) {
	w := &Wrapper{planType: planType, axisCache: make(map[int]*axisPlan)}
	if wisdomPath != "" {
		if _, err := os.Stat(wisdomPath); err == nil {
			if err := w.LoadWisdom(wisdomPath); err != nil {
				return nil, errors.Wrap(err, "fftx: loading wisdom")
			}
		}
	}
	return w, nil
}

// LoadWisdom imports a previously saved wisdom blob into algo-fft.
func (w *Wrapper) LoadWisdom(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "fftx: reading wisdom file")
	}
	if err := algofft.ImportWisdom(data); err != nil {
		return errors.Wrap(err, "fftx: importing wisdom")
	}
	return nil
}

// SaveWisdom exports algo-fft's current wisdom to path.
func (w *Wrapper) SaveWisdom(path string) error {
	data, err := algofft.ExportWisdom()
	if err != nil {
		return errors.Wrap(err, "fftx: exporting wisdom")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "fftx: writing wisdom file")
	}
	return nil
}

func (w *Wrapper) axisPlanFor(n int) (*axisPlan, error) {
	if p, ok := w.axisCache[n]; ok {
		return p, nil
	}
	p, err := newAxisPlan(n)
	if err != nil {
		return nil, errors.Wrapf(err, "fftx: building axis plan of size %d", n)
	}
	w.axisCache[n] = p
	return p, nil
}

// ForwardReal packs real into a complex buffer (zero imaginary part) and
// forward-transforms it axis by axis over shape, row-major axis-0-fastest.
// The result is unnormalized, matching spec.md §4.4's forward-is-unnormalized
// convention.
func (w *Wrapper) ForwardReal(realBuf []float64, shape []int) ([]complex128, error) {
	data := make([]complex128, len(realBuf))
	for i, v := range realBuf {
		data[i] = complex(v, 0)
	}
	if err := w.transformND(data, shape, false); err != nil {
		return nil, err
	}
	return data, nil
}

// InverseComplex inverse-transforms data axis by axis and returns the real
// parts, unscaled; callers apply the 1/prod(E) normalization themselves.
func (w *Wrapper) InverseComplex(data []complex128, shape []int) ([]float64, error) {
	work := append([]complex128(nil), data...)
	if err := w.transformND(work, shape, true); err != nil {
		return nil, err
	}
	out := make([]float64, len(work))
	for i, c := range work {
		out[i] = real(c)
	}
	return out, nil
}

func (w *Wrapper) transformND(data []complex128, shape []int, inverse bool) error {
	stride := make([]int, len(shape))
	step := 1
	for i := 0; i < len(shape); i++ {
		stride[i] = step
		step *= shape[i]
	}

	for axis, n := range shape {
		plan, err := w.axisPlanFor(n)
		if err != nil {
			return err
		}
		if err := transformAxis(plan, data, shape, stride, axis, inverse); err != nil {
			return errors.Wrapf(err, "fftx: transforming axis %d", axis)
		}
	}
	return nil
}
