package fftx

import (
	algofft "github.com/MeKo-Christian/algo-fft"
)

// axisPlan wraps a single 1-D algo-fft plan and the scratch needed to
// transform strided lines out of an N-D buffer, directly grounded on the
// corpus's PlanNDPeriodic.axisPlan/transformLine composition.
type axisPlan struct {
	n        int
	fftPlan  *algofft.Plan[complex128]
	scratchA []complex128
	scratchB []complex128
}

func newAxisPlan(n int) (*axisPlan, error) {
	p, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, err
	}
	return &axisPlan{
		n:        n,
		fftPlan:  p,
		scratchA: make([]complex128, n),
		scratchB: make([]complex128, n),
	}, nil
}

func (p *axisPlan) transformLine(data []complex128, start, stride int, inverse bool) error {
	if stride == 1 {
		line := data[start : start+p.n]
		var err error
		if inverse {
			err = p.fftPlan.Inverse(p.scratchB, line)
		} else {
			err = p.fftPlan.Forward(p.scratchB, line)
		}
		if err != nil {
			return err
		}
		copy(line, p.scratchB)
		return nil
	}

	for i := 0; i < p.n; i++ {
		p.scratchA[i] = data[start+i*stride]
	}
	var err error
	if inverse {
		err = p.fftPlan.Inverse(p.scratchB, p.scratchA)
	} else {
		err = p.fftPlan.Forward(p.scratchB, p.scratchA)
	}
	if err != nil {
		return err
	}
	for i := 0; i < p.n; i++ {
		data[start+i*stride] = p.scratchB[i]
	}
	return nil
}

// transformAxis walks every line along axis and transforms it in place.
func transformAxis(p *axisPlan, data []complex128, shape, stride []int, axis int, inverse bool) error {
	lineStride := stride[axis]
	totalLines := len(data) / shape[axis]

	reducedDims := make([]int, 0, len(shape)-1)
	reducedStride := make([]int, 0, len(shape)-1)
	for d := range shape {
		if d != axis {
			reducedDims = append(reducedDims, shape[d])
			reducedStride = append(reducedStride, stride[d])
		}
	}

	indices := make([]int, len(reducedDims))
	for line := 0; line < totalLines; line++ {
		start := 0
		for d := range reducedDims {
			start += indices[d] * reducedStride[d]
		}
		if err := p.transformLine(data, start, lineStride, inverse); err != nil {
			return err
		}
		for d := len(indices) - 1; d >= 0; d-- {
			indices[d]++
			if indices[d] < reducedDims[d] {
				break
			}
			indices[d] = 0
		}
	}
	return nil
}
