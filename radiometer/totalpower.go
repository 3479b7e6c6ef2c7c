package radiometer

import (
	"github.com/radiosky/radiometer/sdr"
)

// TotalPowerAccumulator sums squared-magnitude sample energy across blocks.
// Add is safe to hand to a source's streaming callback; callbacks are never
// concurrent, so no locking is needed.
type TotalPowerAccumulator struct {
	total   float64
	samples int64
	calls   int
}

// Add accumulates the total power of one block, equivalent to summing
// I^2 + Q^2 over all samples.
func (a *TotalPowerAccumulator) Add(block sdr.SampleBlock) {
	for _, v := range block.IQ {
		a.total += real(v)*real(v) + imag(v)*imag(v)
	}
	a.samples += int64(len(block.IQ))
	a.calls++
}

// Calls returns the number of blocks accumulated so far.
func (a *TotalPowerAccumulator) Calls() int {
	return a.calls
}

// Finalize returns the mean power per sample over everything accumulated.
// Reading is non-destructive; the accumulator may keep accumulating.
func (a *TotalPowerAccumulator) Finalize() (float64, error) {
	if a.samples == 0 {
		return 0, ErrEmptyAccumulation
	}
	return a.total / float64(a.samples), nil
}
