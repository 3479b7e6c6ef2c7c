package radiometer

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// SpectrumAccumulator owns a running per-bin power sum and the count of
// periodograms contributed to it. The sum is only ever increased; averaging
// happens at read time and leaves the accumulator usable.
type SpectrumAccumulator struct {
	sum   []float64
	count int
}

func NewSpectrumAccumulator(nbins int) *SpectrumAccumulator {
	return &SpectrumAccumulator{sum: make([]float64, nbins)}
}

// Add accumulates one periodogram.
func (a *SpectrumAccumulator) Add(p []float64) error {
	if len(p) != len(a.sum) {
		return fmt.Errorf("periodogram has %d bins, accumulator has %d", len(p), len(a.sum))
	}
	floats.Add(a.sum, p)
	a.count++
	return nil
}

// Merge folds another accumulator's contributions into this one. Averages
// over merged accumulators equal the average over a single accumulator fed
// the same periodograms in any order.
func (a *SpectrumAccumulator) Merge(b *SpectrumAccumulator) error {
	if len(b.sum) != len(a.sum) {
		return fmt.Errorf("cannot merge %d-bin accumulator into %d bins", len(b.sum), len(a.sum))
	}
	floats.Add(a.sum, b.sum)
	a.count += b.count
	return nil
}

// Count returns the number of periodograms accumulated so far.
func (a *SpectrumAccumulator) Count() int {
	return a.count
}

// Average returns the per-bin mean of everything accumulated. The returned
// slice is a fresh copy; the accumulator is left untouched.
func (a *SpectrumAccumulator) Average() ([]float64, error) {
	if a.count == 0 {
		return nil, ErrEmptyAccumulation
	}
	avg := make([]float64, len(a.sum))
	copy(avg, a.sum)
	floats.Scale(1/float64(a.count), avg)
	return avg, nil
}
