// Package filter drops unwanted result rows between a run and its exporter.
package filter

import "github.com/radiosky/radiometer/export"

type Filterer interface {
	ShouldIgnore(*export.Row) bool
}

// Filter copies rows from input to output, skipping rows any filter wants
// ignored.
func Filter(input <-chan export.Row, output chan<- export.Row, filters []Filterer) error {
	defer close(output)
	for r := range input {
		skip := false
		for _, f := range filters {
			if f.ShouldIgnore(&r) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		output <- r
	}
	return nil
}

// DCSpike masks the bins around the tuned center frequency. Zero-IF
// receivers like the rtl-sdr leave a spurious spike at DC that is
// instrumental, not sky signal.
type DCSpike struct {
	// CenterFreq is the tuned center frequency in Hz.
	CenterFreq float64
	// Width is the full width of the masked region in Hz.
	Width float64
}

func (f *DCSpike) ShouldIgnore(r *export.Row) bool {
	if f.Width <= 0 {
		return false
	}
	diff := r.Freq - f.CenterFreq
	if diff < 0 {
		diff = -diff
	}
	return diff <= f.Width/2
}

// FreqRange keeps only rows inside the given frequency range.
type FreqRange struct {
	FreqLow  float64
	FreqHigh float64
}

func (f *FreqRange) ShouldIgnore(r *export.Row) bool {
	if r.Freq < f.FreqLow {
		return true
	}
	if r.Freq > f.FreqHigh {
		return true
	}
	return false
}
