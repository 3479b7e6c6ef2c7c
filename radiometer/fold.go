package radiometer

import (
	"fmt"
	"math"
)

// Fold combines a frequency switched ON/OFF spectrum pair into one
// differential spectrum.
//
// The instrumental bandpass depends only on the offset from the tuned
// center, so it occupies the same bins in both spectra and the per-bin
// difference ON-OFF cancels it. A sky signal at a fixed absolute frequency
// lands in different bins of the two tunings: the difference carries it
// once with positive sign at its ON position and once negated, displaced by
// the frequency throw. Shifting the difference by the throw and subtracting
// again re-registers the two copies so they average, halving the noise
// contribution on the overlap region:
//
//	fold[i] = (diff[i] - diff[i-s]) / 2
//
// where s is the throw in bins. The result keeps the ON spectrum's
// frequency axis, restricted to the overlap. The throw is re-registered to
// the nearest whole bin.
func Fold(on, off *PowerSpectrum) (*FoldedSpectrum, error) {
	n := len(on.PSD)
	if len(off.PSD) != n {
		return nil, fmt.Errorf("%w: spectra have %d and %d bins", ErrInvalidConfig, n, len(off.PSD))
	}
	df := on.BinWidth()
	if math.Abs(off.BinWidth()-df) > df*1e-9 {
		return nil, fmt.Errorf("%w: spectra have unequal bin spacing", ErrInvalidConfig)
	}
	s := int(math.Round((off.CenterFreq - on.CenterFreq) / df))
	if s == 0 {
		return nil, fmt.Errorf("%w: frequency throw smaller than one bin", ErrInvalidConfig)
	}
	if s <= -n || s >= n {
		return nil, fmt.Errorf("%w: frequency throw of %d bins exceeds the spectrum", ErrInvalidConfig, s)
	}

	diff := make([]float64, n)
	for i := range diff {
		diff[i] = on.PSD[i] - off.PSD[i]
	}

	lo, hi := 0, n
	if s > 0 {
		lo = s
	} else {
		hi = n + s
	}
	fold := make([]float64, hi-lo)
	for i := lo; i < hi; i++ {
		fold[i-lo] = (diff[i] - diff[i-s]) / 2
	}
	freqs := make([]float64, hi-lo)
	copy(freqs, on.Freqs[lo:hi])

	return &FoldedSpectrum{Freqs: freqs, Power: fold, Count: on.Count + off.Count}, nil
}
