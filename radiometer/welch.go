package radiometer

import (
	"fmt"

	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// defaultSegmentLen caps the analysis segment length. Smaller bin counts
// clamp the segment to the bin count.
const defaultSegmentLen = 256

func segmentLen(nbins int) int {
	if nbins < defaultSegmentLen {
		return nbins
	}
	return defaultSegmentLen
}

// Estimator turns one block of IQ samples into one two-sided power spectrum
// estimate by Bartlett's method: the block is split into non-overlapping
// Hann-windowed segments, each segment's magnitude-squared DFT is scaled as
// a power spectrum, and the segments are averaged.
//
// The segment length is fixed when the estimator is created and never
// changes afterwards, so every periodogram of a run is comparable and the
// window correction factors remain valid at normalization time.
type Estimator struct {
	nbins   int
	nperseg int

	win      []float64
	winSum   float64 // sum(w), power spectrum scaling
	winSqSum float64 // sum(w^2), PSD scaling

	fft     *fourier.CmplxFFT
	scratch []complex128
	coeffs  []complex128
}

func NewEstimator(nbins int) (*Estimator, error) {
	if nbins <= 0 {
		return nil, fmt.Errorf("%w: bin count must be positive, got %d", ErrInvalidConfig, nbins)
	}
	nperseg := segmentLen(nbins)
	win := window.Hann(nperseg)
	return &Estimator{
		nbins:    nbins,
		nperseg:  nperseg,
		win:      win,
		winSum:   floats.Sum(win),
		winSqSum: floats.Dot(win, win),
		fft:      fourier.NewCmplxFFT(nbins),
		scratch:  make([]complex128, nbins),
		coeffs:   make([]complex128, nbins),
	}, nil
}

// NBins returns the number of frequency bins per periodogram.
func (e *Estimator) NBins() int {
	return e.nbins
}

// SegmentLen returns the analysis segment length in samples.
func (e *Estimator) SegmentLen() int {
	return e.nperseg
}

// psdCorrection is the factor converting a window-corrected power spectrum
// into a window-corrected power spectral density, before division by the
// sample rate.
func (e *Estimator) psdCorrection() float64 {
	return e.winSum * e.winSum / e.winSqSum
}

// Periodogram computes the block's averaged two-sided power spectrum in
// natural FFT bin order (DC first, negative frequencies wrapped to the
// end). Trailing samples that do not fill a whole segment are truncated;
// a block shorter than one segment is rejected.
func (e *Estimator) Periodogram(iq []complex128) ([]float64, error) {
	nseg := len(iq) / e.nperseg
	if nseg == 0 {
		return nil, fmt.Errorf("%w: block of %d samples is shorter than one %d-sample segment", ErrInvalidConfig, len(iq), e.nperseg)
	}
	p := make([]float64, e.nbins)
	for k := 0; k < nseg; k++ {
		seg := iq[k*e.nperseg : (k+1)*e.nperseg]
		for i, v := range seg {
			e.scratch[i] = v * complex(e.win[i], 0)
		}
		// Zero-pad the windowed segment up to the bin count.
		for i := e.nperseg; i < e.nbins; i++ {
			e.scratch[i] = 0
		}
		c := e.fft.Coefficients(e.coeffs, e.scratch)
		for i, v := range c {
			p[i] += real(v)*real(v) + imag(v)*imag(v)
		}
	}
	// Power spectrum scaling: each segment contributes |X|^2 / sum(w)^2,
	// averaged over the segments of the block.
	scale := 1 / (e.winSum * e.winSum * float64(nseg))
	floats.Scale(scale, p)
	return p, nil
}
