package radiometer

import (
	"math"
)

// FFTShift reorders a natural-order spectrum so that zero frequency sits in
// the middle, matching numpy's fftshift for both even and odd lengths.
func FFTShift(x []float64) []float64 {
	n := len(x)
	if n == 0 {
		return []float64{}
	}
	half := (n + 1) / 2
	out := make([]float64, 0, n)
	out = append(out, x[half:]...)
	return append(out, x[:half]...)
}

// FFTFreqs returns the bin center frequency offsets in Hz for an n-point
// two-sided spectrum in natural FFT order: DC first, then positive
// frequencies, then the negative frequencies wrapped to the end.
func FFTFreqs(n int, rate float64) []float64 {
	freqs := make([]float64, n)
	df := rate / float64(n)
	pos := (n + 1) / 2
	for i := 0; i < pos; i++ {
		freqs[i] = float64(i) * df
	}
	for i := pos; i < n; i++ {
		freqs[i] = float64(i-n) * df
	}
	return freqs
}

// ToDB converts linear power values to decibels.
func ToDB(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = 10 * math.Log10(v)
	}
	return out
}

// FinalizePSD converts an accumulator's averaged power spectrum into a
// power spectral density with a centered absolute frequency axis.
//
// The power-spectrum scaling applied per periodogram divides by sum(w)^2;
// a density wants 1/(rate*sum(w^2)) instead. Multiplying by
// sum(w)^2/sum(w^2) removes the spectrum correction and applies the PSD
// one, and the division by the sample rate converts power per bin into
// power per Hz.
func FinalizePSD(acc *SpectrumAccumulator, est *Estimator, rate, centerFreq float64) (*PowerSpectrum, error) {
	avg, err := acc.Average()
	if err != nil {
		return nil, err
	}
	corr := est.psdCorrection() / rate
	for i := range avg {
		avg[i] *= corr
	}
	freqs := FFTShift(FFTFreqs(len(avg), rate))
	for i := range freqs {
		freqs[i] += centerFreq
	}
	return &PowerSpectrum{
		Freqs:      freqs,
		PSD:        FFTShift(avg),
		CenterFreq: centerFreq,
		SampleRate: rate,
		Count:      acc.Count(),
	}, nil
}
