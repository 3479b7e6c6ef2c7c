// Package radiometer implements streaming spectral estimation for a radio
// telescope receiver: total power integration, Bartlett-averaged power
// spectral density estimation and folded differential spectra from periodic
// frequency switching.
//
// All accumulation state is owned by the run that created it and discarded
// when the run returns; results are immutable once produced.
package radiometer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned for configurations that cannot produce a
	// usable result. It is always raised before any hardware interaction.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrEmptyAccumulation is returned when finalizing an accumulator that
	// never received a contribution.
	ErrEmptyAccumulation = errors.New("empty accumulation")
)

// maxSwitchRate is the switching rate in Hz above which retuning overhead
// starts to dominate the observation. Higher rates are accepted with a
// warning.
const maxSwitchRate = 10

// Options configures one integration run.
type Options struct {
	// NumSamp is the number of IQ samples per source call. Powers of two
	// are most efficient.
	NumSamp int
	// NBins is the number of frequency bins in the resulting spectrum.
	NBins int
	// SampleRate in Hz; for SDR dongles this is also the bandwidth.
	SampleRate float64
	// CenterFreq is the bandpass center frequency in Hz.
	CenterFreq float64
	// Gain is the requested tuner gain in dB.
	Gain float64
	// IntegrationTime is the total effective integration time in seconds.
	IntegrationTime float64

	// ThrowFreq is the alternate center frequency in Hz for frequency
	// switched runs.
	ThrowFreq float64
	// SwitchRate is the ON/OFF alternation rate in Hz for frequency
	// switched runs.
	SwitchRate float64
}

func (o Options) validate() error {
	if o.NumSamp <= 0 {
		return fmt.Errorf("%w: num samples per call must be positive, got %d", ErrInvalidConfig, o.NumSamp)
	}
	if o.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %f", ErrInvalidConfig, o.SampleRate)
	}
	if o.IntegrationTime <= 0 {
		return fmt.Errorf("%w: integration time must be positive, got %f", ErrInvalidConfig, o.IntegrationTime)
	}
	if int(o.SampleRate*o.IntegrationTime) < o.NumSamp {
		return fmt.Errorf("%w: integration time %.3fs yields less than one %d-sample block", ErrInvalidConfig, o.IntegrationTime, o.NumSamp)
	}
	return nil
}

func (o Options) validateSpectral() error {
	if err := o.validate(); err != nil {
		return err
	}
	if o.NBins <= 0 {
		return fmt.Errorf("%w: bin count must be positive, got %d", ErrInvalidConfig, o.NBins)
	}
	if seg := segmentLen(o.NBins); o.NumSamp < seg {
		return fmt.Errorf("%w: block of %d samples is shorter than one %d-sample segment", ErrInvalidConfig, o.NumSamp, seg)
	}
	return nil
}

// PowerSpectrum is a finalized averaged spectrum: an ascending absolute
// frequency axis in Hz and linear power spectral density values in
// uncalibrated relative power per Hz.
type PowerSpectrum struct {
	Freqs      []float64
	PSD        []float64
	CenterFreq float64
	SampleRate float64
	// Count is the number of periodograms averaged into the estimate.
	Count int
}

// BinWidth returns the frequency spacing between adjacent bins in Hz.
func (s *PowerSpectrum) BinWidth() float64 {
	return s.SampleRate / float64(len(s.PSD))
}

// DB returns the PSD converted to dB/Hz.
func (s *PowerSpectrum) DB() []float64 {
	return ToDB(s.PSD)
}

// FoldedSpectrum is the differential spectrum produced by folding a
// frequency switched ON/OFF pair. It covers the reduced frequency support
// shared by the two tunings.
type FoldedSpectrum struct {
	Freqs []float64
	Power []float64
	// Count is the number of periodograms behind the fold, summed over
	// both tunings.
	Count int
}
