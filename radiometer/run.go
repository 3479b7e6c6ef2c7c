package radiometer

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/radiosky/radiometer/sdr"
)

// RunTotalPower implements a total power radiometer: it integrates the
// squared magnitude of every collected sample and returns the time-averaged
// power per sample in uncalibrated units.
//
// Collection uses the source's push mode: the accumulator's Add method is
// handed to the stream as the per-block callback.
func RunTotalPower(src sdr.SampleSource, opts Options) (float64, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}
	defer closeSource(src)
	if err := src.Configure(sdr.Config{SampleRate: opts.SampleRate, CenterFreq: opts.CenterFreq, Gain: opts.Gain}); err != nil {
		return 0, fmt.Errorf("configuring %s: %w", src.Name(), err)
	}

	numCalls := int(opts.SampleRate*opts.IntegrationTime) / opts.NumSamp
	glog.Infof("Total power integration: %.6f MHz, %d calls of %d samples", opts.CenterFreq/1e6, numCalls, opts.NumSamp)

	acc := &TotalPowerAccumulator{}
	if err := src.Stream(opts.NumSamp, numCalls, acc.Add); err != nil {
		return 0, fmt.Errorf("streaming from %s: %w", src.Name(), err)
	}
	logEffectiveTime(acc.Calls(), opts)
	return acc.Finalize()
}

// RunSpectrum estimates an averaged power spectral density at a fixed
// center frequency: each collected block contributes one Bartlett
// periodogram to an accumulator, whose average is normalized to a PSD at
// the end of the run.
func RunSpectrum(src sdr.SampleSource, opts Options) (*PowerSpectrum, error) {
	if err := opts.validateSpectral(); err != nil {
		return nil, err
	}
	est, err := NewEstimator(opts.NBins)
	if err != nil {
		return nil, err
	}
	defer closeSource(src)
	if err := src.Configure(sdr.Config{SampleRate: opts.SampleRate, CenterFreq: opts.CenterFreq, Gain: opts.Gain}); err != nil {
		return nil, fmt.Errorf("configuring %s: %w", src.Name(), err)
	}

	numCalls := int(opts.SampleRate*opts.IntegrationTime) / opts.NumSamp
	glog.Infof("Spectrum integration: %.6f MHz, %d bins, %d calls of %d samples", opts.CenterFreq/1e6, opts.NBins, numCalls, opts.NumSamp)

	acc := NewSpectrumAccumulator(opts.NBins)
	if err := collect(src, est, acc, opts.NumSamp, numCalls); err != nil {
		return nil, err
	}
	logEffectiveTime(acc.Count(), opts)
	return FinalizePSD(acc, est, opts.SampleRate, opts.CenterFreq)
}

// RunFSwitch estimates a folded differential spectrum by alternating the
// source between the base and throw frequencies on the dwell schedule,
// accumulating the two tunings independently, normalizing both to PSDs and
// folding the pair.
func RunFSwitch(src sdr.SampleSource, opts Options) (*FoldedSpectrum, error) {
	if err := opts.validateSpectral(); err != nil {
		return nil, err
	}
	plan, err := PlanSwitching(opts)
	if err != nil {
		return nil, err
	}
	est, err := NewEstimator(opts.NBins)
	if err != nil {
		return nil, err
	}
	defer closeSource(src)

	glog.Infof("Frequency switched integration: %.6f/%.6f MHz, %d dwells of %d calls", opts.CenterFreq/1e6, opts.ThrowFreq/1e6, plan.NumDwells, plan.BlocksPerDwell)

	accOn := NewSpectrumAccumulator(opts.NBins)
	accOff := NewSpectrumAccumulator(opts.NBins)
	for d := 0; d < plan.NumDwells; d++ {
		freq, acc := opts.CenterFreq, accOn
		if d%2 == 1 {
			freq, acc = opts.ThrowFreq, accOff
		}
		if err := src.Configure(sdr.Config{SampleRate: opts.SampleRate, CenterFreq: freq, Gain: opts.Gain}); err != nil {
			return nil, fmt.Errorf("retuning %s to %f Hz: %w", src.Name(), freq, err)
		}
		if err := collect(src, est, acc, opts.NumSamp, plan.BlocksPerDwell); err != nil {
			return nil, err
		}
	}
	logEffectiveTime(accOn.Count()+accOff.Count(), opts)

	on, err := FinalizePSD(accOn, est, opts.SampleRate, opts.CenterFreq)
	if err != nil {
		return nil, err
	}
	off, err := FinalizePSD(accOff, est, opts.SampleRate, opts.ThrowFreq)
	if err != nil {
		return nil, err
	}
	return Fold(on, off)
}

// collect is the pull-mode adapter: it issues blocking reads and feeds each
// block's periodogram into the accumulator.
func collect(src sdr.SampleSource, est *Estimator, acc *SpectrumAccumulator, numSamp, numCalls int) error {
	for i := 0; i < numCalls; i++ {
		block, err := src.ReadBlock(numSamp)
		if err != nil {
			return fmt.Errorf("reading from %s: %w", src.Name(), err)
		}
		p, err := est.Periodogram(block.IQ)
		if err != nil {
			return err
		}
		if err := acc.Add(p); err != nil {
			return err
		}
	}
	return nil
}

func closeSource(src sdr.SampleSource) {
	if err := src.Close(); err != nil {
		glog.Warningf("error closing %s: %s", src.Name(), err)
	}
}

func logEffectiveTime(calls int, opts Options) {
	glog.Infof("%d calls were made to the source for an effective integration time of %.2fs", calls, float64(calls*opts.NumSamp)/opts.SampleRate)
}
