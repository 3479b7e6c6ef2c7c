package radiometer

import (
	"fmt"

	"github.com/golang/glog"
)

// SwitchPlan is the precomputed schedule of a frequency switched run. The
// run dwells on one frequency for BlocksPerDwell consecutive blocks, then
// retunes, strictly alternating between the base and throw frequencies
// starting on the base.
type SwitchPlan struct {
	BlocksPerDwell int
	NumDwells      int
}

// PlanSwitching validates the switching configuration and derives the dwell
// schedule. All failures here happen before any hardware interaction.
//
// The integration time must allow at least one full dwell on each
// frequency, otherwise one side of the pair would have nothing accumulated.
func PlanSwitching(opts Options) (SwitchPlan, error) {
	if opts.SwitchRate <= 0 {
		return SwitchPlan{}, fmt.Errorf("%w: switching rate must be positive, got %f", ErrInvalidConfig, opts.SwitchRate)
	}
	if opts.IntegrationTime < 2/opts.SwitchRate {
		return SwitchPlan{}, fmt.Errorf("%w: integration time %.3fs is shorter than one full ON/OFF cycle at %.3f Hz switching; lengthen the integration or slow the switching", ErrInvalidConfig, opts.IntegrationTime, opts.SwitchRate)
	}
	if opts.SwitchRate > maxSwitchRate {
		glog.Warningf("Switching at %.1f Hz exceeds %d Hz: a greater fraction of observation time will be spent retuning, lengthening the wait for the requested effective integration time.", opts.SwitchRate, maxSwitchRate)
	}

	dwellSamples := int(opts.SampleRate / opts.SwitchRate)
	blocks := dwellSamples / opts.NumSamp
	if blocks < 1 {
		return SwitchPlan{}, fmt.Errorf("%w: dwell of %d samples is shorter than one %d-sample block", ErrInvalidConfig, dwellSamples, opts.NumSamp)
	}
	total := int(opts.SampleRate * opts.IntegrationTime)
	return SwitchPlan{
		BlocksPerDwell: blocks,
		NumDwells:      total / dwellSamples,
	}, nil
}
