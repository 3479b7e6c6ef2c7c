// Package sdr defines the sample source contract the integration engine
// collects from, along with the block and configuration types shared by all
// source implementations.
package sdr

// Config describes the tuning state requested from a sample source.
type Config struct {
	// SampleRate is the IQ sample rate in Hz. For SDR dongles this is
	// intrinsically tied to the usable bandwidth.
	SampleRate float64
	// CenterFreq is the tuner center frequency in Hz.
	CenterFreq float64
	// Gain is the requested tuner gain in dB.
	Gain float64
}

// SampleBlock is a fixed-length run of complex IQ samples tagged with the
// tuning state in effect when it was captured. Blocks are never mutated once
// produced.
type SampleBlock struct {
	IQ         []complex128
	SampleRate float64
	CenterFreq float64
}

// BlockFunc is invoked once per delivered block in streaming mode. Callbacks
// are never issued concurrently.
type BlockFunc func(SampleBlock)

// SampleSource yields fixed-length blocks of complex samples at a configured
// rate, center frequency and gain. Sources may be retuned between blocks by
// calling Configure again.
type SampleSource interface {
	Name() string
	Configure(Config) error
	// ReadBlock blocks until numSamp samples have been captured.
	ReadBlock(numSamp int) (SampleBlock, error)
	// Stream delivers up to maxCalls blocks of numSamp samples to fn,
	// one at a time.
	Stream(numSamp int, maxCalls int, fn BlockFunc) error
	Close() error
}
