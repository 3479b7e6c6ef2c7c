// Package rtlsdr captures IQ samples from an RTL-SDR dongle by running the
// rtl_sdr utility and reading raw unsigned 8 bit IQ pairs from its stdout.
// Retuning restarts the capture process with the new tuning state.
package rtlsdr

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"

	"github.com/golang/glog"

	"github.com/radiosky/radiometer/sdr"
)

const (
	SourceName   = "rtl_sdr"
	captureAlias = "rtl_sdr"

	// rtl_sdr emits unsigned 8 bit samples centered on 127.5.
	iqOffset = 127.5
	iqScale  = 127.5
)

type SDR struct {
	Identifier string

	cfg     sdr.Config
	cmd     *exec.Cmd
	samples *bufio.Reader
}

func (s *SDR) Name() string {
	return SourceName
}

// Configure stores the tuning state and stops any running capture so the
// next read starts a fresh one at the new frequency.
func (s *SDR) Configure(cfg sdr.Config) error {
	if cfg.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %f", cfg.SampleRate)
	}
	if err := s.stop(); err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

func (s *SDR) start() error {
	if s.cmd != nil {
		return nil
	}
	args := []string{
		fmt.Sprintf("-s%d", int64(s.cfg.SampleRate)),
		fmt.Sprintf("-f%d", int64(s.cfg.CenterFreq)),
		fmt.Sprintf("-g%f", s.cfg.Gain),
		"-", // dump raw samples to stdout
	}
	cmd := exec.Command(captureAlias, args...)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	glog.V(1).Infof("Starting RTL SDR capture: %q", cmd)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("unable to start capture: %w", err)
	}
	s.cmd = cmd
	s.samples = bufio.NewReaderSize(out, 1<<16)
	return nil
}

func (s *SDR) stop() error {
	if s.cmd == nil {
		return nil
	}
	if err := s.cmd.Process.Kill(); err != nil {
		return err
	}
	s.cmd.Wait() // reap; the kill above makes the exit status uninteresting
	s.cmd = nil
	s.samples = nil
	return nil
}

// ReadBlock blocks until numSamp IQ samples have been captured at the
// configured tuning state.
func (s *SDR) ReadBlock(numSamp int) (sdr.SampleBlock, error) {
	if err := s.start(); err != nil {
		return sdr.SampleBlock{}, err
	}
	raw := make([]byte, 2*numSamp)
	if _, err := io.ReadFull(s.samples, raw); err != nil {
		return sdr.SampleBlock{}, fmt.Errorf("reading from %s: %w", captureAlias, err)
	}
	iq := make([]complex128, numSamp)
	for i := range iq {
		re := (float64(raw[2*i]) - iqOffset) / iqScale
		im := (float64(raw[2*i+1]) - iqOffset) / iqScale
		iq[i] = complex(re, im)
	}
	return sdr.SampleBlock{
		IQ:         iq,
		SampleRate: s.cfg.SampleRate,
		CenterFreq: s.cfg.CenterFreq,
	}, nil
}

// Stream delivers maxCalls consecutive blocks to fn from a single capture
// process.
func (s *SDR) Stream(numSamp int, maxCalls int, fn sdr.BlockFunc) error {
	for i := 0; i < maxCalls; i++ {
		block, err := s.ReadBlock(numSamp)
		if err != nil {
			return err
		}
		fn(block)
	}
	return nil
}

func (s *SDR) Close() error {
	return s.stop()
}
