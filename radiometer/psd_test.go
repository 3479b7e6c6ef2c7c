package radiometer

import (
	"errors"
	"math"
	"testing"
)

func TestFFTShift(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{name: "even", in: []float64{0, 1, 2, 3, 4, 5}, want: []float64{3, 4, 5, 0, 1, 2}},
		{name: "odd", in: []float64{0, 1, 2, 3, 4}, want: []float64{3, 4, 0, 1, 2}},
		{name: "empty", in: []float64{}, want: []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FFTShift(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("length = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("index %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFFTFreqs(t *testing.T) {
	tests := []struct {
		name string
		n    int
		rate float64
		want []float64
	}{
		{name: "even", n: 8, rate: 8, want: []float64{0, 1, 2, 3, -4, -3, -2, -1}},
		{name: "odd", n: 5, rate: 5, want: []float64{0, 1, 2, -2, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FFTFreqs(tt.n, tt.rate)
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Fatalf("bin %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFFTShiftedFreqsAscend(t *testing.T) {
	freqs := FFTShift(FFTFreqs(256, 1.024e6))
	for i := 1; i < len(freqs); i++ {
		if freqs[i] <= freqs[i-1] {
			t.Fatalf("frequency axis not ascending at bin %d: %v then %v", i, freqs[i-1], freqs[i])
		}
	}
	if freqs[128] != 0 {
		t.Errorf("center bin = %v Hz, want 0", freqs[128])
	}
}

func TestFinalizePSDToneRoundTrip(t *testing.T) {
	// A pure tone at a known offset from center must land on the
	// absolute frequency fc+offset after shifting and re-centering.
	const (
		nbins = 256
		rate  = 1.024e6
		fc    = 1.4204e9
	)
	df := rate / nbins

	tests := []struct {
		name string
		bin  int // natural FFT bin of the tone
	}{
		{name: "positive_offset", bin: 16},
		{name: "negative_offset", bin: nbins - 12}, // wraps to -12 bins
		{name: "dc", bin: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := NewEstimator(nbins)
			if err != nil {
				t.Fatalf("NewEstimator: %v", err)
			}
			acc := NewSpectrumAccumulator(nbins)
			for i := 0; i < 4; i++ {
				p, err := est.Periodogram(tone(1024, nbins, tt.bin, 1))
				if err != nil {
					t.Fatalf("Periodogram: %v", err)
				}
				if err := acc.Add(p); err != nil {
					t.Fatalf("Add: %v", err)
				}
			}
			spectrum, err := FinalizePSD(acc, est, rate, fc)
			if err != nil {
				t.Fatalf("FinalizePSD: %v", err)
			}

			offset := float64(tt.bin) * df
			if tt.bin >= nbins/2 {
				offset = float64(tt.bin-nbins) * df
			}
			peak := 0
			for i, v := range spectrum.PSD {
				if v > spectrum.PSD[peak] {
					peak = i
				}
			}
			if got, want := spectrum.Freqs[peak], fc+offset; math.Abs(got-want) > df {
				t.Errorf("peak at %f Hz, want %f Hz within one bin (%f Hz)", got, want, df)
			}
		})
	}
}

func TestFinalizePSDAppliesWindowCorrection(t *testing.T) {
	// With the tone confined to one bin, the PSD peak must equal the
	// power spectrum peak times sum(w)^2/sum(w^2)/rate.
	const (
		nbins = 256
		rate  = 1.024e6
	)
	est, err := NewEstimator(nbins)
	if err != nil {
		t.Fatalf("NewEstimator: %v", err)
	}
	acc := NewSpectrumAccumulator(nbins)
	p, err := est.Periodogram(tone(256, nbins, 16, 1))
	if err != nil {
		t.Fatalf("Periodogram: %v", err)
	}
	if err := acc.Add(p); err != nil {
		t.Fatalf("Add: %v", err)
	}
	spectrum, err := FinalizePSD(acc, est, rate, 0)
	if err != nil {
		t.Fatalf("FinalizePSD: %v", err)
	}

	want := p[16] * est.psdCorrection() / rate
	got := spectrum.PSD[nbins/2+16]
	if math.Abs(got-want) > want*1e-12 {
		t.Errorf("PSD peak = %v, want %v", got, want)
	}
}

func TestFinalizePSDEmptyAccumulator(t *testing.T) {
	est, err := NewEstimator(64)
	if err != nil {
		t.Fatalf("NewEstimator: %v", err)
	}
	if _, err := FinalizePSD(NewSpectrumAccumulator(64), est, 1e6, 100e6); !errors.Is(err, ErrEmptyAccumulation) {
		t.Fatalf("FinalizePSD() err = %v, want ErrEmptyAccumulation", err)
	}
}

func TestToDB(t *testing.T) {
	got := ToDB([]float64{1, 10, 0.001})
	want := []float64{0, 10, -30}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("bin %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
