package filter

import (
	"testing"

	"github.com/radiosky/radiometer/export"
)

func runFilter(t *testing.T, rows []export.Row, filters []Filterer) []export.Row {
	t.Helper()
	input := make(chan export.Row)
	output := make(chan export.Row)
	go func() {
		defer close(input)
		for _, r := range rows {
			input <- r
		}
	}()
	done := make(chan error, 1)
	go func() {
		done <- Filter(input, output, filters)
	}()
	var got []export.Row
	for r := range output {
		got = append(got, r)
	}
	if err := <-done; err != nil {
		t.Fatalf("Filter: %v", err)
	}
	return got
}

func rowsAt(freqs ...float64) []export.Row {
	rows := make([]export.Row, len(freqs))
	for i, f := range freqs {
		rows[i] = export.Row{Freq: f}
	}
	return rows
}

func TestDCSpike(t *testing.T) {
	tests := []struct {
		name   string
		filter DCSpike
		freqs  []float64
		want   []float64
	}{
		{
			name:   "masks around center",
			filter: DCSpike{CenterFreq: 100e6, Width: 2e3},
			freqs:  []float64{99.998e6, 99.9991e6, 100e6, 100.0009e6, 100.002e6},
			want:   []float64{99.998e6, 100.002e6},
		},
		{
			name:   "zero width passes everything",
			filter: DCSpike{CenterFreq: 100e6},
			freqs:  []float64{99.999e6, 100e6, 100.001e6},
			want:   []float64{99.999e6, 100e6, 100.001e6},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runFilter(t, rowsAt(tt.freqs...), []Filterer{&tt.filter})
			if len(got) != len(tt.want) {
				t.Fatalf("got %d rows, want %d", len(got), len(tt.want))
			}
			for i, r := range got {
				if r.Freq != tt.want[i] {
					t.Errorf("row %d: freq = %v, want %v", i, r.Freq, tt.want[i])
				}
			}
		})
	}
}

func TestFreqRange(t *testing.T) {
	got := runFilter(t, rowsAt(1e6, 2e6, 3e6, 4e6), []Filterer{&FreqRange{FreqLow: 2e6, FreqHigh: 3e6}})
	if len(got) != 2 || got[0].Freq != 2e6 || got[1].Freq != 3e6 {
		t.Fatalf("got %+v, want rows at 2e6 and 3e6", got)
	}
}

func TestFilterCombines(t *testing.T) {
	// A row has to survive every filter to pass.
	filters := []Filterer{
		&FreqRange{FreqLow: 99e6, FreqHigh: 101e6},
		&DCSpike{CenterFreq: 100e6, Width: 1e6},
	}
	got := runFilter(t, rowsAt(98e6, 99.2e6, 100e6, 100.8e6, 102e6), filters)
	if len(got) != 2 || got[0].Freq != 99.2e6 || got[1].Freq != 100.8e6 {
		t.Fatalf("got %+v, want rows at 99.2e6 and 100.8e6", got)
	}
}

func TestFilterNoFilters(t *testing.T) {
	got := runFilter(t, rowsAt(1, 2, 3), nil)
	if len(got) != 3 {
		t.Fatalf("got %d rows, want all 3", len(got))
	}
}
