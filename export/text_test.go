package export

import (
	"bufio"
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestTextRoundTrip(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	freqs := []float64{1.42039e9, 1.42040e9, 1.42041e9}
	values := []float64{-207.12345678901234, -206.99999999999997, -208.5}
	rows := Rows("run-1", "rtl_sdr", "spectrum", freqs, values, 42, start, start.Add(10*time.Second))

	var buf bytes.Buffer
	exp := &Text{Out: &buf}
	if err := exp.Write(context.Background(), Stream(rows)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var gotFreqs, gotValues []float64
	var headers int
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") {
			headers++
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			t.Fatalf("data line %q has %d fields, want 2", line, len(fields))
		}
		f, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			t.Fatalf("parsing frequency %q: %v", fields[0], err)
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			t.Fatalf("parsing value %q: %v", fields[1], err)
		}
		gotFreqs = append(gotFreqs, f)
		gotValues = append(gotValues, v)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scanning output: %v", err)
	}

	if headers == 0 {
		t.Error("output has no commented header lines")
	}
	if len(gotFreqs) != len(freqs) {
		t.Fatalf("read back %d rows, want %d", len(gotFreqs), len(freqs))
	}
	for i := range freqs {
		if gotFreqs[i] != freqs[i] {
			t.Errorf("row %d: frequency %v did not round-trip (got %v)", i, freqs[i], gotFreqs[i])
		}
		if gotValues[i] != values[i] {
			t.Errorf("row %d: value %v did not round-trip (got %v)", i, values[i], gotValues[i])
		}
	}
}

func TestTextHeaderContents(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	rows := Rows("run-7", "sim", "fswitch", []float64{1e6}, []float64{2.5}, 9, start, start)

	var buf bytes.Buffer
	exp := &Text{Out: &buf}
	if err := exp.Write(context.Background(), Stream(rows)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"# identifier: run-7",
		"# source: sim",
		"# mode: fswitch",
		"# start: 2026-03-14T09:26:53Z",
		"# contributions: 9",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing header line %q:\n%s", want, out)
		}
	}
}

func TestTextEmptyStream(t *testing.T) {
	var buf bytes.Buffer
	exp := &Text{Out: &buf}
	if err := exp.Write(context.Background(), Stream(nil)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty stream produced output: %q", buf.String())
	}
}
