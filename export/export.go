package export

import (
	"context"
	"time"
)

// Row is one finalized result value: a frequency bin and its power, tagged
// with the run that produced it. Total power runs emit a single row.
type Row struct {
	Identifier string
	Source     string
	// Mode is the integration mode that produced the value: power,
	// spectrum or fswitch.
	Mode string
	// Freq is the bin center frequency in Hz.
	Freq float64
	// Power is the bin value in the mode's output scale.
	Power float64
	// Count is the number of accumulator contributions behind the value.
	Count int64
	Start time.Time
	End   time.Time
}

type Exporter interface {
	Write(context.Context, <-chan Row) error
}

// Rows pairs a frequency axis with matching values. Row i of the output
// corresponds to freqs[i] and values[i].
func Rows(identifier, source, mode string, freqs, values []float64, count int64, start, end time.Time) []Row {
	rows := make([]Row, len(values))
	for i := range values {
		rows[i] = Row{
			Identifier: identifier,
			Source:     source,
			Mode:       mode,
			Freq:       freqs[i],
			Power:      values[i],
			Count:      count,
			Start:      start,
			End:        end,
		}
	}
	return rows
}

// Stream feeds rows into a channel the way collection pipelines do, closing
// it when done.
func Stream(rows []Row) <-chan Row {
	out := make(chan Row)
	go func() {
		defer close(out)
		for _, r := range rows {
			out <- r
		}
	}()
	return out
}
