package export

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/golang/glog"
)

// Text writes whitespace-delimited "frequency value" rows preceded by
// commented header lines, the format plotting tools and numpy's loadtxt
// read back directly. Values are written with enough digits to round-trip
// float64.
type Text struct {
	Out io.Writer
}

func (t *Text) Write(ctx context.Context, rows <-chan Row) error {
	w := bufio.NewWriter(t.Out)

	wroteHeader := false
	for r := range rows {
		if !wroteHeader {
			fmt.Fprintf(w, "# identifier: %s\n", r.Identifier)
			fmt.Fprintf(w, "# source: %s\n", r.Source)
			fmt.Fprintf(w, "# mode: %s\n", r.Mode)
			fmt.Fprintf(w, "# start: %s\n", r.Start.UTC().Format("2006-01-02T15:04:05Z"))
			fmt.Fprintf(w, "# contributions: %d\n", r.Count)
			wroteHeader = true
		}
		if _, err := fmt.Fprintf(w, "%.18e %.18e\n", r.Freq, r.Power); err != nil {
			glog.Warningf("error while writing row: %s\n", err)
		}
	}
	return w.Flush()
}
