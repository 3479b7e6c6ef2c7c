// Package render draws stored spectra as images: power over frequency with
// a labeled axis grid.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/radiosky/radiometer/export"
)

var (
	traceColor      = color.RGBA{0, 90, 200, 255}
	gridColor       = color.RGBA{0, 0, 0, 255}
	backgroundColor = color.RGBA{255, 255, 255, 255}

	expSuffixLookup = map[int]string{
		0: "Hz",  // 10^0
		1: "kHz", // 10^3
		2: "MHz", // 10^6
		3: "GHz", // 10^9
		4: "THz", // 10^12
	}
)

const (
	gridMarginTop    = 20 // pixels
	gridMarginBottom = 20 // pixels
	gridMarginLeft   = 70 // pixels
	gridTickLen      = 6  // pixels
	gridMinStepX     = 120
	gridMinStepY     = 40
)

// GetReadableFreq renders a frequency in Hz with the closest sensible unit.
func GetReadableFreq(freq float64) string {
	exp := 0
	for f := freq; f > 1000; f = f / 1000.0 {
		exp += 1
	}
	suffix, ok := expSuffixLookup[exp]
	if !ok {
		return fmt.Sprintf("%.0f Hz", freq)
	}
	return fmt.Sprintf("%.3f %s", freq/math.Pow(1000, float64(exp)), suffix)
}

func drawLabel(canvas *image.RGBA, x, y int, label string) {
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(gridColor),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6(y * 64),
		},
	}
	d.DrawString(label)
}

func drawTick(canvas *image.RGBA, start image.Point, length int, horizontal bool) {
	for i := 0; i <= length; i++ {
		if horizontal {
			canvas.SetRGBA(start.X+i, start.Y, gridColor)
		} else {
			canvas.SetRGBA(start.X, start.Y+i, gridColor)
		}
	}
}

// Spectrum renders rows (ordered by ascending frequency) as a power over
// frequency trace with labeled ticks. The rows' power values are plotted in
// whatever scale they were exported in.
func Spectrum(rows []export.Row, width, height int) (*image.RGBA, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("need at least 2 rows to render, got %d", len(rows))
	}

	minFreq, maxFreq := rows[0].Freq, rows[len(rows)-1].Freq
	minPower, maxPower := rows[0].Power, rows[0].Power
	for _, r := range rows {
		if r.Power < minPower {
			minPower = r.Power
		}
		if r.Power > maxPower {
			maxPower = r.Power
		}
	}
	if maxFreq <= minFreq {
		return nil, fmt.Errorf("rows are not ordered by ascending frequency")
	}
	if maxPower == minPower {
		maxPower = minPower + 1 // avoid dividing by a zero power span
	}

	plotW := width - gridMarginLeft
	plotH := height - gridMarginTop - gridMarginBottom
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{backgroundColor}, image.Point{}, draw.Src)

	// Trace, one vertical segment per pixel column.
	prevY := -1
	for x := 0; x < plotW; x++ {
		f := minFreq + (maxFreq-minFreq)*float64(x)/float64(plotW-1)
		y := gridMarginTop + plotH - 1 - int(float64(plotH-1)*(powerAt(rows, f)-minPower)/(maxPower-minPower))
		if prevY < 0 {
			prevY = y
		}
		lo, hi := y, prevY
		if lo > hi {
			lo, hi = hi, lo
		}
		for yy := lo; yy <= hi; yy++ {
			canvas.SetRGBA(gridMarginLeft+x, yy, traceColor)
		}
		prevY = y
	}

	// X ticks and frequency labels.
	for x := 0; x < plotW; x += gridMinStepX {
		drawTick(canvas, image.Point{gridMarginLeft + x, gridMarginTop + plotH}, gridTickLen, false)
		f := minFreq + (maxFreq-minFreq)*float64(x)/float64(plotW-1)
		drawLabel(canvas, gridMarginLeft+x+2, height-5, GetReadableFreq(f))
	}

	// Y ticks and power labels.
	for y := 0; y < plotH; y += gridMinStepY {
		drawTick(canvas, image.Point{gridMarginLeft - gridTickLen, gridMarginTop + y}, gridTickLen, true)
		p := maxPower - (maxPower-minPower)*float64(y)/float64(plotH-1)
		drawLabel(canvas, 2, gridMarginTop+y+4, fmt.Sprintf("%.2f", p))
	}

	return canvas, nil
}

// powerAt linearly interpolates the row values at frequency f.
func powerAt(rows []export.Row, f float64) float64 {
	lo, hi := 0, len(rows)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if rows[mid].Freq <= f {
			lo = mid
		} else {
			hi = mid
		}
	}
	span := rows[hi].Freq - rows[lo].Freq
	if span == 0 {
		return rows[lo].Power
	}
	frac := (f - rows[lo].Freq) / span
	return rows[lo].Power + frac*(rows[hi].Power-rows[lo].Power)
}
