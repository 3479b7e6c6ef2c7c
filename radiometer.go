// The radiometer binary runs one integration on a sample source and exports
// the result: total power, an averaged power spectral density, or a folded
// frequency switched spectrum.
package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/radiosky/radiometer/export"
	"github.com/radiosky/radiometer/filter"
	"github.com/radiosky/radiometer/radiometer"
	"github.com/radiosky/radiometer/sdr"
	"github.com/radiosky/radiometer/sdr/rtlsdr"
	"github.com/radiosky/radiometer/sdr/sim"

	// Blind import support for sqlite3 used by sqlite.go.
	_ "github.com/mattn/go-sqlite3"
)

// Flags
var (
	identifier = flag.String("id", "", "unique identifier of this run (defaults to a random UUID)")
	sdrType    = flag.String("sdr", "", "sample source to use (one of: rtlsdr, sim)")
	mode       = flag.String("mode", "spectrum", "integration mode (one of: power, spectrum, fswitch)")
	output     = flag.String("output", "text", "export mechanism to use (one of: text, sqlite, mysql)")

	numSamp    = flag.Int("samples", 2048, "IQ samples per source call")
	nbins      = flag.Int("nbins", 1024, "number of frequency bins in the resulting spectrum")
	sampleRate = flag.Float64("rate", 2.048e6, "sample rate in Hz (intrinsically tied to bandwidth for SDR dongles)")
	centerFreq = flag.Float64("freq", 1.4204e9, "bandpass center frequency in Hz")
	throwFreq  = flag.Float64("fthrow", 0, "alternate center frequency in Hz for fswitch mode")
	switchRate = flag.Float64("fswitch", 1, "ON/OFF switching rate in Hz for fswitch mode")
	gain       = flag.Float64("gain", 30, "tuner gain in dB")
	tInt       = flag.Float64("tint", 10, "total effective integration time in seconds")
	inDB       = flag.Bool("db", true, "export spectrum mode results in dB/Hz instead of linear power")
	biast      = flag.Bool("biast", false, "switch the bias tee on for the run (rtlsdr only)")

	dcMaskWidth = flag.Float64("dcMaskWidth", 0, "full width in Hz of the DC spike mask around each tuning center (0 disables)")

	// Sim source
	simTone     = flag.Float64("simTone", 0, "absolute frequency in Hz of the sim source's tone (0 disables)")
	simToneAmp  = flag.Float64("simToneAmp", 0.1, "amplitude of the sim source's tone")
	simNoiseAmp = flag.Float64("simNoiseAmp", 0.05, "noise sigma of the sim source")

	// Text
	textFile = flag.String("textFile", "", "file to write text output to (defaults to stdout)")

	// SQLite
	sqliteFile = flag.String("sqliteFile", "/tmp/radiometer", "File path of the sqlite DB file to use.")

	// MySQL
	mysqlServer       = flag.String("mysqlServer", "127.0.0.1:3306", "MySQL TCP server endpoint to connect to (IP/DNS and port).")
	mysqlUser         = flag.String("mysqlUser", "", "MySQL DB user.")
	mysqlPasswordFile = flag.String("mysqlPasswordFile", "", "Path to the file containing the password for the MySQL user.")
	mysqlDBName       = flag.String("mysqlDBName", "radiometer", "Name of the DB to use.")
)

func main() {
	ctx := context.Background()
	// Set defaults for glog flags. Can be overridden via cmdline.
	flag.Set("logtostderr", "false")
	flag.Set("stderrthreshold", "WARNING")
	flag.Set("v", "1")
	// Parse flags globally.
	flag.Parse()

	if *identifier == "" {
		*identifier = uuid.NewString()
	}

	// Sample source setup
	var src sdr.SampleSource
	switch strings.ToLower(*sdrType) {
	case rtlsdr.SourceName, "rtlsdr":
		src = &rtlsdr.SDR{Identifier: *identifier}
		if *biast {
			if err := rtlsdr.SetBiasTee(true); err != nil {
				glog.Exitf("unable to switch bias tee on: %s", err)
			}
			defer func() {
				if err := rtlsdr.SetBiasTee(false); err != nil {
					glog.Warningf("unable to switch bias tee off: %s", err)
				}
			}()
		}
	case sim.SourceName:
		src = &sim.SDR{
			Identifier: *identifier,
			ToneFreq:   *simTone,
			ToneAmp:    *simToneAmp,
			NoiseAmp:   *simNoiseAmp,
		}
	default:
		glog.Exitf("%q is not a supported sample source, pick one of: rtlsdr, sim", *sdrType)
	}

	// Exporter setup
	var exporter export.Exporter
	switch strings.ToLower(*output) {
	case "text":
		out := os.Stdout
		if *textFile != "" {
			f, err := os.Create(*textFile)
			if err != nil {
				glog.Exitf("unable to create output file %q: %s", *textFile, err)
			}
			defer f.Close()
			out = f
		}
		exporter = &export.Text{Out: out}
	case "sqlite":
		db, err := sql.Open("sqlite3", *sqliteFile)
		if err != nil {
			glog.Exitf("unable to open sqlite DB %q: %s", *sqliteFile, err)
		}
		exporter = &export.SQLite{DB: db}
	case "mysql":
		pass, err := os.ReadFile(*mysqlPasswordFile)
		if err != nil {
			glog.Exitf("unable to read MySQL password file %q: %s", *mysqlPasswordFile, err)
		}
		cfg := mysql.Config{
			User:   *mysqlUser,
			Passwd: strings.TrimSpace(string(pass)),
			Net:    "tcp",
			Addr:   *mysqlServer,
			DBName: *mysqlDBName,
		}
		db, err := sql.Open("mysql", cfg.FormatDSN())
		if err != nil {
			glog.Exitf("unable to open MySQL DB %q: %s", *mysqlServer, err)
		}
		db.SetConnMaxLifetime(3 * time.Minute)
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		exporter = &export.MySQL{DB: db}
	default:
		glog.Exitf("%q is not a supported export method, pick one of: text, sqlite, mysql", *output)
	}

	opts := radiometer.Options{
		NumSamp:         *numSamp,
		NBins:           *nbins,
		SampleRate:      *sampleRate,
		CenterFreq:      *centerFreq,
		Gain:            *gain,
		IntegrationTime: *tInt,
		ThrowFreq:       *throwFreq,
		SwitchRate:      *switchRate,
	}

	// Run
	start := time.Now()
	var rows []export.Row
	switch strings.ToLower(*mode) {
	case "power":
		avg, err := radiometer.RunTotalPower(src, opts)
		if err != nil {
			glog.Exitf("total power integration failed: %s", err)
		}
		calls := int64(opts.SampleRate*opts.IntegrationTime) / int64(opts.NumSamp)
		rows = export.Rows(*identifier, src.Name(), "power", []float64{opts.CenterFreq}, []float64{avg}, calls, start, time.Now())
	case "spectrum":
		spectrum, err := radiometer.RunSpectrum(src, opts)
		if err != nil {
			glog.Exitf("spectrum integration failed: %s", err)
		}
		values := spectrum.PSD
		if *inDB {
			values = spectrum.DB()
		}
		rows = export.Rows(*identifier, src.Name(), "spectrum", spectrum.Freqs, values, int64(spectrum.Count), start, time.Now())
	case "fswitch":
		folded, err := radiometer.RunFSwitch(src, opts)
		if err != nil {
			glog.Exitf("frequency switched integration failed: %s", err)
		}
		rows = export.Rows(*identifier, src.Name(), "fswitch", folded.Freqs, folded.Power, int64(folded.Count), start, time.Now())
	default:
		glog.Exitf("%q is not a supported mode, pick one of: power, spectrum, fswitch", *mode)
	}

	// Filter and export.
	var filters []filter.Filterer
	if *dcMaskWidth > 0 {
		filters = append(filters, &filter.DCSpike{CenterFreq: opts.CenterFreq, Width: *dcMaskWidth})
		if *throwFreq != 0 {
			filters = append(filters, &filter.DCSpike{CenterFreq: opts.ThrowFreq, Width: *dcMaskWidth})
		}
	}
	filtered := make(chan export.Row)
	go filter.Filter(export.Stream(rows), filtered, filters)

	if err := exporter.Write(ctx, filtered); err != nil {
		glog.Fatal(err)
	}

	glog.Flush()
}
