// The server binary exposes spectra stored by the collector over HTTP:
// run listings, raw rows and rendered plots, backed by the sqlite store.
package main

import (
	"bytes"
	"database/sql"
	"flag"
	"image/png"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/glog"

	"github.com/radiosky/radiometer/export"
	"github.com/radiosky/radiometer/render"

	// Blind import support for sqlite3.
	_ "github.com/mattn/go-sqlite3"
)

var (
	listen     = flag.String("listen", ":8080", "Address and port to listen on.")
	sqliteFile = flag.String("sqliteFile", "/tmp/radiometer", "File path of the sqlite DB file to use.")
	imgWidth   = flag.Int("imgWidth", 800, "Width of rendered plots in pixels.")
	imgHeight  = flag.Int("imgHeight", 480, "Height of rendered plots in pixels.")
)

const (
	listRunsTmpl = `SELECT
		Identifier, Source, Mode, COUNT(*), MIN(StartMilli), MAX(EndMilli)
	FROM spectra
	GROUP BY Identifier, Source, Mode
	ORDER BY MIN(StartMilli) DESC;`
	getRowsTmpl = `SELECT
		Identifier, Source, Mode, Freq, Power, Contributions, StartMilli, EndMilli
	FROM spectra
	WHERE Identifier = ?
	ORDER BY Freq ASC;`
)

type runInfo struct {
	Identifier string `json:"identifier"`
	Source     string `json:"source"`
	Mode       string `json:"mode"`
	Bins       int    `json:"bins"`
	StartMilli int64  `json:"startMilli"`
	EndMilli   int64  `json:"endMilli"`
}

type server struct {
	db *sql.DB
}

func (s *server) listRuns(c *gin.Context) {
	rows, err := s.db.Query(listRunsTmpl)
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	runs := []runInfo{}
	for rows.Next() {
		var r runInfo
		if err := rows.Scan(&r.Identifier, &r.Source, &r.Mode, &r.Bins, &r.StartMilli, &r.EndMilli); err != nil {
			c.AbortWithError(http.StatusInternalServerError, err)
			return
		}
		runs = append(runs, r)
	}
	c.JSON(http.StatusOK, runs)
}

func (s *server) getRows(identifier string) ([]export.Row, error) {
	rows, err := s.db.Query(getRowsTmpl, identifier)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []export.Row
	for rows.Next() {
		var r export.Row
		var startMilli, endMilli int64
		if err := rows.Scan(&r.Identifier, &r.Source, &r.Mode, &r.Freq, &r.Power, &r.Count, &startMilli, &endMilli); err != nil {
			return nil, err
		}
		r.Start = time.UnixMilli(startMilli)
		r.End = time.UnixMilli(endMilli)
		result = append(result, r)
	}
	return result, nil
}

func (s *server) run(c *gin.Context) {
	result, err := s.getRows(c.Param("id"))
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	if len(result) == 0 {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *server) plot(c *gin.Context) {
	result, err := s.getRows(c.Param("id"))
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	if len(result) == 0 {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	img, err := render.Spectrum(result, *imgWidth, *imgHeight)
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func main() {
	// Set defaults for glog flags. Can be overridden via cmdline.
	flag.Set("logtostderr", "false")
	flag.Set("stderrthreshold", "WARNING")
	flag.Set("v", "1")
	// Parse flags globally.
	flag.Parse()

	db, err := sql.Open("sqlite3", *sqliteFile)
	if err != nil {
		glog.Exitf("unable to open sqlite DB %q: %s", *sqliteFile, err)
	}

	s := &server{db: db}
	router := gin.Default()
	router.GET("/radiometer/v1/runs", s.listRuns)
	router.GET("/radiometer/v1/runs/:id", s.run)
	router.GET("/radiometer/v1/runs/:id/plot", s.plot)

	glog.Infof("Listening on %s", *listen)
	glog.Fatal(router.Run(*listen))
}
