package export

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/golang/glog"
)

const (
	sqliteRowCountInfo = 1000

	sqliteCreateTableTmpl = `CREATE TABLE IF NOT EXISTS spectra (
		"ID"          INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
		"Identifier"  TEXT NOT NULL,
		"Source"      TEXT NOT NULL,
		"Mode"        TEXT NOT NULL,
		"Freq"        REAL,
		"Power"       REAL,
		"Contributions" INTEGER,
		"StartMilli"  INTEGER,
		"EndMilli"    INTEGER
	);`
	sqliteInsertRowTmpl = `INSERT INTO spectra (
		Identifier,
		Source,
		Mode,
		Freq,
		Power,
		Contributions,
		StartMilli,
		EndMilli
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`
)

type SQLite struct {
	DB *sql.DB
}

func (s *SQLite) Write(ctx context.Context, rows <-chan Row) error {
	if err := sqliteCreateTableIfNotExists(s.DB); err != nil {
		return fmt.Errorf("unable to create table: %s", err)
	}

	counts := map[string]int{
		"error":   0,
		"success": 0,
		"total":   0,
	}
	for row := range rows {
		counts["total"] += 1
		if err := sqliteInsertRow(s.DB, row); err != nil {
			counts["error"] += 1
			glog.Warningf("error storing in sqlite DB: %s\n", err)
			continue
		}
		counts["success"] += 1
		if counts["total"]%sqliteRowCountInfo == 0 {
			glog.Infof("Row export counts: %+v\n", counts)
		}
	}

	return nil
}

func sqliteCreateTableIfNotExists(db *sql.DB) error {
	statement, err := db.Prepare(sqliteCreateTableTmpl)
	if err != nil {
		return err
	}
	if _, err := statement.Exec(); err != nil {
		return err
	}

	return nil
}

func sqliteInsertRow(db *sql.DB, r Row) error {
	statement, err := db.Prepare(sqliteInsertRowTmpl)
	if err != nil {
		return err
	}
	if _, err := statement.Exec(r.Identifier, r.Source, r.Mode, r.Freq, r.Power, r.Count, r.Start.UnixMilli(), r.End.UnixMilli()); err != nil {
		return err
	}

	return nil
}
