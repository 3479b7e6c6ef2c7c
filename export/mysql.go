package export

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/golang/glog"
)

const (
	mysqlRowCountInfo = 1000

	mysqlCreateTableTmpl = `CREATE TABLE IF NOT EXISTS spectra (
		ID            INTEGER NOT NULL PRIMARY KEY AUTO_INCREMENT,
		Identifier    VARCHAR(64) NOT NULL,
		Source        VARCHAR(32) NOT NULL,
		Mode          VARCHAR(16) NOT NULL,
		Freq          DOUBLE,
		Power         DOUBLE,
		Contributions INTEGER,
		StartMilli    BIGINT,
		EndMilli      BIGINT
	);`
	mysqlInsertRowTmpl = `INSERT INTO spectra (
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

type MySQL struct {
	DB *sql.DB
}

func (m *MySQL) Write(ctx context.Context, rows <-chan Row) error {
	if err := mysqlCreateTableIfNotExists(m.DB); err != nil {
		return fmt.Errorf("unable to create table: %s", err)
	}

	counts := map[string]int{
		"error":   0,
		"success": 0,
		"total":   0,
	}
	for row := range rows {
		counts["total"] += 1
		if err := mysqlInsertRow(m.DB, row); err != nil {
			counts["error"] += 1
			glog.Warningf("error storing in MySQL DB: %s\n", err)
			continue
		}
		counts["success"] += 1
		if counts["total"]%mysqlRowCountInfo == 0 {
			glog.Infof("Row export counts: %+v\n", counts)
		}
	}

	return nil
}

func mysqlCreateTableIfNotExists(db *sql.DB) error {
	statement, err := db.Prepare(mysqlCreateTableTmpl)
	if err != nil {
		return err
	}
	if _, err := statement.Exec(); err != nil {
		return err
	}

	return nil
}

func mysqlInsertRow(db *sql.DB, r Row) error {
	statement, err := db.Prepare(mysqlInsertRowTmpl)
	if err != nil {
		return err
	}
	if _, err := statement.Exec(r.Identifier, r.Source, r.Mode, r.Freq, r.Power, r.Count, r.Start.UnixMilli(), r.End.UnixMilli()); err != nil {
		return err
	}

	return nil
}
