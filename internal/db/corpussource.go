//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/e-gun/KritesGoClassifier/internal/vv"
	"github.com/jackc/pgx/v5"
)

// "-src pg" reads corpus lines from a PostgreSQL table instead of the network; the same table is
// also written to whenever a fresh fetch happens while a pool is live, so a later offline run can
// use the server copy

// PGCorpusInit - initialize vv.CORPUSTABLENAME on the PostgreSQL side
func PGCorpusInit() {
	const (
		CREATE = `
			CREATE TABLE %s
			(
			  title   text,
			  linenum int,
			  txt     text
			)`
		EXISTS = "already exists"
	)
	ex := fmt.Sprintf(CREATE, vv.CORPUSTABLENAME)
	_, err := SQLPool.Exec(context.Background(), ex)
	if err != nil {
		m := err.Error()
		if !strings.Contains(m, EXISTS) {
			Msg.EC(err)
		}
	} else {
		Msg.FYI("PGCorpusInit(): success")
	}
}

// PGHasWork - does the PostgreSQL corpus table hold any lines of this title?
func PGHasWork(title string) bool {
	const (
		Q   = `SELECT COUNT(*) FROM %s WHERE title = $1`
		DNE = "does not exist"
	)

	var ct int64
	q := fmt.Sprintf(Q, vv.CORPUSTABLENAME)
	err := SQLPool.QueryRow(context.Background(), q, title).Scan(&ct)
	if err != nil {
		if strings.Contains(err.Error(), DNE) {
			PGCorpusInit()
		}
		return false
	}
	return ct > 0
}

// PGFetchWork - the stored lines of a title, in their original order
func PGFetchWork(title string) []string {
	const (
		Q    = `SELECT txt FROM %s WHERE title = $1 ORDER BY linenum ASC`
		FAIL = "PGFetchWork() could not query '%s'"
	)

	dbconn := GetDBConnection()
	defer dbconn.Release()

	q := fmt.Sprintf(Q, vv.CORPUSTABLENAME)
	foundrows, err := dbconn.Query(context.Background(), q, title)
	if err != nil {
		Msg.MAND(fmt.Sprintf(FAIL, title))
		Msg.EC(err)
		return []string{}
	}

	type simplestring struct {
		S string
	}

	ss, err := pgx.CollectRows(foundrows, pgx.RowToStructByPos[simplestring])
	Msg.EC(err)

	lines := make([]string, len(ss))
	for i := range ss {
		lines[i] = ss[i].S
	}
	return lines
}

// PGStoreWork - mirror the lines of a title into PostgreSQL; replaces whatever was there before
func PGStoreWork(title string, lines []string) {
	const (
		DELQ = `DELETE FROM %s WHERE title = $1`
		MSG  = "PGStoreWork() mirrored %d lines of '%s'"
		DNE  = "does not exist"
	)

	dbconn := GetDBConnection()
	defer dbconn.Release()

	_, err := dbconn.Exec(context.Background(), fmt.Sprintf(DELQ, vv.CORPUSTABLENAME), title)
	if err != nil {
		if strings.Contains(err.Error(), DNE) {
			PGCorpusInit()
		} else {
			Msg.EC(err)
			return
		}
	}

	// CopyFrom beats row-at-a-time inserts by a couple of orders of magnitude
	rows := make([][]any, len(lines))
	for i := range lines {
		rows[i] = []any{title, i, lines[i]}
	}

	_, err = dbconn.CopyFrom(
		context.Background(),
		pgx.Identifier{vv.CORPUSTABLENAME},
		[]string{"title", "linenum", "txt"},
		pgx.CopyFromRows(rows),
	)
	Msg.EC(err)
	Msg.PEEK(fmt.Sprintf(MSG, len(lines), title))
}
