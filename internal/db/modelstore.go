//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/e-gun/KritesGoClassifier/internal/vv"
	"github.com/jackc/pgx/v5"
)

// the model store is a single generic table: anything that can json.Marshal() itself can live
// there, keyed by a fingerprint; fitted classifiers, evaluation reports and word embeddings all
// go through the same three calls

// ModelDBInit - initialize vv.MODELTABLENAME
func ModelDBInit() {
	const (
		CREATE = `
			CREATE TABLE %s
			(
			  fingerprint character(32),
			  itemsize    int,
			  itemdata    bytea
			)`
		EXISTS = "already exists"
	)
	ex := fmt.Sprintf(CREATE, vv.MODELTABLENAME)
	_, err := SQLPool.Exec(context.Background(), ex)
	if err != nil {
		m := err.Error()
		if !strings.Contains(m, EXISTS) {
			Msg.EC(err)
		}
	} else {
		Msg.FYI("ModelDBInit(): success")
	}
}

// ModelDBCheck - has an item with this fingerprint already been stored?
func ModelDBCheck(fp string) bool {
	const (
		Q   = `SELECT fingerprint FROM %s WHERE fingerprint = '%s' LIMIT 1`
		F   = `ModelDBCheck() found %s`
		DNE = "does not exist"
	)

	q := fmt.Sprintf(Q, vv.MODELTABLENAME, fp)
	foundrow, err := SQLPool.Query(context.Background(), q)
	if err != nil {
		m := err.Error()
		if strings.Contains(m, DNE) {
			ModelDBInit()
		}
		return false
	}

	type simplestring struct {
		S string
	}

	ss, err := pgx.CollectOneRow(foundrow, pgx.RowToStructByPos[simplestring])
	if err != nil {
		// "no rows in result set" means the fingerprint is new
		return false
	} else {
		Msg.TMI(fmt.Sprintf(F, ss.S))
		return true
	}
}

// ModelDBAdd - gzip an item and store it under its fingerprint
func ModelDBAdd(fp string, item any) {
	const (
		MSG1 = "ModelDBAdd(): "
		FAIL = "ModelDBAdd() failed when calling json.Marshal(item): nothing stored"
		INS  = `
			INSERT INTO %s
				(fingerprint, itemsize, itemdata)
			VALUES ('%s', $1, $2)`
		GZ = gzip.BestSpeed
	)

	ib, err := json.Marshal(item)
	if err != nil {
		Msg.NOTE(FAIL)
		return
	}

	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, GZ)
	Msg.EC(err)
	_, err = zw.Write(ib)
	Msg.EC(err)
	err = zw.Close()
	Msg.EC(err)

	b := buf.Bytes()
	l2 := len(b)

	ex := fmt.Sprintf(INS, vv.MODELTABLENAME, fp)

	_, err = SQLPool.Exec(context.Background(), ex, l2, b)
	Msg.EC(err)
	Msg.TMI(MSG1 + fp)
	buf.Reset()
}

// ModelDBFetch - find a stored item by fingerprint and unmarshal it into 'item'
func ModelDBFetch(fp string, item any) bool {
	const (
		MSG2 = "ModelDBFetch() found nothing stored under %s"
		Q    = `SELECT itemdata FROM %s WHERE fingerprint = '%s' LIMIT 1`
	)

	q := fmt.Sprintf(Q, vv.MODELTABLENAME, fp)
	var blob []byte
	foundrow, err := SQLPool.Query(context.Background(), q)
	Msg.EC(err)

	defer foundrow.Close()
	for foundrow.Next() {
		err = foundrow.Scan(&blob)
		Msg.EC(err)
	}

	if len(blob) == 0 {
		Msg.TMI(fmt.Sprintf(MSG2, fp))
		return false
	}

	// the data in the table is zipped and needs unzipping
	var buf bytes.Buffer
	buf.Write(blob)
	zr, err := gzip.NewReader(&buf)
	Msg.EC(err)
	decompr, err := io.ReadAll(zr)
	Msg.EC(err)
	err = zr.Close()
	Msg.EC(err)

	err = json.Unmarshal(decompr, item)
	Msg.EC(err)
	buf.Reset()
	return true
}

// ModelDBReset - drop vv.MODELTABLENAME
func ModelDBReset() {
	const (
		MSG1 = "ModelDBReset() dropped "
		MSG2 = "ModelDBReset(): 'DROP TABLE %s' returned an (ignored) error: \n\t%s"
		E    = `DROP TABLE %s`
	)
	ex := fmt.Sprintf(E, vv.MODELTABLENAME)

	_, err := SQLPool.Exec(context.Background(), ex)
	if err != nil {
		ms := err.Error()
		Msg.TMI(fmt.Sprintf(MSG2, vv.MODELTABLENAME, ms))
	} else {
		Msg.NOTE(MSG1 + vv.MODELTABLENAME)
	}
}

// ModelDBSize - how much space is the model store using?
func ModelDBSize(priority int) {
	const (
		SZQ  = "SELECT SUM(itemsize) AS total FROM " + vv.MODELTABLENAME
		MSG4 = "Disk space used by stored models is currently %dMB"
	)
	var size int64

	err := SQLPool.QueryRow(context.Background(), SZQ).Scan(&size)
	Msg.EC(err)
	Msg.Emit(fmt.Sprintf(MSG4, size/1024/1024), priority)
}

// ModelDBCount - how many items have been stored?
func ModelDBCount(priority int) {
	const (
		SZQ  = "SELECT COUNT(itemsize) AS total FROM " + vv.MODELTABLENAME
		MSG4 = "Number of stored models: %d"
		DNE  = "does not exist"
	)
	var size int64

	err := SQLPool.QueryRow(context.Background(), SZQ).Scan(&size)
	if err != nil {
		m := err.Error()
		if strings.Contains(m, DNE) {
			ModelDBInit()
		}
		size = 0
	}
	Msg.Emit(fmt.Sprintf(MSG4, size), priority)
}
