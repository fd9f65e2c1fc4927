//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"database/sql"
	"fmt"
	"os"
	"regexp"
	"sync"

	"github.com/e-gun/KritesGoClassifier/internal/gen"
	"github.com/e-gun/KritesGoClassifier/internal/vv"
	"github.com/mattn/go-sqlite3"
)

// the corpus cache: a local sqlite file so that each title is fetched from the network only once;
// subsequent runs load the lines from here

var (
	CorpusCache *sql.DB
	regonce     sync.Once
	cachelock   sync.Mutex
)

// registersqlite - make "sqlite3_with_regex" available as a driver name
func registersqlite() {
	// NB: sql.Register() panics if the same name arrives twice; hence the sync.Once
	regex := func(re, s string) (bool, error) {
		return regexp.MatchString(re, s)
	}

	regonce.Do(func() {
		sql.Register("sqlite3_with_regex",
			&sqlite3.SQLiteDriver{
				ConnectHook: func(conn *sqlite3.SQLiteConn) error {
					return conn.RegisterFunc("regexp", regex, true)
				},
			})
	})
}

// CacheLocation - the full path to the sqlite file backing the corpus cache
func CacheLocation() string {
	h, e := os.UserHomeDir()
	if e != nil {
		h = "."
	}
	return fmt.Sprintf(vv.CONFIGALTAPTH, h) + vv.SQLITEFILENAME
}

// GetCorpusCache - open (once) and return the corpus cache handle
func GetCorpusCache() *sql.DB {
	const (
		FAIL1 = "GetCorpusCache() could not open '%s'"
		FAIL2 = "GetCorpusCache() could not create '%s'"
		CREAT = `CREATE TABLE IF NOT EXISTS %s (title TEXT NOT NULL, linenum INTEGER NOT NULL, txt TEXT NOT NULL);
			CREATE INDEX IF NOT EXISTS idx_%s_title ON %s (title);`
	)

	cachelock.Lock()
	defer cachelock.Unlock()

	// CacheScorch() can nil this out mid-run; reopening gives you a fresh, empty cache
	if CorpusCache != nil {
		return CorpusCache
	}

	registersqlite()
	loc := CacheLocation()
	sqldb, e := sql.Open("sqlite3_with_regex", loc)
	if e != nil {
		Msg.MAND(fmt.Sprintf(FAIL1, loc))
		Msg.EC(e)
		os.Exit(0)
	}

	// sqlite allows only one writer; a single connection keeps the concurrent
	// title fetches from tripping over SQLITE_BUSY when both store at once
	sqldb.SetMaxOpenConns(1)
	q := fmt.Sprintf(CREAT, vv.CORPUSTABLENAME, vv.CORPUSTABLENAME, vv.CORPUSTABLENAME)
	_, e = sqldb.Exec(q)
	if e != nil {
		Msg.MAND(fmt.Sprintf(FAIL2, vv.CORPUSTABLENAME))
		Msg.EC(e)
		os.Exit(0)
	}
	CorpusCache = sqldb
	return CorpusCache
}

// CacheHasWork - do we already hold the lines of this title?
func CacheHasWork(title string) bool {
	const (
		QT = `SELECT COUNT(*) FROM %s WHERE title = ?`
	)
	var ct int
	row := GetCorpusCache().QueryRow(fmt.Sprintf(QT, vv.CORPUSTABLENAME), title)
	e := row.Scan(&ct)
	if e != nil {
		Msg.EC(e)
		return false
	}
	return ct > 0
}

// CacheStoreWork - save the lines of a title; replaces whatever was there before
func CacheStoreWork(title string, lines []string) {
	const (
		DELQ  = `DELETE FROM %s WHERE title = ?`
		INSQ  = `INSERT INTO %s (title, linenum, txt) VALUES (?, ?, ?)`
		MSG   = "CacheStoreWork() stored %d lines of '%s'"
		FAIL1 = "CacheStoreWork() could not begin a transaction"
		FAIL2 = "CacheStoreWork() could not prepare the insert"
		CHNK  = 500
	)

	sqldb := GetCorpusCache()
	_, e := sqldb.Exec(fmt.Sprintf(DELQ, vv.CORPUSTABLENAME), title)
	Msg.EC(e)

	tx, e := sqldb.Begin()
	if e != nil {
		Msg.MAND(FAIL1)
		Msg.EC(e)
		return
	}

	stmt, e := tx.Prepare(fmt.Sprintf(INSQ, vv.CORPUSTABLENAME))
	if e != nil {
		Msg.MAND(FAIL2)
		Msg.EC(e)
		return
	}

	// chunked insertion so a failure in a huge work does not hold one mega-statement open
	ln := 0
	chunked := gen.ChunkSlice(lines, CHNK)
	for _, chunk := range chunked {
		for _, l := range chunk {
			_, e = stmt.Exec(title, ln, l)
			Msg.EC(e)
			ln++
		}
	}

	Msg.EC(stmt.Close())
	Msg.EC(tx.Commit())
	Msg.PEEK(fmt.Sprintf(MSG, ln, title))
}

// CacheFetchWork - the stored lines of a title, in their original order
func CacheFetchWork(title string) []string {
	const (
		QT    = `SELECT txt FROM %s WHERE title = ? ORDER BY linenum ASC`
		FAIL1 = "CacheFetchWork() could not query '%s'"
	)

	rows, e := GetCorpusCache().Query(fmt.Sprintf(QT, vv.CORPUSTABLENAME), title)
	if e != nil {
		Msg.MAND(fmt.Sprintf(FAIL1, title))
		Msg.EC(e)
		return []string{}
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var l string
		Msg.EC(rows.Scan(&l))
		lines = append(lines, l)
	}
	Msg.EC(rows.Err())
	return lines
}

// CacheDropWork - forget a title so the next run re-fetches it
func CacheDropWork(title string) {
	const (
		DELQ = `DELETE FROM %s WHERE title = ?`
		MSG  = "CacheDropWork() dropped '%s'"
	)
	_, e := GetCorpusCache().Exec(fmt.Sprintf(DELQ, vv.CORPUSTABLENAME), title)
	Msg.EC(e)
	Msg.PEEK(fmt.Sprintf(MSG, title))
}

// CacheAudit - sanity-check a cached title: no leftover boilerplate, no blank lines
func CacheAudit(title string) bool {
	const (
		QT   = `SELECT COUNT(*) FROM %s WHERE title = ? AND (txt REGEXP ? OR txt REGEXP ?)`
		BAD1 = `\*\*\* ?(START|END) OF`
		BAD2 = `^\s*$`
		WARN = "CacheAudit() found %d suspect lines cached for '%s'; consider re-fetching (-rc)"
	)

	var ct int
	row := GetCorpusCache().QueryRow(fmt.Sprintf(QT, vv.CORPUSTABLENAME), title, BAD1, BAD2)
	e := row.Scan(&ct)
	if e != nil {
		Msg.EC(e)
		return false
	}
	if ct > 0 {
		Msg.WARN(fmt.Sprintf(WARN, ct, title))
		return false
	}
	return true
}

// CacheScorch - delete the cache file itself; next run starts from nothing
func CacheScorch() {
	const (
		MSG  = "CacheScorch() removed '%s'"
		NOPE = "CacheScorch(): no cache file at '%s'"
	)
	loc := CacheLocation()
	if CorpusCache != nil {
		Msg.EC(CorpusCache.Close())
		CorpusCache = nil
	}
	if _, e := os.Stat(loc); e != nil {
		Msg.PEEK(fmt.Sprintf(NOPE, loc))
		return
	}
	Msg.EC(os.Remove(loc))
	Msg.NOTE(fmt.Sprintf(MSG, loc))
}
