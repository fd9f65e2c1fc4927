//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/e-gun/KritesGoClassifier/internal/lnch"
	"github.com/e-gun/KritesGoClassifier/internal/str"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	Msg     = lnch.NewMessageMakerWithDefaults()
	SQLPool *pgxpool.Pool
)

// PostgreSQL is optional: the corpus cache is sqlite, and the pipeline itself never needs a server.
// The pool is only filled when a password is configured and a database-backed feature gets used.

// PGEnabled - is there enough configuration to try to talk to PostgreSQL at all?
func PGEnabled(cfg *str.CurrentConfiguration) bool {
	return cfg.PGLogin.Pass != ""
}

// FillDBConnectionPool - build the pgxpool that the whole program will Acquire() from
func FillDBConnectionPool(cfg str.CurrentConfiguration) *pgxpool.Pool {
	// if min < WorkerCount concurrent store/fetch calls will fight for connections
	// max caps the resource allocation; this is a single-operator tool, so the ceiling is low

	const (
		POOLMULT = 2
		UTPL     = "postgres://%s:%s@%s:%d/%s?pool_min_conns=%d&pool_max_conns=%d"
		FAIL1    = "Configuration error. Could not execute ParseConfig(url) via '%s'"
		FAIL2    = "Could not connect to PostgreSQL"
		ERRRUN   = `dial error`
		FAILRUN  = `'%s': the PostgreSQL server cannot be found; check that it is running and serving on port %d`
		ERRSRV   = `server error`
		FAILSRV  = `'%s': there is a configuration problem; see the following response from PostgreSQL:`
	)

	mn := cfg.WorkerCount
	mx := POOLMULT * cfg.WorkerCount

	pl := cfg.PGLogin
	url := fmt.Sprintf(UTPL, pl.User, pl.Pass, pl.Host, pl.Port, pl.DBName, mn, mx)

	config, e := pgxpool.ParseConfig(url)
	if e != nil {
		Msg.MAND(fmt.Sprintf(FAIL1, url))
		os.Exit(0)
	}

	thepool, e := pgxpool.NewWithConfig(context.Background(), config)
	if e != nil {
		Msg.MAND(fmt.Sprintf(FAIL2))
		if strings.Contains(e.Error(), ERRRUN) {
			Msg.MAND(fmt.Sprintf(FAILRUN, ERRRUN, cfg.PGLogin.Port))
		}
		if strings.Contains(e.Error(), ERRSRV) {
			Msg.MAND(fmt.Sprintf(FAILSRV, ERRSRV))
			parts := strings.Split(e.Error(), ERRSRV)
			Msg.CRIT(parts[1])
		}
		Msg.ExitOrHang(0)
	}
	return thepool
}

// GetDBConnection - Acquire() a connection from the main pgxpool
func GetDBConnection() *pgxpool.Conn {
	const (
		FAIL1   = "GetDBConnection() could not Acquire() from the DBConnectionPool."
		FAIL2   = `Your password in '%s' is incorrect? Too many connections to the server?`
		ERRRUN  = `dial error`
		FAILRUN = `'%s': the PostgreSQL server cannot be found; check that it is running and serving on port %d`
	)

	dbc, e := SQLPool.Acquire(context.Background())
	if e != nil {
		Msg.MAND(fmt.Sprintf(FAIL1))
		if strings.Contains(e.Error(), ERRRUN) {
			Msg.CRIT(fmt.Sprintf(FAILRUN, ERRRUN, lnch.Config.PGLogin.Port))
		} else {
			Msg.MAND(fmt.Sprintf(FAIL2, "kgc-conf.json"))
		}
		Msg.ExitOrHang(0)
	}
	return dbc
}
