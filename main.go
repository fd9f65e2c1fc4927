//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"

	"github.com/e-gun/KritesGoClassifier/internal/chart"
	"github.com/e-gun/KritesGoClassifier/internal/corpus"
	"github.com/e-gun/KritesGoClassifier/internal/db"
	"github.com/e-gun/KritesGoClassifier/internal/lasso"
	"github.com/e-gun/KritesGoClassifier/internal/lnch"
	"github.com/e-gun/KritesGoClassifier/internal/mm"
	"github.com/e-gun/KritesGoClassifier/internal/mtx"
	"github.com/e-gun/KritesGoClassifier/internal/score"
	"github.com/e-gun/KritesGoClassifier/internal/tkn"
	"github.com/e-gun/KritesGoClassifier/internal/vec"
	"github.com/e-gun/KritesGoClassifier/internal/vv"
	"github.com/e-gun/KritesGoClassifier/web"
	"github.com/pkg/profile"
)

//	which of two novels did a line of prose come from?
//
//	[a] fetch the two texts and label every line        (corpus)
//	[b] tokenize, count, build the shared vocabulary    (tkn)
//	[c] split the lines and erect the train matrix      (mtx)
//	[d] cross-validate an L1 logistic path and refit    (lasso)
//	[e] score the held-out lines                        (score)
//	[f] report: console tables, json, charts, http      (chart, web)

var Msg = lnch.NewMessageMakerWithDefaults()

func main() {
	const (
		SCORCHED = "erased the corpus cache and the model store"
		MSERVE   = "reports served at http://%s:%d (C-c to quit)"
	)

	lnch.LookForConfigFile()
	lnch.ConfigAtLaunch()

	if !lnch.Config.QuietStart {
		fmt.Println(fmt.Sprintf(vv.TERMINALTEXT, vv.PROJYEAR, vv.PROJAUTH, vv.PROJMAIL))
	}

	lnch.PrintVersion(*lnch.Config)
	lnch.PrintBuildInfo(*lnch.Config)

	messengersetup()

	// profiling stops on return, so '-ws' runs need a kill to flush the data
	if lnch.Config.ProfileCPU {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	if lnch.Config.ProfileMEM {
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	go mm.PathInfoHub()

	if db.PGEnabled(lnch.Config) {
		db.SQLPool = db.FillDBConnectionPool(*lnch.Config)
		db.PGCorpusInit()
		db.ModelDBInit()
	}

	if lnch.Config.Scorch {
		db.CacheScorch()
		if db.SQLPool != nil {
			db.ModelDBReset()
		}
		Msg.MAND(SCORCHED)
	}

	if lnch.Config.ResetModels && db.SQLPool != nil {
		db.ModelDBReset()
	}

	if lnch.Config.SelfTest > 0 {
		RunSelfTests(lnch.Config.SelfTest)
		return
	}

	rb := RunClassification()

	if lnch.Config.ServeReports {
		LoadPriorRuns(lnch.Config.OutputDir)

		// insert after the disk load: this copy carries the live chart fragments
		web.AllRuns.InsertRB(rb)

		if lnch.Config.TickerActive {
			go Msg.Ticker(vv.TICKERDELAY)
		}

		Msg.MAND(fmt.Sprintf(MSERVE, lnch.Config.HostIP, lnch.Config.HostPort))
		web.StartEchoServer()
	}
}

// messengersetup - hand the final configuration to every package's messenger
func messengersetup() {
	mms := []*mm.MessageMaker{Msg, lnch.Msg, corpus.Msg, tkn.Msg, mtx.Msg, lasso.Msg,
		score.Msg, db.Msg, vec.Msg, chart.Msg, web.Msg}

	for i := range mms {
		lnch.UpdateMessageMakerWithConfig(mms[i])
	}

	chart.SetDimensions(lnch.Config.ChrtWidth, lnch.Config.ChrtHeight)
}
