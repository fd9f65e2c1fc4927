//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/e-gun/KritesGoClassifier/internal/lnch"
	"github.com/e-gun/KritesGoClassifier/internal/score"
	"github.com/e-gun/KritesGoClassifier/internal/str"
	"github.com/e-gun/KritesGoClassifier/internal/vv"
	"github.com/e-gun/KritesGoClassifier/web"
)

// every run leaves five json files behind: the four artifacts plus a sidecar that lets
// '-ws' rebuild the report page for it later

const NUMJSONARTIFACTS = 5

// RunArtifact - the sidecar: everything needed to re-serve a run except the live fragments
type RunArtifact struct {
	Report     *str.EvalReport
	Model      *str.FittedModel
	ChartFiles map[string]string
}

// showreport - the terminal report card: coefficients, probabilities, AUC, confusion, misses
func showreport(rpt *str.EvalReport, fm *str.FittedModel) {
	const (
		PROBSHOWN = 10
		TXTCLIP   = 56
		LBLCLIP   = 32

		HD1 = "S1The coefficient table at %sS0 (%d strongest of %d; the rest in the json)"
		RW1 = "  C3%-24sC0 %+9.4f"
		HD2 = "S1The held-out probability tableS0 (%d of %d rows shown)"
		RW2 = "  C3%6dC0  %s = C3%6.4fC0  true: %s%s"
		MIS = "  C1*C0"
		HD3 = "S1AUCS0: C3%.4fC0"
		HD4 = "S1The confusion matrix at the 0.5 thresholdS0"
		KEY = "      C6[%d]C0 %s"
		CHD = "      %-10s C6%14sC0 C6%14sC0"
		CRW = "      C6%-10sC0 %14d %14d"
		HD5 = "S1Misclassified documentsS0 (%d drawn of %d missed; seed %d)"
		RW5 = "  C3%6dC0  %6.4f  »%s«  (true: %s)"
		ALL = "  every held-out document was classified correctly"
		CWR = "  C1%dC0 of the misses were confident: P outside (%.2f, %.2f)"
	)

	say := func(s string) {
		fmt.Println(Msg.ColStyle(s))
	}

	t1 := clipstring(rpt.Titles[0], LBLCLIP)
	t2 := clipstring(rpt.Titles[1], LBLCLIP)

	// [1] the coefficients, strongest first regardless of sign
	var ww str.WWList
	for t, e := range fm.Coefficients {
		a := e
		if a < 0 {
			a = -a
		}
		ww = append(ww, str.WeightedWord{Word: t, Score: a})
	}
	sort.Sort(ww)

	shown := vv.TOPNCOEFF
	if shown > len(ww) {
		shown = len(ww)
	}

	say("")
	say(fmt.Sprintf(HD1, fm.Chosen, shown, len(fm.Coefficients)))
	say(fmt.Sprintf(RW1, "(Intercept)", fm.Intercept))
	for i := 0; i < shown; i++ {
		say(fmt.Sprintf(RW1, ww[i].Word, fm.Coefficients[ww[i].Word]))
	}

	// [2] the probabilities
	np := PROBSHOWN
	if np > len(rpt.Scores) {
		np = len(rpt.Scores)
	}

	say("")
	say(fmt.Sprintf(HD2, np, len(rpt.Scores)))
	plbl := fmt.Sprintf("P(»%s«)", t1)
	for i := 0; i < np; i++ {
		sc := rpt.Scores[i]
		flag := ""
		if !sc.Correct() {
			flag = MIS
		}
		say(fmt.Sprintf(RW2, sc.DocID, plbl, sc.Probability, clipstring(sc.Title, LBLCLIP), flag))
	}

	// [3] the AUC
	say("")
	say(fmt.Sprintf(HD3, rpt.AUC))

	// [4] the confusion matrix
	cm := rpt.Confusion
	say("")
	say(HD4)
	say(fmt.Sprintf(KEY, 1, t1))
	say(fmt.Sprintf(KEY, 2, t2))
	say("")
	say(fmt.Sprintf(CHD, "", "predicted [1]", "predicted [2]"))
	say(fmt.Sprintf(CRW, "true [1]", cm.Cells[0][0], cm.Cells[0][1]))
	say(fmt.Sprintf(CRW, "true [2]", cm.Cells[1][0], cm.Cells[1][1]))

	// [5] the inspection sample
	missed := cm.Total() - cm.Correct()
	say("")
	say(fmt.Sprintf(HD5, len(rpt.Misclassified), missed, rpt.Seed))
	if len(rpt.Misclassified) == 0 {
		say(ALL)
	}
	for _, sc := range rpt.Misclassified {
		say(fmt.Sprintf(RW5, sc.DocID, sc.Probability, clipstring(sc.Text, TXTCLIP),
			clipstring(sc.Title, LBLCLIP)))
	}

	cw := score.ConfidentlyWrong(rpt.Scores, vv.PROBHITHRESH, vv.PROBLOTHRESH)
	if len(cw) != 0 {
		say(fmt.Sprintf(CWR, len(cw), vv.PROBLOTHRESH, vv.PROBHITHRESH))
	}
	say("")
}

// WriteRunArtifacts - the five json files: coefficients, probabilities, auc, confusion, sidecar
func WriteRunArtifacts(rb *web.ReportBundle) {
	const (
		FNTMPL = "kgc-%s-%s.json"
		WROTE  = "WriteRunArtifacts() wrote %d files to '%s'"
	)

	type probrow struct {
		DocID       int     `json:"document_id"`
		Probability float64 `json:"probability"`
		TrueTitle   string  `json:"true_title"`
	}

	cfg := lnch.Config
	sid := shortid(rb.Report.RunID)

	err := os.MkdirAll(cfg.OutputDir, vv.OUTPUTDIRPERMS)
	Msg.EC(err)

	writejson := func(name string, item any) {
		j, e := json.MarshalIndent(item, "", vv.JSONINDENT)
		Msg.EC(e)
		e = os.WriteFile(filepath.Join(cfg.OutputDir, fmt.Sprintf(FNTMPL, sid, name)), j, vv.WRITEPERMS)
		Msg.EC(e)
	}

	pt := make([]probrow, len(rb.Report.Scores))
	for i, sc := range rb.Report.Scores {
		pt[i] = probrow{DocID: sc.DocID, Probability: sc.Probability, TrueTitle: sc.Title}
	}

	writejson("coefficients", rb.Model.Table())
	writejson("probabilities", pt)
	writejson("auc", map[string]float64{"auc": rb.Report.AUC})
	writejson("confusion", rb.Report.Confusion)
	writejson("run", RunArtifact{Report: rb.Report, Model: rb.Model, ChartFiles: rb.ChartFile})

	Msg.NOTE(fmt.Sprintf(WROTE, NUMJSONARTIFACTS, cfg.OutputDir))
}

// LoadPriorRuns - reload earlier runs from their sidecars so '-ws' can serve them too
func LoadPriorRuns(outdir string) int {
	const (
		SIDECARS = "kgc-*-run.json"
		RESTORED = "LoadPriorRuns() restored %d earlier runs from '%s'"
		SKIPPED  = "LoadPriorRuns() skipped unreadable '%s'"
	)

	sidecars, e := filepath.Glob(filepath.Join(outdir, SIDECARS))
	if e != nil {
		return 0
	}

	count := 0
	for _, s := range sidecars {
		j, err := os.ReadFile(s)
		if err != nil {
			Msg.WARN(fmt.Sprintf(SKIPPED, s))
			continue
		}

		var ra RunArtifact
		if err = json.Unmarshal(j, &ra); err != nil || ra.Report == nil || ra.Model == nil {
			Msg.WARN(fmt.Sprintf(SKIPPED, s))
			continue
		}

		if _, ok := web.AllRuns.GetRB(ra.Report.RunID); ok {
			continue
		}

		// no fragments: the report page for a reloaded run links the chart files instead
		web.AllRuns.InsertRB(web.ReportBundle{
			Report:    ra.Report,
			Model:     ra.Model,
			ChartFile: ra.ChartFiles,
			When:      ra.Report.When,
		})
		count++
	}

	if count > 0 {
		Msg.NOTE(fmt.Sprintf(RESTORED, count, outdir))
	}
	return count
}

// shortid - the first block of a uuid is enough to name files
func shortid(runid string) string {
	if i := strings.Index(runid, "-"); i != -1 {
		return runid[:i]
	}
	return runid
}

// clipstring - cut a string down to n runes, marking the cut
func clipstring(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
