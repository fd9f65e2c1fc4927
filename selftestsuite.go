//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"math"
	"time"

	"github.com/e-gun/KritesGoClassifier/internal/corpus"
	"github.com/e-gun/KritesGoClassifier/internal/lasso"
	"github.com/e-gun/KritesGoClassifier/internal/lnch"
	"github.com/e-gun/KritesGoClassifier/internal/mm"
	"github.com/e-gun/KritesGoClassifier/internal/mtx"
	"github.com/e-gun/KritesGoClassifier/internal/score"
	"github.com/e-gun/KritesGoClassifier/internal/str"
	"github.com/e-gun/KritesGoClassifier/internal/tkn"
	"github.com/e-gun/KritesGoClassifier/internal/vv"
)

// the '-st' battery: exercise the pipeline machinery against a four-document corpus whose
// right answers are knowable by hand, then (on '-st -st') run the real thing end to end

// RunSelfTests - run the battery; a second '-st' adds a live pass over the full corpus
func RunSelfTests(level int) {
	const (
		MSG1 = "[IV] a live end-to-end pass"
		MSG2 = "selftestsuite passed (%d checks)"
		FAIL = "selftestsuite: %d of %d checks failed"
	)

	stm := lnch.NewMessageMakerConfigured()
	stm.SNm = vv.SHORTNAME + "-SELFTEST"
	if stm.LLvl < mm.TIMETRACKERMSGTHRESH {
		stm.LLvl = mm.TIMETRACKERMSGTHRESH
	}

	checks, fails := selftestsuite(stm)

	if level > 1 {
		stm.Emit(MSG1, mm.MSGWARN)
		RunClassification()
	}

	if fails == 0 {
		stm.Emit(fmt.Sprintf(MSG2, checks), mm.MSGMAND)
	} else {
		stm.Emit(fmt.Sprintf(FAIL, fails, checks), mm.MSGMAND)
		stm.ExitOrHang(1)
	}
}

// selftestsuite - iterate through the battery; returns (checks run, checks failed)
func selftestsuite(stm *mm.MessageMaker) (int, int) {
	const (
		ENTER = "entering selftestsuite mode (3 segments)"
		SEG1  = "[I] the four-document toy: vocabulary, matrix, fit"
		SEG2  = "[II] the scoring contract"
		SEG3  = "[III] AUC edge cases"
		OK    = "   [ok] %s"
		BAD   = " [FAIL] %s"
	)

	checks := 0
	fails := 0
	check := func(ok bool, what string) {
		checks++
		if ok {
			stm.Emit(fmt.Sprintf(OK, what), mm.MSGNOTE)
		} else {
			fails++
			stm.Emit(fmt.Sprintf(BAD, what), mm.MSGMAND)
		}
	}

	stm.Emit(ENTER, mm.MSGMAND)

	start := time.Now()
	previous := time.Now()

	// [I] two "A" lines drawing on one word stock, two "B" lines on another; the second
	// "A" line is held out
	stm.Emit(SEG1, mm.MSGWARN)

	lc := corpus.BuildLabeledCorpus("A", "B",
		[]string{"martian invasion mars", "martian mars"},
		[]string{"elizabeth darcy ball", "elizabeth darcy ball"})

	trainids := []int{1, 3, 4}
	heldout := lc.Docs[1]

	pairs := tkn.CountTokens(lc.Docs)
	vocab, err := tkn.FilterVocabulary(pairs, 0)
	check(err == nil, "a zero threshold filters nothing out")
	check(vocab.Size() == 6, "the toy vocabulary has 6 terms")
	stm.Timer("A1", "vocabulary built", start, previous)
	previous = time.Now()

	tm, err := mtx.Build(pairs, trainids, vocab)
	check(err == nil, "the training matrix builds")

	rows, cols := tm.Dims()
	check(rows == 3 && cols == 6, "the matrix is 3 x 6")
	check(tm.RowSum(0) == 3, "row sums count vocabulary words")

	y, err := mtx.LabelsFor(tm, lc)
	check(err == nil && len(y) == 3, "labels align with the rows")
	check(y[0] == 1 && y[1] == -1 && y[2] == -1, "labels follow the docids")
	stm.Timer("A2", "matrix and labels built", start, previous)
	previous = time.Now()

	fo := lasso.FitOptions{Folds: vv.CVFOLDS, Seed: vv.RANDOMSEED, Workers: 2}
	fm, err := lasso.Train(tm, y, lc.Titles, fo)
	check(err == nil, "the trainer accepts a three-row matrix")
	check(fm != nil && fm.Chosen == "lambda.1se", "the fit reports at lambda.1se")
	check(fm != nil && len(fm.Curve) > 0, "the deviance curve was recorded")
	check(fm != nil && fm.Lambda1SE.Nonzero <= fm.LambdaMin.Nonzero,
		"lambda.1se is never denser than lambda.min")

	_, err = lasso.Train(tm, []float64{1, 1, 1}, lc.Titles, fo)
	check(err != nil, "a one-class training set is refused")
	stm.Timer("A3", "cross-validated fit", start, previous)
	previous = time.Now()

	// [II] score the held-out line against coefficients whose sign pattern the toy implies;
	// three folds of three documents cannot carry the fit itself this far
	stm.Emit(SEG2, mm.MSGWARN)

	toyfit := &str.FittedModel{
		Intercept: -0.5108, // log(1.5/2.5): one positive in three training rows
		Coefficients: map[string]float64{
			"martian": 1.25, "mars": 0.85, "elizabeth": -0.95, "darcy": -1.05, "ball": -0.65},
		Chosen: "lambda.1se",
		Titles: lc.Titles,
	}

	sd := score.ScoreDoc(toyfit, heldout)
	check(sd.Probability > 0.5, "the held-out »martian mars« line leans A")
	check(sd.Predicted == "A" && sd.Correct(), "the prediction is correct")

	cm := score.Confusion([]str.ScoredDoc{sd}, lc.Titles)
	check(cm.Cells[0][0] == 1 && cm.Total() == 1, "the confusion matrix lands the hit in [A][A]")

	oov := score.ScoreDoc(toyfit, str.Document{ID: 99, Title: "A", Text: "zeppelin aurora"})
	wantp := 1 / (1 + math.Exp(-toyfit.Intercept))
	check(math.Abs(oov.Probability-wantp) < 1e-12, "an all-OOV line scores at the intercept alone")
	stm.Timer("B1", "scoring contract", start, previous)
	previous = time.Now()

	// [III] AUC on a separable set; AUC on a one-class set
	stm.Emit(SEG3, mm.MSGWARN)

	sep := score.ScoreDocs(toyfit, []str.Document{
		{ID: 1, Title: "A", Text: "martian invasion mars"},
		{ID: 2, Title: "A", Text: "martian mars"},
		{ID: 3, Title: "B", Text: "elizabeth darcy ball"},
		{ID: 4, Title: "B", Text: "darcy ball"},
	})

	auc, err := score.AUC(sep, lc.Titles)
	check(err == nil && auc == 1.0, "perfect separation yields an AUC of exactly 1.0")

	_, err = score.AUC(sep[:2], lc.Titles)
	check(err != nil, "AUC over a one-class test set is an error")
	stm.Timer("C1", "AUC edge cases", start, previous)

	return checks, fails
}
