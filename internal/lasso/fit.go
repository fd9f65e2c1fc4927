//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lasso

import (
	"crypto/md5"
	"encoding/json"
	"fmt"

	"github.com/e-gun/KritesGoClassifier/internal/lnch"
	"github.com/e-gun/KritesGoClassifier/internal/mtx"
	"github.com/e-gun/KritesGoClassifier/internal/str"
	"github.com/e-gun/KritesGoClassifier/internal/vv"
)

var Msg = lnch.NewMessageMakerWithDefaults()

type FitOptions struct {
	Folds       int
	Seed        int64
	StepSize    float64
	MaxSteps    int
	RecordEvery int
	Workers     int
}

func normalizeOptions(opt FitOptions, n int) FitOptions {
	const (
		CLMP = "normalizeOptions(): %d folds will not go into %d rows; using %d"
	)

	if opt.StepSize <= 0 {
		opt.StepSize = vv.GPSSTEPSIZE
	}
	if opt.MaxSteps <= 0 {
		opt.MaxSteps = vv.GPSMAXSTEPS
	}
	if opt.RecordEvery <= 0 {
		opt.RecordEvery = vv.GPSRECORDEVERY
	}
	if opt.Workers < 1 {
		opt.Workers = 1
	}
	if opt.Folds < 2 {
		opt.Folds = vv.CVFOLDS
	}
	if opt.Folds > n {
		Msg.WARN(fmt.Sprintf(CLMP, opt.Folds, n, n))
		opt.Folds = n
	}
	return opt
}

// Train - cross-validate an L1 logistic path over the training matrix and refit at the pick
//
// the pooled out-of-fold deviance curve yields two candidate stopping points: the outright
// minimum ("lambda.min") and the most penalized point within one standard error of it
// ("lambda.1se"); the model refit on all training rows is reported at lambda.1se, which trades
// a whisker of deviance for a sparser, more legible coefficient set

func Train(tm *mtx.TermMatrix, y []float64, titles [2]string, opt FitOptions) (*str.FittedModel, error) {
	const (
		MSG1 = "Train(): lambda.min at step %d (deviance %.4f, %d terms); lambda.1se at step %d (deviance %.4f, %d terms)"
		MSG2 = "Train(): intercept %.4f plus %d nonzero coefficients"
	)

	n, _ := tm.Dims()
	if n == 0 {
		return nil, &str.AlignmentError{Where: "lasso.Train", Want: 1, Got: 0,
			Detail: "the matrix holds no training rows"}
	}
	if len(y) != n {
		return nil, &str.AlignmentError{Where: "lasso.Train", Want: n, Got: len(y),
			Detail: "labels do not align with matrix rows"}
	}

	var pos, neg int
	for i := range y {
		if y[i] > 0 {
			pos++
		} else {
			neg++
		}
	}
	if neg == 0 {
		return nil, &str.DegenerateClassError{Where: "lasso.Train", Label: titles[0]}
	}
	if pos == 0 {
		return nil, &str.DegenerateClassError{Where: "lasso.Train", Label: titles[1]}
	}

	opt = normalizeOptions(opt, n)

	rows := newSparseRows(tm.M)
	foldid := foldAssignments(n, opt.Folds, opt.Seed)

	cc := crossValidate(rows, y, foldid, opt.Folds, opt)
	imin, i1se := chooseOnCurve(cc)

	// refit on every training row, pausing to photograph the coefficients at the pick
	all := make([]bool, n)
	for i := range all {
		all[i] = true
	}
	finalRecs, snaps := runGPS(rows, y, all, all, opt, []int{cc.steps[i1se]})

	curve := make([]str.PathPoint, len(finalRecs))
	for c := range finalRecs {
		curve[c] = str.PathPoint{
			Index:   finalRecs[c].step,
			Penalty: finalRecs[c].penalty,
			MeanDev: cc.mean[c],
			StdErr:  cc.stderr[c],
			Nonzero: finalRecs[c].nonzero,
		}
	}

	chosen := snaps[0]
	coefs := make(map[string]float64)
	for j, b := range chosen.beta {
		if b != 0 {
			coefs[tm.Vocab.Terms[j]] = b
		}
	}

	fm := &str.FittedModel{
		Intercept:    chosen.b0,
		Coefficients: coefs,
		Chosen:       "lambda.1se",
		LambdaMin:    curve[imin],
		Lambda1SE:    curve[i1se],
		Curve:        curve,
		Fingerprint:  Fingerprint(titles, tm.Vocab.Terms, opt, n),
		Titles:       titles,
		Folds:        opt.Folds,
		Seed:         opt.Seed,
	}

	Msg.NOTE(fmt.Sprintf(MSG1, curve[imin].Index, curve[imin].MeanDev, curve[imin].Nonzero,
		curve[i1se].Index, curve[i1se].MeanDev, curve[i1se].Nonzero))
	Msg.FYI(fmt.Sprintf(MSG2, fm.Intercept, len(fm.Coefficients)))

	return fm, nil
}

// Fingerprint - a unique md5 for any given mix of corpus and fit settings
func Fingerprint(titles [2]string, terms []string, opt FitOptions, n int) string {
	const (
		FAIL = "Fingerprint() failed to Marshal"
	)

	// normalize so a caller with raw options derives the same key Train() will
	opt = normalizeOptions(opt, n)

	f1, e1 := json.Marshal(titles)
	f2, e2 := json.Marshal(terms)
	f3, e3 := json.Marshal(opt)
	if e1 != nil || e2 != nil || e3 != nil {
		Msg.NOTE(FAIL)
		return fmt.Sprintf("%032d", 0)
	}

	f1 = append(f1, f2...)
	f1 = append(f1, f3...)
	f1 = append(f1, []byte(fmt.Sprintf("%d", n))...)

	return fmt.Sprintf("%x", md5.Sum(f1))
}
