//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

import "sort"

// Vocabulary - the words surviving the minimum-frequency filter; defines the matrix column space
type Vocabulary struct {
	Terms []string       // sorted
	Index map[string]int // term -> column
}

func (v *Vocabulary) Size() int {
	return len(v.Terms)
}

func (v *Vocabulary) Has(w string) bool {
	_, ok := v.Index[w]
	return ok
}

// PathPoint - one recorded point on the regularization path with its cross-validated error
type PathPoint struct {
	Index    int     // position on the path; smaller = more regularized
	Penalty  float64 // accumulated L1 budget at this point
	MeanDev  float64 // mean out-of-fold deviance
	StdErr   float64
	Nonzero  int
}

// Coefficient - one line of the fitted coefficient table
type Coefficient struct {
	Term     string
	Estimate float64
}

// FittedModel - intercept plus the nonzero term coefficients at the chosen path point
type FittedModel struct {
	Intercept    float64
	Coefficients map[string]float64 // nonzero terms only; everything else is implicitly zero
	Chosen       string             // "lambda.1se" or "lambda.min"
	LambdaMin    PathPoint
	Lambda1SE    PathPoint
	Curve        []PathPoint
	Fingerprint  string // md5 of the run options; keys the model store
	Titles       [2]string
	MinWordFreq  int
	Folds        int
	Seed         int64
}

// Empty - a model with no intercept and no coefficients was never fit
func (fm *FittedModel) Empty() bool {
	return len(fm.Coefficients) == 0 && fm.Intercept == 0
}

// Table - the coefficient table sorted by estimate, intercept first
func (fm *FittedModel) Table() []Coefficient {
	tb := make([]Coefficient, 0, len(fm.Coefficients)+1)
	tb = append(tb, Coefficient{Term: "(Intercept)", Estimate: fm.Intercept})
	var ww WWList
	for t, e := range fm.Coefficients {
		ww = append(ww, WeightedWord{Word: t, Score: e})
	}
	sort.Sort(ww)
	for _, w := range ww {
		tb = append(tb, Coefficient{Term: w.Word, Estimate: w.Score})
	}
	return tb
}
