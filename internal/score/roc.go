//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package score

import (
	"sort"

	"github.com/e-gun/KritesGoClassifier/internal/str"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// ROCPoints - the curve itself, for plotting: paired false- and true-positive rates
func ROCPoints(scored []str.ScoredDoc, titles [2]string) (fpr []float64, tpr []float64, err error) {
	y, classes, err := rocInputs(scored, titles)
	if err != nil {
		return nil, nil, err
	}
	tpr, fpr, _ = stat.ROC(nil, y, classes, nil)
	return fpr, tpr, nil
}

// AUC - area under the ROC curve of the scored documents
func AUC(scored []str.ScoredDoc, titles [2]string) (float64, error) {
	y, classes, err := rocInputs(scored, titles)
	if err != nil {
		return 0, err
	}
	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return integrate.Trapezoidal(fpr, tpr), nil
}

// rocInputs - probabilities ascending with their class flags, as stat.ROC demands
func rocInputs(scored []str.ScoredDoc, titles [2]string) ([]float64, []bool, error) {
	var pos, neg int
	for i := range scored {
		if scored[i].Title == titles[0] {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 {
		return nil, nil, &str.DegenerateClassError{Where: "score.AUC", Label: titles[1]}
	}
	if neg == 0 {
		return nil, nil, &str.DegenerateClassError{Where: "score.AUC", Label: titles[0]}
	}

	idx := make([]int, len(scored))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scored[idx[a]].Probability < scored[idx[b]].Probability
	})

	y := make([]float64, len(scored))
	classes := make([]bool, len(scored))
	for i, j := range idx {
		y[i] = scored[j].Probability
		classes[i] = scored[j].Title == titles[0]
	}
	return y, classes, nil
}
