//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

import "time"

// ScoredDoc - one test document pushed through the fitted coefficients
type ScoredDoc struct {
	DocID       int
	Title       string // the true label
	Text        string
	Score       float64 // intercept + sum(coefficient * count)
	Probability float64 // logistic(Score); P(first title)
	Predicted   string
}

func (sd *ScoredDoc) Correct() bool {
	return sd.Predicted == sd.Title
}

// ConfusionMatrix - true class x predicted class counts; index 0 is the positive class
type ConfusionMatrix struct {
	Labels [2]string
	Cells  [2][2]int // [true][predicted]
}

func (cm *ConfusionMatrix) Total() int {
	return cm.Cells[0][0] + cm.Cells[0][1] + cm.Cells[1][0] + cm.Cells[1][1]
}

func (cm *ConfusionMatrix) Correct() int {
	return cm.Cells[0][0] + cm.Cells[1][1]
}

func (cm *ConfusionMatrix) Accuracy() float64 {
	t := cm.Total()
	if t == 0 {
		return 0
	}
	return float64(cm.Correct()) / float64(t)
}

// EvalReport - everything a run reports: the four artifacts plus run metadata
type EvalReport struct {
	RunID         string
	When          time.Time
	Titles        [2]string
	AUC           float64
	Confusion     ConfusionMatrix
	Scores        []ScoredDoc
	Misclassified []ScoredDoc
	TrainSize     int
	TestSize      int
	VocabSize     int
	MinWordFreq   int
	Seed          int64
}
