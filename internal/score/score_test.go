//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package score

import (
	"errors"
	"math"
	"testing"

	"github.com/e-gun/KritesGoClassifier/internal/lasso"
	"github.com/e-gun/KritesGoClassifier/internal/mtx"
	"github.com/e-gun/KritesGoClassifier/internal/str"
	"github.com/e-gun/KritesGoClassifier/internal/tkn"
)

func toymodel() *str.FittedModel {
	return &str.FittedModel{
		Intercept: 0,
		Coefficients: map[string]float64{
			"martian": 1.2,
			"mars":    0.8,
			"darcy":   -1.1,
			"ball":    -0.9,
		},
		Titles: [2]string{"A", "B"},
	}
}

func TestScoreDoc(t *testing.T) {
	fm := toymodel()

	sd := ScoreDoc(fm, str.Document{ID: 4, Title: "A", Text: "a martian saw mars"})
	if math.Abs(sd.Score-2.0) > 1e-12 {
		t.Errorf("expected score 2.0, got %f", sd.Score)
	}
	if sd.Probability <= 0.5 {
		t.Errorf("expected P(A) > 0.5, got %f", sd.Probability)
	}
	if sd.Predicted != "A" {
		t.Errorf("expected prediction A, got %q", sd.Predicted)
	}
	if !sd.Correct() {
		t.Error("a correct call should read as correct")
	}
}

func TestScoreDocCountsWeigh(t *testing.T) {
	fm := toymodel()

	// "martian" twice earns its coefficient twice
	sd := ScoreDoc(fm, str.Document{ID: 1, Title: "A", Text: "martian martian"})
	if math.Abs(sd.Score-2.4) > 1e-12 {
		t.Errorf("expected score 2.4, got %f", sd.Score)
	}

	// mixed evidence sums term by term: 1.2 - 0.9 - 0.9
	sd = ScoreDoc(fm, str.Document{ID: 2, Title: "B", Text: "martian ball ball"})
	if math.Abs(sd.Score-(-0.6)) > 1e-12 {
		t.Errorf("expected score -0.6, got %f", sd.Score)
	}
	if sd.Predicted != "B" {
		t.Errorf("expected prediction B, got %q", sd.Predicted)
	}
}

func TestScoreDocUnknownWords(t *testing.T) {
	fm := toymodel()
	fm.Intercept = 0.3

	// nothing in the document ever entered the vocabulary: the intercept decides alone
	sd := ScoreDoc(fm, str.Document{ID: 9, Title: "B", Text: "zorp blorp quux"})
	if sd.Score != fm.Intercept {
		t.Errorf("an all-unknown document must score the bare intercept: %f vs %f", sd.Score, fm.Intercept)
	}

	want := 1 / (1 + math.Exp(-0.3))
	if math.Abs(sd.Probability-want) > 1e-12 {
		t.Errorf("expected probability %f, got %f", want, sd.Probability)
	}
}

func TestScoreDocTieGoesNegative(t *testing.T) {
	fm := toymodel()

	// a dead-even score is not evidence for the first title
	sd := ScoreDoc(fm, str.Document{ID: 1, Title: "A", Text: "nothing known here"})
	if sd.Probability != 0.5 {
		t.Fatalf("expected probability 0.5, got %f", sd.Probability)
	}
	if sd.Predicted != "B" {
		t.Errorf("expected the tie to fall to the second title, got %q", sd.Predicted)
	}
}

func TestScoreMatchesMatrixPredictor(t *testing.T) {
	docs := []str.Document{
		{ID: 1, Title: "A", Text: "Martian martian mars!"},
		{ID: 2, Title: "A", Text: "the martian saw mars"},
		{ID: 3, Title: "B", Text: "darcy, darcy and the ball"},
		{ID: 4, Title: "B", Text: "a ball"},
	}

	pairs := tkn.CountTokens(docs)
	vocab, err := tkn.FilterVocabulary(pairs, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tm, err := mtx.Build(pairs, []int{1, 2, 3, 4}, vocab)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fm := toymodel()
	fm.Intercept = 0.25

	// scoring off raw tokens must land exactly where the matrix predictor does:
	// intercept + row · coefficients over the vocabulary columns
	for r, id := range tm.RowIDs {
		want := fm.Intercept
		for j, term := range tm.Vocab.Terms {
			if c, ok := fm.Coefficients[term]; ok {
				want += tm.M.At(r, j) * c
			}
		}

		var d str.Document
		for i := range docs {
			if docs[i].ID == id {
				d = docs[i]
			}
		}

		got := ScoreDoc(fm, d).Score
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("document %d: token score %f differs from the matrix predictor %f", id, got, want)
		}
	}
}

func TestConfusion(t *testing.T) {
	titles := [2]string{"A", "B"}
	scored := []str.ScoredDoc{
		{Title: "A", Predicted: "A"},
		{Title: "A", Predicted: "B"},
		{Title: "B", Predicted: "B"},
		{Title: "B", Predicted: "B"},
		{Title: "B", Predicted: "A"},
	}

	cm := Confusion(scored, titles)
	if cm.Cells[0][0] != 1 || cm.Cells[0][1] != 1 || cm.Cells[1][0] != 1 || cm.Cells[1][1] != 2 {
		t.Errorf("unexpected cells: %v", cm.Cells)
	}
	if cm.Total() != len(scored) {
		t.Errorf("the cells must sum to the test size: %d vs %d", cm.Total(), len(scored))
	}
	if cm.Correct() != 3 {
		t.Errorf("expected 3 correct, got %d", cm.Correct())
	}
	if math.Abs(cm.Accuracy()-0.6) > 1e-12 {
		t.Errorf("expected accuracy 0.6, got %f", cm.Accuracy())
	}
}

func TestAUCPerfectSeparation(t *testing.T) {
	titles := [2]string{"A", "B"}
	scored := []str.ScoredDoc{
		{Title: "A", Probability: 0.9},
		{Title: "A", Probability: 0.8},
		{Title: "B", Probability: 0.2},
		{Title: "B", Probability: 0.1},
	}

	auc, err := AUC(scored, titles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(auc-1.0) > 1e-12 {
		t.Errorf("perfectly separated scores must give AUC 1.0, got %f", auc)
	}
}

func TestAUCPartialOverlap(t *testing.T) {
	titles := [2]string{"A", "B"}
	scored := []str.ScoredDoc{
		{Title: "A", Probability: 0.8},
		{Title: "A", Probability: 0.3},
		{Title: "B", Probability: 0.6},
		{Title: "B", Probability: 0.2},
	}

	// three of the four (A,B) pairs rank correctly
	auc, err := AUC(scored, titles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(auc-0.75) > 1e-12 {
		t.Errorf("expected AUC 0.75, got %f", auc)
	}
}

func TestAUCOneClass(t *testing.T) {
	titles := [2]string{"A", "B"}
	scored := []str.ScoredDoc{
		{Title: "A", Probability: 0.9},
		{Title: "A", Probability: 0.4},
	}

	_, err := AUC(scored, titles)
	if err == nil {
		t.Fatal("expected an error on a one-class test set")
	}
	var dce *str.DegenerateClassError
	if !errors.As(err, &dce) {
		t.Fatalf("expected a DegenerateClassError, got %T", err)
	}
	if dce.Label != "A" {
		t.Errorf("the error should name the only class present, got %q", dce.Label)
	}
}

func TestMisclassifiedDraw(t *testing.T) {
	var scored []str.ScoredDoc
	for i := 1; i <= 10; i++ {
		sd := str.ScoredDoc{DocID: i, Title: "A", Predicted: "B"} // all wrong
		if i%2 == 0 {
			sd.Predicted = "A" // half right
		}
		scored = append(scored, sd)
	}

	drawn := Misclassified(scored, 3, 1)
	if len(drawn) != 3 {
		t.Fatalf("expected 3 draws, got %d", len(drawn))
	}
	for _, d := range drawn {
		if d.Correct() {
			t.Errorf("document %d was classified correctly and must not be drawn", d.DocID)
		}
	}
	for i := 1; i < len(drawn); i++ {
		if drawn[i].DocID <= drawn[i-1].DocID {
			t.Error("draws should come back in document order")
		}
	}

	again := Misclassified(scored, 3, 1)
	for i := range drawn {
		if drawn[i].DocID != again[i].DocID {
			t.Fatal("the same seed must draw the same documents")
		}
	}

	// fewer mistakes than requested: hand them all over
	all := Misclassified(scored, 100, 1)
	if len(all) != 5 {
		t.Errorf("expected all 5 mistakes, got %d", len(all))
	}
}

func TestConfidentlyWrong(t *testing.T) {
	scored := []str.ScoredDoc{
		{DocID: 1, Title: "B", Predicted: "A", Probability: 0.95}, // sure and wrong
		{DocID: 2, Title: "B", Predicted: "A", Probability: 0.55}, // barely wrong
		{DocID: 3, Title: "A", Predicted: "A", Probability: 0.97}, // sure and right
		{DocID: 4, Title: "A", Predicted: "B", Probability: 0.05}, // sure and wrong
	}

	out := ConfidentlyWrong(scored, 0.8, 0.2)
	if len(out) != 2 {
		t.Fatalf("expected 2 confident mistakes, got %d", len(out))
	}
	if out[0].DocID != 1 || out[1].DocID != 4 {
		t.Errorf("unexpected draw: %v", out)
	}
}

func TestToyCorpusHoldout(t *testing.T) {
	docs := []str.Document{
		{ID: 1, Title: "A", Text: "martian invasion mars martian mars"},
		{ID: 2, Title: "A", Text: "martian mars"},
		{ID: 3, Title: "B", Text: "elizabeth darcy ball"},
		{ID: 4, Title: "B", Text: "elizabeth darcy ball"},
	}

	// the filter pools all four documents; the matrix holds only the three training rows
	pairs := tkn.CountTokens(docs)
	vocab, err := tkn.FilterVocabulary(pairs, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tm, err := mtx.Build(pairs, []int{1, 3, 4}, vocab)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	y := []float64{1, -1, -1}
	fm, err := lasso.Train(tm, y, [2]string{"A", "B"}, lasso.FitOptions{
		Folds: 2, Seed: 1, StepSize: 0.01, MaxSteps: 1200, RecordEvery: 200, Workers: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fm.Empty() {
		t.Fatal("the toy corpus produced an empty model")
	}

	// the held-out document shares its words with the one training row of its class
	sd := ScoreDoc(fm, docs[1])
	if sd.Probability <= 0.5 {
		t.Errorf("expected P(A) > 0.5 for the held-out document, got %f", sd.Probability)
	}
	if sd.Predicted != "A" {
		t.Errorf("expected prediction A, got %q", sd.Predicted)
	}

	cm := Confusion([]str.ScoredDoc{sd}, fm.Titles)
	if cm.Cells[0][0] != 1 {
		t.Errorf("the hit should land in the true-A predicted-A cell: %v", cm.Cells)
	}
	if cm.Total() != 1 {
		t.Errorf("one test document must land in exactly one cell, got %d", cm.Total())
	}
}

func TestEvaluate(t *testing.T) {
	fm := toymodel()
	docs := []str.Document{
		{ID: 1, Title: "A", Text: "martian mars"},
		{ID: 2, Title: "A", Text: "martian"},
		{ID: 3, Title: "B", Text: "darcy ball"},
		{ID: 4, Title: "B", Text: "ball"},
	}

	rpt, err := Evaluate(fm, docs, EvalOptions{RunID: "test-run", MisclassN: 5, Seed: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rpt.AUC != 1.0 {
		t.Errorf("expected AUC 1.0, got %f", rpt.AUC)
	}
	if rpt.Confusion.Total() != len(docs) {
		t.Errorf("confusion cells must sum to the test size")
	}
	if rpt.Confusion.Cells[0][0] != 2 || rpt.Confusion.Cells[1][1] != 2 {
		t.Errorf("expected a clean diagonal, got %v", rpt.Confusion.Cells)
	}
	if len(rpt.Misclassified) != 0 {
		t.Errorf("a perfect run has nothing to inspect, got %d", len(rpt.Misclassified))
	}
	if rpt.TestSize != 4 || rpt.RunID != "test-run" {
		t.Errorf("report metadata wrong: %+v", rpt)
	}
}
