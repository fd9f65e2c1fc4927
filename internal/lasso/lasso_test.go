//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lasso

import (
	"errors"
	"math"
	"testing"

	"github.com/e-gun/KritesGoClassifier/internal/mtx"
	"github.com/e-gun/KritesGoClassifier/internal/str"
)

func toyvocab(tt ...string) *str.Vocabulary {
	idx := make(map[string]int)
	for i, t := range tt {
		idx[t] = i
	}
	return &str.Vocabulary{Terms: tt, Index: idx}
}

// eight documents, four per class, each marked by its own pair of words
func toyproblem(t *testing.T) (*mtx.TermMatrix, []float64) {
	t.Helper()

	vocab := toyvocab("ball", "darcy", "mars", "martian")
	var pairs []str.TokenCount
	for d := 1; d <= 4; d++ {
		pairs = append(pairs,
			str.TokenCount{DocID: d, Word: "martian", Count: 2},
			str.TokenCount{DocID: d, Word: "mars", Count: 1})
	}
	for d := 5; d <= 8; d++ {
		pairs = append(pairs,
			str.TokenCount{DocID: d, Word: "darcy", Count: 2},
			str.TokenCount{DocID: d, Word: "ball", Count: 1})
	}

	tm, err := mtx.Build(pairs, []int{1, 2, 3, 4, 5, 6, 7, 8}, vocab)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	y := []float64{1, 1, 1, 1, -1, -1, -1, -1}
	return tm, y
}

func fastopts() FitOptions {
	return FitOptions{Folds: 2, Seed: 1, StepSize: 0.01, MaxSteps: 600, RecordEvery: 25, Workers: 2}
}

func TestTrainSeparable(t *testing.T) {
	tm, y := toyproblem(t)

	fm, err := Train(tm, y, [2]string{"A", "B"}, fastopts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fm.Empty() {
		t.Fatal("training on separable data produced an empty model")
	}

	// class words pull in their own directions
	apull := fm.Coefficients["martian"] + fm.Coefficients["mars"]
	bpull := fm.Coefficients["darcy"] + fm.Coefficients["ball"]
	if apull <= 0 {
		t.Errorf("positive-class words should carry positive weight, got %f", apull)
	}
	if bpull >= 0 {
		t.Errorf("negative-class words should carry negative weight, got %f", bpull)
	}

	// a document's score lands on the right side of zero
	scoreA := fm.Intercept + 2*fm.Coefficients["martian"] + fm.Coefficients["mars"]
	scoreB := fm.Intercept + 2*fm.Coefficients["darcy"] + fm.Coefficients["ball"]
	if scoreA <= scoreB {
		t.Errorf("expected score(A doc) > score(B doc): %f vs %f", scoreA, scoreB)
	}
}

func TestTrainPathShape(t *testing.T) {
	tm, y := toyproblem(t)

	fm, err := Train(tm, y, [2]string{"A", "B"}, fastopts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fm.Curve) == 0 {
		t.Fatal("no path points recorded")
	}
	for c := 1; c < len(fm.Curve); c++ {
		if fm.Curve[c].Index <= fm.Curve[c-1].Index {
			t.Fatalf("path indices must increase: %d then %d", fm.Curve[c-1].Index, fm.Curve[c].Index)
		}
	}

	last := fm.Curve[len(fm.Curve)-1]
	if last.Penalty <= 0 {
		t.Errorf("the path never spent any L1 budget: %f", last.Penalty)
	}
	if last.Nonzero < 1 {
		t.Errorf("the path never picked up a term")
	}

	// the sparser pick sits no later on the path than the minimum
	if fm.Lambda1SE.Index > fm.LambdaMin.Index {
		t.Errorf("lambda.1se (step %d) must not come after lambda.min (step %d)",
			fm.Lambda1SE.Index, fm.LambdaMin.Index)
	}
	if fm.Lambda1SE.Nonzero > fm.LambdaMin.Nonzero {
		t.Errorf("lambda.1se carries %d nonzero terms against %d at lambda.min",
			fm.Lambda1SE.Nonzero, fm.LambdaMin.Nonzero)
	}
	if fm.Lambda1SE.MeanDev > fm.LambdaMin.MeanDev+fm.LambdaMin.StdErr+1e-9 {
		t.Errorf("lambda.1se deviance %f exceeds the one-standard-error band %f",
			fm.Lambda1SE.MeanDev, fm.LambdaMin.MeanDev+fm.LambdaMin.StdErr)
	}
	if fm.Chosen != "lambda.1se" {
		t.Errorf("the reported model should be the lambda.1se fit, got %q", fm.Chosen)
	}
}

func TestTrainDeterminism(t *testing.T) {
	tm, y := toyproblem(t)

	a, err := Train(tm, y, [2]string{"A", "B"}, fastopts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Train(tm, y, [2]string{"A", "B"}, fastopts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Fingerprint != b.Fingerprint {
		t.Error("same inputs must fingerprint identically")
	}
	if a.Intercept != b.Intercept {
		t.Errorf("intercepts differ: %f vs %f", a.Intercept, b.Intercept)
	}
	if len(a.Coefficients) != len(b.Coefficients) {
		t.Fatalf("coefficient sets differ in size: %d vs %d", len(a.Coefficients), len(b.Coefficients))
	}
	for k, v := range a.Coefficients {
		if b.Coefficients[k] != v {
			t.Errorf("coefficient %q differs: %f vs %f", k, v, b.Coefficients[k])
		}
	}

	opt := fastopts()
	opt.Seed = 99
	c, err := Train(tm, y, [2]string{"A", "B"}, opt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Fingerprint == a.Fingerprint {
		t.Error("a different seed must fingerprint differently")
	}
}

func TestTrainAlignment(t *testing.T) {
	tm, _ := toyproblem(t)

	_, err := Train(tm, []float64{1, -1}, [2]string{"A", "B"}, fastopts())
	if err == nil {
		t.Fatal("expected an error on misaligned labels")
	}
	var ae *str.AlignmentError
	if !errors.As(err, &ae) {
		t.Fatalf("expected an AlignmentError, got %T", err)
	}
}

func TestTrainDegenerate(t *testing.T) {
	tm, y := toyproblem(t)
	for i := range y {
		y[i] = 1
	}

	_, err := Train(tm, y, [2]string{"A", "B"}, fastopts())
	if err == nil {
		t.Fatal("expected an error on one-class labels")
	}
	var dce *str.DegenerateClassError
	if !errors.As(err, &dce) {
		t.Fatalf("expected a DegenerateClassError, got %T", err)
	}
	if dce.Label != "A" {
		t.Errorf("the error should name the only class present, got %q", dce.Label)
	}
}

func TestFoldAssignments(t *testing.T) {
	a := foldAssignments(50, 10, 1)
	b := foldAssignments(50, 10, 1)
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("fold assignment must be deterministic for a fixed seed")
		}
	}

	sizes := make(map[int]int)
	for _, f := range a {
		sizes[f]++
	}
	if len(sizes) != 10 {
		t.Fatalf("expected 10 folds, got %d", len(sizes))
	}
	for f, ct := range sizes {
		if ct != 5 {
			t.Errorf("fold %d has %d rows, want 5", f, ct)
		}
	}

	c := foldAssignments(50, 10, 2)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds should shuffle differently")
	}
}

func TestChooseOnCurve(t *testing.T) {
	cc := cvCurve{
		steps:  []int{25, 50, 75, 100, 125},
		mean:   []float64{5.0, 3.0, 2.5, 2.4, 2.45},
		stderr: []float64{0.2, 0.2, 0.2, 0.2, 0.2},
	}

	imin, i1se := chooseOnCurve(cc)
	if imin != 3 {
		t.Errorf("expected the minimum at index 3, got %d", imin)
	}
	// 2.5 <= 2.4+0.2, so the sparser point at index 2 wins
	if i1se != 2 {
		t.Errorf("expected the one-standard-error pick at index 2, got %d", i1se)
	}
}

func TestBaseRateIntercept(t *testing.T) {
	y := []float64{1, 1, 1, -1}
	mask := []bool{true, true, true, true}

	got := baseRateIntercept(y, mask)
	want := math.Log(3.5 / 1.5)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, got)
	}
}
