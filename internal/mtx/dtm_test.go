//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mtx

import (
	"errors"
	"testing"

	"github.com/e-gun/KritesGoClassifier/internal/str"
)

func toyvocab(tt ...string) *str.Vocabulary {
	idx := make(map[string]int)
	for i, t := range tt {
		idx[t] = i
	}
	return &str.Vocabulary{Terms: tt, Index: idx}
}

func TestBuildCounts(t *testing.T) {
	vocab := toyvocab("ball", "mars", "martian")
	pairs := []str.TokenCount{
		{DocID: 3, Word: "martian", Count: 2},
		{DocID: 3, Word: "mars", Count: 1},
		{DocID: 5, Word: "ball", Count: 4},
		{DocID: 5, Word: "unfiltered", Count: 9}, // not in the vocabulary
	}

	tm, err := Build(pairs, []int{5, 3}, vocab)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r, c := tm.Dims()
	if r != 2 || c != 3 {
		t.Fatalf("expected a 2x3 matrix, got %dx%d", r, c)
	}

	// rows come out ascending by document id
	if tm.RowIDs[0] != 3 || tm.RowIDs[1] != 5 {
		t.Errorf("row ids not sorted: %v", tm.RowIDs)
	}

	if got := tm.M.At(0, 2); got != 2 {
		t.Errorf("doc 3 x martian: expected 2, got %f", got)
	}
	if got := tm.M.At(0, 1); got != 1 {
		t.Errorf("doc 3 x mars: expected 1, got %f", got)
	}
	if got := tm.M.At(1, 0); got != 4 {
		t.Errorf("doc 5 x ball: expected 4, got %f", got)
	}

	// out-of-vocabulary counts never enter the matrix
	if got := tm.RowSum(1); got != 4 {
		t.Errorf("row sum for doc 5: expected 4, got %f", got)
	}
}

func TestBuildDropsEmptyRows(t *testing.T) {
	vocab := toyvocab("mars")
	pairs := []str.TokenCount{
		{DocID: 1, Word: "mars", Count: 3},
		{DocID: 2, Word: "obscure", Count: 1},
	}

	// doc 2 holds nothing in the vocabulary: it casts no row
	tm, err := Build(pairs, []int{1, 2}, vocab)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r, _ := tm.Dims()
	if r != 1 {
		t.Fatalf("expected 1 row, got %d", r)
	}
	if len(tm.RowIDs) != 1 || tm.RowIDs[0] != 1 {
		t.Errorf("expected only doc 1 to survive, got %v", tm.RowIDs)
	}
}

func TestBuildRestrictsToTrainingSet(t *testing.T) {
	vocab := toyvocab("mars")
	pairs := []str.TokenCount{
		{DocID: 1, Word: "mars", Count: 3},
		{DocID: 2, Word: "mars", Count: 5}, // held out
	}

	tm, err := Build(pairs, []int{1}, vocab)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tm.RowIDs) != 1 || tm.RowIDs[0] != 1 {
		t.Errorf("held-out documents must not cast rows: %v", tm.RowIDs)
	}
}

func TestBuildDuplicateID(t *testing.T) {
	vocab := toyvocab("mars")
	pairs := []str.TokenCount{{DocID: 1, Word: "mars", Count: 1}}

	_, err := Build(pairs, []int{1, 1}, vocab)
	if err == nil {
		t.Fatal("expected an error on a duplicated training id")
	}
	var ae *str.AlignmentError
	if !errors.As(err, &ae) {
		t.Fatalf("expected an AlignmentError, got %T", err)
	}
}

func TestBuildEmptyVocabulary(t *testing.T) {
	_, err := Build(nil, []int{1}, toyvocab())
	var eve *str.EmptyVocabularyError
	if !errors.As(err, &eve) {
		t.Fatalf("expected an EmptyVocabularyError, got %T", err)
	}
}

func TestLabelsFor(t *testing.T) {
	lc := &str.LabeledCorpus{
		Docs: []str.Document{
			{ID: 1, Title: "T1", Text: "mars"},
			{ID: 2, Title: "T2", Text: "mars ball"},
		},
		Titles: [2]string{"T1", "T2"},
	}

	vocab := toyvocab("ball", "mars")
	pairs := []str.TokenCount{
		{DocID: 1, Word: "mars", Count: 1},
		{DocID: 2, Word: "mars", Count: 1},
		{DocID: 2, Word: "ball", Count: 1},
	}

	tm, err := Build(pairs, []int{1, 2}, vocab)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	y, err := LabelsFor(tm, lc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(y) != 2 || y[0] != 1 || y[1] != -1 {
		t.Errorf("expected labels [1 -1], got %v", y)
	}
}

func TestLabelsForMissingDoc(t *testing.T) {
	lc := &str.LabeledCorpus{
		Docs:   []str.Document{{ID: 1, Title: "T1", Text: "mars"}},
		Titles: [2]string{"T1", "T2"},
	}

	vocab := toyvocab("mars")
	pairs := []str.TokenCount{
		{DocID: 1, Word: "mars", Count: 1},
		{DocID: 99, Word: "mars", Count: 1}, // unknown to the corpus
	}

	tm, err := Build(pairs, []int{1, 99}, vocab)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = LabelsFor(tm, lc)
	var ae *str.AlignmentError
	if !errors.As(err, &ae) {
		t.Fatalf("expected an AlignmentError, got %T", err)
	}
}
