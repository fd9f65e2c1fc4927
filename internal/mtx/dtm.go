//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mtx

import (
	"fmt"
	"sort"

	"github.com/e-gun/KritesGoClassifier/internal/lnch"
	"github.com/e-gun/KritesGoClassifier/internal/str"
	"github.com/e-gun/sparse"
)

var Msg = lnch.NewMessageMakerWithDefaults()

// TermMatrix - the training design matrix: one row per surviving training document, one column
// per vocabulary term, cells are raw counts
//
// a training document none of whose words survived the frequency filter casts no row at all;
// RowIDs records which documents actually made it in, ascending

type TermMatrix struct {
	M      *sparse.CSR
	RowIDs []int
	Vocab  *str.Vocabulary
}

// Dims - rows, columns
func (tm *TermMatrix) Dims() (int, int) {
	return tm.M.Dims()
}

// RowSum - total in-vocabulary tokens of the i-th row
func (tm *TermMatrix) RowSum(i int) float64 {
	var s float64
	tm.M.DoRowNonZero(i, func(_ int, _ int, v float64) {
		s += v
	})
	return s
}

// Density - share of nonzero cells
func (tm *TermMatrix) Density() float64 {
	r, c := tm.M.Dims()
	if r*c == 0 {
		return 0
	}
	return float64(tm.M.NNZ()) / float64(r*c)
}

// Build - cast (document, word, count) triples into a sparse matrix over the training documents
func Build(pairs []str.TokenCount, trainIDs []int, vocab *str.Vocabulary) (*TermMatrix, error) {
	const (
		MSG1 = "Build(): %d x %d matrix from %d documents (%d cast no row); density %.4f"
		DUPE = "duplicate document id %d in the training set"
	)

	if vocab == nil || vocab.Size() == 0 {
		return nil, &str.EmptyVocabularyError{}
	}

	train := make(map[int]bool, len(trainIDs))
	for _, id := range trainIDs {
		if train[id] {
			return nil, &str.AlignmentError{Where: "mtx.Build", Want: len(trainIDs),
				Got: len(train), Detail: fmt.Sprintf(DUPE, id)}
		}
		train[id] = true
	}

	perdoc := make(map[int][]str.TokenCount)
	for i := range pairs {
		p := pairs[i]
		if train[p.DocID] && vocab.Has(p.Word) {
			perdoc[p.DocID] = append(perdoc[p.DocID], p)
		}
	}

	rowids := make([]int, 0, len(perdoc))
	for id := range perdoc {
		rowids = append(rowids, id)
	}
	sort.Ints(rowids)

	dok := sparse.NewDOK(len(rowids), vocab.Size())
	for r, id := range rowids {
		for _, p := range perdoc[id] {
			dok.Set(r, vocab.Index[p.Word], float64(p.Count))
		}
	}

	tm := &TermMatrix{M: dok.ToCSR(), RowIDs: rowids, Vocab: vocab}
	nr, nc := tm.Dims()
	Msg.PEEK(fmt.Sprintf(MSG1, nr, nc, len(trainIDs), len(trainIDs)-len(rowids), tm.Density()))
	return tm, nil
}

// LabelsFor - the ±1 class vector aligned to the matrix rows; +1 is the corpus's first title
func LabelsFor(tm *TermMatrix, lc *str.LabeledCorpus) ([]float64, error) {
	const (
		MISS = "document %d has a matrix row but no label"
	)

	title := make(map[int]string, len(lc.Docs))
	for i := range lc.Docs {
		title[lc.Docs[i].ID] = lc.Docs[i].Title
	}

	y := make([]float64, len(tm.RowIDs))
	for i, id := range tm.RowIDs {
		t, ok := title[id]
		if !ok {
			return nil, &str.AlignmentError{Where: "mtx.LabelsFor", Want: len(tm.RowIDs),
				Got: i, Detail: fmt.Sprintf(MISS, id)}
		}
		if lc.IsPositive(t) {
			y[i] = 1
		} else {
			y[i] = -1
		}
	}
	return y, nil
}
