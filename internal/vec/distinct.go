//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"fmt"
	"sort"

	"github.com/e-gun/KritesGoClassifier/internal/gen"
	"github.com/e-gun/KritesGoClassifier/internal/str"
	"github.com/e-gun/KritesGoClassifier/internal/tkn"
	"github.com/e-gun/KritesGoClassifier/internal/vv"
	"github.com/e-gun/nlp"
)

// the tf-idf rankings answer a different question than the classifier's coefficients do:
// "what words does this work lean on" vs "what words tell the two works apart in a line"

// chunkedcorpus - cut each title's lines into pseudo-documents of TFIDFCHUNKLINES lines each
func chunkedcorpus(lc *str.LabeledCorpus, stops map[string]struct{}) ([]string, []string) {
	bytitle := make(map[string][]str.Document)
	for _, d := range lc.Docs {
		bytitle[d.Title] = append(bytitle[d.Title], d)
	}

	var corpus []string
	var owners []string
	for _, t := range lc.Titles {
		chunks := gen.ChunkSlice(bytitle[t], vv.TFIDFCHUNKLINES)
		for _, ch := range chunks {
			corpus = append(corpus, BuildTextBlock(ch, stops))
			owners = append(owners, t)
		}
	}
	return corpus, owners
}

// DistinctiveTerms - the top tf-idf weighted words per title; one WWList per title
func DistinctiveTerms(lc *str.LabeledCorpus, topn int) map[string]str.WWList {
	const (
		FAIL1 = "DistinctiveTerms() failed to build the tf-idf pipeline: %s"
		MSG1  = "DistinctiveTerms() weighed %d terms across %d chunks"
	)

	out := make(map[string]str.WWList)
	stopset := tkn.StopSet()
	corpus, owners := chunkedcorpus(lc, stopset)
	if len(corpus) == 0 {
		return out
	}

	vectoriser := nlp.NewCountVectoriser(gen.StringMapKeysIntoSlice(stopset)...)
	transformer := nlp.NewTfidfTransformer()

	pipeline := nlp.NewPipeline(vectoriser, transformer)

	// rows are terms; columns are the chunked pseudo-documents
	tfidf, err := pipeline.FitTransform(corpus...)
	if err != nil {
		Msg.WARN(fmt.Sprintf(FAIL1, err.Error()))
		return out
	}

	vocab := make([]string, len(vectoriser.Vocabulary))
	for k, v := range vectoriser.Vocabulary {
		vocab[v] = k
	}

	tr, tc := tfidf.Dims()
	Msg.PEEK(fmt.Sprintf(MSG1, tr, tc))

	// accumulate each term's weight into its owner's total
	weights := make(map[string]map[string]float64)
	for _, t := range lc.Titles {
		weights[t] = make(map[string]float64)
	}

	for col := 0; col < tc; col++ {
		wm := weights[owners[col]]
		for row := 0; row < tr; row++ {
			v := tfidf.At(row, col)
			if v != 0 {
				wm[vocab[row]] += v
			}
		}
	}

	for _, t := range lc.Titles {
		var ww str.WWList
		for w, v := range weights[t] {
			ww = append(ww, str.WeightedWord{Word: w, Score: v})
		}
		sort.Sort(ww)
		if topn > 0 && len(ww) > topn {
			ww = ww[:topn]
		}
		out[t] = ww
	}

	return out
}
