//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/danaugrs/go-tsne/tsne"
	"github.com/e-gun/KritesGoClassifier/internal/str"
	"github.com/e-gun/KritesGoClassifier/internal/tkn"
	"github.com/e-gun/KritesGoClassifier/internal/vv"
	"github.com/e-gun/wego/pkg/embedding"
	"gonum.org/v1/gonum/mat"
)

// ProjectedDoc - a document dropped onto the 2d t-SNE plane
type ProjectedDoc struct {
	ID    int
	Title string
	X     float64
	Y     float64
}

// docvector - the mean of the embedding vectors of a document's tokens; ok is false if every token is OOV
func docvector(vecs map[string][]float64, dim int, d str.Document) ([]float64, bool) {
	mean := make([]float64, dim)
	hits := 0
	for _, w := range tkn.Tokenize(d.Text) {
		v, found := vecs[w]
		if !found {
			continue
		}
		for i := 0; i < dim; i++ {
			mean[i] += v[i]
		}
		hits++
	}
	if hits == 0 {
		return nil, false
	}
	for i := 0; i < dim; i++ {
		mean[i] = mean[i] / float64(hits)
	}
	return mean, true
}

// ProjectCorpus - t-SNE the per-document mean embedding vectors down to two dimensions
func ProjectCorpus(embs embedding.Embeddings, lc *str.LabeledCorpus, seed int64) []ProjectedDoc {
	const (
		FAIL1 = "ProjectCorpus() has no embeddings to work with"
		FAIL2 = "ProjectCorpus() has no documents with in-vocabulary words"
		MSG1  = "ProjectCorpus() projecting %d of %d candidate documents (perplexity %.0f)"
	)

	if len(embs) == 0 {
		Msg.NOTE(FAIL1)
		return nil
	}

	vecs := make(map[string][]float64)
	dim := 0
	for _, e := range embs {
		vecs[e.Word] = e.Vector
		if dim == 0 {
			dim = len(e.Vector)
		}
	}

	type candidate struct {
		doc str.Document
		vec []float64
	}
	var cands []candidate
	for _, d := range lc.Docs {
		if v, ok := docvector(vecs, dim, d); ok {
			cands = append(cands, candidate{doc: d, vec: v})
		}
	}
	if len(cands) == 0 {
		Msg.NOTE(FAIL2)
		return nil
	}

	// t-SNE wants all-pairs distances; sample the corpus down to something tractable
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(cands), func(i, j int) { cands[i], cands[j] = cands[j], cands[i] })
	if len(cands) > vv.TSNEMAXDOCS {
		cands = cands[:vv.TSNEMAXDOCS]
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].doc.ID < cands[j].doc.ID })

	n := len(cands)
	flat := make([]float64, 0, n*dim)
	for _, c := range cands {
		flat = append(flat, c.vec...)
	}
	wv := mat.NewDense(n, dim, flat)

	// the perplexity has to stay well under n or the solver degenerates
	px := float64(vv.TSNEPERPLEXITY)
	if float64(n-1)/3 < px {
		px = float64(n-1) / 3
		if px < 2 {
			px = 2
		}
	}

	Msg.PEEK(fmt.Sprintf(MSG1, n, len(lc.Docs), px))

	t := tsne.NewTSNE(2, px, float64(vv.TSNELEARNINGRT), vv.TSNEMAXITERS, false)
	t.EmbedData(wv, nil)

	out := make([]ProjectedDoc, n)
	for i := 0; i < n; i++ {
		out[i] = ProjectedDoc{
			ID:    cands[i].doc.ID,
			Title: cands[i].doc.Title,
			X:     t.Y.At(i, 0),
			Y:     t.Y.At(i, 1),
		}
	}
	return out
}
