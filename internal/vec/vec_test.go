//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"math"
	"testing"

	"github.com/e-gun/KritesGoClassifier/internal/str"
	"github.com/e-gun/KritesGoClassifier/internal/vv"
	"github.com/e-gun/wego/pkg/embedding"
)

var teststops = map[string]struct{}{
	"the": {}, "a": {}, "of": {}, "and": {},
}

func TestBuildTextBlock(t *testing.T) {
	docs := []str.Document{
		{ID: 1, Title: "A", Text: "The Martian invasion of Mars."},
		{ID: 2, Title: "A", Text: "And the tripod fell."},
	}
	got := BuildTextBlock(docs, teststops)
	want := "martian invasion mars tripod fell "
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDocVector(t *testing.T) {
	vecs := map[string][]float64{
		"martian": {1, 2},
		"mars":    {3, 4},
	}

	v, ok := docvector(vecs, 2, str.Document{ID: 1, Title: "A", Text: "martian mars martian"})
	if !ok {
		t.Fatal("expected a vector, got none")
	}
	if math.Abs(v[0]-5.0/3.0) > 1e-12 || math.Abs(v[1]-8.0/3.0) > 1e-12 {
		t.Errorf("expected mean vector [1.667 2.667], got %v", v)
	}

	_, ok = docvector(vecs, 2, str.Document{ID: 2, Title: "B", Text: "elizabeth darcy"})
	if ok {
		t.Error("an all-OOV document should not yield a vector")
	}
}

func TestChunkedCorpus(t *testing.T) {
	lc := &str.LabeledCorpus{Titles: [2]string{"A", "B"}}
	id := 1
	for i := 0; i < vv.TFIDFCHUNKLINES*2+1; i++ {
		lc.Docs = append(lc.Docs, str.Document{ID: id, Title: "A", Text: "martian mars"})
		id++
	}
	for i := 0; i < vv.TFIDFCHUNKLINES; i++ {
		lc.Docs = append(lc.Docs, str.Document{ID: id, Title: "B", Text: "elizabeth darcy"})
		id++
	}

	corpus, owners := chunkedcorpus(lc, teststops)
	if len(corpus) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(corpus))
	}
	wantowners := []string{"A", "A", "A", "B"}
	for i, w := range wantowners {
		if owners[i] != w {
			t.Errorf("chunk %d: expected owner %s, got %s", i, w, owners[i])
		}
	}
}

func TestClampNeighborCount(t *testing.T) {
	if got := ClampNeighborCount(0); got != vv.VECTORNEIGHBORS {
		t.Errorf("expected %d, got %d", vv.VECTORNEIGHBORS, got)
	}
	if got := ClampNeighborCount(vv.VECTORNEIGHBORSMAX + 1); got != vv.VECTORNEIGHBORS {
		t.Errorf("expected %d, got %d", vv.VECTORNEIGHBORS, got)
	}
	if got := ClampNeighborCount(8); got != 8 {
		t.Errorf("expected 8, got %d", got)
	}
}

func TestProjectCorpus(t *testing.T) {
	words := []string{"martian", "mars", "tripod", "elizabeth", "darcy", "ball"}
	var embs embedding.Embeddings
	for i, w := range words {
		embs = append(embs, embedding.Embedding{Word: w, Vector: []float64{float64(i), float64(i * i), 1}})
	}

	lc := &str.LabeledCorpus{
		Docs: []str.Document{
			{ID: 1, Title: "A", Text: "martian mars"},
			{ID: 2, Title: "A", Text: "tripod mars martian"},
			{ID: 3, Title: "A", Text: "martian tripod"},
			{ID: 4, Title: "A", Text: "mars tripod tripod"},
			{ID: 5, Title: "B", Text: "elizabeth darcy"},
			{ID: 6, Title: "B", Text: "darcy ball"},
			{ID: 7, Title: "B", Text: "elizabeth ball ball"},
			{ID: 8, Title: "B", Text: "zzz unknown words only"},
		},
		Titles: [2]string{"A", "B"},
	}

	pd := ProjectCorpus(embs, lc, 42)
	if len(pd) != 7 {
		t.Fatalf("expected 7 projected documents, got %d", len(pd))
	}
	for i := 1; i < len(pd); i++ {
		if pd[i-1].ID >= pd[i].ID {
			t.Error("projected documents should come back in id order")
		}
	}
	for _, p := range pd {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Errorf("doc %d projected to NaN", p.ID)
		}
	}
}

func TestProjectCorpusNoEmbeddings(t *testing.T) {
	lc := &str.LabeledCorpus{
		Docs:   []str.Document{{ID: 1, Title: "A", Text: "martian"}},
		Titles: [2]string{"A", "B"},
	}
	if pd := ProjectCorpus(embedding.Embeddings{}, lc, 1); pd != nil {
		t.Errorf("expected nil, got %d documents", len(pd))
	}
}
