//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tkn

import (
	"errors"
	"testing"

	"github.com/e-gun/KritesGoClassifier/internal/str"
)

func TestTokenize(t *testing.T) {
	got := Tokenize("The Martian—invasion, of MARS!")
	want := []string{"the", "martian", "invasion", "of", "mars"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestTokenizeApostrophes(t *testing.T) {
	// curly and straight apostrophes should yield the same single word
	a := Tokenize("Don’t")
	b := Tokenize("don't")
	if len(a) != 1 || len(b) != 1 || a[0] != b[0] {
		t.Errorf("expected one identical token, got %v and %v", a, b)
	}

	// a quoted word is not a different word
	q := Tokenize("'darcy'")
	if len(q) != 1 || q[0] != "darcy" {
		t.Errorf("expected [darcy], got %v", q)
	}
}

func TestTokenizeMarkup(t *testing.T) {
	got := Tokenize("_italics_ and — nothing ***")
	want := []string{"italics", "and", "nothing"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCountTokens(t *testing.T) {
	docs := []str.Document{
		{ID: 7, Title: "T1", Text: "mars mars invasion"},
		{ID: 9, Title: "T2", Text: "ball"},
	}

	pairs := CountTokens(docs)
	if len(pairs) != 3 {
		t.Fatalf("expected 3 pairs, got %d: %v", len(pairs), pairs)
	}

	// words are alphabetized inside a document
	if pairs[0].Word != "invasion" || pairs[0].DocID != 7 || pairs[0].Count != 1 {
		t.Errorf("unexpected first pair: %+v", pairs[0])
	}
	if pairs[1].Word != "mars" || pairs[1].Count != 2 {
		t.Errorf("expected mars x2, got %+v", pairs[1])
	}
	if pairs[2].DocID != 9 || pairs[2].Word != "ball" {
		t.Errorf("unexpected last pair: %+v", pairs[2])
	}
}

func TestFilterVocabularyThreshold(t *testing.T) {
	// "mars" occurs 11 times, "ball" exactly 10: only "mars" survives ">10"
	var pairs []str.TokenCount
	for i := 0; i < 11; i++ {
		pairs = append(pairs, str.TokenCount{DocID: i + 1, Word: "mars", Count: 1})
	}
	for i := 0; i < 5; i++ {
		pairs = append(pairs, str.TokenCount{DocID: i + 1, Word: "ball", Count: 2})
	}

	v, err := FilterVocabulary(pairs, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Size() != 1 || !v.Has("mars") {
		t.Errorf("expected a vocabulary of exactly [mars], got %v", v.Terms)
	}
	if v.Has("ball") {
		t.Error("a word at exactly the threshold must be dropped")
	}
}

func TestFilterVocabularyEmpty(t *testing.T) {
	pairs := []str.TokenCount{{DocID: 1, Word: "rare", Count: 2}}

	_, err := FilterVocabulary(pairs, 10)
	if err == nil {
		t.Fatal("expected an error when nothing survives the filter")
	}

	var eve *str.EmptyVocabularyError
	if !errors.As(err, &eve) {
		t.Fatalf("expected an EmptyVocabularyError, got %T", err)
	}
	if eve.Threshold != 10 || eve.PreFilter != 1 {
		t.Errorf("unexpected error detail: %+v", eve)
	}
}

func TestFilterVocabularyMonotone(t *testing.T) {
	pairs := []str.TokenCount{
		{DocID: 1, Word: "alpha", Count: 12},
		{DocID: 1, Word: "beta", Count: 6},
		{DocID: 2, Word: "beta", Count: 6},
		{DocID: 2, Word: "gamma", Count: 3},
	}

	lo, err := FilterVocabulary(pairs, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hi, err := FilterVocabulary(pairs, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lo.Size() <= hi.Size() {
		t.Errorf("raising the threshold should shrink the vocabulary: %d vs %d", lo.Size(), hi.Size())
	}
	for _, w := range hi.Terms {
		if !lo.Has(w) {
			t.Errorf("%q survived the high threshold but not the low one", w)
		}
	}
}

// the totals feeding the filter span the whole corpus: lines that will later be held out for
// testing still contribute to vocabulary selection, exactly as the source workflow computes it

func TestVocabularyCountsSpanBothWorks(t *testing.T) {
	// "tripod" reaches 11 only if counts from both titles pool together
	var pairs []str.TokenCount
	for i := 0; i < 6; i++ {
		pairs = append(pairs, str.TokenCount{DocID: i + 1, Word: "tripod", Count: 1})
	}
	for i := 0; i < 5; i++ {
		pairs = append(pairs, str.TokenCount{DocID: 100 + i, Word: "tripod", Count: 1})
	}

	v, err := FilterVocabulary(pairs, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Has("tripod") {
		t.Error("totals must pool across the whole corpus before any split")
	}

	totals := WordTotals(pairs)
	if totals["tripod"] != 11 {
		t.Errorf("expected a pooled total of 11, got %d", totals["tripod"])
	}
}

func TestTopWords(t *testing.T) {
	totals := map[string]int{"mars": 30, "ball": 20, "darcy": 20, "rare": 1}

	top := TopWords(totals, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	if top[0].Word != "mars" {
		t.Errorf("expected mars first, got %q", top[0].Word)
	}
	// ties break alphabetically
	if top[1].Word != "ball" || top[2].Word != "darcy" {
		t.Errorf("tie-break failed: %v", top)
	}
}

func TestEnglishStops(t *testing.T) {
	ss := getenglishstops()
	if _, ok := ss["the"]; !ok {
		t.Error("'the' belongs in the stop set")
	}
	if _, ok := ss["martian"]; ok {
		t.Error("'martian' does not belong in the stop set")
	}
	// the keep list wins over the stop list
	if _, ok := ss["not"]; ok {
		t.Error("'not' is on the keep list and must survive")
	}
}
