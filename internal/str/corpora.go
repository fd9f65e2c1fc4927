//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

// Document - one line of raw text from a source work; immutable once the loader emits it
type Document struct {
	ID    int // unique and stable across the combined corpus; assigned by row order at ingestion
	Title string
	Text  string
}

// LabeledCorpus - the loader's output: every line of both works plus the label pair
type LabeledCorpus struct {
	Docs   []Document
	Titles [2]string // Titles[0] is the positive class
}

// ByTitle - docid sets per title
func (lc *LabeledCorpus) ByTitle() map[string][]int {
	bt := make(map[string][]int)
	for _, d := range lc.Docs {
		bt[d.Title] = append(bt[d.Title], d.ID)
	}
	return bt
}

// IsPositive - does this title name the positive class?
func (lc *LabeledCorpus) IsPositive(title string) bool {
	return title == lc.Titles[0]
}

// TokenCount - a (document, word, count) triple; the tokenizer's aggregate output
type TokenCount struct {
	DocID int
	Word  string
	Count int
}

// WordFreq - a (word, corpus-wide count) pair for the descriptive tables
type WordFreq struct {
	Word  string
	Count int
}

type WFList []WordFreq

func (w WFList) Len() int {
	return len(w)
}

func (w WFList) Less(i, j int) bool {
	if w[i].Count != w[j].Count {
		return w[i].Count > w[j].Count
	}
	return w[i].Word < w[j].Word
}

func (w WFList) Swap(i, j int) {
	w[i], w[j] = w[j], w[i]
}

// WeightedWord - a scored term for neighbor lists and tf-idf rankings
type WeightedWord struct {
	Word  string
	Score float64
}

type WWList []WeightedWord

func (w WWList) Len() int {
	return len(w)
}

func (w WWList) Less(i, j int) bool {
	if w[i].Score != w[j].Score {
		return w[i].Score > w[j].Score
	}
	return w[i].Word < w[j].Word
}

func (w WWList) Swap(i, j int) {
	w[i], w[j] = w[j], w[i]
}
