//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tkn

import (
	"fmt"
	"sort"

	"github.com/e-gun/KritesGoClassifier/internal/str"
)

// the vocabulary is fixed before any train/test split happens: totals are taken over every line
// of both works, held-out lines included; this mirrors the source workflow and is deliberate

// WordTotals - corpus-wide occurrence count for every word
func WordTotals(pairs []str.TokenCount) map[string]int {
	totals := make(map[string]int)
	for i := range pairs {
		totals[pairs[i].Word] += pairs[i].Count
	}
	return totals
}

// FilterVocabulary - keep only words that occur strictly more than 'threshold' times corpus-wide
func FilterVocabulary(pairs []str.TokenCount, threshold int) (*str.Vocabulary, error) {
	const (
		MSG1 = "FilterVocabulary() at >%d: %d words -> %d words"
	)

	totals := WordTotals(pairs)

	var kept []string
	for w, ct := range totals {
		if ct > threshold {
			kept = append(kept, w)
		}
	}

	if len(kept) == 0 {
		return nil, &str.EmptyVocabularyError{Threshold: threshold, PreFilter: len(totals)}
	}

	sort.Strings(kept)

	idx := make(map[string]int, len(kept))
	for i, w := range kept {
		idx[w] = i
	}

	Msg.PEEK(fmt.Sprintf(MSG1, threshold, len(totals), len(kept)))
	return &str.Vocabulary{Terms: kept, Index: idx}, nil
}

// TopWords - the n most frequent words, ties broken alphabetically
func TopWords(totals map[string]int, n int) str.WFList {
	wf := make(str.WFList, 0, len(totals))
	for w, ct := range totals {
		wf = append(wf, str.WordFreq{Word: w, Count: ct})
	}
	sort.Sort(wf)
	if n > 0 && len(wf) > n {
		wf = wf[:n]
	}
	return wf
}
