//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tkn

import (
	"sort"
	"strings"
	"unicode"

	"github.com/e-gun/KritesGoClassifier/internal/lnch"
	"github.com/e-gun/KritesGoClassifier/internal/str"
	"github.com/e-gun/KritesGoClassifier/internal/vv"
)

var Msg = lnch.NewMessageMakerWithDefaults()

// curly apostrophes arrive from the transcriptions; straighten them before splitting so that
// "don’t" and "don't" are the same word

var swapper = strings.NewReplacer("’", "'", "‘", "'")

// Tokenize - one line of text into lowercase words; punctuation splits, internal apostrophes do not
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	text = swapper.Replace(text)

	raw := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})

	words := make([]string, 0, len(raw))
	for _, w := range raw {
		w = strings.Trim(w, "'")
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// CountTokens - (document, word) pair counts for every document; pairs are sorted by word inside a document
func CountTokens(docs []str.Document) []str.TokenCount {
	pairs := make([]str.TokenCount, 0, len(docs)*vv.AVGWORDSPERLINE)
	for i := range docs {
		cts := make(map[string]int)
		for _, w := range Tokenize(docs[i].Text) {
			cts[w]++
		}

		ww := make([]string, 0, len(cts))
		for w := range cts {
			ww = append(ww, w)
		}
		sort.Strings(ww)

		for _, w := range ww {
			pairs = append(pairs, str.TokenCount{DocID: docs[i].ID, Word: w, Count: cts[w]})
		}
	}
	return pairs
}
