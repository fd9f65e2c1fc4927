//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package score

import (
	"math/rand"
	"sort"

	"github.com/e-gun/KritesGoClassifier/internal/str"
)

// Misclassified - a reproducible draw of up to n wrongly classified documents
//
// eyeballing the model's mistakes is half the fun; the draw is seeded so that two people
// staring at the same run argue about the same lines

func Misclassified(scored []str.ScoredDoc, n int, seed int64) []str.ScoredDoc {
	var wrong []str.ScoredDoc
	for i := range scored {
		if !scored[i].Correct() {
			wrong = append(wrong, scored[i])
		}
	}

	if n > 0 && len(wrong) > n {
		rng := rand.New(rand.NewSource(seed))
		perm := rng.Perm(len(wrong))
		drawn := make([]str.ScoredDoc, n)
		for i := 0; i < n; i++ {
			drawn[i] = wrong[perm[i]]
		}
		wrong = drawn
	}

	sort.Slice(wrong, func(a, b int) bool {
		return wrong[a].DocID < wrong[b].DocID
	})
	return wrong
}

// ConfidentlyWrong - misclassifications the model was sure about: the best diagnostic reading
func ConfidentlyWrong(scored []str.ScoredDoc, hi float64, lo float64) []str.ScoredDoc {
	var out []str.ScoredDoc
	for i := range scored {
		sd := scored[i]
		if sd.Correct() {
			continue
		}
		if sd.Probability >= hi || sd.Probability <= lo {
			out = append(out, sd)
		}
	}

	sort.Slice(out, func(a, b int) bool {
		return out[a].DocID < out[b].DocID
	})
	return out
}
