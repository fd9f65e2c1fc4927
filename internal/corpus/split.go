//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package corpus

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/e-gun/KritesGoClassifier/internal/str"
)

// SplitIDs - deal the documents into training and testing sets
//
// the draw is an exact-count shuffle, not a per-document coin flip: round(frac * n) documents
// train, the rest test, and a fixed seed always deals the same hands

func SplitIDs(lc *str.LabeledCorpus, frac float64, seed int64) (train []int, test []int) {
	const (
		MSG1 = "SplitIDs(): %d documents -> %d training, %d testing (fraction %.2f, seed %d)"
	)

	n := len(lc.Docs)
	ids := make([]int, n)
	for i := range lc.Docs {
		ids[i] = lc.Docs[i].ID
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})

	ct := int(math.Round(frac * float64(n)))
	if ct < 1 {
		ct = 1
	}
	if ct > n-1 {
		ct = n - 1
	}

	train = append(train, ids[:ct]...)
	test = append(test, ids[ct:]...)
	sort.Ints(train)
	sort.Ints(test)

	Msg.PEEK(fmt.Sprintf(MSG1, n, len(train), len(test), frac, seed))
	return train, test
}

// DocsByID - pluck the documents with the given ids, in the order requested
func DocsByID(lc *str.LabeledCorpus, ids []int) []str.Document {
	byid := make(map[int]str.Document, len(lc.Docs))
	for i := range lc.Docs {
		byid[lc.Docs[i].ID] = lc.Docs[i]
	}

	out := make([]str.Document, 0, len(ids))
	for _, id := range ids {
		if d, ok := byid[id]; ok {
			out = append(out, d)
		}
	}
	return out
}
