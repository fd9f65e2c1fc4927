//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tkn

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/e-gun/KritesGoClassifier/internal/gen"
	"github.com/e-gun/KritesGoClassifier/internal/vv"
)

// NB: the classifier itself never sees a stop list; stops only matter for the descriptive
// statistics and the embedding text. The trainer is supposed to discover that "the" carries no
// signal all by itself.

var (
	// EnglishStop - the usual suspects
	EnglishStop = []string{"a", "about", "above", "after", "again", "against", "all", "am", "an", "and", "any", "are",
		"aren't", "as", "at", "be", "because", "been", "before", "being", "below", "between", "both", "but", "by",
		"can't", "cannot", "could", "couldn't", "did", "didn't", "do", "does", "doesn't", "doing", "don't", "down",
		"during", "each", "few", "for", "from", "further", "had", "hadn't", "has", "hasn't", "have", "haven't",
		"having", "he", "he'd", "he'll", "he's", "her", "here", "here's", "hers", "herself", "him", "himself", "his",
		"how", "how's", "i", "i'd", "i'll", "i'm", "i've", "if", "in", "into", "is", "isn't", "it", "it's", "its",
		"itself", "let's", "me", "more", "most", "mustn't", "my", "myself", "no", "nor", "not", "of", "off", "on",
		"once", "only", "or", "other", "ought", "our", "ours", "ourselves", "out", "over", "own", "same", "shan't",
		"she", "she'd", "she'll", "she's", "should", "shouldn't", "so", "some", "such", "than", "that", "that's",
		"the", "their", "theirs", "them", "themselves", "then", "there", "there's", "these", "they", "they'd",
		"they'll", "they're", "they've", "this", "those", "through", "to", "too", "under", "until", "up", "upon",
		"very", "was", "wasn't", "we", "we'd", "we'll", "we're", "we've", "were", "weren't", "what", "what's",
		"when", "when's", "where", "where's", "which", "while", "who", "who's", "whom", "why", "why's", "with",
		"won't", "would", "wouldn't", "you", "you'd", "you'll", "you're", "you've", "your", "yours", "yourself",
		"yourselves"}

	// EnglishKeep - members of EnglishStop we will not toss: negation flips the sense of a neighborhood
	EnglishKeep = []string{"no", "not", "nor"}
)

func getenglishstops() map[string]struct{} {
	es := gen.SetSubtraction(EnglishStop, EnglishKeep)
	return gen.ToSet(es)
}

// StopSet - the active stop list: the user's edited file if present, the defaults otherwise
func StopSet() map[string]struct{} {
	return gen.ToSet(readstopconfig())
}

// readstopconfig - fetch the stop list from the config directory, writing the defaults there on first run
func readstopconfig() []string {
	const (
		ERR1 = "readstopconfig() cannot find UserHomeDir"
		ERR2 = "readstopconfig() failed to parse "
		MSG1 = "readstopconfig() wrote stop word configuration file: "
	)

	stops := gen.StringMapKeysIntoSlice(getenglishstops())

	h, e := os.UserHomeDir()
	if e != nil {
		Msg.MAND(ERR1)
		return stops
	}

	_, yes := os.Stat(fmt.Sprintf(vv.CONFIGALTAPTH, h) + vv.CONFIGSTOPS)

	if yes != nil {
		sort.Strings(stops)
		content, err := json.MarshalIndent(stops, vv.JSONINDENT, vv.JSONINDENT)
		Msg.EC(err)

		err = os.WriteFile(fmt.Sprintf(vv.CONFIGALTAPTH, h)+vv.CONFIGSTOPS, content, vv.WRITEPERMS)
		Msg.EC(err)
		Msg.PEEK(MSG1 + vv.CONFIGSTOPS)
	} else {
		loadedcfg, _ := os.Open(fmt.Sprintf(vv.CONFIGALTAPTH, h) + vv.CONFIGSTOPS)
		decoderc := json.NewDecoder(loadedcfg)
		var stp []string
		errc := decoderc.Decode(&stp)
		_ = loadedcfg.Close()
		if errc != nil {
			Msg.CRIT(ERR2 + vv.CONFIGSTOPS)
		} else {
			stops = stp
		}
	}
	return stops
}
