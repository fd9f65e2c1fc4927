//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package corpus

import (
	"sort"
	"strings"

	"github.com/e-gun/KritesGoClassifier/internal/str"
	"github.com/e-gun/KritesGoClassifier/internal/vv"
)

// the catalog of works the loader knows how to acquire; a request has to resolve to exactly one
// of these before anything is fetched

type WorkEntry struct {
	Title    string
	Author   string
	EbookNum int
	Aliases  []string
}

var KnownWorks = []WorkEntry{
	{Title: "The War of the Worlds", Author: "H. G. Wells", EbookNum: 36,
		Aliases: []string{"wotw", "war of the worlds"}},
	{Title: "Pride and Prejudice", Author: "Jane Austen", EbookNum: 1342,
		Aliases: []string{"p&p", "pandp"}},
	{Title: "The Time Machine", Author: "H. G. Wells", EbookNum: 35,
		Aliases: []string{"time machine"}},
	{Title: "The Island of Doctor Moreau", Author: "H. G. Wells", EbookNum: 159,
		Aliases: []string{"moreau"}},
	{Title: "The Invisible Man", Author: "H. G. Wells", EbookNum: 5230,
		Aliases: []string{"invisible man"}},
	{Title: "Emma", Author: "Jane Austen", EbookNum: 158,
		Aliases: []string{}},
	{Title: "Sense and Sensibility", Author: "Jane Austen", EbookNum: 161,
		Aliases: []string{"s&s"}},
	{Title: "Persuasion", Author: "Jane Austen", EbookNum: 105,
		Aliases: []string{}},
	{Title: "Northanger Abbey", Author: "Jane Austen", EbookNum: 121,
		Aliases: []string{}},
	{Title: "Moby Dick; Or, The Whale", Author: "Herman Melville", EbookNum: 2701,
		Aliases: []string{"moby dick", "the whale"}},
	{Title: "Frankenstein; Or, The Modern Prometheus", Author: "Mary Shelley", EbookNum: 84,
		Aliases: []string{"frankenstein"}},
	{Title: "A Tale of Two Cities", Author: "Charles Dickens", EbookNum: 98,
		Aliases: []string{"two cities"}},
}

// CatalogTitles - every title the loader can resolve, alphabetized
func CatalogTitles() []string {
	tt := make([]string, len(KnownWorks))
	for i := range KnownWorks {
		tt[i] = KnownWorks[i].Title
	}
	sort.Strings(tt)
	return tt
}

// ResolveTitle - turn a user-supplied title fragment into exactly one catalog entry
func ResolveTitle(query string) (WorkEntry, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	if q == "" {
		return WorkEntry{}, &str.DataResolutionError{Title: query}
	}

	// no known title is this long; clip the echo so a garbage query cannot flood the console
	if len(q) > vv.MAXTITLELENGTH {
		return WorkEntry{}, &str.DataResolutionError{Title: query[:vv.MAXTITLELENGTH] + "..."}
	}

	// an exact title or alias match wins outright, even when it is a substring of other titles
	for _, w := range KnownWorks {
		if strings.ToLower(w.Title) == q {
			return w, nil
		}
		for _, a := range w.Aliases {
			if a == q {
				return w, nil
			}
		}
	}

	var hits []WorkEntry
	for _, w := range KnownWorks {
		matched := strings.Contains(strings.ToLower(w.Title), q)
		if !matched {
			for _, a := range w.Aliases {
				if strings.Contains(a, q) {
					matched = true
					break
				}
			}
		}
		if matched {
			hits = append(hits, w)
		}
	}

	switch len(hits) {
	case 0:
		return WorkEntry{}, &str.DataResolutionError{Title: query}
	case 1:
		return hits[0], nil
	default:
		cc := make([]string, len(hits))
		for i := range hits {
			cc[i] = hits[i].Title
		}
		sort.Strings(cc)
		return WorkEntry{}, &str.DataResolutionError{Title: query, Candidates: cc}
	}
}
