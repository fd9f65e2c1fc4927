//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package corpus

import (
	"fmt"
	"sync"

	"github.com/e-gun/KritesGoClassifier/internal/db"
	"github.com/e-gun/KritesGoClassifier/internal/lnch"
	"github.com/e-gun/KritesGoClassifier/internal/str"
)

var Msg = lnch.NewMessageMakerWithDefaults()

// LoadPair - resolve and acquire the two requested works and label every line of them
//
// document ids are assigned 1..N: all lines of the first title, then all lines of the second;
// a given (titles, sources) pair therefore always yields the same id for the same line

func LoadPair(cfg *str.CurrentConfiguration) (*str.LabeledCorpus, error) {
	const (
		MSG1 = "LoadPair(): '%s' is %d documents; '%s' is %d documents"
		SAME = "already resolved from the first title"
	)

	w1, err := ResolveTitle(cfg.FirstTitle)
	if err != nil {
		return nil, err
	}
	w2, err := ResolveTitle(cfg.SecondTitle)
	if err != nil {
		return nil, err
	}

	if w1.EbookNum == w2.EbookNum {
		return nil, &str.DataResolutionError{Title: cfg.SecondTitle,
			Candidates: []string{w1.Title + " (" + SAME + ")"}}
	}

	// the two works arrive concurrently; the id order below never depends on arrival order
	var l1, l2 []string
	var e1, e2 error

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		l1, e1 = acquire(cfg, w1)
	}()
	go func() {
		defer wg.Done()
		l2, e2 = acquire(cfg, w2)
	}()
	wg.Wait()

	if e1 != nil {
		return nil, e1
	}
	if e2 != nil {
		return nil, e2
	}

	lc := BuildLabeledCorpus(w1.Title, w2.Title, l1, l2)
	Msg.NOTE(fmt.Sprintf(MSG1, w1.Title, len(l1), w2.Title, len(l2)))
	return lc, nil
}

// BuildLabeledCorpus - stitch two line collections into one corpus with stable ids
func BuildLabeledCorpus(t1 string, t2 string, l1 []string, l2 []string) *str.LabeledCorpus {
	lc := &str.LabeledCorpus{Titles: [2]string{t1, t2}}
	id := 1
	for i := range l1 {
		lc.Docs = append(lc.Docs, str.Document{ID: id, Title: t1, Text: l1[i]})
		id++
	}
	for i := range l2 {
		lc.Docs = append(lc.Docs, str.Document{ID: id, Title: t2, Text: l2[i]})
		id++
	}
	return lc
}

// acquire - produce the lines of one work from the configured source, caching as we go
func acquire(cfg *str.CurrentConfiguration, w WorkEntry) ([]string, error) {
	const (
		NOPG  = "acquire(): '%s' is not in the PostgreSQL corpus table; falling back to a fetch"
		EMPT  = "'%s' produced no text"
		CACHE = "acquire(): cache had %d lines of '%s'"
	)

	if cfg.RefetchCorpus {
		db.CacheDropWork(w.Title)
	}

	if cfg.CorpusSource == "pg" && db.SQLPool != nil {
		if db.PGHasWork(w.Title) {
			return db.PGFetchWork(w.Title), nil
		}
		Msg.NOTE(fmt.Sprintf(NOPG, w.Title))
	}

	if !cfg.RefetchCorpus && db.CacheHasWork(w.Title) {
		lines := db.CacheFetchWork(w.Title)
		db.CacheAudit(w.Title)
		Msg.PEEK(fmt.Sprintf(CACHE, len(lines), w.Title))
		return lines, nil
	}

	lines, err := FetchFromGutenberg(w)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf(EMPT, w.Title)
	}

	db.CacheStoreWork(w.Title, lines)
	if db.SQLPool != nil {
		db.PGStoreWork(w.Title, lines)
	}
	return lines, nil
}
