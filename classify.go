//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/e-gun/KritesGoClassifier/internal/chart"
	"github.com/e-gun/KritesGoClassifier/internal/corpus"
	"github.com/e-gun/KritesGoClassifier/internal/db"
	"github.com/e-gun/KritesGoClassifier/internal/lasso"
	"github.com/e-gun/KritesGoClassifier/internal/lnch"
	"github.com/e-gun/KritesGoClassifier/internal/mtx"
	"github.com/e-gun/KritesGoClassifier/internal/score"
	"github.com/e-gun/KritesGoClassifier/internal/str"
	"github.com/e-gun/KritesGoClassifier/internal/tkn"
	"github.com/e-gun/KritesGoClassifier/internal/vec"
	"github.com/e-gun/KritesGoClassifier/internal/vv"
	"github.com/e-gun/KritesGoClassifier/web"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RunClassification - the whole pipeline: load, filter, split, fit, score, report
func RunClassification() web.ReportBundle {
	const (
		MSGA  = "%d labeled lines loaded: »%s« has %d; »%s« has %d"
		MSGB1 = "%d words counted (%d distinct)"
		MSGB2 = "the vocabulary has %d terms occurring more than %d times"
		MSGC  = "split %d/%d; the training matrix is %d x %d and %.3f%% full"
		MSGD  = "fit at %s: intercept %+.4f and %d nonzero terms"
		MSGE  = "%d held-out documents scored: AUC %.4f; accuracy %.1f%%"
		MSGF  = "run %s: %d charts and %d json artifacts in '%s'"
	)

	cfg := lnch.Config
	mp := message.NewPrinter(language.English)

	start := time.Now()
	previous := time.Now()

	// [A] fetch both works and label every line
	lc, err := corpus.LoadPair(cfg)
	Msg.Error(err)

	bt := lc.ByTitle()
	Msg.Timer("A", mp.Sprintf(MSGA, len(lc.Docs), lc.Titles[0], len(bt[lc.Titles[0]]),
		lc.Titles[1], len(bt[lc.Titles[1]])), start, previous)
	previous = time.Now()

	// [B1] tokenize and count
	pairs := tkn.CountTokens(lc.Docs)
	totals := tkn.WordTotals(pairs)

	words := 0
	for _, ct := range totals {
		words += ct
	}
	Msg.Timer("B1", mp.Sprintf(MSGB1, words, len(totals)), start, previous)
	previous = time.Now()

	// [B2] the corpus-wide minimum frequency filter
	vocab, err := tkn.FilterVocabulary(pairs, cfg.MinWordFreq)
	Msg.Error(err)
	Msg.Timer("B2", mp.Sprintf(MSGB2, vocab.Size(), cfg.MinWordFreq), start, previous)
	previous = time.Now()

	// [C] split the documents and erect the training matrix
	train, test := corpus.SplitIDs(lc, cfg.TrainFraction, cfg.Seed)

	tm, err := mtx.Build(pairs, train, vocab)
	Msg.Error(err)

	y, err := mtx.LabelsFor(tm, lc)
	Msg.Error(err)

	rr, cc := tm.Dims()
	Msg.Timer("C", mp.Sprintf(MSGC, len(train), len(test), rr, cc, tm.Density()*100), start, previous)
	previous = time.Now()

	// [D] cross-validate the penalty path and refit at the pick
	fo := lasso.FitOptions{Folds: cfg.CVFolds, Seed: cfg.Seed, Workers: cfg.WorkerCount}
	fm := trainviastore(tm, y, lc.Titles, fo)
	fm.MinWordFreq = cfg.MinWordFreq

	Msg.Timer("D", fmt.Sprintf(MSGD, fm.Chosen, fm.Intercept, len(fm.Coefficients)), start, previous)
	previous = time.Now()

	// [E] push the held-out documents through the fit
	testdocs := corpus.DocsByID(lc, test)

	eo := score.EvalOptions{RunID: uuid.New().String(), MisclassN: cfg.MisclassN, Seed: cfg.Seed}
	rpt, err := score.Evaluate(fm, testdocs, eo)
	Msg.Error(err)

	// the evaluator cannot know these
	rpt.TrainSize = len(train)
	rpt.VocabSize = vocab.Size()
	rpt.MinWordFreq = cfg.MinWordFreq

	Msg.Timer("E", mp.Sprintf(MSGE, rpt.TestSize, rpt.AUC, rpt.Confusion.Accuracy()*100), start, previous)
	previous = time.Now()

	// [F] report: console tables, chart pages, json artifacts
	showreport(rpt, fm)

	rb := buildbundle(rpt, fm, lc)
	WriteRunArtifacts(&rb)

	Msg.Timer("F", fmt.Sprintf(MSGF, shortid(rpt.RunID), len(rb.ChartFile), NUMJSONARTIFACTS,
		cfg.OutputDir), start, previous)

	return rb
}

// trainviastore - consult the model store before fitting; store any fresh fit
func trainviastore(tm *mtx.TermMatrix, y []float64, titles [2]string, fo lasso.FitOptions) *str.FittedModel {
	const (
		REUSE = "trainviastore() reusing the stored fit %s"
	)

	n, _ := tm.Dims()
	fp := lasso.Fingerprint(titles, tm.Vocab.Terms, fo, n)

	if db.SQLPool != nil && db.ModelDBCheck(fp) {
		var prior str.FittedModel
		if db.ModelDBFetch(fp, &prior) {
			Msg.NOTE(fmt.Sprintf(REUSE, fp))
			return &prior
		}
	}

	fm, err := lasso.Train(tm, y, titles, fo)
	Msg.Error(err)

	if db.SQLPool != nil {
		db.ModelDBAdd(fp, fm)
	}

	return fm
}

// buildbundle - render every chart twice: a fragment for the report page and a standalone html file
func buildbundle(rpt *str.EvalReport, fm *str.FittedModel, lc *str.LabeledCorpus) web.ReportBundle {
	cfg := lnch.Config
	sid := shortid(rpt.RunID)

	err := os.MkdirAll(cfg.OutputDir, vv.OUTPUTDIRPERMS)
	Msg.EC(err)

	rb := web.ReportBundle{
		Report:    rpt,
		Model:     fm,
		ChartFile: make(map[string]string),
		When:      rpt.When,
	}

	addfrag := func(name string, c components.Charter) {
		rb.Fragments = append(rb.Fragments, web.NamedFragment{Name: name, HTML: chart.Fragment(c)})
	}

	addfile := func(name string, pagetitle string, cs ...components.Charter) {
		fn := fmt.Sprintf("kgc-%s-%s.html", sid, name)
		rb.ChartFile[fn] = chart.WritePage(cfg.OutputDir, fn, pagetitle, cs...)
	}

	// the frequency bars are descriptive, not a model input: stop words go, for legibility only
	stops := tkn.StopSet()
	bt := lc.ByTitle()

	topwords := func(title string) str.WFList {
		tt := tkn.WordTotals(tkn.CountTokens(corpus.DocsByID(lc, bt[title])))
		for w := range stops {
			delete(tt, w)
		}
		return tkn.TopWords(tt, vv.TOPNWORDFREQ)
	}

	fq1 := chart.FrequencyBars(lc.Titles[0], topwords(lc.Titles[0]))
	fq2 := chart.FrequencyBars(lc.Titles[1], topwords(lc.Titles[1]))
	addfrag(fmt.Sprintf("Top words in »%s«", lc.Titles[0]), fq1)
	addfrag(fmt.Sprintf("Top words in »%s«", lc.Titles[1]), fq2)
	addfile("wordfreq", "Top words", fq1, fq2)

	dd := vec.DistinctiveTerms(lc, vv.TOPNDISTINCT)
	dt1 := chart.DistinctBars(lc.Titles[0], dd[lc.Titles[0]])
	dt2 := chart.DistinctBars(lc.Titles[1], dd[lc.Titles[1]])
	addfrag(fmt.Sprintf("Distinctive vocabulary of »%s«", lc.Titles[0]), dt1)
	addfrag(fmt.Sprintf("Distinctive vocabulary of »%s«", lc.Titles[1]), dt2)
	addfile("distinctive", "Distinctive vocabulary", dt1, dt2)

	cb := chart.CoefficientBars(fm)
	addfrag("Strongest coefficients", cb)
	addfile("coefficients", "Strongest coefficients", cb)

	cv := chart.CVCurve(fm)
	addfrag("Cross-validated deviance along the penalty path", cv)
	addfile("cvcurve", "Cross-validated deviance", cv)

	fpr, tpr, rcerr := score.ROCPoints(rpt.Scores, fm.Titles)
	if rcerr == nil {
		rc := chart.ROCLine(fpr, tpr, rpt.AUC)
		addfrag("ROC", rc)
		addfile("roc", "ROC", rc)
	}

	ps := chart.ProbabilityScatter(rpt.Scores, fm.Titles)
	addfrag("Held-out probabilities", ps)
	addfile("probabilities", "Held-out probabilities", ps)

	if cfg.Embeddings {
		embeddingcharts(&rb, addfrag, addfile, fm, lc)
	}

	return rb
}

// embeddingcharts - the '-nn' extras: neighbors of the strongest terms and a t-SNE projection
func embeddingcharts(rb *web.ReportBundle, addfrag func(string, components.Charter),
	addfile func(string, string, ...components.Charter), fm *str.FittedModel, lc *str.LabeledCorpus) {
	const (
		EMPTY = "embeddingcharts() has no vectors to work with"
		STTNG = "%s; %d neighbors per term; seed %d"
	)

	cfg := lnch.Config

	embs := vec.EmbeddingsFor(cfg, lc)
	if len(embs) == 0 {
		Msg.WARN(EMPTY)
		return
	}

	core := topcoefficient(fm)
	nc := vec.ClampNeighborCount(cfg.NeighborCt)
	nn := vec.DiscriminantNeighbors(embs, fm, vv.TOPNDISTINCT, nc)

	if len(nn) != 0 {
		settings := fmt.Sprintf(STTNG, cfg.EmbModel, nc, cfg.Seed)
		ng := chart.NeighborsGraph(core, settings, nn, true)
		addfrag(fmt.Sprintf("Embedding neighborhoods around »%s«", core), ng)
		addfile("neighbors", "Embedding neighborhoods", ng)
	}

	pd := vec.ProjectCorpus(embs, lc, cfg.Seed)
	if len(pd) != 0 {
		ts := chart.TSNEScatter(pd, lc.Titles)
		addfrag("The corpus on the t-SNE plane", ts)
		addfile("tsne", "t-SNE projection", ts)
	}
}

// topcoefficient - the single term the fit leans on hardest, by |estimate|
func topcoefficient(fm *str.FittedModel) string {
	var ww str.WWList
	for t, e := range fm.Coefficients {
		if e < 0 {
			e = -e
		}
		ww = append(ww, str.WeightedWord{Word: t, Score: e})
	}
	sort.Sort(ww)

	if len(ww) == 0 {
		return ""
	}
	return ww[0].Word
}
