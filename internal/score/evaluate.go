//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package score

import (
	"fmt"
	"math"
	"time"

	"github.com/e-gun/KritesGoClassifier/internal/lnch"
	"github.com/e-gun/KritesGoClassifier/internal/str"
	"github.com/e-gun/KritesGoClassifier/internal/tkn"
)

var Msg = lnch.NewMessageMakerWithDefaults()

// a held-out document never becomes a matrix row: it is scored straight off its own token
// counts, so a word the model has no coefficient for simply contributes nothing

// ScoreDoc - intercept + sum(coefficient * count), then through the logistic
func ScoreDoc(fm *str.FittedModel, d str.Document) str.ScoredDoc {
	s := fm.Intercept
	for _, w := range tkn.Tokenize(d.Text) {
		if c, ok := fm.Coefficients[w]; ok {
			s += c
		}
	}

	p := 1 / (1 + math.Exp(-s))

	pred := fm.Titles[1]
	if p > 0.5 {
		pred = fm.Titles[0]
	}

	return str.ScoredDoc{
		DocID:       d.ID,
		Title:       d.Title,
		Text:        d.Text,
		Score:       s,
		Probability: p,
		Predicted:   pred,
	}
}

// ScoreDocs - every test document through the model, in input order
func ScoreDocs(fm *str.FittedModel, docs []str.Document) []str.ScoredDoc {
	out := make([]str.ScoredDoc, len(docs))
	for i := range docs {
		out[i] = ScoreDoc(fm, docs[i])
	}
	return out
}

// Confusion - true class against predicted class at the 0.5 threshold
func Confusion(scored []str.ScoredDoc, titles [2]string) str.ConfusionMatrix {
	cm := str.ConfusionMatrix{Labels: titles}
	for i := range scored {
		ti, pi := 1, 1
		if scored[i].Title == titles[0] {
			ti = 0
		}
		if scored[i].Predicted == titles[0] {
			pi = 0
		}
		cm.Cells[ti][pi]++
	}
	return cm
}

type EvalOptions struct {
	RunID     string
	MisclassN int
	Seed      int64
}

// Evaluate - the full report card for one train/test cycle
func Evaluate(fm *str.FittedModel, testdocs []str.Document, opts EvalOptions) (*str.EvalReport, error) {
	const (
		MSG1 = "Evaluate(): AUC %.4f; accuracy %.4f over %d held-out documents"
	)

	scored := ScoreDocs(fm, testdocs)

	auc, err := AUC(scored, fm.Titles)
	if err != nil {
		return nil, err
	}

	cm := Confusion(scored, fm.Titles)

	rpt := &str.EvalReport{
		RunID:         opts.RunID,
		When:          time.Now(),
		Titles:        fm.Titles,
		AUC:           auc,
		Confusion:     cm,
		Scores:        scored,
		Misclassified: Misclassified(scored, opts.MisclassN, opts.Seed),
		TestSize:      len(testdocs),
		Seed:          opts.Seed,
	}

	Msg.NOTE(fmt.Sprintf(MSG1, auc, cm.Accuracy(), len(testdocs)))
	return rpt, nil
}
