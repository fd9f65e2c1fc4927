//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package chart

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/e-gun/KritesGoClassifier/internal/str"
	"github.com/e-gun/KritesGoClassifier/internal/vv"
	"github.com/go-echarts/go-echarts/v2/opts"
)

func TestFragment(t *testing.T) {
	wf := str.WFList{
		{Word: "martian", Count: 120},
		{Word: "mars", Count: 88},
	}
	f := Fragment(FrequencyBars("The War of the Worlds", wf))

	if !strings.Contains(f, "echarts.init") {
		t.Error("fragment is missing the echarts bootstrap")
	}
	if strings.Contains(f, "__f__") {
		t.Error("fragment still carries __f__ markers")
	}
	if strings.Contains(f, "<!DOCTYPE html>") {
		t.Error("a fragment should not be a whole page")
	}
	if !strings.Contains(f, "martian") {
		t.Error("fragment lost the series data")
	}
}

func TestWritePage(t *testing.T) {
	dir := t.TempDir()
	wf := str.WFList{{Word: "darcy", Count: 64}}

	fp := WritePage(dir, "freq.html", "test charts", FrequencyBars("Pride and Prejudice", wf))

	b, err := os.ReadFile(fp)
	if err != nil {
		t.Fatalf("expected %s on disk: %v", fp, err)
	}
	page := string(b)
	if !strings.Contains(page, "<!DOCTYPE html>") {
		t.Error("page file is missing the doctype")
	}
	if !strings.Contains(page, "<title>test charts</title>") {
		t.Error("page file is missing its title")
	}
	if !strings.Contains(page, "darcy") {
		t.Error("page file lost the series data")
	}
}

func TestCoefficientBarsElision(t *testing.T) {
	fm := &str.FittedModel{
		Intercept:    0.5,
		Coefficients: make(map[string]float64),
		Titles:       [2]string{"A", "B"},
	}
	for i := 0; i < 3*vv.TOPNCOEFF; i++ {
		fm.Coefficients[fmt.Sprintf("w%03d", i)] = float64(i) - float64(vv.TOPNCOEFF)
	}

	bar := CoefficientBars(fm)
	data, ok := bar.MultiSeries[0].Data.([]opts.BarData)
	if !ok {
		t.Fatal("expected []opts.BarData in the series")
	}
	if len(data) != 2*vv.TOPNCOEFF {
		t.Errorf("expected %d bars after eliding the middle, got %d", 2*vv.TOPNCOEFF, len(data))
	}
}

func TestROCLineSeries(t *testing.T) {
	fpr := []float64{0, 0, 1}
	tpr := []float64{0, 1, 1}
	line := ROCLine(fpr, tpr, 1.0)

	if len(line.MultiSeries) != 2 {
		t.Fatalf("expected the model and chance series, got %d", len(line.MultiSeries))
	}
}

func TestProbabilityScatterSplitsByTitle(t *testing.T) {
	scored := []str.ScoredDoc{
		{DocID: 1, Title: "A", Probability: 0.9, Predicted: "A"},
		{DocID: 2, Title: "B", Probability: 0.2, Predicted: "B"},
		{DocID: 3, Title: "A", Probability: 0.4, Predicted: "B"},
	}
	sc := ProbabilityScatter(scored, [2]string{"A", "B"})

	if len(sc.MultiSeries) != 2 {
		t.Fatalf("expected one series per title, got %d", len(sc.MultiSeries))
	}
	a, ok := sc.MultiSeries[0].Data.([]opts.ScatterData)
	if !ok {
		t.Fatal("expected []opts.ScatterData in the series")
	}
	if len(a) != 2 {
		t.Errorf("expected 2 documents under the first title, got %d", len(a))
	}
}
