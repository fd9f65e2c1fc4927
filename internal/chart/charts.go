//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package chart

import (
	"fmt"
	"math"
	"sort"

	"github.com/e-gun/KritesGoClassifier/internal/str"
	"github.com/e-gun/KritesGoClassifier/internal/vec"
	"github.com/e-gun/KritesGoClassifier/internal/vv"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	POSHUE = "hsla(125, 33%, 40%, 1)"
	NEGHUE = "hsla(0, 45%, 45%, 1)"
	SAVEAS = "svg"
)

func round(val float64) float32 {
	const PRECISION = 4
	ratio := math.Pow(10, float64(PRECISION))
	return float32(math.Round(val*ratio) / ratio)
}

// savetoolbox - every chart gets a "Save to file..." button
func savetoolbox(name string) opts.Toolbox {
	const (
		SAVESTR = "Save to file..."
	)

	tbs := opts.ToolBoxFeatureSaveAsImage{
		Show:  true,
		Type:  SAVEAS,
		Name:  name,
		Title: SAVESTR, // get chinese if ""
	}

	return opts.Toolbox{
		Show:    true,
		Orient:  "vertical",
		Left:    "20",
		Feature: &opts.ToolBoxFeature{SaveAsImage: &tbs},
	}
}

// FrequencyBars - the top corpus-wide word counts for one title
func FrequencyBars(title string, wf str.WFList) *charts.Bar {
	const (
		TITLESTR = "Commonest words in »%s«"
		SUBSTR   = "raw counts; stop words removed"
	)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartwidth, Height: chartheight}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf(TITLESTR, title), Subtitle: SUBSTR}),
		charts.WithToolboxOpts(savetoolbox(fmt.Sprintf(TITLESTR, title))),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 45, Show: true}}),
	)

	var words []string
	var counts []opts.BarData
	for _, w := range wf {
		words = append(words, w.Word)
		counts = append(counts, opts.BarData{Value: w.Count})
	}

	bar.SetXAxis(words).AddSeries("count", counts)
	return bar
}

// DistinctBars - the tf-idf weighted distinctive vocabulary for one title
func DistinctBars(title string, ww str.WWList) *charts.Bar {
	const (
		TITLESTR = "Distinctive vocabulary of »%s«"
		SUBSTR   = "accumulated tf-idf weight across %d-line chunks"
	)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartwidth, Height: chartheight}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf(TITLESTR, title),
			Subtitle: fmt.Sprintf(SUBSTR, vv.TFIDFCHUNKLINES),
		}),
		charts.WithToolboxOpts(savetoolbox(fmt.Sprintf(TITLESTR, title))),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 45, Show: true}}),
	)

	var words []string
	var weights []opts.BarData
	for _, w := range ww {
		words = append(words, w.Word)
		weights = append(weights, opts.BarData{Value: round(w.Score)})
	}

	bar.SetXAxis(words).AddSeries("tf-idf", weights)
	return bar
}

// CoefficientBars - the heaviest coefficients on each side of the fitted model
func CoefficientBars(fm *str.FittedModel) *charts.Bar {
	const (
		TITLESTR = "Model coefficients"
		SUBSTR   = "positive pulls toward »%s«, negative toward »%s«; intercept %.4f not drawn"
	)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartwidth, Height: chartheight}),
		charts.WithTitleOpts(opts.Title{
			Title:    TITLESTR,
			Subtitle: fmt.Sprintf(SUBSTR, fm.Titles[0], fm.Titles[1], fm.Intercept),
		}),
		charts.WithToolboxOpts(savetoolbox(TITLESTR)),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 45, Show: true}}),
	)

	var ww str.WWList
	for t, e := range fm.Coefficients {
		ww = append(ww, str.WeightedWord{Word: t, Score: e})
	}
	sort.Sort(ww)

	// most positive TOPNCOEFF and most negative TOPNCOEFF, gap in the middle elided
	if len(ww) > 2*vv.TOPNCOEFF {
		ww = append(ww[:vv.TOPNCOEFF], ww[len(ww)-vv.TOPNCOEFF:]...)
	}

	var words []string
	var ests []opts.BarData
	for _, w := range ww {
		hue := POSHUE
		if w.Score < 0 {
			hue = NEGHUE
		}
		words = append(words, w.Word)
		ests = append(ests, opts.BarData{Value: round(w.Score), ItemStyle: &opts.ItemStyle{Color: hue}})
	}

	bar.SetXAxis(words).AddSeries("estimate", ests)
	return bar
}

// CVCurve - mean out-of-fold deviance across the regularization path, with the error band
func CVCurve(fm *str.FittedModel) *charts.Line {
	const (
		TITLESTR = "Cross-validated deviance along the path"
		SUBSTR   = "lambda.min at step %d (deviance %.4f); lambda.1se at step %d (%.4f); %d folds; chose %s"
	)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartwidth, Height: chartheight}),
		charts.WithTitleOpts(opts.Title{
			Title: TITLESTR,
			Subtitle: fmt.Sprintf(SUBSTR, fm.LambdaMin.Index, fm.LambdaMin.MeanDev,
				fm.Lambda1SE.Index, fm.Lambda1SE.MeanDev, fm.Folds, fm.Chosen),
		}),
		charts.WithToolboxOpts(savetoolbox(TITLESTR)),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "accumulated L1 penalty"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "mean binomial deviance"}),
	)

	var mean, upper, lower []opts.LineData
	for _, p := range fm.Curve {
		mean = append(mean, opts.LineData{Value: []interface{}{round(p.Penalty), round(p.MeanDev)}})
		upper = append(upper, opts.LineData{Value: []interface{}{round(p.Penalty), round(p.MeanDev + p.StdErr)}})
		lower = append(lower, opts.LineData{Value: []interface{}{round(p.Penalty), round(p.MeanDev - p.StdErr)}})
	}

	line.AddSeries("mean deviance", mean)
	line.AddSeries("+1 stderr", upper, charts.WithLineStyleOpts(opts.LineStyle{Type: "dotted"}))
	line.AddSeries("-1 stderr", lower, charts.WithLineStyleOpts(opts.LineStyle{Type: "dotted"}))
	return line
}

// ROCLine - true positive rate against false positive rate on the held-out documents
func ROCLine(fpr []float64, tpr []float64, auc float64) *charts.Line {
	const (
		TITLESTR = "ROC on the held-out documents"
		SUBSTR   = "AUC = %.4f"
	)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartwidth, Height: chartheight}),
		charts.WithTitleOpts(opts.Title{Title: TITLESTR, Subtitle: fmt.Sprintf(SUBSTR, auc)}),
		charts.WithToolboxOpts(savetoolbox(TITLESTR)),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "false positive rate"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "true positive rate"}),
	)

	var curve []opts.LineData
	for i := range fpr {
		curve = append(curve, opts.LineData{Value: []interface{}{round(fpr[i]), round(tpr[i])}})
	}
	chance := []opts.LineData{
		{Value: []interface{}{0.0, 0.0}},
		{Value: []interface{}{1.0, 1.0}},
	}

	line.AddSeries("model", curve)
	line.AddSeries("chance", chance, charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}))
	return line
}

// ProbabilityScatter - every held-out document's P(first title), split by the true label
func ProbabilityScatter(scored []str.ScoredDoc, titles [2]string) *charts.Scatter {
	const (
		TITLESTR = "Held-out document probabilities"
		SUBSTR   = "P(»%s«) by document id; the decision threshold sits at 0.5"
		SYMSIZE  = 6
	)

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartwidth, Height: chartheight}),
		charts.WithTitleOpts(opts.Title{Title: TITLESTR, Subtitle: fmt.Sprintf(SUBSTR, titles[0])}),
		charts.WithToolboxOpts(savetoolbox(TITLESTR)),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithLegendOpts(opts.Legend{Show: true, Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "document id"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "probability", Max: 1}),
	)

	series := make(map[string][]opts.ScatterData)
	for _, s := range scored {
		series[s.Title] = append(series[s.Title], opts.ScatterData{
			Value:      []interface{}{s.DocID, round(s.Probability)},
			SymbolSize: SYMSIZE,
		})
	}

	for _, t := range titles {
		sc.AddSeries(t, series[t])
	}
	return sc
}

// TSNEScatter - the 2d t-SNE projection of per-document embedding vectors
func TSNEScatter(pd []vec.ProjectedDoc, titles [2]string) *charts.Scatter {
	const (
		TITLESTR = "t-SNE projection of the corpus"
		SUBSTR   = "per-document mean embedding vectors; %d documents drawn"
		SYMSIZE  = 6
	)

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartwidth, Height: chartheight}),
		charts.WithTitleOpts(opts.Title{Title: TITLESTR, Subtitle: fmt.Sprintf(SUBSTR, len(pd))}),
		charts.WithToolboxOpts(savetoolbox(TITLESTR)),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithLegendOpts(opts.Legend{Show: true, Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
	)

	series := make(map[string][]opts.ScatterData)
	for _, p := range pd {
		series[p.Title] = append(series[p.Title], opts.ScatterData{
			Value:      []interface{}{round(p.X), round(p.Y)},
			SymbolSize: SYMSIZE,
		})
	}

	for _, t := range titles {
		sc.AddSeries(t, series[t])
	}
	return sc
}
