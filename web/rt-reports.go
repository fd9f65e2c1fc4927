//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"fmt"
	"html"
	"net/http"
	"os"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/e-gun/KritesGoClassifier/internal/gen"
	"github.com/e-gun/KritesGoClassifier/internal/lnch"
	"github.com/e-gun/KritesGoClassifier/internal/str"
	"github.com/e-gun/KritesGoClassifier/internal/vv"
	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	// have the option to return/generate some sort of fail message...
	emptyjsreturn = func(c echo.Context) error { return c.JSONPretty(http.StatusOK, "", vv.JSONINDENT) }
)

//
// ROUTING
//

// RtReportPage - send the html report for one run: the tables first, the charts after
func RtReportPage(c echo.Context) error {
	const (
		MISSING = `<html><body>no run with id "%s" is registered; <a href="/">return to the main page</a></body></html>`
	)

	c.Response().After(func() { Msg.LogPaths("RtReportPage()") })

	id := sanitizerunid(c.Param("runid"))
	rb, ok := AllRuns.GetRB(id)
	if !ok {
		return c.HTML(http.StatusNotFound, fmt.Sprintf(MISSING, id))
	}

	var frags []string
	for _, f := range rb.Fragments {
		frags = append(frags, fmt.Sprintf("<h3>%s</h3>\n%s", f.Name, f.HTML))
	}

	subs := map[string]interface{}{
		"runid":         id,
		"shortid":       shortid(id),
		"title1":        rb.Report.Titles[0],
		"title2":        rb.Report.Titles[1],
		"when":          rb.When.Format(time.DateTime),
		"summary":       summarytable(rb),
		"confusion":     confusiontable(rb.Report),
		"coefficients":  coefficienttable(rb.Model),
		"misclassified": misclassifiedtable(rb.Report),
		"fragments":     strings.Join(frags, "\n"),
		"filelinks":     filelinks(id, rb),
	}

	f, e := efs.ReadFile("emb/reportpage.html")
	Msg.EC(e)

	tmpl, e := template.New("rp").Parse(string(f))
	Msg.EC(e)

	var b bytes.Buffer
	err := tmpl.Execute(&b, subs)
	Msg.EC(err)

	return c.HTML(http.StatusOK, b.String())
}

// RtReportJSON - send the full report; the same payload lands in the output directory as a file
func RtReportJSON(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtReportJSON()") })

	id := sanitizerunid(c.Param("runid"))
	rb, ok := AllRuns.GetRB(id)
	if !ok {
		return emptyjsreturn(c)
	}
	return gen.JSONresponse(c, rb.Report)
}

// RtRunFile - send one of the standalone chart files the run wrote into the output directory
func RtRunFile(c echo.Context) error {
	c.Response().After(func() { Msg.LogPaths("RtRunFile()") })

	id := sanitizerunid(c.Param("runid"))
	rb, ok := AllRuns.GetRB(id)
	if !ok {
		return c.String(http.StatusNotFound, "")
	}

	// the map doubles as a whitelist: only files this run itself wrote can be fetched
	fn := c.Param("file")
	fp, found := rb.ChartFile[fn]
	if !found {
		Msg.WARN(fmt.Sprintf("RtRunFile() refused '%s'", fn))
		return c.String(http.StatusNotFound, "")
	}

	j, e := os.ReadFile(fp)
	if e != nil {
		Msg.WARN(fmt.Sprintf("RtRunFile() can't find %s", fp))
		return c.String(http.StatusNotFound, "")
	}

	return c.HTML(http.StatusOK, string(j))
}

//
// HELPERS
//

// sanitizerunid - the report routes should not echo arbitrary input back as html
func sanitizerunid(id string) string {
	bad := lnch.Config.BadChars
	if bad == "" {
		bad = vv.UNACCEPTABLEINPUT
	}
	id = gen.Purgechars(bad, id)
	if len(id) > vv.MAXRUNIDLENGTH {
		id = id[:vv.MAXRUNIDLENGTH]
	}
	return id
}

// summarytable - the run's settings and headline numbers
func summarytable(rb ReportBundle) string {
	const (
		ROW = `<tr><td class="label">%s</td><td>%s</td></tr>`
	)

	r := rb.Report
	fm := rb.Model
	mp := message.NewPrinter(language.English)

	rows := []string{
		fmt.Sprintf(ROW, "documents (train / test)", mp.Sprintf("%d / %d", r.TrainSize, r.TestSize)),
		fmt.Sprintf(ROW, "vocabulary", mp.Sprintf("%d terms occurring more than %d times", r.VocabSize, r.MinWordFreq)),
		fmt.Sprintf(ROW, "cross-validation", fmt.Sprintf("%d folds; chose %s", fm.Folds, fm.Chosen)),
		fmt.Sprintf(ROW, "lambda.min", fmt.Sprintf("path step %d (deviance %.4f; %d nonzero)", fm.LambdaMin.Index, fm.LambdaMin.MeanDev, fm.LambdaMin.Nonzero)),
		fmt.Sprintf(ROW, "lambda.1se", fmt.Sprintf("path step %d (deviance %.4f; %d nonzero)", fm.Lambda1SE.Index, fm.Lambda1SE.MeanDev, fm.Lambda1SE.Nonzero)),
		fmt.Sprintf(ROW, "intercept", fmt.Sprintf("%.4f", fm.Intercept)),
		fmt.Sprintf(ROW, "AUC", fmt.Sprintf("%.4f", r.AUC)),
		fmt.Sprintf(ROW, "accuracy", fmt.Sprintf("%.2f%% (%d of %d at the 0.5 threshold)", r.Confusion.Accuracy()*100, r.Confusion.Correct(), r.Confusion.Total())),
		fmt.Sprintf(ROW, "seed", fmt.Sprintf("%d", r.Seed)),
	}

	return fmt.Sprintf("<table class=\"summary\">\n%s\n</table>", strings.Join(rows, "\n"))
}

// confusiontable - the 2x2 counts at the 0.5 threshold; rows are the true titles
func confusiontable(r *str.EvalReport) string {
	const (
		TBL = `<table class="confusion">
<tr><th></th><th>predicted »%s«</th><th>predicted »%s«</th></tr>
<tr><td class="label">true »%s«</td><td class="num hit">%d</td><td class="num miss">%d</td></tr>
<tr><td class="label">true »%s«</td><td class="num miss">%d</td><td class="num hit">%d</td></tr>
</table>`
	)

	cm := r.Confusion
	return fmt.Sprintf(TBL, cm.Labels[0], cm.Labels[1],
		cm.Labels[0], cm.Cells[0][0], cm.Cells[0][1],
		cm.Labels[1], cm.Cells[1][0], cm.Cells[1][1])
}

// coefficienttable - every nonzero coefficient, intercept first; the penalty keeps the list short
func coefficienttable(fm *str.FittedModel) string {
	const (
		ROW = `<tr><td class="term">%s</td><td class="num %s">%+.4f</td></tr>`
	)

	var rows []string
	for _, cf := range fm.Table() {
		sgn := "pos"
		if cf.Estimate < 0 {
			sgn = "neg"
		}
		rows = append(rows, fmt.Sprintf(ROW, html.EscapeString(cf.Term), sgn, cf.Estimate))
	}

	return fmt.Sprintf("<table class=\"coefficients\">\n<tr><th>term</th><th>estimate</th></tr>\n%s\n</table>", strings.Join(rows, "\n"))
}

// misclassifiedtable - the sampled misclassifications with the text that fooled the model
func misclassifiedtable(r *str.EvalReport) string {
	const (
		ROW  = `<tr><td class="num">%d</td><td>%s</td><td class="num">%.4f</td><td class="doctext">%s</td></tr>`
		NONE = `<p>every held-out document was classified correctly</p>`
	)

	if len(r.Misclassified) == 0 {
		return NONE
	}

	var rows []string
	for _, sd := range r.Misclassified {
		rows = append(rows, fmt.Sprintf(ROW, sd.DocID, sd.Title, sd.Probability, html.EscapeString(sd.Text)))
	}

	hd := fmt.Sprintf("<tr><th>doc</th><th>true title</th><th>P(»%s«)</th><th>text</th></tr>", r.Titles[0])
	return fmt.Sprintf("<table class=\"misclassified\">\n%s\n%s\n</table>", hd, strings.Join(rows, "\n"))
}

// filelinks - links to the standalone chart files the run wrote
func filelinks(id string, rb ReportBundle) string {
	names := gen.StringMapKeysIntoSlice(rb.ChartFile)
	sort.Strings(names)

	var ll []string
	for _, n := range names {
		ll = append(ll, fmt.Sprintf(` · <a href="/file/%s/%s">%s</a>`, id, n, n))
	}
	return strings.Join(ll, "")
}
