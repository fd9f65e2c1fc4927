//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/e-gun/KritesGoClassifier/internal/lnch"
	"github.com/e-gun/KritesGoClassifier/internal/mm"
	"github.com/e-gun/KritesGoClassifier/internal/str"
	"github.com/labstack/echo/v4"
)

func TestMain(m *testing.M) {
	// the route handlers report into the path hub; run one, as main() does
	go mm.PathInfoHub()
	os.Exit(m.Run())
}

func testbundle(id string, when time.Time) ReportBundle {
	rpt := &str.EvalReport{
		RunID:  id,
		When:   when,
		Titles: [2]string{"The War of the Worlds", "Pride and Prejudice"},
		AUC:    0.9876,
		Confusion: str.ConfusionMatrix{
			Labels: [2]string{"The War of the Worlds", "Pride and Prejudice"},
			Cells:  [2][2]int{{40, 2}, {3, 55}},
		},
		Misclassified: []str.ScoredDoc{
			{DocID: 17, Title: "Pride and Prejudice", Text: "a truth <universally> acknowledged", Probability: 0.91, Predicted: "The War of the Worlds"},
		},
		TrainSize:   300,
		TestSize:    100,
		VocabSize:   123,
		MinWordFreq: 10,
		Seed:        1,
	}
	fm := &str.FittedModel{
		Intercept:    -0.25,
		Coefficients: map[string]float64{"martian": 1.9, "darcy": -2.1},
		Chosen:       "lambda.1se",
		Folds:        10,
	}
	return ReportBundle{Report: rpt, Model: fm, When: when}
}

func TestRunVaultOrdering(t *testing.T) {
	rv := MakeRunVault()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rv.InsertRB(testbundle("run-old", base))
	rv.InsertRB(testbundle("run-mid", base.Add(time.Hour)))
	rv.InsertRB(testbundle("run-new", base.Add(2*time.Hour)))

	ids := rv.IDs()
	want := []string{"run-new", "run-mid", "run-old"}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("expected ids[%d] to be %s, got %s", i, want[i], ids[i])
		}
	}

	if _, ok := rv.GetRB("run-mid"); !ok {
		t.Errorf("expected to find run-mid in the vault")
	}
	rv.DeleteRB("run-mid")
	if _, ok := rv.GetRB("run-mid"); ok {
		t.Errorf("expected run-mid to be gone after DeleteRB")
	}
	if rv.Count() != 2 {
		t.Errorf("expected 2 runs after delete, got %d", rv.Count())
	}
}

func TestSanitizeRunID(t *testing.T) {
	lnch.Config = lnch.BuildDefaultConfig()

	got := sanitizerunid(`2d6b"3f;0a'`)
	if got != "2d6b3f0a" {
		t.Errorf("expected 2d6b3f0a, got %s", got)
	}

	long := strings.Repeat("a", 100)
	if len(sanitizerunid(long)) != 36 {
		t.Errorf("expected the id to be capped at 36 characters, got %d", len(sanitizerunid(long)))
	}
}

func TestShortid(t *testing.T) {
	if shortid("2d6b3f0a-1b2c-3d4e") != "2d6b3f0a" {
		t.Errorf("expected 2d6b3f0a, got %s", shortid("2d6b3f0a-1b2c-3d4e"))
	}
	if shortid("plain") != "plain" {
		t.Errorf("expected plain, got %s", shortid("plain"))
	}
}

func TestConfusionTable(t *testing.T) {
	rb := testbundle("ct-test", time.Now())
	tbl := confusiontable(rb.Report)

	for _, want := range []string{"predicted »The War of the Worlds«", "true »Pride and Prejudice«", ">40<", ">55<", ">2<", ">3<"} {
		if !strings.Contains(tbl, want) {
			t.Errorf("expected the confusion table to contain %s", want)
		}
	}
}

func TestCoefficientTable(t *testing.T) {
	rb := testbundle("cf-test", time.Now())
	tbl := coefficienttable(rb.Model)

	ii := strings.Index(tbl, "(Intercept)")
	mi := strings.Index(tbl, "martian")
	if ii < 0 || mi < 0 || ii > mi {
		t.Errorf("expected the intercept row before the term rows")
	}
	if !strings.Contains(tbl, `class="num neg"`) {
		t.Errorf("expected a negative coefficient to get the neg class")
	}
	if !strings.Contains(tbl, "+1.9000") {
		t.Errorf("expected a signed estimate for martian")
	}
}

func TestMisclassifiedTableEscapes(t *testing.T) {
	rb := testbundle("mc-test", time.Now())
	tbl := misclassifiedtable(rb.Report)

	if strings.Contains(tbl, "<universally>") {
		t.Errorf("expected the document text to be html-escaped")
	}
	if !strings.Contains(tbl, "&lt;universally&gt;") {
		t.Errorf("expected the escaped document text in the table")
	}
}

func TestRtReportJSON(t *testing.T) {
	lnch.Config = lnch.BuildDefaultConfig()
	AllRuns.InsertRB(testbundle("json-test-run", time.Now()))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/json/:runid")
	c.SetParamNames("runid")
	c.SetParamValues("json-test-run")

	if err := RtReportJSON(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"RunID":"json-test-run"`) {
		t.Errorf("expected the report json to carry the run id")
	}
}

func TestRtReportPage(t *testing.T) {
	lnch.Config = lnch.BuildDefaultConfig()
	AllRuns.InsertRB(testbundle("page-test-run", time.Now()))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/rpt/:runid")
	c.SetParamNames("runid")
	c.SetParamValues("page-test-run")

	if err := RtReportPage(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{"Confusion matrix", "martian", "page-test-run", "kgc.css"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected the report page to contain %s", want)
		}
	}
}

func TestRtReportPageMissingRun(t *testing.T) {
	lnch.Config = lnch.BuildDefaultConfig()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/rpt/:runid")
	c.SetParamNames("runid")
	c.SetParamValues("never-registered")

	if err := RtReportPage(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestRtFrontpage(t *testing.T) {
	lnch.Config = lnch.BuildDefaultConfig()
	AllRuns.InsertRB(testbundle("front-test-run", time.Now()))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := RtFrontpage(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "KritesGoClassifier") {
		t.Errorf("expected the frontpage to name the program")
	}
	if !strings.Contains(body, `href="/rpt/front-test-run"`) {
		t.Errorf("expected a link to the registered run")
	}
}
