//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/e-gun/KritesGoClassifier/internal/lnch"
	"github.com/e-gun/KritesGoClassifier/internal/vv"
	"github.com/labstack/echo/v4"
)

//
// ROUTING
//

// RtFrontpage - send the html for "/": the registered runs and links to their reports
func RtFrontpage(c echo.Context) error {
	const (
		ROWTMPL = `<tr>
	<td class="runid"><a href="/rpt/%s">%s</a></td>
	<td>%s</td>
	<td>»%s« vs »%s«</td>
	<td class="num">%.4f</td>
	<td class="num">%.1f%%</td>
</tr>`
		NORUNS = `<tr><td colspan="5">no classification runs registered yet</td></tr>`
	)

	c.Response().After(func() { Msg.LogPaths("RtFrontpage()") })

	gc := lnch.GitCommit
	if gc == "" {
		gc = "UNKNOWN"
	}
	ver := fmt.Sprintf("Version: %s [git: %s]", vv.VERSION+lnch.VersSuppl, gc)

	env := fmt.Sprintf("%s: %s - %s (%d workers)", runtime.Version(), runtime.GOOS, runtime.GOARCH, lnch.Config.WorkerCount)

	var rows []string
	for _, id := range AllRuns.IDs() {
		rb, ok := AllRuns.GetRB(id)
		if !ok {
			continue
		}
		r := rb.Report
		rows = append(rows, fmt.Sprintf(ROWTMPL, id, shortid(id), rb.When.Format(time.DateTime),
			r.Titles[0], r.Titles[1], r.AUC, r.Confusion.Accuracy()*100))
	}
	if len(rows) == 0 {
		rows = append(rows, NORUNS)
	}

	subs := map[string]interface{}{
		"version": vv.VERSION + lnch.VersSuppl,
		"longver": ver,
		"env":     env,
		"uptime":  time.Since(Msg.Lnc).Truncate(time.Second).String(),
		"runrows": strings.Join(rows, "\n"),
	}

	f, e := efs.ReadFile("emb/frontpage.html")
	Msg.EC(e)

	tmpl, e := template.New("fp").Parse(string(f))
	Msg.EC(e)

	var b bytes.Buffer
	err := tmpl.Execute(&b, subs)
	Msg.EC(err)

	return c.HTML(http.StatusOK, b.String())
}

// shortid - the first block of a uuid is enough to recognize a run by
func shortid(id string) string {
	if i := strings.Index(id, "-"); i > 0 {
		return id[:i]
	}
	return id
}
