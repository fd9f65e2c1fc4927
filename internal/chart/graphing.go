//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package chart renders the run artifacts as echarts HTML: term frequencies, the
// regularization path, the coefficient table, per-document probabilities, the ROC
// curve, and the embedding sidecars (neighbors graph, t-SNE scatter).
package chart

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/e-gun/KritesGoClassifier/internal/lnch"
	"github.com/e-gun/KritesGoClassifier/internal/vv"
	"github.com/go-echarts/go-echarts/v2/components"
)

var Msg = lnch.NewMessageMakerWithDefaults()

var (
	chartwidth  = vv.DEFAULTCHRTWIDTH
	chartheight = vv.DEFAULTCHRTHEIGHT
)

// SetDimensions - charts pick up the -cw/-ch flags once at launch
func SetDimensions(w string, h string) {
	if w != "" {
		chartwidth = w
	}
	if h != "" {
		chartheight = h
	}
}

// Fragment - render a single chart into the html+js that can be injected into a report page
func Fragment(c components.Charter) string {
	// go-echarts is "too clever" and opaque about how to not do things its way
	// we override their page.Render() to yield html+js (see the ModX and CustomX code below)

	p := components.NewPage()
	p.Renderer = NewCustomPageRender(p, p.Validate)

	p.AddCharts(c)
	p.Validate()

	var buf bytes.Buffer
	err := p.Render(&buf)
	Msg.EC(err)

	return buf.String()
}

// WritePage - render one or more charts into a standalone html file inside the output directory
func WritePage(outputdir string, fname string, pagetitle string, cs ...components.Charter) string {
	const (
		MSG1 = "wrote %s"
	)

	p := components.NewPage()
	p.PageTitle = pagetitle
	p.Renderer = NewCustomFileRender(p, p.Validate)

	p.AddCharts(cs...)
	p.Validate()

	var buf bytes.Buffer
	err := p.Render(&buf)
	Msg.EC(err)

	fp := filepath.Join(outputdir, fname)
	err = os.WriteFile(fp, buf.Bytes(), vv.WRITEPERMS)
	Msg.EC(err)
	Msg.PEEK(fmt.Sprintf(MSG1, fp))

	return fp
}

//
// OVERRIDE GO-ECHARTS [original code at https://github.com/go-echarts/go-echarts]
//

// ModRenderer etc modified from https://github.com/go-echarts/go-echarts/render/engine.go
type ModRenderer interface {
	Render(w io.Writer) error
}

type CustomPageRender struct {
	c       interface{}
	tplname string
	before  []func()
}

// NewCustomPageRender returns a fragment renderer for Page: html+js only, no shell
func NewCustomPageRender(c interface{}, before ...func()) ModRenderer {
	return &CustomPageRender{c: c, tplname: "chart", before: before}
}

// NewCustomFileRender returns a whole-page renderer for Page: doctype, head, body
func NewCustomFileRender(c interface{}, before ...func()) ModRenderer {
	return &CustomPageRender{c: c, tplname: "file", before: before}
}

// Render renders the page into the given io.Writer.
func (r *CustomPageRender) Render(w io.Writer) error {
	const (
		PATTERN = `(__f__")|("__f__)|(__f__)`
	)

	for _, fn := range r.before {
		fn()
	}

	contents := []string{CustomHeaderTpl, CustomBaseTpl, CustomPageTpl, CustomFileTpl}
	tpl := ModMustTemplate(r.tplname, contents)

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, r.tplname, r.c); err != nil {
		return err
	}

	pat := regexp.MustCompile(PATTERN)
	content := pat.ReplaceAll(buf.Bytes(), []byte(""))

	_, err := w.Write(content)
	return err
}

// ModMustTemplate creates a new template with the given name and parsed contents.
func ModMustTemplate(name string, contents []string) *template.Template {
	const (
		JSNAME = "safeJS"
	)

	tpl := template.Must(template.New(name).Parse(contents[0])).Funcs(template.FuncMap{
		JSNAME: func(s interface{}) template.JS {
			return template.JS(fmt.Sprint(s))
		},
	})

	for _, cont := range contents[1:] {
		tpl = template.Must(tpl.Parse(cont))
	}
	return tpl
}

// CustomHeaderTpl etc. adapted from https://github.com/go-echarts/go-echarts/templates/
var CustomHeaderTpl = `
{{ define "header" }}
<head>
	<!-- CustomHeaderTpl -->
    <meta charset="utf-8">
    <title>{{ .PageTitle }}</title>
{{- range .JSAssets.Values }}
    <script src="{{ . }}"></script>
{{- end }}
{{- range .CustomizedJSAssets.Values }}
    <script src="{{ . }}"></script>
{{- end }}
{{- range .CSSAssets.Values }}
    <link href="{{ . }}" rel="stylesheet">
{{- end }}
{{- range .CustomizedCSSAssets.Values }}
    <link href="{{ . }}" rel="stylesheet">
{{- end }}
</head>
{{ end }}
`

var CustomBaseTpl = `
{{- define "base" }}
<!-- CustomBaseTpl -->
<div class="container">
    <div class="item" id="{{ .ChartID }}" style="width:{{ .Initialization.Width }};height:{{ .Initialization.Height }};"></div>
</div>
<script type="text/javascript">
    "use strict";
    let goecharts_{{ .ChartID | safeJS }} = echarts.init(document.getElementById('{{ .ChartID | safeJS }}'), "{{ .Theme }}");
    let option_{{ .ChartID | safeJS }} = {{ .JSONNotEscaped | safeJS }};
	let action_{{ .ChartID | safeJS }} = {{ .JSONNotEscapedAction | safeJS }};
    goecharts_{{ .ChartID | safeJS }}.setOption(option_{{ .ChartID | safeJS }});
 	goecharts_{{ .ChartID | safeJS }}.dispatchAction(action_{{ .ChartID | safeJS }});

    {{- range .JSFunctions.Fns }}
    {{ . | safeJS }}
    {{- end }}
</script>
{{ end }}
`

var CustomPageTpl = `
{{- define "chart" }}
	<!-- "style" is set in kgc.css, not here -->
	<!-- CustomPageTpl -->
	{{ if eq .Layout "none" }}
		{{- range .Charts }} {{ template "base" . }} {{- end }}
	{{ end }}

	{{ if eq .Layout "center" }}
		{{- range .Charts }} {{ template "base" . }} {{- end }}
	{{ end }}

	{{ if eq .Layout "flex" }}
		<div class="box"> {{- range .Charts }} {{ template "base" . }} {{- end }} </div>
	{{ end }}
{{ end }}
`

var CustomFileTpl = `
{{- define "file" }}
<!DOCTYPE html>
<html>
{{ template "header" . }}
<body>
{{ template "chart" . }}
</body>
</html>
{{ end }}
`
