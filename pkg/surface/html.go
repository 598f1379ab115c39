// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package surface

import (
	"context"
	_ "embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/pomali/autogram/pkg/badge"
	"github.com/pomali/autogram/pkg/hashing"
	"github.com/pomali/autogram/pkg/visualization"
)

var (
	//go:embed assets/viewer.js
	viewerJS string
	//go:embed assets/surface.css
	surfaceCSS string
)

// Content-Security-Policy directives. Pages never load anything from the
// network; the only script allowed is the bundled page viewer, pinned by
// its hash. Transformed markup runs in a sandboxed frame that additionally
// forbids everything but inline styles and data: images.
const (
	basePolicy  = "default-src 'none'; base-uri 'none'; form-action 'none'; img-src data:; style-src 'unsafe-inline'"
	FramePolicy = "default-src 'none'; img-src data:; style-src 'unsafe-inline'"
)

// ViewerPolicy is the page policy used when the page viewer script runs.
var ViewerPolicy = basePolicy + "; script-src " + hashing.CSPSource([]byte(viewerJS))

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta http-equiv="Content-Security-Policy" content="{{.Policy}}">
<meta name="referrer" content="no-referrer">
<title>{{.Title}}</title>
<style>{{.Style}}</style>
</head>
<body class="autogram-{{.Kind}}">
<h1>{{.Title}}</h1>
{{- if .Message}}
<p class="autogram-message">{{.Message}}</p>
{{- end}}
{{- if .Text}}
<pre class="autogram-text">{{.Text}}</pre>
{{- end}}
{{- if .Markup}}
<iframe class="autogram-frame" sandbox="" csp="{{.FramePolicy}}" referrerpolicy="no-referrer" title="{{.Title}}" srcdoc="{{.Markup}}"></iframe>
{{- end}}
{{- if .Pages}}
<div id="autogram-pages">
{{- range $i, $p := .Pages}}
<img class="autogram-page" alt="Page {{inc $i}}" src="{{$p}}">
{{- end}}
</div>
<script>{{.Script}}</script>
{{- end}}
{{- range .Displays}}
<ul class="autogram-badges">
{{- range .Badges}}
<li class="autogram-tag {{.Style.CSSClass}}">{{.Label}}</li>
{{- end}}
</ul>
{{- end}}
</body>
</html>
`))

type page struct {
	Title       string
	Kind        string
	Policy      string
	FramePolicy string
	Style       template.CSS
	Script      template.JS
	Message     string
	Text        string
	Markup      string
	Pages       []template.URL
	Displays    []badge.Display
}

// Surface displays outcomes once it has loaded.
type Surface interface {
	// Ready returns the signal for the current load.
	Ready() *Ready
	// Show injects the outcome. Callers must wait for Ready first.
	Show(out visualization.Outcome) error
}

// Present waits for s to load and then shows out.
func Present(ctx context.Context, s Surface, out visualization.Outcome) error {
	if err := s.Ready().Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("surface failed to load: %w", err)
	}
	return s.Show(out)
}

// HTMLSurface writes self-contained HTML pages. It loads synchronously, so
// its Ready signal has fired by the time it is returned.
type HTMLSurface struct {
	w     io.Writer
	title string
	ready *Ready
}

var _ Surface = (*HTMLSurface)(nil)

// NewHTMLSurface returns a surface writing pages titled title to w.
func NewHTMLSurface(w io.Writer, title string) *HTMLSurface {
	return &HTMLSurface{w: w, title: title, ready: Resolved(nil)}
}

// Ready implements Surface.
func (s *HTMLSurface) Ready() *Ready {
	return s.ready
}

// Show writes a page for out.
//
// Plain text and messages are escaped. Markup is placed only in the
// srcdoc attribute of a sandboxed frame without allow-scripts, so it is
// never parsed in the context of the page. Page images are embedded as
// data: URLs and the bundled viewer script is the only script allowed.
func (s *HTMLSurface) Show(out visualization.Outcome) error {
	p := s.newPage(out.Kind.String())
	p.Message = out.Message

	switch out.Kind {
	case visualization.KindPlainText:
		p.Text = out.Text
	case visualization.KindMarkupFrame:
		p.Markup = out.Markup
		p.FramePolicy = FramePolicy
	case visualization.KindPageImages:
		p.Policy = ViewerPolicy
		p.Script = template.JS(viewerJS)
		for _, png := range out.Pages {
			p.Pages = append(p.Pages, template.URL("data:image/png;base64,"+base64.StdEncoding.EncodeToString(png)))
		}
	}
	return s.write(p)
}

// ShowBadges writes a page listing the badge sets of a validation report.
func (s *HTMLSurface) ShowBadges(displays []badge.Display) error {
	p := s.newPage("badges")
	p.Displays = displays
	return s.write(p)
}

func (s *HTMLSurface) newPage(kind string) *page {
	return &page{
		Title:  s.title,
		Kind:   strings.ReplaceAll(kind, " ", "-"),
		Policy: basePolicy,
		Style:  template.CSS(surfaceCSS),
	}
}

func (s *HTMLSurface) write(p *page) error {
	if err := pageTemplate.Execute(s.w, p); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
