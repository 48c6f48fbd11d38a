// Package mermaid renders pinout.mmd, a Mermaid flowchart linking the MCU to
// each pin category.
package mermaid

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"github.com/pinmapgen/pinmapgen/emit"
	"github.com/pinmapgen/pinmapgen/pinmap"
)

const chart = `%% {{ .Title }} pinout
%% Generated: {{ .Generated }}
%% Generator: {{ .Generator }}
flowchart LR
    MCU["{{ .MCU }}"]
{{- range .Groups }}
    subgraph {{ .Category | toString | lower | nospace }}["{{ .Category.Header }}"]
{{- range .Pins }}
        {{ .Name | lower }}["{{ .Name }}<br/>{{ default (printf "%d" .Number) .Physical }}"]
{{- end }}
    end
    MCU --- {{ .Category | toString | lower | nospace }}
{{- end }}
{{- range .Pairs }}
    {{ .Positive | lower }} <-.{{ .Kind }}.-> {{ .Negative | lower }}
{{- end }}
`

var tmpl = template.Must(template.New("pinout").Funcs(sprig.TxtFuncMap()).Parse(chart))

type view struct {
	Title     string
	Generated string
	Generator string
	MCU       string
	Groups    []pinmap.Group
	Pairs     []pinmap.DiffPair
}

// A Renderer renders Mermaid pinout charts.
type Renderer struct {
	Clock clock.Clock
}

// NewRenderer returns a renderer stamping charts with clk.
func NewRenderer(clk clock.Clock) *Renderer {
	if clk == nil {
		clk = clock.New()
	}
	return &Renderer{Clock: clk}
}

// Render returns the chart for p.
func (r *Renderer) Render(p *pinmap.Project) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	v := view{
		Title:     p.Name,
		Generated: r.Clock.Now().Format(emit.TimestampLayout),
		Generator: emit.Generator,
		MCU:       emit.MCUName(p),
		Groups:    p.Groups(),
		Pairs:     p.Pairs,
	}
	if v.Title == "" {
		v.Title = "project"
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, v); err != nil {
		return "", errors.Wrap(err, "rendering mermaid chart")
	}
	return b.String(), nil
}
