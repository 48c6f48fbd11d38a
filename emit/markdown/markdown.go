// Package markdown renders PINOUT.md, a human readable pinout document with
// one table per pin category.
package markdown

import (
	"fmt"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pinmapgen/pinmapgen/emit"
	"github.com/pinmapgen/pinmapgen/pinmap"
)

var header = table.Row{"Name", "Pin", "MCU Pin", "Role", "Function", "Description"}

// A Renderer renders pinout documents.
type Renderer struct {
	Clock clock.Clock
}

// NewRenderer returns a renderer stamping documents with clk.
func NewRenderer(clk clock.Clock) *Renderer {
	if clk == nil {
		clk = clock.New()
	}
	return &Renderer{Clock: clk}
}

// Render returns the markdown document for p.
func (r *Renderer) Render(p *pinmap.Project) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	var b strings.Builder
	title := p.Name
	if title == "" {
		title = "Project"
	}
	fmt.Fprintf(&b, "# %s Pinout\n\n", title)
	fmt.Fprintf(&b, "- MCU: %s\n", emit.MCUName(p))
	fmt.Fprintf(&b, "- Generated: %s\n", r.Clock.Now().Format(emit.TimestampLayout))
	fmt.Fprintf(&b, "- Generator: %s %s\n", emit.Generator, emit.Version)

	for _, g := range p.Groups() {
		t := table.NewWriter()
		t.AppendHeader(header)
		for _, pin := range g.Pins {
			t.AppendRow(table.Row{
				pin.Name, pin.Number, pin.Physical, pin.Role.String(), string(pin.Role.Function()), pin.Description,
			})
		}
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", g.Category.Header(), t.RenderMarkdown())
	}

	if len(p.Pairs) > 0 {
		t := table.NewWriter()
		t.AppendHeader(table.Row{"Type", "Positive", "Negative"})
		for _, pair := range p.Pairs {
			t.AppendRow(table.Row{string(pair.Kind), pair.Positive, pair.Negative})
		}
		fmt.Fprintf(&b, "\n## Differential Pairs\n\n%s\n", t.RenderMarkdown())
	}

	if len(p.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range p.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String(), nil
}
