// Package generate renders projects into every requested format and writes
// or checks the results under an output root.
package generate

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/docker/go-units"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/pinmapgen/pinmapgen/emit"
	"github.com/pinmapgen/pinmapgen/emit/arduino"
	"github.com/pinmapgen/pinmapgen/emit/jsonmap"
	"github.com/pinmapgen/pinmapgen/emit/markdown"
	"github.com/pinmapgen/pinmapgen/emit/mermaid"
	"github.com/pinmapgen/pinmapgen/emit/micropython"
	"github.com/pinmapgen/pinmapgen/output"
	"github.com/pinmapgen/pinmapgen/pinmap"
)

// A Generator turns projects into files on Fs. Clock stamps the banners.
type Generator struct {
	Fs     afero.Fs
	Clock  clock.Clock
	Logger golog.Logger
}

// New returns a generator, filling in the OS filesystem, the wall clock and
// the global logger for nil arguments.
func New(fs afero.Fs, clk clock.Clock, logger golog.Logger) *Generator {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = golog.Global()
	}
	return &Generator{Fs: fs, Clock: clk, Logger: logger}
}

func (g *Generator) emitter(p *pinmap.Project, f emit.Format) (emit.Emitter, error) {
	switch f {
	case emit.FormatArduino:
		return arduino.NewRenderer(p.Platform, g.Clock)
	case emit.FormatMicroPython:
		return micropython.NewRenderer(g.Clock), nil
	case emit.FormatJSON:
		return jsonmap.NewRenderer(g.Clock), nil
	case emit.FormatMarkdown:
		return markdown.NewRenderer(g.Clock), nil
	case emit.FormatMermaid:
		return mermaid.NewRenderer(g.Clock), nil
	default:
		return nil, errors.Errorf("unknown output format %q", f)
	}
}

// Render renders p in every format, all in memory. If any format fails no
// files are returned.
func (g *Generator) Render(p *pinmap.Project, root string, formats []emit.Format) (output.Files, error) {
	files := make(output.Files, 0, len(formats))
	for _, f := range formats {
		e, err := g.emitter(p, f)
		if err != nil {
			return nil, err
		}
		text, err := e.Render(p)
		if err != nil {
			return nil, errors.Wrapf(err, "rendering %s for %s", f, p.Name)
		}
		files = append(files, output.File{Format: f, Path: output.Path(root, f), Content: text})
	}
	return files, nil
}

// Run renders p and writes the files below root.
func (g *Generator) Run(ctx context.Context, p *pinmap.Project, root string, formats []emit.Format) (output.Files, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := g.Render(p, root, formats)
	if err != nil {
		return nil, err
	}
	if err := output.NewWriter(g.Fs).WriteAll(files); err != nil {
		return nil, err
	}
	for _, w := range p.Warnings {
		g.Logger.Warnw("pin assignment", "project", p.Name, "warning", w)
	}
	g.Logger.Infow("generated pinmap",
		"project", p.Name,
		"mcu", p.MCU,
		"files", len(files),
		"size", units.HumanSize(float64(files.Size())),
		"root", root)
	for _, f := range files {
		g.Logger.Debugw("wrote", "path", f.Path, "size", units.HumanSize(float64(len(f.Content))))
	}
	return files, nil
}

// A Job is one project to generate.
type Job struct {
	Project *pinmap.Project
	Root    string
	Formats []emit.Format
}

// RunAll runs independent jobs concurrently. The first failure cancels the
// jobs that have not started writing yet and is returned.
func (g *Generator) RunAll(ctx context.Context, jobs []Job) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		job := job
		eg.Go(func() error {
			_, err := g.Run(ctx, job.Project, job.Root, job.Formats)
			return err
		})
	}
	return eg.Wait()
}
