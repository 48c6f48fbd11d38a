package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/pinmapgen/pinmapgen/components/mcu"
	"github.com/pinmapgen/pinmapgen/config"
	"github.com/pinmapgen/pinmapgen/emit/arduino"
	"github.com/pinmapgen/pinmapgen/generate"
	"github.com/pinmapgen/pinmapgen/output"
	"github.com/pinmapgen/pinmapgen/watch"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	badColor  = color.New(color.FgRed)
)

// StaleError is returned by check when outputs need regenerating.
type StaleError struct {
	Paths []string
}

func (e *StaleError) Error() string {
	return fmt.Sprintf("%d generated file(s) out of date: %s", len(e.Paths), strings.Join(e.Paths, ", "))
}

func (r *runner) generate(c *cli.Context) error {
	jobs, err := r.jobs(c)
	if err != nil {
		return err
	}
	return r.runJobs(c.Context, jobs)
}

func (r *runner) runJobs(ctx context.Context, jobs []generate.Job) error {
	if err := r.generator().RunAll(ctx, jobs); err != nil {
		return err
	}
	for _, job := range jobs {
		okColor.Fprintf(r.opts.Stdout, "generated %s (%s)\n", job.Project.Name, job.Project.MCU)
		for _, f := range job.Formats {
			fmt.Fprintf(r.opts.Stdout, "  %s\n", output.Path(job.Root, f))
		}
		for _, w := range job.Project.Warnings {
			warnColor.Fprintf(r.opts.Stdout, "  warning: %s\n", w)
		}
	}
	return nil
}

func (r *runner) watch(c *cli.Context) error {
	paths, err := r.inputs(c)
	if err != nil {
		return err
	}
	regenerate := func(ctx context.Context, changed []string) error {
		if len(changed) > 0 {
			r.logger.Infow("inputs changed, regenerating", "changed", changed)
		}
		jobs, err := r.jobs(c)
		if err != nil {
			return err
		}
		return r.runJobs(ctx, jobs)
	}
	if err := regenerate(c.Context, nil); err != nil {
		r.logger.Errorw("initial generation failed", "error", err)
	}
	w := &watch.Watcher{
		Paths:    paths,
		Debounce: c.Duration("debounce"),
		Logger:   r.logger,
		OnChange: regenerate,
	}
	return w.Run(c.Context)
}

func (r *runner) check(c *cli.Context) error {
	jobs, err := r.jobs(c)
	if err != nil {
		return err
	}
	g := r.generator()
	var stale []string
	for _, job := range jobs {
		files, err := g.Check(job.Project, job.Root, job.Formats)
		if err != nil {
			return err
		}
		for _, f := range files {
			stale = append(stale, f.Path)
			if f.Missing {
				badColor.Fprintf(r.opts.Stdout, "missing %s\n", f.Path)
				continue
			}
			badColor.Fprintf(r.opts.Stdout, "stale %s\n", f.Path)
			fmt.Fprint(r.opts.Stdout, f.Diff)
		}
	}
	if len(stale) > 0 {
		return &StaleError{Paths: stale}
	}
	okColor.Fprintln(r.opts.Stdout, "generated files are up to date")
	return nil
}

func (r *runner) profiles(c *cli.Context) error {
	t := table.NewWriter()
	t.SetOutputMirror(r.opts.Stdout)
	t.SetStyle(table.StyleLight)

	if c.Args().Len() == 0 {
		t.AppendHeader(table.Row{"MCU", "Name", "Pins"})
		for _, name := range mcu.Names() {
			p, err := mcu.Lookup(name)
			if err != nil {
				return err
			}
			t.AppendRow(table.Row{name, p.Display, len(p.Pins())})
		}
		t.Render()
		fmt.Fprintf(r.opts.Stdout, "Arduino platforms: %s\n", strings.Join(arduino.Platforms(), ", "))
		return nil
	}

	p, err := mcu.Lookup(c.Args().First())
	if err != nil {
		return err
	}
	t.SetTitle(p.Display)
	t.AppendHeader(table.Row{"Pin", "Number", "Capabilities", "Special", "Aliases"})
	for _, def := range p.Pins() {
		caps := make([]string, 0, len(def.Capabilities))
		for _, cp := range def.Capabilities {
			caps = append(caps, string(cp))
		}
		t.AppendRow(table.Row{def.Name, def.Number, strings.Join(caps, " "), def.SpecialFunction, strings.Join(def.AlternateNames, " ")})
	}
	t.Render()
	return nil
}

func (r *runner) schema(c *cli.Context) error {
	out, err := json.MarshalIndent(config.Schema(), "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding schema")
	}
	_, err = fmt.Fprintln(r.opts.Stdout, string(out))
	return err
}
