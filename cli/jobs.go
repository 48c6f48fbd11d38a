package cli

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/pinmapgen/pinmapgen/canonical"
	"github.com/pinmapgen/pinmapgen/components/mcu"
	"github.com/pinmapgen/pinmapgen/config"
	"github.com/pinmapgen/pinmapgen/emit"
	"github.com/pinmapgen/pinmapgen/generate"
	"github.com/pinmapgen/pinmapgen/netlist"
)

// inputs lists the files the jobs are built from: config files and the
// netlists they point at, or the netlist flag.
func (r *runner) inputs(c *cli.Context) ([]string, error) {
	if configs := c.StringSlice(configFlag.Name); len(configs) > 0 {
		var out []string
		for _, path := range configs {
			out = append(out, path)
			cfg, err := config.Load(r.opts.Fs, path)
			if err != nil {
				return nil, err
			}
			for _, src := range []string{cfg.Source.CSV, cfg.Source.Schematic} {
				if src != "" {
					out = append(out, cfg.Resolve(src))
				}
			}
		}
		return out, nil
	}
	src, err := netlistFlag(c)
	if err != nil {
		return nil, err
	}
	return []string{src}, nil
}

func netlistFlag(c *cli.Context) (string, error) {
	csv, sch := c.String(csvFlag.Name), c.String(schFlag.Name)
	switch {
	case csv != "" && sch != "":
		return "", errors.New("--csv and --sch are mutually exclusive")
	case csv != "":
		return csv, nil
	case sch != "":
		return sch, nil
	default:
		return "", errors.New("one of --config, --csv or --sch is required")
	}
}

// jobs builds one generation job per config file, or a single job from the
// netlist flags.
func (r *runner) jobs(c *cli.Context) ([]generate.Job, error) {
	if configs := c.StringSlice(configFlag.Name); len(configs) > 0 {
		jobs := make([]generate.Job, 0, len(configs))
		for _, path := range configs {
			job, err := r.configJob(path)
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, job)
		}
		return jobs, nil
	}

	src, err := netlistFlag(c)
	if err != nil {
		return nil, err
	}
	profile, err := mcu.Lookup(c.String(mcuFlag.Name))
	if err != nil {
		return nil, err
	}
	nets, err := netlist.Load(r.opts.Fs, src, c.String(mcuRefFlag.Name))
	if err != nil {
		return nil, err
	}
	p, err := canonical.Build(nets, profile, canonical.Options{
		Name:     strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		Platform: c.String(platformFlag.Name),
		Logger:   r.logger,
	})
	if err != nil {
		return nil, err
	}
	formats, err := emit.ParseFormats(c.StringSlice(formatFlag.Name))
	if err != nil {
		return nil, err
	}
	if c.Bool(mermaidFlag.Name) {
		formats = emit.Include(formats, emit.FormatMermaid)
	}
	return []generate.Job{{Project: p, Root: c.String(outRootFlag.Name), Formats: formats}}, nil
}

func (r *runner) configJob(path string) (generate.Job, error) {
	cfg, err := config.Load(r.opts.Fs, path)
	if err != nil {
		return generate.Job{}, err
	}
	if err := cfg.Validate(""); err != nil {
		return generate.Job{}, errors.Wrapf(err, "invalid config %s", path)
	}
	profile, err := cfg.Profile()
	if err != nil {
		return generate.Job{}, err
	}
	p, err := cfg.Project(r.opts.Fs, profile, r.logger)
	if err != nil {
		return generate.Job{}, errors.Wrapf(err, "building project from %s", path)
	}
	formats, err := cfg.Formats()
	if err != nil {
		return generate.Job{}, err
	}
	return generate.Job{Project: p, Root: cfg.OutputRoot(), Formats: formats}, nil
}
