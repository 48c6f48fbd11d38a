// Package cli is the pinmapgen command line.
package cli

import (
	"io"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/pinmapgen/pinmapgen/emit"
	"github.com/pinmapgen/pinmapgen/generate"
	"github.com/pinmapgen/pinmapgen/logging"
	"github.com/pinmapgen/pinmapgen/watch"
)

// Options inject the outside world. Zero values mean the OS filesystem, the
// wall clock, stdout and stderr, and a logger built from the global flags.
type Options struct {
	Fs     afero.Fs
	Clock  clock.Clock
	Stdout io.Writer
	Stderr io.Writer
	Logger golog.Logger
}

type runner struct {
	opts   Options
	logger golog.Logger
}

func (r *runner) generator() *generate.Generator {
	return generate.New(r.opts.Fs, r.opts.Clock, r.logger)
}

var (
	configFlag = &cli.StringSliceFlag{
		Name:      "config",
		Aliases:   []string{"c"},
		Usage:     "project config file (.yaml, .json or .toml); repeat for several projects",
		TakesFile: true,
	}
	csvFlag = &cli.StringFlag{
		Name:      "csv",
		Usage:     "netlist CSV with Net, Pin, Component and RefDes columns",
		TakesFile: true,
	}
	schFlag = &cli.StringFlag{
		Name:      "sch",
		Usage:     "EAGLE schematic (.sch)",
		TakesFile: true,
	}
	mcuFlag = &cli.StringFlag{
		Name:  "mcu",
		Usage: "MCU profile",
		Value: "rp2040",
	}
	mcuRefFlag = &cli.StringFlag{
		Name:  "mcu-ref",
		Usage: "reference designator of the MCU in the netlist",
		Value: "U1",
	}
	platformFlag = &cli.StringFlag{
		Name:  "platform",
		Usage: "Arduino platform selector",
		Value: "arduino-rp2040",
	}
	outRootFlag = &cli.StringFlag{
		Name:  "out-root",
		Usage: "directory generated files are placed under",
		Value: ".",
	}
	mermaidFlag = &cli.BoolFlag{
		Name:  "mermaid",
		Usage: "also generate a Mermaid pinout diagram",
	}
	formatFlag = &cli.StringSliceFlag{
		Name:  "format",
		Usage: "output formats (json, micropython, arduino, markdown, mermaid or all)",
	}
)

var projectFlags = []cli.Flag{configFlag, csvFlag, schFlag, mcuFlag, mcuRefFlag, platformFlag, outRootFlag, mermaidFlag, formatFlag}

// NewApp returns the pinmapgen application. Errors are returned from Run
// instead of exiting so callers choose the exit code.
func NewApp(opts Options) *cli.App {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	r := &runner{opts: opts, logger: opts.Logger}
	var restore func()

	return &cli.App{
		Name:      "pinmapgen",
		Usage:     "generate firmware pin maps from netlists and project configs",
		Version:   emit.Version,
		Writer:    opts.Stdout,
		ErrWriter: opts.Stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "debug logging"},
			&cli.BoolFlag{Name: "log-json", Usage: "log JSON lines instead of console text"},
		},
		Before: func(c *cli.Context) error {
			if r.logger != nil {
				return nil
			}
			logger, done, err := logging.New(logging.Options{
				Name:    "pinmapgen",
				Verbose: c.Bool("verbose"),
				JSON:    c.Bool("log-json"),
			})
			if err != nil {
				return err
			}
			r.logger, restore = logger, done
			return nil
		},
		After: func(c *cli.Context) error {
			if restore != nil {
				restore()
			}
			return nil
		},
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "generate pin maps",
				Flags:  projectFlags,
				Action: r.generate,
			},
			{
				Name:  "watch",
				Usage: "regenerate whenever an input changes",
				Flags: append(append([]cli.Flag(nil), projectFlags...), &cli.DurationFlag{
					Name:  "debounce",
					Usage: "quiet period before regenerating",
					Value: watch.DefaultDebounce,
				}),
				Action: r.watch,
			},
			{
				Name:   "check",
				Usage:  "fail when generated files are missing or out of date",
				Flags:  projectFlags,
				Action: r.check,
			},
			{
				Name:      "profiles",
				Usage:     "list MCU profiles, or the pins of one profile",
				ArgsUsage: "[mcu]",
				Action:    r.profiles,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON schema of the project config",
				Action: r.schema,
			},
		},
	}
}
