// Package config describes a PinmapGen project file: which MCU, where the
// pins come from (an explicit list or a netlist) and what to generate.
package config

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/pinmapgen/pinmapgen/emit"
	"github.com/pinmapgen/pinmapgen/pinmap"
)

// SupportedVersions is the range of config file versions this build reads.
const SupportedVersions = ">= 1.0, < 2.0"

// DefaultRef is the MCU reference designator assumed when none is given.
const DefaultRef = "U1"

// A Config is one project file.
type Config struct {
	Version  string      `json:"version,omitempty" jsonschema:"description=config file format version,example=1"`
	Name     string      `json:"name" jsonschema:"description=project name used in generated banners"`
	MCU      string      `json:"mcu" jsonschema:"description=MCU profile used to normalize pins,enum=rp2040,enum=stm32g0,enum=esp32"`
	Platform string      `json:"platform,omitempty" jsonschema:"description=Arduino platform selector,default=arduino-rp2040"`
	Source   Source      `json:"source,omitempty"`
	Pins     []PinConfig `json:"pins,omitempty"`
	Outputs  Outputs     `json:"outputs,omitempty"`

	// dir is the directory relative source paths are resolved against.
	dir string
}

// Source points at a netlist to derive pins from.
type Source struct {
	CSV       string `json:"csv,omitempty" jsonschema:"description=netlist CSV with Net and Pin and Component and RefDes columns"`
	Schematic string `json:"schematic,omitempty" jsonschema:"description=EAGLE .sch schematic"`
	Ref       string `json:"ref,omitempty" jsonschema:"description=MCU reference designator,default=U1"`
}

// A PinConfig declares one pin by hand. Pin is an MCU pin name such as "GP2";
// Number is used when Pin is empty. Role defaults to the role inferred from
// the name.
type PinConfig struct {
	Name        string `json:"name"`
	Pin         string `json:"pin,omitempty"`
	Number      *int   `json:"number,omitempty" jsonschema:"minimum=0"`
	Role        string `json:"role,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Bus         string `json:"bus,omitempty"`
}

// Outputs selects what gets generated and where.
type Outputs struct {
	Root    string   `json:"root,omitempty" jsonschema:"default=."`
	Formats []string `json:"formats,omitempty"`
	Mermaid bool     `json:"mermaid,omitempty"`
}

// A FieldError is a problem with one config field.
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("error validating %q: %v", e.Path, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// NewFieldRequiredError reports a missing required field.
func NewFieldRequiredError(path, field string) error {
	return &FieldError{Path: join(path, field), Err: errors.New("field is required")}
}

func fieldErrorf(path, field, format string, args ...interface{}) error {
	return &FieldError{Path: join(path, field), Err: errors.Errorf(format, args...)}
}

func join(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

// Validate checks the config. Problems are reported with their field path
// below path.
func (c *Config) Validate(path string) error {
	var errs error
	if c.Version != "" {
		if err := checkVersion(c.Version); err != nil {
			errs = multierr.Append(errs, &FieldError{Path: join(path, "version"), Err: err})
		}
	}
	if c.Name == "" {
		errs = multierr.Append(errs, NewFieldRequiredError(path, "name"))
	}
	if c.MCU == "" {
		errs = multierr.Append(errs, NewFieldRequiredError(path, "mcu"))
	}

	sources := 0
	if c.Source.CSV != "" {
		sources++
	}
	if c.Source.Schematic != "" {
		sources++
	}
	if len(c.Pins) > 0 {
		sources++
	}
	switch {
	case sources == 0:
		errs = multierr.Append(errs, fieldErrorf(path, "pins", "one of pins, source.csv or source.schematic is required"))
	case sources > 1:
		errs = multierr.Append(errs, fieldErrorf(path, "source", "pins, source.csv and source.schematic are mutually exclusive"))
	}

	for i, pc := range c.Pins {
		errs = multierr.Append(errs, pc.Validate(join(path, "pins."+strconv.Itoa(i))))
	}
	if _, err := emit.ParseFormats(c.Outputs.Formats); err != nil {
		errs = multierr.Append(errs, &FieldError{Path: join(path, "outputs.formats"), Err: err})
	}
	return errs
}

// Validate checks one pin entry.
func (pc *PinConfig) Validate(path string) error {
	var errs error
	if pc.Name == "" {
		errs = multierr.Append(errs, NewFieldRequiredError(path, "name"))
	}
	if pc.Pin == "" && pc.Number == nil {
		errs = multierr.Append(errs, fieldErrorf(path, "pin", "one of pin or number is required"))
	}
	if pc.Number != nil && *pc.Number < 0 {
		errs = multierr.Append(errs, fieldErrorf(path, "number", "must be non-negative, got %d", *pc.Number))
	}
	role, err := pc.role()
	if err != nil {
		errs = multierr.Append(errs, &FieldError{Path: join(path, "role"), Err: err})
	}
	if pc.Category != "" {
		if _, ok := pinmap.ParseCategory(pc.Category); !ok {
			errs = multierr.Append(errs, fieldErrorf(path, "category", "unknown category %q", pc.Category))
		}
	}
	if pc.Bus != "" && err == nil {
		if _, ok := pinmap.ParseBus(pc.Bus, role.Family()); !ok {
			errs = multierr.Append(errs, fieldErrorf(path, "bus", "bus %q does not fit role %s", pc.Bus, role))
		}
	}
	return errs
}

func (pc *PinConfig) role() (pinmap.Role, error) {
	if pc.Role == "" {
		return pinmap.InferRole(pc.Name), nil
	}
	return pinmap.ParseRole(pc.Role)
}

func checkVersion(v string) error {
	version, err := semver.NewVersion(v)
	if err != nil {
		return errors.Wrapf(err, "bad version %q", v)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if ok, problems := constraint.Validate(version); !ok {
		return errors.Errorf("version %s is not supported (%s): %v", v, SupportedVersions, multierr.Combine(problems...))
	}
	return nil
}

// Resolve makes a path from the config relative to the config file.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// Ref is the MCU reference designator, defaulting to U1.
func (c *Config) Ref() string {
	if c.Source.Ref == "" {
		return DefaultRef
	}
	return c.Source.Ref
}

// OutputRoot is the resolved output directory.
func (c *Config) OutputRoot() string {
	if c.Outputs.Root == "" {
		return c.Resolve(".")
	}
	return c.Resolve(c.Outputs.Root)
}

// Formats returns the requested formats, adding mermaid when asked for.
func (c *Config) Formats() ([]emit.Format, error) {
	formats, err := emit.ParseFormats(c.Outputs.Formats)
	if err != nil {
		return nil, err
	}
	if c.Outputs.Mermaid {
		formats = emit.Include(formats, emit.FormatMermaid)
	}
	return formats, nil
}
