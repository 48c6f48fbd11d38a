package config

import (
	"fmt"
	"strconv"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/pinmapgen/pinmapgen/canonical"
	"github.com/pinmapgen/pinmapgen/components/mcu"
	"github.com/pinmapgen/pinmapgen/netlist"
	"github.com/pinmapgen/pinmapgen/pinmap"
)

// Profile looks up the config's MCU profile.
func (c *Config) Profile() (*mcu.Profile, error) {
	return mcu.Lookup(c.MCU)
}

// Project builds the pinmap project the config describes. Netlist sources are
// read from fs and run through canonical.Build; explicit pins are normalized
// against profile.
func (c *Config) Project(fs afero.Fs, profile *mcu.Profile, logger golog.Logger) (*pinmap.Project, error) {
	if err := c.Validate(""); err != nil {
		return nil, err
	}
	opts := canonical.Options{Name: c.Name, Platform: c.Platform, Logger: logger}

	var src string
	switch {
	case c.Source.CSV != "":
		src = c.Source.CSV
	case c.Source.Schematic != "":
		src = c.Source.Schematic
	default:
		return c.explicit(profile)
	}
	nets, err := netlist.Load(fs, c.Resolve(src), c.Ref())
	if err != nil {
		return nil, err
	}
	return canonical.Build(nets, profile, opts)
}

func (c *Config) explicit(profile *mcu.Profile) (*pinmap.Project, error) {
	p := &pinmap.Project{Name: c.Name, MCU: profile.Name, Platform: c.Platform}
	var errs error
	for i, pc := range c.Pins {
		pin, err := pc.resolve(profile)
		if err != nil {
			errs = multierr.Append(errs, &FieldError{Path: "pins." + strconv.Itoa(i), Err: err})
			continue
		}
		p.Pins = append(p.Pins, pin)
		if pin.Physical == "" {
			continue
		}
		for _, w := range profile.CheckAssignment(pin.Physical, pin.Role) {
			p.Warnings = append(p.Warnings, fmt.Sprintf("%s (%s): %s", pin.Name, pin.Physical, w))
		}
		if def, _ := profile.Pin(pin.Physical); def.SpecialFunction != "" {
			p.SpecialPins = append(p.SpecialPins, pin.Physical)
		}
	}
	if errs != nil {
		return nil, errs
	}
	p.Pairs = pinmap.DetectPairs(p.Pins)
	return p, nil
}

// resolve turns the entry into a pin. A Pin name must normalize; a bare
// Number is used as given, picking up the MCU pin name when the profile knows
// that number.
func (pc *PinConfig) resolve(profile *mcu.Profile) (pinmap.Pin, error) {
	role, err := pc.role()
	if err != nil {
		return pinmap.Pin{}, err
	}
	pin := pinmap.Pin{Name: pc.Name, Role: role, Description: pc.Description}
	if pc.Category != "" {
		pin.Category, _ = pinmap.ParseCategory(pc.Category)
	}
	if pc.Bus != "" {
		pin.Bus, _ = pinmap.ParseBus(pc.Bus, role.Family())
	}

	if pc.Pin != "" {
		name, err := profile.Normalize(pc.Pin)
		if err != nil {
			return pinmap.Pin{}, err
		}
		def, _ := profile.Pin(name)
		if pc.Number != nil && *pc.Number != def.Number {
			return pinmap.Pin{}, errors.Errorf("pin %s is number %d, not %d", name, def.Number, *pc.Number)
		}
		pin.Physical, pin.Number = name, def.Number
		return pin, nil
	}

	pin.Number = *pc.Number
	if name, err := profile.Normalize(strconv.Itoa(pin.Number)); err == nil {
		if def, _ := profile.Pin(name); def.Number == pin.Number {
			pin.Physical = name
		}
	}
	return pin, nil
}
